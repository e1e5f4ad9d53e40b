package generator

import (
	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
	"github.com/dshills/caveripper/pkg/rng"
)

var rotations = [4]int{0, 90, 180, 270}

// phaseInit seeds the PRNG and mixes in the floor's seed-perturbing
// constant. Some floors fold a per-sublevel constant into the seed before
// target counts are drawn; the loader exposes this
// as FloorSpec.SeedMix. The exact original mixing procedure was not
// recoverable (see DESIGN.md), so it is modeled here as SeedMix additional
// throwaway rand() draws, which preserves the documented property that
// matters: floors with a nonzero mix constant diverge from seed-only runs
// at every later draw.
func phaseInit(st *buildState) {
	st.rng = rng.NewState(st.seed)
	for i := uint32(0); i < st.fs.SeedMix; i++ {
		st.rng.RandInt(0x8000)
	}
}

// phaseTargetCounts draws the room, hallway, and cap counts within the
// floor's declared ranges, in that order.
func phaseTargetCounts(st *buildState) {
	st.targetRooms = drawInRange(st, st.fs.Rooms)
	st.targetHallways = drawInRange(st, st.fs.Hallways)
	st.targetCaps = drawInRange(st, st.fs.Caps)
}

func drawInRange(st *buildState, r caveinfo.CountRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	span := uint32(r.Max - r.Min + 1)
	return r.Min + int(st.rng.RandInt(span))
}

// phaseUnitSelection shuffles the candidate unit pool and places the
// floor's starting unit at the grid origin.
func phaseUnitSelection(st *buildState) {
	var pool []*caveinfo.MapUnit
	for _, ref := range st.fs.UnitPool {
		unit := st.fs.Units[ref.InternalName]
		if unit == nil {
			continue
		}
		for i := 0; i < ref.Factor; i++ {
			pool = append(pool, unit)
		}
	}
	rng.Backs(st.rng, pool, -1)
	st.pool = pool

	start := st.fs.Units[st.fs.StartUnit]
	if start == nil {
		return
	}
	pu := &layout.PlacedUnit{Unit: start, X: 0, Y: 0, Rotation: 0}
	fp := layout.Footprint(start, 0, 0, 0)
	st.placeUnit(pu, fp, -1)
}

// phasePlacement repeatedly pops the next pool candidate and tries to join
// it to an open door, until both the room and hallway targets are met, the
// pool is exhausted, or no open door remains. A candidate whose own shape
// has already met its target is skipped without being placed, since rooms
// and hallways are tracked against independent counts.
func phasePlacement(st *buildState) {
	for len(st.pool) > 0 && len(st.openDoors) > 0 &&
		(st.shapeCount(caveinfo.ShapeRoom) < st.targetRooms || st.shapeCount(caveinfo.ShapeHallway) < st.targetHallways) {
		candidate := st.pool[0]
		st.pool = st.pool[1:]
		switch candidate.Shape {
		case caveinfo.ShapeCap:
			continue // caps are placed during sealing, not general placement
		case caveinfo.ShapeRoom:
			if st.shapeCount(caveinfo.ShapeRoom) >= st.targetRooms {
				continue
			}
		case caveinfo.ShapeHallway:
			if st.shapeCount(caveinfo.ShapeHallway) >= st.targetHallways {
				continue
			}
		}
		tryPlace(st, candidate)
	}
}

// openDoorFacing returns the side a new unit's matching door must face to
// join od, and the grid cell that door must land on.
func openDoorFacing(od *layout.PlacedDoor) (caveinfo.DoorSide, int, int) {
	side := layout.RotateSide(od.Unit.Unit.Doors[od.Index].Side, od.Unit.Rotation)
	want := caveinfo.DoorSide((int(side) + 2) % 4)
	dcx, dcy := layout.DoorCell(od.Unit, od.Index)
	return want, dcx, dcy
}

// tryPlace attempts to join candidate to a randomly (uniformly) chosen
// open door, trying every rotation and every one of the candidate's own
// doors for a type-compatible, non-overlapping fit. Reports whether
// placement succeeded; on failure it has consumed exactly the one door-
// selection draw and nothing else: a skipped candidate never consumes an
// extra draw.
func tryPlace(st *buildState, candidate *caveinfo.MapUnit) bool {
	if len(st.openDoors) == 0 {
		return false
	}
	doorIdx := int(st.rng.RandInt(uint32(len(st.openDoors))))
	od := st.openDoors[doorIdx]
	wantSide, dcx, dcy := openDoorFacing(od)

	for _, rot := range rotations {
		for j, door := range candidate.Doors {
			if layout.RotateSide(door.Side, rot) != wantSide {
				continue
			}
			if !st.fs.DoorTypes.Match(door.DoorType, od.DoorType) {
				continue
			}
			ox, oy, ok := layout.SolveOrigin(candidate, j, rot, dcx, dcy)
			if !ok {
				continue
			}
			fp := layout.Footprint(candidate, ox, oy, rot)
			if !st.grid.Fits(fp) {
				continue
			}
			pu := &layout.PlacedUnit{Unit: candidate, X: ox, Y: oy, Rotation: rot}
			st.placeUnit(pu, fp, j)
			st.linkDoors(od, pu, j)
			return true
		}
	}
	return false
}

// phaseCapSealing caps every door still open once placement is done,
// picking a cap unit from the pool whose single door matches. Doors that
// find no matching cap are force-closed (capped with no unit) so the
// generator never stalls for a malformed floor spec.
func phaseCapSealing(st *buildState) {
	caps := make([]*caveinfo.MapUnit, 0, len(st.pool))
	for _, u := range st.pool {
		if u.Shape == caveinfo.ShapeCap {
			caps = append(caps, u)
		}
	}

	placed := 0
	for len(st.openDoors) > 0 {
		od := st.openDoors[0]
		if placed >= st.targetCaps || len(caps) == 0 {
			od.Capped = true
			st.openDoors = st.openDoors[1:]
			continue
		}
		if sealDoor(st, od, caps) {
			placed++
		} else {
			od.Capped = true
			st.openDoors = st.openDoors[1:]
		}
	}
}

func sealDoor(st *buildState, od *layout.PlacedDoor, caps []*caveinfo.MapUnit) bool {
	wantSide, dcx, dcy := openDoorFacing(od)

	for _, cap := range caps {
		for _, rot := range rotations {
			for j, door := range cap.Doors {
				if layout.RotateSide(door.Side, rot) != wantSide {
					continue
				}
				if !st.fs.DoorTypes.Match(door.DoorType, od.DoorType) {
					continue
				}
				ox, oy, ok := layout.SolveOrigin(cap, j, rot, dcx, dcy)
				if !ok {
					continue
				}
				fp := layout.Footprint(cap, ox, oy, rot)
				if !st.grid.Fits(fp) {
					continue
				}
				pu := &layout.PlacedUnit{Unit: cap, X: ox, Y: oy, Rotation: rot}
				st.placeUnit(pu, fp, j)
				st.linkDoors(od, pu, j)
				return true
			}
		}
	}
	return false
}

// phaseGatePlacement chooses gates from the floor's weighted gate list and
// places them on linked door connections, deducting from a per-gate supply
// pool. Each connection is visited once regardless of which side's unit
// comes first in traversal order. The pool runs dry silently: once every
// weight has been exhausted (WeightedIndex starts returning -1) remaining
// connections are simply left ungated.
func phaseGatePlacement(st *buildState) {
	if len(st.fs.Gates) == 0 {
		return
	}
	remaining := make([]uint32, len(st.fs.Gates))
	for i, g := range st.fs.Gates {
		remaining[i] = g.Weight
	}

	for _, pu := range st.units {
		for _, pd := range pu.Doors {
			if pd == nil || pd.Linked == nil || pd.Capped || pd.Gate != nil || pd.Linked.Gate != nil {
				continue
			}
			idx := st.rng.WeightedIndex(remaining)
			if idx < 0 {
				return
			}
			remaining[idx]--
			spec := st.fs.Gates[idx]
			pg := &layout.PlacedGate{Door: pd, InternalName: spec.InternalName, HP: spec.HP}
			pd.Gate = pg
			pd.Linked.Gate = pg
			st.gates = append(st.gates, pg)
		}
	}
}
