package generator

import (
	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
	"github.com/dshills/caveripper/pkg/rng"
)

// buildState is the pipeline's single shared mutable context, analogous to
// the per-stage intermediate values threaded through a generation run,
// collapsed here into one struct since every phase draws
// from the same PRNG and the same in-progress unit list.
type buildState struct {
	fs   *caveinfo.FloorSpec
	seed uint32
	rng  *rng.State

	grid      *layout.Grid
	units     []*layout.PlacedUnit
	openDoors []*layout.PlacedDoor
	pool      []*caveinfo.MapUnit

	targetRooms    int
	targetHallways int
	targetCaps     int

	gates  []*layout.PlacedGate
	ship   *layout.PlacedSpawnPoint
	hole   *layout.PlacedSpawnPoint
	geyser *layout.PlacedSpawnPoint
	spawns []*layout.PlacedSpawnPoint
}

func newBuildState(fs *caveinfo.FloorSpec, seed uint32) *buildState {
	return &buildState{
		fs:   fs,
		seed: seed,
		grid: layout.NewGrid(),
	}
}

// shapeCount returns how many placed units so far have the given shape.
func (st *buildState) shapeCount(shape caveinfo.UnitShape) int {
	n := 0
	for _, pu := range st.units {
		if pu.Unit.Shape == shape {
			n++
		}
	}
	return n
}

// placeUnit registers a newly placed unit: stamps its footprint on the
// grid, appends it to the unit list, and opens every one of its doors
// except the one already linked at linkedIdx (-1 if none).
func (st *buildState) placeUnit(pu *layout.PlacedUnit, footprint []layout.Cell, linkedIdx int) {
	idx := len(st.units)
	st.units = append(st.units, pu)
	st.grid.Occupy(footprint, idx)

	pu.Doors = make([]*layout.PlacedDoor, len(pu.Unit.Doors))
	for i := range pu.Unit.Doors {
		if i == linkedIdx {
			continue // filled in by linkDoors
		}
		pd := layout.NewPlacedDoor(pu, i)
		pu.Doors[i] = pd
		st.openDoors = append(st.openDoors, pd)
	}
}

// linkDoors marries an existing open door to the newly placed unit's
// matching door, removing both from the open list.
func (st *buildState) linkDoors(od *layout.PlacedDoor, pu *layout.PlacedUnit, newDoorIdx int) {
	nd := layout.NewPlacedDoor(pu, newDoorIdx)
	nd.Linked = od
	od.Linked = nd
	pu.Doors[newDoorIdx] = nd

	st.openDoors = removeDoor(st.openDoors, od)
}

func removeDoor(doors []*layout.PlacedDoor, target *layout.PlacedDoor) []*layout.PlacedDoor {
	out := doors[:0]
	for _, d := range doors {
		if d != target {
			out = append(out, d)
		}
	}
	return out
}

func (st *buildState) freeze() *layout.Layout {
	return &layout.Layout{
		Sublevel:     st.fs.Sublevel,
		Seed:         st.seed,
		Units:        st.units,
		Gates:        st.gates,
		Ship:         st.ship,
		Hole:         st.hole,
		Geyser:       st.geyser,
		SpawnObjects: st.spawns,
	}
}
