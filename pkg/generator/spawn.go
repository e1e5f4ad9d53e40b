package generator

import (
	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
)

// phaseSpawnPopulation draws an occupant for every spawn point, category by
// category: hole, geyser, ship, gate, enemy groups 0..4, treasure, then
// item. Category is the outer loop and placed units (in insertion order,
// each unit's own spawn points in unit-declared order) are the inner loop,
// since the category a point belongs to determines which PRNG draws it
// consumes relative to every other point on the floor. Exactly one hole and
// at most one geyser are ever placed; the ship only ever lands on the
// starting unit (st.units[0], by construction of phaseUnitSelection).
func phaseSpawnPopulation(st *buildState) {
	for _, pu := range st.units {
		pu.SpawnPoints = make([]*layout.PlacedSpawnPoint, 0, len(pu.Unit.SpawnPoints))
		for i, tmpl := range pu.Unit.SpawnPoints {
			pu.SpawnPoints = append(pu.SpawnPoints, &layout.PlacedSpawnPoint{
				Unit: pu, Index: i, Kind: tmpl.Kind, WaypointID: -1,
			})
		}
	}

	populateFirst(st, caveinfo.SpawnHole, func(st *buildState, psp *layout.PlacedSpawnPoint) {
		psp.Object = &layout.SpawnObject{Kind: layout.ObjHole, TekiGroup: -1}
		st.hole = psp
	})
	populateFirst(st, caveinfo.SpawnGeyser, func(st *buildState, psp *layout.PlacedSpawnPoint) {
		psp.Object = &layout.SpawnObject{Kind: layout.ObjGeyser, TekiGroup: -1}
		st.geyser = psp
	})
	populateFirst(st, caveinfo.SpawnShip, func(st *buildState, psp *layout.PlacedSpawnPoint) {
		if psp.Unit != st.units[0] {
			return
		}
		psp.Object = &layout.SpawnObject{Kind: layout.ObjShip, TekiGroup: -1}
		st.ship = psp
	})
	populateEach(st, caveinfo.SpawnGate, func(st *buildState, _ caveinfo.SpawnPointTemplate) *layout.SpawnObject {
		return drawGateObject(st)
	})
	for group := range st.fs.TekiGroups {
		populateEach(st, caveinfo.SpawnEnemy, func(st *buildState, tmpl caveinfo.SpawnPointTemplate) *layout.SpawnObject {
			if tmpl.GroupHint != group {
				return nil
			}
			return drawEnemyObject(st, tmpl)
		})
	}
	populateEach(st, caveinfo.SpawnTreasure, func(st *buildState, _ caveinfo.SpawnPointTemplate) *layout.SpawnObject {
		return drawTreasureObject(st)
	})
	populateEach(st, caveinfo.SpawnItem, func(st *buildState, _ caveinfo.SpawnPointTemplate) *layout.SpawnObject {
		return drawItemObject(st)
	})
}

// populateFirst sweeps every placed spawn point of the given kind, in
// canonical order, and lets assign decide whether to claim it; it stops
// after the first claim (assign must leave psp.Object nil to decline).
func populateFirst(st *buildState, kind caveinfo.SpawnKind, assign func(*buildState, *layout.PlacedSpawnPoint)) {
	for _, pu := range st.units {
		for _, psp := range pu.SpawnPoints {
			if psp.Kind != kind {
				continue
			}
			assign(st, psp)
			if psp.Object != nil {
				st.spawns = append(st.spawns, psp)
				return
			}
		}
	}
}

// populateEach sweeps every placed spawn point of the given kind, in
// canonical order, drawing an independent object for each from draw. draw
// may return nil (e.g. an enemy point outside the current group) to leave
// the point unpopulated.
func populateEach(st *buildState, kind caveinfo.SpawnKind, draw func(*buildState, caveinfo.SpawnPointTemplate) *layout.SpawnObject) {
	for _, pu := range st.units {
		for _, psp := range pu.SpawnPoints {
			if psp.Kind != kind {
				continue
			}
			tmpl := pu.Unit.SpawnPoints[psp.Index]
			obj := draw(st, tmpl)
			if obj == nil {
				continue
			}
			psp.Object = obj
			st.spawns = append(st.spawns, psp)
		}
	}
}

func drawTreasureObject(st *buildState) *layout.SpawnObject {
	if len(st.fs.Treasures) == 0 {
		return nil
	}
	weights := make([]uint32, len(st.fs.Treasures))
	for i, t := range st.fs.Treasures {
		weights[i] = t.Weight
	}
	idx := st.rng.WeightedIndex(weights)
	if idx < 0 {
		return nil
	}
	t := st.fs.Treasures[idx]
	return &layout.SpawnObject{Kind: layout.ObjTreasure, InternalName: t.InternalName, TekiGroup: -1}
}

func drawItemObject(st *buildState) *layout.SpawnObject {
	if len(st.fs.CapTekis) == 0 {
		return nil
	}
	weights := make([]uint32, len(st.fs.CapTekis))
	for i, c := range st.fs.CapTekis {
		weights[i] = c.Weight
	}
	idx := st.rng.WeightedIndex(weights)
	if idx < 0 {
		return nil
	}
	c := st.fs.CapTekis[idx]
	return &layout.SpawnObject{Kind: layout.ObjItem, InternalName: c.InternalName, TekiGroup: -1}
}

func drawGateObject(st *buildState) *layout.SpawnObject {
	if len(st.fs.Gates) == 0 {
		return nil
	}
	weights := make([]uint32, len(st.fs.Gates))
	for i, g := range st.fs.Gates {
		weights[i] = g.Weight
	}
	idx := st.rng.WeightedIndex(weights)
	if idx < 0 {
		return nil
	}
	g := st.fs.Gates[idx]
	return &layout.SpawnObject{Kind: layout.ObjGate, InternalName: g.InternalName, TekiGroup: -1}
}

// drawEnemyObject draws from the teki group matching tmpl's group hint,
// restricted to entries whose fall type matches the spawn point's. A point
// with no eligible entry is left empty rather than falling back to the
// unrestricted group: ineligible points are skipped silently.
func drawEnemyObject(st *buildState, tmpl caveinfo.SpawnPointTemplate) *layout.SpawnObject {
	if tmpl.GroupHint < 0 || tmpl.GroupHint >= len(st.fs.TekiGroups) {
		return nil
	}
	group := tmpl.GroupHint
	var eligible []caveinfo.TekiEntry
	for _, e := range st.fs.TekiGroups[group].Entries {
		if e.FallType == tmpl.FallType {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	weights := make([]uint32, len(eligible))
	for i, e := range eligible {
		weights[i] = e.Weight
	}
	idx := st.rng.WeightedIndex(weights)
	if idx < 0 {
		return nil
	}
	e := eligible[idx]
	return &layout.SpawnObject{Kind: layout.ObjTeki, InternalName: e.InternalName, TekiGroup: group}
}

// phaseFinalization computes global coordinates for every placed spawn
// point now that the layout is fully built. Door positions are already set
// when each door is created (layout.NewPlacedDoor).
func phaseFinalization(st *buildState) {
	for _, pu := range st.units {
		for _, psp := range pu.SpawnPoints {
			psp.X, psp.Y = layout.GlobalSpawnPosition(pu, psp.Index)
		}
	}
}
