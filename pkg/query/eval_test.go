package query

import (
	"testing"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
	"github.com/dshills/caveripper/pkg/waypoint"
)

// buildFixtureLayout builds a small two-unit layout by hand: a starting
// room with the ship and a pearl, linked through a door (optionally gated)
// to a hallway holding a bomb rock and a hole.
func buildFixtureLayout(gated bool) *layout.Layout {
	unitA := &caveinfo.MapUnit{
		InternalName: "start_1",
		Shape:        caveinfo.ShapeRoom,
		Width:        2, Height: 2,
		Doors: []caveinfo.Door{{Side: caveinfo.DoorEast, Offset: 0}},
		SpawnPoints: []caveinfo.SpawnPointTemplate{
			{Kind: caveinfo.SpawnShip, X: 1, Y: 1},
			{Kind: caveinfo.SpawnWaypoint, X: 1, Y: 1},
			{Kind: caveinfo.SpawnTreasure, X: 0, Y: 0},
		},
		Adjacency: []caveinfo.UnitEdge{
			{FromKind: caveinfo.AdjDoor, FromIndex: 0, ToKind: caveinfo.AdjWaypoint, ToIndex: 0, Weight: 1},
		},
	}
	unitB := &caveinfo.MapUnit{
		InternalName: "hallway_1",
		Shape:        caveinfo.ShapeHallway,
		Width:        2, Height: 1,
		Doors: []caveinfo.Door{{Side: caveinfo.DoorWest, Offset: 0}},
		SpawnPoints: []caveinfo.SpawnPointTemplate{
			{Kind: caveinfo.SpawnWaypoint, X: 1, Y: 0},
			{Kind: caveinfo.SpawnTreasure, X: 1, Y: 0},
			{Kind: caveinfo.SpawnHole, X: 1, Y: 0},
		},
		Adjacency: []caveinfo.UnitEdge{
			{FromKind: caveinfo.AdjDoor, FromIndex: 0, ToKind: caveinfo.AdjWaypoint, ToIndex: 0, Weight: 1},
		},
	}

	puA := &layout.PlacedUnit{Unit: unitA, X: 0, Y: 0}
	puB := &layout.PlacedUnit{Unit: unitB, X: 2, Y: 0}

	pdA := layout.NewPlacedDoor(puA, 0)
	pdB := layout.NewPlacedDoor(puB, 0)
	pdA.Linked, pdB.Linked = pdB, pdA
	puA.Doors = []*layout.PlacedDoor{pdA}
	puB.Doors = []*layout.PlacedDoor{pdB}
	if gated {
		gate := &layout.PlacedGate{Door: pdA, InternalName: "gate", HP: 100}
		pdA.Gate, pdB.Gate = gate, gate
	}

	shipPSP := &layout.PlacedSpawnPoint{Unit: puA, Index: 0, X: 1, Y: 1, Kind: caveinfo.SpawnShip, Object: &layout.SpawnObject{Kind: layout.ObjShip, TekiGroup: -1}}
	wpA := &layout.PlacedSpawnPoint{Unit: puA, Index: 1, X: 1, Y: 1, Kind: caveinfo.SpawnWaypoint}
	pearlPSP := &layout.PlacedSpawnPoint{Unit: puA, Index: 2, X: 0, Y: 0, Kind: caveinfo.SpawnTreasure, Object: &layout.SpawnObject{Kind: layout.ObjTreasure, InternalName: "pearl", TekiGroup: -1}}

	wpB := &layout.PlacedSpawnPoint{Unit: puB, Index: 0, X: 3, Y: 0, Kind: caveinfo.SpawnWaypoint}
	bombPSP := &layout.PlacedSpawnPoint{Unit: puB, Index: 1, X: 3, Y: 0, Kind: caveinfo.SpawnTreasure, Object: &layout.SpawnObject{Kind: layout.ObjTreasure, InternalName: "bomb_rock", TekiGroup: -1}}
	holePSP := &layout.PlacedSpawnPoint{Unit: puB, Index: 2, X: 3, Y: 0, Kind: caveinfo.SpawnHole, Object: &layout.SpawnObject{Kind: layout.ObjHole, TekiGroup: -1}}

	puA.SpawnPoints = []*layout.PlacedSpawnPoint{shipPSP, wpA, pearlPSP}
	puB.SpawnPoints = []*layout.PlacedSpawnPoint{wpB, bombPSP, holePSP}

	lo := &layout.Layout{
		Units:        []*layout.PlacedUnit{puA, puB},
		Ship:         shipPSP,
		Hole:         holePSP,
		SpawnObjects: []*layout.PlacedSpawnPoint{pearlPSP, bombPSP, holePSP},
	}
	waypoint.Build(lo)
	return lo
}

func mustEval(t *testing.T, src string, lo *layout.Layout) bool {
	t.Helper()
	q, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	ok, err := q.Eval(map[string]*layout.Layout{"fc4": lo})
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return ok
}

func TestEval_CompareShapeClass(t *testing.T) {
	lo := buildFixtureLayout(false)
	if !mustEval(t, "fc4 room = 1", lo) {
		t.Error("expected exactly one room")
	}
	if !mustEval(t, "fc4 hallway = 1", lo) {
		t.Error("expected exactly one hallway")
	}
}

func TestEval_CompareSpawnCategory(t *testing.T) {
	lo := buildFixtureLayout(false)
	if !mustEval(t, "fc4 ship = 1", lo) {
		t.Error("expected exactly one ship")
	}
	if !mustEval(t, "fc4 hole = 1", lo) {
		t.Error("expected exactly one hole")
	}
}

func TestEval_CompareInternalName(t *testing.T) {
	lo := buildFixtureLayout(false)
	if !mustEval(t, "fc4 pearl = 1", lo) {
		t.Error("expected exactly one pearl")
	}
	if mustEval(t, "fc4 pearl = 2", lo) {
		t.Error("should not have two pearls")
	}
}

func TestEval_CarryDist(t *testing.T) {
	lo := buildFixtureLayout(false)
	if !mustEval(t, "fc4 bomb_rock carry dist > 1", lo) {
		t.Error("bomb_rock should carry farther than 1")
	}
	if mustEval(t, "fc4 pearl carry dist > 100", lo) {
		t.Error("pearl should not carry farther than 100")
	}
}

func TestEval_Gated(t *testing.T) {
	ungated := buildFixtureLayout(false)
	if mustEval(t, "fc4 bomb_rock gated", ungated) {
		t.Error("bomb_rock should not be gated in the ungated fixture")
	}

	gatedLo := buildFixtureLayout(true)
	if !mustEval(t, "fc4 bomb_rock gated", gatedLo) {
		t.Error("bomb_rock should be gated: its only path crosses the gated door")
	}
	if mustEval(t, "fc4 bomb_rock not gated", gatedLo) {
		t.Error("bomb_rock should not satisfy not_gated")
	}
}

func TestEval_StraightDist(t *testing.T) {
	lo := buildFixtureLayout(false)
	if !mustEval(t, "fc4 pearl straight dist hole > 1", lo) {
		t.Error("pearl and hole should be more than 1 apart")
	}
}

func TestEval_RoomPath(t *testing.T) {
	lo := buildFixtureLayout(false)
	if !mustEval(t, "fc4 room -> hallway", lo) {
		t.Error("expected a room -> hallway walk")
	}
	if !mustEval(t, "fc4 any + ship -> any + hole", lo) {
		t.Error("expected ship's room to connect to the hole's room")
	}
	if mustEval(t, "fc4 hallway -> hallway", lo) {
		t.Error("should not find a hallway -> hallway walk")
	}
}

func TestEval_ReferenceErrorFatalForDistance(t *testing.T) {
	lo := buildFixtureLayout(false)
	q, err := Parse("fc4 nonexistent_thing carry dist < 5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := q.Eval(map[string]*layout.Layout{"fc4": lo}); err == nil {
		t.Error("expected a reference error for an unmatched carry_dist entity")
	}
}

func TestEval_ReferenceNonFatalForCompare(t *testing.T) {
	lo := buildFixtureLayout(false)
	if mustEval(t, "fc4 nonexistent_thing = 1", lo) {
		t.Error("compare of an unmatched entity should count zero, not match = 1")
	}
	if !mustEval(t, "fc4 nonexistent_thing = 0", lo) {
		t.Error("compare of an unmatched entity should count zero")
	}
}
