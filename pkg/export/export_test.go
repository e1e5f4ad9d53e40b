package export

import (
	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
)

// buildFixtureLayout builds a tiny two-room layout for export tests: a
// starting room with a ship and a pearl, linked to a hallway holding a hole.
func buildFixtureLayout() *layout.Layout {
	unitA := &caveinfo.MapUnit{
		InternalName: "start_1",
		Shape:        caveinfo.ShapeRoom,
		Width:        2, Height: 2,
		Doors: []caveinfo.Door{{Side: caveinfo.DoorEast, Offset: 0}},
	}
	unitB := &caveinfo.MapUnit{
		InternalName: "hallway_1",
		Shape:        caveinfo.ShapeHallway,
		Width:        2, Height: 1,
		Doors: []caveinfo.Door{{Side: caveinfo.DoorWest, Offset: 0}},
	}

	puA := &layout.PlacedUnit{Unit: unitA, X: 0, Y: 0}
	puB := &layout.PlacedUnit{Unit: unitB, X: 2, Y: 0}

	pdA := layout.NewPlacedDoor(puA, 0)
	pdB := layout.NewPlacedDoor(puB, 0)
	pdA.Linked, pdB.Linked = pdB, pdA
	puA.Doors = []*layout.PlacedDoor{pdA}
	puB.Doors = []*layout.PlacedDoor{pdB}

	shipPSP := &layout.PlacedSpawnPoint{Unit: puA, Index: 0, X: 1, Y: 1, Kind: caveinfo.SpawnShip, Object: &layout.SpawnObject{Kind: layout.ObjShip, TekiGroup: -1}}
	pearlPSP := &layout.PlacedSpawnPoint{Unit: puA, Index: 1, X: 0, Y: 0, Kind: caveinfo.SpawnTreasure, Object: &layout.SpawnObject{Kind: layout.ObjTreasure, InternalName: "pearl", TekiGroup: -1}}
	holePSP := &layout.PlacedSpawnPoint{Unit: puB, Index: 0, X: 3, Y: 0, Kind: caveinfo.SpawnHole, Object: &layout.SpawnObject{Kind: layout.ObjHole, TekiGroup: -1}}

	puA.SpawnPoints = []*layout.PlacedSpawnPoint{shipPSP, pearlPSP}
	puB.SpawnPoints = []*layout.PlacedSpawnPoint{holePSP}

	return &layout.Layout{
		Seed:         0xC0FFEE,
		Units:        []*layout.PlacedUnit{puA, puB},
		Ship:         shipPSP,
		Hole:         holePSP,
		SpawnObjects: []*layout.PlacedSpawnPoint{pearlPSP, holePSP},
	}
}
