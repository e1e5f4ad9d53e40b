package layout

import "github.com/dshills/caveripper/pkg/caveinfo"

// PlacedUnit is a map unit placed on the grid: its declared content plus the
// global placement (origin, rotation) the generator assigned it.
type PlacedUnit struct {
	Unit        *caveinfo.MapUnit
	X, Y        int // grid-cell origin
	Rotation    int // 0, 90, 180, or 270
	Doors       []*PlacedDoor
	SpawnPoints []*PlacedSpawnPoint
}

// PlacedDoor is one of a placed unit's doors after placement: its global
// position, its link to the matching door of an adjacent unit (if any), and
// whether it ended up capped or carries a gate.
type PlacedDoor struct {
	Unit     *PlacedUnit
	Index    int // index into Unit.Unit.Doors
	X, Y     float64
	DoorType int
	Linked   *PlacedDoor
	Capped   bool
	Gate     *PlacedGate
}

// SpawnObjectKind classifies what occupies a placed spawn point.
type SpawnObjectKind int

const (
	ObjTeki SpawnObjectKind = iota
	ObjTreasure
	ObjItem
	ObjGate
	ObjHole
	ObjGeyser
	ObjShip
)

// SpawnObject is the concrete thing the generator placed at a spawn point.
type SpawnObject struct {
	Kind         SpawnObjectKind
	InternalName string
	TekiGroup    int // -1 when not applicable

	// CarryDist and Gated are filled in by pkg/waypoint after the layout is
	// frozen; zero value means "not yet computed".
	CarryDist float64
	Gated     bool
}

// PlacedSpawnPoint is a unit-local spawn point after placement: global
// coordinates plus whatever SpawnObject (if any) the population phase
// assigned it.
type PlacedSpawnPoint struct {
	Unit       *PlacedUnit
	Index      int // index into Unit.Unit.SpawnPoints
	X, Y       float64
	Kind       caveinfo.SpawnKind
	Object     *SpawnObject
	WaypointID int // node id in the waypoint graph this point maps to
}

// PlacedGate is a gate placed on a door.
type PlacedGate struct {
	Door         *PlacedDoor
	InternalName string
	HP           uint32
}

// Layout is the complete, frozen output of one generator run.
type Layout struct {
	Sublevel caveinfo.Sublevel
	Seed     uint32

	Units  []*PlacedUnit
	Gates  []*PlacedGate
	Ship   *PlacedSpawnPoint
	Hole   *PlacedSpawnPoint
	Geyser *PlacedSpawnPoint

	// SpawnObjects lists every populated spawn point across all units, in
	// the order the population phase filled them: category by category
	// (hole, geyser, ship, gate, enemy groups, treasure, item), and within a
	// category by unit insertion order, then each unit's declared spawn
	// point order — the same order queries and waypoint assignment walk in.
	SpawnObjects []*PlacedSpawnPoint
}

// RotateSide maps a door's declared side to the side it faces after the
// unit has been rotated by the given degrees.
func RotateSide(side caveinfo.DoorSide, rotation int) caveinfo.DoorSide {
	steps := (rotation / 90) % 4
	for i := 0; i < steps; i++ {
		side = (side + 1) % 4
	}
	return side
}

// DoorLocalPosition returns a door's position in its unit's own,
// unrotated local coordinate frame.
func DoorLocalPosition(side caveinfo.DoorSide, offset, w, h int) (float64, float64) {
	switch side {
	case caveinfo.DoorNorth:
		return float64(offset), 0
	case caveinfo.DoorSouth:
		return float64(offset), float64(h)
	case caveinfo.DoorWest:
		return 0, float64(offset)
	case caveinfo.DoorEast:
		return float64(w), float64(offset)
	default:
		return 0, 0
	}
}

// RotateLocalPoint rotates a local point inside a w x h rectangle by the
// given degrees (0/90/180/270), in the same clockwise sense as RotateSide
// (a point on the North edge ends up on the East edge at 90), returning the
// point's coordinates in the rotated (and, for 90/270, width/height-swapped)
// frame.
func RotateLocalPoint(x, y float64, w, h int) func(rotation int) (float64, float64) {
	return func(rotation int) (float64, float64) {
		switch rotation % 360 {
		case 90:
			return float64(h) - y, x
		case 180:
			return float64(w) - x, float64(h) - y
		case 270:
			return y, float64(w) - x
		default:
			return x, y
		}
	}
}

// GlobalDoorPosition computes a door's global position given its owning
// placed unit.
func GlobalDoorPosition(pu *PlacedUnit, doorIdx int) (float64, float64) {
	door := pu.Unit.Doors[doorIdx]
	lx, ly := DoorLocalPosition(door.Side, door.Offset, pu.Unit.Width, pu.Unit.Height)
	rx, ry := RotateLocalPoint(lx, ly, pu.Unit.Width, pu.Unit.Height)(pu.Rotation)
	return float64(pu.X) + rx, float64(pu.Y) + ry
}

// GlobalSpawnPosition computes a spawn point's global position given its
// owning placed unit.
func GlobalSpawnPosition(pu *PlacedUnit, spawnIdx int) (float64, float64) {
	sp := pu.Unit.SpawnPoints[spawnIdx]
	rx, ry := RotateLocalPoint(sp.X, sp.Y, pu.Unit.Width, pu.Unit.Height)(pu.Rotation)
	return float64(pu.X) + rx, float64(pu.Y) + ry
}
