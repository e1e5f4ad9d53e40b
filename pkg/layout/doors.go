package layout

import "github.com/dshills/caveripper/pkg/caveinfo"

// doorCellDelta accounts for the grid's lower-left cell-origin convention:
// a door's boundary coordinate already indexes the adjacent cell on the
// East and South sides, but needs a -1 correction on North and West.
func doorCellDelta(side caveinfo.DoorSide) (int, int) {
	switch side {
	case caveinfo.DoorNorth:
		return 0, -1
	case caveinfo.DoorWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// DoorCell returns the grid cell that lies just outside a placed door: the
// cell a neighboring unit must occupy to join through it.
func DoorCell(pu *PlacedUnit, doorIdx int) (int, int) {
	gx, gy := GlobalDoorPosition(pu, doorIdx)
	side := RotateSide(pu.Unit.Doors[doorIdx].Side, pu.Rotation)
	dx, dy := doorCellDelta(side)
	return int(gx) + dx, int(gy) + dy
}

// SolveOrigin finds the grid origin a unit must be placed at so that, with
// the unit rotated by rotation, cell (cellX, cellY) is the unit's own cell
// just inside door doorIdx; the door then sits on that cell's outer edge,
// where DoorCell's door on the neighboring unit lies.
// Returns false if the door's computed position is not cell-aligned (can
// only happen with malformed unit data).
func SolveOrigin(unit *caveinfo.MapUnit, doorIdx, rotation, cellX, cellY int) (int, int, bool) {
	door := unit.Doors[doorIdx]
	lx, ly := DoorLocalPosition(door.Side, door.Offset, unit.Width, unit.Height)
	rx, ry := RotateLocalPoint(lx, ly, unit.Width, unit.Height)(rotation)
	if rx != float64(int(rx)) || ry != float64(int(ry)) {
		return 0, 0, false
	}
	// An East or South door's coordinate is one past the unit's last
	// column or row, so the cell inside it is one back.
	ix, iy := int(rx), int(ry)
	switch RotateSide(door.Side, rotation) {
	case caveinfo.DoorEast:
		ix--
	case caveinfo.DoorSouth:
		iy--
	}
	return cellX - ix, cellY - iy, true
}

// NewPlacedDoor builds the PlacedDoor record for a just-placed unit's door.
func NewPlacedDoor(pu *PlacedUnit, idx int) *PlacedDoor {
	x, y := GlobalDoorPosition(pu, idx)
	return &PlacedDoor{
		Unit:     pu,
		Index:    idx,
		X:        x,
		Y:        y,
		DoorType: pu.Unit.Doors[idx].DoorType,
	}
}
