package caveinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// DoorSide is a cardinal direction along a map unit's bounding box.
type DoorSide int

const (
	DoorNorth DoorSide = iota
	DoorEast
	DoorSouth
	DoorWest
)

func parseDoorSide(s string) (DoorSide, error) {
	switch strings.ToUpper(s) {
	case "N":
		return DoorNorth, nil
	case "E":
		return DoorEast, nil
	case "S":
		return DoorSouth, nil
	case "W":
		return DoorWest, nil
	}
	return 0, fmt.Errorf("unknown door side %q", s)
}

func (d DoorSide) String() string {
	return [...]string{"N", "E", "S", "W"}[d]
}

// Door is a unit-local door slot: a side, an offset along that side in unit
// cells, and a door-type id. Two doors are matchable iff the floor's
// door-type table (loaded separately) marks their types
// compatible.
type Door struct {
	Side     DoorSide
	Offset   int
	DoorType int
}

// SpawnKind classifies what a spawn point may be occupied by.
type SpawnKind int

const (
	SpawnEnemy SpawnKind = iota
	SpawnTreasure
	SpawnItem
	SpawnHole
	SpawnGeyser
	SpawnShip
	SpawnGate
	SpawnWaypoint
)

func parseSpawnKind(s string) (SpawnKind, error) {
	switch strings.ToLower(s) {
	case "enemy":
		return SpawnEnemy, nil
	case "treasure":
		return SpawnTreasure, nil
	case "item":
		return SpawnItem, nil
	case "hole":
		return SpawnHole, nil
	case "geyser":
		return SpawnGeyser, nil
	case "ship":
		return SpawnShip, nil
	case "gate":
		return SpawnGate, nil
	case "waypoint":
		return SpawnWaypoint, nil
	}
	return 0, fmt.Errorf("unknown spawn point kind %q", s)
}

func (k SpawnKind) String() string {
	return [...]string{"enemy", "treasure", "item", "hole", "geyser", "ship", "gate", "waypoint"}[k]
}

// SpawnPointTemplate is a unit-local spawn point before placement: local
// coordinates, the kind of object it may host, and the extra parameters
// (radius, fall type, entity group hint) the generator's population phase
// needs to decide eligibility.
type SpawnPointTemplate struct {
	Kind      SpawnKind
	X, Y      float64
	Radius    float64
	FallType  int
	GroupHint int
}

// UnitShape is the map unit's structural class.
type UnitShape int

const (
	ShapeRoom UnitShape = iota
	ShapeHallway
	ShapeCap
)

func parseUnitShape(s string) (UnitShape, error) {
	switch strings.ToLower(s) {
	case "room":
		return ShapeRoom, nil
	case "hallway":
		return ShapeHallway, nil
	case "cap", "alcove":
		return ShapeCap, nil
	}
	return 0, fmt.Errorf("unknown unit shape %q", s)
}

// AdjNodeKind distinguishes the two kinds of node a unit's internal
// adjacency list may reference.
type AdjNodeKind int

const (
	AdjDoor AdjNodeKind = iota
	AdjWaypoint
)

// UnitEdge is one entry in a unit's declared adjacency list: an edge
// between two of its own doors/waypoints, carried over directly into the
// waypoint graph.
type UnitEdge struct {
	FromKind  AdjNodeKind
	FromIndex int
	ToKind    AdjNodeKind
	ToIndex   int
	Weight    float64
}

// MapUnit is the immutable description of one building block: a room,
// hallway, or cap/alcove, as declared by a single per-unit text file.
type MapUnit struct {
	InternalName string
	Shape        UnitShape
	Width        int
	Height       int
	Doors        []Door
	SpawnPoints  []SpawnPointTemplate
	Adjacency    []UnitEdge
}

// ParseMapUnit parses a single per-unit file. '#' comments are not
// recognized; tokens use the same character set as the caveinfo format
// (including '.', for decimal coordinates), and newlines separate tokens
// like spaces and tabs.
// Layout mirrors the brace format: a header section, then
// optional "doors", "spawns", and "adj" sections.
func ParseMapUnit(file, src string) (*MapUnit, error) {
	l := newLexer(src, false)
	sections, err := parseSections(file, l, strictMode)
	if err != nil {
		return nil, err
	}

	u := &MapUnit{}
	for _, sec := range sections {
		if len(sec.Lines) == 0 {
			continue
		}
		if !sec.HasNumber {
			if err := parseUnitHeader(u, sec.Lines[0]); err != nil {
				return nil, &ParseError{File: file, Excerpt: err.Error()}
			}
			continue
		}
		switch sec.Number {
		case 1:
			if err := parseUnitDoors(u, sec.Lines); err != nil {
				return nil, &ParseError{File: file, Excerpt: err.Error()}
			}
		case 2:
			if err := parseUnitSpawns(u, sec.Lines); err != nil {
				return nil, &ParseError{File: file, Excerpt: err.Error()}
			}
		case 3:
			if err := parseUnitAdjacency(u, sec.Lines); err != nil {
				return nil, &ParseError{File: file, Excerpt: err.Error()}
			}
		}
	}
	return u, nil
}

func parseUnitHeader(u *MapUnit, line []string) error {
	if len(line) < 4 {
		return fmt.Errorf("unit header requires name, shape, width, height")
	}
	u.InternalName = line[0]
	shape, err := parseUnitShape(line[1])
	if err != nil {
		return err
	}
	u.Shape = shape
	w, err := strconv.Atoi(line[2])
	if err != nil {
		return fmt.Errorf("invalid width %q: %w", line[2], err)
	}
	h, err := strconv.Atoi(line[3])
	if err != nil {
		return fmt.Errorf("invalid height %q: %w", line[3], err)
	}
	u.Width, u.Height = w, h
	return nil
}

func parseUnitDoors(u *MapUnit, lines [][]string) error {
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		side, err := parseDoorSide(line[0])
		if err != nil {
			return err
		}
		offset, err := strconv.Atoi(line[1])
		if err != nil {
			return fmt.Errorf("invalid door offset %q: %w", line[1], err)
		}
		doorType, err := strconv.Atoi(line[2])
		if err != nil {
			return fmt.Errorf("invalid door type %q: %w", line[2], err)
		}
		u.Doors = append(u.Doors, Door{Side: side, Offset: offset, DoorType: doorType})
	}
	return nil
}

func parseUnitSpawns(u *MapUnit, lines [][]string) error {
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		kind, err := parseSpawnKind(line[0])
		if err != nil {
			return err
		}
		x, err := strconv.ParseFloat(line[1], 64)
		if err != nil {
			return fmt.Errorf("invalid spawn x %q: %w", line[1], err)
		}
		y, err := strconv.ParseFloat(line[2], 64)
		if err != nil {
			return fmt.Errorf("invalid spawn y %q: %w", line[2], err)
		}
		sp := SpawnPointTemplate{Kind: kind, X: x, Y: y}
		if len(line) > 3 {
			if r, err := strconv.ParseFloat(line[3], 64); err == nil {
				sp.Radius = r
			}
		}
		if len(line) > 4 {
			if f, err := strconv.Atoi(line[4]); err == nil {
				sp.FallType = f
			}
		}
		if len(line) > 5 {
			if g, err := strconv.Atoi(line[5]); err == nil {
				sp.GroupHint = g
			}
		}
		u.SpawnPoints = append(u.SpawnPoints, sp)
	}
	return nil
}

func parseUnitAdjacency(u *MapUnit, lines [][]string) error {
	parseNode := func(tok string) (AdjNodeKind, int, error) {
		if len(tok) < 2 {
			return 0, 0, fmt.Errorf("invalid adjacency node %q", tok)
		}
		kindCh, idxStr := tok[0], tok[1:]
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid adjacency node index %q: %w", tok, err)
		}
		switch kindCh {
		case 'd', 'D':
			return AdjDoor, idx, nil
		case 'w', 'W':
			return AdjWaypoint, idx, nil
		}
		return 0, 0, fmt.Errorf("invalid adjacency node kind in %q", tok)
	}

	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		fromKind, fromIdx, err := parseNode(line[0])
		if err != nil {
			return err
		}
		toKind, toIdx, err := parseNode(line[1])
		if err != nil {
			return err
		}
		edge := UnitEdge{FromKind: fromKind, FromIndex: fromIdx, ToKind: toKind, ToIndex: toIdx}
		if len(line) > 2 {
			if w, err := strconv.ParseFloat(line[2], 64); err == nil {
				edge.Weight = w
			}
		}
		u.Adjacency = append(u.Adjacency, edge)
	}
	return nil
}
