package caveinfo

import (
	"fmt"
	"strconv"
)

// Section numbers used by the brace-format interpretation. The real game
// data's exact section layout was not recoverable in this environment (see
// DESIGN.md); this numbering is our own consistent scheme built strictly
// from the fields a floor spec must carry, with unknown positions inside
// a line tolerated.
const (
	secUnitPool   = 1
	secTekiBase   = 10 // 10..14 cover teki groups 0..4
	secTreasures  = 20
	secCapTekis   = 21
	secGates      = 30
	secDoorCompat = 40
)

// CountRange is an inclusive [Min, Max] target range.
type CountRange struct {
	Min, Max int
}

// TekiEntry is one weighted enemy-spawn candidate within a teki group.
type TekiEntry struct {
	InternalName    string
	Weight          uint32
	FallType        int
	SpawnConstraint string
}

// TekiGroup is one of the floor's five enemy-spawn groups (0..4).
type TekiGroup struct {
	Index   int
	Entries []TekiEntry
}

// Treasure is a weighted treasure-spawn candidate.
type Treasure struct {
	InternalName string
	Weight       uint32
}

// CapTeki is a weighted item/capteki-spawn candidate.
type CapTeki struct {
	InternalName string
	Weight       uint32
}

// GateSpec is a weighted gate candidate carrying its hit points.
type GateSpec struct {
	InternalName string
	HP           uint32
	Weight       uint32
}

// DoorCompat is the floor's door-type compatibility table: which pairs of
// door-type ids may be joined during placement. The exact table is part of
// the game data and is declared per floor rather than fixed
// globally, since different sublevels reuse door-type ids for different
// purposes. A floor that declares no table at all falls back to "compatible
// iff the two types are equal", which keeps generation from starving on
// floors that never bothered to declare one explicitly.
type DoorCompat struct {
	pairs    map[[2]int]bool
	declared bool
}

// Match reports whether door types a and b may be joined.
func (d DoorCompat) Match(a, b int) bool {
	if !d.declared {
		return a == b
	}
	if a > b {
		a, b = b, a
	}
	return d.pairs[[2]int{a, b}]
}

func newDoorCompat() DoorCompat {
	return DoorCompat{pairs: make(map[[2]int]bool)}
}

func (d *DoorCompat) add(a, b int) {
	d.declared = true
	if a > b {
		a, b = b, a
	}
	d.pairs[[2]int{a, b}] = true
}

// UnitRef is one entry in the floor's candidate map-unit pool: the unit's
// internal name and how many copies of it the pool carries (duplicated
// weighting, mirroring the game's data rather than a separate weight
// field).
type UnitRef struct {
	InternalName string
	Factor       int
}

// FloorSpec is the normalized, immutable description of a single sublevel,
// as loaded from its caveinfo file plus its resolved map-unit pool. Once
// constructed, it is never mutated: it is
// shared, read-only, across every generator call and every search worker.
type FloorSpec struct {
	Sublevel  Sublevel
	Rooms     CountRange
	Hallways  CountRange
	Caps      CountRange
	SeedMix   uint32
	StartUnit string

	TekiGroups [5]TekiGroup
	Treasures  []Treasure
	CapTekis   []CapTeki
	Gates      []GateSpec

	UnitPool []UnitRef
	Units    map[string]*MapUnit

	DoorTypes DoorCompat
}

// interpretSections builds a FloorSpec from parsed sections plus a resolved
// unit map. Unknown field positions within a line, and sections with
// unrecognized numbers, are silently ignored.
func interpretSections(sub Sublevel, sections []section, units map[string]*MapUnit) (*FloorSpec, error) {
	fs := &FloorSpec{Sublevel: sub, Units: units, DoorTypes: newDoorCompat()}

	for _, sec := range sections {
		if !sec.HasNumber {
			if err := interpretFloorInfo(fs, sec); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case sec.Number == secUnitPool:
			interpretUnitPool(fs, sec)
		case sec.Number >= secTekiBase && sec.Number < secTekiBase+5:
			interpretTekiGroup(fs, sec, sec.Number-secTekiBase)
		case sec.Number == secTreasures:
			interpretTreasures(fs, sec)
		case sec.Number == secCapTekis:
			interpretCapTekis(fs, sec)
		case sec.Number == secGates:
			interpretGates(fs, sec)
		case sec.Number == secDoorCompat:
			interpretDoorCompat(fs, sec)
		}
		// Unrecognized section numbers are tolerated (ignored), allowing
		// for game-variant-specific extensions not covered here.
	}

	for i := range fs.TekiGroups {
		fs.TekiGroups[i].Index = i
	}

	return fs, nil
}

func interpretFloorInfo(fs *FloorSpec, sec section) error {
	if len(sec.Lines) == 0 {
		return nil
	}
	line := sec.Lines[0]
	get := func(i int) (int, bool) {
		if i >= len(line) {
			return 0, false
		}
		v, err := strconv.Atoi(line[i])
		return v, err == nil
	}
	if v, ok := get(0); ok {
		fs.Rooms.Min = v
	}
	if v, ok := get(1); ok {
		fs.Rooms.Max = v
	}
	if v, ok := get(2); ok {
		fs.Hallways.Min = v
	}
	if v, ok := get(3); ok {
		fs.Hallways.Max = v
	}
	if v, ok := get(4); ok {
		fs.Caps.Min = v
	}
	if v, ok := get(5); ok {
		fs.Caps.Max = v
	}
	if v, ok := get(6); ok {
		fs.SeedMix = uint32(v)
	}
	if len(line) > 7 && line[7] != "-" {
		fs.StartUnit = line[7]
	}
	return nil
}

func interpretUnitPool(fs *FloorSpec, sec section) {
	for _, line := range sec.Lines {
		if len(line) == 0 {
			continue
		}
		ref := UnitRef{InternalName: line[0], Factor: 1}
		if len(line) > 1 {
			if n, err := strconv.Atoi(line[1]); err == nil {
				ref.Factor = n
			}
		}
		fs.UnitPool = append(fs.UnitPool, ref)
	}
}

func interpretTekiGroup(fs *FloorSpec, sec section, idx int) {
	for _, line := range sec.Lines {
		if len(line) == 0 {
			continue
		}
		e := TekiEntry{InternalName: line[0]}
		if len(line) > 1 {
			if w, err := strconv.Atoi(line[1]); err == nil {
				e.Weight = uint32(w)
			}
		}
		if len(line) > 2 {
			if f, err := strconv.Atoi(line[2]); err == nil {
				e.FallType = f
			}
		}
		if len(line) > 3 && line[3] != "-" {
			e.SpawnConstraint = line[3]
		}
		fs.TekiGroups[idx].Entries = append(fs.TekiGroups[idx].Entries, e)
	}
}

func interpretTreasures(fs *FloorSpec, sec section) {
	for _, line := range sec.Lines {
		if len(line) == 0 {
			continue
		}
		t := Treasure{InternalName: line[0]}
		if len(line) > 1 {
			if w, err := strconv.Atoi(line[1]); err == nil {
				t.Weight = uint32(w)
			}
		}
		fs.Treasures = append(fs.Treasures, t)
	}
}

func interpretCapTekis(fs *FloorSpec, sec section) {
	for _, line := range sec.Lines {
		if len(line) == 0 {
			continue
		}
		c := CapTeki{InternalName: line[0]}
		if len(line) > 1 {
			if w, err := strconv.Atoi(line[1]); err == nil {
				c.Weight = uint32(w)
			}
		}
		fs.CapTekis = append(fs.CapTekis, c)
	}
}

func interpretGates(fs *FloorSpec, sec section) {
	for _, line := range sec.Lines {
		if len(line) == 0 {
			continue
		}
		g := GateSpec{InternalName: line[0]}
		if len(line) > 1 {
			if hp, err := strconv.Atoi(line[1]); err == nil {
				g.HP = uint32(hp)
			}
		}
		if len(line) > 2 {
			if w, err := strconv.Atoi(line[2]); err == nil {
				g.Weight = uint32(w)
			}
		}
		fs.Gates = append(fs.Gates, g)
	}
}

func interpretDoorCompat(fs *FloorSpec, sec section) {
	for _, line := range sec.Lines {
		if len(line) < 2 {
			continue
		}
		a, errA := strconv.Atoi(line[0])
		b, errB := strconv.Atoi(line[1])
		if errA != nil || errB != nil {
			continue
		}
		fs.DoorTypes.add(a, b)
	}
}

// Serialize regenerates the brace-format text for fs. Reparsing the result
// must yield an equal FloorSpec.
func (fs *FloorSpec) Serialize() string {
	var out string

	out += fmt.Sprintf("{\n%d %d %d %d %d %d %d %s\n}\n",
		fs.Rooms.Min, fs.Rooms.Max, fs.Hallways.Min, fs.Hallways.Max,
		fs.Caps.Min, fs.Caps.Max, fs.SeedMix, orDash(fs.StartUnit))

	if len(fs.UnitPool) > 0 {
		out += fmt.Sprintf("%d {\n", secUnitPool)
		for _, u := range fs.UnitPool {
			out += fmt.Sprintf("%s %d\n", u.InternalName, u.Factor)
		}
		out += "}\n"
	}

	for i, g := range fs.TekiGroups {
		if len(g.Entries) == 0 {
			continue
		}
		out += fmt.Sprintf("%d {\n", secTekiBase+i)
		for _, e := range g.Entries {
			out += fmt.Sprintf("%s %d %d %s\n", e.InternalName, e.Weight, e.FallType, orDash(e.SpawnConstraint))
		}
		out += "}\n"
	}

	if len(fs.Treasures) > 0 {
		out += fmt.Sprintf("%d {\n", secTreasures)
		for _, t := range fs.Treasures {
			out += fmt.Sprintf("%s %d\n", t.InternalName, t.Weight)
		}
		out += "}\n"
	}

	if len(fs.CapTekis) > 0 {
		out += fmt.Sprintf("%d {\n", secCapTekis)
		for _, c := range fs.CapTekis {
			out += fmt.Sprintf("%s %d\n", c.InternalName, c.Weight)
		}
		out += "}\n"
	}

	if len(fs.Gates) > 0 {
		out += fmt.Sprintf("%d {\n", secGates)
		for _, g := range fs.Gates {
			out += fmt.Sprintf("%s %d %d\n", g.InternalName, g.HP, g.Weight)
		}
		out += "}\n"
	}

	if fs.DoorTypes.declared {
		out += fmt.Sprintf("%d {\n", secDoorCompat)
		for pair := range fs.DoorTypes.pairs {
			out += fmt.Sprintf("%d %d\n", pair[0], pair[1])
		}
		out += "}\n"
	}

	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
