package caveinfo

import (
	"reflect"
	"testing"
)

func buildSampleFloorSpec() *FloorSpec {
	fs := &FloorSpec{
		Sublevel:  Sublevel{Game: "pikmin2", Cave: "fo", Floor: 3},
		Rooms:     CountRange{Min: 5, Max: 9},
		Hallways:  CountRange{Min: 2, Max: 4},
		Caps:      CountRange{Min: 1, Max: 3},
		SeedMix:   42,
		StartUnit: "start_room",
		UnitPool: []UnitRef{
			{InternalName: "room_a", Factor: 2},
			{InternalName: "hall_b", Factor: 1},
		},
		Treasures: []Treasure{
			{InternalName: "toy_ring_c_green", Weight: 10},
		},
		CapTekis: []CapTeki{
			{InternalName: "bridge_mat", Weight: 5},
		},
		Gates: []GateSpec{
			{InternalName: "gate_s", HP: 500, Weight: 3},
		},
		DoorTypes: newDoorCompat(),
	}
	for i := range fs.TekiGroups {
		fs.TekiGroups[i].Index = i
	}
	fs.TekiGroups[0].Entries = []TekiEntry{
		{InternalName: "chappy", Weight: 10, FallType: 1, SpawnConstraint: "ground"},
	}
	return fs
}

func TestFloorSpec_RoundTrip(t *testing.T) {
	fs1 := buildSampleFloorSpec()
	text := fs1.Serialize()

	sections, err := parseFile("test", text, strictMode)
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	fs2, err := interpretSections(fs1.Sublevel, sections, nil)
	if err != nil {
		t.Fatalf("interpretSections: %v", err)
	}

	if !reflect.DeepEqual(fs1, fs2) {
		t.Errorf("round trip mismatch:\nfirst:  %+v\nsecond: %+v", fs1, fs2)
	}
}

func TestFloorSpec_UnknownSectionsTolerated(t *testing.T) {
	src := `
{
5 9 2 4 1 3 42 start_room
}
99 {
some unrecognized future field
}
`
	sections, err := parseFile("test", src, strictMode)
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}
	fs, err := interpretSections(Sublevel{}, sections, nil)
	if err != nil {
		t.Fatalf("interpretSections: %v", err)
	}
	if fs.Rooms.Min != 5 || fs.Rooms.Max != 9 {
		t.Errorf("Rooms = %+v, want {5 9}", fs.Rooms)
	}
	if fs.Hallways.Min != 2 || fs.Hallways.Max != 4 {
		t.Errorf("Hallways = %+v, want {2 4}", fs.Hallways)
	}
	if fs.Caps.Min != 1 || fs.Caps.Max != 3 {
		t.Errorf("Caps = %+v, want {1 3}", fs.Caps)
	}
}
