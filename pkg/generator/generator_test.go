package generator

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
)

func buildFixtureFloorSpec() *caveinfo.FloorSpec {
	start := &caveinfo.MapUnit{
		InternalName: "start",
		Shape:        caveinfo.ShapeRoom,
		Width:        2, Height: 2,
		Doors: []caveinfo.Door{{Side: caveinfo.DoorEast, Offset: 0, DoorType: 0}},
	}
	hallway := &caveinfo.MapUnit{
		InternalName: "hallway",
		Shape:        caveinfo.ShapeHallway,
		Width:        2, Height: 1,
		Doors: []caveinfo.Door{
			{Side: caveinfo.DoorWest, Offset: 0, DoorType: 0},
			{Side: caveinfo.DoorEast, Offset: 0, DoorType: 0},
		},
	}
	cap := &caveinfo.MapUnit{
		InternalName: "cap",
		Shape:        caveinfo.ShapeCap,
		Width:        1, Height: 1,
		Doors: []caveinfo.Door{{Side: caveinfo.DoorWest, Offset: 0, DoorType: 0}},
	}

	return &caveinfo.FloorSpec{
		Sublevel:  caveinfo.Sublevel{Game: "pikmin2", Cave: "fx", Floor: 1},
		Rooms:     caveinfo.CountRange{Min: 1, Max: 1},
		Hallways:  caveinfo.CountRange{Min: 1, Max: 1},
		Caps:      caveinfo.CountRange{Min: 1, Max: 1},
		StartUnit: "start",
		UnitPool: []caveinfo.UnitRef{
			{InternalName: "hallway", Factor: 1},
		},
		Units: map[string]*caveinfo.MapUnit{
			"start":   start,
			"hallway": hallway,
			"cap":     cap,
		},
	}
}

func footprintsOverlap(layout1 *layout.Layout) bool {
	g := layout.NewGrid()
	for i, pu := range layout1.Units {
		fp := layout.Footprint(pu.Unit, pu.X, pu.Y, pu.Rotation)
		if !g.Fits(fp) {
			return true
		}
		g.Occupy(fp, i)
	}
	return false
}

func TestGenerate_Basic(t *testing.T) {
	fs := buildFixtureFloorSpec()
	lo := Generate(context.Background(), fs, 0xCAFEBABE)

	if len(lo.Units) != 2 {
		t.Fatalf("got %d units, want 2 (start + hallway)", len(lo.Units))
	}
	if lo.Units[0].Unit.InternalName != "start" {
		t.Errorf("first unit = %q, want start", lo.Units[0].Unit.InternalName)
	}
	if footprintsOverlap(lo) {
		t.Error("placed units overlap")
	}
	for _, pu := range lo.Units {
		for _, pd := range pu.Doors {
			if pd == nil {
				continue
			}
			if pd.Linked == nil && !pd.Capped {
				t.Errorf("door %d of unit %q neither linked nor capped", pd.Index, pu.Unit.InternalName)
			}
		}
	}
}

func TestGenerate_Determinism(t *testing.T) {
	fs := buildFixtureFloorSpec()
	lo1 := Generate(context.Background(), fs, 12345)
	lo2 := Generate(context.Background(), fs, 12345)

	if len(lo1.Units) != len(lo2.Units) {
		t.Fatalf("unit count differs across runs: %d vs %d", len(lo1.Units), len(lo2.Units))
	}
	for i := range lo1.Units {
		a, b := lo1.Units[i], lo2.Units[i]
		if a.Unit.InternalName != b.Unit.InternalName || a.X != b.X || a.Y != b.Y || a.Rotation != b.Rotation {
			t.Errorf("unit %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestGenerate_NeverPanics(t *testing.T) {
	fs := buildFixtureFloorSpec()
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint32().Draw(rt, "seed")
		lo := Generate(context.Background(), fs, seed)
		if lo == nil {
			rt.Fatal("Generate returned nil layout")
		}
		if footprintsOverlap(lo) {
			rt.Fatal("overlapping placement")
		}
	})
}

func TestGenerate_CancelledContextStopsEarly(t *testing.T) {
	fs := buildFixtureFloorSpec()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lo := Generate(ctx, fs, 1)
	if len(lo.Units) != 0 {
		t.Errorf("got %d units after immediate cancellation, want 0", len(lo.Units))
	}
}
