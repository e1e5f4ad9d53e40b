package layout

import (
	"testing"

	"github.com/dshills/caveripper/pkg/caveinfo"
)

func TestGrid_FitsAndOccupy(t *testing.T) {
	g := NewGrid()
	room := &caveinfo.MapUnit{Shape: caveinfo.ShapeRoom, Width: 2, Height: 2}

	fp1 := Footprint(room, 0, 0, 0)
	if len(fp1) != 4 {
		t.Fatalf("got %d cells, want 4", len(fp1))
	}
	if !g.Fits(fp1) {
		t.Fatal("empty grid should fit a fresh footprint")
	}
	g.Occupy(fp1, 0)

	fp2 := Footprint(room, 1, 1, 0)
	if g.Fits(fp2) {
		t.Fatal("overlapping footprint should not fit")
	}

	fp3 := Footprint(room, 2, 0, 0)
	if !g.Fits(fp3) {
		t.Fatal("adjacent non-overlapping footprint should fit")
	}

	if idx, ok := g.Owner(0, 0); !ok || idx != 0 {
		t.Errorf("Owner(0,0) = (%d, %v), want (0, true)", idx, ok)
	}
	if _, ok := g.Owner(5, 5); ok {
		t.Error("Owner(5,5) should report unoccupied")
	}
}

func TestFootprint_HallwayForcedToOneCellWide(t *testing.T) {
	hallway := &caveinfo.MapUnit{Shape: caveinfo.ShapeHallway, Width: 4, Height: 3}
	fp := Footprint(hallway, 0, 0, 0)
	if len(fp) != 4 {
		t.Fatalf("hallway footprint has %d cells, want 4 (width 4, forced height 1)", len(fp))
	}
	for _, c := range fp {
		if c.Y != 0 {
			t.Errorf("hallway cell %+v has nonzero Y, want height forced to 1", c)
		}
	}
}

func TestFootprint_RotationSwapsDimensions(t *testing.T) {
	room := &caveinfo.MapUnit{Shape: caveinfo.ShapeRoom, Width: 3, Height: 1}
	fp := Footprint(room, 0, 0, 90)
	if len(fp) != 3 {
		t.Fatalf("got %d cells, want 3", len(fp))
	}
	maxX, maxY := 0, 0
	for _, c := range fp {
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	if maxX != 0 || maxY != 2 {
		t.Errorf("rotated footprint bounds = (%d,%d), want (0,2)", maxX, maxY)
	}
}
