package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
)

// SVGOptions configures the debug SVG renderer. Unlike a force-directed
// graph view, a layout already carries real grid coordinates, so these
// options only control presentation, not node placement.
type SVGOptions struct {
	CellSize   int    // Pixels per grid cell (default: 32)
	Margin     int    // Canvas margin in pixels (default: 40)
	ShowLabels bool   // Draw each unit's internal name
	ShowSpawns bool   // Draw markers for spawn points
	Title      string // Optional title drawn above the layout
	ShowStats  bool   // Draw a unit/spawn-count summary line
}

// DefaultSVGOptions returns sensible default rendering options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:   32,
		Margin:     40,
		ShowLabels: true,
		ShowSpawns: true,
		Title:      "Layout",
		ShowStats:  true,
	}
}

// ExportSVG renders lo as a top-down SVG floor plan: one rectangle per
// placed unit at its real grid position, lines between linked doors, dots
// for unlinked (capped or open) doors, and markers for the ship, hole,
// geyser, and other spawn points.
func ExportSVG(lo *layout.Layout, opts SVGOptions) ([]byte, error) {
	if lo == nil {
		return nil, fmt.Errorf("layout cannot be nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 32
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	headerHeight := 0
	if opts.Title != "" {
		headerHeight += 30
	}
	if opts.ShowStats {
		headerHeight += 20
	}

	minX, minY, maxX, maxY := bounds(lo)
	width := (maxX-minX)*opts.CellSize + 2*opts.Margin
	height := (maxY-minY)*opts.CellSize + 2*opts.Margin + headerHeight
	if width <= 0 {
		width = 2 * opts.Margin
	}
	if height <= 0 {
		height = 2*opts.Margin + headerHeight
	}

	toPx := func(gx, gy float64) (int, int) {
		return opts.Margin + int((gx-float64(minX))*float64(opts.CellSize)),
			opts.Margin + headerHeight + int((gy-float64(minY))*float64(opts.CellSize))
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	drawUnits(canvas, lo, opts, toPx)
	drawDoors(canvas, lo, opts, toPx)
	if opts.ShowSpawns {
		drawSpawnPoints(canvas, lo, opts, toPx)
	}
	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, lo, opts, width)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders lo and writes it to path, 0644.
func SaveSVGToFile(lo *layout.Layout, path string, opts SVGOptions) error {
	data, err := ExportSVG(lo, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// bounds returns the grid bounding box covering every placed unit's
// footprint, in unit cells.
func bounds(lo *layout.Layout) (minX, minY, maxX, maxY int) {
	first := true
	for _, pu := range lo.Units {
		fp := layout.Footprint(pu.Unit, pu.X, pu.Y, pu.Rotation)
		for _, cell := range fp {
			if first {
				minX, maxX = cell.X, cell.X
				minY, maxY = cell.Y, cell.Y
				first = false
				continue
			}
			if cell.X < minX {
				minX = cell.X
			}
			if cell.X+1 > maxX {
				maxX = cell.X + 1
			}
			if cell.Y < minY {
				minY = cell.Y
			}
			if cell.Y+1 > maxY {
				maxY = cell.Y + 1
			}
		}
	}
	return minX, minY, maxX, maxY
}

func shapeColor(shape caveinfo.UnitShape) string {
	switch shape {
	case caveinfo.ShapeRoom:
		return "#4299e1"
	case caveinfo.ShapeHallway:
		return "#718096"
	case caveinfo.ShapeCap:
		return "#9f7aea"
	default:
		return "#4a5568"
	}
}

func drawUnits(canvas *svg.SVG, lo *layout.Layout, opts SVGOptions, toPx func(float64, float64) (int, int)) {
	for _, pu := range lo.Units {
		fp := layout.Footprint(pu.Unit, pu.X, pu.Y, pu.Rotation)
		for _, cell := range fp {
			px, py := toPx(float64(cell.X), float64(cell.Y))
			canvas.Rect(px, py, opts.CellSize, opts.CellSize,
				fmt.Sprintf("fill:%s;stroke:#1a1a2e;stroke-width:1;opacity:0.85", shapeColor(pu.Unit.Shape)))
		}
		if opts.ShowLabels {
			px, py := toPx(float64(pu.X), float64(pu.Y))
			canvas.Text(px+4, py+12, pu.Unit.InternalName,
				"font-size:9px;font-family:monospace;fill:#e2e8f0")
		}
	}
}

func drawDoors(canvas *svg.SVG, lo *layout.Layout, opts SVGOptions, toPx func(float64, float64) (int, int)) {
	seen := make(map[*layout.PlacedDoor]bool)
	for _, pu := range lo.Units {
		for _, pd := range pu.Doors {
			if pd == nil || seen[pd] {
				continue
			}
			seen[pd] = true
			if pd.Linked != nil {
				seen[pd.Linked] = true
			}

			x1, y1 := toPx(pd.X, pd.Y)
			color := "#48bb78"
			style := ""
			switch {
			case pd.Gate != nil:
				color = "#ffd700"
			case pd.Capped:
				color = "#f56565"
			case pd.Linked == nil:
				color = "#718096"
				style = ";stroke-dasharray:3,3"
			}

			if pd.Linked != nil {
				x2, y2 := toPx(pd.Linked.X, pd.Linked.Y)
				canvas.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:%s;stroke-width:2%s", color, style))
			} else {
				canvas.Circle(x1, y1, 4, fmt.Sprintf("fill:%s", color))
			}
		}
	}
}

var spawnColors = map[caveinfo.SpawnKind]string{
	caveinfo.SpawnShip:     "#48bb78",
	caveinfo.SpawnHole:     "#1a202c",
	caveinfo.SpawnGeyser:   "#ed8936",
	caveinfo.SpawnTreasure: "#ffd700",
	caveinfo.SpawnItem:     "#38b2ac",
	caveinfo.SpawnEnemy:    "#f56565",
	caveinfo.SpawnGate:     "#9f7aea",
	caveinfo.SpawnWaypoint: "",
}

func drawSpawnPoints(canvas *svg.SVG, lo *layout.Layout, opts SVGOptions, toPx func(float64, float64) (int, int)) {
	for _, pu := range lo.Units {
		for _, psp := range pu.SpawnPoints {
			if psp.Kind == caveinfo.SpawnWaypoint {
				continue
			}
			color := spawnColors[psp.Kind]
			if color == "" {
				color = "#cbd5e0"
			}
			x, y := toPx(psp.X, psp.Y)
			canvas.Circle(x, y, 5, fmt.Sprintf("fill:%s;stroke:#000;stroke-width:1", color))
		}
	}
}

func drawHeader(canvas *svg.SVG, lo *layout.Layout, opts SVGOptions, width int) {
	y := 20
	if opts.Title != "" {
		canvas.Text(width/2, y, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		y += 25
	}
	if opts.ShowStats {
		gateCount := 0
		for _, pu := range lo.Units {
			for _, pd := range pu.Doors {
				if pd != nil && pd.Gate != nil {
					gateCount++
				}
			}
		}
		gateCount /= 2 // each gate counted from both sides
		stats := fmt.Sprintf("Units: %d | Spawn objects: %d | Gates: %d | Seed: %#x",
			len(lo.Units), len(lo.SpawnObjects), gateCount, lo.Seed)
		canvas.Text(width/2, y, stats,
			"text-anchor:middle;font-size:11px;fill:#a0aec0;font-family:monospace")
	}
}
