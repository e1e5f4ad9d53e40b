package export

import (
	"encoding/json"
	"os"

	"github.com/dshills/caveripper/pkg/layout"
)

// wireLayout is the on-disk JSON shape of a generated layout:
// `{name, seed, ship, hole?, geyser?, map_units: [...]}`. Optional fields
// are only present when the layout actually carries them, since most floors
// have no geyser and some challenge-mode floors have no hole.
type wireLayout struct {
	Name     string      `json:"name"`
	Seed     uint32      `json:"seed"`
	Ship     [2]float64  `json:"ship"`
	Hole     *[2]float64 `json:"hole,omitempty"`
	Geyser   *[2]float64 `json:"geyser,omitempty"`
	MapUnits []wireUnit  `json:"map_units"`
}

type wireUnit struct {
	Name        string      `json:"name"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Rotation    int         `json:"rotation"`
	Doors       []wireDoor  `json:"doors"`
	SpawnPoints []wireSpawn `json:"spawn_points"`
}

type wireDoor struct {
	Side   string `json:"side"`
	Linked bool   `json:"linked"`
	Capped bool   `json:"capped"`
	Gated  bool   `json:"gated"`
}

type wireSpawn struct {
	Type   string  `json:"type"`
	Object string  `json:"object,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// toWireLayout flattens a layout.Layout into the wire schema. name is the
// sublevel shortcode or human label the caller wants recorded; it has no
// bearing on the layout itself.
func toWireLayout(name string, lo *layout.Layout) wireLayout {
	w := wireLayout{Name: name, Seed: lo.Seed}
	if lo.Ship != nil {
		w.Ship = [2]float64{lo.Ship.X, lo.Ship.Y}
	}
	if lo.Hole != nil {
		pt := [2]float64{lo.Hole.X, lo.Hole.Y}
		w.Hole = &pt
	}
	if lo.Geyser != nil {
		pt := [2]float64{lo.Geyser.X, lo.Geyser.Y}
		w.Geyser = &pt
	}

	w.MapUnits = make([]wireUnit, len(lo.Units))
	for i, pu := range lo.Units {
		wu := wireUnit{
			Name:     pu.Unit.InternalName,
			X:        pu.X,
			Y:        pu.Y,
			Rotation: pu.Rotation,
		}
		wu.Doors = make([]wireDoor, len(pu.Doors))
		for j, pd := range pu.Doors {
			if pd == nil {
				continue
			}
			wd := wireDoor{Side: pu.Unit.Doors[j].Side.String(), Capped: pd.Capped, Linked: pd.Linked != nil}
			if pd.Gate != nil {
				wd.Gated = true
			}
			wu.Doors[j] = wd
		}
		wu.SpawnPoints = make([]wireSpawn, len(pu.SpawnPoints))
		for j, psp := range pu.SpawnPoints {
			ws := wireSpawn{Type: psp.Kind.String(), X: psp.X, Y: psp.Y}
			if psp.Object != nil {
				ws.Object = psp.Object.InternalName
			}
			wu.SpawnPoints[j] = ws
		}
		w.MapUnits[i] = wu
	}
	return w
}

// ExportJSON serializes a generated layout to indented JSON matching
// the layout output schema.
func ExportJSON(name string, lo *layout.Layout) ([]byte, error) {
	return json.MarshalIndent(toWireLayout(name, lo), "", "  ")
}

// ExportJSONCompact serializes a layout to compact JSON, suitable for
// streaming one hit per line from the search driver.
func ExportJSONCompact(name string, lo *layout.Layout) ([]byte, error) {
	return json.Marshal(toWireLayout(name, lo))
}

// SaveJSONToFile exports lo to path as indented JSON, 0644.
func SaveJSONToFile(name string, lo *layout.Layout, path string) error {
	data, err := ExportJSON(name, lo)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveJSONCompactToFile exports lo to path as compact JSON, 0644.
func SaveJSONCompactToFile(name string, lo *layout.Layout, path string) error {
	data, err := ExportJSONCompact(name, lo)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
