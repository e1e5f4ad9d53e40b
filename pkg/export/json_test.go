package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestExportJSON_Schema(t *testing.T) {
	lo := buildFixtureLayout()
	data, err := ExportJSON("fc4", lo)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded["name"] != "fc4" {
		t.Errorf("name = %v, want fc4", decoded["name"])
	}
	if decoded["seed"].(float64) != float64(0xC0FFEE) {
		t.Errorf("seed = %v, want %d", decoded["seed"], 0xC0FFEE)
	}
	if _, ok := decoded["geyser"]; ok {
		t.Error("geyser should be omitted when the layout has none")
	}
	if _, ok := decoded["hole"]; !ok {
		t.Error("hole should be present")
	}
	units, ok := decoded["map_units"].([]any)
	if !ok || len(units) != 2 {
		t.Fatalf("map_units = %v, want a 2-element array", decoded["map_units"])
	}
}

func TestExportJSONCompact_NoIndentation(t *testing.T) {
	lo := buildFixtureLayout()
	pretty, err := ExportJSON("fc4", lo)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	compact, err := ExportJSONCompact("fc4", lo)
	if err != nil {
		t.Fatalf("ExportJSONCompact: %v", err)
	}
	if len(compact) >= len(pretty) {
		t.Errorf("compact output (%d bytes) should be shorter than indented output (%d bytes)", len(compact), len(pretty))
	}

	var a, b map[string]any
	if err := json.Unmarshal(pretty, &a); err != nil {
		t.Fatalf("decoding pretty: %v", err)
	}
	if err := json.Unmarshal(compact, &b); err != nil {
		t.Fatalf("decoding compact: %v", err)
	}
}

func TestSaveJSONToFile(t *testing.T) {
	lo := buildFixtureLayout()
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := SaveJSONToFile("fc4", lo, path); err != nil {
		t.Fatalf("SaveJSONToFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("file mode = %v, want 0644", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding saved file: %v", err)
	}
}

func TestExportJSON_DoorAndSpawnFields(t *testing.T) {
	lo := buildFixtureLayout()
	data, err := ExportJSON("fc4", lo)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var decoded struct {
		MapUnits []struct {
			Name  string `json:"name"`
			Doors []struct {
				Side   string `json:"side"`
				Linked bool   `json:"linked"`
				Capped bool   `json:"capped"`
			} `json:"doors"`
			SpawnPoints []struct {
				Type   string `json:"type"`
				Object string `json:"object"`
			} `json:"spawn_points"`
		} `json:"map_units"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	start := decoded.MapUnits[0]
	if start.Name != "start_1" {
		t.Fatalf("first unit = %q, want start_1", start.Name)
	}
	if len(start.Doors) != 1 || !start.Doors[0].Linked {
		t.Errorf("start_1's door should be linked: %+v", start.Doors)
	}

	var sawPearl bool
	for _, sp := range start.SpawnPoints {
		if sp.Type == "treasure" && sp.Object == "pearl" {
			sawPearl = true
		}
	}
	if !sawPearl {
		t.Errorf("expected a pearl treasure spawn point, got %+v", start.SpawnPoints)
	}
}
