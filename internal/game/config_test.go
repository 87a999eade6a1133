package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfigFile(t *testing.T, mutate func(map[string]any)) string {
	t.Helper()
	raw, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("marshal default config: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal default config: %v", err)
	}
	if mutate != nil {
		mutate(doc)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal config doc: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_RoundTrip(t *testing.T) {
	path := writeConfigFile(t, nil)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("loaded config differs from source:\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestLoad_MissingKeyFails(t *testing.T) {
	path := writeConfigFile(t, func(doc map[string]any) {
		delete(doc["photon"].(map[string]any), "capacity")
	})
	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail when a required key is absent")
	} else if !strings.Contains(err.Error(), "photon.capacity") {
		t.Fatalf("error %q does not name the missing key", err)
	}
}

func TestLoad_MissingSectionFails(t *testing.T) {
	path := writeConfigFile(t, func(doc map[string]any) {
		delete(doc, "player")
	})
	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail when a whole section is absent")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"zero board width", func(doc map[string]any) {
			doc["board"].(map[string]any)["width"] = 0
		}},
		{"zero photon capacity", func(doc map[string]any) {
			doc["photon"].(map[string]any)["capacity"] = 0
		}},
		{"zero follow delay", func(doc map[string]any) {
			doc["player"].(map[string]any)["followDelay"] = 0
		}},
		{"chain smaller than fleet", func(doc map[string]any) {
			doc["player"].(map[string]any)["maxCompanions"] = 1
		}},
		{"negative enemy count", func(doc map[string]any) {
			doc["ship"].(map[string]any)["numEnemies"] = -1
		}},
		{"fleet larger than board", func(doc map[string]any) {
			doc["board"].(map[string]any)["width"] = 3
			doc["board"].(map[string]any)["height"] = 3
			doc["ship"].(map[string]any)["numCompanions"] = 5
			doc["ship"].(map[string]any)["numEnemies"] = 4
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeConfigFile(t, c.mutate)
			if _, err := Load(path); err == nil {
				t.Fatal("Load should reject the invalid value")
			}
		})
	}
}

func TestValidate_FleetFillingBoardConstructs(t *testing.T) {
	// Placement is one ship per tile, so a fleet exactly filling the board
	// is the legal maximum and must construct without incident.
	cfg := DefaultConfig()
	cfg.Board.Width = 3
	cfg.Board.Height = 3
	cfg.Ship.NumCompanions = 5
	cfg.Ship.NumEnemies = 3
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	s := NewSession(cfg, 1, IdleController{}, zerolog.Nop())
	if s.Fleet().Size() != 9 {
		t.Fatalf("fleet size = %d, want 9", s.Fleet().Size())
	}

	cfg.Ship.NumEnemies = 4
	if err := cfg.validate(); err == nil {
		t.Fatal("validate should reject a 10-ship fleet on 9 tiles")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}
