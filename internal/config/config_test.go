package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-galaxy/internal/galaxy"
	"github.com/litescript/ls-galaxy/internal/logging"
	"github.com/litescript/ls-galaxy/internal/view"
)

func missingDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(missingDotenv(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "info" || cfg.Level() != logging.LevelInfo {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.GalaxyArchetype() != galaxy.Spiral {
		t.Errorf("Archetype = %v, want spiral", cfg.GalaxyArchetype())
	}
	if cfg.ViewQuality() != view.QualityPrototype {
		t.Errorf("Quality = %v, want prototype", cfg.ViewQuality())
	}
	if cfg.FPS != 30 || cfg.FrameInterval() != time.Second/30 {
		t.Errorf("FPS = %d interval %v", cfg.FPS, cfg.FrameInterval())
	}
	if cfg.Sound || cfg.Seed != 0 || cfg.MaxEvents != 50 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LSG_ARCHETYPE", "Barred-Spiral")
	t.Setenv("LSG_QUALITY", "full")
	t.Setenv("LSG_SEED", "1234")
	t.Setenv("LSG_SOUND", "true")
	t.Setenv("LSG_LOG_LEVEL", "debug")

	cfg, err := Load(missingDotenv(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GalaxyArchetype() != galaxy.BarredSpiral {
		t.Errorf("Archetype = %v, want barred", cfg.GalaxyArchetype())
	}
	if cfg.ViewQuality() != view.QualityFull {
		t.Errorf("Quality = %v, want full", cfg.ViewQuality())
	}
	if cfg.Seed != 1234 || !cfg.Sound || cfg.Level() != logging.LevelDebug {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galaxy.env")
	content := "LSG_ARCHETYPE=dwarf\nLSG_FPS=200\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv sets variables process-wide; register cleanup for them.
	t.Setenv("LSG_ARCHETYPE", "")
	os.Unsetenv("LSG_ARCHETYPE")
	t.Setenv("LSG_FPS", "")
	os.Unsetenv("LSG_FPS")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GalaxyArchetype() != galaxy.Dwarf {
		t.Errorf("Archetype = %v, want dwarf", cfg.GalaxyArchetype())
	}
	if cfg.FPS != MaxFPS {
		t.Errorf("FPS = %d, want clamped to %d", cfg.FPS, MaxFPS)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
		wantMsg string
	}{
		{"bad archetype", "LSG_ARCHETYPE", "lenticular", galaxy.ErrUnknownArchetype, "archetype:"},
		{"bad quality", "LSG_QUALITY", "ultra", view.ErrUnknownQuality, "quality:"},
		{"bad fps", "LSG_FPS", "fast", nil, "parse env:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(missingDotenv(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q missing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := Config{Archetype: "spiral", Quality: "prototype", FPS: 1, Volume: 3, MaxEvents: -1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.FPS != MinFPS || cfg.Volume != 1 || cfg.MaxEvents != 50 {
		t.Errorf("cfg = %+v", cfg)
	}
}
