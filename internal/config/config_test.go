package config

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	terrors "github.com/vango-dev/tooltip/internal/errors"
)

func codeOf(err error) string {
	var te *terrors.TooltipError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Playground.Addr != DefaultAddr {
		t.Errorf("Playground.Addr = %q, want %q", cfg.Playground.Addr, DefaultAddr)
	}
	if cfg.Scenarios.Dir != DefaultScenarioDir {
		t.Errorf("Scenarios.Dir = %q, want %q", cfg.Scenarios.Dir, DefaultScenarioDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if d, _ := cfg.ReadTimeout(); d != 5*time.Minute {
		t.Errorf("ReadTimeout = %s", d)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if codeOf(err) != "T010" {
		t.Errorf("missing config: err = %v, want T010", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "playground": {
    "addr": ":9000",
    "positioner": "static"
  },
  "log": {
    "level": "debug"
  },
  "tooltip": {
    "trigger": "click",
    "delayShow": 120
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Playground.Addr != ":9000" || cfg.Playground.Positioner != "static" {
		t.Errorf("Playground = %+v", cfg.Playground)
	}
	if cfg.Playground.ReadTimeout != DefaultReadTimeout || cfg.Log.Format != "text" {
		t.Error("defaults not applied to unset fields")
	}
	if cfg.Path() != configPath || cfg.Dir() != tmpDir {
		t.Errorf("Path = %q, Dir = %q", cfg.Path(), cfg.Dir())
	}

	tc, err := cfg.Tooltip.ToConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(tc.Trigger) != 1 || tc.Trigger[0] != "click" || tc.DelayShow != 120*time.Millisecond {
		t.Errorf("Tooltip = %+v", tc)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(tmpDir)
	if codeOf(err) != "T011" {
		t.Errorf("err = %v, want T011", err)
	}
}

func TestLoadOptional(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := LoadOptional(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Playground.Addr != DefaultAddr {
		t.Errorf("Addr = %q", cfg.Playground.Addr)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := New()
	cfg.Playground.Addr = ":8181"
	if err := cfg.SaveTo(filepath.Join(tmpDir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Playground.Addr != ":8181" {
		t.Errorf("Addr = %q", loaded.Playground.Addr)
	}
	if len(loaded.Tooltip.Trigger) != 2 {
		t.Errorf("Tooltip.Trigger = %v", loaded.Tooltip.Trigger)
	}

	if err := (&Config{}).Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"timeout disabled", func(c *Config) { c.Playground.ReadTimeout = "0" }, true},
		{"bad timeout", func(c *Config) { c.Playground.ReadTimeout = "soon" }, false},
		{"negative timeout", func(c *Config) { c.Playground.ReadTimeout = "-1s" }, false},
		{"bad positioner", func(c *Config) { c.Playground.Positioner = "fancy" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"upper level", func(c *Config) { c.Log.Level = "DEBUG" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"bad offset", func(c *Config) { c.Tooltip.Offset = []float64{1, 2, 3} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if !tt.ok && codeOf(err) != "T012" {
				t.Errorf("Validate() = %v, want T012", err)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("log output = %q", out)
	}
}

func TestScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := LoadOptional(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	files, err := cfg.ScenarioFiles()
	if err != nil || files != nil {
		t.Fatalf("missing dir: files = %v, err = %v", files, err)
	}

	dir := filepath.Join(tmpDir, DefaultScenarioDir)
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.yaml", "a.json", "c.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	files, err = cfg.ScenarioFiles()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.json", "b.yaml", "c.yml"}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, f, want[i])
		}
	}
}
