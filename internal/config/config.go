package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/internal/scenario"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tooltipctl.json"

	// DefaultAddr is the default playground listen address.
	DefaultAddr = "localhost:7070"

	// DefaultReadTimeout is the default playground idle timeout.
	DefaultReadTimeout = "5m"

	// DefaultScenarioDir is the default scenario directory.
	DefaultScenarioDir = "scenarios"
)

// Config represents the complete tooltipctl.json configuration.
type Config struct {
	// Playground configures 'tooltipctl serve'.
	Playground PlaygroundConfig `json:"playground,omitempty"`

	// Log configures diagnostics for every command.
	Log LogConfig `json:"log,omitempty"`

	// Scenarios configures where 'tooltipctl run' looks by default.
	Scenarios ScenariosConfig `json:"scenarios,omitempty"`

	// Tooltip is the configuration playground sessions start with.
	Tooltip scenario.FileConfig `json:"tooltip,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PlaygroundConfig contains playground server settings.
type PlaygroundConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// ReadTimeout closes idle sessions (e.g., "5m"). "0" disables it.
	ReadTimeout string `json:"readTimeout,omitempty"`

	// Positioner is the default engine for sessions: basic or static.
	Positioner string `json:"positioner,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// ScenariosConfig contains scenario discovery settings.
type ScenariosConfig struct {
	// Dir is the directory scanned for scenario files.
	Dir string `json:"dir,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Playground: PlaygroundConfig{
			Addr:        DefaultAddr,
			ReadTimeout: DefaultReadTimeout,
			Positioner:  scenario.PositionerBasic,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Scenarios: ScenariosConfig{
			Dir: DefaultScenarioDir,
		},
		Tooltip: scenario.FileConfig{
			Trigger: scenario.StringList{"hover", "focus"},
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for tooltipctl.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOptional is Load, returning the defaults when the file is missing.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := New()
		cfg.configPath = path
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("T010").
				WithDetail("No tooltipctl.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'tooltipctl init' to create one")
		}
		return nil, errors.New("T011").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("T011").
			WithDetail("Failed to parse tooltipctl.json: " + err.Error()).
			WithSuggestion("Check that tooltipctl.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadFromWorkingDir loads configuration from the current working
// directory, falling back to the defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("T011").Wrap(err)
	}
	return LoadOptional(wd)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("T011").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("T011").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Playground.Addr == "" {
		c.Playground.Addr = d.Playground.Addr
	}
	if c.Playground.ReadTimeout == "" {
		c.Playground.ReadTimeout = d.Playground.ReadTimeout
	}
	if c.Playground.Positioner == "" {
		c.Playground.Positioner = d.Playground.Positioner
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Scenarios.Dir == "" {
		c.Scenarios.Dir = d.Scenarios.Dir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.ReadTimeout(); err != nil {
		return errors.New("T012").
			WithDetail("playground.readTimeout: " + err.Error()).
			WithExample(`"readTimeout": "5m"`)
	}
	switch c.Playground.Positioner {
	case scenario.PositionerBasic, scenario.PositionerStatic:
	default:
		return errors.New("T012").
			WithDetailf("playground.positioner %q is not basic or static", c.Playground.Positioner)
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("T012").
			WithDetailf("log.level %q is not debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("T012").
			WithDetailf("log.format %q is not text or json", c.Log.Format)
	}
	if _, err := c.Tooltip.ToConfig(); err != nil {
		return errors.New("T012").WithDetail("tooltip: " + err.Error())
	}
	return nil
}

// ReadTimeout parses Playground.ReadTimeout.
func (c *Config) ReadTimeout() (time.Duration, error) {
	if c.Playground.ReadTimeout == "" || c.Playground.ReadTimeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Playground.ReadTimeout)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.Newf(errors.CategoryConfig, "negative duration %s", d)
	}
	return d, nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Logger builds a logger writing to w with the configured level and format.
// Unknown levels log at info.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levels[strings.ToLower(c.Log.Level)]}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ScenariosPath returns the absolute path to the scenario directory.
func (c *Config) ScenariosPath() string {
	path := c.Scenarios.Dir
	if path == "" {
		path = DefaultScenarioDir
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// ScenarioFiles lists scenario files (.yaml, .yml, .json) in the scenario
// directory, sorted. A missing directory yields none.
func (c *Config) ScenarioFiles() ([]string, error) {
	entries, err := os.ReadDir(c.ScenariosPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New("T100").Wrap(err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(c.ScenariosPath(), e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
