// Package config loads the inkpad configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"inkpad/internal/ai"
	"inkpad/internal/ink"
)

// EnvAPIKey overrides an empty ai.api_key.
const EnvAPIKey = "ANTHROPIC_API_KEY"

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Ink struct {
	Tool  string  `toml:"tool"`
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

type AI struct {
	Endpoint  string   `toml:"endpoint"`
	Model     string   `toml:"model"`
	APIKey    string   `toml:"api_key"`
	MaxTokens int      `toml:"max_tokens"`
	Timeout   Duration `toml:"timeout"`
}

type Log struct {
	Level string `toml:"level"`
}

// Config is the whole configuration file.
type Config struct {
	Window Window `toml:"window"`
	Ink    Ink    `toml:"ink"`
	AI     AI     `toml:"ai"`
	Log    Log    `toml:"log"`
}

// Duration is a time.Duration written as a string such as "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() *Config {
	tc := ink.DefaultToolConfig()
	return &Config{
		Window: Window{Width: 1100, Height: 750},
		Ink:    Ink{Tool: string(tc.Tool), Color: tc.Color, Width: tc.Width},
		AI: AI{
			Endpoint:  ai.DefaultEndpoint,
			Model:     ai.DefaultModel,
			MaxTokens: ai.DefaultMaxTokens,
			Timeout:   Duration{ai.DefaultTimeout},
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/inkpad/config.toml, falling back to
// ~/.config/inkpad/config.toml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "inkpad", "config.toml")
}

// DefaultNotebookPath is $XDG_DATA_HOME/inkpad/notebook.json, falling back to
// ~/.local/share/inkpad/notebook.json.
func DefaultNotebookPath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "inkpad", "notebook.json")
}

// Load reads the file at path. A missing file yields the defaults, which are
// written to path. A file that fails to parse yields the defaults together
// with the error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		cfg.applyEnv()
		if err := Default().Save(path); err != nil {
			slog.Warn("could not write default config", slog.String("path", path), slog.Any("error", err))
		}
		return cfg, nil
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		cfg = Default()
		cfg.applyEnv()
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("unknown config keys", slog.String("path", path), slog.String("keys", strings.Join(keys, ",")))
	}
	cfg.Validate()
	cfg.applyEnv()
	return cfg, nil
}

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	def := Default()

	if c.Window.Width < 320 || c.Window.Height < 240 {
		c.Window = def.Window
	}

	if _, err := ink.ParseTool(c.Ink.Tool); err != nil {
		c.Ink.Tool = def.Ink.Tool
	}
	if _, err := ink.ParseColor(c.Ink.Color); err != nil {
		c.Ink.Color = def.Ink.Color
	}
	if c.Ink.Width <= 0 || c.Ink.Width > 200 {
		c.Ink.Width = def.Ink.Width
	}

	if !strings.HasPrefix(c.AI.Endpoint, "http://") && !strings.HasPrefix(c.AI.Endpoint, "https://") {
		c.AI.Endpoint = def.AI.Endpoint
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		c.AI.Model = def.AI.Model
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = def.AI.MaxTokens
	}
	if c.AI.Timeout.Duration <= 0 {
		c.AI.Timeout = def.AI.Timeout
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if _, ok := levels[level]; !ok {
		level = def.Log.Level
	}
	c.Log.Level = level
}

func (c *Config) applyEnv() {
	if c.AI.APIKey == "" {
		c.AI.APIKey = os.Getenv(EnvAPIKey)
	}
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return toml.NewEncoder(f).Encode(c)
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevel returns the slog level named by log.level.
func (c *Config) LogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// ToolConfig is the initial ink toolbar state.
func (c *Config) ToolConfig() ink.ToolConfig {
	tc := ink.DefaultToolConfig()
	if t, err := ink.ParseTool(c.Ink.Tool); err == nil {
		tc.Tool = t
	}
	if _, err := ink.ParseColor(c.Ink.Color); err == nil {
		tc.Color = c.Ink.Color
	}
	if c.Ink.Width > 0 {
		tc.Width = c.Ink.Width
	}
	return tc
}

// ClientOptions configures the model client.
func (c *Config) ClientOptions() ai.Options {
	return ai.Options{
		APIKey:    c.AI.APIKey,
		Model:     c.AI.Model,
		Endpoint:  c.AI.Endpoint,
		MaxTokens: c.AI.MaxTokens,
		Timeout:   c.AI.Timeout.Duration,
	}
}
