package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/ink"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingWritesDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	path := filepath.Join(t.TempDir(), "inkpad", "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.FileExists(t, path)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")
	path := writeFile(t, `
[window]
width = 800
height = 600

[ink]
tool = "highlighter"
color = "#ff8800"
width = 24

[ai]
model = "some-model"
api_key = "from-file"
max_tokens = 300
timeout = "90s"

[log]
level = "DEBUG"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Window{Width: 800, Height: 600}, cfg.Window)
	assert.Equal(t, Ink{Tool: "highlighter", Color: "#ff8800", Width: 24}, cfg.Ink)
	assert.Equal(t, "some-model", cfg.AI.Model)
	assert.Equal(t, "from-file", cfg.AI.APIKey)
	assert.Equal(t, 300, cfg.AI.MaxTokens)
	assert.Equal(t, 90*time.Second, cfg.AI.Timeout.Duration)
	assert.Equal(t, Default().AI.Endpoint, cfg.AI.Endpoint)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	tc := cfg.ToolConfig()
	assert.Equal(t, ink.Highlighter, tc.Tool)
	assert.Equal(t, 24.0, tc.Width)
	assert.True(t, tc.DrawingEnabled)

	opts := cfg.ClientOptions()
	assert.Equal(t, "from-file", opts.APIKey)
	assert.Equal(t, 90*time.Second, opts.Timeout)
}

func TestLoadEnvKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")
	cfg, err := Load(writeFile(t, "[ai]\nmodel = \"m\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AI.APIKey)
}

func TestLoadRepairsValues(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	cfg, err := Load(writeFile(t, `
[window]
width = 10
height = 10

[ink]
tool = "crayon"
color = "octarine"
width = -1

[ai]
endpoint = "ftp://example.com"
model = " "
max_tokens = 0
timeout = "-5s"

[log]
level = "loud"
`))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	cfg, err := Load(writeFile(t, "[ink\ntool = "))
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(writeFile(t, "[ai]\ntimeout = \"soon\"\n"))
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	cfg := Default()
	cfg.Ink.Tool = "pencil"
	cfg.AI.Timeout = Duration{2 * time.Minute}
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "inkpad", "config.toml"), DefaultPath())
}

func TestDefaultNotebookPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "inkpad", "notebook.json"), DefaultNotebookPath())
}
