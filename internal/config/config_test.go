package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfg = nil
	configPathOverride = ""
	t.Cleanup(func() {
		viper.Reset()
		cfg = nil
		configPathOverride = ""
	})
}

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		reset(t)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		require.NoError(t, Init())
		c := Get()
		assert.Equal(t, "wlc", c.Native.Backend)
		assert.True(t, c.IPC.Enabled)
		assert.Empty(t, c.Script.Path)
	})

	t.Run("reads an explicit file", func(t *testing.T) {
		reset(t)
		path := filepath.Join(t.TempDir(), "custom.toml")
		content := `
[native]
backend = "sim"

[native.env]
WLC_XWAYLAND = "0"

[script]
path = "/etc/gowlc/init.js"

[ipc]
enabled = false

[logging]
log_level = "debug"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		SetConfigPath(path)

		require.NoError(t, Init())
		c := Get()
		assert.Equal(t, "sim", c.Native.Backend)
		assert.Equal(t, "/etc/gowlc/init.js", c.Script.Path)
		assert.False(t, c.IPC.Enabled)
		assert.Equal(t, "debug", c.Logging.LogLevel)
		// viper lower-cases map keys
		assert.Equal(t, "0", c.Native.Env["wlc_xwayland"])
		assert.Equal(t, map[string]string{"WLC_XWAYLAND": "0"}, c.NativeEnv())
	})

	t.Run("tolerates a missing explicit file", func(t *testing.T) {
		reset(t)
		SetConfigPath(filepath.Join(t.TempDir(), "new", "gowlc.toml"))

		require.NoError(t, Init())
		assert.Equal(t, "wlc", Get().Native.Backend)
	})

	t.Run("rejects an unknown backend", func(t *testing.T) {
		reset(t)
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[native]\nbackend = \"x11\"\n"), 0644))
		SetConfigPath(path)

		err := Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "native.backend")
	})

	t.Run("handles invalid TOML", func(t *testing.T) {
		reset(t)
		path := filepath.Join(t.TempDir(), "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte("[native\nbackend = 1"), 0644))
		SetConfigPath(path)

		err := Init()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "reading config"), err.Error())
	})
}

func TestSaveRoundTrip(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "nested", "gowlc.toml")
	SetConfigPath(path)

	c := DefaultConfig
	c.Native.Backend = "sim"
	c.Script.Path = "handlers.js"
	Set(&c)
	require.NoError(t, Save())

	viper.Reset()
	cfg = nil
	require.NoError(t, Init())
	assert.Equal(t, "sim", Get().Native.Backend)
	assert.Equal(t, "handlers.js", Get().Script.Path)
}

func TestSocketPath(t *testing.T) {
	c := DefaultConfig

	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000/gowlc.sock", c.SocketPath())

	c.IPC.SocketPath = "/tmp/custom.sock"
	assert.Equal(t, "/tmp/custom.sock", c.SocketPath())

	t.Setenv("XDG_RUNTIME_DIR", "")
	c.IPC.SocketPath = ""
	assert.True(t, strings.HasSuffix(c.SocketPath(), ".sock"))
}

func TestGetConfigPath(t *testing.T) {
	reset(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/gowlc/gowlc.toml", GetConfigPath())

	SetConfigPath("/tmp/override.toml")
	assert.Equal(t, "/tmp/override.toml", GetConfigPath())
}
