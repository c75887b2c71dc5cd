package cmd

import (
	"path/filepath"
	"testing"

	"github.com/bnema/gowlc/internal/ipc"
	"github.com/bnema/gowlc/wlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "gowlc.sock")
	dir := writeFiles(t, map[string]string{"gowlc.toml": "[ipc]\nsocket_path = '" + sock + "'\n"})
	cfgPath := filepath.Join(dir, "gowlc.toml")

	t.Run("not running", func(t *testing.T) {
		out, err := executeCommand(t, "status", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "not running")
	})

	t.Run("renders the published snapshot", func(t *testing.T) {
		store := &ipc.Store{}
		store.Publish(wlc.Snapshot{
			Running: true,
			Outputs: []wlc.OutputInfo{{Handle: 1, Name: "DP-1", Resolution: wlc.Size{W: 1920, H: 1080}, Scale: 1, Views: []wlc.Handle{2}}},
			Views:   []wlc.ViewInfo{{Handle: 2, Title: "foot", Output: 1}},
		})
		srv, err := ipc.NewSocketServer(sock, &ipc.StatusHandler{Store: store, Backend: "wlc", Script: "init.js"})
		require.NoError(t, err)
		require.NoError(t, srv.Start())
		defer srv.Stop()

		out, err := executeCommand(t, "status", "--config", cfgPath)
		require.NoError(t, err)
		for _, want := range []string{"COMPOSITOR STATUS", "wlc backend", "init.js", "Running", "DP-1", "1920x1080", "foot"} {
			assert.Contains(t, out, want)
		}
	})
}

func TestEvents(t *testing.T) {
	out, err := executeCommand(t, "events", "--config", filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	for _, info := range wlc.EventKinds() {
		assert.Contains(t, out, string(info.Kind))
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "version", "--config", filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "gowlc "+Version)
}
