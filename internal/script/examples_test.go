package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/gowlc/wlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTilingScript(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "scripts")
	scenario, err := os.ReadFile(filepath.Join(dir, "desk.yaml"))
	require.NoError(t, err)

	f := newFixture(t, string(scenario))
	require.NoError(t, f.host.Load(filepath.Join(dir, "tiling.js")))
	f.run(t)

	results := f.native.Results()
	require.Len(t, results, 8)
	assert.True(t, *results[3].Returned, "logo+enter is consumed")
	assert.True(t, *results[7].Returned, "logo+esc is consumed")
	assert.Zero(t, f.b.HandlerFailures(), "%v", f.b.LastError())
	assert.Equal(t, [][]string{{"foot"}}, f.native.Execs())

	// foot is gone, firefox fills the resized output, the modal kept its own size.
	assert.Equal(t, []wlc.Handle{11, 12}, f.native.Views())
	g, err := f.native.ViewGeometry(11)
	require.NoError(t, err)
	assert.Equal(t, wlc.Geometry{Size: wlc.Size{W: 1920, H: 1080}}, g)
	modal, err := f.native.ViewGeometry(12)
	require.NoError(t, err)
	assert.NotEqual(t, g, modal)
}
