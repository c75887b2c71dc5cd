package wlc

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputAccessors(t *testing.T) {
	n := newFakeNative()
	b := New(n, Options{})

	var resolutionEvents []*OutputResolutionEvent
	require.NoError(t, b.SetHandler(EventOutputResolutionChanged, Observe(func(ev Event) {
		resolutionEvents = append(resolutionEvents, ev.(*OutputResolutionEvent))
	})))

	runWith(t, b, n, func(n *fakeNative) {
		n.addOutput(1, "DP-2", Size{W: 1280, H: 720})
		n.addView(2, 1, "a")
		n.addView(3, 1, "b")
		o := b.reg.output(1)

		name, err := o.Name()
		require.NoError(t, err)
		assert.Equal(t, "DP-2", name)

		require.NoError(t, o.SetResolution(Size{W: 1920, H: 1080}, 2))
		res, err := o.Resolution()
		require.NoError(t, err)
		assert.Equal(t, Size{W: 1920, H: 1080}, res)
		scale, err := o.Scale()
		require.NoError(t, err)
		assert.Equal(t, uint32(2), scale)

		err = o.SetResolution(Size{}, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRejectedByNative)
		var nerr *NativeError
		require.True(t, errors.As(err, &nerr))
		assert.Equal(t, int(syscall.EINVAL), nerr.Code)

		require.NoError(t, o.SetSleep(true))
		sleeping, err := o.Sleeping()
		require.NoError(t, err)
		assert.True(t, sleeping)

		require.NoError(t, o.SetMask(0b10))
		mask, err := o.Mask()
		require.NoError(t, err)
		assert.Equal(t, uint32(0b10), mask)

		views, err := o.Views()
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Same(t, b.reg.view(2), views[0])

		require.NoError(t, o.Focus())
		focused, err := b.Compositor().FocusedOutput()
		require.NoError(t, err)
		assert.Same(t, o, focused)
	})

	require.Len(t, resolutionEvents, 1)
	assert.Equal(t, Size{W: 1280, H: 720}, resolutionEvents[0].From)
	assert.Equal(t, Size{W: 1920, H: 1080}, resolutionEvents[0].To)
}

func TestViewAccessors(t *testing.T) {
	n := newFakeNative()
	b := New(n, Options{})

	runWith(t, b, n, func(n *fakeNative) {
		n.addOutput(1, "DP-1", Size{W: 1920, H: 1080})
		n.addOutput(5, "DP-2", Size{W: 1920, H: 1080})
		n.addView(2, 1, "terminal")
		v := b.reg.view(2)

		title, err := v.Title()
		require.NoError(t, err)
		assert.Equal(t, "terminal", title)

		g := Geometry{Origin: Point{X: 10, Y: 20}, Size: Size{W: 800, H: 600}}
		require.NoError(t, v.SetGeometry(EdgeBottomRight, g))
		got, err := v.Geometry()
		require.NoError(t, err)
		assert.Equal(t, g, got)

		err = v.SetGeometry(EdgeNone, Geometry{Size: Size{W: 0, H: 10}})
		assert.ErrorIs(t, err, ErrRejectedByNative)

		require.NoError(t, v.SetState(StateMaximized|StateActivated, true))
		require.NoError(t, v.SetState(StateActivated, false))
		state, err := v.State()
		require.NoError(t, err)
		assert.Equal(t, StateMaximized, state)

		out, err := v.Output()
		require.NoError(t, err)
		assert.Same(t, b.reg.output(1), out)

		require.NoError(t, v.SetOutput(b.reg.output(5)))
		out, err = v.Output()
		require.NoError(t, err)
		assert.Equal(t, Handle(5), out.Handle())

		parent, err := v.Parent()
		require.NoError(t, err)
		assert.Nil(t, parent)

		assert.NoError(t, v.Focus())
		assert.NoError(t, v.BringToFront())
		assert.NoError(t, v.SendToBack())
		assert.NoError(t, v.Close())
	})
}

func TestStaleAccessorsNeverCallNative(t *testing.T) {
	n := newFakeNative()
	b := New(n, Options{})

	runWith(t, b, n, func(n *fakeNative) {
		n.addOutput(1, "DP-1", Size{W: 1920, H: 1080})
		n.addView(2, 1, "gone")
		o := b.reg.output(1)
		v := b.reg.view(2)
		n.removeView(2)
		n.cb.OutputDestroyed(1)

		mark := len(n.calls)
		checks := map[string]error{}
		_, checks["output name"] = o.Name()
		_, checks["output resolution"] = o.Resolution()
		checks["output set resolution"] = o.SetResolution(Size{W: 1, H: 1}, 1)
		_, checks["output views"] = o.Views()
		checks["output focus"] = o.Focus()
		_, checks["view title"] = v.Title()
		_, checks["view geometry"] = v.Geometry()
		checks["view set geometry"] = v.SetGeometry(EdgeNone, Geometry{Size: Size{W: 1, H: 1}})
		checks["view set state"] = v.SetState(StateMaximized, true)
		_, checks["view output"] = v.Output()
		checks["view close"] = v.Close()
		checks["view focus"] = v.Focus()

		for name, err := range checks {
			assert.ErrorIs(t, err, ErrStaleHandle, name)
		}
		assert.Empty(t, n.callsSince(mark))
	})
}

func TestCompositorAccessors(t *testing.T) {
	n := newFakeNative()
	b := New(n, Options{})

	runWith(t, b, n, func(n *fakeNative) {
		n.addOutput(1, "DP-1", Size{W: 1920, H: 1080})
		c := b.Compositor()

		outs, err := c.Outputs()
		require.NoError(t, err)
		require.Len(t, outs, 1)
		assert.Same(t, b.reg.output(1), outs[0])

		sym, err := c.KeysymForKey(16, Modifiers{})
		require.NoError(t, err)
		assert.Equal(t, uint32(0xff10), sym)

		assert.NoError(t, c.Exec("weston-terminal", "--fullscreen"))
		assert.Error(t, c.Exec(""))

		require.NoError(t, c.Terminate())
		assert.True(t, n.terminated)
	})

	_, err := b.Compositor().KeysymForKey(16, Modifiers{})
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestParseModMask(t *testing.T) {
	m, err := ParseModMask("ctrl", "Alt", "super")
	require.NoError(t, err)
	assert.Equal(t, ModCtrl|ModAlt|ModLogo, m)
	assert.Equal(t, "ctrl+alt+logo", m.String())

	_, err = ParseModMask("hyper")
	assert.Error(t, err)
}
