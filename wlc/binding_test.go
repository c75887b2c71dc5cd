package wlc

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetHandler(t *testing.T) {
	b := New(newFakeNative(), Options{})
	noop := Observe(func(Event) {})

	t.Run("every table kind is accepted", func(t *testing.T) {
		for _, info := range EventKinds() {
			require.NoError(t, b.SetHandler(info.Kind, noop), info.Kind)
			assert.True(t, b.HasHandler(info.Kind))
		}
	})

	t.Run("unknown kind leaves slots untouched", func(t *testing.T) {
		before := append([]Handler(nil), b.slots...)
		err := b.SetHandler("view-exploded", nil)
		assert.ErrorIs(t, err, ErrUnknownEventKind)
		err = b.SetHandlerByName("", noop)
		assert.ErrorIs(t, err, ErrUnknownEventKind)
		for i := range before {
			assert.Equal(t, before[i] == nil, b.slots[i] == nil)
		}
		assert.True(t, b.HasHandler(EventKeyboardKey))
	})

	t.Run("nil clears a slot", func(t *testing.T) {
		require.NoError(t, b.SetHandlerByName("keyboard-key", nil))
		assert.False(t, b.HasHandler(EventKeyboardKey))
	})
}

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		name    string
		want    EventKind
		wantErr bool
	}{
		{name: "output-created", want: EventOutputCreated},
		{name: "pointer-motion", want: EventPointerMotion},
		{name: " pointer-motion ", wantErr: true},
		{name: "view-focused", want: EventViewFocused},
		{name: "Output-Created", wantErr: true},
		{name: "output_created", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventKind(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownEventKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunLifecycle(t *testing.T) {
	n := newFakeNative()
	b := New(n, Options{})

	var ready, terminated bool
	require.NoError(t, b.SetHandler(EventCompositorReady, Observe(func(ev Event) {
		ready = true
		assert.True(t, ev.(*CompositorEvent).Compositor.Alive())
	})))
	require.NoError(t, b.SetHandler(EventCompositorTerminate, Observe(func(Event) { terminated = true })))

	var out *Output
	n.loop = func(n *fakeNative) {
		n.cb.CompositorReady()
		n.addOutput(1, "DP-1", Size{W: 1920, H: 1080})
		out = b.reg.output(1)
		n.cb.CompositorTerminate()
	}

	status, err := b.Run(Config{Env: map[string]string{"GOWLC_TEST_ENV": "1"}})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, status)
	assert.True(t, ready)
	assert.True(t, terminated)
	assert.Equal(t, "1", os.Getenv("GOWLC_TEST_ENV"))
	assert.False(t, b.Running())

	require.NotNil(t, out)
	assert.False(t, out.Alive(), "wrappers do not outlive the loop")
	_, err = b.Compositor().Outputs()
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestRunInitializationFailed(t *testing.T) {
	n := newFakeNative()
	n.initErr = errors.New("no backend")
	b := New(n, Options{})

	status, err := b.Run(Config{})
	assert.Equal(t, ExitInitFailed, status)
	assert.ErrorIs(t, err, ErrInitializationFailed)
	assert.Contains(t, err.Error(), "no backend")
	assert.NotContains(t, n.calls, "Run", "loop must not start after failed init")
}

func TestRunNativeFailure(t *testing.T) {
	n := newFakeNative()
	n.runErr = errors.New("drm device lost")
	status, err := New(n, Options{}).Run(Config{})
	assert.Equal(t, ExitNativeFailure, status)
	assert.Error(t, err)
}

func TestRunRejectsReentry(t *testing.T) {
	n := newFakeNative()
	b := New(n, Options{})
	other := New(newFakeNative(), Options{})

	var nested, parallel error
	var nestedStatus ExitStatus
	n.loop = func(*fakeNative) {
		nestedStatus, nested = b.Run(Config{})
		_, parallel = other.Run(Config{})
	}

	status, err := b.Run(Config{})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, status)
	assert.ErrorIs(t, nested, ErrAlreadyRunning)
	assert.Equal(t, ExitAlreadyRunning, nestedStatus)
	assert.ErrorIs(t, parallel, ErrAlreadyRunning)

	runs := 0
	for _, c := range n.calls {
		if c == "Run" {
			runs++
		}
	}
	assert.Equal(t, 1, runs)
	assert.NotContains(t, other.native.(*fakeNative).calls, "Init")

	// The process slot is free again once the first loop returned.
	_, err = other.Run(Config{})
	assert.NoError(t, err)
}

func TestTerminateFromHandler(t *testing.T) {
	n := newFakeNative()
	b := New(n, Options{})
	require.NoError(t, b.SetHandler(EventKeyboardKey, OnKey(func(e *KeyEvent) bool {
		b.Terminate()
		return true
	})))
	n.loop = func(n *fakeNative) {
		assert.True(t, n.cb.KeyboardKey(0, 1, Modifiers{}, 16, KeyPressed))
	}
	_, err := b.Run(Config{})
	require.NoError(t, err)
	assert.True(t, n.terminated)

	// Outside the loop Terminate is a no-op.
	n.terminated = false
	b.Terminate()
	assert.False(t, n.terminated)
}
