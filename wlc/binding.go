package wlc

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/bnema/gowlc/internal/logger"
)

// ExitStatus is the result of a Run call.
type ExitStatus int

const (
	ExitOK ExitStatus = iota
	ExitNativeFailure
	ExitInitFailed
	ExitAlreadyRunning
)

func (s ExitStatus) String() string {
	switch s {
	case ExitOK:
		return "ok"
	case ExitNativeFailure:
		return "native failure"
	case ExitInitFailed:
		return "initialization failed"
	case ExitAlreadyRunning:
		return "already running"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// The native library keeps one compositor per process.
var processRunning atomic.Bool

// Options tune how a Binding reports what happens inside callbacks.
type Options struct {
	// OnError is called on the loop thread for every failed handler
	// invocation, after the failure has been recorded.
	OnError func(err error)
	// OnChange is called on the loop thread after any event that adds,
	// removes or reshapes an output or view.
	OnChange func(b *Binding)
}

// Binding mediates between a Native library and managed handlers.
//
// Handlers and wrapper accessors run on the loop thread. SetHandler may be
// called before Run or from inside a handler; the trampoline reads the slot
// fresh on every invocation.
type Binding struct {
	native Native
	opts   Options

	cfg        Config
	slots      []Handler
	reg        *registry
	compositor *Compositor
	running    atomic.Bool

	lastErr  error
	failures uint64
}

// New creates a Binding over native. Nothing touches the native library
// until Run.
func New(native Native, opts Options) *Binding {
	b := &Binding{
		native: native,
		opts:   opts,
		slots:  make([]Handler, len(kindTable)),
	}
	b.reg = newRegistry(b)
	b.compositor = &Compositor{object: object{b: b, kind: KindCompositor, dead: true}}
	return b
}

// SetHandler installs h in the slot for kind, replacing whatever was there.
// A nil h clears the slot.
func (b *Binding) SetHandler(kind EventKind, h Handler) error {
	i, ok := kindIndex[kind]
	if !ok {
		return fmt.Errorf("set handler %q: %w", string(kind), ErrUnknownEventKind)
	}
	b.slots[i] = h
	if h == nil {
		logger.Debug("handler cleared", "kind", kind)
	} else {
		logger.Debug("handler installed", "kind", kind)
	}
	return nil
}

// SetHandlerByName is SetHandler for callers holding a kind as a string.
func (b *Binding) SetHandlerByName(name string, h Handler) error {
	kind, err := ParseEventKind(name)
	if err != nil {
		return fmt.Errorf("set handler: %w", err)
	}
	return b.SetHandler(kind, h)
}

// HasHandler reports whether a handler is installed for kind.
func (b *Binding) HasHandler(kind EventKind) bool {
	i, ok := kindIndex[kind]
	return ok && b.slots[i] != nil
}

func (b *Binding) slot(kind EventKind) Handler {
	return b.slots[kindIndex[kind]]
}

// Config returns the configuration of the current or last run.
func (b *Binding) Config() Config {
	return b.cfg.clone()
}

// Running reports whether this Binding's loop is active.
func (b *Binding) Running() bool {
	return b.running.Load()
}

// Compositor returns the compositor wrapper. It is stale outside Run.
func (b *Binding) Compositor() *Compositor {
	return b.compositor
}

// LastError returns the most recent handler failure, or nil.
func (b *Binding) LastError() error {
	return b.lastErr
}

// HandlerFailures counts failed handler invocations since New.
func (b *Binding) HandlerFailures() uint64 {
	return b.failures
}

// Run initialises the native library with cfg, blocks in its event loop and
// returns once the loop terminates. Only one loop may run per process.
func (b *Binding) Run(cfg Config) (ExitStatus, error) {
	if !processRunning.CompareAndSwap(false, true) {
		return ExitAlreadyRunning, ErrAlreadyRunning
	}
	defer processRunning.Store(false)

	// Native callbacks arrive on the thread that entered the loop.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	b.cfg = cfg.clone()
	for k, v := range b.cfg.Env {
		if err := os.Setenv(k, v); err != nil {
			return ExitInitFailed, fmt.Errorf("%w: setenv %s: %w", ErrInitializationFailed, k, err)
		}
	}

	b.reg = newRegistry(b)
	b.compositor = &Compositor{object: object{b: b, kind: KindCompositor}}
	b.running.Store(true)
	defer b.teardown()

	logger.Debug("initializing native library", "env", len(b.cfg.Env))
	if err := b.native.Init(b.cfg, b.callbacks()); err != nil {
		logger.Error("native initialization failed", "err", err)
		return ExitInitFailed, fmt.Errorf("%w: %w", ErrInitializationFailed, err)
	}

	logger.Info("compositor loop starting")
	if err := b.native.Run(); err != nil {
		logger.Error("compositor loop failed", "err", err)
		return ExitNativeFailure, fmt.Errorf("native loop: %w", err)
	}
	logger.Info("compositor loop finished")
	return ExitOK, nil
}

// Terminate asks the native loop to stop. It is meant to be called from a
// handler; the loop unwinds after the handler returns.
func (b *Binding) Terminate() {
	if !b.running.Load() {
		return
	}
	b.native.Terminate()
}

func (b *Binding) teardown() {
	b.running.Store(false)
	b.reg.reset()
	b.compositor.kill()
	b.changed()
}
