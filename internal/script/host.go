// Package script hosts JavaScript handlers on top of a wlc.Binding using the
// QuickJS engine.
package script

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bnema/gowlc/internal/logger"
	"github.com/bnema/gowlc/wlc"
	"github.com/charmbracelet/log"
	"modernc.org/quickjs"
)

// Host owns a QuickJS VM whose global wlc object drives a Binding. Like the
// Binding it is confined to the loop thread once Run starts.
type Host struct {
	vm  *quickjs.VM
	b   *wlc.Binding
	log *log.Logger

	objs   map[uint64]any // wrapper id -> *wlc.Output | *wlc.View
	active map[wlc.EventKind]bool
}

// Destroy notifications are always routed through the host so the JS side
// can drop its cached wrapper, whether or not a script handles them.
var destroyKinds = map[wlc.EventKind]bool{
	wlc.EventOutputDestroyed: true,
	wlc.EventViewDestroyed:   true,
}

// New creates a VM, installs the wlc global and hooks destroy notifications
// on b.
func New(b *wlc.Binding) (*Host, error) {
	vm, err := quickjs.NewVM()
	if err != nil {
		return nil, fmt.Errorf("creating VM: %w", err)
	}
	h := &Host{
		vm:     vm,
		b:      b,
		log:    logger.Script(),
		objs:   make(map[uint64]any),
		active: make(map[wlc.EventKind]bool),
	}
	if err := h.setup(); err != nil {
		vm.Close()
		return nil, err
	}
	for kind := range destroyKinds {
		if err := b.SetHandler(kind, h.handler(kind)); err != nil {
			vm.Close()
			return nil, err
		}
	}
	return h, nil
}

// Close releases the VM.
func (h *Host) Close() {
	h.vm.Close()
}

// Load evaluates the script at path.
func (h *Host) Load(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	if _, err := h.Eval(string(src)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	h.log.Info("script loaded", "path", path, "handlers", len(h.Handlers()))
	return nil
}

// Eval runs src in the global scope and returns its value converted to Go.
func (h *Host) Eval(src string) (any, error) {
	return h.vm.Eval(src, quickjs.EvalGlobal)
}

// Handlers lists the kinds a script currently handles.
func (h *Host) Handlers() []wlc.EventKind {
	var out []wlc.EventKind
	for _, info := range wlc.EventKinds() {
		if h.active[info.Kind] {
			out = append(out, info.Kind)
		}
	}
	return out
}

func (h *Host) setup() error {
	consts, err := json.Marshal(constants())
	if err != nil {
		return err
	}
	if err := h.discard("globalThis.__wlc_consts = " + string(consts) + ";"); err != nil {
		return fmt.Errorf("setting constants: %w", err)
	}

	funcs := []struct {
		name string
		fn   any
	}{
		{"__wlc_on", h.on},
		{"__wlc_terminate", func() { h.b.Terminate() }},
		{"__wlc_exec", h.exec},
		{"__wlc_outputs", h.outputs},
		{"__wlc_focused_output", h.focusedOutput},
		{"__wlc_keysym", h.keysym},
		{"__wlc_log", h.logLine},
		{"__wlc_call", h.call},
	}
	for _, f := range funcs {
		if err := h.registerFunc(f.name, f.fn); err != nil {
			return fmt.Errorf("registering %s: %w", f.name, err)
		}
	}

	if err := h.discard(preludeJS); err != nil {
		return fmt.Errorf("evaluating prelude: %w", err)
	}
	return nil
}

func (h *Host) discard(js string) error {
	v, err := h.vm.EvalValue(js, quickjs.EvalGlobal)
	if err != nil {
		return err
	}
	v.Free()
	return nil
}

// registerFunc exposes fn as a global. Go functions returning (T, error)
// come back from the VM as a [T, err] pair; the JS wrapper unwraps it and
// throws on error.
func (h *Host) registerFunc(name string, fn any) error {
	rawName := "__raw_" + name
	if err := h.vm.RegisterFunc(rawName, fn, false); err != nil {
		return err
	}
	wrapJS := fmt.Sprintf(`(function() {
		var raw = globalThis[%q];
		globalThis[%q] = function() {
			var r = raw.apply(this, arguments);
			if (Array.isArray(r)) {
				if (r[1] !== null && r[1] !== undefined) throw new Error(%q + ": " + r[1]);
				return r[0];
			}
			return r;
		};
		delete globalThis[%q];
	})()`, rawName, name, name, rawName)
	return h.discard(wrapJS)
}

func (h *Host) on(name string, enable bool) (int, error) {
	kind, err := wlc.ParseEventKind(name)
	if err != nil {
		return 0, err
	}
	h.active[kind] = enable
	if destroyKinds[kind] {
		return 1, nil
	}
	if enable {
		return 1, h.b.SetHandler(kind, h.handler(kind))
	}
	return 1, h.b.SetHandler(kind, nil)
}

func (h *Host) exec(bin, argsJSON string) (int, error) {
	var args []string
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return 0, fmt.Errorf("exec arguments: %w", err)
	}
	if err := h.b.Compositor().Exec(bin, args...); err != nil {
		return 0, err
	}
	return 1, nil
}

func (h *Host) outputs() (string, error) {
	outs, err := h.b.Compositor().Outputs()
	if err != nil {
		return "", err
	}
	return h.encode(outs)
}

func (h *Host) focusedOutput() (string, error) {
	o, err := h.b.Compositor().FocusedOutput()
	if err != nil {
		return "", err
	}
	return h.encode(o)
}

func (h *Host) keysym(key, mods int) (int, error) {
	sym, err := h.b.Compositor().KeysymForKey(uint32(key), wlc.Modifiers{Mods: wlc.ModMask(mods)})
	return int(sym), err
}

func (h *Host) logLine(level, msg string) {
	switch level {
	case "debug":
		h.log.Debug(msg)
	case "warn":
		h.log.Warn(msg)
	case "error":
		h.log.Error(msg)
	default:
		h.log.Info(msg)
	}
}

// handler adapts the JS dispatcher to a wlc.Handler for kind.
func (h *Host) handler(kind wlc.EventKind) wlc.Handler {
	info := kind.Info()
	return func(ev wlc.Event) (any, error) {
		if destroyKinds[kind] {
			defer h.forgetEventObject(ev)
		}
		if !h.active[kind] {
			return nil, nil
		}

		args, err := h.encodeArgs(ev)
		if err != nil {
			return nil, err
		}
		js := fmt.Sprintf("__wlc_dispatch(%s, %s)", strconv.Quote(string(kind)), strconv.Quote(args))
		res, err := h.vm.Eval(js, quickjs.EvalGlobal)
		if err != nil {
			return nil, fmt.Errorf("%s handler: %w", kind, err)
		}
		s, ok := res.(string)
		if !ok {
			return nil, fmt.Errorf("%s handler: dispatcher returned %T", kind, res)
		}
		var out any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, fmt.Errorf("%s handler result: %w", kind, err)
		}

		// A refused object never gets a destroy notification.
		if info.Returns && info.Neutral && out == false {
			h.forgetEventObject(ev)
		}
		return out, nil
	}
}

func (h *Host) forgetEventObject(ev wlc.Event) {
	switch e := ev.(type) {
	case *wlc.OutputEvent:
		if e.Output != nil {
			h.forget("output", e.Output.ID())
		}
	case *wlc.ViewEvent:
		if e.View != nil {
			h.forget("view", e.View.ID())
		}
	}
}

func (h *Host) forget(kind string, id uint64) {
	if _, ok := h.objs[id]; !ok {
		return
	}
	delete(h.objs, id)
	key := fmt.Sprintf("%s:%d", kind, id)
	if err := h.discard("__wlc_forget(" + strconv.Quote(key) + ")"); err != nil {
		h.log.Warn("failed to drop cached wrapper", "key", key, "err", err)
	}
}

// Reset forgets every cached wrapper. Wrappers do not outlive a Run, so
// callers reset between runs.
func (h *Host) Reset() {
	for id, obj := range h.objs {
		switch obj.(type) {
		case *wlc.Output:
			h.forget("output", id)
		case *wlc.View:
			h.forget("view", id)
		}
	}
}
