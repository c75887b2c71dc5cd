package wlc

import (
	"fmt"

	"github.com/bnema/gowlc/internal/logger"
)

type outcome int

const (
	noHandler outcome = iota
	handled
	failed
)

// callbacks builds the trampoline table handed to Native.Init.
func (b *Binding) callbacks() *Callbacks {
	return &Callbacks{
		CompositorReady:     b.onCompositorReady,
		CompositorTerminate: b.onCompositorTerminate,

		OutputCreated:    b.onOutputCreated,
		OutputDestroyed:  b.onOutputDestroyed,
		OutputFocus:      b.onOutputFocus,
		OutputResolution: b.onOutputResolution,
		OutputRenderPre:  b.onOutputRenderPre,
		OutputRenderPost: b.onOutputRenderPost,

		ViewCreated:         b.onViewCreated,
		ViewDestroyed:       b.onViewDestroyed,
		ViewFocus:           b.onViewFocus,
		ViewMoveToOutput:    b.onViewMoveToOutput,
		ViewRequestGeometry: b.onViewRequestGeometry,
		ViewRequestState:    b.onViewRequestState,
		ViewRequestMove:     b.onViewRequestMove,
		ViewRequestResize:   b.onViewRequestResize,

		KeyboardKey:   b.onKeyboardKey,
		PointerButton: b.onPointerButton,
		PointerScroll: b.onPointerScroll,
		PointerMotion: b.onPointerMotion,
		Touch:         b.onTouch,

		Log: b.onLog,
	}
}

// dispatch runs the handler installed for ev's kind, if any. Failures never
// leave this function: they are recorded and reported as failed.
func (b *Binding) dispatch(ev Event) (any, outcome) {
	h := b.slot(ev.Kind())
	if h == nil {
		return nil, noHandler
	}
	ret, err := b.invoke(h, ev)
	if err != nil {
		b.report(err)
		return nil, failed
	}
	return ret, handled
}

func (b *Binding) invoke(h Handler, ev Event) (ret any, err error) {
	defer func() {
		if r := recover(); r != nil {
			ret = nil
			err = &HandlerError{Kind: ev.Kind(), Panic: r}
		}
	}()
	ret, err = h(ev)
	if err != nil {
		return nil, &HandlerError{Kind: ev.Kind(), Err: err}
	}
	return ret, nil
}

func (b *Binding) report(err error) {
	b.lastErr = err
	b.failures++
	logger.Error("handler failed", "err", err)
	if b.opts.OnError == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("error hook panicked", "panic", fmt.Sprint(r))
		}
	}()
	b.opts.OnError(err)
}

// dispatchBool runs the handler and converts its result to the boolean the
// native callback returns.
func (b *Binding) dispatchBool(ev Event) bool {
	info := ev.Kind().Info()
	ret, res := b.dispatch(ev)
	if res != handled {
		return info.Neutral
	}
	switch v := ret.(type) {
	case bool:
		return v
	case nil:
		return info.Neutral
	default:
		logger.Debug("handler returned a non-boolean", "kind", ev.Kind(), "type", fmt.Sprintf("%T", v))
		return info.Neutral
	}
}

func (b *Binding) changed() {
	if b.opts.OnChange == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("change hook panicked", "panic", fmt.Sprint(r))
		}
	}()
	b.opts.OnChange(b)
}

func (b *Binding) onCompositorReady() {
	b.dispatch(&CompositorEvent{kind: EventCompositorReady, Compositor: b.compositor})
	b.changed()
}

func (b *Binding) onCompositorTerminate() {
	b.dispatch(&CompositorEvent{kind: EventCompositorTerminate, Compositor: b.compositor})
}

func (b *Binding) onOutputCreated(h Handle) bool {
	out := b.reg.output(h)
	accept := b.dispatchBool(&OutputEvent{kind: EventOutputCreated, Output: out})
	if !accept {
		// A refused output is torn down by the native side without a
		// destroyed notification.
		b.reg.invalidate(h)
	}
	b.changed()
	return accept
}

func (b *Binding) onOutputDestroyed(h Handle) {
	b.dispatch(&OutputEvent{kind: EventOutputDestroyed, Output: b.reg.output(h)})
	b.reg.invalidate(h)
	b.changed()
}

func (b *Binding) onOutputFocus(h Handle, focus bool) {
	b.dispatch(&OutputFocusEvent{Output: b.reg.output(h), Focus: focus})
	b.changed()
}

func (b *Binding) onOutputResolution(h Handle, from, to Size) {
	b.dispatch(&OutputResolutionEvent{Output: b.reg.output(h), From: from, To: to})
	b.changed()
}

func (b *Binding) onOutputRenderPre(h Handle) {
	b.dispatch(&OutputEvent{kind: EventOutputRenderPre, Output: b.reg.output(h)})
}

func (b *Binding) onOutputRenderPost(h Handle) {
	b.dispatch(&OutputEvent{kind: EventOutputRenderPost, Output: b.reg.output(h)})
}

func (b *Binding) onViewCreated(h Handle) bool {
	v := b.reg.view(h)
	accept := b.dispatchBool(&ViewEvent{kind: EventViewCreated, View: v})
	if !accept {
		b.reg.invalidate(h)
	}
	b.changed()
	return accept
}

func (b *Binding) onViewDestroyed(h Handle) {
	b.dispatch(&ViewEvent{kind: EventViewDestroyed, View: b.reg.view(h)})
	b.reg.invalidate(h)
	b.changed()
}

func (b *Binding) onViewFocus(h Handle, focus bool) {
	b.dispatch(&ViewFocusEvent{View: b.reg.view(h), Focus: focus})
	b.changed()
}

func (b *Binding) onViewMoveToOutput(h, from, to Handle) {
	b.dispatch(&ViewMoveToOutputEvent{View: b.reg.view(h), From: b.reg.output(from), To: b.reg.output(to)})
	b.changed()
}

func (b *Binding) onViewRequestGeometry(h Handle, g Geometry) {
	if _, res := b.dispatch(&ViewGeometryRequest{View: b.reg.view(h), Geometry: g}); res != handled {
		if err := b.native.SetViewGeometry(h, EdgeNone, g); err != nil {
			logger.Warn("default geometry request failed", "handle", h, "geometry", g, "err", err)
		}
	}
	b.changed()
}

func (b *Binding) onViewRequestState(h Handle, state ViewState, toggle bool) {
	if _, res := b.dispatch(&ViewStateRequest{View: b.reg.view(h), State: state, Toggle: toggle}); res != handled {
		if err := b.native.SetViewState(h, state, toggle); err != nil {
			logger.Warn("default state request failed", "handle", h, "state", state, "err", err)
		}
	}
	b.changed()
}

func (b *Binding) onViewRequestMove(h Handle, p Point) {
	b.dispatch(&ViewMoveRequest{View: b.reg.view(h), Point: p})
}

func (b *Binding) onViewRequestResize(h Handle, edges ResizeEdge, p Point) {
	b.dispatch(&ViewResizeRequest{View: b.reg.view(h), Edges: edges, Point: p})
}

func (b *Binding) onKeyboardKey(view Handle, time uint32, mods Modifiers, key uint32, state KeyState) bool {
	return b.dispatchBool(&KeyEvent{View: b.reg.view(view), Time: time, Key: key, State: state, Modifiers: mods})
}

func (b *Binding) onPointerButton(view Handle, time uint32, mods Modifiers, button uint32, state ButtonState, p Point) bool {
	return b.dispatchBool(&ButtonEvent{View: b.reg.view(view), Time: time, Button: button, State: state, Modifiers: mods, Point: p})
}

func (b *Binding) onPointerScroll(view Handle, time uint32, mods Modifiers, axis ScrollAxis, amount [2]float64) bool {
	return b.dispatchBool(&ScrollEvent{View: b.reg.view(view), Time: time, Axis: axis, Amount: amount, Modifiers: mods})
}

func (b *Binding) onPointerMotion(view Handle, time uint32, p Point) bool {
	return b.dispatchBool(&MotionEvent{View: b.reg.view(view), Time: time, Point: p})
}

func (b *Binding) onTouch(view Handle, time uint32, mods Modifiers, typ TouchType, slot int32, p Point) bool {
	return b.dispatchBool(&TouchEvent{View: b.reg.view(view), Time: time, Type: typ, Slot: slot, Point: p, Modifiers: mods})
}

func (b *Binding) onLog(level LogLevel, msg string) {
	l := logger.Native()
	switch level {
	case LogWarn:
		l.Warn(msg)
	case LogError:
		l.Error(msg)
	case LogWayland:
		l.Debug(msg, "source", "wayland")
	default:
		l.Info(msg)
	}
}
