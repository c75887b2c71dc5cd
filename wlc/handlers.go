package wlc

import "fmt"

// Consume adapts a func that reports whether it consumed the event.
func Consume(fn func(Event) bool) Handler {
	return func(ev Event) (any, error) {
		return fn(ev), nil
	}
}

// Observe adapts a func for kinds whose return value is ignored.
func Observe(fn func(Event)) Handler {
	return func(ev Event) (any, error) {
		fn(ev)
		return nil, nil
	}
}

func typed[E Event](fn func(E) bool) Handler {
	return func(ev Event) (any, error) {
		e, ok := ev.(E)
		if !ok {
			var want E
			return nil, fmt.Errorf("handler expects %T, got %T", want, ev)
		}
		return fn(e), nil
	}
}

// OnOutputCreated adapts a func that decides whether to accept a new output.
func OnOutputCreated(fn func(*Output) bool) Handler {
	return typed(func(e *OutputEvent) bool { return fn(e.Output) })
}

// OnViewCreated adapts a func that decides whether to accept a new view.
func OnViewCreated(fn func(*View) bool) Handler {
	return typed(func(e *ViewEvent) bool { return fn(e.View) })
}

// OnKey adapts a keyboard-key func; returning true consumes the key.
func OnKey(fn func(*KeyEvent) bool) Handler {
	return typed(fn)
}

// OnPointerButton adapts a pointer-button func.
func OnPointerButton(fn func(*ButtonEvent) bool) Handler {
	return typed(fn)
}

// OnPointerMotion adapts a pointer-motion func.
func OnPointerMotion(fn func(*MotionEvent) bool) Handler {
	return typed(fn)
}
