// Package wlc provides Go bindings for the wlc Wayland compositor library.
//
// The native library owns every compositor object and drives everything
// through callbacks from its run loop. This package wraps the objects it
// reports (outputs, views, the compositor itself) as identity-stable
// wrappers, routes each native callback to at most one managed Handler per
// event kind, and converts handler results back into what the native side
// expects.
//
// # Basic Usage
//
//	native, err := wlc.NewNative()
//	if err != nil {
//		return err
//	}
//	b := wlc.New(native, wlc.Options{})
//	b.SetHandler(wlc.EventOutputCreated, wlc.OnOutputCreated(func(o *wlc.Output) bool {
//		size, _ := o.Resolution()
//		log.Printf("new output %s", size)
//		return true
//	}))
//	b.SetHandler(wlc.EventKeyboardKey, wlc.OnKey(func(e *wlc.KeyEvent) bool {
//		if e.Modifiers.Mods&wlc.ModLogo != 0 && e.Key == 16 { // KEY_Q
//			b.Terminate()
//			return true
//		}
//		return false
//	}))
//	status, err := b.Run(wlc.Config{})
//
// # Threading
//
// Run locks the calling goroutine to its OS thread and blocks. Every handler
// runs synchronously on that thread, and so must every wrapper accessor.
// Nothing in the binding is guarded by locks.
//
// # Failures inside callbacks
//
// A handler that returns an error or panics is contained in the trampoline:
// the native library receives the kind's neutral value, the failure is
// recorded (LastError, HandlerFailures) and reported through Options.OnError.
//
// The libwlc backend is compiled with the "wlc" build tag and needs cgo and
// pkg-config able to find wlc.
package wlc
