//go:build cgo && wlc
// +build cgo,wlc

package wlc

/*
#include <stdbool.h>
#include <stdint.h>
#include <wlc/wlc.h>
*/
import "C"

import "unsafe"

// The functions below are the C-callable trampolines registered by
// gowlc_install. Each one converts the native arguments and forwards to the
// active callback table. They must never let a panic escape; the Binding
// side recovers handler panics before returning here.

func mods(m *C.struct_wlc_modifiers) Modifiers {
	if m == nil {
		return Modifiers{}
	}
	return Modifiers{Leds: uint32(m.leds), Mods: ModMask(m.mods)}
}

func point(p *C.struct_wlc_point) Point {
	if p == nil {
		return Point{}
	}
	return Point{X: int32(p.x), Y: int32(p.y)}
}

func size(s *C.struct_wlc_size) Size {
	if s == nil {
		return Size{}
	}
	return Size{W: uint32(s.w), H: uint32(s.h)}
}

//export gowlcLog
func gowlcLog(typ C.enum_wlc_log_type, str *C.char) {
	if active == nil || active.Log == nil {
		return
	}
	active.Log(LogLevel(typ), C.GoString(str))
}

//export gowlcCompositorReady
func gowlcCompositorReady() {
	if active != nil {
		active.CompositorReady()
	}
}

//export gowlcCompositorTerminate
func gowlcCompositorTerminate() {
	if active != nil {
		active.CompositorTerminate()
	}
}

//export gowlcOutputCreated
func gowlcOutputCreated(output C.wlc_handle) C.bool {
	if active == nil {
		return true
	}
	return C.bool(active.OutputCreated(Handle(output)))
}

//export gowlcOutputDestroyed
func gowlcOutputDestroyed(output C.wlc_handle) {
	if active != nil {
		active.OutputDestroyed(Handle(output))
	}
}

//export gowlcOutputFocus
func gowlcOutputFocus(output C.wlc_handle, focus C.bool) {
	if active != nil {
		active.OutputFocus(Handle(output), bool(focus))
	}
}

//export gowlcOutputResolution
func gowlcOutputResolution(output C.wlc_handle, from, to *C.struct_wlc_size) {
	if active != nil {
		active.OutputResolution(Handle(output), size(from), size(to))
	}
}

//export gowlcOutputRenderPre
func gowlcOutputRenderPre(output C.wlc_handle) {
	if active != nil {
		active.OutputRenderPre(Handle(output))
	}
}

//export gowlcOutputRenderPost
func gowlcOutputRenderPost(output C.wlc_handle) {
	if active != nil {
		active.OutputRenderPost(Handle(output))
	}
}

//export gowlcViewCreated
func gowlcViewCreated(view C.wlc_handle) C.bool {
	if active == nil {
		return true
	}
	return C.bool(active.ViewCreated(Handle(view)))
}

//export gowlcViewDestroyed
func gowlcViewDestroyed(view C.wlc_handle) {
	if active != nil {
		active.ViewDestroyed(Handle(view))
	}
}

//export gowlcViewFocus
func gowlcViewFocus(view C.wlc_handle, focus C.bool) {
	if active != nil {
		active.ViewFocus(Handle(view), bool(focus))
	}
}

//export gowlcViewMoveToOutput
func gowlcViewMoveToOutput(view, from, to C.wlc_handle) {
	if active != nil {
		active.ViewMoveToOutput(Handle(view), Handle(from), Handle(to))
	}
}

//export gowlcViewRequestGeometry
func gowlcViewRequestGeometry(view C.wlc_handle, g *C.struct_wlc_geometry) {
	if active == nil || g == nil {
		return
	}
	active.ViewRequestGeometry(Handle(view), Geometry{
		Origin: point(&g.origin),
		Size:   size(&g.size),
	})
}

//export gowlcViewRequestState
func gowlcViewRequestState(view C.wlc_handle, state C.enum_wlc_view_state_bit, toggle C.bool) {
	if active != nil {
		active.ViewRequestState(Handle(view), ViewState(state), bool(toggle))
	}
}

//export gowlcViewRequestMove
func gowlcViewRequestMove(view C.wlc_handle, p *C.struct_wlc_point) {
	if active != nil {
		active.ViewRequestMove(Handle(view), point(p))
	}
}

//export gowlcViewRequestResize
func gowlcViewRequestResize(view C.wlc_handle, edges C.uint32_t, p *C.struct_wlc_point) {
	if active != nil {
		active.ViewRequestResize(Handle(view), ResizeEdge(edges), point(p))
	}
}

//export gowlcKeyboardKey
func gowlcKeyboardKey(view C.wlc_handle, time C.uint32_t, m *C.struct_wlc_modifiers, key C.uint32_t, state C.enum_wlc_key_state) C.bool {
	if active == nil {
		return false
	}
	return C.bool(active.KeyboardKey(Handle(view), uint32(time), mods(m), uint32(key), KeyState(state)))
}

//export gowlcPointerButton
func gowlcPointerButton(view C.wlc_handle, time C.uint32_t, m *C.struct_wlc_modifiers, button C.uint32_t, state C.enum_wlc_button_state, p *C.struct_wlc_point) C.bool {
	if active == nil {
		return false
	}
	return C.bool(active.PointerButton(Handle(view), uint32(time), mods(m), uint32(button), ButtonState(state), point(p)))
}

//export gowlcPointerScroll
func gowlcPointerScroll(view C.wlc_handle, time C.uint32_t, m *C.struct_wlc_modifiers, axis C.uint8_t, amount *C.double) C.bool {
	if active == nil {
		return false
	}
	var a [2]float64
	if amount != nil {
		raw := unsafe.Slice(amount, 2)
		a[0], a[1] = float64(raw[0]), float64(raw[1])
	}
	return C.bool(active.PointerScroll(Handle(view), uint32(time), mods(m), ScrollAxis(axis), a))
}

//export gowlcPointerMotion
func gowlcPointerMotion(view C.wlc_handle, time C.uint32_t, p *C.struct_wlc_point) C.bool {
	if active == nil {
		return false
	}
	return C.bool(active.PointerMotion(Handle(view), uint32(time), point(p)))
}

//export gowlcTouch
func gowlcTouch(view C.wlc_handle, time C.uint32_t, m *C.struct_wlc_modifiers, typ C.enum_wlc_touch_type, slot C.int32_t, p *C.struct_wlc_point) C.bool {
	if active == nil {
		return false
	}
	return C.bool(active.Touch(Handle(view), uint32(time), mods(m), TouchType(typ), int32(slot), point(p)))
}
