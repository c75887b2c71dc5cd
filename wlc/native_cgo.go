//go:build cgo && wlc
// +build cgo,wlc

package wlc

/*
#cgo pkg-config: wlc
#include <stdlib.h>
#include <stdbool.h>
#include <stdint.h>
#include <wlc/wlc.h>

extern void gowlcLog(enum wlc_log_type type, const char *str);
extern void gowlcCompositorReady(void);
extern void gowlcCompositorTerminate(void);
extern bool gowlcOutputCreated(wlc_handle output);
extern void gowlcOutputDestroyed(wlc_handle output);
extern void gowlcOutputFocus(wlc_handle output, bool focus);
extern void gowlcOutputResolution(wlc_handle output, const struct wlc_size *from, const struct wlc_size *to);
extern void gowlcOutputRenderPre(wlc_handle output);
extern void gowlcOutputRenderPost(wlc_handle output);
extern bool gowlcViewCreated(wlc_handle view);
extern void gowlcViewDestroyed(wlc_handle view);
extern void gowlcViewFocus(wlc_handle view, bool focus);
extern void gowlcViewMoveToOutput(wlc_handle view, wlc_handle from, wlc_handle to);
extern void gowlcViewRequestGeometry(wlc_handle view, const struct wlc_geometry *g);
extern void gowlcViewRequestState(wlc_handle view, enum wlc_view_state_bit state, bool toggle);
extern void gowlcViewRequestMove(wlc_handle view, const struct wlc_point *p);
extern void gowlcViewRequestResize(wlc_handle view, uint32_t edges, const struct wlc_point *p);
extern bool gowlcKeyboardKey(wlc_handle view, uint32_t time, const struct wlc_modifiers *mods, uint32_t key, enum wlc_key_state state);
extern bool gowlcPointerButton(wlc_handle view, uint32_t time, const struct wlc_modifiers *mods, uint32_t button, enum wlc_button_state state, const struct wlc_point *p);
extern bool gowlcPointerScroll(wlc_handle view, uint32_t time, const struct wlc_modifiers *mods, uint8_t axis_bits, double amount[2]);
extern bool gowlcPointerMotion(wlc_handle view, uint32_t time, const struct wlc_point *p);
extern bool gowlcTouch(wlc_handle view, uint32_t time, const struct wlc_modifiers *mods, enum wlc_touch_type type, int32_t slot, const struct wlc_point *p);

static void gowlc_install(void) {
	wlc_log_set_handler(gowlcLog);
	wlc_set_compositor_ready_cb(gowlcCompositorReady);
	wlc_set_compositor_terminate_cb(gowlcCompositorTerminate);
	wlc_set_output_created_cb(gowlcOutputCreated);
	wlc_set_output_destroyed_cb(gowlcOutputDestroyed);
	wlc_set_output_focus_cb(gowlcOutputFocus);
	wlc_set_output_resolution_cb(gowlcOutputResolution);
	wlc_set_output_render_pre_cb(gowlcOutputRenderPre);
	wlc_set_output_render_post_cb(gowlcOutputRenderPost);
	wlc_set_view_created_cb(gowlcViewCreated);
	wlc_set_view_destroyed_cb(gowlcViewDestroyed);
	wlc_set_view_focus_cb(gowlcViewFocus);
	wlc_set_view_move_to_output_cb(gowlcViewMoveToOutput);
	wlc_set_view_request_geometry_cb(gowlcViewRequestGeometry);
	wlc_set_view_request_state_cb(gowlcViewRequestState);
	wlc_set_view_request_move_cb(gowlcViewRequestMove);
	wlc_set_view_request_resize_cb(gowlcViewRequestResize);
	wlc_set_keyboard_key_cb(gowlcKeyboardKey);
	wlc_set_pointer_button_cb(gowlcPointerButton);
	wlc_set_pointer_scroll_cb(gowlcPointerScroll);
	wlc_set_pointer_motion_cb(gowlcPointerMotion);
	wlc_set_touch_cb(gowlcTouch);
}

static const struct wlc_size *gowlc_output_resolution(wlc_handle output) {
	return wlc_output_get_resolution(output);
}

static void gowlc_output_set_resolution(wlc_handle output, uint32_t w, uint32_t h, uint32_t scale) {
	struct wlc_size s = { .w = w, .h = h };
	wlc_output_set_resolution(output, &s, scale);
}

static void gowlc_view_set_geometry(wlc_handle view, uint32_t edges, int32_t x, int32_t y, uint32_t w, uint32_t h) {
	struct wlc_geometry g = { .origin = { .x = x, .y = y }, .size = { .w = w, .h = h } };
	wlc_view_set_geometry(view, edges, &g);
}

static uint32_t gowlc_keysym(uint32_t key, uint32_t leds, uint32_t mods) {
	struct wlc_modifiers m = { .leds = leds, .mods = mods };
	return wlc_keyboard_get_keysym_for_key(key, &m);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"
)

// active is the table the exported trampolines forward to. libwlc holds a
// single global callback set, so one table per process is all there is.
var active *Callbacks

type libwlc struct{}

// NewNative returns the libwlc-backed native library.
func NewNative() (Native, error) {
	return &libwlc{}, nil
}

func (n *libwlc) Init(cfg Config, cb *Callbacks) error {
	active = cb
	C.gowlc_install()
	if !C.wlc_init() {
		active = nil
		return errors.New("wlc_init returned false")
	}
	return nil
}

func (n *libwlc) Run() error {
	C.wlc_run()
	active = nil
	return nil
}

func (n *libwlc) Terminate() {
	C.wlc_terminate()
}

func handleSlice(p *C.wlc_handle, count C.size_t) []Handle {
	if p == nil || count == 0 {
		return nil
	}
	raw := unsafe.Slice(p, int(count))
	out := make([]Handle, len(raw))
	for i, h := range raw {
		out[i] = Handle(h)
	}
	return out
}

func (n *libwlc) Outputs() []Handle {
	var count C.size_t
	return handleSlice(C.wlc_get_outputs(&count), count)
}

func (n *libwlc) FocusedOutput() Handle {
	return Handle(C.wlc_get_focused_output())
}

func (n *libwlc) Exec(bin string, args []string) error {
	cbin := C.CString(bin)
	defer C.free(unsafe.Pointer(cbin))

	argv := make([]*C.char, 0, len(args)+2)
	argv = append(argv, C.CString(bin))
	for _, a := range args {
		argv = append(argv, C.CString(a))
	}
	defer func() {
		for _, p := range argv {
			C.free(unsafe.Pointer(p))
		}
	}()

	// The array itself must live in C memory; it holds C pointers only.
	carr := (**C.char)(C.calloc(C.size_t(len(argv)+1), C.size_t(unsafe.Sizeof(uintptr(0)))))
	defer C.free(unsafe.Pointer(carr))
	slots := unsafe.Slice(carr, len(argv)+1)
	copy(slots, argv)
	slots[len(argv)] = nil

	C.wlc_exec(cbin, carr)
	return nil
}

func (n *libwlc) KeysymForKey(key uint32, mods Modifiers) uint32 {
	return uint32(C.gowlc_keysym(C.uint32_t(key), C.uint32_t(mods.Leds), C.uint32_t(mods.Mods)))
}

func notFound(op string) error {
	return &NativeError{Op: op, Code: int(syscall.ENOENT)}
}

func (n *libwlc) OutputName(h Handle) (string, error) {
	name := C.wlc_output_get_name(C.wlc_handle(h))
	if name == nil {
		return "", notFound("output name")
	}
	return C.GoString(name), nil
}

func (n *libwlc) OutputResolution(h Handle) (Size, error) {
	s := C.gowlc_output_resolution(C.wlc_handle(h))
	if s == nil {
		return Size{}, notFound("output resolution")
	}
	return Size{W: uint32(s.w), H: uint32(s.h)}, nil
}

func (n *libwlc) OutputScale(h Handle) (uint32, error) {
	return uint32(C.wlc_output_get_scale(C.wlc_handle(h))), nil
}

func (n *libwlc) SetOutputResolution(h Handle, size Size, scale uint32) error {
	if size.W == 0 || size.H == 0 {
		return &NativeError{Op: fmt.Sprintf("set resolution %s", size), Code: int(syscall.EINVAL)}
	}
	if scale == 0 {
		scale = uint32(C.wlc_output_get_scale(C.wlc_handle(h)))
	}
	C.gowlc_output_set_resolution(C.wlc_handle(h), C.uint32_t(size.W), C.uint32_t(size.H), C.uint32_t(scale))
	return nil
}

func (n *libwlc) OutputSleep(h Handle) (bool, error) {
	return bool(C.wlc_output_get_sleep(C.wlc_handle(h))), nil
}

func (n *libwlc) SetOutputSleep(h Handle, sleep bool) error {
	C.wlc_output_set_sleep(C.wlc_handle(h), C.bool(sleep))
	return nil
}

func (n *libwlc) OutputMask(h Handle) (uint32, error) {
	return uint32(C.wlc_output_get_mask(C.wlc_handle(h))), nil
}

func (n *libwlc) SetOutputMask(h Handle, mask uint32) error {
	C.wlc_output_set_mask(C.wlc_handle(h), C.uint32_t(mask))
	return nil
}

func (n *libwlc) OutputViews(h Handle) ([]Handle, error) {
	var count C.size_t
	return handleSlice(C.wlc_output_get_views(C.wlc_handle(h), &count), count), nil
}

func (n *libwlc) FocusOutput(h Handle) error {
	C.wlc_output_focus(C.wlc_handle(h))
	return nil
}

func (n *libwlc) ViewTitle(h Handle) (string, error) {
	return C.GoString(C.wlc_view_get_title(C.wlc_handle(h))), nil
}

func (n *libwlc) ViewAppID(h Handle) (string, error) {
	return C.GoString(C.wlc_view_get_app_id(C.wlc_handle(h))), nil
}

func (n *libwlc) ViewClass(h Handle) (string, error) {
	return C.GoString(C.wlc_view_get_class(C.wlc_handle(h))), nil
}

func (n *libwlc) ViewGeometry(h Handle) (Geometry, error) {
	g := C.wlc_view_get_geometry(C.wlc_handle(h))
	if g == nil {
		return Geometry{}, notFound("view geometry")
	}
	return Geometry{
		Origin: Point{X: int32(g.origin.x), Y: int32(g.origin.y)},
		Size:   Size{W: uint32(g.size.w), H: uint32(g.size.h)},
	}, nil
}

func (n *libwlc) SetViewGeometry(h Handle, edges ResizeEdge, g Geometry) error {
	if g.Empty() {
		return &NativeError{Op: fmt.Sprintf("set geometry %s", g), Code: int(syscall.EINVAL)}
	}
	C.gowlc_view_set_geometry(C.wlc_handle(h), C.uint32_t(edges),
		C.int32_t(g.Origin.X), C.int32_t(g.Origin.Y), C.uint32_t(g.Size.W), C.uint32_t(g.Size.H))
	return nil
}

func (n *libwlc) ViewState(h Handle) (ViewState, error) {
	return ViewState(C.wlc_view_get_state(C.wlc_handle(h))), nil
}

func (n *libwlc) SetViewState(h Handle, state ViewState, toggle bool) error {
	C.wlc_view_set_state(C.wlc_handle(h), C.enum_wlc_view_state_bit(state), C.bool(toggle))
	return nil
}

func (n *libwlc) ViewMask(h Handle) (uint32, error) {
	return uint32(C.wlc_view_get_mask(C.wlc_handle(h))), nil
}

func (n *libwlc) SetViewMask(h Handle, mask uint32) error {
	C.wlc_view_set_mask(C.wlc_handle(h), C.uint32_t(mask))
	return nil
}

func (n *libwlc) ViewOutput(h Handle) (Handle, error) {
	return Handle(C.wlc_view_get_output(C.wlc_handle(h))), nil
}

func (n *libwlc) SetViewOutput(h Handle, output Handle) error {
	C.wlc_view_set_output(C.wlc_handle(h), C.wlc_handle(output))
	return nil
}

func (n *libwlc) ViewType(h Handle) (ViewType, error) {
	return ViewType(C.wlc_view_get_type(C.wlc_handle(h))), nil
}

func (n *libwlc) ViewParent(h Handle) (Handle, error) {
	return Handle(C.wlc_view_get_parent(C.wlc_handle(h))), nil
}

func (n *libwlc) FocusView(h Handle) error {
	C.wlc_view_focus(C.wlc_handle(h))
	return nil
}

func (n *libwlc) CloseView(h Handle) error {
	C.wlc_view_close(C.wlc_handle(h))
	return nil
}

func (n *libwlc) BringViewToFront(h Handle) error {
	C.wlc_view_bring_to_front(C.wlc_handle(h))
	return nil
}

func (n *libwlc) SendViewToBack(h Handle) error {
	C.wlc_view_send_to_back(C.wlc_handle(h))
	return nil
}
