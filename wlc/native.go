package wlc

// Config is the process-wide configuration handed to the native library
// before the loop starts. It is not consulted again while running.
type Config struct {
	// Env is exported to the process environment before native init.
	// libwlc reads its backend selection (WLC_DRM_DEVICE, WLC_XWAYLAND,
	// WLC_BG, ...) from there.
	Env map[string]string
}

func (c Config) clone() Config {
	out := Config{}
	if c.Env != nil {
		out.Env = make(map[string]string, len(c.Env))
		for k, v := range c.Env {
			out.Env[k] = v
		}
	}
	return out
}

// Callbacks is the fixed table of trampolines handed to the native library
// once, at init. Each entry mirrors one native callback signature.
type Callbacks struct {
	CompositorReady     func()
	CompositorTerminate func()

	OutputCreated    func(output Handle) bool
	OutputDestroyed  func(output Handle)
	OutputFocus      func(output Handle, focus bool)
	OutputResolution func(output Handle, from, to Size)
	OutputRenderPre  func(output Handle)
	OutputRenderPost func(output Handle)

	ViewCreated         func(view Handle) bool
	ViewDestroyed       func(view Handle)
	ViewFocus           func(view Handle, focus bool)
	ViewMoveToOutput    func(view, from, to Handle)
	ViewRequestGeometry func(view Handle, g Geometry)
	ViewRequestState    func(view Handle, state ViewState, toggle bool)
	ViewRequestMove     func(view Handle, p Point)
	ViewRequestResize   func(view Handle, edges ResizeEdge, p Point)

	KeyboardKey   func(view Handle, time uint32, mods Modifiers, key uint32, state KeyState) bool
	PointerButton func(view Handle, time uint32, mods Modifiers, button uint32, state ButtonState, p Point) bool
	PointerScroll func(view Handle, time uint32, mods Modifiers, axis ScrollAxis, amount [2]float64) bool
	PointerMotion func(view Handle, time uint32, p Point) bool
	Touch         func(view Handle, time uint32, mods Modifiers, typ TouchType, slot int32, p Point) bool

	Log func(level LogLevel, msg string)
}

// Native is the boundary to the compositor library. Implementations are
// driven from a single OS thread: every method and every callback runs on
// the thread that called Run.
type Native interface {
	// Init performs one-time library setup and installs the callback table.
	Init(cfg Config, cb *Callbacks) error
	// Run blocks in the native event loop until it terminates.
	Run() error
	// Terminate asks the loop to stop after the current callback returns.
	Terminate()

	Outputs() []Handle
	FocusedOutput() Handle
	Exec(bin string, args []string) error
	KeysymForKey(key uint32, mods Modifiers) uint32

	OutputName(h Handle) (string, error)
	OutputResolution(h Handle) (Size, error)
	OutputScale(h Handle) (uint32, error)
	SetOutputResolution(h Handle, size Size, scale uint32) error
	OutputSleep(h Handle) (bool, error)
	SetOutputSleep(h Handle, sleep bool) error
	OutputMask(h Handle) (uint32, error)
	SetOutputMask(h Handle, mask uint32) error
	OutputViews(h Handle) ([]Handle, error)
	FocusOutput(h Handle) error

	ViewTitle(h Handle) (string, error)
	ViewAppID(h Handle) (string, error)
	ViewClass(h Handle) (string, error)
	ViewGeometry(h Handle) (Geometry, error)
	SetViewGeometry(h Handle, edges ResizeEdge, g Geometry) error
	ViewState(h Handle) (ViewState, error)
	SetViewState(h Handle, state ViewState, toggle bool) error
	ViewMask(h Handle) (uint32, error)
	SetViewMask(h Handle, mask uint32) error
	ViewOutput(h Handle) (Handle, error)
	SetViewOutput(h Handle, output Handle) error
	ViewType(h Handle) (ViewType, error)
	ViewParent(h Handle) (Handle, error)
	FocusView(h Handle) error
	CloseView(h Handle) error
	BringViewToFront(h Handle) error
	SendViewToBack(h Handle) error
}
