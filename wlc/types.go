package wlc

import (
	"fmt"
	"strings"
)

// Handle is an opaque identifier for a compositor object. The native library
// owns the object behind it; zero means "no object".
type Handle uintptr

func (h Handle) String() string {
	return fmt.Sprintf("%#x", uintptr(h))
}

// Kind tags which native object a handle refers to.
type Kind uint8

const (
	KindOutput Kind = iota + 1
	KindView
	KindCompositor
)

func (k Kind) String() string {
	switch k {
	case KindOutput:
		return "output"
	case KindView:
		return "view"
	case KindCompositor:
		return "compositor"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Point is a position in compositor coordinates.
type Point struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	W uint32 `json:"w" yaml:"w"`
	H uint32 `json:"h" yaml:"h"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Geometry is a rectangle: origin plus size.
type Geometry struct {
	Origin Point `json:"origin" yaml:"origin"`
	Size   Size  `json:"size" yaml:"size"`
}

// Empty reports whether the rectangle has no area.
func (g Geometry) Empty() bool {
	return g.Size.W == 0 || g.Size.H == 0
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Size.W, g.Size.H, g.Origin.X, g.Origin.Y)
}

// ModMask is the set of active keyboard modifiers.
type ModMask uint32

const (
	ModShift ModMask = 1 << iota
	ModCaps
	ModCtrl
	ModAlt
	ModMod2
	ModMod3
	ModLogo
	ModMod5
)

var modNames = []struct {
	mask ModMask
	name string
}{
	{ModShift, "shift"},
	{ModCaps, "caps"},
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModMod2, "mod2"},
	{ModMod3, "mod3"},
	{ModLogo, "logo"},
	{ModMod5, "mod5"},
}

func (m ModMask) String() string {
	var parts []string
	for _, n := range modNames {
		if m&n.mask != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseModMask parses names like "ctrl", "alt" or "super" into a mask.
func ParseModMask(names ...string) (ModMask, error) {
	var m ModMask
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "super" || name == "mod4" {
			name = "logo"
		}
		found := false
		for _, n := range modNames {
			if n.name == name {
				m |= n.mask
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", raw)
		}
	}
	return m, nil
}

// Led bits reported alongside modifiers.
const (
	LedNumLock uint32 = 1 << iota
	LedCapsLock
	LedScrollLock
)

// Modifiers mirrors the native modifier struct passed with input events.
type Modifiers struct {
	Leds uint32  `json:"leds"`
	Mods ModMask `json:"mods"`
}

// KeyState is the press state of a keyboard key.
type KeyState uint32

const (
	KeyReleased KeyState = iota
	KeyPressed
)

func (s KeyState) String() string {
	if s == KeyPressed {
		return "pressed"
	}
	return "released"
}

// ButtonState is the press state of a pointer button.
type ButtonState uint32

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

func (s ButtonState) String() string {
	if s == ButtonPressed {
		return "pressed"
	}
	return "released"
}

// ScrollAxis bits tell which of the two scroll amounts are meaningful.
type ScrollAxis uint8

const (
	ScrollVertical ScrollAxis = 1 << iota
	ScrollHorizontal
)

// ViewState is a bit set of window states.
type ViewState uint32

const (
	StateMaximized ViewState = 1 << iota
	StateFullscreen
	StateResizing
	StateMoving
	StateActivated
)

var stateNames = map[string]ViewState{
	"maximized":  StateMaximized,
	"fullscreen": StateFullscreen,
	"resizing":   StateResizing,
	"moving":     StateMoving,
	"activated":  StateActivated,
}

// ParseViewState parses a single state name.
func ParseViewState(name string) (ViewState, error) {
	s, ok := stateNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown view state %q", name)
	}
	return s, nil
}

// ViewType is a bit set describing what kind of surface a view is.
type ViewType uint32

const (
	TypeOverrideRedirect ViewType = 1 << iota
	TypeUnmanaged
	TypeSplash
	TypeModal
	TypePopup
)

// ResizeEdge tells which edges a resize is anchored to.
type ResizeEdge uint32

const (
	EdgeNone   ResizeEdge = 0
	EdgeTop    ResizeEdge = 1
	EdgeBottom ResizeEdge = 2
	EdgeLeft   ResizeEdge = 4
	EdgeRight  ResizeEdge = 8

	EdgeTopLeft     = EdgeTop | EdgeLeft
	EdgeBottomLeft  = EdgeBottom | EdgeLeft
	EdgeTopRight    = EdgeTop | EdgeRight
	EdgeBottomRight = EdgeBottom | EdgeRight
)

// TouchType is the phase of a touch event.
type TouchType uint32

const (
	TouchDown TouchType = iota
	TouchUp
	TouchMotion
	TouchFrame
	TouchCancel
)

// LogLevel is the severity of a line emitted by the native library.
type LogLevel uint32

const (
	LogInfo LogLevel = iota
	LogWarn
	LogError
	LogWayland
)
