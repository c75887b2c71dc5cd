package wlc

import (
	"fmt"
)

// EventKind names one native callback slot.
type EventKind string

const (
	EventCompositorReady     EventKind = "compositor-ready"
	EventCompositorTerminate EventKind = "compositor-terminate"

	EventOutputCreated           EventKind = "output-created"
	EventOutputDestroyed         EventKind = "output-destroyed"
	EventOutputFocused           EventKind = "output-focused"
	EventOutputResolutionChanged EventKind = "output-resolution-changed"
	EventOutputRenderPre         EventKind = "output-render-pre"
	EventOutputRenderPost        EventKind = "output-render-post"

	EventViewCreated         EventKind = "view-created"
	EventViewDestroyed       EventKind = "view-destroyed"
	EventViewFocused         EventKind = "view-focused"
	EventViewMovedToOutput   EventKind = "view-moved-to-output"
	EventViewRequestGeometry EventKind = "view-request-geometry"
	EventViewRequestState    EventKind = "view-request-state"
	EventViewRequestMove     EventKind = "view-request-move"
	EventViewRequestResize   EventKind = "view-request-resize"

	EventKeyboardKey   EventKind = "keyboard-key"
	EventPointerButton EventKind = "pointer-button"
	EventPointerScroll EventKind = "pointer-scroll"
	EventPointerMotion EventKind = "pointer-motion"
	EventTouch         EventKind = "touch"
)

// KindInfo documents how the binding treats one event kind.
type KindInfo struct {
	Kind EventKind
	// Args lists the positional arguments a handler receives.
	Args []string
	// Returns is true when the native callback expects a boolean back.
	Returns bool
	// Neutral is the value handed to the native library when no handler is
	// installed, the handler fails, or it returns something other than a bool.
	Neutral bool
	// Default describes what happens when no handler consumes the event.
	Default string
}

var kindTable = []KindInfo{
	{Kind: EventCompositorReady, Args: []string{"compositor"}},
	{Kind: EventCompositorTerminate, Args: []string{"compositor"}},
	{Kind: EventOutputCreated, Args: []string{"output"}, Returns: true, Neutral: true, Default: "output is accepted"},
	{Kind: EventOutputDestroyed, Args: []string{"output"}},
	{Kind: EventOutputFocused, Args: []string{"output", "focus"}},
	{Kind: EventOutputResolutionChanged, Args: []string{"output", "from", "to"}},
	{Kind: EventOutputRenderPre, Args: []string{"output"}},
	{Kind: EventOutputRenderPost, Args: []string{"output"}},
	{Kind: EventViewCreated, Args: []string{"view"}, Returns: true, Neutral: true, Default: "view is accepted"},
	{Kind: EventViewDestroyed, Args: []string{"view"}},
	{Kind: EventViewFocused, Args: []string{"view", "focus"}},
	{Kind: EventViewMovedToOutput, Args: []string{"view", "from", "to"}},
	{Kind: EventViewRequestGeometry, Args: []string{"view", "geometry"}, Default: "requested geometry is applied"},
	{Kind: EventViewRequestState, Args: []string{"view", "state", "toggle"}, Default: "requested state is applied"},
	{Kind: EventViewRequestMove, Args: []string{"view", "point"}},
	{Kind: EventViewRequestResize, Args: []string{"view", "edges", "point"}},
	{Kind: EventKeyboardKey, Args: []string{"view", "time", "key", "state", "modifiers"}, Returns: true, Default: "key is forwarded to the focused client"},
	{Kind: EventPointerButton, Args: []string{"view", "time", "button", "state", "modifiers", "point"}, Returns: true, Default: "button is forwarded to the view under the pointer"},
	{Kind: EventPointerScroll, Args: []string{"view", "time", "axis", "amount", "modifiers"}, Returns: true, Default: "scroll is forwarded to the view under the pointer"},
	{Kind: EventPointerMotion, Args: []string{"view", "time", "point"}, Returns: true, Default: "motion is forwarded to the view under the pointer"},
	{Kind: EventTouch, Args: []string{"view", "time", "type", "slot", "point", "modifiers"}, Returns: true, Default: "touch is forwarded to the touched view"},
}

var kindIndex = func() map[EventKind]int {
	m := make(map[EventKind]int, len(kindTable))
	for i, info := range kindTable {
		m[info.Kind] = i
	}
	return m
}()

// EventKinds returns the fixed event table in declaration order.
func EventKinds() []KindInfo {
	out := make([]KindInfo, len(kindTable))
	copy(out, kindTable)
	return out
}

// ParseEventKind validates a kind name against the event table. Names
// must match exactly.
func ParseEventKind(name string) (EventKind, error) {
	k := EventKind(name)
	if _, ok := kindIndex[k]; !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownEventKind)
	}
	return k, nil
}

// Valid reports whether k is part of the event table.
func (k EventKind) Valid() bool {
	_, ok := kindIndex[k]
	return ok
}

// Info returns the table entry for k. It panics on an invalid kind.
func (k EventKind) Info() KindInfo {
	return kindTable[kindIndex[k]]
}

// Event is the argument passed to a Handler. The concrete type depends on the
// kind; Args lists the same values positionally.
type Event interface {
	Kind() EventKind
	Args() []any
}

// Handler is a managed callable installed in a slot. The returned value is
// interpreted per kind: a bool for kinds that report consumption, ignored
// otherwise. Returning an error marks the invocation as failed.
type Handler func(ev Event) (any, error)

type CompositorEvent struct {
	kind       EventKind
	Compositor *Compositor
}

func (e *CompositorEvent) Kind() EventKind { return e.kind }
func (e *CompositorEvent) Args() []any     { return []any{e.Compositor} }

type OutputEvent struct {
	kind   EventKind
	Output *Output
}

func (e *OutputEvent) Kind() EventKind { return e.kind }
func (e *OutputEvent) Args() []any     { return []any{e.Output} }

type OutputFocusEvent struct {
	Output *Output
	Focus  bool
}

func (e *OutputFocusEvent) Kind() EventKind { return EventOutputFocused }
func (e *OutputFocusEvent) Args() []any     { return []any{e.Output, e.Focus} }

type OutputResolutionEvent struct {
	Output *Output
	From   Size
	To     Size
}

func (e *OutputResolutionEvent) Kind() EventKind { return EventOutputResolutionChanged }
func (e *OutputResolutionEvent) Args() []any     { return []any{e.Output, e.From, e.To} }

type ViewEvent struct {
	kind EventKind
	View *View
}

func (e *ViewEvent) Kind() EventKind { return e.kind }
func (e *ViewEvent) Args() []any     { return []any{e.View} }

type ViewFocusEvent struct {
	View  *View
	Focus bool
}

func (e *ViewFocusEvent) Kind() EventKind { return EventViewFocused }
func (e *ViewFocusEvent) Args() []any     { return []any{e.View, e.Focus} }

type ViewMoveToOutputEvent struct {
	View *View
	From *Output
	To   *Output
}

func (e *ViewMoveToOutputEvent) Kind() EventKind { return EventViewMovedToOutput }
func (e *ViewMoveToOutputEvent) Args() []any     { return []any{e.View, e.From, e.To} }

type ViewGeometryRequest struct {
	View     *View
	Geometry Geometry
}

func (e *ViewGeometryRequest) Kind() EventKind { return EventViewRequestGeometry }
func (e *ViewGeometryRequest) Args() []any     { return []any{e.View, e.Geometry} }

type ViewStateRequest struct {
	View   *View
	State  ViewState
	Toggle bool
}

func (e *ViewStateRequest) Kind() EventKind { return EventViewRequestState }
func (e *ViewStateRequest) Args() []any     { return []any{e.View, e.State, e.Toggle} }

type ViewMoveRequest struct {
	View  *View
	Point Point
}

func (e *ViewMoveRequest) Kind() EventKind { return EventViewRequestMove }
func (e *ViewMoveRequest) Args() []any     { return []any{e.View, e.Point} }

type ViewResizeRequest struct {
	View  *View
	Edges ResizeEdge
	Point Point
}

func (e *ViewResizeRequest) Kind() EventKind { return EventViewRequestResize }
func (e *ViewResizeRequest) Args() []any     { return []any{e.View, e.Edges, e.Point} }

// KeyEvent carries a keyboard key press or release. View is nil when no
// view has keyboard focus.
type KeyEvent struct {
	View      *View
	Time      uint32
	Key       uint32
	State     KeyState
	Modifiers Modifiers
}

func (e *KeyEvent) Kind() EventKind { return EventKeyboardKey }
func (e *KeyEvent) Args() []any     { return []any{e.View, e.Time, e.Key, e.State, e.Modifiers} }

type ButtonEvent struct {
	View      *View
	Time      uint32
	Button    uint32
	State     ButtonState
	Modifiers Modifiers
	Point     Point
}

func (e *ButtonEvent) Kind() EventKind { return EventPointerButton }
func (e *ButtonEvent) Args() []any {
	return []any{e.View, e.Time, e.Button, e.State, e.Modifiers, e.Point}
}

type ScrollEvent struct {
	View      *View
	Time      uint32
	Axis      ScrollAxis
	Amount    [2]float64
	Modifiers Modifiers
}

func (e *ScrollEvent) Kind() EventKind { return EventPointerScroll }
func (e *ScrollEvent) Args() []any {
	return []any{e.View, e.Time, e.Axis, e.Amount, e.Modifiers}
}

type MotionEvent struct {
	View  *View
	Time  uint32
	Point Point
}

func (e *MotionEvent) Kind() EventKind { return EventPointerMotion }
func (e *MotionEvent) Args() []any     { return []any{e.View, e.Time, e.Point} }

type TouchEvent struct {
	View      *View
	Time      uint32
	Type      TouchType
	Slot      int32
	Point     Point
	Modifiers Modifiers
}

func (e *TouchEvent) Kind() EventKind { return EventTouch }
func (e *TouchEvent) Args() []any {
	return []any{e.View, e.Time, e.Type, e.Slot, e.Point, e.Modifiers}
}
