// Package sim provides an in-memory compositor that replays scripted
// native events through a wlc.Binding.
package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/gowlc/wlc"
	"gopkg.in/yaml.v3"
)

// Step actions that are not callbacks of their own.
const (
	ActionTerminate = "terminate"
	ActionLog       = "log"
)

// Scenario is an ordered list of native events.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step describes one native event and its arguments. Only the fields the
// event needs are read.
type Step struct {
	Event string `yaml:"event"`

	Output uint64 `yaml:"output,omitempty"`
	View   uint64 `yaml:"view,omitempty"`
	To     uint64 `yaml:"to,omitempty"`
	Parent uint64 `yaml:"parent,omitempty"`

	Name       string    `yaml:"name,omitempty"`
	Resolution *wlc.Size `yaml:"resolution,omitempty"`
	Scale      uint32    `yaml:"scale,omitempty"`

	Title    string        `yaml:"title,omitempty"`
	AppID    string        `yaml:"app_id,omitempty"`
	Class    string        `yaml:"class,omitempty"`
	Types    []string      `yaml:"types,omitempty"`
	Geometry *wlc.Geometry `yaml:"geometry,omitempty"`
	States   []string      `yaml:"states,omitempty"`
	Toggle   bool          `yaml:"toggle,omitempty"`
	Edges    []string      `yaml:"edges,omitempty"`

	Focus   *bool      `yaml:"focus,omitempty"`
	Time    uint32     `yaml:"time,omitempty"`
	Key     uint32     `yaml:"key,omitempty"`
	Button  uint32     `yaml:"button,omitempty"`
	Pressed bool       `yaml:"pressed,omitempty"`
	Mods    []string   `yaml:"mods,omitempty"`
	Point   wlc.Point  `yaml:"point,omitempty"`
	Axis    []string   `yaml:"axis,omitempty"`
	Amount  [2]float64 `yaml:"amount,omitempty"`
	Touch   string     `yaml:"touch,omitempty"`
	Slot    int32      `yaml:"slot,omitempty"`

	Level   string `yaml:"level,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown fields are rejected so
// typos fail loudly instead of silently defaulting.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step names a known event and carries the handles
// that event needs.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("scenario has no steps")
	}
	var errs []error
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, st.Event, err))
		}
	}
	return errors.Join(errs...)
}

func (st Step) validate() error {
	switch st.Event {
	case ActionTerminate:
		return nil
	case ActionLog:
		_, err := parseLogLevel(st.Level)
		return err
	}

	kind, err := wlc.ParseEventKind(st.Event)
	if err != nil {
		return err
	}
	needs := func(name string, v uint64) error {
		if v == 0 {
			return fmt.Errorf("missing %s handle", name)
		}
		return nil
	}

	switch kind {
	case wlc.EventCompositorReady, wlc.EventCompositorTerminate:
		return errors.New("emitted by the loop itself; use \"terminate\" to stop")
	case wlc.EventOutputCreated, wlc.EventOutputDestroyed, wlc.EventOutputFocused,
		wlc.EventOutputRenderPre, wlc.EventOutputRenderPost:
		return needs("output", st.Output)
	case wlc.EventOutputResolutionChanged:
		if st.Resolution == nil {
			return errors.New("missing resolution")
		}
		return needs("output", st.Output)
	case wlc.EventViewMovedToOutput:
		if err := needs("view", st.View); err != nil {
			return err
		}
		return needs("to", st.To)
	case wlc.EventViewCreated, wlc.EventViewDestroyed, wlc.EventViewFocused,
		wlc.EventViewRequestMove:
		return needs("view", st.View)
	case wlc.EventViewRequestGeometry:
		if st.Geometry == nil {
			return errors.New("missing geometry")
		}
		return needs("view", st.View)
	case wlc.EventViewRequestState:
		if _, err := st.viewState(); err != nil {
			return err
		}
		return needs("view", st.View)
	case wlc.EventViewRequestResize:
		if _, err := st.edges(); err != nil {
			return err
		}
		return needs("view", st.View)
	}

	// Input events may target no view.
	if _, err := st.modifiers(); err != nil {
		return err
	}
	switch kind {
	case wlc.EventPointerScroll:
		_, err = st.axis()
	case wlc.EventTouch:
		_, err = st.touchType()
	}
	return err
}

func (st Step) modifiers() (wlc.Modifiers, error) {
	m, err := wlc.ParseModMask(st.Mods...)
	return wlc.Modifiers{Mods: m}, err
}

func (st Step) viewState() (wlc.ViewState, error) {
	var state wlc.ViewState
	for _, name := range st.States {
		s, err := wlc.ParseViewState(name)
		if err != nil {
			return 0, err
		}
		state |= s
	}
	return state, nil
}

var edgeNames = map[string]wlc.ResizeEdge{
	"top":    wlc.EdgeTop,
	"bottom": wlc.EdgeBottom,
	"left":   wlc.EdgeLeft,
	"right":  wlc.EdgeRight,
}

func (st Step) edges() (wlc.ResizeEdge, error) {
	var e wlc.ResizeEdge
	for _, name := range st.Edges {
		v, ok := edgeNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown edge %q", name)
		}
		e |= v
	}
	return e, nil
}

var typeNames = map[string]wlc.ViewType{
	"override-redirect": wlc.TypeOverrideRedirect,
	"unmanaged":         wlc.TypeUnmanaged,
	"splash":            wlc.TypeSplash,
	"modal":             wlc.TypeModal,
	"popup":             wlc.TypePopup,
}

func (st Step) viewType() (wlc.ViewType, error) {
	var t wlc.ViewType
	for _, name := range st.Types {
		v, ok := typeNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown view type %q", name)
		}
		t |= v
	}
	return t, nil
}

func (st Step) axis() (wlc.ScrollAxis, error) {
	if len(st.Axis) == 0 {
		return wlc.ScrollVertical, nil
	}
	var a wlc.ScrollAxis
	for _, name := range st.Axis {
		switch strings.ToLower(name) {
		case "vertical":
			a |= wlc.ScrollVertical
		case "horizontal":
			a |= wlc.ScrollHorizontal
		default:
			return 0, fmt.Errorf("unknown scroll axis %q", name)
		}
	}
	return a, nil
}

func (st Step) touchType() (wlc.TouchType, error) {
	switch strings.ToLower(st.Touch) {
	case "", "down":
		return wlc.TouchDown, nil
	case "up":
		return wlc.TouchUp, nil
	case "motion":
		return wlc.TouchMotion, nil
	case "frame":
		return wlc.TouchFrame, nil
	case "cancel":
		return wlc.TouchCancel, nil
	}
	return 0, fmt.Errorf("unknown touch type %q", st.Touch)
}

func parseLogLevel(name string) (wlc.LogLevel, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return wlc.LogInfo, nil
	case "warn":
		return wlc.LogWarn, nil
	case "error":
		return wlc.LogError, nil
	case "wayland":
		return wlc.LogWayland, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}
