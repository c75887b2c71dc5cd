package sim

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"syscall"

	"github.com/bnema/gowlc/internal/logger"
	"github.com/bnema/gowlc/wlc"
)

// Result records what the native side got back from one step.
type Result struct {
	Step  int
	Event string
	// Returned is set for events whose callback returns a bool.
	Returned *bool
}

func (r Result) String() string {
	if r.Returned == nil {
		return fmt.Sprintf("%3d %s", r.Step, r.Event)
	}
	return fmt.Sprintf("%3d %s -> %t", r.Step, r.Event, *r.Returned)
}

type output struct {
	name  string
	res   wlc.Size
	scale uint32
	sleep bool
	mask  uint32
	views []wlc.Handle // back to front
}

type view struct {
	title    string
	appID    string
	class    string
	typ      wlc.ViewType
	geometry wlc.Geometry
	state    wlc.ViewState
	mask     uint32
	output   wlc.Handle
	parent   wlc.Handle
}

// Native is an in-memory wlc.Native driven by a Scenario.
type Native struct {
	scenario *Scenario
	cb       *wlc.Callbacks
	cfg      wlc.Config

	outputs     map[wlc.Handle]*output
	outputOrder []wlc.Handle
	views       map[wlc.Handle]*view
	focusOut    wlc.Handle
	focusView   wlc.Handle

	terminated bool
	results    []Result
	calls      map[string]int
	execs      [][]string
}

// New creates a simulator for s.
func New(s *Scenario) *Native {
	return &Native{
		scenario: s,
		outputs:  make(map[wlc.Handle]*output),
		views:    make(map[wlc.Handle]*view),
		calls:    make(map[string]int),
	}
}

var _ wlc.Native = (*Native)(nil)

func rejected(op string, code syscall.Errno) error {
	return &wlc.NativeError{Op: op, Code: int(code)}
}

func (n *Native) call(name string) { n.calls[name]++ }

// Init stores the callback table. It fails when there is nothing to replay.
func (n *Native) Init(cfg wlc.Config, cb *wlc.Callbacks) error {
	n.call("Init")
	if n.scenario == nil {
		return errors.New("no scenario loaded")
	}
	if err := n.scenario.Validate(); err != nil {
		return err
	}
	n.cfg = cfg
	n.cb = cb
	return nil
}

// Run replays the scenario. It stops early when Terminate is called and
// always finishes with compositor-terminate.
func (n *Native) Run() error {
	n.call("Run")
	log := logger.Native().With("scenario", n.scenario.Name)

	n.cb.CompositorReady()
	var runErr error
	for i, st := range n.scenario.Steps {
		if n.terminated {
			break
		}
		ret, err := n.step(st)
		if err != nil {
			runErr = fmt.Errorf("step %d (%s): %w", i+1, st.Event, err)
			break
		}
		n.results = append(n.results, Result{Step: i + 1, Event: st.Event, Returned: ret})
		log.Debug("step replayed", "step", i+1, "event", st.Event)
	}
	n.terminated = true
	n.cb.CompositorTerminate()
	return runErr
}

// Terminate stops the replay after the current step.
func (n *Native) Terminate() {
	n.call("Terminate")
	n.terminated = true
}

// Results returns one entry per replayed step.
func (n *Native) Results() []Result {
	return slices.Clone(n.results)
}

// Calls returns the number of times the binding called method name, or the
// total over all methods when name is empty.
func (n *Native) Calls(name string) int {
	if name != "" {
		return n.calls[name]
	}
	total := 0
	for _, c := range n.calls {
		total += c
	}
	return total
}

// Execs returns the commands passed to Exec, in order.
func (n *Native) Execs() [][]string {
	return slices.Clone(n.execs)
}

// Config returns the configuration handed to Init.
func (n *Native) Config() wlc.Config {
	return n.cfg
}

func boolp(v bool) *bool { return &v }

func (n *Native) step(st Step) (*bool, error) {
	if st.Event == ActionTerminate {
		n.terminated = true
		return nil, nil
	}
	if st.Event == ActionLog {
		level, _ := parseLogLevel(st.Level)
		n.cb.Log(level, st.Message)
		return nil, nil
	}

	out, v, to := wlc.Handle(st.Output), wlc.Handle(st.View), wlc.Handle(st.To)
	mods, _ := st.modifiers()

	switch wlc.EventKind(st.Event) {
	case wlc.EventOutputCreated:
		return boolp(n.createOutput(out, st)), nil
	case wlc.EventOutputDestroyed:
		if _, err := n.output(out); err != nil {
			return nil, err
		}
		n.destroyOutput(out)
	case wlc.EventOutputFocused:
		if st.Focus != nil && !*st.Focus {
			if _, err := n.output(out); err != nil {
				return nil, err
			}
			n.cb.OutputFocus(out, false)
			return nil, nil
		}
		return nil, n.focusOutput(out)
	case wlc.EventOutputResolutionChanged:
		return nil, n.setResolution(out, *st.Resolution, st.Scale)
	case wlc.EventOutputRenderPre, wlc.EventOutputRenderPost:
		if _, err := n.output(out); err != nil {
			return nil, err
		}
		if st.Event == string(wlc.EventOutputRenderPre) {
			n.cb.OutputRenderPre(out)
		} else {
			n.cb.OutputRenderPost(out)
		}

	case wlc.EventViewCreated:
		ok, err := n.createView(v, st)
		if err != nil {
			return nil, err
		}
		return boolp(ok), nil
	case wlc.EventViewDestroyed:
		if _, err := n.view(v); err != nil {
			return nil, err
		}
		n.destroyView(v)
	case wlc.EventViewFocused:
		if st.Focus != nil && !*st.Focus {
			if _, err := n.view(v); err != nil {
				return nil, err
			}
			n.cb.ViewFocus(v, false)
			return nil, nil
		}
		return nil, n.focusViewHandle(v)
	case wlc.EventViewMovedToOutput:
		return nil, n.moveView(v, to)
	case wlc.EventViewRequestGeometry:
		if _, err := n.view(v); err != nil {
			return nil, err
		}
		n.cb.ViewRequestGeometry(v, *st.Geometry)
	case wlc.EventViewRequestState:
		if _, err := n.view(v); err != nil {
			return nil, err
		}
		state, _ := st.viewState()
		n.cb.ViewRequestState(v, state, st.Toggle)
	case wlc.EventViewRequestMove:
		if _, err := n.view(v); err != nil {
			return nil, err
		}
		n.cb.ViewRequestMove(v, st.Point)
	case wlc.EventViewRequestResize:
		if _, err := n.view(v); err != nil {
			return nil, err
		}
		edges, _ := st.edges()
		n.cb.ViewRequestResize(v, edges, st.Point)

	case wlc.EventKeyboardKey:
		if err := n.optionalView(v); err != nil {
			return nil, err
		}
		state := wlc.KeyReleased
		if st.Pressed {
			state = wlc.KeyPressed
		}
		return boolp(n.cb.KeyboardKey(v, st.Time, mods, st.Key, state)), nil
	case wlc.EventPointerButton:
		if err := n.optionalView(v); err != nil {
			return nil, err
		}
		state := wlc.ButtonReleased
		if st.Pressed {
			state = wlc.ButtonPressed
		}
		return boolp(n.cb.PointerButton(v, st.Time, mods, st.Button, state, st.Point)), nil
	case wlc.EventPointerScroll:
		if err := n.optionalView(v); err != nil {
			return nil, err
		}
		axis, _ := st.axis()
		return boolp(n.cb.PointerScroll(v, st.Time, mods, axis, st.Amount)), nil
	case wlc.EventPointerMotion:
		if err := n.optionalView(v); err != nil {
			return nil, err
		}
		return boolp(n.cb.PointerMotion(v, st.Time, st.Point)), nil
	case wlc.EventTouch:
		if err := n.optionalView(v); err != nil {
			return nil, err
		}
		typ, _ := st.touchType()
		return boolp(n.cb.Touch(v, st.Time, mods, typ, st.Slot, st.Point)), nil
	default:
		return nil, fmt.Errorf("event %q cannot be replayed", st.Event)
	}
	return nil, nil
}

func (n *Native) optionalView(h wlc.Handle) error {
	if h == 0 {
		return nil
	}
	_, err := n.view(h)
	return err
}

func (n *Native) createOutput(h wlc.Handle, st Step) bool {
	o := &output{name: st.Name, res: wlc.Size{W: 1920, H: 1080}, scale: 1}
	if st.Resolution != nil {
		o.res = *st.Resolution
	}
	if st.Scale != 0 {
		o.scale = st.Scale
	}
	if o.name == "" {
		o.name = fmt.Sprintf("SIM-%d", len(n.outputOrder)+1)
	}
	n.outputs[h] = o
	n.outputOrder = append(n.outputOrder, h)

	if !n.cb.OutputCreated(h) {
		n.forgetOutput(h)
		return false
	}
	if n.focusOut == 0 {
		n.focusOut = h
		n.cb.OutputFocus(h, true)
	}
	return true
}

func (n *Native) destroyOutput(h wlc.Handle) {
	for _, vh := range slices.Clone(n.outputs[h].views) {
		n.destroyView(vh)
	}
	n.cb.OutputDestroyed(h)
	n.forgetOutput(h)
}

func (n *Native) forgetOutput(h wlc.Handle) {
	delete(n.outputs, h)
	n.outputOrder = slices.DeleteFunc(n.outputOrder, func(o wlc.Handle) bool { return o == h })
	if n.focusOut == h {
		n.focusOut = 0
	}
}

func (n *Native) createView(h wlc.Handle, st Step) (bool, error) {
	outH := wlc.Handle(st.Output)
	if outH == 0 {
		outH = n.focusOut
	}
	o, err := n.output(outH)
	if err != nil {
		return false, err
	}
	typ, err := st.viewType()
	if err != nil {
		return false, err
	}
	state, err := st.viewState()
	if err != nil {
		return false, err
	}

	v := &view{
		title:  st.Title,
		appID:  st.AppID,
		class:  st.Class,
		typ:    typ,
		state:  state,
		output: outH,
		parent: wlc.Handle(st.Parent),
		geometry: wlc.Geometry{
			Size: wlc.Size{W: o.res.W / 2, H: o.res.H / 2},
		},
	}
	if st.Geometry != nil {
		v.geometry = *st.Geometry
	}
	n.views[h] = v
	o.views = append(o.views, h)

	if !n.cb.ViewCreated(h) {
		n.forgetView(h)
		return false, nil
	}
	return true, nil
}

func (n *Native) destroyView(h wlc.Handle) {
	n.cb.ViewDestroyed(h)
	n.forgetView(h)
}

func (n *Native) forgetView(h wlc.Handle) {
	v, ok := n.views[h]
	if !ok {
		return
	}
	if o, ok := n.outputs[v.output]; ok {
		o.views = slices.DeleteFunc(o.views, func(x wlc.Handle) bool { return x == h })
	}
	delete(n.views, h)
	if n.focusView == h {
		n.focusView = 0
	}
}

func (n *Native) focusOutput(h wlc.Handle) error {
	if _, err := n.output(h); err != nil {
		return err
	}
	if n.focusOut == h {
		return nil
	}
	if prev := n.focusOut; prev != 0 {
		n.cb.OutputFocus(prev, false)
	}
	n.focusOut = h
	n.cb.OutputFocus(h, true)
	return nil
}

func (n *Native) focusViewHandle(h wlc.Handle) error {
	v, err := n.view(h)
	if err != nil {
		return err
	}
	if n.focusView == h {
		return nil
	}
	if prev := n.focusView; prev != 0 {
		n.views[prev].state &^= wlc.StateActivated
		n.cb.ViewFocus(prev, false)
	}
	n.focusView = h
	v.state |= wlc.StateActivated
	n.cb.ViewFocus(h, true)
	return nil
}

func (n *Native) moveView(h, to wlc.Handle) error {
	v, err := n.view(h)
	if err != nil {
		return err
	}
	dst, err := n.output(to)
	if err != nil {
		return err
	}
	from := v.output
	if from == to {
		return nil
	}
	if src, ok := n.outputs[from]; ok {
		src.views = slices.DeleteFunc(src.views, func(x wlc.Handle) bool { return x == h })
	}
	dst.views = append(dst.views, h)
	v.output = to
	n.cb.ViewMoveToOutput(h, from, to)
	return nil
}

func (n *Native) setResolution(h wlc.Handle, size wlc.Size, scale uint32) error {
	o, err := n.output(h)
	if err != nil {
		return err
	}
	if size.W == 0 || size.H == 0 {
		return rejected("set resolution", syscall.EINVAL)
	}
	from := o.res
	o.res = size
	if scale != 0 {
		o.scale = scale
	}
	if from != size {
		n.cb.OutputResolution(h, from, size)
	}
	return nil
}

func (n *Native) output(h wlc.Handle) (*output, error) {
	o, ok := n.outputs[h]
	if !ok {
		return nil, rejected(fmt.Sprintf("output %s", h), syscall.ENOENT)
	}
	return o, nil
}

func (n *Native) view(h wlc.Handle) (*view, error) {
	v, ok := n.views[h]
	if !ok {
		return nil, rejected(fmt.Sprintf("view %s", h), syscall.ENOENT)
	}
	return v, nil
}

// Outputs lists outputs in creation order.
func (n *Native) Outputs() []wlc.Handle {
	n.call("Outputs")
	return slices.Clone(n.outputOrder)
}

func (n *Native) FocusedOutput() wlc.Handle {
	n.call("FocusedOutput")
	return n.focusOut
}

// Exec records the command instead of spawning it.
func (n *Native) Exec(bin string, args []string) error {
	n.call("Exec")
	if strings.TrimSpace(bin) == "" {
		return rejected("exec", syscall.EINVAL)
	}
	n.execs = append(n.execs, append([]string{bin}, args...))
	logger.Native().Info("exec", "bin", bin, "args", args)
	return nil
}

func (n *Native) KeysymForKey(key uint32, mods wlc.Modifiers) uint32 {
	n.call("KeysymForKey")
	return keysym(key, mods)
}

func (n *Native) OutputName(h wlc.Handle) (string, error) {
	n.call("OutputName")
	o, err := n.output(h)
	if err != nil {
		return "", err
	}
	return o.name, nil
}

func (n *Native) OutputResolution(h wlc.Handle) (wlc.Size, error) {
	n.call("OutputResolution")
	o, err := n.output(h)
	if err != nil {
		return wlc.Size{}, err
	}
	return o.res, nil
}

func (n *Native) OutputScale(h wlc.Handle) (uint32, error) {
	n.call("OutputScale")
	o, err := n.output(h)
	if err != nil {
		return 0, err
	}
	return o.scale, nil
}

func (n *Native) SetOutputResolution(h wlc.Handle, size wlc.Size, scale uint32) error {
	n.call("SetOutputResolution")
	return n.setResolution(h, size, scale)
}

func (n *Native) OutputSleep(h wlc.Handle) (bool, error) {
	n.call("OutputSleep")
	o, err := n.output(h)
	if err != nil {
		return false, err
	}
	return o.sleep, nil
}

func (n *Native) SetOutputSleep(h wlc.Handle, sleep bool) error {
	n.call("SetOutputSleep")
	o, err := n.output(h)
	if err != nil {
		return err
	}
	o.sleep = sleep
	return nil
}

func (n *Native) OutputMask(h wlc.Handle) (uint32, error) {
	n.call("OutputMask")
	o, err := n.output(h)
	if err != nil {
		return 0, err
	}
	return o.mask, nil
}

func (n *Native) SetOutputMask(h wlc.Handle, mask uint32) error {
	n.call("SetOutputMask")
	o, err := n.output(h)
	if err != nil {
		return err
	}
	o.mask = mask
	return nil
}

func (n *Native) OutputViews(h wlc.Handle) ([]wlc.Handle, error) {
	n.call("OutputViews")
	o, err := n.output(h)
	if err != nil {
		return nil, err
	}
	return slices.Clone(o.views), nil
}

func (n *Native) FocusOutput(h wlc.Handle) error {
	n.call("FocusOutput")
	return n.focusOutput(h)
}

func (n *Native) ViewTitle(h wlc.Handle) (string, error) {
	n.call("ViewTitle")
	v, err := n.view(h)
	if err != nil {
		return "", err
	}
	return v.title, nil
}

func (n *Native) ViewAppID(h wlc.Handle) (string, error) {
	n.call("ViewAppID")
	v, err := n.view(h)
	if err != nil {
		return "", err
	}
	return v.appID, nil
}

func (n *Native) ViewClass(h wlc.Handle) (string, error) {
	n.call("ViewClass")
	v, err := n.view(h)
	if err != nil {
		return "", err
	}
	return v.class, nil
}

func (n *Native) ViewGeometry(h wlc.Handle) (wlc.Geometry, error) {
	n.call("ViewGeometry")
	v, err := n.view(h)
	if err != nil {
		return wlc.Geometry{}, err
	}
	return v.geometry, nil
}

func (n *Native) SetViewGeometry(h wlc.Handle, edges wlc.ResizeEdge, g wlc.Geometry) error {
	n.call("SetViewGeometry")
	v, err := n.view(h)
	if err != nil {
		return err
	}
	if g.Empty() {
		return rejected("set geometry", syscall.EINVAL)
	}
	v.geometry = g
	return nil
}

func (n *Native) ViewState(h wlc.Handle) (wlc.ViewState, error) {
	n.call("ViewState")
	v, err := n.view(h)
	if err != nil {
		return 0, err
	}
	return v.state, nil
}

func (n *Native) SetViewState(h wlc.Handle, state wlc.ViewState, toggle bool) error {
	n.call("SetViewState")
	v, err := n.view(h)
	if err != nil {
		return err
	}
	if toggle {
		v.state |= state
	} else {
		v.state &^= state
	}
	return nil
}

func (n *Native) ViewMask(h wlc.Handle) (uint32, error) {
	n.call("ViewMask")
	v, err := n.view(h)
	if err != nil {
		return 0, err
	}
	return v.mask, nil
}

func (n *Native) SetViewMask(h wlc.Handle, mask uint32) error {
	n.call("SetViewMask")
	v, err := n.view(h)
	if err != nil {
		return err
	}
	v.mask = mask
	return nil
}

func (n *Native) ViewOutput(h wlc.Handle) (wlc.Handle, error) {
	n.call("ViewOutput")
	v, err := n.view(h)
	if err != nil {
		return 0, err
	}
	return v.output, nil
}

func (n *Native) SetViewOutput(h wlc.Handle, out wlc.Handle) error {
	n.call("SetViewOutput")
	return n.moveView(h, out)
}

func (n *Native) ViewType(h wlc.Handle) (wlc.ViewType, error) {
	n.call("ViewType")
	v, err := n.view(h)
	if err != nil {
		return 0, err
	}
	return v.typ, nil
}

func (n *Native) ViewParent(h wlc.Handle) (wlc.Handle, error) {
	n.call("ViewParent")
	v, err := n.view(h)
	if err != nil {
		return 0, err
	}
	if _, ok := n.views[v.parent]; !ok {
		return 0, nil
	}
	return v.parent, nil
}

func (n *Native) FocusView(h wlc.Handle) error {
	n.call("FocusView")
	return n.focusViewHandle(h)
}

// CloseView asks the client to close; the simulated client complies at once.
func (n *Native) CloseView(h wlc.Handle) error {
	n.call("CloseView")
	if _, err := n.view(h); err != nil {
		return err
	}
	n.destroyView(h)
	return nil
}

func (n *Native) BringViewToFront(h wlc.Handle) error {
	n.call("BringViewToFront")
	return n.restack(h, true)
}

func (n *Native) SendViewToBack(h wlc.Handle) error {
	n.call("SendViewToBack")
	return n.restack(h, false)
}

func (n *Native) restack(h wlc.Handle, front bool) error {
	v, err := n.view(h)
	if err != nil {
		return err
	}
	o, ok := n.outputs[v.output]
	if !ok {
		return nil
	}
	o.views = slices.DeleteFunc(o.views, func(x wlc.Handle) bool { return x == h })
	if front {
		o.views = append(o.views, h)
	} else {
		o.views = append([]wlc.Handle{h}, o.views...)
	}
	return nil
}

// Views lists live view handles, sorted. Used by tests and the simulate
// command's summary.
func (n *Native) Views() []wlc.Handle {
	out := make([]wlc.Handle, 0, len(n.views))
	for h := range n.views {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
