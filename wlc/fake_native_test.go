package wlc

import (
	"errors"
	"syscall"
)

type fakeOutput struct {
	name  string
	res   Size
	scale uint32
	sleep bool
	mask  uint32
	views []Handle
}

type fakeView struct {
	title    string
	geometry Geometry
	state    ViewState
	output   Handle
}

// fakeNative is an in-memory Native. Its loop func plays the part of the
// native run loop and drives the installed callbacks.
type fakeNative struct {
	cb      *Callbacks
	initErr error
	runErr  error
	loop    func(n *fakeNative)

	outputs map[Handle]*fakeOutput
	views   map[Handle]*fakeView
	focused Handle

	calls      []string
	terminated bool
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		outputs: make(map[Handle]*fakeOutput),
		views:   make(map[Handle]*fakeView),
	}
}

func (n *fakeNative) call(name string) { n.calls = append(n.calls, name) }

func (n *fakeNative) Init(cfg Config, cb *Callbacks) error {
	n.call("Init")
	if n.initErr != nil {
		return n.initErr
	}
	n.cb = cb
	return nil
}

func (n *fakeNative) Run() error {
	n.call("Run")
	if n.loop != nil {
		n.loop(n)
	}
	return n.runErr
}

func (n *fakeNative) Terminate() {
	n.call("Terminate")
	n.terminated = true
}

func (n *fakeNative) addOutput(h Handle, name string, res Size) bool {
	n.outputs[h] = &fakeOutput{name: name, res: res, scale: 1}
	return n.cb.OutputCreated(h)
}

func (n *fakeNative) addView(h, output Handle, title string) bool {
	n.views[h] = &fakeView{title: title, output: output, geometry: Geometry{Size: Size{W: 640, H: 480}}}
	if o, ok := n.outputs[output]; ok {
		o.views = append(o.views, h)
	}
	return n.cb.ViewCreated(h)
}

func (n *fakeNative) removeView(h Handle) {
	n.cb.ViewDestroyed(h)
	delete(n.views, h)
}

var errNoObject = &NativeError{Op: "lookup", Code: int(syscall.ENOENT)}

func (n *fakeNative) output(h Handle) (*fakeOutput, error) {
	o, ok := n.outputs[h]
	if !ok {
		return nil, errNoObject
	}
	return o, nil
}

func (n *fakeNative) view(h Handle) (*fakeView, error) {
	v, ok := n.views[h]
	if !ok {
		return nil, errNoObject
	}
	return v, nil
}

func (n *fakeNative) Outputs() []Handle {
	n.call("Outputs")
	var out []Handle
	for h := range n.outputs {
		out = append(out, h)
	}
	return out
}

func (n *fakeNative) FocusedOutput() Handle {
	n.call("FocusedOutput")
	return n.focused
}

func (n *fakeNative) Exec(bin string, args []string) error {
	n.call("Exec")
	if bin == "" {
		return errors.New("empty command")
	}
	return nil
}

func (n *fakeNative) KeysymForKey(key uint32, mods Modifiers) uint32 {
	n.call("KeysymForKey")
	return key + 0xff00
}

func (n *fakeNative) OutputName(h Handle) (string, error) {
	n.call("OutputName")
	o, err := n.output(h)
	if err != nil {
		return "", err
	}
	return o.name, nil
}

func (n *fakeNative) OutputResolution(h Handle) (Size, error) {
	n.call("OutputResolution")
	o, err := n.output(h)
	if err != nil {
		return Size{}, err
	}
	return o.res, nil
}

func (n *fakeNative) OutputScale(h Handle) (uint32, error) {
	n.call("OutputScale")
	o, err := n.output(h)
	if err != nil {
		return 0, err
	}
	return o.scale, nil
}

func (n *fakeNative) SetOutputResolution(h Handle, size Size, scale uint32) error {
	n.call("SetOutputResolution")
	o, err := n.output(h)
	if err != nil {
		return err
	}
	if size.W == 0 || size.H == 0 {
		return &NativeError{Op: "set resolution", Code: int(syscall.EINVAL)}
	}
	from := o.res
	o.res = size
	if scale != 0 {
		o.scale = scale
	}
	n.cb.OutputResolution(h, from, size)
	return nil
}

func (n *fakeNative) OutputSleep(h Handle) (bool, error) {
	n.call("OutputSleep")
	o, err := n.output(h)
	if err != nil {
		return false, err
	}
	return o.sleep, nil
}

func (n *fakeNative) SetOutputSleep(h Handle, sleep bool) error {
	n.call("SetOutputSleep")
	o, err := n.output(h)
	if err != nil {
		return err
	}
	o.sleep = sleep
	return nil
}

func (n *fakeNative) OutputMask(h Handle) (uint32, error) {
	n.call("OutputMask")
	o, err := n.output(h)
	if err != nil {
		return 0, err
	}
	return o.mask, nil
}

func (n *fakeNative) SetOutputMask(h Handle, mask uint32) error {
	n.call("SetOutputMask")
	o, err := n.output(h)
	if err != nil {
		return err
	}
	o.mask = mask
	return nil
}

func (n *fakeNative) OutputViews(h Handle) ([]Handle, error) {
	n.call("OutputViews")
	o, err := n.output(h)
	if err != nil {
		return nil, err
	}
	return append([]Handle(nil), o.views...), nil
}

func (n *fakeNative) FocusOutput(h Handle) error {
	n.call("FocusOutput")
	if _, err := n.output(h); err != nil {
		return err
	}
	n.focused = h
	return nil
}

func (n *fakeNative) ViewTitle(h Handle) (string, error) {
	n.call("ViewTitle")
	v, err := n.view(h)
	if err != nil {
		return "", err
	}
	return v.title, nil
}

func (n *fakeNative) ViewAppID(h Handle) (string, error) {
	n.call("ViewAppID")
	_, err := n.view(h)
	return "", err
}

func (n *fakeNative) ViewClass(h Handle) (string, error) {
	n.call("ViewClass")
	_, err := n.view(h)
	return "", err
}

func (n *fakeNative) ViewGeometry(h Handle) (Geometry, error) {
	n.call("ViewGeometry")
	v, err := n.view(h)
	if err != nil {
		return Geometry{}, err
	}
	return v.geometry, nil
}

func (n *fakeNative) SetViewGeometry(h Handle, edges ResizeEdge, g Geometry) error {
	n.call("SetViewGeometry")
	v, err := n.view(h)
	if err != nil {
		return err
	}
	if g.Empty() {
		return &NativeError{Op: "set geometry", Code: int(syscall.EINVAL)}
	}
	v.geometry = g
	return nil
}

func (n *fakeNative) ViewState(h Handle) (ViewState, error) {
	n.call("ViewState")
	v, err := n.view(h)
	if err != nil {
		return 0, err
	}
	return v.state, nil
}

func (n *fakeNative) SetViewState(h Handle, state ViewState, toggle bool) error {
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

func (n *fakeNative) ViewMask(h Handle) (uint32, error) {
	n.call("ViewMask")
	_, err := n.view(h)
	return 0, err
}

func (n *fakeNative) SetViewMask(h Handle, mask uint32) error {
	n.call("SetViewMask")
	_, err := n.view(h)
	return err
}

func (n *fakeNative) ViewOutput(h Handle) (Handle, error) {
	n.call("ViewOutput")
	v, err := n.view(h)
	if err != nil {
		return 0, err
	}
	return v.output, nil
}

func (n *fakeNative) SetViewOutput(h Handle, output Handle) error {
	n.call("SetViewOutput")
	v, err := n.view(h)
	if err != nil {
		return err
	}
	v.output = output
	return nil
}

func (n *fakeNative) ViewType(h Handle) (ViewType, error) {
	n.call("ViewType")
	_, err := n.view(h)
	return 0, err
}

func (n *fakeNative) ViewParent(h Handle) (Handle, error) {
	n.call("ViewParent")
	_, err := n.view(h)
	return 0, err
}

func (n *fakeNative) FocusView(h Handle) error {
	n.call("FocusView")
	_, err := n.view(h)
	return err
}

func (n *fakeNative) CloseView(h Handle) error {
	n.call("CloseView")
	_, err := n.view(h)
	return err
}

func (n *fakeNative) BringViewToFront(h Handle) error {
	n.call("BringViewToFront")
	_, err := n.view(h)
	return err
}

func (n *fakeNative) SendViewToBack(h Handle) error {
	n.call("SendViewToBack")
	_, err := n.view(h)
	return err
}

// callsSince returns the native calls recorded after mark.
func (n *fakeNative) callsSince(mark int) []string {
	return append([]string(nil), n.calls[mark:]...)
}
