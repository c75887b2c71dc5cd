package wlc

// View wraps a native view (a client window). All methods must be called
// from the loop thread.
type View struct {
	object
}

func (v *View) String() string {
	return "view " + v.last.String()
}

func (v *View) Title() (string, error) {
	h, err := v.live("title")
	if err != nil {
		return "", err
	}
	return v.b.native.ViewTitle(h)
}

func (v *View) AppID() (string, error) {
	h, err := v.live("app id")
	if err != nil {
		return "", err
	}
	return v.b.native.ViewAppID(h)
}

func (v *View) Class() (string, error) {
	h, err := v.live("class")
	if err != nil {
		return "", err
	}
	return v.b.native.ViewClass(h)
}

func (v *View) Geometry() (Geometry, error) {
	h, err := v.live("geometry")
	if err != nil {
		return Geometry{}, err
	}
	return v.b.native.ViewGeometry(h)
}

// SetGeometry moves and resizes the view. edges tells the client which
// corner stays anchored during an interactive resize.
func (v *View) SetGeometry(edges ResizeEdge, g Geometry) error {
	h, err := v.live("set geometry")
	if err != nil {
		return err
	}
	return v.b.native.SetViewGeometry(h, edges, g)
}

func (v *View) State() (ViewState, error) {
	h, err := v.live("state")
	if err != nil {
		return 0, err
	}
	return v.b.native.ViewState(h)
}

func (v *View) SetState(state ViewState, toggle bool) error {
	h, err := v.live("set state")
	if err != nil {
		return err
	}
	return v.b.native.SetViewState(h, state, toggle)
}

func (v *View) Mask() (uint32, error) {
	h, err := v.live("mask")
	if err != nil {
		return 0, err
	}
	return v.b.native.ViewMask(h)
}

func (v *View) SetMask(mask uint32) error {
	h, err := v.live("set mask")
	if err != nil {
		return err
	}
	return v.b.native.SetViewMask(h, mask)
}

// Output returns the output the view is on, or nil.
func (v *View) Output() (*Output, error) {
	h, err := v.live("output")
	if err != nil {
		return nil, err
	}
	oh, err := v.b.native.ViewOutput(h)
	if err != nil {
		return nil, err
	}
	return v.b.reg.output(oh), nil
}

func (v *View) SetOutput(o *Output) error {
	h, err := v.live("set output")
	if err != nil {
		return err
	}
	if o == nil {
		return v.b.native.SetViewOutput(h, 0)
	}
	oh, err := o.live("set output")
	if err != nil {
		return err
	}
	return v.b.native.SetViewOutput(h, oh)
}

func (v *View) Type() (ViewType, error) {
	h, err := v.live("type")
	if err != nil {
		return 0, err
	}
	return v.b.native.ViewType(h)
}

// Parent returns the parent view of a transient window, or nil.
func (v *View) Parent() (*View, error) {
	h, err := v.live("parent")
	if err != nil {
		return nil, err
	}
	ph, err := v.b.native.ViewParent(h)
	if err != nil {
		return nil, err
	}
	return v.b.reg.view(ph), nil
}

func (v *View) Focus() error {
	h, err := v.live("focus")
	if err != nil {
		return err
	}
	return v.b.native.FocusView(h)
}

// Close asks the client to close; the wrapper stays valid until the native
// library reports the view destroyed.
func (v *View) Close() error {
	h, err := v.live("close")
	if err != nil {
		return err
	}
	return v.b.native.CloseView(h)
}

func (v *View) BringToFront() error {
	h, err := v.live("bring to front")
	if err != nil {
		return err
	}
	return v.b.native.BringViewToFront(h)
}

func (v *View) SendToBack() error {
	h, err := v.live("send to back")
	if err != nil {
		return err
	}
	return v.b.native.SendViewToBack(h)
}
