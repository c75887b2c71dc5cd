package wlc

// Output wraps a native output (a monitor). All methods must be called from
// the loop thread.
type Output struct {
	object
}

func (o *Output) String() string {
	return "output " + o.last.String()
}

func (o *Output) Name() (string, error) {
	h, err := o.live("name")
	if err != nil {
		return "", err
	}
	return o.b.native.OutputName(h)
}

// Resolution returns the current mode size in pixels.
func (o *Output) Resolution() (Size, error) {
	h, err := o.live("resolution")
	if err != nil {
		return Size{}, err
	}
	return o.b.native.OutputResolution(h)
}

func (o *Output) Scale() (uint32, error) {
	h, err := o.live("scale")
	if err != nil {
		return 0, err
	}
	return o.b.native.OutputScale(h)
}

// SetResolution asks the native library to switch modes. A scale of zero
// keeps the current scale.
func (o *Output) SetResolution(size Size, scale uint32) error {
	h, err := o.live("set resolution")
	if err != nil {
		return err
	}
	return o.b.native.SetOutputResolution(h, size, scale)
}

func (o *Output) Sleeping() (bool, error) {
	h, err := o.live("sleep")
	if err != nil {
		return false, err
	}
	return o.b.native.OutputSleep(h)
}

func (o *Output) SetSleep(sleep bool) error {
	h, err := o.live("set sleep")
	if err != nil {
		return err
	}
	return o.b.native.SetOutputSleep(h, sleep)
}

// Mask returns the visibility mask; views whose mask shares no bit with it
// are not drawn on this output.
func (o *Output) Mask() (uint32, error) {
	h, err := o.live("mask")
	if err != nil {
		return 0, err
	}
	return o.b.native.OutputMask(h)
}

func (o *Output) SetMask(mask uint32) error {
	h, err := o.live("set mask")
	if err != nil {
		return err
	}
	return o.b.native.SetOutputMask(h, mask)
}

// Views returns the views on this output in stacking order, bottom first.
func (o *Output) Views() ([]*View, error) {
	h, err := o.live("views")
	if err != nil {
		return nil, err
	}
	handles, err := o.b.native.OutputViews(h)
	if err != nil {
		return nil, err
	}
	views := make([]*View, 0, len(handles))
	for _, vh := range handles {
		if v := o.b.reg.view(vh); v != nil {
			views = append(views, v)
		}
	}
	return views, nil
}

func (o *Output) Focus() error {
	h, err := o.live("focus")
	if err != nil {
		return err
	}
	return o.b.native.FocusOutput(h)
}
