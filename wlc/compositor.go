package wlc

// Compositor wraps the process-wide compositor instance. It is valid while
// Run is active.
type Compositor struct {
	object
}

func (c *Compositor) String() string {
	return "compositor"
}

// Outputs returns every output the native library knows about.
func (c *Compositor) Outputs() ([]*Output, error) {
	if _, err := c.live("outputs"); err != nil {
		return nil, err
	}
	handles := c.b.native.Outputs()
	outs := make([]*Output, 0, len(handles))
	for _, h := range handles {
		if o := c.b.reg.output(h); o != nil {
			outs = append(outs, o)
		}
	}
	return outs, nil
}

// FocusedOutput returns the output with focus, or nil.
func (c *Compositor) FocusedOutput() (*Output, error) {
	if _, err := c.live("focused output"); err != nil {
		return nil, err
	}
	return c.b.reg.output(c.b.native.FocusedOutput()), nil
}

// Exec spawns a client process through the native library so it inherits
// the compositor's display environment.
func (c *Compositor) Exec(bin string, args ...string) error {
	if _, err := c.live("exec"); err != nil {
		return err
	}
	return c.b.native.Exec(bin, args)
}

// KeysymForKey translates an evdev key code into an XKB keysym.
func (c *Compositor) KeysymForKey(key uint32, mods Modifiers) (uint32, error) {
	if _, err := c.live("keysym"); err != nil {
		return 0, err
	}
	return c.b.native.KeysymForKey(key, mods), nil
}

// Terminate stops the loop once the current callback returns.
func (c *Compositor) Terminate() error {
	if _, err := c.live("terminate"); err != nil {
		return err
	}
	c.b.native.Terminate()
	return nil
}
