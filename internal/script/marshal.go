package script

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/gowlc/wlc"
)

// ref is how wrappers cross into JS. The prelude turns it back into a
// cached Output or View object.
type ref struct {
	Ref    string `json:"$ref"`
	ID     uint64 `json:"id"`
	Handle uint64 `json:"handle"`
}

// value converts one Go value into something json can carry to JS,
// registering wrappers on the way.
func (h *Host) value(v any) any {
	switch x := v.(type) {
	case *wlc.Output:
		if x == nil {
			return nil
		}
		h.objs[x.ID()] = x
		return ref{Ref: "output", ID: x.ID(), Handle: uint64(x.Handle())}
	case *wlc.View:
		if x == nil {
			return nil
		}
		h.objs[x.ID()] = x
		return ref{Ref: "view", ID: x.ID(), Handle: uint64(x.Handle())}
	case *wlc.Compositor:
		return ref{Ref: "compositor"}
	case []*wlc.Output:
		out := make([]any, len(x))
		for i, o := range x {
			out[i] = h.value(o)
		}
		return out
	case []*wlc.View:
		out := make([]any, len(x))
		for i, o := range x {
			out[i] = h.value(o)
		}
		return out
	case wlc.KeyState:
		return uint32(x)
	case wlc.ButtonState:
		return uint32(x)
	}
	return v
}

func (h *Host) encode(v any) (string, error) {
	data, err := json.Marshal(h.value(v))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (h *Host) encodeArgs(ev wlc.Event) (string, error) {
	args := ev.Args()
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = h.value(a)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding %s arguments: %w", ev.Kind(), err)
	}
	return string(data), nil
}

func arg[T any](args []json.RawMessage, i int, op string) (T, error) {
	var v T
	if i >= len(args) {
		return v, fmt.Errorf("%s: missing argument %d", op, i+1)
	}
	if err := json.Unmarshal(args[i], &v); err != nil {
		return v, fmt.Errorf("%s: argument %d: %w", op, i+1, err)
	}
	return v, nil
}

// call runs a wrapper method requested from JS and returns its result as
// JSON. Unknown ids are wrappers that were already destroyed.
func (h *Host) call(id int, op, argsJSON string) (string, error) {
	obj, ok := h.objs[uint64(id)]
	if op == "alive" {
		return h.encode(ok && obj.(interface{ Alive() bool }).Alive())
	}
	if !ok {
		return "", fmt.Errorf("%s on object %d: %w", op, id, wlc.ErrStaleHandle)
	}

	var args []json.RawMessage
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	var res any
	var err error
	switch o := obj.(type) {
	case *wlc.Output:
		res, err = h.callOutput(o, op, args)
	case *wlc.View:
		res, err = h.callView(o, op, args)
	}
	if err != nil {
		return "", err
	}
	return h.encode(res)
}

func (h *Host) callOutput(o *wlc.Output, op string, args []json.RawMessage) (any, error) {
	switch op {
	case "name":
		return o.Name()
	case "resolution":
		return o.Resolution()
	case "scale":
		return o.Scale()
	case "setResolution":
		size, err := arg[wlc.Size](args, 0, op)
		if err != nil {
			return nil, err
		}
		scale, err := arg[uint32](args, 1, op)
		if err != nil {
			return nil, err
		}
		return nil, o.SetResolution(size, scale)
	case "sleeping":
		return o.Sleeping()
	case "setSleep":
		sleep, err := arg[bool](args, 0, op)
		if err != nil {
			return nil, err
		}
		return nil, o.SetSleep(sleep)
	case "mask":
		return o.Mask()
	case "setMask":
		mask, err := arg[uint32](args, 0, op)
		if err != nil {
			return nil, err
		}
		return nil, o.SetMask(mask)
	case "views":
		return o.Views()
	case "focus":
		return nil, o.Focus()
	}
	return nil, fmt.Errorf("output has no method %q", op)
}

func (h *Host) callView(v *wlc.View, op string, args []json.RawMessage) (any, error) {
	switch op {
	case "title":
		return v.Title()
	case "appId":
		return v.AppID()
	case "class":
		return v.Class()
	case "geometry":
		return v.Geometry()
	case "setGeometry":
		edges, err := arg[wlc.ResizeEdge](args, 0, op)
		if err != nil {
			return nil, err
		}
		g, err := arg[wlc.Geometry](args, 1, op)
		if err != nil {
			return nil, err
		}
		return nil, v.SetGeometry(edges, g)
	case "state":
		return v.State()
	case "setState":
		state, err := arg[wlc.ViewState](args, 0, op)
		if err != nil {
			return nil, err
		}
		toggle, err := arg[bool](args, 1, op)
		if err != nil {
			return nil, err
		}
		return nil, v.SetState(state, toggle)
	case "mask":
		return v.Mask()
	case "setMask":
		mask, err := arg[uint32](args, 0, op)
		if err != nil {
			return nil, err
		}
		return nil, v.SetMask(mask)
	case "output":
		return v.Output()
	case "setOutput":
		id, err := arg[uint64](args, 0, op)
		if err != nil {
			return nil, err
		}
		o, ok := h.objs[id].(*wlc.Output)
		if !ok {
			return nil, fmt.Errorf("%s: object %d is not a live output: %w", op, id, wlc.ErrStaleHandle)
		}
		return nil, v.SetOutput(o)
	case "parent":
		return v.Parent()
	case "type":
		return v.Type()
	case "focus":
		return nil, v.Focus()
	case "close":
		return nil, v.Close()
	case "bringToFront":
		return nil, v.BringToFront()
	case "sendToBack":
		return nil, v.SendToBack()
	}
	return nil, fmt.Errorf("view has no method %q", op)
}

// constants is exported to JS as wlc.events, wlc.mod, wlc.state, wlc.edge
// and wlc.type.
func constants() map[string]any {
	var events []string
	for _, info := range wlc.EventKinds() {
		events = append(events, string(info.Kind))
	}
	return map[string]any{
		"events": events,
		"mod": map[string]wlc.ModMask{
			"shift": wlc.ModShift,
			"caps":  wlc.ModCaps,
			"ctrl":  wlc.ModCtrl,
			"alt":   wlc.ModAlt,
			"mod2":  wlc.ModMod2,
			"mod3":  wlc.ModMod3,
			"logo":  wlc.ModLogo,
			"mod5":  wlc.ModMod5,
		},
		"state": map[string]wlc.ViewState{
			"maximized":  wlc.StateMaximized,
			"fullscreen": wlc.StateFullscreen,
			"resizing":   wlc.StateResizing,
			"moving":     wlc.StateMoving,
			"activated":  wlc.StateActivated,
		},
		"edge": map[string]wlc.ResizeEdge{
			"none":   wlc.EdgeNone,
			"top":    wlc.EdgeTop,
			"bottom": wlc.EdgeBottom,
			"left":   wlc.EdgeLeft,
			"right":  wlc.EdgeRight,
		},
		"type": map[string]wlc.ViewType{
			"overrideRedirect": wlc.TypeOverrideRedirect,
			"unmanaged":        wlc.TypeUnmanaged,
			"splash":           wlc.TypeSplash,
			"modal":            wlc.TypeModal,
			"popup":            wlc.TypePopup,
		},
	}
}
