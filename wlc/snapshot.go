package wlc

import "github.com/bnema/gowlc/internal/logger"

// OutputInfo is a point-in-time copy of an output's properties.
type OutputInfo struct {
	Handle     Handle   `json:"handle"`
	Name       string   `json:"name"`
	Resolution Size     `json:"resolution"`
	Scale      uint32   `json:"scale"`
	Sleeping   bool     `json:"sleeping"`
	Focused    bool     `json:"focused"`
	Views      []Handle `json:"views"`
}

// ViewInfo is a point-in-time copy of a view's properties.
type ViewInfo struct {
	Handle   Handle    `json:"handle"`
	Title    string    `json:"title"`
	AppID    string    `json:"app_id"`
	Geometry Geometry  `json:"geometry"`
	State    ViewState `json:"state"`
	Output   Handle    `json:"output"`
}

// Snapshot is a copy of what the binding knows, safe to hand to other
// goroutines.
type Snapshot struct {
	Running         bool         `json:"running"`
	Outputs         []OutputInfo `json:"outputs"`
	Views           []ViewInfo   `json:"views"`
	HandlerFailures uint64       `json:"handler_failures"`
	LastError       string       `json:"last_error,omitempty"`
}

// Snapshot collects the live outputs and views. It queries the native
// library, so it must run on the loop thread; outside Run it returns an
// empty snapshot.
func (b *Binding) Snapshot() Snapshot {
	s := Snapshot{
		Running:         b.running.Load(),
		HandlerFailures: b.failures,
	}
	if b.lastErr != nil {
		s.LastError = b.lastErr.Error()
	}
	if !s.Running {
		return s
	}

	focused := b.native.FocusedOutput()
	for _, w := range b.reg.byKind(KindOutput) {
		o := w.(*Output)
		info := OutputInfo{Handle: o.handle, Focused: o.handle == focused}
		var err error
		info.Name, err = o.Name()
		snapshotMiss(o.handle, "name", err)
		info.Resolution, err = o.Resolution()
		snapshotMiss(o.handle, "resolution", err)
		info.Scale, err = o.Scale()
		snapshotMiss(o.handle, "scale", err)
		info.Sleeping, err = o.Sleeping()
		snapshotMiss(o.handle, "sleeping", err)
		info.Views, err = b.native.OutputViews(o.handle)
		snapshotMiss(o.handle, "views", err)
		s.Outputs = append(s.Outputs, info)
	}
	for _, w := range b.reg.byKind(KindView) {
		v := w.(*View)
		info := ViewInfo{Handle: v.handle}
		var err error
		info.Title, err = v.Title()
		snapshotMiss(v.handle, "title", err)
		info.AppID, err = v.AppID()
		snapshotMiss(v.handle, "app id", err)
		info.Geometry, err = v.Geometry()
		snapshotMiss(v.handle, "geometry", err)
		info.State, err = v.State()
		snapshotMiss(v.handle, "state", err)
		info.Output, err = b.native.ViewOutput(v.handle)
		snapshotMiss(v.handle, "output", err)
		s.Views = append(s.Views, info)
	}
	return s
}

// snapshotMiss records a property the snapshot had to leave empty.
func snapshotMiss(h Handle, field string, err error) {
	if err != nil {
		logger.Debug("snapshot field unavailable", "handle", h, "field", field, "err", err)
	}
}
