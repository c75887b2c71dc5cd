package wlc

import (
	"sort"

	"github.com/bnema/gowlc/internal/logger"
)

// object is the part shared by every wrapper: a non-owning reference to a
// native handle plus a validity flag flipped only by destroy notifications.
type object struct {
	b      *Binding
	kind   Kind
	handle Handle
	last   Handle // kept for error messages once handle is cleared
	serial uint64
	dead   bool
}

func (o *object) base() *object { return o }

// Handle returns the native handle, or zero once the object is destroyed.
func (o *object) Handle() Handle {
	return o.handle
}

// ID is unique per wrapper within a Binding and never reused, unlike the
// native handle.
func (o *object) ID() uint64 {
	return o.serial
}

// Alive reports whether the native object still exists.
func (o *object) Alive() bool {
	return !o.dead
}

// live returns the handle to pass to the native side, or ErrStaleHandle.
func (o *object) live(op string) (Handle, error) {
	if o.dead {
		return 0, staleError(o.kind, o.last, op)
	}
	return o.handle, nil
}

func (o *object) kill() {
	o.dead = true
	o.handle = 0
}

type wrapper interface {
	base() *object
}

// registry is the identity map from native handles to wrappers. It is only
// touched from the loop thread, so it carries no lock.
type registry struct {
	b       *Binding
	entries map[Handle]wrapper
	serial  uint64
}

func newRegistry(b *Binding) *registry {
	return &registry{b: b, entries: make(map[Handle]wrapper)}
}

// resolve returns the live wrapper for h, creating it with the given kind on
// first reference. Zero handles resolve to nil.
func (r *registry) resolve(h Handle, kind Kind) wrapper {
	if h == 0 {
		return nil
	}
	if w, ok := r.entries[h]; ok {
		if w.base().kind == kind {
			return w
		}
		// The native side recycled the value for a different object type
		// without telling us; the old wrapper cannot be valid any more.
		logger.Warn("handle reused with a different kind", "handle", h, "was", w.base().kind, "now", kind)
		r.invalidate(h)
	}
	r.serial++
	obj := object{b: r.b, kind: kind, handle: h, last: h, serial: r.serial}
	var w wrapper
	switch kind {
	case KindOutput:
		w = &Output{object: obj}
	case KindView:
		w = &View{object: obj}
	default:
		w = &Compositor{object: obj}
	}
	r.entries[h] = w
	logger.Debug("wrapper registered", "kind", kind, "handle", h)
	return w
}

func (r *registry) output(h Handle) *Output {
	if w, ok := r.resolve(h, KindOutput).(*Output); ok {
		return w
	}
	return nil
}

func (r *registry) view(h Handle) *View {
	if w, ok := r.resolve(h, KindView).(*View); ok {
		return w
	}
	return nil
}

// lookup returns the wrapper for h without creating one.
func (r *registry) lookup(h Handle) (wrapper, bool) {
	w, ok := r.entries[h]
	return w, ok
}

// invalidate marks the wrapper for h dead and forgets it. It reports whether
// an entry existed.
func (r *registry) invalidate(h Handle) bool {
	w, ok := r.entries[h]
	if !ok {
		return false
	}
	w.base().kill()
	delete(r.entries, h)
	logger.Debug("wrapper invalidated", "kind", w.base().kind, "handle", h)
	return true
}

// reset invalidates every entry; used when the loop exits.
func (r *registry) reset() {
	for h := range r.entries {
		r.invalidate(h)
	}
}

func (r *registry) len() int {
	return len(r.entries)
}

// byKind lists live wrappers of one kind in creation order.
func (r *registry) byKind(kind Kind) []wrapper {
	var out []wrapper
	for _, w := range r.entries {
		if w.base().kind == kind {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].base().serial < out[j].base().serial })
	return out
}
