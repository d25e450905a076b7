package locator

import "sync/atomic"

// Registry holds the active Model and supports atomic replacement on
// configuration reload. A query reads the pointer once and keeps that model
// for its whole run, so a concurrent Replace is never partially visible:
// old queries finish against the old model, new queries see the new one.
type Registry struct {
	current atomic.Pointer[Model]
}

// NewRegistry builds a registry over an initial model. The model must be
// non-nil.
func NewRegistry(m *Model) *Registry {
	r := &Registry{}
	r.current.Store(m)
	return r
}

// Current returns the active model. Hold the result for at most one query;
// a reload may have replaced it by the next.
func (r *Registry) Current() *Model {
	return r.current.Load()
}

// Replace atomically installs a new model. The old model is discarded
// wholesale; there is no in-place mutation.
func (r *Registry) Replace(m *Model) {
	r.current.Store(m)
}
