package postproc

import (
	"errors"
	"sort"
)

// ErrNilProcessors is returned by NewRegistry for a nil entry slice.
var ErrNilProcessors = errors.New("postproc: processors must not be nil")

// Registry holds the classified, priority-sorted set of processors.
// It is immutable after construction and safe for unsynchronized
// concurrent use by any number of in-flight dispatches.
type Registry struct {
	wrappers []wrapper
	resolver OrderResolver
}

// RegistryOption configures registry construction.
type RegistryOption func(*Registry)

// WithOrderResolver installs an external priority source, consulted
// before each processor's own Ordered implementation.
func WithOrderResolver(r OrderResolver) RegistryOption {
	return func(reg *Registry) { reg.resolver = r }
}

// NewRegistry classifies the given entries by their declared target
// type and sorts them by ascending priority, keeping registration order
// for ties. A nil entries slice is a construction-time contract
// violation; an empty one is a registry that matches nothing.
func NewRegistry(entries []Entry, opts ...RegistryOption) (*Registry, error) {
	if entries == nil {
		return nil, ErrNilProcessors
	}

	reg := &Registry{}
	for _, opt := range opts {
		opt(reg)
	}

	reg.wrappers = make([]wrapper, 0, len(entries))
	for _, e := range entries {
		reg.wrappers = append(reg.wrappers, reg.wrap(e))
	}

	sort.SliceStable(reg.wrappers, func(i, j int) bool {
		return reg.wrappers[i].order() < reg.wrappers[j].order()
	})

	return reg, nil
}

// wrap classifies one entry from its declared target descriptor:
// resource-shaped targets get content peeking, collection-shaped ones
// first-element peeking, everything else plain assignability.
func (reg *Registry) wrap(e Entry) wrapper {
	base := defaultWrapper{
		processor: e.processor,
		invokeFn:  e.invoke,
		target:    e.target,
		priority:  e.priority(reg.resolver),
	}

	switch {
	case isResourceType(e.target):
		return &resourceWrapper{defaultWrapper: base, disc: e.disc}
	case isCollectionType(e.target):
		return &collectionWrapper{defaultWrapper: base}
	default:
		return &base
	}
}

// Apply folds value through every processor whose accepts-check passes
// for (t, current value), in priority order. The type is computed once
// by the caller and never recomputed mid-fold: only the value threads
// through, so lower-priority processors match against the type
// established before the fold began.
func (reg *Registry) Apply(v any, t Type) any {
	return reg.apply(v, t, nil)
}

func (reg *Registry) apply(v any, t Type, h *hooks) any {
	current := v
	for _, w := range reg.wrappers {
		if !w.supports(t, current) {
			continue
		}
		if h != nil {
			h.applied(w.proc(), t)
		}
		current = w.invoke(current)
	}
	return current
}
