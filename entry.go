package postproc

import "encoding/json"

// Entry couples a processor with its declared target descriptor. Build
// entries with For, ForResource, ForCollection, or ForJSON and hand the
// full set to NewRegistry.
type Entry struct {
	processor any
	invoke    func(any) any
	target    Type
	disc      Discriminator
	order     *int
}

// EntryOption configures a single registration entry.
type EntryOption func(*Entry)

// WithOrder pins the entry's priority, overriding any OrderResolver and
// the processor's own Ordered implementation. Lower runs earlier; ties
// keep registration order.
func WithOrder(order int) EntryOption {
	return func(e *Entry) {
		o := order
		e.order = &o
	}
}

// WithTarget overrides the entry's declared target descriptor. Use it
// to attach generic-parameter bindings the static type alone cannot
// express, e.g. for custom shapes embedding Resource:
//
//	postproc.For[*WidgetResource](p, postproc.WithTarget(
//	    postproc.TypeFor[*WidgetResource]().
//	        Extends(postproc.ResourceOf(postproc.TypeFor[Widget]())),
//	))
func WithTarget(target Type) EntryOption {
	return func(e *Entry) {
		e.target = target
	}
}

// For declares a processor for values of type T. T may be a concrete
// type, an interface, or a custom wrapper shape.
//
// This is a package-level function (not a method) due to Go generics
// limitations: methods cannot have type parameters independent of the
// receiver.
func For[T any](p Processor[T], opts ...EntryOption) Entry {
	e := Entry{
		processor: p,
		invoke: func(v any) any {
			return p.Process(v.(T))
		},
		target: TypeFor[T](),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// ForFunc is a convenience for For with a bare function.
func ForFunc[T any](fn func(T) T, opts ...EntryOption) Entry {
	return For[T](ProcessorFunc[T](fn), opts...)
}

// ForResource declares a processor for resources whose content is of
// type C. The processor receives the resource wrapper, not the bare
// content.
func ForResource[C any](p Processor[*Resource], opts ...EntryOption) Entry {
	opts = append([]EntryOption{WithTarget(ResourceOf(TypeFor[C]()))}, opts...)
	return For[*Resource](p, opts...)
}

// ForResourceFunc is a convenience for ForResource with a bare function.
func ForResourceFunc[C any](fn func(*Resource) *Resource, opts ...EntryOption) Entry {
	return ForResource[C](ProcessorFunc[*Resource](fn), opts...)
}

// ForCollection declares a processor for collections whose elements
// hold content of type C. Element wrappers are transparent for
// matching: a collection of C-resources matches a ForCollection[C]
// entry.
func ForCollection[C any](p Processor[*Collection], opts ...EntryOption) Entry {
	opts = append([]EntryOption{WithTarget(CollectionOf(TypeFor[C]()))}, opts...)
	return For[*Collection](p, opts...)
}

// ForCollectionFunc is a convenience for ForCollection with a bare
// function.
func ForCollectionFunc[C any](fn func(*Collection) *Collection, opts ...EntryOption) Entry {
	return ForCollection[C](ProcessorFunc[*Collection](fn), opts...)
}

// ForJSON declares a processor for resources holding raw JSON content
// ([]byte or json.RawMessage) whose fields match disc. Non-bytes
// content and invalid JSON never match.
func ForJSON(disc Discriminator, p Processor[*Resource], opts ...EntryOption) Entry {
	e := ForResource[json.RawMessage](p, opts...)
	e.disc = disc
	return e
}

// ForJSONFunc is a convenience for ForJSON with a bare function.
func ForJSONFunc(disc Discriminator, fn func(*Resource) *Resource, opts ...EntryOption) Entry {
	return ForJSON(disc, ProcessorFunc[*Resource](fn), opts...)
}

// priority resolves the entry's effective order: an explicit WithOrder
// wins, then the registry's resolver, then the processor itself.
func (e Entry) priority(r OrderResolver) int {
	if e.order != nil {
		return *e.order
	}
	return priorityOf(e.processor, r)
}
