package postproc

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNilRegistry is returned when a dispatcher or return handler is
	// constructed without a registry.
	ErrNilRegistry = errors.New("postproc: registry must not be nil")

	// ErrNilDelegate is returned when a return handler is constructed
	// without a downstream delegate.
	ErrNilDelegate = errors.New("postproc: delegate must not be nil")
)

// Dispatcher applies registered processors to handler results.
//
// One dispatch unwraps an optional envelope, resolves the effective
// type of the inner value, folds collection elements and then the value
// itself through the registry, and rewraps the envelope with its
// original metadata. Values that are neither resource- nor
// collection-shaped pass through untouched.
//
// Dispatcher is immutable after construction and safe for concurrent
// use. Processing order is guaranteed within a single dispatch only.
type Dispatcher struct {
	registry           *Registry
	headerWrapper      HeaderWrapper
	rootLinksAsHeaders bool
	hooks              hooks
}

// NewDispatcher creates a Dispatcher over the given registry.
//
// Example:
//
//	reg, err := postproc.NewRegistry([]postproc.Entry{
//	    postproc.ForResource[Widget](selfLinks),
//	    postproc.ForCollection[Widget](pageLinks),
//	})
//	if err != nil {
//	    return err
//	}
//	d, err := postproc.NewDispatcher(reg)
func NewDispatcher(registry *Registry, opts ...Option) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	d := &Dispatcher{registry: registry, headerWrapper: LinkHeaderWrapper{}}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// WithRootLinksAsHeaders moves top-level relation links from the
// processed body into transport headers before the final rewrap. Only
// applies when the input carried an envelope.
func WithRootLinksAsHeaders() Option {
	return func(d *Dispatcher) { d.rootLinksAsHeaders = true }
}

// WithHeaderWrapper replaces the default LinkHeaderWrapper used by
// WithRootLinksAsHeaders.
func WithHeaderWrapper(hw HeaderWrapper) Option {
	return func(d *Dispatcher) {
		if hw != nil {
			d.headerWrapper = hw
		}
	}
}

// Dispatch post-processes value and returns the result.
//
// declared is the static type of the producing context, e.g. a handler
// method's declared return type; pass AnyType when unknown. When the
// live value is of a more specific type than the declaration, the live
// type wins.
//
// Dispatch never fails: unresolvable type information degrades to
// "matches nothing" or "matches the most general case". A panic inside
// a processor is not recovered; it aborts the whole dispatch and
// propagates to the caller.
func (d *Dispatcher) Dispatch(value any, declared Type) any {
	start := time.Now()

	env, _ := value.(Envelope)
	inner := value
	if env != nil {
		inner = env.EnvelopeBody()
	}

	// Nothing post-processable: hand the original back untouched.
	if !isProcessable(inner) {
		d.hooks.passedThrough(value)
		d.hooks.completed(value, time.Since(start))
		return value
	}

	target := declared
	if isEnvelopeType(target) {
		if p, ok := target.Param(); ok {
			target = p
		} else {
			target = AnyType
		}
	}
	target = EffectiveType(target, inner)

	if c, ok := AsCollection(inner); ok {
		d.processElements(c, target)
	}

	processed := d.registry.apply(inner, target, &d.hooks)

	result := processed
	if env != nil {
		out := env.Rewrap(processed)
		if d.rootLinksAsHeaders {
			out = d.headerWrapper.WrapLinks(out)
		}
		result = out
	}

	d.hooks.completed(result, time.Since(start))
	return result
}

// processElements folds each element independently and swaps the new
// sequence onto the same collection value. Ordering and length are
// preserved; elements that match nothing come back unchanged.
func (d *Dispatcher) processElements(c *Collection, target Type) {
	declaredElem, ok := superParam(target, collectionRaw)
	if !ok {
		declaredElem = AnyType
	}

	items := make([]any, len(c.Items))
	for i, elem := range c.Items {
		items[i] = d.registry.apply(elem, EffectiveType(declaredElem, elem), &d.hooks)
	}
	c.Items = items
}

// isProcessable reports whether v is resource- or collection-shaped.
func isProcessable(v any) bool {
	if _, ok := AsResource(v); ok {
		return true
	}
	_, ok := AsCollection(v)
	return ok
}

// ReturnHandler renders a handler's return value. It is the seam to the
// surrounding web plumbing: the dispatcher owns post-processing, the
// delegate owns everything after it.
type ReturnHandler interface {
	// Supports reports whether the handler deals with values of the
	// declared type.
	Supports(declared Type) bool

	// HandleReturn renders the given value.
	HandleReturn(ctx context.Context, value any, declared Type) error
}

// PostProcessingHandler is a ReturnHandler that post-processes values
// before delegating the actual rendering.
type PostProcessingHandler struct {
	delegate   ReturnHandler
	dispatcher *Dispatcher
}

// NewReturnHandler wraps delegate with post-processing over the given
// registry. Both the delegate and the registry must be non-nil.
func NewReturnHandler(delegate ReturnHandler, registry *Registry, opts ...Option) (*PostProcessingHandler, error) {
	if delegate == nil {
		return nil, ErrNilDelegate
	}
	d, err := NewDispatcher(registry, opts...)
	if err != nil {
		return nil, err
	}
	return &PostProcessingHandler{delegate: delegate, dispatcher: d}, nil
}

// Supports forwards to the delegate.
func (h *PostProcessingHandler) Supports(declared Type) bool {
	return h.delegate.Supports(declared)
}

// HandleReturn post-processes value and hands the result to the
// delegate. Errors from the delegate propagate unchanged.
func (h *PostProcessingHandler) HandleReturn(ctx context.Context, value any, declared Type) error {
	return h.delegate.HandleReturn(ctx, h.dispatcher.Dispatch(value, declared), declared)
}
