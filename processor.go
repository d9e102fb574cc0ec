package postproc

import "math"

// Processor transforms one value into its replacement.
//
// The type parameter T is the processor's declared target. The registry
// only invokes a processor after its accepts-check passed for the same
// computed type, so implementations can assume v matches their target.
//
// Example:
//
//	type SelfLinkProcessor struct {
//	    base string
//	}
//
//	func (p *SelfLinkProcessor) Process(r *postproc.Resource) *postproc.Resource {
//	    w := r.Content.(Widget)
//	    r.AddLink("self", p.base+"/widgets/"+w.ID)
//	    return r
//	}
type Processor[T any] interface {
	Process(v T) T
}

// ProcessorFunc is a function adapter for Processor. Use for simple
// processors that don't need a struct:
//
//	postproc.ForResourceFunc[Widget](func(r *postproc.Resource) *postproc.Resource {
//	    r.AddLink("self", "/widgets")
//	    return r
//	})
type ProcessorFunc[T any] func(v T) T

// Process implements the Processor interface.
func (f ProcessorFunc[T]) Process(v T) T { return f(v) }

// Ordered is implemented by processors that carry their own priority.
// Lower values run earlier.
type Ordered interface {
	ProcessOrder() int
}

// OrderResolver resolves priorities for processors that don't implement
// Ordered, e.g. priorities sourced from external configuration or
// registration metadata. Install one with WithOrderResolver.
type OrderResolver interface {
	// OrderOf returns the priority for the given processor, or false
	// when the resolver has no opinion.
	OrderOf(processor any) (order int, ok bool)
}

// OrderResolverFunc adapts a function to OrderResolver.
type OrderResolverFunc func(processor any) (int, bool)

// OrderOf implements the OrderResolver interface.
func (f OrderResolverFunc) OrderOf(p any) (int, bool) { return f(p) }

// LowestPrecedence is the priority assigned to processors that declare
// none; they run after everything that did.
const LowestPrecedence = math.MaxInt

// priorityOf resolves p's priority: the resolver wins, then the
// processor's own Ordered implementation, then LowestPrecedence.
func priorityOf(p any, r OrderResolver) int {
	if r != nil {
		if o, ok := r.OrderOf(p); ok {
			return o
		}
	}
	if o, ok := p.(Ordered); ok {
		return o.ProcessOrder()
	}
	return LowestPrecedence
}
