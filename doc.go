// Package postproc post-processes handler results before rendering.
//
// The postproc package takes the value a request handler produced, finds
// every registered processor whose declared target matches the value's
// actual type — not merely its static declared type — applies them in a
// deterministic priority order, and reconstitutes any transport envelope
// that wrapped the original value. Use it to decorate hypermedia
// resources with links, redact fields, or attach computed metadata
// without coupling handlers to that logic.
//
// # Quick Start
//
// Define a processor for your resource content:
//
//	type Widget struct {
//	    ID string
//	}
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
//
// Build a registry and a dispatcher, then dispatch handler results:
//
//	reg, err := postproc.NewRegistry([]postproc.Entry{
//	    postproc.ForResource[Widget](&SelfLinkProcessor{base: "https://api.example.com"}),
//	})
//	if err != nil {
//	    return err
//	}
//
//	d, err := postproc.NewDispatcher(reg)
//	if err != nil {
//	    return err
//	}
//
//	out := d.Dispatch(handlerResult, postproc.ResourceOf(postproc.TypeFor[Widget]()))
//
// # Value Shapes
//
// Dispatch recognizes three shapes:
//
//   - Resource: one content payload plus relation links
//   - Collection: an ordered sequence of elements plus collection links
//   - anything else: passed through untouched, same instance
//
// Custom types keep a shape by embedding the wrapper:
//
//	type WidgetResource struct {
//	    postproc.Resource
//	    Revision int
//	}
//
// An optional Envelope (Entity or ResponseEntity) may wrap the value;
// it is stripped before matching and rebuilt afterward with the new
// body and the original status and headers.
//
// # Effective Type Resolution
//
// A handler's declared return type is often less specific than what it
// actually returned: the declaration may say Resource of Base while the
// live resource holds a Derived. Matching always resolves the effective
// type from the live value:
//
//   - the value's concrete type wins over the declaration when their
//     raw types disagree
//   - resource processors peek at the resource's content
//   - collection processors peek at the first element; an empty
//     collection matches no collection processor (there is no basis to
//     infer its element type)
//
// Type descriptors are plain values built once at registration:
//
//	postproc.TypeFor[Widget]()                             // a concrete type
//	postproc.ResourceOf(postproc.TypeFor[Widget]())        // Resource of Widget
//	postproc.CollectionOf(postproc.TypeFor[Widget]())      // Collection of Widget
//	postproc.EntityOf(postproc.ResourceOf(...))            // envelope-wrapped
//
// Custom shapes declare their generic bindings with Extends; the
// matcher walks the declared supertype chain to find the parameter
// bound at the wrapper ancestor.
//
// # Processors and Ordering
//
// Processors implement a single-method interface with a typed target:
//
//	type Processor[T any] interface {
//	    Process(v T) T
//	}
//
// Registration entries classify a processor from its declared target:
//
//	postproc.ForResource[Widget](p)        // matches Resource holding Widget
//	postproc.ForCollection[Widget](p)      // matches Collection of Widget resources
//	postproc.For[*WidgetResource](p)       // matches the custom shape itself
//	postproc.ForJSON(disc, p)              // matches raw-JSON content by fields
//
// Priorities are ascending (lower runs first) and resolve in order:
// an explicit WithOrder on the entry, then the registry's
// OrderResolver, then the processor's own Ordered implementation, then
// LowestPrecedence. Ties keep registration order.
//
// Within one dispatch the matched processors form a strict left fold:
// each processor sees the output of every higher-priority processor
// that matched, while matching decisions use the type computed before
// the fold began. Collection elements are folded independently,
// left-to-right, before the collection itself.
//
// # JSON Content Discrimination
//
// Resources holding raw JSON ([]byte or json.RawMessage) can select
// processors by content fields instead of Go types:
//
//	entry := postproc.ForJSONFunc(
//	    postproc.And(
//	        postproc.HasFields("kind"),
//	        postproc.FieldEquals("kind", "widget"),
//	    ),
//	    func(r *postproc.Resource) *postproc.Resource {
//	        r.AddLink("self", "/widgets")
//	        return r
//	    },
//	)
//
// Invalid JSON and non-bytes content never match.
//
// # Hooks
//
// Hooks provide observability without coupling to a logging or metrics
// system:
//
//	d, err := postproc.NewDispatcher(reg,
//	    postproc.WithOnApply(func(p any, t postproc.Type) {
//	        metrics.Incr("postproc.apply")
//	    }),
//	    postproc.WithOnComplete(func(v any, d time.Duration) {
//	        metrics.Timing("postproc.dispatch", d)
//	    }),
//	)
//
// WithLogger installs zap debug hooks for all lifecycle events.
//
// # Error Handling
//
// Dispatch itself never fails: unknown or unresolvable type information
// degrades to "matches nothing" or "matches the most general case".
// The only errors are construction-time contract violations — a nil
// entry slice, registry, or delegate. A panic raised by a processor is
// not recovered; it aborts the dispatch and propagates to the caller.
//
// # Thread Safety
//
// Registry and Dispatcher are immutable after construction and safe for
// concurrent use from any number of in-flight dispatches. Ordering is
// guaranteed within a single dispatch only. Processor implementations
// are responsible for their own re-entrancy.
package postproc
