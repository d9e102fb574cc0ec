package postproc

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// OnApplyFunc is called each time a processor's accepts-check passed,
// just before the processor runs.
type OnApplyFunc func(processor any, t Type)

// OnPassThroughFunc is called when a dispatched value carries nothing
// processable and is returned unchanged.
type OnPassThroughFunc func(value any)

// OnCompleteFunc is called when a dispatch finishes, with the final
// value and the total duration.
type OnCompleteFunc func(value any, d time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onApply       []OnApplyFunc
	onPassThrough []OnPassThroughFunc
	onComplete    []OnCompleteFunc
}

func (h *hooks) applied(processor any, t Type) {
	for _, fn := range h.onApply {
		fn(processor, t)
	}
}

func (h *hooks) passedThrough(value any) {
	for _, fn := range h.onPassThrough {
		fn(value)
	}
}

func (h *hooks) completed(value any, d time.Duration) {
	for _, fn := range h.onComplete {
		fn(value, d)
	}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithOnApply adds a hook called before each matched processor runs.
// Multiple hooks are called in order.
//
// Example:
//
//	postproc.WithOnApply(func(p any, t postproc.Type) {
//	    metrics.Incr("postproc.apply", "type:"+t.String())
//	})
func WithOnApply(fn OnApplyFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onApply = append(d.hooks.onApply, fn)
	}
}

// WithOnPassThrough adds a hook called when a value short-circuits
// dispatch because nothing in it is processable.
func WithOnPassThrough(fn OnPassThroughFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onPassThrough = append(d.hooks.onPassThrough, fn)
	}
}

// WithOnComplete adds a hook called when a dispatch finishes.
//
// Example:
//
//	postproc.WithOnComplete(func(v any, d time.Duration) {
//	    metrics.Timing("postproc.dispatch", d)
//	})
func WithOnComplete(fn OnCompleteFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onComplete = append(d.hooks.onComplete, fn)
	}
}

// WithLogger installs debug-level zap hooks for every lifecycle event.
// Use it for visibility without writing hooks by hand:
//
//	d, err := postproc.NewDispatcher(reg, postproc.WithLogger(logger))
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.hooks.onApply = append(d.hooks.onApply, func(p any, t Type) {
			l.Debug("applying processor",
				zap.String("processor", fmt.Sprintf("%T", p)),
				zap.Stringer("type", t),
			)
		})
		d.hooks.onPassThrough = append(d.hooks.onPassThrough, func(v any) {
			l.Debug("pass-through", zap.String("value", fmt.Sprintf("%T", v)))
		})
		d.hooks.onComplete = append(d.hooks.onComplete, func(v any, dur time.Duration) {
			l.Debug("dispatch complete",
				zap.String("value", fmt.Sprintf("%T", v)),
				zap.Duration("duration", dur),
			)
		})
	}
}
