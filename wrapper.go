package postproc

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// wrapper unifies interaction with registered processors. supports
// answers whether the processor applies to a (type, value) pair; invoke
// runs it. invoke is only called after supports returned true for the
// same computed type.
type wrapper interface {
	supports(t Type, v any) bool
	invoke(v any) any
	order() int
	proc() any
}

// defaultWrapper handles processors declared against arbitrary types:
// raw-type assignability only, no content inspection.
type defaultWrapper struct {
	processor any
	invokeFn  func(any) any
	target    Type
	priority  int
}

func (w *defaultWrapper) supports(t Type, _ any) bool {
	return assignable(w.target, t)
}

func (w *defaultWrapper) invoke(v any) any { return w.invokeFn(v) }

func (w *defaultWrapper) order() int { return w.priority }

func (w *defaultWrapper) proc() any { return w.processor }

// resourceWrapper handles processors declared against the resource
// shape. It peeks at the resource's live content for type resolution,
// since the declared type of the producing context rarely names the
// concrete content type.
type resourceWrapper struct {
	defaultWrapper
	disc Discriminator
}

func (w *resourceWrapper) supports(t Type, v any) bool {
	if !isResourceType(t) {
		return false
	}
	if !w.defaultWrapper.supports(t, v) {
		return false
	}
	if !resourceContentMatch(v, w.target) {
		return false
	}
	if w.disc == nil {
		return true
	}
	return discMatch(v, w.disc)
}

// resourceContentMatch reports whether the live resource's content
// satisfies the content type bound in target's chain. A nil value, a
// non-resource value, and a resource holding nil content never match.
func resourceContentMatch(v any, target Type) bool {
	r, ok := AsResource(v)
	if !ok {
		return false
	}
	if !assignable(target, TypeOf(v)) {
		return false
	}
	if r.Content == nil {
		return false
	}
	want, ok := superParam(target, resourceRaw)
	if !ok {
		return false
	}
	return assignable(want, TypeOf(r.Content))
}

// discMatch runs a JSON content discriminator against a resource's raw
// content bytes. Fails closed on non-bytes content and invalid JSON.
func discMatch(v any, disc Discriminator) bool {
	r, ok := AsResource(v)
	if !ok {
		return false
	}
	raw, ok := jsonContent(r.Content)
	if !ok || !gjson.ValidBytes(raw) {
		return false
	}
	return disc.Match(jsonView{raw: raw})
}

func jsonContent(content any) ([]byte, bool) {
	switch b := content.(type) {
	case json.RawMessage:
		return b, true
	case []byte:
		return b, true
	default:
		return nil, false
	}
}

// collectionWrapper handles processors declared against the collection
// shape. It peeks at the first element for type matching: an empty
// collection gives no basis to infer the element type and never
// matches.
type collectionWrapper struct {
	defaultWrapper
}

func (w *collectionWrapper) supports(t Type, v any) bool {
	if !isCollectionType(t) {
		return false
	}
	if !w.defaultWrapper.supports(t, v) {
		return false
	}
	return collectionContentMatch(v, w.target)
}

func collectionContentMatch(v any, target Type) bool {
	c, ok := AsCollection(v)
	if !ok {
		return false
	}
	if len(c.Items) == 0 {
		return false
	}
	want, ok := superParam(target, collectionRaw)
	if !ok {
		return false
	}
	return elementMatch(c.Items[0], want)
}

// elementMatch applies the scalar content rule to a single collection
// element: resource-shaped elements match through their content,
// embedded placeholders through their advertised target type. Bare
// elements never match a collection processor.
func elementMatch(elem any, want Type) bool {
	if r, ok := AsResource(elem); ok {
		if isResourceType(want) {
			return resourceContentMatch(elem, want)
		}
		if r.Content == nil {
			return false
		}
		return assignable(want, TypeOf(r.Content))
	}
	if emb, ok := elem.(*Embedded); ok {
		if emb.Target == nil {
			return false
		}
		return assignable(want, Type{raw: emb.Target})
	}
	return false
}
