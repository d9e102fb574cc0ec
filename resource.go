package postproc

import "reflect"

// Link is a relation attached to a resource or collection.
type Link struct {
	Rel  string
	Href string
}

// Resource wraps a single content payload together with its relation
// links. Custom resource types embed Resource to keep the wrapper
// shape:
//
//	type WidgetResource struct {
//	    postproc.Resource
//	    Revision int
//	}
//
// Anything embedding Resource is recognized by the dispatcher and can
// be matched by processors declared for the embedding type.
type Resource struct {
	Content any
	Links   []Link
}

// NewResource wraps content in a Resource carrying the given links.
func NewResource(content any, links ...Link) *Resource {
	return &Resource{Content: content, Links: links}
}

// AddLink appends a relation link. Processors typically decorate
// resources this way.
func (r *Resource) AddLink(rel, href string) {
	r.Links = append(r.Links, Link{Rel: rel, Href: href})
}

func (r *Resource) resourceBase() *Resource { return r }

// resourceShape is satisfied by Resource and, via method promotion, by
// every type embedding it.
type resourceShape interface {
	resourceBase() *Resource
}

// Collection wraps an ordered sequence of elements, typically resources,
// together with collection-level relation links.
type Collection struct {
	Items []any
	Links []Link
}

// NewCollection wraps items in a Collection carrying the given links.
func NewCollection(items []any, links ...Link) *Collection {
	return &Collection{Items: items, Links: links}
}

// AddLink appends a relation link.
func (c *Collection) AddLink(rel, href string) {
	c.Links = append(c.Links, Link{Rel: rel, Href: href})
}

func (c *Collection) collectionBase() *Collection { return c }

// collectionShape is satisfied by Collection and by every type
// embedding it.
type collectionShape interface {
	collectionBase() *Collection
}

// Embedded stands in for a value rendered elsewhere; it only advertises
// the concrete type it replaces. Collection matching falls back to this
// advertised type when the first element is an embedded placeholder.
type Embedded struct {
	Rel    string
	Target reflect.Type
}

// AsResource returns the Resource wrapper inside v, if v is a Resource
// or embeds one.
func AsResource(v any) (*Resource, bool) {
	s, ok := v.(resourceShape)
	if !ok {
		return nil, false
	}
	base := s.resourceBase()
	if base == nil {
		return nil, false
	}
	return base, true
}

// AsCollection returns the Collection wrapper inside v, if v is a
// Collection or embeds one.
func AsCollection(v any) (*Collection, bool) {
	s, ok := v.(collectionShape)
	if !ok {
		return nil, false
	}
	base := s.collectionBase()
	if base == nil {
		return nil, false
	}
	return base, true
}
