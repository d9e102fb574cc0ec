package postproc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/suite"
)

// tagLink is the no-op-ish processor used throughout the wrapper and
// registry tests: it appends a link so applications are observable.
func tagLink(rel string) func(*Resource) *Resource {
	return func(r *Resource) *Resource {
		r.AddLink(rel, "/"+rel)
		return r
	}
}

func wrapEntry(e Entry) wrapper {
	return (&Registry{}).wrap(e)
}

type DefaultWrapperSuite struct {
	suite.Suite
}

func TestDefaultWrapperSuite(t *testing.T) {
	suite.Run(t, new(DefaultWrapperSuite))
}

func (s *DefaultWrapperSuite) TestMatchesByAssignability() {
	w := wrapEntry(ForFunc[item](func(v item) item { return v }))

	s.Assert().True(w.supports(TypeFor[widget](), widget{ID: "1"}))
	s.Assert().True(w.supports(TypeFor[gadget](), gadget{ID: "2"}))
	s.Assert().False(w.supports(TypeFor[string](), "nope"))
}

func (s *DefaultWrapperSuite) TestAnyTargetMatchesEverything() {
	w := wrapEntry(ForFunc[any](func(v any) any { return v }))

	s.Assert().True(w.supports(TypeFor[widget](), widget{}))
	s.Assert().True(w.supports(TypeFor[*Collection](), NewCollection(nil)))
}

func (s *DefaultWrapperSuite) TestNoContentInspection() {
	// Default wrappers never peek: an empty collection still matches a
	// processor declared against the general collection interface.
	w := wrapEntry(ForFunc[any](func(v any) any { return v }))

	s.Assert().True(w.supports(TypeFor[*Collection](), NewCollection([]any{})))
}

type ResourceWrapperSuite struct {
	suite.Suite
}

func TestResourceWrapperSuite(t *testing.T) {
	suite.Run(t, new(ResourceWrapperSuite))
}

func (s *ResourceWrapperSuite) TestMatchesContentType() {
	w := wrapEntry(ForResourceFunc[widget](tagLink("self")))

	r := NewResource(widget{ID: "1"})
	s.Assert().True(w.supports(ResourceOf(TypeFor[widget]()), r))
	s.Assert().True(w.supports(TypeFor[*Resource](), r))
}

func (s *ResourceWrapperSuite) TestRejectsSiblingContent() {
	w := wrapEntry(ForResourceFunc[widget](tagLink("self")))

	r := NewResource(gadget{ID: "1"})
	s.Assert().False(w.supports(TypeFor[*Resource](), r))
}

func (s *ResourceWrapperSuite) TestInterfaceContentTarget() {
	w := wrapEntry(ForResourceFunc[item](tagLink("self")))

	s.Assert().True(w.supports(TypeFor[*Resource](), NewResource(widget{ID: "1"})))
	s.Assert().True(w.supports(TypeFor[*Resource](), NewResource(gadget{ID: "2"})))
}

func (s *ResourceWrapperSuite) TestNilContentFailsClosed() {
	w := wrapEntry(ForResourceFunc[widget](tagLink("self")))

	s.Assert().False(w.supports(TypeFor[*Resource](), NewResource(nil)))
}

func (s *ResourceWrapperSuite) TestNilValueFailsClosed() {
	w := wrapEntry(ForResourceFunc[widget](tagLink("self")))

	s.Assert().False(w.supports(TypeFor[*Resource](), nil))
	s.Assert().False(w.supports(TypeFor[*Resource](), (*Resource)(nil)))
}

func (s *ResourceWrapperSuite) TestRequiresResourceShapedType() {
	w := wrapEntry(ForResourceFunc[widget](tagLink("self")))

	// Even with a matching value, a non-resource computed type is out.
	s.Assert().False(w.supports(TypeFor[widget](), NewResource(widget{ID: "1"})))
}

func (s *ResourceWrapperSuite) TestCustomShapeTarget() {
	w := wrapEntry(ForFunc[*widgetResource](func(v *widgetResource) *widgetResource {
		v.AddLink("self", "/widgets/"+v.Content.(widget).ID)
		return v
	}, WithTarget(widgetResourceType())))

	wr := &widgetResource{Resource: Resource{Content: widget{ID: "1"}}}
	s.Assert().True(w.supports(TypeFor[*widgetResource](), wr))

	// Same shape, wrong content.
	bad := &widgetResource{Resource: Resource{Content: gadget{ID: "2"}}}
	s.Assert().False(w.supports(TypeFor[*widgetResource](), bad))
}

type CollectionWrapperSuite struct {
	suite.Suite
}

func TestCollectionWrapperSuite(t *testing.T) {
	suite.Run(t, new(CollectionWrapperSuite))
}

func (s *CollectionWrapperSuite) TestMatchesFirstElementContent() {
	w := wrapEntry(ForCollectionFunc[widget](func(c *Collection) *Collection { return c }))

	c := NewCollection([]any{NewResource(widget{ID: "1"}), NewResource(widget{ID: "2"})})
	s.Assert().True(w.supports(TypeFor[*Collection](), c))
}

func (s *CollectionWrapperSuite) TestEmptyCollectionFailsClosed() {
	w := wrapEntry(ForCollectionFunc[widget](func(c *Collection) *Collection { return c }))

	s.Assert().False(w.supports(TypeFor[*Collection](), NewCollection([]any{})))
	s.Assert().False(w.supports(CollectionOf(TypeFor[widget]()), NewCollection(nil)))
}

func (s *CollectionWrapperSuite) TestRejectsSiblingElements() {
	w := wrapEntry(ForCollectionFunc[widget](func(c *Collection) *Collection { return c }))

	c := NewCollection([]any{NewResource(gadget{ID: "1"})})
	s.Assert().False(w.supports(TypeFor[*Collection](), c))
}

func (s *CollectionWrapperSuite) TestResourceElementTarget() {
	// Declaring the element as a resource type also works; the scalar
	// content rule recurses through it.
	w := wrapEntry(ForCollectionFunc[*Resource](func(c *Collection) *Collection { return c },
		WithTarget(CollectionOf(ResourceOf(TypeFor[widget]())))))

	good := NewCollection([]any{NewResource(widget{ID: "1"})})
	s.Assert().True(w.supports(TypeFor[*Collection](), good))

	bad := NewCollection([]any{NewResource(gadget{ID: "1"})})
	s.Assert().False(w.supports(TypeFor[*Collection](), bad))
}

func (s *CollectionWrapperSuite) TestEmbeddedElement() {
	w := wrapEntry(ForCollectionFunc[widget](func(c *Collection) *Collection { return c }))

	c := NewCollection([]any{&Embedded{Rel: "widgets", Target: reflect.TypeOf((*(widget))(nil)).Elem()}})
	s.Assert().True(w.supports(TypeFor[*Collection](), c))

	other := NewCollection([]any{&Embedded{Rel: "gadgets", Target: reflect.TypeOf((*(gadget))(nil)).Elem()}})
	s.Assert().False(w.supports(TypeFor[*Collection](), other))

	unknown := NewCollection([]any{&Embedded{Rel: "widgets"}})
	s.Assert().False(w.supports(TypeFor[*Collection](), unknown))
}

func (s *CollectionWrapperSuite) TestBareElementFailsClosed() {
	w := wrapEntry(ForCollectionFunc[widget](func(c *Collection) *Collection { return c }))

	c := NewCollection([]any{widget{ID: "1"}})
	s.Assert().False(w.supports(TypeFor[*Collection](), c))
}

func (s *CollectionWrapperSuite) TestRejectsNonCollectionType() {
	w := wrapEntry(ForCollectionFunc[widget](func(c *Collection) *Collection { return c }))

	s.Assert().False(w.supports(TypeFor[*Resource](), NewResource(widget{})))
	s.Assert().False(w.supports(TypeFor[*Collection](), "not a collection"))
}
