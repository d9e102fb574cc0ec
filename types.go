package postproc

import "reflect"

// Type describes the shape a processor targets or a value carries: a raw
// Go type plus an optional single generic parameter. A descriptor may
// additionally declare a supertype, forming a single-parent chain that
// generic-parameter lookups walk.
//
// Descriptors are supplied once at registration and never re-derived.
// The zero Type is the universal "any" marker: it has no raw type,
// matches every target, and matches as a target against everything.
type Type struct {
	raw   reflect.Type
	param *Type
	super *Type
}

// AnyType is the universal type marker. Unresolvable type information
// degrades to AnyType rather than failing.
var AnyType = Type{}

// maxSuperDepth caps supertype-chain walks so a pathological generated
// chain degrades to "no match" instead of looping.
const maxSuperDepth = 64

var (
	resourceRaw        = reflect.TypeOf((*(*Resource))(nil)).Elem()
	collectionRaw      = reflect.TypeOf((*(*Collection))(nil)).Elem()
	envelopeRaw        = reflect.TypeOf((*(Envelope))(nil)).Elem()
	resourceShapeRaw   = reflect.TypeOf((*(resourceShape))(nil)).Elem()
	collectionShapeRaw = reflect.TypeOf((*(collectionShape))(nil)).Elem()
)

// TypeFor returns the descriptor for the static type T.
func TypeFor[T any]() Type {
	return Type{raw: reflect.TypeOf((*(T))(nil)).Elem()}
}

// TypeOf returns the descriptor for v's concrete runtime type.
// TypeOf(nil) is AnyType.
func TypeOf(v any) Type {
	if v == nil {
		return AnyType
	}
	return Type{raw: reflect.TypeOf(v)}
}

// ResourceOf returns the descriptor for a Resource holding content of
// the given type.
func ResourceOf(content Type) Type {
	return Type{raw: resourceRaw, param: &content}
}

// CollectionOf returns the descriptor for a Collection whose elements
// hold content of the given type.
func CollectionOf(element Type) Type {
	return Type{raw: collectionRaw, param: &element}
}

// EntityOf returns the descriptor for an envelope wrapping a body of
// the given type. The dispatcher unboxes envelope-typed declarations to
// their parameter before matching.
func EntityOf(body Type) Type {
	return Type{raw: envelopeRaw, param: &body}
}

// Extends returns a copy of t declaring super as its supertype. The
// chain is consulted when a generic parameter bound at an ancestor is
// needed, e.g. for a custom resource type embedding Resource:
//
//	widgetResource := postproc.TypeFor[*WidgetResource]().
//	    Extends(postproc.ResourceOf(postproc.TypeFor[Widget]()))
func (t Type) Extends(super Type) Type {
	t.super = &super
	return t
}

// Raw returns t's raw reflect.Type, nil for the "any" marker.
func (t Type) Raw() reflect.Type { return t.raw }

// Param returns t's generic parameter, if one was declared.
func (t Type) Param() (Type, bool) {
	if t.param == nil {
		return AnyType, false
	}
	return *t.param, true
}

// IsAny reports whether t is the universal marker.
func (t Type) IsAny() bool { return t.raw == nil }

// String renders t for hooks and debug logging.
func (t Type) String() string {
	if t.raw == nil {
		return "any"
	}
	if t.param != nil {
		return t.raw.String() + "[" + t.param.String() + "]"
	}
	return t.raw.String()
}

// EffectiveType reconciles a static declaration with a live value: the
// value's concrete type wins when the two disagree on the raw type,
// otherwise the declaration (which may carry a generic parameter the
// runtime type cannot express) is kept.
func EffectiveType(declared Type, v any) Type {
	live := TypeOf(v)
	if declared.raw == live.raw {
		return declared
	}
	return live
}

// EffectiveContentType resolves the content type logically held by r:
// the declared content type when it matches the live content's concrete
// type, the live type otherwise.
func EffectiveContentType(r *Resource, declared Type) Type {
	want, _ := superParam(declared, resourceRaw)
	if r == nil {
		return want
	}
	return EffectiveType(want, r.Content)
}

// assignable reports whether a value of the candidate type can be
// handed to something expecting the target type. The check is always
// raw-of-target assignable-from raw-of-candidate: an "any" target
// accepts everything, an "any" candidate satisfies only an "any"
// target.
func assignable(target, candidate Type) bool {
	if target.raw == nil {
		return true
	}
	if candidate.raw == nil {
		return false
	}
	return candidate.raw.AssignableTo(target.raw)
}

// superParam walks t's declared supertype chain and returns the generic
// parameter bound at the first ancestor whose raw type equals
// ancestorRaw. Chains are acyclic by construction, but the walk is
// still depth-capped; exceeding the cap or running off the chain end is
// "no match", never an error.
func superParam(t Type, ancestorRaw reflect.Type) (Type, bool) {
	return superParamAt(t, ancestorRaw, 0)
}

func superParamAt(t Type, ancestorRaw reflect.Type, depth int) (Type, bool) {
	if depth >= maxSuperDepth || t.raw == nil {
		return AnyType, false
	}
	if t.raw == ancestorRaw {
		if t.param == nil {
			return AnyType, true
		}
		return *t.param, true
	}
	if t.super == nil {
		return AnyType, false
	}
	return superParamAt(*t.super, ancestorRaw, depth+1)
}

// isResourceType reports whether t names the resource shape or a type
// that keeps it, by embedding or by a declared supertype chain.
func isResourceType(t Type) bool { return hasShape(t, resourceShapeRaw, 0) }

// isCollectionType is the collection analogue of isResourceType.
func isCollectionType(t Type) bool { return hasShape(t, collectionShapeRaw, 0) }

func hasShape(t Type, shape reflect.Type, depth int) bool {
	if depth >= maxSuperDepth || t.raw == nil {
		return false
	}
	if t.raw.Implements(shape) {
		return true
	}
	if t.super == nil {
		return false
	}
	return hasShape(*t.super, shape, depth+1)
}

// isEnvelopeType reports whether t names an envelope kind.
func isEnvelopeType(t Type) bool {
	return t.raw != nil && t.raw.Implements(envelopeRaw)
}
