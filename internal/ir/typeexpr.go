package ir

// TypeKind is the variant tag of a TypeExpr.
type TypeKind uint8

const (
	// Dynamic is the untyped value. Consumers pass it through unchanged.
	Dynamic TypeKind = iota
	Primitive
	Reference
	Array
	// Map is an open string-keyed map of dynamic values.
	Map
)

// PrimitiveKind enumerates the scalar types.
type PrimitiveKind uint8

const (
	NoPrimitive PrimitiveKind = iota
	String
	Number
	Boolean
)

func (p PrimitiveKind) String() string {
	switch p {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "invalid"
	}
}

// TypeExpr is a resolved type. Only the fields of its Kind are set.
type TypeExpr struct {
	Kind TypeKind
	Prim PrimitiveKind
	Name string
	Elem *TypeExpr
}

func DynamicType() TypeExpr { return TypeExpr{Kind: Dynamic} }
func PrimitiveType(p PrimitiveKind) TypeExpr { return TypeExpr{Kind: Primitive, Prim: p} }
func RefType(name string) TypeExpr { return TypeExpr{Kind: Reference, Name: name} }
func MapType() TypeExpr { return TypeExpr{Kind: Map} }

// ArrayOf wraps elem as an array element type.
func ArrayOf(elem TypeExpr) TypeExpr {
	e := elem
	return TypeExpr{Kind: Array, Elem: &e}
}

// IsDynamic reports whether t is the untyped variant.
func (t TypeExpr) IsDynamic() bool { return t.Kind == Dynamic }

// Element returns the element type of an array, or t itself.
func (t TypeExpr) Element() TypeExpr {
	if t.Kind == Array && t.Elem != nil {
		return *t.Elem
	}
	return t
}

// BaseName unwraps every array level and returns the reference name, if any.
func (t TypeExpr) BaseName() (string, bool) {
	cur := t
	for cur.Kind == Array && cur.Elem != nil {
		cur = *cur.Elem
	}
	if cur.Kind == Reference {
		return cur.Name, true
	}
	return "", false
}

// ModelRef reports a direct reference or an array of references, the two
// shapes that cross model boundaries.
func (t TypeExpr) ModelRef() (name string, array bool, ok bool) {
	switch t.Kind {
	case Reference:
		return t.Name, false, true
	case Array:
		if t.Elem != nil && t.Elem.Kind == Reference {
			return t.Elem.Name, true, true
		}
	}
	return "", false, false
}

// Equal compares two type expressions structurally.
func (t TypeExpr) Equal(o TypeExpr) bool {
	if t.Kind != o.Kind || t.Prim != o.Prim || t.Name != o.Name {
		return false
	}
	if t.Kind != Array {
		return true
	}
	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}
	return t.Elem.Equal(*o.Elem)
}

// String renders a language-neutral notation used in logs and tables.
func (t TypeExpr) String() string {
	switch t.Kind {
	case Primitive:
		return t.Prim.String()
	case Reference:
		return t.Name
	case Array:
		if t.Elem == nil {
			return "dynamic[]"
		}
		return t.Elem.String() + "[]"
	case Map:
		return "map<string, dynamic>"
	default:
		return "dynamic"
	}
}
