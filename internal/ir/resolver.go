package ir

import (
	"github.com/mark3labs/swagger2ts/internal/naming"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

// maxDepth bounds every recursive walk over schema trees.
const maxDepth = 64

// Resolver maps schema nodes onto type expressions.
//
// With a registry, references resolve to the registered model name and
// references to unknown schemas degrade to Dynamic. Without one, the
// reference target is normalized directly.
type Resolver struct {
	registry *Registry
}

// NewResolver returns a resolver backed by reg, which may be nil.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{registry: reg}
}

// Resolve returns the type of s. References are followed only when
// allowRef is set.
func (r *Resolver) Resolve(s *spec.Schema, allowRef bool) TypeExpr {
	return r.resolve(s, allowRef, 0)
}

func (r *Resolver) resolve(s *spec.Schema, allowRef bool, depth int) TypeExpr {
	if depth > maxDepth {
		return DynamicType()
	}
	switch s.Kind() {
	case spec.SchemaRef:
		if !allowRef {
			return DynamicType()
		}
		return r.reference(s.Ref)
	case spec.SchemaPrimitive:
		switch s.Type {
		case "string":
			return PrimitiveType(String)
		case "boolean":
			return PrimitiveType(Boolean)
		default:
			return PrimitiveType(Number)
		}
	case spec.SchemaArray:
		if s.Items == nil {
			return ArrayOf(DynamicType())
		}
		return ArrayOf(r.resolve(s.Items, allowRef, depth+1))
	case spec.SchemaObject:
		return MapType()
	default:
		return DynamicType()
	}
}

func (r *Resolver) reference(ref string) TypeExpr {
	target := naming.RefName(ref)
	if r.registry == nil {
		return RefType(naming.ModelName(target))
	}
	if name, ok := r.registry.Lookup(target); ok {
		return RefType(name)
	}
	return DynamicType()
}
