package annotation

import "github.com/leapstack-labs/leapmodel/pkg/core"

// IsApplicable reports whether an annotation of type t may be added to g in
// its current state, for a column of the given type. A nil group behaves as
// an empty ordinary group.
//
// A shared-dimension group takes at most one dimension key and no measures or
// links. Attributes fit anywhere. The remaining kinds edit a model directly
// and never belong in a group.
func (t Type) IsApplicable(g *Group, _ *Annotation, _ core.DataType) bool {
	switch t {
	case TypeCreateDimensionKey:
		return g.IsSharedDimension() && !g.Contains(TypeCreateDimensionKey)
	case TypeCreateMeasure, TypeLinkDimension:
		return !g.IsSharedDimension()
	case TypeCreateAttribute:
		return true
	default:
		return false
	}
}

// IsApplicable reports whether a may be added to g for a column of the given type.
func IsApplicable(g *Group, a *Annotation, valueType core.DataType) bool {
	if a == nil {
		return false
	}
	return a.Type().IsApplicable(g, a, valueType)
}
