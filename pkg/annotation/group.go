package annotation

import (
	"fmt"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// Group is a named, ordered collection of annotations. A shared-dimension
// group defines a dimension reusable across models; its flavor is fixed at
// construction.
type Group struct {
	Name          string
	Description   string
	DataProviders []DataProvider

	annotations []*Annotation
	shared      bool
}

// DataProvider binds a group to a physical table of a stored connection.
type DataProvider struct {
	Name            string
	SchemaName      string
	TableName       string
	DatabaseMetaRef string
	ColumnMappings  []ColumnMapping
}

// ColumnMapping maps a logical column name to a physical column.
type ColumnMapping struct {
	Name           string
	ColumnName     string
	ColumnDataType core.DataType
}

// NewGroup creates an ordinary group.
func NewGroup(name string, annotations ...*Annotation) *Group {
	return &Group{Name: name, annotations: annotations}
}

// NewSharedDimensionGroup creates a shared-dimension group.
func NewSharedDimensionGroup(name string, annotations ...*Annotation) *Group {
	return &Group{Name: name, annotations: annotations, shared: true}
}

// IsSharedDimension reports whether the group defines a shared dimension.
func (g *Group) IsSharedDimension() bool {
	return g != nil && g.shared
}

// Annotations returns the annotations in order.
func (g *Group) Annotations() []*Annotation {
	return g.annotations
}

// Len returns the number of annotations.
func (g *Group) Len() int {
	return len(g.annotations)
}

// Add appends annotations without checking applicability.
func (g *Group) Add(annotations ...*Annotation) {
	g.annotations = append(g.annotations, annotations...)
}

// Append adds an annotation if it is applicable to the group's current
// contents for a column of the given type.
func (g *Group) Append(a *Annotation, valueType core.DataType) error {
	if !IsApplicable(g, a, valueType) {
		return fmt.Errorf("%w: %s is not applicable to group %q", core.ErrValidation, a.Type(), g.Name)
	}
	g.annotations = append(g.annotations, a)
	return nil
}

// Remove deletes the annotation with the given id. It reports whether it was present.
func (g *Group) Remove(id string) bool {
	for i, a := range g.annotations {
		if a.ID == id {
			g.annotations = append(g.annotations[:i], g.annotations[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether any annotation has the given type.
func (g *Group) Contains(t Type) bool {
	if g == nil {
		return false
	}
	for _, a := range g.annotations {
		if a.Type() == t {
			return true
		}
	}
	return false
}

// prefix returns a view of the group holding its first n annotations.
func (g *Group) prefix(n int) *Group {
	return &Group{Name: g.Name, shared: g.shared, annotations: g.annotations[:n:n]}
}

func (g *Group) markPersisted() {
	for _, a := range g.annotations {
		a.persisted = true
	}
}
