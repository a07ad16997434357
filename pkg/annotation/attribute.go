package annotation

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// CreateAttribute places a source column as a level of a dimension hierarchy.
// The dimension and hierarchy are created when missing. Without Hierarchy
// the hierarchy takes the dimension's name.
type CreateAttribute struct {
	Base
	Field           string
	Dimension       string
	Hierarchy       string
	ParentAttribute string
	Unique          bool
	GeoType         olap.GeoType
	OrdinalField    string
}

var createAttributeProperties = &propertySet{
	own: []Property{
		prop("field", "Field", StringValue, func(k *CreateAttribute) *string { return &k.Field }),
		prop("dimension", "Dimension", StringValue, func(k *CreateAttribute) *string { return &k.Dimension }),
		prop("hierarchy", "Hierarchy", StringValue, func(k *CreateAttribute) *string { return &k.Hierarchy }),
		prop("parentAttribute", "Parent Attribute", StringValue, func(k *CreateAttribute) *string { return &k.ParentAttribute }),
		prop("unique", "Is Unique", BoolValue, func(k *CreateAttribute) *bool { return &k.Unique }),
		prop("geoType", "Geo Type", GeoTypeValue, func(k *CreateAttribute) *olap.GeoType { return &k.GeoType }),
		prop("ordinalField", "Ordinal Field", StringValue, func(k *CreateAttribute) *string { return &k.OrdinalField }),
	},
	parent: baseProperties,
}

func (k *CreateAttribute) Type() Type { return TypeCreateAttribute }

func (k *CreateAttribute) Validate() error {
	if k.Field == "" {
		return fmt.Errorf("%w: attribute requires a field", core.ErrValidation)
	}
	if k.Dimension == "" && k.Hierarchy == "" {
		return fmt.Errorf("%w: attribute %q requires a dimension or hierarchy", core.ErrValidation, displayName(&k.Base, k.Field))
	}
	return nil
}

// dimensionName is the dimension the level is placed in. Without one, the
// hierarchy name is used.
func (k *CreateAttribute) dimensionName() string {
	if k.Dimension != "" {
		return k.Dimension
	}
	return k.Hierarchy
}

func (k *CreateAttribute) hierarchyName() string {
	if k.Hierarchy != "" {
		return k.Hierarchy
	}
	return k.Dimension
}

func (k *CreateAttribute) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	col, err := model.Column(k.Field)
	if err != nil {
		return false, err
	}
	level := olap.NewLevel(displayName(&k.Base, k.Field), col)
	level.Description = k.Description
	level.Unique = k.Unique || k.UniqueMembers
	level.Hidden = k.Hidden
	level.GeoType = k.GeoType
	if k.OrdinalField != "" {
		ord, err := model.Column(k.OrdinalField)
		if err != nil {
			return false, err
		}
		level.Ordinal = ord
	}

	dim := model.Dimension(k.dimensionName())
	if dim == nil {
		if dim, err = model.AddDimension(k.dimensionName()); err != nil {
			return false, err
		}
	}
	if k.GeoType != "" {
		dim.Geo = true
	}
	h := dim.AddHierarchy(k.hierarchyName())

	if k.ParentAttribute != "" {
		parent := h.Level(k.ParentAttribute)
		if parent == nil {
			return false, fmt.Errorf("%w: parent attribute %q in hierarchy %q", core.ErrNotFound, k.ParentAttribute, h.Name)
		}
		h.InsertLevelAfter(parent, level)
	} else {
		h.AddLevel(level)
	}
	RemoveDuplicateLevel(model, level)
	return true, nil
}

func (k *CreateAttribute) Summary() string {
	s := fmt.Sprintf("attribute %q on %s in %s.%s", displayName(&k.Base, k.Field), k.Field, k.dimensionName(), k.hierarchyName())
	if k.ParentAttribute != "" {
		s += fmt.Sprintf(" under %q", k.ParentAttribute)
	}
	if k.GeoType != "" {
		s += fmt.Sprintf(" (%s)", k.GeoType)
	}
	return s
}

// EqualsLogically reports whether two attributes describe the same level:
// names, dimensions and hierarchies are compared case-insensitively. A missing
// hierarchy is taken to be the dimension name. A missing dimension is not
// inferred from the hierarchy.
func (k *CreateAttribute) EqualsLogically(other Kind) bool {
	o, ok := other.(*CreateAttribute)
	if !ok || o == nil {
		return false
	}
	return strings.EqualFold(displayName(&k.Base, k.Field), displayName(&o.Base, o.Field)) &&
		strings.EqualFold(k.Dimension, o.Dimension) &&
		strings.EqualFold(k.hierarchyName(), o.hierarchyName())
}

// RemoveDuplicateLevel removes levels sharing the name of l from l's
// hierarchy, keeping l itself.
func RemoveDuplicateLevel(model *olap.Model, l *olap.Level) {
	h := l.Hierarchy()
	if h == nil {
		return
	}
	for _, other := range append([]*olap.Level(nil), h.Levels()...) {
		if other != l && strings.EqualFold(other.Name, l.Name) {
			model.RemoveLevel(other)
		}
	}
}

// AttributeRef identifies an existing level. Empty Dimension or Hierarchy
// match any.
type AttributeRef struct {
	Base
	Attribute string
	Dimension string
	Hierarchy string
}

func (r *AttributeRef) attributeRef() *AttributeRef { return r }

type attributeTarget interface {
	Kind
	attributeRef() *AttributeRef
}

var attributeRefProperties = &propertySet{
	own: []Property{
		prop("attribute", "Attribute", StringValue, func(k attributeTarget) *string { return &k.attributeRef().Attribute }),
		prop("dimension", "Dimension", StringValue, func(k attributeTarget) *string { return &k.attributeRef().Dimension }),
		prop("hierarchy", "Hierarchy", StringValue, func(k attributeTarget) *string { return &k.attributeRef().Hierarchy }),
	},
	parent: baseProperties,
}

func (r *AttributeRef) Validate() error {
	if r.Attribute == "" {
		return fmt.Errorf("%w: an attribute name is required", core.ErrValidation)
	}
	return nil
}

func (r *AttributeRef) find(model *olap.Model) (*olap.Level, error) {
	l := model.FindLevel(r.Dimension, r.Hierarchy, r.Attribute)
	if l == nil {
		return nil, fmt.Errorf("%w: attribute %q", core.ErrNotFound, r.path())
	}
	return l, nil
}

func (r *AttributeRef) path() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Dimension, r.Hierarchy, r.Attribute} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// UpdateAttribute renames a level or changes its description.
// Name holds the new name.
type UpdateAttribute struct {
	AttributeRef
}

var updateAttributeProperties = &propertySet{parent: attributeRefProperties}

func (k *UpdateAttribute) Type() Type { return TypeUpdateAttribute }

func (k *UpdateAttribute) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	l, err := k.find(model)
	if err != nil {
		return false, err
	}
	changed := false
	if k.Name != "" && k.Name != l.Name {
		if other := l.Hierarchy().Level(k.Name); other != nil && other != l {
			return false, fmt.Errorf("%w: attribute %q already exists", core.ErrDuplicateName, k.Name)
		}
		l.Name = k.Name
		changed = true
	}
	if k.Description != "" && k.Description != l.Description {
		l.Description = k.Description
		changed = true
	}
	return changed, nil
}

func (k *UpdateAttribute) Summary() string {
	return fmt.Sprintf("update attribute %q: rename to %q", k.path(), k.Name)
}

// RemoveAttribute deletes a level.
type RemoveAttribute struct {
	AttributeRef
}

var removeAttributeProperties = &propertySet{parent: attributeRefProperties}

func (k *RemoveAttribute) Type() Type { return TypeRemoveAttribute }

func (k *RemoveAttribute) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	l, err := k.find(model)
	if err != nil {
		return false, err
	}
	return model.RemoveLevel(l), nil
}

func (k *RemoveAttribute) Summary() string {
	return fmt.Sprintf("remove attribute %q", k.path())
}

// ShowHideAttribute sets the visibility of a level from Hidden.
type ShowHideAttribute struct {
	AttributeRef
}

var showHideAttributeProperties = &propertySet{parent: attributeRefProperties}

func (k *ShowHideAttribute) Type() Type { return TypeShowHideAttribute }

func (k *ShowHideAttribute) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	l, err := k.find(model)
	if err != nil {
		return false, err
	}
	if l.Hidden == k.Hidden {
		return false, nil
	}
	l.Hidden = k.Hidden
	return true, nil
}

func (k *ShowHideAttribute) Summary() string {
	if k.Hidden {
		return fmt.Sprintf("hide attribute %q", k.path())
	}
	return fmt.Sprintf("show attribute %q", k.path())
}
