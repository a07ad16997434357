package annotation

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// Type discriminates annotation kinds. String values are the wire names.
type Type string

// Annotation types.
const (
	TypeCreateMeasure          Type = "CREATE_MEASURE"
	TypeCreateAttribute        Type = "CREATE_ATTRIBUTE"
	TypeCreateDimensionKey     Type = "CREATE_DIMENSION_KEY"
	TypeLinkDimension          Type = "LINK_DIMENSION"
	TypeCreateCalculatedMember Type = "CREATE_CALCULATED_MEMBER"
	TypeUpdateMeasure          Type = "UPDATE_MEASURE"
	TypeUpdateAttribute        Type = "UPDATE_ATTRIBUTE"
	TypeRemoveMeasure          Type = "REMOVE_MEASURE"
	TypeRemoveAttribute        Type = "REMOVE_ATTRIBUTE"
	TypeShowHideMeasure        Type = "SHOW_HIDE_MEASURE"
	TypeShowHideAttribute      Type = "SHOW_HIDE_ATTRIBUTE"
)

// Types lists every annotation type in declaration order.
var Types = []Type{
	TypeCreateMeasure,
	TypeCreateAttribute,
	TypeCreateDimensionKey,
	TypeLinkDimension,
	TypeCreateCalculatedMember,
	TypeUpdateMeasure,
	TypeUpdateAttribute,
	TypeRemoveMeasure,
	TypeRemoveAttribute,
	TypeShowHideMeasure,
	TypeShowHideAttribute,
}

var typeDescriptions = map[Type]string{
	TypeCreateMeasure:          "Create Measure",
	TypeCreateAttribute:        "Create Attribute",
	TypeCreateDimensionKey:     "Create Dimension Key",
	TypeLinkDimension:          "Link Dimension",
	TypeCreateCalculatedMember: "Create Calculated Member",
	TypeUpdateMeasure:          "Update Measure",
	TypeUpdateAttribute:        "Update Attribute",
	TypeRemoveMeasure:          "Remove Measure",
	TypeRemoveAttribute:        "Remove Attribute",
	TypeShowHideMeasure:        "Show or Hide Measure",
	TypeShowHideAttribute:      "Show or Hide Attribute",
}

// ParseType resolves a wire name. Unknown names are codec errors.
func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	if _, ok := typeDescriptions[t]; !ok {
		return "", fmt.Errorf("%w: unknown annotation type %q", core.ErrCodec, s)
	}
	return t, nil
}

// Description returns the human readable name of the type.
func (t Type) Description() string {
	return typeDescriptions[t]
}

func (t Type) String() string {
	return string(t)
}

// New returns a zero value of the kind this type discriminates, or nil for an
// unknown type.
func (t Type) New() Kind {
	info, ok := kinds[t]
	if !ok {
		return nil
	}
	return info.new()
}
