package annotation

import (
	"context"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// Kind is one annotation variant. The set of kinds is closed: every
// implementation lives in this package.
type Kind interface {
	// Type returns the discriminator of the kind.
	Type() Type

	// Apply transforms the model. It reports whether the model changed.
	// The store is used to resolve references to other persisted documents
	// and may be nil.
	Apply(ctx context.Context, model *olap.Model, store core.DocumentStore) (bool, error)

	// Validate checks that required properties are present.
	Validate() error

	// Summary returns a one-line description for display.
	Summary() string

	// Common returns the properties shared by every kind.
	Common() *Base
}

// Base holds the properties every kind declares.
type Base struct {
	Name          string
	LocalizedName string
	Description   string
	UniqueMembers bool
	Hidden        bool
}

// Common returns b.
func (b *Base) Common() *Base {
	return b
}

var baseProperties = &propertySet{
	own: []Property{
		prop("name", "Display Name", StringValue, func(k Kind) *string { return &k.Common().Name }),
		prop("localizedName", "Localized Name", StringValue, func(k Kind) *string { return &k.Common().LocalizedName }),
		prop("description", "Description", StringValue, func(k Kind) *string { return &k.Common().Description }),
		prop("uniqueMembers", "Unique Members", BoolValue, func(k Kind) *bool { return &k.Common().UniqueMembers }),
		prop("hidden", "Hidden", BoolValue, func(k Kind) *bool { return &k.Common().Hidden }),
	},
}

type kindInfo struct {
	new        func() Kind
	properties []Property
}

var kinds map[Type]kindInfo

func init() {
	kinds = map[Type]kindInfo{
		TypeCreateMeasure:          {func() Kind { return &CreateMeasure{} }, createMeasureProperties.all()},
		TypeCreateAttribute:        {func() Kind { return &CreateAttribute{} }, createAttributeProperties.all()},
		TypeCreateDimensionKey:     {func() Kind { return &CreateDimensionKey{} }, createDimensionKeyProperties.all()},
		TypeLinkDimension:          {func() Kind { return &LinkDimension{} }, linkDimensionProperties.all()},
		TypeCreateCalculatedMember: {func() Kind { return &CreateCalculatedMember{} }, createCalculatedMemberProperties.all()},
		TypeUpdateMeasure:          {func() Kind { return &UpdateMeasure{} }, updateMeasureProperties.all()},
		TypeUpdateAttribute:        {func() Kind { return &UpdateAttribute{} }, updateAttributeProperties.all()},
		TypeRemoveMeasure:          {func() Kind { return &RemoveMeasure{} }, removeMeasureProperties.all()},
		TypeRemoveAttribute:        {func() Kind { return &RemoveAttribute{} }, removeAttributeProperties.all()},
		TypeShowHideMeasure:        {func() Kind { return &ShowHideMeasure{} }, showHideMeasureProperties.all()},
		TypeShowHideAttribute:      {func() Kind { return &ShowHideAttribute{} }, showHideAttributeProperties.all()},
	}
}

// displayName falls back to the source field when no name is set.
func displayName(b *Base, field string) string {
	if b.Name != "" {
		return b.Name
	}
	return field
}
