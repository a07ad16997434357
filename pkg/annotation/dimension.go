package annotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// CreateDimensionKey marks a column as the technical key of a shared dimension.
type CreateDimensionKey struct {
	Base
	Field     string
	Dimension string
}

var createDimensionKeyProperties = &propertySet{
	own: []Property{
		prop("field", "Field", StringValue, func(k *CreateDimensionKey) *string { return &k.Field }),
		prop("dimension", "Dimension", StringValue, func(k *CreateDimensionKey) *string { return &k.Dimension }),
	},
	parent: baseProperties,
}

func (k *CreateDimensionKey) Type() Type { return TypeCreateDimensionKey }

func (k *CreateDimensionKey) Validate() error {
	if k.Field == "" {
		return fmt.Errorf("%w: dimension key requires a field", core.ErrValidation)
	}
	if k.Dimension == "" {
		return fmt.Errorf("%w: dimension key %q requires a dimension", core.ErrValidation, k.Field)
	}
	return nil
}

func (k *CreateDimensionKey) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	col, err := model.Column(k.Field)
	if err != nil {
		return false, err
	}
	dim := model.Dimension(k.Dimension)
	if dim == nil {
		if dim, err = model.AddDimension(k.Dimension); err != nil {
			return false, err
		}
	}
	if dim.Key != nil && dim.Key != col {
		return false, fmt.Errorf("%w: dimension %q already has key %q", core.ErrDuplicateName, dim.Name, dim.Key.Name)
	}
	dim.Shared = true
	dim.Key = col
	return true, nil
}

func (k *CreateDimensionKey) Summary() string {
	return fmt.Sprintf("key of %q is %s", k.Dimension, k.Field)
}

// LinkDimension links a foreign-key column to a shared dimension group.
// Name is the name of the dimension usage and defaults to the group name.
// Hierarchy optionally selects one hierarchy of the shared dimension.
type LinkDimension struct {
	Base
	Field           string
	SharedDimension string
	Hierarchy       string
}

var linkDimensionProperties = &propertySet{
	own: []Property{
		prop("field", "Field", StringValue, func(k *LinkDimension) *string { return &k.Field }),
		prop("sharedDimension", "Shared Dimension", StringValue, func(k *LinkDimension) *string { return &k.SharedDimension }),
		prop("hierarchy", "Hierarchy", StringValue, func(k *LinkDimension) *string { return &k.Hierarchy }),
	},
	parent: baseProperties,
}

func (k *LinkDimension) Type() Type { return TypeLinkDimension }

func (k *LinkDimension) Validate() error {
	if k.Field == "" {
		return fmt.Errorf("%w: dimension link requires a field", core.ErrValidation)
	}
	if k.SharedDimension == "" {
		return fmt.Errorf("%w: dimension link %q requires a shared dimension", core.ErrValidation, k.Field)
	}
	return nil
}

// Apply records the link. When a store is given, the shared dimension group
// must exist in it.
func (k *LinkDimension) Apply(ctx context.Context, model *olap.Model, store core.DocumentStore) (bool, error) {
	col, err := model.Column(k.Field)
	if err != nil {
		return false, err
	}
	if store != nil {
		if _, err := store.Get(ctx, core.NamespaceSharedDimensions, k.SharedDimension); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return false, fmt.Errorf("%w: shared dimension %q", core.ErrNotFound, k.SharedDimension)
			}
			return false, fmt.Errorf("failed to read shared dimension %q: %w", k.SharedDimension, err)
		}
	}
	u, err := model.LinkSharedDimension(k.Name, k.SharedDimension, col)
	if err != nil {
		return false, err
	}
	u.Hierarchy = k.Hierarchy
	return true, nil
}

func (k *LinkDimension) Summary() string {
	return fmt.Sprintf("link %s to shared dimension %q", k.Field, k.SharedDimension)
}
