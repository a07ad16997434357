package annotation

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// CreateCalculatedMember adds a member defined by a formula. An empty
// Dimension places the member among the measures.
type CreateCalculatedMember struct {
	Base
	Formula            string
	Dimension          string
	FormatString       string
	CalculateSubtotals bool
}

var createCalculatedMemberProperties = &propertySet{
	own: []Property{
		prop("formula", "Formula", StringValue, func(k *CreateCalculatedMember) *string { return &k.Formula }),
		prop("dimension", "Dimension", StringValue, func(k *CreateCalculatedMember) *string { return &k.Dimension }),
		prop("formatString", "Format String", StringValue, func(k *CreateCalculatedMember) *string { return &k.FormatString }),
		prop("calculateSubtotals", "Calculate Subtotals", BoolValue, func(k *CreateCalculatedMember) *bool { return &k.CalculateSubtotals }),
	},
	parent: baseProperties,
}

func (k *CreateCalculatedMember) Type() Type { return TypeCreateCalculatedMember }

func (k *CreateCalculatedMember) Validate() error {
	if k.Name == "" {
		return fmt.Errorf("%w: calculated member requires a name", core.ErrValidation)
	}
	if k.Formula == "" {
		return fmt.Errorf("%w: calculated member %q requires a formula", core.ErrValidation, k.Name)
	}
	return nil
}

func (k *CreateCalculatedMember) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	if k.Dimension != "" && model.Dimension(k.Dimension) == nil {
		return false, fmt.Errorf("%w: dimension %q", core.ErrNotFound, k.Dimension)
	}
	_, err := model.AddCalculatedMember(&olap.CalculatedMember{
		Name:               k.Name,
		Dimension:          k.Dimension,
		Formula:            k.Formula,
		FormatString:       k.FormatString,
		Hidden:             k.Hidden,
		CalculateSubtotals: k.CalculateSubtotals,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (k *CreateCalculatedMember) Summary() string {
	return fmt.Sprintf("calculated member %q = %s", k.Name, k.Formula)
}
