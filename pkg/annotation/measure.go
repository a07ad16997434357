package annotation

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// CreateMeasure creates a measure over a source column.
type CreateMeasure struct {
	Base
	Field         string
	AggregateType olap.AggregationType
	FormatString  string
}

var createMeasureProperties = &propertySet{
	own: []Property{
		prop("field", "Field", StringValue, func(k *CreateMeasure) *string { return &k.Field }),
		prop("aggregateType", "Aggregation Type", AggregationValue, func(k *CreateMeasure) *olap.AggregationType { return &k.AggregateType }),
		prop("formatString", "Format String", StringValue, func(k *CreateMeasure) *string { return &k.FormatString }),
	},
	parent: baseProperties,
}

func (k *CreateMeasure) Type() Type { return TypeCreateMeasure }

func (k *CreateMeasure) Validate() error {
	if k.Field == "" {
		return fmt.Errorf("%w: measure requires a field", core.ErrValidation)
	}
	return nil
}

func (k *CreateMeasure) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	col, err := model.Column(k.Field)
	if err != nil {
		return false, err
	}
	agg := k.AggregateType
	if agg == "" {
		agg = olap.AggregationSum
	}
	_, err = model.AddMeasure(&olap.Measure{
		Name:         displayName(&k.Base, k.Field),
		Column:       col,
		Aggregation:  agg,
		FormatString: k.FormatString,
		Description:  k.Description,
		Hidden:       k.Hidden,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (k *CreateMeasure) Summary() string {
	agg := k.AggregateType
	if agg == "" {
		agg = olap.AggregationSum
	}
	return fmt.Sprintf("%s measure %q on %s", agg, displayName(&k.Base, k.Field), k.Field)
}

// MeasureRef identifies an existing measure by name.
type MeasureRef struct {
	Base
	Measure string
}

func (r *MeasureRef) measureRef() *MeasureRef { return r }

type measureTarget interface {
	Kind
	measureRef() *MeasureRef
}

var measureRefProperties = &propertySet{
	own: []Property{
		prop("measure", "Measure", StringValue, func(k measureTarget) *string { return &k.measureRef().Measure }),
	},
	parent: baseProperties,
}

func (r *MeasureRef) Validate() error {
	if r.Measure == "" {
		return fmt.Errorf("%w: a measure name is required", core.ErrValidation)
	}
	return nil
}

func (r *MeasureRef) find(model *olap.Model) (*olap.Measure, error) {
	ms := model.Measure(r.Measure)
	if ms == nil {
		return nil, fmt.Errorf("%w: measure %q", core.ErrNotFound, r.Measure)
	}
	return ms, nil
}

// UpdateMeasure renames a measure or changes its aggregation or format.
// Name holds the new name.
type UpdateMeasure struct {
	MeasureRef
	AggregateType olap.AggregationType
	FormatString  string
}

var updateMeasureProperties = &propertySet{
	own: []Property{
		prop("aggregateType", "Aggregation Type", AggregationValue, func(k *UpdateMeasure) *olap.AggregationType { return &k.AggregateType }),
		prop("formatString", "Format String", StringValue, func(k *UpdateMeasure) *string { return &k.FormatString }),
	},
	parent: measureRefProperties,
}

func (k *UpdateMeasure) Type() Type { return TypeUpdateMeasure }

func (k *UpdateMeasure) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	ms, err := k.find(model)
	if err != nil {
		return false, err
	}
	changed := false
	if k.Name != "" && k.Name != ms.Name {
		if model.HasMeasure(k.Name) {
			return false, fmt.Errorf("%w: measure %q already exists", core.ErrDuplicateName, k.Name)
		}
		ms.Name = k.Name
		changed = true
	}
	if k.AggregateType != "" && k.AggregateType != ms.Aggregation {
		ms.Aggregation = k.AggregateType
		changed = true
	}
	if k.FormatString != "" && k.FormatString != ms.FormatString {
		ms.FormatString = k.FormatString
		changed = true
	}
	if k.Description != "" && k.Description != ms.Description {
		ms.Description = k.Description
		changed = true
	}
	return changed, nil
}

func (k *UpdateMeasure) Summary() string {
	var parts []string
	if k.Name != "" {
		parts = append(parts, fmt.Sprintf("rename to %q", k.Name))
	}
	if k.AggregateType != "" {
		parts = append(parts, fmt.Sprintf("aggregate by %s", k.AggregateType))
	}
	if k.FormatString != "" {
		parts = append(parts, fmt.Sprintf("format as %q", k.FormatString))
	}
	return fmt.Sprintf("update measure %q: %s", k.Measure, strings.Join(parts, ", "))
}

// RemoveMeasure deletes a measure.
type RemoveMeasure struct {
	MeasureRef
}

var removeMeasureProperties = &propertySet{parent: measureRefProperties}

func (k *RemoveMeasure) Type() Type { return TypeRemoveMeasure }

func (k *RemoveMeasure) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	if err := model.RemoveMeasure(k.Measure); err != nil {
		return false, err
	}
	return true, nil
}

func (k *RemoveMeasure) Summary() string {
	return fmt.Sprintf("remove measure %q", k.Measure)
}

// ShowHideMeasure sets the visibility of a measure from Hidden.
type ShowHideMeasure struct {
	MeasureRef
}

var showHideMeasureProperties = &propertySet{parent: measureRefProperties}

func (k *ShowHideMeasure) Type() Type { return TypeShowHideMeasure }

func (k *ShowHideMeasure) Apply(_ context.Context, model *olap.Model, _ core.DocumentStore) (bool, error) {
	ms, err := k.find(model)
	if err != nil {
		return false, err
	}
	if ms.Hidden == k.Hidden {
		return false, nil
	}
	ms.Hidden = k.Hidden
	return true, nil
}

func (k *ShowHideMeasure) Summary() string {
	if k.Hidden {
		return fmt.Sprintf("hide measure %q", k.Measure)
	}
	return fmt.Sprintf("show measure %q", k.Measure)
}
