package annotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

func TestCreateMeasure_Apply(t *testing.T) {
	ctx := context.Background()
	model := salesModel()

	kinds := []*CreateMeasure{
		{Field: "amount", AggregateType: olap.AggregationSum, FormatString: "#,###.00"},
		{Base: Base{Name: "Units", Description: "units sold"}, Field: "quantity"},
		{Base: Base{Name: "Cost"}, Field: "COST", AggregateType: olap.AggregationAverage},
	}
	for _, k := range kinds {
		changed, err := New(k).Apply(ctx, model, nil)
		require.NoError(t, err)
		assert.True(t, changed)
	}

	require.Len(t, model.Measures(), 3)
	assert.Equal(t, "amount", model.Measures()[0].Name, "name falls back to the field")
	assert.Equal(t, "#,###.00", model.Measures()[0].FormatString)
	assert.Equal(t, olap.AggregationSum, model.Measures()[1].Aggregation, "aggregation defaults to SUM")
	assert.Equal(t, "units sold", model.Measures()[1].Description)
	assert.Equal(t, "cost", model.Measures()[2].Column.Name)

	cube := model.Cube()
	require.Len(t, cube.Measures, 3)
	assert.Equal(t, []string{"amount", "Units", "Cost"}, []string{cube.Measures[0].Name, cube.Measures[1].Name, cube.Measures[2].Name})
	assert.Empty(t, cube.DimensionUsages)
}

func TestCreateMeasure_Errors(t *testing.T) {
	ctx := context.Background()
	model := salesModel()

	_, err := (&CreateMeasure{Field: "missing"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrFieldNotFound)

	_, err = (&CreateMeasure{Field: "amount"}).Apply(ctx, model, nil)
	require.NoError(t, err)
	_, err = (&CreateMeasure{Base: Base{Name: "amount"}, Field: "cost"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateName)
	assert.Len(t, model.Measures(), 1)

	_, err = (&CreateMeasure{Base: Base{Name: "AMOUNT"}, Field: "cost"}).Apply(ctx, model, nil)
	require.NoError(t, err, "names differing in case are distinct")
	assert.Len(t, model.Measures(), 2)
}

func TestUpdateMeasure_Apply(t *testing.T) {
	ctx := context.Background()
	model := salesModel()
	_, err := (&CreateMeasure{Field: "amount"}).Apply(ctx, model, nil)
	require.NoError(t, err)
	_, err = (&CreateMeasure{Field: "cost"}).Apply(ctx, model, nil)
	require.NoError(t, err)

	k := &UpdateMeasure{
		MeasureRef:    MeasureRef{Base: Base{Name: "Revenue"}, Measure: "amount"},
		AggregateType: olap.AggregationMaximum,
		FormatString:  "$#",
	}
	changed, err := New(k).Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	ms := model.Measure("Revenue")
	require.NotNil(t, ms)
	assert.Equal(t, olap.AggregationMaximum, ms.Aggregation)
	assert.Equal(t, "$#", ms.FormatString)

	changed, err = k.Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrNotFound, "amount no longer exists")
	assert.False(t, changed)

	clash := &UpdateMeasure{MeasureRef: MeasureRef{Base: Base{Name: "cost"}, Measure: "Revenue"}}
	_, err = clash.Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateName)
}

func TestRemoveMeasure_Apply(t *testing.T) {
	ctx := context.Background()
	model := salesModel()
	_, err := (&CreateMeasure{Field: "amount"}).Apply(ctx, model, nil)
	require.NoError(t, err)

	rm := &RemoveMeasure{MeasureRef: MeasureRef{Measure: "amount"}}
	changed, err := New(rm).Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, model.Measures())

	_, err = rm.Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = New(&RemoveMeasure{}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestShowHideMeasure_Apply(t *testing.T) {
	ctx := context.Background()
	model := salesModel()
	_, err := (&CreateMeasure{Field: "amount"}).Apply(ctx, model, nil)
	require.NoError(t, err)

	hide := &ShowHideMeasure{MeasureRef: MeasureRef{Base: Base{Hidden: true}, Measure: "amount"}}
	changed, err := hide.Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, model.Measure("amount").Hidden)

	changed, err = hide.Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	show := &ShowHideMeasure{MeasureRef: MeasureRef{Measure: "amount"}}
	changed, err = show.Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, model.Measure("amount").Hidden)
	assert.Equal(t, `show measure "amount"`, show.Summary())
}

func TestCreateCalculatedMember_Apply(t *testing.T) {
	ctx := context.Background()
	model := salesModel()

	k := &CreateCalculatedMember{Base: Base{Name: "Margin"}, Formula: "[Measures].[amount] - [Measures].[cost]", FormatString: "#.00"}
	changed, err := New(k).Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, model.CalculatedMembers(), 1)
	assert.Equal(t, "#.00", model.CalculatedMembers()[0].FormatString)

	_, err = k.Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateName)

	_, err = (&CreateCalculatedMember{Base: Base{Name: "x"}, Formula: "1", Dimension: "Nope"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = New(&CreateCalculatedMember{Base: Base{Name: "y"}}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestCreateMeasure_SameFieldTwice(t *testing.T) {
	ctx := context.Background()
	model := olap.NewModel("values", core.TableMetadata{
		Name: "values",
		Columns: []core.Column{
			{Name: "value", DataType: core.DataTypeNumeric},
			{Name: "id", DataType: core.DataTypeString},
		},
	})

	g := NewGroup("Values",
		NewForField("value", &CreateMeasure{Base: Base{Name: "value"}, AggregateType: olap.AggregationSum}),
		NewForField("value", &CreateMeasure{Base: Base{Name: "The Value"}, AggregateType: olap.AggregationSum}),
		NewForField("id", &CreateMeasure{Base: Base{Name: "Id Count"}, AggregateType: olap.AggregationCount}),
	)
	require.NoError(t, NewManager(nil).ApplyGroup(ctx, g, model, nil))

	require.Len(t, model.Measures(), 3)
	cube := model.Cube()
	require.Len(t, cube.Measures, 3)
	assert.Equal(t, "value", cube.Measures[0].Name)
	assert.Equal(t, "The Value", cube.Measures[1].Name)
	assert.Equal(t, "Id Count", cube.Measures[2].Name)
	assert.Equal(t, olap.AggregationCount, cube.Measures[2].Aggregation)
	assert.Empty(t, cube.DimensionUsages)
}
