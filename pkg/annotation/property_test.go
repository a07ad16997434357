package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmodel/internal/testutil"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

func TestPropertyIDs_OwnBeforeInherited(t *testing.T) {
	ids := PropertyIDs(&CreateMeasure{})
	assert.Equal(t, []string{
		"field", "aggregateType", "formatString",
		"name", "localizedName", "description", "uniqueMembers", "hidden",
	}, ids)

	ids = PropertyIDs(&ShowHideMeasure{})
	assert.Equal(t, []string{"measure", "name", "localizedName", "description", "uniqueMembers", "hidden"}, ids)

	assert.Nil(t, PropertyIDs(nil))
}

func TestPropertyIDs_UniquePerType(t *testing.T) {
	for _, typ := range Types {
		t.Run(string(typ), func(t *testing.T) {
			k := typ.New()
			require.NotNil(t, k)
			assert.Equal(t, typ, k.Type())

			seen := map[string]bool{}
			for _, id := range PropertyIDs(k) {
				assert.False(t, seen[id], "duplicate property id %q", id)
				seen[id] = true
			}
			assert.Len(t, PropertyNames(k), len(seen))
			assert.NotEmpty(t, typ.Description())
		})
	}
}

func TestPropertyNames(t *testing.T) {
	names := PropertyNames(&CreateAttribute{})
	assert.Contains(t, names, "Display Name")
	assert.Contains(t, names, "Geo Type")
	assert.Contains(t, names, "Parent Attribute")
}

func TestSetAndGet(t *testing.T) {
	k := &CreateMeasure{}

	require.NoError(t, Set(k, "field", "amount"))
	require.NoError(t, Set(k, "aggregateType", olap.AggregationAverage))
	require.NoError(t, Set(k, "hidden", true))
	require.NoError(t, SetByName(k, "Display Name", "Amount"))

	assert.Equal(t, "amount", k.Field)
	assert.Equal(t, olap.AggregationAverage, k.AggregateType)
	assert.True(t, k.Hidden)
	assert.Equal(t, "Amount", k.Name)

	assert.Equal(t, "amount", Get(k, "field"))
	assert.Equal(t, true, Get(k, "hidden"))
	assert.Nil(t, Get(k, "nope"))
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		value any
		is    error
	}{
		{name: "string for bool", id: "hidden", value: "true", is: core.ErrTypeMismatch},
		{name: "int for string", id: "field", value: 42, is: core.ErrTypeMismatch},
		{name: "plain string for enum", id: "aggregateType", value: "SUM", is: core.ErrTypeMismatch},
		{name: "nil value", id: "name", value: nil, is: core.ErrTypeMismatch},
		{name: "unknown property", id: "sharedDimension", value: "x", is: core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Set(&CreateMeasure{}, tt.id, tt.value)
			assert.ErrorIs(t, err, tt.is)
		})
	}

	var mismatch *TypeMismatchError
	err := Set(&CreateMeasure{}, "hidden", 1)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "hidden", mismatch.Property)
	assert.Equal(t, BoolValue, mismatch.Want)
}

func TestDescribe_OmitsZeroValues(t *testing.T) {
	k := &CreateAttribute{
		Base:      Base{Name: "State", Hidden: false},
		Field:     "state_code",
		Dimension: "Geography",
		GeoType:   olap.GeoState,
	}
	assert.Equal(t, map[string]any{
		"name":      "State",
		"field":     "state_code",
		"dimension": "Geography",
		"geoType":   olap.GeoState,
	}, Describe(k))

	assert.Empty(t, Describe(&RemoveMeasure{}))
}

func TestPopulate(t *testing.T) {
	k := &LinkDimension{}
	Populate(k, map[string]any{
		"name":            "Dim Team",
		"field":           "Id",
		"sharedDimension": "Teams",
		"hidden":          "yes",
		"bogus":           1,
	}, testutil.NewTestLogger(t))

	assert.Equal(t, "Dim Team", k.Name)
	assert.Equal(t, "Id", k.Field)
	assert.Equal(t, "Teams", k.SharedDimension)
	assert.False(t, k.Hidden)
}

func TestPopulate_RoundTripsDescribe(t *testing.T) {
	src := &CreateCalculatedMember{
		Base:               Base{Name: "Margin", Description: "profit over revenue"},
		Formula:            "[Measures].[Profit] / [Measures].[Revenue]",
		FormatString:       "0.00%",
		CalculateSubtotals: true,
	}
	dst := &CreateCalculatedMember{}
	Populate(dst, Describe(src), nil)
	assert.Equal(t, src, dst)
}

func TestValueKind_Parse(t *testing.T) {
	tests := []struct {
		kind    ValueKind
		in      string
		want    any
		wantErr bool
	}{
		{StringValue, "Sales", "Sales", false},
		{BoolValue, "Y", true, false},
		{BoolValue, "N", false, false},
		{BoolValue, "true", true, false},
		{BoolValue, "false", false, false},
		{BoolValue, "maybe", nil, true},
		{AggregationValue, "count_distinct", olap.AggregationCountDistinct, false},
		{AggregationValue, "median", nil, true},
		{GeoTypeValue, "Postal_Code", olap.GeoPostalCode, false},
		{GeoTypeValue, "planet", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.in, func(t *testing.T) {
			got, err := tt.kind.Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrCodec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("CREATE_DIMENSION_KEY")
	require.NoError(t, err)
	assert.Equal(t, TypeCreateDimensionKey, typ)
	assert.Equal(t, "Create Dimension Key", typ.Description())

	_, err = ParseType("CREATE_CUBE")
	assert.ErrorIs(t, err, core.ErrCodec)
	assert.Nil(t, Type("CREATE_CUBE").New())
}
