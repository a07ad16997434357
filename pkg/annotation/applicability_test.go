package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

func TestIsApplicable(t *testing.T) {
	withKey := func() *Group {
		return NewSharedDimensionGroup("Teams", New(&CreateDimensionKey{Field: "id", Dimension: "Teams"}))
	}

	tests := []struct {
		name  string
		typ   Type
		group *Group
		want  bool
	}{
		{"dimension key in empty shared group", TypeCreateDimensionKey, NewSharedDimensionGroup("Teams"), true},
		{"second dimension key", TypeCreateDimensionKey, withKey(), false},
		{"dimension key in ordinary group", TypeCreateDimensionKey, NewGroup("g"), false},
		{"measure in ordinary group", TypeCreateMeasure, NewGroup("g"), true},
		{"measure in shared group", TypeCreateMeasure, NewSharedDimensionGroup("Teams"), false},
		{"link in ordinary group", TypeLinkDimension, NewGroup("g"), true},
		{"link in shared group", TypeLinkDimension, NewSharedDimensionGroup("Teams"), false},
		{"attribute in ordinary group", TypeCreateAttribute, NewGroup("g"), true},
		{"attribute in shared group", TypeCreateAttribute, withKey(), true},
		{"measure in nil group", TypeCreateMeasure, nil, true},
		{"dimension key in nil group", TypeCreateDimensionKey, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dt := range []core.DataType{core.DataTypeNone, core.DataTypeString, core.DataTypeNumeric} {
				assert.Equal(t, tt.want, tt.typ.IsApplicable(tt.group, New(nil), dt), "data type %q", dt)
			}
		})
	}
}

func TestIsApplicable_InlineKindsNeverInGroups(t *testing.T) {
	inline := []Type{
		TypeCreateCalculatedMember,
		TypeUpdateMeasure,
		TypeUpdateAttribute,
		TypeRemoveMeasure,
		TypeRemoveAttribute,
		TypeShowHideMeasure,
		TypeShowHideAttribute,
	}
	for _, typ := range inline {
		assert.False(t, typ.IsApplicable(NewGroup("g"), nil, core.DataTypeString), typ)
		assert.False(t, typ.IsApplicable(NewSharedDimensionGroup("s"), nil, core.DataTypeString), typ)
	}
}

func TestGroup_Append(t *testing.T) {
	g := NewSharedDimensionGroup("Teams")

	require.NoError(t, g.Append(New(&CreateDimensionKey{Field: "id", Dimension: "Teams"}), core.DataTypeNumeric))
	require.NoError(t, g.Append(New(&CreateAttribute{Field: "name", Dimension: "Teams"}), core.DataTypeString))

	err := g.Append(New(&CreateDimensionKey{Field: "code", Dimension: "Teams"}), core.DataTypeString)
	assert.ErrorIs(t, err, core.ErrValidation)
	err = g.Append(New(&CreateMeasure{Field: "id"}), core.DataTypeNumeric)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.False(t, IsApplicable(g, nil, core.DataTypeString))

	assert.Equal(t, 2, g.Len())
	assert.True(t, g.IsSharedDimension())
	assert.False(t, NewGroup("g").IsSharedDimension())

	g.Add(New(&CreateMeasure{Field: "id"}))
	assert.Equal(t, 3, g.Len(), "Add does not check applicability")
}

func TestGroup_Remove(t *testing.T) {
	a := New(&CreateMeasure{Field: "x"})
	b := New(&CreateMeasure{Field: "y"})
	g := NewGroup("g", a, b)

	assert.True(t, g.Remove(a.ID))
	assert.False(t, g.Remove(a.ID))
	assert.Equal(t, []*Annotation{b}, g.Annotations())
}
