package annotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

func attr(name, dimension, hierarchy string) *CreateAttribute {
	return &CreateAttribute{Base: Base{Name: name}, Field: name, Dimension: dimension, Hierarchy: hierarchy}
}

func TestCreateAttribute_EqualsLogically(t *testing.T) {
	tests := []struct {
		name  string
		left  *CreateAttribute
		right Kind
		want  bool
	}{
		{"same", attr("year", "Date", "Calendar"), attr("year", "Date", "Calendar"), true},
		{"case-insensitive", attr("year", "date", "calendar"), attr("YEAR", "Date", "Calendar"), true},
		{"different name", attr("year", "Date", "Calendar"), attr("month", "Date", "Calendar"), false},
		{"different hierarchy", attr("year", "Date", "Calendar"), attr("year", "Date", "Fiscal"), false},
		{"both dimensions empty", attr("sales", "", "Sales"), attr("Sales", "", "Sales"), true},
		{"empty hierarchy and dimension", attr("sales", "", ""), attr("Sales", "", "Sales"), false},
		{"empty dimension is not inferred", attr("sales", "", "sales"), attr("sales", "sales", "sales"), false},
		{"empty hierarchy is the dimension", attr("sales", "Sales", ""), attr("sales", "sales", "sales"), true},
		{"nil other", attr("sales", "Sales", ""), nil, false},
		{"other kind", attr("sales", "Sales", ""), &CreateMeasure{Field: "sales"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.left.EqualsLogically(tt.right))
		})
	}
}

func TestCreateAttribute_Apply(t *testing.T) {
	ctx := context.Background()
	model := salesModel()

	region := &CreateAttribute{Base: Base{Name: "Region"}, Field: "region", Dimension: "Location"}
	city := &CreateAttribute{Base: Base{Name: "City"}, Field: "city", Dimension: "Location", ParentAttribute: "Region"}
	state := &CreateAttribute{Base: Base{Name: "State"}, Field: "state", Dimension: "Location", ParentAttribute: "region", GeoType: olap.GeoState, Unique: true}

	for _, k := range []*CreateAttribute{region, city, state} {
		changed, err := New(k).Apply(ctx, model, nil)
		require.NoError(t, err)
		assert.True(t, changed)
	}

	dim := model.Dimension("Location")
	require.NotNil(t, dim)
	assert.True(t, dim.Geo)
	h := dim.Hierarchy("Location")
	require.NotNil(t, h, "hierarchy defaults to the dimension name")

	var names []string
	for _, l := range h.Levels() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Region", "State", "City"}, names)
	assert.Equal(t, olap.GeoState, h.Level("State").GeoType)
	assert.True(t, h.Level("State").Unique)
}

func TestCreateAttribute_ReplacesSameNamedLevel(t *testing.T) {
	ctx := context.Background()
	model := salesModel()

	_, err := (&CreateAttribute{Base: Base{Name: "Region"}, Field: "region", Dimension: "Location"}).Apply(ctx, model, nil)
	require.NoError(t, err)
	_, err = (&CreateAttribute{Base: Base{Name: "City"}, Field: "city", Dimension: "Location"}).Apply(ctx, model, nil)
	require.NoError(t, err)
	_, err = (&CreateAttribute{Base: Base{Name: "region", Description: "sales region"}, Field: "region", Dimension: "Location", ParentAttribute: "City"}).Apply(ctx, model, nil)
	require.NoError(t, err)

	levels := model.Dimension("Location").Hierarchy("Location").Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, "City", levels[0].Name)
	assert.Equal(t, "region", levels[1].Name)
	assert.Equal(t, "sales region", levels[1].Description)
}

func TestRemoveDuplicateLevel(t *testing.T) {
	model := salesModel()
	dim, err := model.AddDimension("d")
	require.NoError(t, err)
	h := dim.AddHierarchy("h")

	duplicate := h.AddLevel(olap.NewLevel("testLevel", nil))
	notDuplicate := h.AddLevel(olap.NewLevel("otherLevel", nil))
	added := h.AddLevel(olap.NewLevel("testLevel", nil))

	RemoveDuplicateLevel(model, added)
	assert.Equal(t, []*olap.Level{notDuplicate, added}, h.Levels())
	assert.Nil(t, duplicate.Hierarchy())
}

func TestCreateAttribute_Errors(t *testing.T) {
	ctx := context.Background()
	model := salesModel()

	_, err := (&CreateAttribute{Field: "missing", Dimension: "d"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrFieldNotFound)

	_, err = (&CreateAttribute{Field: "city", Dimension: "d", ParentAttribute: "nope"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = (&CreateAttribute{Field: "city", Dimension: "d", OrdinalField: "nope"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrFieldNotFound)

	_, err = New(&CreateAttribute{Field: "city"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestCreateAttribute_HierarchyOnly(t *testing.T) {
	ctx := context.Background()
	model := salesModel()

	k := &CreateAttribute{Base: Base{Name: "City"}, Field: "city", Hierarchy: "Location"}
	require.NoError(t, k.Validate())
	changed, err := New(k).Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	dim := model.Dimension("Location")
	require.NotNil(t, dim, "the hierarchy name is used as the dimension")
	require.NotNil(t, dim.Hierarchy("Location"))
	assert.NotNil(t, model.FindLevel("Location", "Location", "City"))

	explicit := &CreateAttribute{Base: Base{Name: "City"}, Field: "city", Dimension: "Location", Hierarchy: "Location"}
	assert.False(t, k.EqualsLogically(explicit), "a missing dimension is not inferred when comparing")
}

func TestAttributeEdits(t *testing.T) {
	ctx := context.Background()
	model := salesModel()
	_, err := (&CreateAttribute{Base: Base{Name: "Region"}, Field: "region", Dimension: "Location"}).Apply(ctx, model, nil)
	require.NoError(t, err)
	_, err = (&CreateAttribute{Base: Base{Name: "City"}, Field: "city", Dimension: "Location", ParentAttribute: "Region"}).Apply(ctx, model, nil)
	require.NoError(t, err)

	rename := &UpdateAttribute{AttributeRef{Base: Base{Name: "Town", Description: "city name"}, Attribute: "City", Dimension: "Location"}}
	changed, err := New(rename).Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	town := model.FindLevel("Location", "", "Town")
	require.NotNil(t, town)
	assert.Equal(t, "city name", town.Description)

	hide := &ShowHideAttribute{AttributeRef{Base: Base{Hidden: true}, Attribute: "Town"}}
	changed, err = hide.Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, town.Hidden)

	clash := &UpdateAttribute{AttributeRef{Base: Base{Name: "region"}, Attribute: "Town"}}
	_, err = clash.Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateName)

	remove := &RemoveAttribute{AttributeRef{Attribute: "Town", Dimension: "Location", Hierarchy: "Location"}}
	changed, err = remove.Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, model.FindLevel("", "", "Town"))

	_, err = remove.Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrNotFound)

	removeLast := &RemoveAttribute{AttributeRef{Attribute: "Region"}}
	_, err = removeLast.Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.Nil(t, model.Dimension("Location"), "empty dimensions are pruned")
	assert.Equal(t, `remove attribute "Region"`, removeLast.Summary())
}

func TestDimensionKeyAndLink(t *testing.T) {
	ctx := context.Background()
	model := gamesModel()

	key := &CreateDimensionKey{Field: "Id", Dimension: "Teams"}
	changed, err := New(key).Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	dim := model.Dimension("Teams")
	require.NotNil(t, dim)
	assert.True(t, dim.Shared)
	assert.Equal(t, "Id", dim.Key.Name)

	_, err = (&CreateDimensionKey{Field: "Home_Team", Dimension: "Teams"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateName)

	link := &LinkDimension{Base: Base{Name: "Home"}, Field: "Home_Team", SharedDimension: "Teams"}
	changed, err = New(link).Apply(ctx, model, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, model.SharedDimensionLinks(), 1)
	assert.Equal(t, "Teams", model.SharedDimensionLinks()[0].SharedDimension)
	assert.Equal(t, "Home_Team", model.SharedDimensionLinks()[0].ForeignKey.Name)

	_, err = link.Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateName)

	_, err = (&LinkDimension{Field: "nope", SharedDimension: "Teams"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrFieldNotFound)

	_, err = New(&LinkDimension{Field: "AwayTeam"}).Apply(ctx, model, nil)
	assert.ErrorIs(t, err, core.ErrValidation)
}
