// Package automodel builds an initial model skeleton from source columns.
package automodel

import (
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/text/cases"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/geo"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// Strategy derives dimensions, measures and categories from a model's
// registered columns. With a geo context, columns matching a geographic
// role are gathered into a single geographic dimension.
type Strategy struct {
	geo    *geo.Context
	logger *slog.Logger
}

// New creates a strategy. geoCtx may be nil to disable geographic matching.
func New(geoCtx *geo.Context, logger *slog.Logger) *Strategy {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Strategy{geo: geoCtx, logger: logger}
}

// GeoContext returns the strategy's geo context, or nil.
func (s *Strategy) GeoContext() *geo.Context {
	return s.geo
}

type geoColumn struct {
	col  *olap.LogicalColumn
	role *geo.Role
	rank int
}

// AutoModelOlap adds one dimension per distinct column name and one SUM
// measure per distinct numeric column name. Names are compared exactly, so
// "Id" and "ID" are two columns. Geographic columns become the levels of one
// geographic dimension instead of dimensions of their own.
// Dimensions are sorted by name, case-insensitively.
func (s *Strategy) AutoModelOlap(model *olap.Model) error {
	fold := cases.Fold()
	seen := make(map[string]bool)
	var geoCols []geoColumn

	for _, col := range model.Columns() {
		if seen[col.Name] {
			continue
		}
		seen[col.Name] = true

		if col.DataType == core.DataTypeNumeric && !model.HasMeasure(col.Name) {
			if _, err := model.AddMeasure(&olap.Measure{
				Name:        col.Name,
				Column:      col,
				Aggregation: olap.AggregationSum,
			}); err != nil {
				return fmt.Errorf("failed to add measure %q: %w", col.Name, err)
			}
		}

		if role := s.geo.MatchRole(col.Name); role != nil {
			geoCols = append(geoCols, geoColumn{col: col, role: role, rank: s.geo.Rank(role)})
			continue
		}
		if model.HasDimension(col.Name) {
			continue
		}
		dim, err := model.AddDimension(col.Name)
		if err != nil {
			return fmt.Errorf("failed to add dimension %q: %w", col.Name, err)
		}
		dim.AddHierarchy(col.Name).AddLevel(olap.NewLevel(col.Name, col))
	}

	if len(geoCols) > 0 {
		if err := s.addGeoDimension(model, geoCols); err != nil {
			return err
		}
	}

	model.SortDimensions(func(a, b *olap.Dimension) bool {
		return fold.String(a.Name) < fold.String(b.Name)
	})
	s.logger.Debug("auto-modeled olap",
		"dimensions", len(model.Dimensions()),
		"measures", len(model.Measures()),
		"geo_columns", len(geoCols))
	return nil
}

// addGeoDimension always adds a fresh dimension. When a column dimension
// already holds the configured name, a numeric suffix is appended.
func (s *Strategy) addGeoDimension(model *olap.Model, cols []geoColumn) error {
	name := s.geo.DimensionName
	for i := 2; model.HasDimension(name); i++ {
		name = fmt.Sprintf("%s (%d)", s.geo.DimensionName, i)
	}
	dim, err := model.AddDimension(name)
	if err != nil {
		return fmt.Errorf("failed to add geography dimension: %w", err)
	}
	dim.Geo = true

	sort.SliceStable(cols, func(i, j int) bool { return cols[i].rank < cols[j].rank })
	h := dim.AddHierarchy(name)
	for _, gc := range cols {
		l := olap.NewLevel(gc.col.Name, gc.col)
		l.GeoType = geo.GeoType(gc.role)
		h.AddLevel(l)
	}
	return nil
}

// AutoModelRelational adds one category per source table holding one field
// per column of that table.
func (s *Strategy) AutoModelRelational(model *olap.Model) error {
	for _, t := range model.Tables() {
		cat, err := model.AddCategory(t.Name)
		if err != nil {
			return fmt.Errorf("failed to add category %q: %w", t.Name, err)
		}
		for _, col := range model.Columns() {
			if col.Table != t.Name {
				continue
			}
			cat.Fields = append(cat.Fields, &olap.Field{Name: col.Name, Column: col})
		}
	}
	s.logger.Debug("auto-modeled relational", "categories", len(model.Categories()))
	return nil
}
