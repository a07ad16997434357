package olap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// Model is the mutable logical/OLAP model. It is not safe for concurrent use.
type Model struct {
	Name string

	tables            []core.TableMetadata
	columns           []*LogicalColumn
	dimensions        []*Dimension
	measures          []*Measure
	calculatedMembers []*CalculatedMember
	sharedLinks       []*DimensionUsage
	categories        []*Category
}

// NewModel creates a model over the given source tables, registering one
// logical column per table column.
func NewModel(name string, tables ...core.TableMetadata) *Model {
	m := &Model{Name: name}
	for _, t := range tables {
		m.AddTable(t)
	}
	return m
}

// AddTable registers a source table and its columns.
func (m *Model) AddTable(t core.TableMetadata) {
	m.tables = append(m.tables, t)
	for _, c := range t.Columns {
		m.columns = append(m.columns, &LogicalColumn{Name: c.Name, Table: t.Name, DataType: c.DataType})
	}
}

// Tables returns the registered source tables.
func (m *Model) Tables() []core.TableMetadata {
	return m.tables
}

// Columns returns the logical columns in registration order.
func (m *Model) Columns() []*LogicalColumn {
	return m.columns
}

// Column finds a logical column by name. An exact match wins over a
// case-insensitive one. Missing columns yield an error wrapping core.ErrFieldNotFound.
func (m *Model) Column(name string) (*LogicalColumn, error) {
	for _, c := range m.columns {
		if c.Name == name {
			return c, nil
		}
	}
	for _, c := range m.columns {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", core.ErrFieldNotFound, name)
}

// --- Dimensions ---

// Dimensions returns the dimensions in order.
func (m *Model) Dimensions() []*Dimension {
	return m.dimensions
}

// Dimension finds a dimension by name. An exact match wins over a
// case-insensitive one.
func (m *Model) Dimension(name string) *Dimension {
	for _, d := range m.dimensions {
		if d.Name == name {
			return d
		}
	}
	for _, d := range m.dimensions {
		if strings.EqualFold(d.Name, name) {
			return d
		}
	}
	return nil
}

// HasDimension reports whether a dimension with exactly this name exists.
func (m *Model) HasDimension(name string) bool {
	for _, d := range m.dimensions {
		if d.Name == name {
			return true
		}
	}
	return false
}

// AddDimension appends a new dimension. Names are unique by exact match.
func (m *Model) AddDimension(name string) (*Dimension, error) {
	if m.HasDimension(name) {
		return nil, fmt.Errorf("%w: dimension %q already exists", core.ErrDuplicateName, name)
	}
	d := &Dimension{Name: name}
	m.dimensions = append(m.dimensions, d)
	return d, nil
}

// RemoveDimension removes a dimension by name. It reports whether one was removed.
func (m *Model) RemoveDimension(name string) bool {
	d := m.Dimension(name)
	if d == nil {
		return false
	}
	m.removeDimension(d)
	return true
}

func (m *Model) removeDimension(d *Dimension) {
	for i, existing := range m.dimensions {
		if existing == d {
			m.dimensions = append(m.dimensions[:i], m.dimensions[i+1:]...)
			return
		}
	}
}

// SortDimensions reorders dimensions with a stable sort.
func (m *Model) SortDimensions(less func(a, b *Dimension) bool) {
	sort.SliceStable(m.dimensions, func(i, j int) bool {
		return less(m.dimensions[i], m.dimensions[j])
	})
}

// Levels returns every level of every dimension.
func (m *Model) Levels() []*Level {
	var out []*Level
	for _, d := range m.dimensions {
		out = append(out, d.Levels()...)
	}
	return out
}

// FindLevel locates a level by name, optionally narrowed by dimension and hierarchy.
// Empty dimension or hierarchy match any.
func (m *Model) FindLevel(dimension, hierarchy, name string) *Level {
	for _, d := range m.dimensions {
		if dimension != "" && !strings.EqualFold(d.Name, dimension) {
			continue
		}
		for _, h := range d.hierarchies {
			if hierarchy != "" && !strings.EqualFold(h.Name, hierarchy) {
				continue
			}
			if l := h.Level(name); l != nil {
				return l
			}
		}
	}
	return nil
}

// RemoveLevel detaches a level. Hierarchies and dimensions left empty are pruned.
func (m *Model) RemoveLevel(l *Level) bool {
	h := l.Hierarchy()
	if h == nil || !h.RemoveLevel(l) {
		return false
	}
	d := h.Dimension()
	if len(h.levels) == 0 && d != nil {
		for i, existing := range d.hierarchies {
			if existing == h {
				d.hierarchies = append(d.hierarchies[:i], d.hierarchies[i+1:]...)
				break
			}
		}
		if len(d.hierarchies) == 0 {
			m.removeDimension(d)
		}
	}
	return true
}

// --- Measures ---

// Measures returns the measures in insertion order.
func (m *Model) Measures() []*Measure {
	return m.measures
}

// Measure finds a measure by name. An exact match wins over a
// case-insensitive one.
func (m *Model) Measure(name string) *Measure {
	for _, ms := range m.measures {
		if ms.Name == name {
			return ms
		}
	}
	for _, ms := range m.measures {
		if strings.EqualFold(ms.Name, name) {
			return ms
		}
	}
	return nil
}

// HasMeasure reports whether a measure with exactly this name exists.
func (m *Model) HasMeasure(name string) bool {
	for _, ms := range m.measures {
		if ms.Name == name {
			return true
		}
	}
	return false
}

// AddMeasure appends a measure. Names are unique by exact match.
func (m *Model) AddMeasure(ms *Measure) (*Measure, error) {
	if m.HasMeasure(ms.Name) {
		return nil, fmt.Errorf("%w: measure %q already exists", core.ErrDuplicateName, ms.Name)
	}
	m.measures = append(m.measures, ms)
	return ms, nil
}

// RemoveMeasure removes a measure by name.
func (m *Model) RemoveMeasure(name string) error {
	target := m.Measure(name)
	if target == nil {
		return fmt.Errorf("%w: measure %q", core.ErrNotFound, name)
	}
	for i, ms := range m.measures {
		if ms == target {
			m.measures = append(m.measures[:i], m.measures[i+1:]...)
			break
		}
	}
	return nil
}

// --- Calculated members ---

// CalculatedMembers returns the calculated members in order.
func (m *Model) CalculatedMembers() []*CalculatedMember {
	return m.calculatedMembers
}

// AddCalculatedMember appends a calculated member. Names are unique per dimension.
func (m *Model) AddCalculatedMember(cm *CalculatedMember) (*CalculatedMember, error) {
	for _, existing := range m.calculatedMembers {
		if strings.EqualFold(existing.Name, cm.Name) && strings.EqualFold(existing.Dimension, cm.Dimension) {
			return nil, fmt.Errorf("%w: calculated member %q already exists", core.ErrDuplicateName, cm.Name)
		}
	}
	m.calculatedMembers = append(m.calculatedMembers, cm)
	return cm, nil
}

// --- Shared dimension links ---

// SharedDimensionLinks returns the links to shared dimensions in order.
func (m *Model) SharedDimensionLinks() []*DimensionUsage {
	return m.sharedLinks
}

// LinkSharedDimension records that column fk references the shared dimension
// group named shared. The link is resolved against that group when rendered.
func (m *Model) LinkSharedDimension(name, shared string, fk *LogicalColumn) (*DimensionUsage, error) {
	if name == "" {
		name = shared
	}
	for _, u := range m.sharedLinks {
		if strings.EqualFold(u.Name, name) {
			return nil, fmt.Errorf("%w: dimension link %q already exists", core.ErrDuplicateName, name)
		}
	}
	u := &DimensionUsage{Name: name, SharedDimension: shared, ForeignKey: fk}
	m.sharedLinks = append(m.sharedLinks, u)
	return u, nil
}

// Cube returns the analysis view: every measure in insertion order, one
// usage per dimension followed by one per shared link.
func (m *Model) Cube() *Cube {
	c := &Cube{
		Name:     m.Name,
		Measures: append([]*Measure(nil), m.measures...),
	}
	for _, d := range m.dimensions {
		c.DimensionUsages = append(c.DimensionUsages, &DimensionUsage{Name: d.Name, Dimension: d})
	}
	c.DimensionUsages = append(c.DimensionUsages, m.sharedLinks...)
	return c
}

// --- Relational categories ---

// Categories returns the relational categories in order.
func (m *Model) Categories() []*Category {
	return m.categories
}

// AddCategory appends a new relational category.
func (m *Model) AddCategory(name string) (*Category, error) {
	for _, c := range m.categories {
		if strings.EqualFold(c.Name, name) {
			return nil, fmt.Errorf("%w: category %q already exists", core.ErrDuplicateName, name)
		}
	}
	c := &Category{Name: name}
	m.categories = append(m.categories, c)
	return c, nil
}

// Validate checks the analysis side of the model: at least one measure and
// no duplicate measure names.
func (m *Model) Validate() error {
	var errs []error
	if len(m.measures) == 0 {
		errs = append(errs, fmt.Errorf("%w: model needs a measure", core.ErrValidation))
	}
	seen := make(map[string]bool, len(m.measures))
	for _, ms := range m.measures {
		if seen[ms.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate measure %q", core.ErrValidation, ms.Name))
		}
		seen[ms.Name] = true
	}
	return errors.Join(errs...)
}
