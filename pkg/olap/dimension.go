package olap

import "strings"

// Dimension is a named set of hierarchies.
type Dimension struct {
	Name        string
	Description string
	Hidden      bool
	// Geo marks the dimension built from columns matched to geographic roles.
	Geo bool
	// Shared marks a dimension defined by a shared-dimension group.
	Shared bool
	// Key is the technical key column of a shared dimension.
	Key *LogicalColumn

	hierarchies []*Hierarchy
}

// Hierarchies returns the dimension's hierarchies in order.
func (d *Dimension) Hierarchies() []*Hierarchy {
	return d.hierarchies
}

// Hierarchy finds a hierarchy by name, case-insensitively.
func (d *Dimension) Hierarchy(name string) *Hierarchy {
	for _, h := range d.hierarchies {
		if strings.EqualFold(h.Name, name) {
			return h
		}
	}
	return nil
}

// AddHierarchy appends a new hierarchy, or returns the existing one with that name.
func (d *Dimension) AddHierarchy(name string) *Hierarchy {
	if h := d.Hierarchy(name); h != nil {
		return h
	}
	h := &Hierarchy{Name: name, dimension: d}
	d.hierarchies = append(d.hierarchies, h)
	return h
}

// Levels returns every level across the dimension's hierarchies.
func (d *Dimension) Levels() []*Level {
	var out []*Level
	for _, h := range d.hierarchies {
		out = append(out, h.levels...)
	}
	return out
}

// Hierarchy is an ordered list of levels.
type Hierarchy struct {
	Name string

	levels    []*Level
	dimension *Dimension
}

// Dimension returns the owning dimension.
func (h *Hierarchy) Dimension() *Dimension {
	return h.dimension
}

// Levels returns the levels in order, coarsest first.
func (h *Hierarchy) Levels() []*Level {
	return h.levels
}

// Level finds a level by name, case-insensitively.
func (h *Hierarchy) Level(name string) *Level {
	for _, l := range h.levels {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}

// AddLevel appends l to the hierarchy and returns it.
func (h *Hierarchy) AddLevel(l *Level) *Level {
	l.hierarchy = h
	h.levels = append(h.levels, l)
	return l
}

// InsertLevelAfter places l directly below parent. A nil or foreign parent appends.
func (h *Hierarchy) InsertLevelAfter(parent, l *Level) *Level {
	l.hierarchy = h
	for i, existing := range h.levels {
		if existing == parent {
			h.levels = append(h.levels[:i+1], append([]*Level{l}, h.levels[i+1:]...)...)
			return l
		}
	}
	h.levels = append(h.levels, l)
	return l
}

// RemoveLevel removes l by identity. It reports whether l was present.
func (h *Hierarchy) RemoveLevel(l *Level) bool {
	for i, existing := range h.levels {
		if existing == l {
			h.levels = append(h.levels[:i], h.levels[i+1:]...)
			l.hierarchy = nil
			return true
		}
	}
	return false
}

// Level is one step of a hierarchy, backed by a logical column.
type Level struct {
	Name        string
	Description string
	Column      *LogicalColumn
	Ordinal     *LogicalColumn
	Unique      bool
	Hidden      bool
	GeoType     GeoType

	hierarchy *Hierarchy
}

// NewLevel creates a detached level. AddLevel attaches it.
func NewLevel(name string, column *LogicalColumn) *Level {
	return &Level{Name: name, Column: column}
}

// Hierarchy returns the owning hierarchy, or nil when detached.
func (l *Level) Hierarchy() *Hierarchy {
	return l.hierarchy
}
