package olap

import "github.com/leapstack-labs/leapmodel/pkg/core"

// Clone returns a deep copy of the model. Applying annotations to a clone and
// swapping it in on success gives callers all-or-nothing application.
func (m *Model) Clone() *Model {
	c := &Model{Name: m.Name}

	cols := make(map[*LogicalColumn]*LogicalColumn, len(m.columns))
	col := func(lc *LogicalColumn) *LogicalColumn {
		if lc == nil {
			return nil
		}
		if dup, ok := cols[lc]; ok {
			return dup
		}
		dup := *lc
		cols[lc] = &dup
		return &dup
	}

	for _, t := range m.tables {
		t.Columns = append([]core.Column(nil), t.Columns...)
		c.tables = append(c.tables, t)
	}
	for _, lc := range m.columns {
		c.columns = append(c.columns, col(lc))
	}

	dims := make(map[*Dimension]*Dimension, len(m.dimensions))
	for _, d := range m.dimensions {
		nd := &Dimension{Name: d.Name, Description: d.Description, Hidden: d.Hidden, Geo: d.Geo, Shared: d.Shared, Key: col(d.Key)}
		for _, h := range d.hierarchies {
			nh := nd.AddHierarchy(h.Name)
			for _, l := range h.levels {
				nl := *l
				nl.Column = col(l.Column)
				nl.Ordinal = col(l.Ordinal)
				nh.AddLevel(&nl)
			}
		}
		dims[d] = nd
		c.dimensions = append(c.dimensions, nd)
	}

	for _, ms := range m.measures {
		nm := *ms
		nm.Column = col(ms.Column)
		c.measures = append(c.measures, &nm)
	}
	for _, cm := range m.calculatedMembers {
		ncm := *cm
		c.calculatedMembers = append(c.calculatedMembers, &ncm)
	}
	for _, u := range m.sharedLinks {
		nu := *u
		nu.Dimension = dims[u.Dimension]
		nu.ForeignKey = col(u.ForeignKey)
		c.sharedLinks = append(c.sharedLinks, &nu)
	}
	for _, cat := range m.categories {
		ncat := &Category{Name: cat.Name}
		for _, f := range cat.Fields {
			ncat.Fields = append(ncat.Fields, &Field{Name: f.Name, Column: col(f.Column)})
		}
		c.categories = append(c.categories, ncat)
	}
	return c
}
