package geo

import (
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// DefaultDimensionName names the dimension built from geographic columns.
const DefaultDimensionName = "Geography"

// Context is an ordered set of roles. Order is significant: roles are
// tried first to last and the geographic hierarchy follows the same order.
type Context struct {
	DimensionName string
	Roles         []*Role
}

// NewContext creates a context. An empty dimension name uses DefaultDimensionName.
func NewContext(dimensionName string, roles ...*Role) *Context {
	if dimensionName == "" {
		dimensionName = DefaultDimensionName
	}
	return &Context{DimensionName: dimensionName, Roles: roles}
}

// MatchRole returns the first role matching the column name, or nil.
func (c *Context) MatchRole(column string) *Role {
	if c == nil {
		return nil
	}
	for _, r := range c.Roles {
		if r.Evaluate(column) {
			return r
		}
	}
	return nil
}

// Role finds a role by name.
func (c *Context) Role(name string) *Role {
	for _, r := range c.Roles {
		if normalize(r.Name) == normalize(name) {
			return r
		}
	}
	return nil
}

// Rank returns the position of a role in the context, or -1.
func (c *Context) Rank(r *Role) int {
	for i, existing := range c.Roles {
		if existing == r {
			return i
		}
	}
	return -1
}

// GeoType maps a role to the level geo type of the same name. Roles
// without a standard geo type map to the empty type.
func GeoType(r *Role) olap.GeoType {
	if r == nil {
		return ""
	}
	gt, err := olap.ParseGeoType(r.Name)
	if err != nil {
		return ""
	}
	return gt
}
