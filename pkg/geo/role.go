// Package geo matches source column names to geographic roles.
package geo

import (
	"strings"

	"golang.org/x/text/cases"
)

// Role is a geographic role such as State or City, recognized by its name
// or any of its common aliases.
type Role struct {
	Name          string
	CommonAliases []string
}

// NewRole creates a role with the given aliases.
func NewRole(name string, aliases ...string) *Role {
	return &Role{Name: name, CommonAliases: aliases}
}

// ParseRole creates a role from a comma separated alias list such as
// "state, province".
func ParseRole(name, aliases string) *Role {
	return NewRole(name, SplitAliases(aliases)...)
}

// SplitAliases splits a comma separated list, trimming blanks.
func SplitAliases(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Evaluate reports whether a column name denotes this role. Underscores and
// spaces are ignored and case is folded; the whole name must match.
func (r *Role) Evaluate(column string) bool {
	key := normalize(column)
	if key == "" {
		return false
	}
	if normalize(r.Name) == key {
		return true
	}
	for _, alias := range r.CommonAliases {
		if normalize(alias) == key {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	s = strings.NewReplacer("_", "", " ", "").Replace(s)
	// casers are stateful, so one per call
	return cases.Fold().String(s)
}
