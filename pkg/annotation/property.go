package annotation

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// ValueKind is the declared type of a property value.
type ValueKind int

// Property value kinds.
const (
	StringValue ValueKind = iota
	BoolValue
	AggregationValue
	GeoTypeValue
)

func (v ValueKind) String() string {
	switch v {
	case StringValue:
		return "string"
	case BoolValue:
		return "bool"
	case AggregationValue:
		return "aggregation type"
	case GeoTypeValue:
		return "geo type"
	default:
		return "unknown"
	}
}

// Parse converts the textual form of a value, as written by the XML codec,
// into a value of this kind.
func (v ValueKind) Parse(s string) (any, error) {
	switch v {
	case StringValue:
		return s, nil
	case BoolValue:
		return parseBool(s)
	case AggregationValue:
		return olap.ParseAggregationType(s)
	case GeoTypeValue:
		return olap.ParseGeoType(s)
	default:
		return nil, fmt.Errorf("%w: unsupported value kind %d", core.ErrCodec, v)
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "YES":
		return true, nil
	case "N", "NO", "":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%w: invalid boolean %q", core.ErrCodec, s)
	}
	return b, nil
}

// TypeMismatchError reports a property set with a value of the wrong type.
type TypeMismatchError struct {
	Property string
	Want     ValueKind
	Got      any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property %q expects %s, got %T", e.Property, e.Want, e.Got)
}

// Unwrap allows errors.Is(err, core.ErrTypeMismatch).
func (e *TypeMismatchError) Unwrap() error {
	return core.ErrTypeMismatch
}

// Property describes one configurable value of an annotation kind.
type Property struct {
	ID   string
	Name string
	Kind ValueKind

	get func(Kind) any
	set func(Kind, any) bool
}

// prop binds a property to a field of kind K through ptr.
func prop[K Kind, V any](id, name string, vk ValueKind, ptr func(K) *V) Property {
	return Property{
		ID:   id,
		Name: name,
		Kind: vk,
		get:  func(k Kind) any { return *ptr(k.(K)) },
		set: func(k Kind, value any) bool {
			v, ok := value.(V)
			if !ok {
				return false
			}
			*ptr(k.(K)) = v
			return true
		},
	}
}

// propertySet is the table of properties declared at one level of a kind
// hierarchy. Lookups walk from the most specific level to its ancestors.
type propertySet struct {
	own    []Property
	parent *propertySet
}

func (s *propertySet) all() []Property {
	var out []Property
	for cur := s; cur != nil; cur = cur.parent {
		out = append(out, cur.own...)
	}
	return out
}

func propertiesOf(k Kind) []Property {
	if k == nil {
		return nil
	}
	info, ok := kinds[k.Type()]
	if !ok {
		return nil
	}
	return info.properties
}

func lookup(k Kind, id string) (Property, bool) {
	for _, p := range propertiesOf(k) {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// Properties returns the property table of a kind, most specific first.
func Properties(k Kind) []Property {
	return slices.Clone(propertiesOf(k))
}

// PropertyIDs returns the ids of every property the kind declares.
func PropertyIDs(k Kind) []string {
	props := propertiesOf(k)
	ids := make([]string, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.ID)
	}
	return ids
}

// PropertyNames returns the display names of every property the kind declares.
func PropertyNames(k Kind) []string {
	props := propertiesOf(k)
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	return names
}

// Declares reports whether the kind declares a property with the given id.
func Declares(k Kind, id string) bool {
	_, ok := lookup(k, id)
	return ok
}

// Get returns the current value of a property, or nil if the kind declares
// no such property.
func Get(k Kind, id string) any {
	p, ok := lookup(k, id)
	if !ok {
		return nil
	}
	return p.get(k)
}

// Set assigns a property by id. The value must have the property's declared
// type exactly, otherwise a *TypeMismatchError is returned.
func Set(k Kind, id string, value any) error {
	p, ok := lookup(k, id)
	if !ok {
		return fmt.Errorf("%w: %s has no property %q", core.ErrNotFound, typeOf(k), id)
	}
	return setProperty(k, p, value)
}

// SetByName assigns a property by display name.
func SetByName(k Kind, name string, value any) error {
	for _, p := range propertiesOf(k) {
		if p.Name == name {
			return setProperty(k, p, value)
		}
	}
	return fmt.Errorf("%w: %s has no property named %q", core.ErrNotFound, typeOf(k), name)
}

// SetText parses the textual form of a value and assigns it by id.
func SetText(k Kind, id, text string) error {
	p, ok := lookup(k, id)
	if !ok {
		return fmt.Errorf("%w: %s has no property %q", core.ErrNotFound, typeOf(k), id)
	}
	v, err := p.Kind.Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse property %q: %w", id, err)
	}
	return setProperty(k, p, v)
}

func setProperty(k Kind, p Property, value any) error {
	if value == nil || !p.set(k, value) {
		return &TypeMismatchError{Property: p.ID, Want: p.Kind, Got: value}
	}
	return nil
}

// Describe returns the non-zero property values of a kind keyed by id.
func Describe(k Kind) map[string]any {
	out := make(map[string]any)
	for _, p := range propertiesOf(k) {
		v := p.get(k)
		if isZero(v) {
			continue
		}
		out[p.ID] = v
	}
	return out
}

// Populate assigns every entry of props to the kind. Entries that fail are
// logged and skipped.
func Populate(k Kind, props map[string]any, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ids := make([]string, 0, len(props))
	for id := range props {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := Set(k, id, props[id]); err != nil {
			logger.Warn("unable to set property", "type", typeOf(k), "property", id, "error", err)
		}
	}
}

func isZero(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case olap.AggregationType:
		return x == ""
	case olap.GeoType:
		return x == ""
	default:
		return false
	}
}

func typeOf(k Kind) Type {
	if k == nil {
		return ""
	}
	return k.Type()
}
