package olap

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// AggregationType is how a measure rolls up.
type AggregationType string

// Aggregation types. String values are the wire names.
const (
	AggregationSum           AggregationType = "SUM"
	AggregationAverage       AggregationType = "AVERAGE"
	AggregationCount         AggregationType = "COUNT"
	AggregationCountDistinct AggregationType = "COUNT_DISTINCT"
	AggregationMinimum       AggregationType = "MINIMUM"
	AggregationMaximum       AggregationType = "MAXIMUM"
	AggregationNone          AggregationType = "NONE"
)

var aggregationTypes = []AggregationType{
	AggregationSum, AggregationAverage, AggregationCount, AggregationCountDistinct,
	AggregationMinimum, AggregationMaximum, AggregationNone,
}

// ParseAggregationType parses a wire name case-insensitively.
func ParseAggregationType(s string) (AggregationType, error) {
	for _, a := range aggregationTypes {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown aggregation type %q", core.ErrCodec, s)
}

// GeoType is the geographic role a level plays.
type GeoType string

// Geo types. String values are the wire names.
const (
	GeoContinent  GeoType = "Continent"
	GeoCountry    GeoType = "Country"
	GeoState      GeoType = "State"
	GeoCounty     GeoType = "County"
	GeoCity       GeoType = "City"
	GeoPostalCode GeoType = "Postal_Code"
	GeoLatitude   GeoType = "Latitude"
	GeoLongitude  GeoType = "Longitude"
)

var geoTypes = []GeoType{
	GeoContinent, GeoCountry, GeoState, GeoCounty, GeoCity, GeoPostalCode, GeoLatitude, GeoLongitude,
}

// ParseGeoType parses a wire name case-insensitively.
func ParseGeoType(s string) (GeoType, error) {
	for _, g := range geoTypes {
		if strings.EqualFold(string(g), strings.TrimSpace(s)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown geo type %q", core.ErrCodec, s)
}

// LogicalColumn is a source column registered with the model.
type LogicalColumn struct {
	Name     string
	Table    string
	DataType core.DataType
}

// Measure is an aggregated numeric fact.
type Measure struct {
	Name         string
	Column       *LogicalColumn
	Aggregation  AggregationType
	FormatString string
	Description  string
	Hidden       bool
}

// CalculatedMember is a member defined by a formula rather than a column.
type CalculatedMember struct {
	Name               string
	Dimension          string
	Formula            string
	FormatString       string
	Hidden             bool
	CalculateSubtotals bool
}

// DimensionUsage is a cube's reference to a dimension, either local or shared.
type DimensionUsage struct {
	Name string
	// Dimension is set for dimensions defined in this model.
	Dimension *Dimension
	// SharedDimension is set for links to a shared dimension group.
	SharedDimension string
	// Hierarchy optionally narrows a shared dimension link to one hierarchy.
	Hierarchy  string
	ForeignKey *LogicalColumn
}

// Cube is the analysis view of a model: its measures and dimension usages in order.
type Cube struct {
	Name            string
	Measures        []*Measure
	DimensionUsages []*DimensionUsage
}

// Field is a column exposed in a relational category.
type Field struct {
	Name   string
	Column *LogicalColumn
}

// Category groups relational fields, one per source table.
type Category struct {
	Name   string
	Fields []*Field
}
