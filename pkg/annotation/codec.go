package annotation

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// XMLCodec encodes groups as annotation documents:
//
//	<annotations>
//	  <annotation>
//	    <name/><field/><type/>
//	    <properties><property><name/><value><![CDATA[...]]></value></property></properties>
//	  </annotation>
//	  <sharedDimension>N</sharedDimension>
//	  <description/>
//	  <data-providers>...</data-providers>
//	</annotations>
type XMLCodec struct {
	logger *slog.Logger
}

// NewXMLCodec creates a codec. Properties that cannot be decoded are logged.
func NewXMLCodec(logger *slog.Logger) *XMLCodec {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &XMLCodec{logger: logger}
}

type xmlDocument struct {
	XMLName         xml.Name          `xml:"annotations"`
	Annotations     []xmlAnnotation   `xml:"annotation"`
	SharedDimension string            `xml:"sharedDimension"`
	Description     string            `xml:"description"`
	DataProviders   *xmlDataProviders `xml:"data-providers,omitempty"`
}

type xmlAnnotation struct {
	Name       string         `xml:"name"`
	Field      string         `xml:"field"`
	Type       string         `xml:"type,omitempty"`
	Properties *xmlProperties `xml:"properties,omitempty"`
}

type xmlProperties struct {
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string   `xml:"name"`
	Value xmlValue `xml:"value"`
}

type xmlValue struct {
	Text string `xml:",cdata"`
}

type xmlDataProviders struct {
	DataProviders []xmlDataProvider `xml:"data-provider"`
}

type xmlDataProvider struct {
	Name            string             `xml:"name"`
	SchemaName      string             `xml:"schemaName"`
	TableName       string             `xml:"tableName"`
	DatabaseMetaRef string             `xml:"databaseMetaRef"`
	ColumnMappings  *xmlColumnMappings `xml:"column-mappings"`
}

type xmlColumnMappings struct {
	ColumnMappings []xmlColumnMapping `xml:"column-mapping"`
}

type xmlColumnMapping struct {
	Name       string `xml:"name"`
	ColumnName string `xml:"columnName"`
	DataType   string `xml:"dataType,omitempty"`
}

// Encode writes the group as an annotation document. The annotation id is
// written as its name; annotations without an id are assigned one.
func (c *XMLCodec) Encode(g *Group) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil group", core.ErrCodec)
	}
	doc := xmlDocument{
		SharedDimension: "N",
		Description:     g.Description,
	}
	if g.shared {
		doc.SharedDimension = "Y"
	}
	for _, a := range g.annotations {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		xa := xmlAnnotation{Name: a.ID, Field: a.Field()}
		if a.kind != nil {
			xa.Type = string(a.Type())
			values := a.Describe()
			props := &xmlProperties{}
			for _, id := range PropertyIDs(a.kind) {
				v, ok := values[id]
				if !ok || id == "field" {
					continue
				}
				props.Properties = append(props.Properties, xmlProperty{Name: id, Value: xmlValue{Text: fmt.Sprint(v)}})
			}
			xa.Properties = props
		}
		doc.Annotations = append(doc.Annotations, xa)
	}
	if len(g.DataProviders) > 0 {
		doc.DataProviders = &xmlDataProviders{}
		for _, dp := range g.DataProviders {
			xdp := xmlDataProvider{
				Name:            dp.Name,
				SchemaName:      dp.SchemaName,
				TableName:       dp.TableName,
				DatabaseMetaRef: dp.DatabaseMetaRef,
			}
			if len(dp.ColumnMappings) > 0 {
				xdp.ColumnMappings = &xmlColumnMappings{}
				for _, cm := range dp.ColumnMappings {
					xdp.ColumnMappings.ColumnMappings = append(xdp.ColumnMappings.ColumnMappings, xmlColumnMapping{
						Name:       cm.Name,
						ColumnName: cm.ColumnName,
						DataType:   string(cm.ColumnDataType),
					})
				}
			}
			doc.DataProviders.DataProviders = append(doc.DataProviders.DataProviders, xdp)
		}
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode group %q: %w", g.Name, err)
	}
	return buf.Bytes(), nil
}

// Decode reads an annotation document into a group. The group name is not
// part of the document and is left empty. Decoded annotations are marked
// persisted. Unknown or unparsable properties are logged and skipped.
func (c *XMLCodec) Decode(data []byte) (*Group, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrCodec, err)
	}
	shared, err := parseBool(doc.SharedDimension)
	if err != nil {
		return nil, err
	}

	g := &Group{Description: doc.Description, shared: shared}
	for i, xa := range doc.Annotations {
		a := &Annotation{ID: xa.Name, field: xa.Field, persisted: true}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if xa.Type != "" {
			t, err := ParseType(xa.Type)
			if err != nil {
				return nil, fmt.Errorf("annotation %d: %w", i, err)
			}
			a.kind = t.New()
			if Declares(a.kind, "field") {
				_ = Set(a.kind, "field", xa.Field)
			}
			if xa.Properties != nil {
				for _, p := range xa.Properties.Properties {
					if err := SetText(a.kind, p.Name, p.Value.Text); err != nil {
						c.logger.Warn("skipping annotation property",
							"type", t, "property", p.Name, "error", err)
					}
				}
			}
		}
		g.annotations = append(g.annotations, a)
	}

	if doc.DataProviders != nil {
		for _, xdp := range doc.DataProviders.DataProviders {
			dp := DataProvider{
				Name:            xdp.Name,
				SchemaName:      xdp.SchemaName,
				TableName:       xdp.TableName,
				DatabaseMetaRef: xdp.DatabaseMetaRef,
			}
			if xdp.ColumnMappings != nil {
				for _, xcm := range xdp.ColumnMappings.ColumnMappings {
					cm := ColumnMapping{Name: xcm.Name, ColumnName: xcm.ColumnName}
					cm.ColumnDataType = core.ParseDataType(xcm.DataType)
					dp.ColumnMappings = append(dp.ColumnMappings, cm)
				}
			}
			g.DataProviders = append(g.DataProviders, dp)
		}
	}
	return g, nil
}
