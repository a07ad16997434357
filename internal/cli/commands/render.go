package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapmodel/internal/config"
	"github.com/leapstack-labs/leapmodel/pkg/annotation"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

type groupSummary struct {
	Name        string `json:"name"`
	Shared      bool   `json:"shared"`
	Annotations int    `json:"annotations"`
	Description string `json:"description,omitempty"`
}

func renderGroups(w io.Writer, format string, groups []*annotation.Group) error {
	summaries := make([]groupSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, groupSummary{
			Name:        g.Name,
			Shared:      g.IsSharedDimension(),
			Annotations: g.Len(),
			Description: g.Description,
		})
	}

	if format == config.OutputJSON {
		return renderJSON(w, summaries)
	}
	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(w, "(0 groups)")
		return nil
	}

	t := newTable(w, "")
	t.AppendHeader(table.Row{"Group", "Shared", "Annotations", "Description"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Name, yesNo(s.Shared), s.Annotations, s.Description})
	}
	t.Render()
	return nil
}

type annotationView struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Field      string         `json:"field,omitempty"`
	Summary    string         `json:"summary"`
	Properties map[string]any `json:"properties,omitempty"`
}

type groupView struct {
	groupSummary
	Items []annotationView `json:"items"`
}

func renderGroup(w io.Writer, format string, g *annotation.Group, codec *annotation.XMLCodec) error {
	switch format {
	case config.OutputXML:
		data, err := codec.Encode(g)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case config.OutputJSON:
		view := groupView{groupSummary: groupSummary{
			Name:        g.Name,
			Shared:      g.IsSharedDimension(),
			Annotations: g.Len(),
			Description: g.Description,
		}}
		for _, a := range g.Annotations() {
			view.Items = append(view.Items, annotationView{
				ID:         a.ID,
				Type:       a.Type().String(),
				Field:      a.Field(),
				Summary:    a.Kind().Summary(),
				Properties: a.Describe(),
			})
		}
		return renderJSON(w, view)
	}

	kind := "Annotation group"
	if g.IsSharedDimension() {
		kind = "Shared dimension group"
	}
	t := newTable(w, fmt.Sprintf("%s %s", kind, g.Name))
	t.AppendHeader(table.Row{"#", "Type", "Field", "Summary", "ID"})
	for i, a := range g.Annotations() {
		t.AppendRow(table.Row{i + 1, a.Type().Description(), a.Field(), a.Kind().Summary(), a.ID})
	}
	t.Render()

	for _, dp := range g.DataProviders {
		p := newTable(w, "Data provider "+dp.Name)
		p.AppendHeader(table.Row{"Column", "Physical column", "Data type"})
		for _, cm := range dp.ColumnMappings {
			p.AppendRow(table.Row{cm.Name, cm.ColumnName, cm.ColumnDataType})
		}
		p.AppendFooter(table.Row{"Table", strings.Trim(dp.SchemaName+"."+dp.TableName, "."), "connection " + dp.DatabaseMetaRef})
		p.Render()
	}
	return nil
}

type connectionView struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Host     string            `json:"host,omitempty"`
	Port     int               `json:"port,omitempty"`
	Database string            `json:"database,omitempty"`
	Schema   string            `json:"schema,omitempty"`
	Username string            `json:"username,omitempty"`
	Changed  string            `json:"changed"`
	Options  map[string]string `json:"options,omitempty"`
}

func renderConnection(w io.Writer, format string, meta *core.DatabaseMeta) error {
	view := connectionView{
		Name:     meta.Name,
		Type:     meta.Type,
		Host:     meta.Host,
		Port:     meta.Port,
		Database: meta.Database,
		Schema:   meta.Schema,
		Username: meta.Username,
		Changed:  meta.ChangedDate.Format("2006-01-02 15:04:05"),
		Options:  meta.Attributes,
	}
	if format == config.OutputJSON {
		return renderJSON(w, view)
	}

	t := newTable(w, "Connection "+meta.Name)
	t.AppendRows([]table.Row{
		{"Type", view.Type},
		{"Host", view.Host},
		{"Port", view.Port},
		{"Database", view.Database},
		{"Schema", view.Schema},
		{"User", view.Username},
		{"Password", maskPassword(meta.Password)},
		{"Changed", view.Changed},
	})
	keys := make([]string, 0, len(meta.Attributes))
	for k := range meta.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.AppendRow(table.Row{k, meta.Attributes[k]})
	}
	t.Render()
	return nil
}

func maskPassword(p string) string {
	if p == "" {
		return ""
	}
	return "********"
}

type measureView struct {
	Name        string `json:"name"`
	Column      string `json:"column,omitempty"`
	Aggregation string `json:"aggregation"`
	Format      string `json:"format,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
}

type levelView struct {
	Dimension string `json:"dimension"`
	Hierarchy string `json:"hierarchy"`
	Level     string `json:"level"`
	Column    string `json:"column,omitempty"`
	GeoType   string `json:"geo_type,omitempty"`
	Hidden    bool   `json:"hidden,omitempty"`
}

type usageView struct {
	Name            string `json:"name"`
	SharedDimension string `json:"shared_dimension,omitempty"`
	Hierarchy       string `json:"hierarchy,omitempty"`
	ForeignKey      string `json:"foreign_key,omitempty"`
}

type categoryView struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

type modelView struct {
	Name       string         `json:"name"`
	Measures   []measureView  `json:"measures"`
	Levels     []levelView    `json:"levels"`
	Usages     []usageView    `json:"dimension_usages"`
	Categories []categoryView `json:"categories,omitempty"`
	Problems   []string       `json:"problems,omitempty"`
}

func columnName(c *olap.LogicalColumn) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func newModelView(m *olap.Model) modelView {
	view := modelView{Name: m.Name}
	for _, ms := range m.Measures() {
		view.Measures = append(view.Measures, measureView{
			Name:        ms.Name,
			Column:      columnName(ms.Column),
			Aggregation: string(ms.Aggregation),
			Format:      ms.FormatString,
			Hidden:      ms.Hidden,
		})
	}
	for _, d := range m.Dimensions() {
		for _, h := range d.Hierarchies() {
			for _, l := range h.Levels() {
				view.Levels = append(view.Levels, levelView{
					Dimension: d.Name,
					Hierarchy: h.Name,
					Level:     l.Name,
					Column:    columnName(l.Column),
					GeoType:   string(l.GeoType),
					Hidden:    l.Hidden,
				})
			}
		}
	}
	for _, u := range m.Cube().DimensionUsages {
		view.Usages = append(view.Usages, usageView{
			Name:            u.Name,
			SharedDimension: u.SharedDimension,
			Hierarchy:       u.Hierarchy,
			ForeignKey:      columnName(u.ForeignKey),
		})
	}
	for _, c := range m.Categories() {
		cv := categoryView{Name: c.Name}
		for _, f := range c.Fields {
			cv.Fields = append(cv.Fields, f.Name)
		}
		view.Categories = append(view.Categories, cv)
	}
	if len(m.Categories()) == 0 {
		if err := m.Validate(); err != nil {
			view.Problems = strings.Split(err.Error(), "\n")
		}
	}
	return view
}

func renderModel(w io.Writer, format string, m *olap.Model) error {
	view := newModelView(m)
	if format == config.OutputJSON {
		return renderJSON(w, view)
	}

	if len(view.Categories) > 0 {
		t := newTable(w, "Model "+view.Name)
		t.AppendHeader(table.Row{"Category", "Fields"})
		for _, c := range view.Categories {
			t.AppendRow(table.Row{c.Name, strings.Join(c.Fields, ", ")})
		}
		t.Render()
		return nil
	}

	mt := newTable(w, "Measures")
	mt.AppendHeader(table.Row{"Measure", "Column", "Aggregation", "Format", "Hidden"})
	for _, ms := range view.Measures {
		mt.AppendRow(table.Row{ms.Name, ms.Column, ms.Aggregation, ms.Format, yesNo(ms.Hidden)})
	}
	mt.Render()

	lt := newTable(w, "Dimensions")
	lt.AppendHeader(table.Row{"Dimension", "Hierarchy", "Level", "Column", "Geo type"})
	for _, l := range view.Levels {
		lt.AppendRow(table.Row{l.Dimension, l.Hierarchy, l.Level, l.Column, l.GeoType})
	}
	lt.Render()

	var shared []usageView
	for _, u := range view.Usages {
		if u.SharedDimension != "" {
			shared = append(shared, u)
		}
	}
	if len(shared) > 0 {
		st := newTable(w, "Shared dimensions")
		st.AppendHeader(table.Row{"Usage", "Shared dimension", "Hierarchy", "Foreign key"})
		for _, u := range shared {
			st.AppendRow(table.Row{u.Name, u.SharedDimension, u.Hierarchy, u.ForeignKey})
		}
		st.Render()
	}

	for _, p := range view.Problems {
		_, _ = fmt.Fprintf(w, "warning: %s\n", p)
	}
	return nil
}
