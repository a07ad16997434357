// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// Project is a temporary working directory seeded with sample data.
type Project struct {
	Dir       string
	StatePath string
	CSVPath   string
	GroupPath string
}

const salesCSV = `country,city,product,amount
France,Paris,Widget,10.5
France,Lyon,Gadget,20.25
Spain,Madrid,Widget,7.75
`

const salesGroup = `<annotations>
  <annotation>
    <name>0f6d2c1a-8b7e-4c3d-9a10-5e4f3b2a1c01</name>
    <field>amount</field>
    <type>CREATE_MEASURE</type>
    <properties>
      <property>
        <name>name</name>
        <value><![CDATA[Avg Amount]]></value>
      </property>
      <property>
        <name>aggregateType</name>
        <value><![CDATA[AVERAGE]]></value>
      </property>
    </properties>
  </annotation>
  <annotation>
    <name>0f6d2c1a-8b7e-4c3d-9a10-5e4f3b2a1c02</name>
    <field>product</field>
    <type>CREATE_ATTRIBUTE</type>
    <properties>
      <property>
        <name>name</name>
        <value><![CDATA[Product Name]]></value>
      </property>
      <property>
        <name>dimension</name>
        <value><![CDATA[Catalog]]></value>
      </property>
    </properties>
  </annotation>
  <sharedDimension>N</sharedDimension>
  <description>Sales refinements</description>
</annotations>
`

// SetupTestProject creates a temporary project with a sales CSV and an
// annotation group named after its file, and changes into it.
func SetupTestProject(t *testing.T) *Project {
	t.Helper()

	tmpDir := t.TempDir()
	p := &Project{
		Dir:       tmpDir,
		StatePath: filepath.Join(tmpDir, ".leapmodel", "metastore.db"),
		CSVPath:   filepath.Join(tmpDir, "data", "sales.csv"),
		GroupPath: filepath.Join(tmpDir, "groups", "sales.xml"),
	}

	files := map[string]string{
		p.CSVPath:   salesCSV,
		p.GroupPath: salesGroup,
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", path, err)
		}
	}

	t.Chdir(tmpDir)
	return p
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}
