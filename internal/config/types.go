// Package config loads layered leapmodel configuration: built-in defaults,
// a leapmodel.yaml file, LEAPMODEL_ environment variables and command flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/leapmodel/pkg/adapter"
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/geo"
)

// Config holds all configuration options.
type Config struct {
	StatePath    string        `koanf:"state_path"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Target       *TargetConfig `koanf:"target"`
	Geo          geo.Config    `koanf:"geo"`
}

// TargetConfig describes the default source connection.
type TargetConfig struct {
	Type string `koanf:"type"` // duckdb, postgres

	// File-based databases (DuckDB)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g., DuckDB extensions, secrets, settings)
	Params map[string]any `koanf:"params"`
}

// Validate checks the target against the adapter registry.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	_, err := adapter.Lookup(t.Type)
	return err
}

// DatabaseMeta converts the target into stored connection metadata.
func (t *TargetConfig) DatabaseMeta(name string) *core.DatabaseMeta {
	return &core.DatabaseMeta{
		Name:        name,
		Type:        strings.ToLower(t.Type),
		Host:        t.Host,
		Port:        t.Port,
		Database:    t.Database,
		Schema:      t.Schema,
		Username:    t.User,
		Password:    t.Password,
		Attributes:  t.Options,
		ChangedDate: time.Now().UTC().Truncate(time.Second),
	}
}

// Output formats.
const (
	OutputTable = "table"
	OutputXML   = "xml"
	OutputJSON  = "json"
)

// Default configuration values.
const (
	DefaultStateFile = ".leapmodel/metastore.db"
	DefaultOutput    = OutputTable
	DefaultTarget    = "default"
)

// Default returns the configuration used when nothing else is supplied.
func Default() *Config {
	return &Config{
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
		Geo:          geo.DefaultConfig(),
	}
}

// DefaultSchemaForType returns the default schema for a database type.
func DefaultSchemaForType(dbType string) string {
	if strings.EqualFold(dbType, "postgres") {
		return "public"
	}
	return "main"
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}
	if strings.EqualFold(t.Type, "postgres") && t.Port == 0 {
		t.Port = 5432
	}
}
