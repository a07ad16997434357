package core

import "time"

// DatabaseMeta describes a stored database connection.
// Name is the stable reference used by data providers (databaseMetaRef).
type DatabaseMeta struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Access      string            `yaml:"access,omitempty"`
	Host        string            `yaml:"host,omitempty"`
	Port        int               `yaml:"port,omitempty"`
	Database    string            `yaml:"database,omitempty"`
	Schema      string            `yaml:"schema,omitempty"`
	Username    string            `yaml:"username,omitempty"`
	Password    string            `yaml:"password,omitempty"`
	Attributes  map[string]string `yaml:"attributes,omitempty"`
	ChangedDate time.Time         `yaml:"changed_date"`
}

// AdapterConfig converts the connection metadata into an adapter configuration.
// File based databases (duckdb) take their path from Database.
func (m *DatabaseMeta) AdapterConfig() AdapterConfig {
	cfg := AdapterConfig{
		Type:     m.Type,
		Host:     m.Host,
		Port:     m.Port,
		Database: m.Database,
		Username: m.Username,
		Password: m.Password,
		Schema:   m.Schema,
		Options:  m.Attributes,
	}
	if m.Type == "duckdb" {
		cfg.Path = m.Database
	}
	return cfg
}
