package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	useSSL := false

	tests := []struct {
		name    string
		input   map[string]any
		want    *Params
		wantErr string
	}{
		{
			name:  "nothing configured",
			input: nil,
			want:  &Params{},
		},
		{
			name: "settings are stringified",
			input: map[string]any{
				"settings": map[string]any{"threads": 4, "memory_limit": "2GB"},
			},
			want: &Params{Settings: map[string]string{"threads": "4", "memory_limit": "2GB"}},
		},
		{
			name: "secret from yaml",
			input: map[string]any{
				"extensions": []any{"httpfs"},
				"secrets": []any{
					map[string]any{
						"type":      "s3",
						"provider":  "config",
						"scope":     []any{"s3://raw", "s3://curated"},
						"url_style": "path",
						"use_ssl":   "false",
					},
				},
			},
			want: &Params{
				Extensions: []string{"httpfs"},
				Secrets: []SecretConfig{{
					Type:     "s3",
					Provider: "config",
					Scope:    []any{"s3://raw", "s3://curated"},
					URLStyle: "path",
					UseSSL:   &useSSL,
				}},
			},
		},
		{
			name:    "unknown key",
			input:   map[string]any{"extension": []any{"httpfs"}},
			wantErr: "invalid duckdb params",
		},
		{
			name:    "wrong shape",
			input:   map[string]any{"secrets": "s3"},
			wantErr: "invalid duckdb params",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildCreateSecretSQL(t *testing.T) {
	useSSL := false

	tests := []struct {
		name string
		cfg  SecretConfig
		want string
	}{
		{
			name: "type only",
			cfg:  SecretConfig{Type: "gcs"},
			want: "CREATE SECRET (\n    TYPE gcs\n)",
		},
		{
			name: "scoped credential chain",
			cfg:  SecretConfig{Type: "s3", Provider: "credential_chain", Region: "eu-west-1", Scope: "s3://raw"},
			want: "CREATE SECRET (\n    TYPE s3,\n    PROVIDER credential_chain,\n    REGION 'eu-west-1',\n    SCOPE 's3://raw'\n)",
		},
		{
			name: "object store with endpoint",
			cfg: SecretConfig{
				Type:     "s3",
				KeyID:    "minio",
				Secret:   "it's secret",
				Endpoint: "localhost:9000",
				URLStyle: "path",
				Scope:    []string{"s3://a", "s3://b"},
				UseSSL:   &useSSL,
			},
			want: "CREATE SECRET (\n    TYPE s3,\n    SCOPE ('s3://a', 's3://b'),\n    KEY_ID 'minio',\n    SECRET 'it''s secret',\n" +
				"    ENDPOINT 'localhost:9000',\n    URL_STYLE 'path',\n    USE_SSL false\n)",
		},
		{
			name: "empty scope list is omitted",
			cfg:  SecretConfig{Type: "r2", Scope: []any{}},
			want: "CREATE SECRET (\n    TYPE r2\n)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildCreateSecretSQL(tt.cfg))
		})
	}
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(map[string]string{"c": "", "a": "", "b": ""}))
	assert.Empty(t, sortedKeys(nil))
}
