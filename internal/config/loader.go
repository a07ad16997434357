package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/leapmodel/pkg/geo"
	"github.com/spf13/pflag"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "leapmodel.yaml"
	ConfigFileNameAlt = "leapmodel.yml"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "LEAPMODEL_"

// Result is a loaded configuration and the file it came from, if any.
type Result struct {
	Config   *Config
	FileUsed string
}

// findConfigFile finds the config file to use.
// Priority: explicit path > leapmodel.yaml > leapmodel.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads configuration from defaults, the config file, environment
// variables and explicitly changed flags, in increasing precedence.
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Result, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"state_path":         DefaultStateFile,
		"verbose":            false,
		"output":             DefaultOutput,
		"geo.dimension_name": geo.DefaultDimensionName,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	fileUsed := findConfigFile(cfgFile)
	if fileUsed != "" {
		if err := k.Load(file.Provider(fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", fileUsed, err)
		}
	}

	// LEAPMODEL_TARGET__TYPE -> target.type, LEAPMODEL_STATE_PATH -> state_path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// --state is the short form of state_path
			if key == "state" {
				return "state_path", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				aliasListHook(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Metadata:         nil,
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &Result{Config: &cfg, FileUsed: fileUsed}, nil
}

func finalize(cfg *Config) error {
	switch cfg.OutputFormat {
	case OutputTable, OutputXML, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q (expected %s, %s or %s)", cfg.OutputFormat, OutputTable, OutputXML, OutputJSON)
	}

	if len(cfg.Geo.Roles) == 0 {
		cfg.Geo.Roles = geo.DefaultConfig().Roles
	}
	if cfg.Geo.DimensionName == "" {
		cfg.Geo.DimensionName = geo.DefaultDimensionName
	}

	if cfg.Target != nil {
		ApplyTargetDefaults(cfg.Target)
		expandTargetEnvVars(cfg.Target)
		if err := cfg.Target.Validate(); err != nil {
			return fmt.Errorf("invalid target configuration: %w", err)
		}
	}
	return nil
}

// aliasListHook lets a role's aliases be written as one comma-separated
// string inside a YAML list, e.g. ["state, province", "st"].
func aliasListHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf([]string(nil)) || from.Kind() != reflect.Slice {
			return data, nil
		}
		items, ok := data.([]any)
		if !ok {
			return data, nil
		}
		var out []string
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return data, nil
			}
			out = append(out, geo.SplitAliases(s)...)
		}
		return out, nil
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
// Unset variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}

func expandTargetEnvVars(t *TargetConfig) {
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
}
