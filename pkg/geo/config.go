package geo

// Config describes the geographic roles to recognize.
type Config struct {
	DimensionName string       `koanf:"dimension_name"`
	Roles         []RoleConfig `koanf:"roles"`
}

// RoleConfig describes one role.
type RoleConfig struct {
	Name    string   `koanf:"name"`
	Aliases []string `koanf:"aliases"`
}

// DefaultConfig returns the built-in roles, coarsest first.
func DefaultConfig() Config {
	return Config{
		DimensionName: DefaultDimensionName,
		Roles: []RoleConfig{
			{Name: "Continent", Aliases: []string{"continent"}},
			{Name: "Country", Aliases: []string{"country", "ctry", "nation", "country name", "country code"}},
			{Name: "State", Aliases: []string{"state", "st", "province", "state province"}},
			{Name: "County", Aliases: []string{"county", "parish", "district"}},
			{Name: "City", Aliases: []string{"city", "town", "municipality"}},
			{Name: "Postal_Code", Aliases: []string{"zip", "zip code", "zipcode", "postal code", "postcode"}},
			{Name: "Latitude", Aliases: []string{"lat", "latitude"}},
			{Name: "Longitude", Aliases: []string{"lon", "long", "lng", "longitude"}},
		},
	}
}

// NewContextFromConfig builds a context from configuration. Roles without a
// name are skipped.
func NewContextFromConfig(cfg Config) *Context {
	ctx := NewContext(cfg.DimensionName)
	for _, rc := range cfg.Roles {
		if rc.Name == "" {
			continue
		}
		var aliases []string
		for _, a := range rc.Aliases {
			aliases = append(aliases, SplitAliases(a)...)
		}
		ctx.Roles = append(ctx.Roles, NewRole(rc.Name, aliases...))
	}
	return ctx
}

// Default returns a context over the built-in roles.
func Default() *Context {
	return NewContextFromConfig(DefaultConfig())
}
