// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New(); Load layers a YAML file and the environment on top.
// - Validation runs once, after layering, through Validate.
// - External errors are wrapped with this package's sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// MatchesPath and DeliveriesPath locate the two CSV record sets.
	MatchesPath    string `koanf:"matches_path" validate:"required"`
	DeliveriesPath string `koanf:"deliveries_path" validate:"required"`

	// LogoPath optionally replaces the embedded branding image.
	LogoPath string `koanf:"logo_path"`

	// VenueMappingPath optionally extends the built-in venue table (YAML).
	VenueMappingPath string `koanf:"venue_mapping_path"`

	// SeasonFrom and SeasonTo bound the season trend, inclusive.
	SeasonFrom int `koanf:"season_from" validate:"gte=1900"`
	SeasonTo   int `koanf:"season_to" validate:"gtefield=SeasonFrom"`

	// TopN sizes the top scorer and wicket taker charts.
	TopN int `koanf:"top_n" validate:"gte=1,ltefield=MaxTopLimit"`

	// VenueTopN sizes the venue count chart.
	VenueTopN int `koanf:"venue_top_n" validate:"gte=1"`

	// MaxTopLimit caps GET /api/{batters,bowlers}/top?limit.
	MaxTopLimit int `koanf:"max_top_limit" validate:"gte=1"`

	// ChartWidth and ChartHeight size every rendered chart in pixels.
	ChartWidth  int `koanf:"chart_width" validate:"gte=200"`
	ChartHeight int `koanf:"chart_height" validate:"gte=150"`

	// MetricsRefreshInterval sets how often the memory and goroutine gauges are polled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval" validate:"gte=1s"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		MatchesPath:    "data/matches.csv",
		DeliveriesPath: "data/deliveries.csv",
		SeasonFrom:     2008,
		SeasonTo:       2024,
		TopN:           20,
		VenueTopN:      10,
		MaxTopLimit:    100,
		ChartWidth:     960,
		ChartHeight:    480,

		MetricsRefreshInterval: 10 * time.Second,
	}
}
