package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/fluted/departureboard/pkg/transit"
)

// Stop is one configured stop place entry.
type Stop struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
	Mode string `json:"type" yaml:"type"`
}

// API points at the journey planner endpoint.
type API struct {
	BaseURL    string `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
	ClientName string `json:"clientName" yaml:"clientName" validate:"required"`
}

// Settings holds the board behaviour knobs.
type Settings struct {
	NumberOfDepartures int    `json:"numberOfDepartures" yaml:"numberOfDepartures" validate:"gt=0"`
	RefreshIntervalMS  int    `json:"refreshInterval" yaml:"refreshInterval" validate:"gt=0"`
	Timezone           string `json:"timezone" yaml:"timezone" validate:"required"`
}

type Config struct {
	Stops    []Stop   `json:"stops" yaml:"stops" validate:"min=1,dive"`
	API      API      `json:"api" yaml:"api"`
	Settings Settings `json:"settings" yaml:"settings"`
}

// Default is the built-in configuration used whenever no usable config file
// is available. The board must always reach a running state.
func Default() Config {
	return Config{
		Stops: []Stop{
			{ID: "NSR:StopPlace:41939", Name: "Tram Stop", Mode: "tram"},
			{ID: "NSR:StopPlace:41936", Name: "Bus Stop", Mode: "bus"},
		},
		API: API{
			BaseURL:    "https://api.entur.io/journey-planner/v3/graphql",
			ClientName: "fluted-departureboard",
		},
		Settings: Settings{
			NumberOfDepartures: 3,
			RefreshIntervalMS:  30000,
			Timezone:           "Europe/Oslo",
		},
	}
}

// Load reads the config file at path and returns it with missing sections
// filled from the default. Any read, parse or validation failure substitutes
// the built-in default wholesale; Load never fails.
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to read config, using defaults")
		return Default()
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".yaml") || strings.EqualFold(filepath.Ext(path), ".yml") {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to parse config, using defaults")
		return Default()
	}

	cfg.fillDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Invalid config, using defaults")
		return Default()
	}

	log.Info().Str("path", path).Int("stops", len(cfg.Stops)).Msg("Loaded config")

	return cfg
}

// fillDefaults substitutes any missing section or value with its built-in
// counterpart, section by section.
func (c *Config) fillDefaults() {
	def := Default()

	if len(c.Stops) == 0 {
		c.Stops = def.Stops
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.ClientName == "" {
		c.API.ClientName = def.API.ClientName
	}
	if c.Settings.NumberOfDepartures == 0 {
		c.Settings.NumberOfDepartures = def.Settings.NumberOfDepartures
	}
	if c.Settings.RefreshIntervalMS == 0 {
		c.Settings.RefreshIntervalMS = def.Settings.RefreshIntervalMS
	}
	if c.Settings.Timezone == "" {
		c.Settings.Timezone = def.Settings.Timezone
	}
}

// TransitStops converts the configured stop entries into domain stops.
func (c Config) TransitStops() []transit.Stop {
	stops := make([]transit.Stop, 0, len(c.Stops))
	for _, stop := range c.Stops {
		stops = append(stops, transit.Stop{
			ID:   stop.ID,
			Name: stop.Name,
			Mode: transit.ParseTransportType(stop.Mode),
		})
	}

	return stops
}

// RefreshDuration returns the fetch period.
func (s Settings) RefreshDuration() time.Duration {
	return time.Duration(s.RefreshIntervalMS) * time.Millisecond
}

// Location resolves the configured IANA timezone, falling back to UTC when
// it cannot be loaded.
func (s Settings) Location() *time.Location {
	location, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", s.Timezone).Msg("Failed to load timezone, using UTC")
		return time.UTC
	}

	return location
}
