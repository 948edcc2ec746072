package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"satscan/internal/geom"
	"satscan/internal/patrol"
)

// Config holds runtime parameters for the service and the scene it runs.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogJSON  bool   `json:"log_json" yaml:"log_json" toml:"log_json"`
	// TickMS is the fixed simulation step in milliseconds.
	TickMS int `json:"tick_ms" yaml:"tick_ms" toml:"tick_ms"`
	// OTLPEndpoint is an OTLP/HTTP collector URL; empty disables tracing.
	OTLPEndpoint string      `json:"otlp_endpoint" yaml:"otlp_endpoint" toml:"otlp_endpoint"`
	CORS         CORSConfig  `json:"cors" yaml:"cors" toml:"cors"`
	Scene        SceneConfig `json:"scene" yaml:"scene" toml:"scene"`
}

type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// SceneConfig lays out one scene.
type SceneConfig struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	// Boundary is the volume the satellite patrols.
	Boundary geom.Bounds `json:"boundary" yaml:"boundary" toml:"boundary"`
	// View is the visible region; leaving it triggers repositioning.
	// Empty means the satellite is always visible.
	View      geom.Bounds     `json:"view" yaml:"view" toml:"view"`
	Satellite SatelliteConfig `json:"satellite" yaml:"satellite" toml:"satellite"`
	Scouts    []ScoutConfig   `json:"scouts" yaml:"scouts" toml:"scouts"`
	Army      ArmyConfig      `json:"army" yaml:"army" toml:"army"`
}

// SatelliteConfig places the satellite. Position and Speed are pointers so
// the origin and a zero speed stay expressible; nil means unset.
type SatelliteConfig struct {
	Position  *geom.Vec3       `json:"position" yaml:"position" toml:"position"`
	Direction patrol.Direction `json:"direction" yaml:"direction" toml:"direction"`
	Speed     *float64         `json:"speed" yaml:"speed" toml:"speed"`
	TargetTag string           `json:"target_tag" yaml:"target_tag" toml:"target_tag"`
}

type ScoutConfig struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Position geom.Vec3 `json:"position" yaml:"position" toml:"position"`
	Step     float64   `json:"step" yaml:"step" toml:"step"`
}

// ArmyConfig places the army unit; a nil Position means unset.
type ArmyConfig struct {
	Position *geom.Vec3 `json:"position" yaml:"position" toml:"position"`
	Tag      string     `json:"tag" yaml:"tag" toml:"tag"`
}

// Float returns a pointer to v, for optional numeric settings.
func Float(v float64) *float64 { return &v }

// Point returns a pointer to v, for optional positions.
func Point(v geom.Vec3) *geom.Vec3 { return &v }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := ResolvePath(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Default returns the stock scene: a satellite sweeping x in [-5,5] at
// height 3, one scout at the origin and the army unit beside it.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.TickMS <= 0 {
		c.TickMS = 16
	}
	s := &c.Scene
	if s.Name == "" {
		s.Name = "main"
	}
	if s.Boundary.Empty() {
		s.Boundary = geom.BoundsMinMax(geom.Vec3{X: -5, Y: 2, Z: -1}, geom.Vec3{X: 5, Y: 4, Z: 1})
	}
	if s.Satellite.Position == nil {
		s.Satellite.Position = Point(s.Boundary.Center)
	}
	if s.Satellite.Speed == nil {
		s.Satellite.Speed = Float(1)
	}
	if s.Satellite.TargetTag == "" {
		s.Satellite.TargetTag = patrol.DefaultTargetTag
	}
	if len(s.Scouts) == 0 {
		s.Scouts = []ScoutConfig{{Name: "scout"}}
	}
	for i := range s.Scouts {
		if s.Scouts[i].Name == "" {
			s.Scouts[i].Name = fmt.Sprintf("scout-%d", i+1)
		}
	}
	if s.Army.Tag == "" {
		s.Army.Tag = s.Satellite.TargetTag
	}
	if s.Army.Position == nil {
		s.Army.Position = Point(geom.Vec3{X: 2})
	}
}

// Tick returns the simulation step as a duration.
func (c Config) Tick() time.Duration { return time.Duration(c.TickMS) * time.Millisecond }

// envOverrides lists the SATSCAN_* variables. Zero values leave the file
// config untouched.
type envOverrides struct {
	Addr        string   `env:"ADDR"`
	LogLevel    string   `env:"LOG_LEVEL"`
	LogJSON     bool     `env:"LOG_JSON"`
	TickMS      int      `env:"TICK_MS"`
	Scene       string   `env:"SCENE"`
	OTLP        string   `env:"OTEL_ENDPOINT"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// FromEnv overrides fields from SATSCAN_* environment variables.
func (c *Config) FromEnv() error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "SATSCAN_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogJSON {
		c.LogJSON = true
	}
	if o.TickMS > 0 {
		c.TickMS = o.TickMS
	}
	if o.Scene != "" {
		c.Scene.Name = o.Scene
	}
	if o.OTLP != "" {
		c.OTLPEndpoint = o.OTLP
	}
	if len(o.CORSOrigins) > 0 {
		c.CORS.Enabled = true
		c.CORS.Origins = o.CORSOrigins
	}
	return nil
}
