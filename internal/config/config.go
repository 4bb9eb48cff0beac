package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the static parameter set shared read-only by every wave and
// session. Build it once with Defaults or Load and pass it by pointer.
type Config struct {
	Screen      ScreenConfig  `toml:"screen" yaml:"screen"`
	Ship        ShipConfig    `toml:"ship" yaml:"ship"`
	Alien       AlienConfig   `toml:"alien" yaml:"alien"`
	Bolt        BoltConfig    `toml:"bolt" yaml:"bolt"`
	DefenseLine float64       `toml:"defense_line" yaml:"defense_line"` // y of the line, measured up from the bottom
	Seed        int64         `toml:"seed" yaml:"seed"`                 // 0 = time based
	Logging     LoggingConfig `toml:"logging" yaml:"logging"`
}

type ScreenConfig struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

type ShipConfig struct {
	Width             float64 `toml:"width" yaml:"width"`
	Height            float64 `toml:"height" yaml:"height"`
	Bottom            float64 `toml:"bottom" yaml:"bottom"` // spawn centre y
	Speed             float64 `toml:"speed" yaml:"speed"`   // px per frame
	Lives             int     `toml:"lives" yaml:"lives"`
	DeathFrames       int     `toml:"death_frames" yaml:"death_frames"`
	DeathFrameSeconds float64 `toml:"death_frame_seconds" yaml:"death_frame_seconds"`
}

type AlienConfig struct {
	Width       float64 `toml:"width" yaml:"width"`
	Height      float64 `toml:"height" yaml:"height"`
	HSep        float64 `toml:"h_sep" yaml:"h_sep"`
	VSep        float64 `toml:"v_sep" yaml:"v_sep"`
	Ceiling     float64 `toml:"ceiling" yaml:"ceiling"` // gap between the top row and the top of the screen
	Rows        int     `toml:"rows" yaml:"rows"`
	Columns     int     `toml:"columns" yaml:"columns"`
	HWalk       float64 `toml:"h_walk" yaml:"h_walk"`
	VWalk       float64 `toml:"v_walk" yaml:"v_walk"`
	StepSeconds float64 `toml:"step_seconds" yaml:"step_seconds"`
}

type BoltConfig struct {
	Width           float64 `toml:"width" yaml:"width"`
	Height          float64 `toml:"height" yaml:"height"`
	Speed           float64 `toml:"speed" yaml:"speed"` // px per frame
	MaxFireInterval int     `toml:"max_fire_interval" yaml:"max_fire_interval"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	Output string `toml:"output" yaml:"output"` // file path; empty = stderr
}

// Load reads a .toml or .yaml/.yml file over Defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the classic cabinet layout: an 800x700 playfield with five
// rows of twelve aliens.
func Defaults() *Config {
	const alienSize = 33
	return &Config{
		Screen: ScreenConfig{
			Width:  800,
			Height: 700,
		},
		Ship: ShipConfig{
			Width:             44,
			Height:            44,
			Bottom:            32,
			Speed:             5,
			Lives:             3,
			DeathFrames:       8,
			DeathFrameSeconds: 0.3 / 8,
		},
		Alien: AlienConfig{
			Width:       alienSize,
			Height:      alienSize,
			HSep:        16,
			VSep:        16,
			Ceiling:     100,
			Rows:        5,
			Columns:     12,
			HWalk:       alienSize / 4,
			VWalk:       alienSize / 2,
			StepSeconds: 1.0,
		},
		Bolt: BoltConfig{
			Width:           4,
			Height:          16,
			Speed:           10,
			MaxFireInterval: 5,
		},
		DefenseLine: 100,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first parameter that would break the simulation.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"screen.width", c.Screen.Width},
		{"screen.height", c.Screen.Height},
		{"ship.width", c.Ship.Width},
		{"ship.height", c.Ship.Height},
		{"ship.death_frame_seconds", c.Ship.DeathFrameSeconds},
		{"alien.width", c.Alien.Width},
		{"alien.height", c.Alien.Height},
		{"alien.step_seconds", c.Alien.StepSeconds},
		{"bolt.width", c.Bolt.Width},
		{"bolt.height", c.Bolt.Height},
		{"bolt.speed", c.Bolt.Speed},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalid, p.name, p.v)
		}
	}
	switch {
	case c.Ship.Speed < 0:
		return fmt.Errorf("%w: ship.speed must be >= 0", ErrInvalid)
	case c.Ship.Lives < 1:
		return fmt.Errorf("%w: ship.lives must be >= 1", ErrInvalid)
	case c.Ship.DeathFrames < 1:
		return fmt.Errorf("%w: ship.death_frames must be >= 1", ErrInvalid)
	case c.Alien.Rows < 0 || c.Alien.Columns < 0:
		return fmt.Errorf("%w: alien grid %dx%d", ErrInvalid, c.Alien.Rows, c.Alien.Columns)
	case c.Alien.HWalk < 0 || c.Alien.VWalk < 0:
		return fmt.Errorf("%w: alien walk distances must be >= 0", ErrInvalid)
	case c.Bolt.MaxFireInterval < 1:
		return fmt.Errorf("%w: bolt.max_fire_interval must be >= 1", ErrInvalid)
	case c.DefenseLine < 0 || c.DefenseLine >= c.Screen.Height:
		return fmt.Errorf("%w: defense_line %v outside screen", ErrInvalid, c.DefenseLine)
	}
	return nil
}

// ShipSpawn is the centre the ship starts from and respawns at.
func (c *Config) ShipSpawn() (x, y float64) {
	return c.Screen.Width / 2, c.Ship.Bottom
}

// LoadOrDefaults loads path, or returns Defaults when path is empty.
func LoadOrDefaults(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	return Load(path)
}
