// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/litescript/ls-galaxy/internal/galaxy"
	"github.com/litescript/ls-galaxy/internal/logging"
	"github.com/litescript/ls-galaxy/internal/view"
)

// Frame rate bounds.
const (
	MinFPS = 5
	MaxFPS = 60
)

// Config holds every runtime setting. Flags in cmd/ls-galaxy override it.
type Config struct {
	LogLevel  string  `env:"LSG_LOG_LEVEL"  envDefault:"info"`
	LogFile   string  `env:"LSG_LOG_FILE"`
	Seed      uint64  `env:"LSG_SEED"       envDefault:"0"`
	Quality   string  `env:"LSG_QUALITY"    envDefault:"prototype"`
	Archetype string  `env:"LSG_ARCHETYPE"  envDefault:"spiral"`
	FPS       int     `env:"LSG_FPS"        envDefault:"30"`
	Sound     bool    `env:"LSG_SOUND"      envDefault:"false"`
	Volume    float64 `env:"LSG_VOLUME"     envDefault:"0.5"`
	MaxEvents int     `env:"LSG_MAX_EVENTS" envDefault:"50"`
}

// Load reads the given .env files (".env" when none are named), then parses
// the environment. Variables already set in the environment win over the
// file, and a missing file is not an error.
func Load(dotenv ...string) (Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks names and clamps ranges in place.
func (c *Config) Validate() error {
	if _, err := galaxy.ParseArchetype(c.Archetype); err != nil {
		return fmt.Errorf("archetype: %w", err)
	}
	if _, err := view.ParseQuality(c.Quality); err != nil {
		return fmt.Errorf("quality: %w", err)
	}
	if c.FPS < MinFPS {
		c.FPS = MinFPS
	}
	if c.FPS > MaxFPS {
		c.FPS = MaxFPS
	}
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	if c.MaxEvents <= 0 {
		c.MaxEvents = 50
	}
	return nil
}

// GalaxyArchetype returns the parsed initial archetype.
func (c Config) GalaxyArchetype() galaxy.Archetype {
	a, err := galaxy.ParseArchetype(c.Archetype)
	if err != nil {
		return galaxy.Spiral
	}
	return a
}

// ViewQuality returns the parsed particle quality.
func (c Config) ViewQuality() view.Quality {
	q, _ := view.ParseQuality(c.Quality)
	return q
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// FrameInterval returns the time between frames.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
