// Package config loads mudra settings from MUDRA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration of the mudra binary.
type Config struct {
	Addr      string `env:"MUDRA_ADDR"       envDefault:":8080"`
	StaticDir string `env:"MUDRA_STATIC_DIR"`
	LogLevel  string `env:"MUDRA_LOG_LEVEL"  envDefault:"info"`
	Tray      bool   `env:"MUDRA_TRAY"       envDefault:"false"`

	CameraID        int     `env:"MUDRA_CAMERA_ID"        envDefault:"0"`
	MotionThreshold float64 `env:"MUDRA_MOTION_THRESHOLD" envDefault:"1.0"`

	MaxHands      int     `env:"MUDRA_MAX_HANDS"      envDefault:"2"`
	MinConfidence float64 `env:"MUDRA_MIN_CONFIDENCE" envDefault:"0.8"`

	Capacity   int           `env:"MUDRA_CAPACITY"    envDefault:"6"`
	Cooldown   time.Duration `env:"MUDRA_COOLDOWN"    envDefault:"2s"`
	ResetDelay time.Duration `env:"MUDRA_RESET_DELAY" envDefault:"3s"`

	PluginDir        string        `env:"MUDRA_PLUGIN_DIR"`
	CompletionPlugin string        `env:"MUDRA_COMPLETION_PLUGIN"`
	PluginTimeout    time.Duration `env:"MUDRA_PLUGIN_TIMEOUT"    envDefault:"5s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.MaxHands < 1 {
		return fmt.Errorf("max hands must be at least 1, got %d", c.MaxHands)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in [0,1], got %g", c.MinConfidence)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.Cooldown <= 0 || c.ResetDelay <= 0 {
		return errors.New("cooldown and reset delay must be positive")
	}
	if c.CompletionPlugin != "" && c.PluginDir == "" {
		return errors.New("completion plugin requires a plugin dir")
	}
	return nil
}
