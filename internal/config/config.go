package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbsim/internal/orbital"
)

const (
	SecondsPerDay = 86400.0

	DefaultFPS         = 60
	DefaultTimeStep    = 10 * SecondsPerDay / DefaultFPS // 10 days per second of wall time
	DefaultSubSteps    = 10
	DefaultDays        = 365.0
	DefaultFieldBodies = orbital.DefaultFieldBodies
	DefaultSampleEvery = 10
	DefaultShipMass    = 1e5
)

type Config struct {
	Mode        string     `yaml:"mode"`
	TimeStep    float64    `yaml:"time_step"`
	SubSteps    int        `yaml:"sub_steps"`
	Days        float64    `yaml:"days"`
	FieldBodies int        `yaml:"field_bodies"`
	Seed        int64      `yaml:"seed"`
	SampleEvery int        `yaml:"sample_every"`
	FPS         int        `yaml:"fps"`
	Ship        ShipConfig `yaml:"ship"`
}

type ShipConfig struct {
	Enabled  bool       `yaml:"enabled"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Mass     float64    `yaml:"mass"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:        orbital.Gravity.String(),
		TimeStep:    DefaultTimeStep,
		SubSteps:    DefaultSubSteps,
		Days:        DefaultDays,
		FieldBodies: DefaultFieldBodies,
		SampleEvery: DefaultSampleEvery,
		FPS:         DefaultFPS,
		Ship: ShipConfig{
			Mass: DefaultShipMass,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over a copy of base; keys absent from the file keep
// base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the simulation cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if _, err := orbital.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("time_step must be positive, got %g", c.TimeStep))
	}
	if c.SubSteps <= 0 {
		errs = append(errs, fmt.Errorf("sub_steps must be positive, got %d", c.SubSteps))
	}
	if c.Days <= 0 {
		errs = append(errs, fmt.Errorf("days must be positive, got %g", c.Days))
	}
	if c.FieldBodies < 0 {
		errs = append(errs, fmt.Errorf("field_bodies must not be negative, got %d", c.FieldBodies))
	}
	if c.SampleEvery <= 0 {
		errs = append(errs, fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery))
	}
	return errors.Join(errs...)
}

// ForceModel returns the parsed mode.
func (c *Config) ForceModel() (orbital.Mode, error) {
	return orbital.ParseMode(c.Mode)
}

// Steps is the number of simulation steps that cover Days.
func (c *Config) Steps() int {
	return int(c.Days * SecondsPerDay / c.TimeStep)
}

// Options translates the config into simulation options.
func (c *Config) Options() []orbital.Option {
	opts := []orbital.Option{
		orbital.WithFieldBodies(c.FieldBodies),
		orbital.WithSeed(uint64(c.Seed)),
	}
	if c.Ship.Enabled {
		opts = append(opts, orbital.WithShip(c.Ship.New()))
	}
	return opts
}
