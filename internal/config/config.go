package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Data       DataConfig       `mapstructure:"data"`
	Globe      GlobeConfig      `mapstructure:"globe"`
	Scale      ScaleConfig      `mapstructure:"scale"`
	AutoRotate AutoRotateConfig `mapstructure:"autorotate"`
	Export     ExportConfig     `mapstructure:"export"`
}

type DataConfig struct {
	Borders   string `mapstructure:"borders"`
	Itinerary string `mapstructure:"itinerary"`
}

// GlobeConfig is the initial view. Scale applies to exports; the terminal
// view fits its initial scale to the screen.
type GlobeConfig struct {
	Sensitivity float64 `mapstructure:"sensitivity"`
	RotateLon   float64 `mapstructure:"rotate_lon"`
	RotateLat   float64 `mapstructure:"rotate_lat"`
	RotateRoll  float64 `mapstructure:"rotate_roll"`
	Scale       float64 `mapstructure:"scale"`
	PinRadius   float64 `mapstructure:"pin_radius"`
}

type ScaleConfig struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

type AutoRotateConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type ExportConfig struct {
	Width   int `mapstructure:"width"`
	Height  int `mapstructure:"height"`
	Quality int `mapstructure:"quality"`
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
// An empty path looks for config.yaml in the working directory; a missing
// default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("data.borders", "data/world.json")
	v.SetDefault("data.itinerary", "data/itin.json")
	v.SetDefault("globe.sensitivity", 75.0)
	v.SetDefault("globe.rotate_lon", 0.0)
	v.SetDefault("globe.rotate_lat", -30.0)
	v.SetDefault("globe.rotate_roll", 0.0)
	v.SetDefault("globe.scale", 250.0)
	v.SetDefault("globe.pin_radius", 1.3)
	v.SetDefault("scale.min", 10.0)
	v.SetDefault("scale.max", 2000.0)
	v.SetDefault("scale.step", 1.25)
	v.SetDefault("autorotate.enabled", true)
	v.SetDefault("autorotate.interval", "200ms")
	v.SetDefault("export.width", 960)
	v.SetDefault("export.height", 600)
	v.SetDefault("export.quality", 85)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: ITINGLOBE_GLOBE_SENSITIVITY → globe.sensitivity
	v.SetEnvPrefix("ITINGLOBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration values are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Globe.Sensitivity <= 0 {
		errs = append(errs, fmt.Sprintf("globe.sensitivity must be positive, got %v", c.Globe.Sensitivity))
	}
	if c.Globe.RotateLat <= -90 || c.Globe.RotateLat >= 90 {
		errs = append(errs, fmt.Sprintf("globe.rotate_lat must be within (-90, 90), got %v", c.Globe.RotateLat))
	}
	if c.Globe.Scale <= 0 {
		errs = append(errs, fmt.Sprintf("globe.scale must be positive, got %v", c.Globe.Scale))
	}
	if c.Globe.PinRadius <= 0 {
		errs = append(errs, "globe.pin_radius must be positive")
	}
	if !finite(c.Scale.Min) || !finite(c.Scale.Max) {
		errs = append(errs, fmt.Sprintf("scale bounds must be finite, got [%v, %v]", c.Scale.Min, c.Scale.Max))
	}
	if !(c.Scale.Min > 0) {
		errs = append(errs, "scale.min must be positive")
	}
	if !(c.Scale.Max >= c.Scale.Min) {
		errs = append(errs, fmt.Sprintf("scale.max (%v) must not be below scale.min (%v)", c.Scale.Max, c.Scale.Min))
	}
	if c.Scale.Step <= 1 {
		errs = append(errs, fmt.Sprintf("scale.step must be greater than 1, got %v", c.Scale.Step))
	}
	if c.AutoRotate.Interval <= 0 {
		errs = append(errs, "autorotate.interval must be positive")
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		errs = append(errs, fmt.Sprintf("export size must be positive, got %dx%d", c.Export.Width, c.Export.Height))
	}
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		errs = append(errs, fmt.Sprintf("export.quality must be 1-100, got %d", c.Export.Quality))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
