package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "PATROL"

type Config struct {
	Sim     Sim     `mapstructure:"sim"`
	Log     Log     `mapstructure:"log"`
	Prefabs Prefabs `mapstructure:"prefabs"`
	Audio   Audio   `mapstructure:"audio"`
}

type Sim struct {
	TPS   int    `mapstructure:"tps"`
	Seed  int64  `mapstructure:"seed"`
	Ticks int    `mapstructure:"ticks"`
	Level string `mapstructure:"level"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Prefabs struct {
	// Dir is searched before the embedded prefabs. Empty disables disk lookups.
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

type Audio struct {
	Enabled    bool `mapstructure:"enabled"`
	SampleRate int  `mapstructure:"sample_rate"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sim.tps", 60)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.ticks", 3600)
	v.SetDefault("sim.level", "meadow")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.watch", true)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.sample_rate", 44100)
}

// Load reads defaults, then the optional config file at path, then PATROL_*
// environment variables (PATROL_SIM_SEED overrides sim.seed).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Sim.TPS <= 0 {
		errs = append(errs, fmt.Errorf("sim.tps must be positive, got %d", c.Sim.TPS))
	}
	if c.Sim.Ticks < 0 {
		errs = append(errs, fmt.Errorf("sim.ticks must not be negative, got %d", c.Sim.Ticks))
	}
	if c.Sim.Level == "" {
		errs = append(errs, errors.New("sim.level is required"))
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
