// Package config layers claudible's settings: built-in defaults, then the
// config file, then CLAUDIBLE_* environment variables, then flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/qwertykeith/claudible/internal/audio"
	"github.com/qwertykeith/claudible/internal/log"
	"github.com/qwertykeith/claudible/internal/material"
)

const (
	KeySet       = "set"
	KeyCharacter = "character"
	KeyVolume    = "volume"
	KeyAttention = "attention"
	KeyReverse   = "reverse"
	KeyBackend   = "backend"
	KeyMaterials = "materials"
	KeyLogLevel  = "log-level"
	KeyMasterBus = "master-bus"

	EnvPrefix = "CLAUDIBLE"
)

type Config struct {
	Set       string  `mapstructure:"set" yaml:"set"`
	Character string  `mapstructure:"character" yaml:"character"`
	Volume    float64 `mapstructure:"volume" yaml:"volume"`
	Attention float64 `mapstructure:"attention" yaml:"attention"` // seconds
	Reverse   bool    `mapstructure:"reverse" yaml:"reverse"`
	Backend   string  `mapstructure:"backend" yaml:"backend"`
	Materials string  `mapstructure:"materials" yaml:"materials"`
	LogLevel  string  `mapstructure:"log-level" yaml:"log-level"`
	MasterBus bool    `mapstructure:"master-bus" yaml:"master-bus"`
}

func Defaults() Config {
	return Config{
		Set:       material.DefaultSet,
		Volume:    0.5,
		Attention: 30,
		Backend:   string(audio.DefaultKind),
		LogLevel:  "warn",
	}
}

// Dir is where the config file is looked up when none is given.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "claudible")
}

// Load reads configuration into v's layers and decodes it. An explicit path
// must exist; the default location is optional.
func Load(v *viper.Viper, path string) (Config, error) {
	return LoadWithDefaults(v, path, Defaults())
}

// LoadWithDefaults is Load with a caller-supplied bottom layer, for
// commands whose defaults differ from claudible's.
func LoadWithDefaults(v *viper.Viper, path string, def Config) (Config, error) {
	v.SetDefault(KeySet, def.Set)
	v.SetDefault(KeyCharacter, def.Character)
	v.SetDefault(KeyVolume, def.Volume)
	v.SetDefault(KeyAttention, def.Attention)
	v.SetDefault(KeyReverse, def.Reverse)
	v.SetDefault(KeyBackend, def.Backend)
	v.SetDefault(KeyMaterials, def.Materials)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyMasterBus, def.MasterBus)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if dir := Dir(); dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug(log.CatConfig, "Config file loaded", "path", used)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate clamps the volume into [0, 1] and rejects values that cannot
// run.
func (c *Config) Validate() error {
	if math.IsNaN(c.Volume) {
		return errors.New("volume is not a number")
	}
	c.Volume = min(max(c.Volume, 0), 1)
	if c.Attention <= 0 || math.IsNaN(c.Attention) {
		return fmt.Errorf("attention must be a positive number of seconds, got %v", c.Attention)
	}
	if _, err := audio.ParseKind(c.Backend); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Set == "" {
		c.Set = material.DefaultSet
	}
	return nil
}
