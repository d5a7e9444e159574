package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/tluyben/hn-top/hn"
)

// Config holds the runtime settings. Every key can be set in hn.yaml or
// through an HN_-prefixed environment variable, e.g. HN_API_BASE.
type Config struct {
	APIBase     string        `mapstructure:"api_base"`
	Count       int           `mapstructure:"count"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	Verbose     bool          `mapstructure:"verbose"`
	Listen      string        `mapstructure:"listen"`
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_base", hn.DefaultAPIBase)
	v.SetDefault("count", 15)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("concurrency", 15)
	v.SetDefault("verbose", false)
	v.SetDefault("listen", ":8080")
}

// Load reads configuration into v from file, or from hn.yaml in the
// working directory or $HOME/.config/hn when file is empty. A missing
// default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("HN")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("hn")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hn")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with
func (c Config) Validate() error {
	if c.APIBase == "" {
		return errors.New("config: api_base must not be empty")
	}
	if c.Count <= 0 {
		return fmt.Errorf("config: count must be positive, got %d", c.Count)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config: concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// ClientOptions returns the hn client settings
func (c Config) ClientOptions() hn.Options {
	return hn.Options{
		APIBase:     c.APIBase,
		Timeout:     c.Timeout,
		Concurrency: c.Concurrency,
		Verbose:     c.Verbose,
	}
}
