// Package config loads sweep's YAML configuration, following the
// same viper search-path and flag-override precedence as the rest of
// the ecosystem's CLI tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is sweep's full runtime configuration.
type Config struct {
	Concurrency   int          `mapstructure:"concurrency"`
	RatePerSecond float64      `mapstructure:"rate_per_second" yaml:"rate_per_second"`
	HTTPTimeout   string       `mapstructure:"http_timeout" yaml:"http_timeout"`
	DNSTimeout    string       `mapstructure:"dns_timeout" yaml:"dns_timeout"`
	DNS           DNSConfig    `mapstructure:"dns"`
	Enumeration   EnumConfig   `mapstructure:"enumeration"`
	Output        OutputConfig `mapstructure:"output"`
}

// DNSConfig controls how the resolver layer performs lookups.
type DNSConfig struct {
	UseDig  bool     `mapstructure:"use_dig" yaml:"use_dig"`
	DigPath string   `mapstructure:"dig_path" yaml:"dig_path"`
	Servers []string `mapstructure:"servers"`
}

// EnumConfig controls which enumeration sources participate.
type EnumConfig struct {
	AXFR      bool `mapstructure:"axfr"`
	Subfinder bool `mapstructure:"subfinder"`
}

// OutputConfig controls reporting verbosity and format.
type OutputConfig struct {
	Format  string `mapstructure:"format"` // "table" or "json"
	Debug   bool   `mapstructure:"debug"`
	Quiet   bool   `mapstructure:"quiet"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
}

// Load reads and parses sweep's configuration from a YAML file. If path
// is empty, it searches for sweep.yaml in the current directory,
// ./configs, and ~/.config/sweep/, in that order, falling back to
// Default() when no file is found anywhere.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	bindDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sweep")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "sweep"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file anywhere in the search path — defaults stand.
		return cfg, nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("concurrency", cfg.Concurrency)
	v.SetDefault("rate_per_second", cfg.RatePerSecond)
	v.SetDefault("http_timeout", cfg.HTTPTimeout)
	v.SetDefault("dns_timeout", cfg.DNSTimeout)
	v.SetDefault("dns.use_dig", cfg.DNS.UseDig)
	v.SetDefault("dns.dig_path", cfg.DNS.DigPath)
	v.SetDefault("dns.servers", cfg.DNS.Servers)
	v.SetDefault("enumeration.axfr", cfg.Enumeration.AXFR)
	v.SetDefault("enumeration.subfinder", cfg.Enumeration.Subfinder)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.debug", cfg.Output.Debug)
	v.SetDefault("output.quiet", cfg.Output.Quiet)
	v.SetDefault("output.no_color", cfg.Output.NoColor)
}

// Validate rejects non-positive durations/counts that would otherwise
// surface as confusing zero-value behavior deep in the scanner.
func (c *Config) Validate() error {
	var errs []error

	if c.Concurrency <= 0 {
		errs = append(errs, errors.New("concurrency must be positive"))
	}
	if c.RatePerSecond <= 0 {
		errs = append(errs, errors.New("rate_per_second must be positive"))
	}
	if d, err := parseDuration(c.HTTPTimeout); err != nil {
		errs = append(errs, fmt.Errorf("http_timeout: %w", err))
	} else if d <= 0 {
		errs = append(errs, errors.New("http_timeout must be positive"))
	}
	if d, err := parseDuration(c.DNSTimeout); err != nil {
		errs = append(errs, fmt.Errorf("dns_timeout: %w", err))
	} else if d <= 0 {
		errs = append(errs, errors.New("dns_timeout must be positive"))
	}
	if c.Output.Format != "table" && c.Output.Format != "json" {
		errs = append(errs, fmt.Errorf("output.format must be \"table\" or \"json\", got %q", c.Output.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
