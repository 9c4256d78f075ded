package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns a Config with sensible out-of-the-box values — what
// sweep runs with if no sweep.yaml is ever found.
func Default() *Config {
	return &Config{
		Concurrency:   50,
		RatePerSecond: 10,
		HTTPTimeout:   "10s",
		DNSTimeout:    "5s",
		DNS: DNSConfig{
			UseDig:  true,
			DigPath: "dig",
			Servers: []string{"1.1.1.1:53", "8.8.8.8:53"},
		},
		Enumeration: EnumConfig{
			AXFR:      false,
			Subfinder: true,
		},
		Output: OutputConfig{
			Format:  "table",
			Debug:   false,
			Quiet:   false,
			NoColor: false,
		},
	}
}

// WriteDefault writes a default sweep.yaml to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
