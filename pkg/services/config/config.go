package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const referenceDateLayout = "2006-01-02"

type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type Config struct {
	DBPath        string `mapstructure:"db_path" validate:"required"`
	ReferenceDate string `mapstructure:"reference_date"`
	Server        Server `mapstructure:"server"`
}

// LoadConfig loads configuration from the specified profile path
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	v.SetDefault("server.port", 8080)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ReferenceTime returns the pinned reference date when the profile sets one,
// otherwise the given fallback. Pinning keeps relative periods reproducible
// across runs.
func (c *Config) ReferenceTime(fallback time.Time) (time.Time, error) {
	if c.ReferenceDate == "" {
		return fallback, nil
	}
	ref, err := time.Parse(referenceDateLayout, c.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse reference_date: %w", err)
	}
	return ref, nil
}
