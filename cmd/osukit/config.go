package main

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config is the osukit CLI configuration.
type Config struct {
	LogLevel slog.Level `yaml:"log_level"`
	Database string     `yaml:"database"`
	Songs    string     `yaml:"songs"`
	API      APIConfig  `yaml:"api"`
}

// APIConfig holds osu! OAuth application credentials.
type APIConfig struct {
	ClientID     int    `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Database, validation.Required),
	)
}

// NewDefaultConfig returns the configuration used when no file is present.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: slog.LevelInfo,
		Database: "osukit.db",
	}
}
