package config

import (
	"log"

	"github.com/spf13/viper"
)

type DatasetConfig struct {
	// Dir is where the extracted CSV files live.
	Dir string `mapstructure:"dir"`
	// URL of the zip archive holding the three CSV files. Only fetched when
	// the files are not already present in Dir.
	URL               string `mapstructure:"url"`
	StatusFile        string `mapstructure:"status_file"`
	BusinessHoursFile string `mapstructure:"business_hours_file"`
	TimezonesFile     string `mapstructure:"timezones_file"`
}

type Config struct {
	ServerPort      string        `mapstructure:"server_port"`
	Environment     string        `mapstructure:"environment"`
	DefaultTimezone string        `mapstructure:"default_timezone"`
	Dataset         DatasetConfig `mapstructure:"dataset"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
// A missing config file is fine; defaults cover every key.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatalf("Error reading config file: %v", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}
	if config.Environment == "" {
		config.Environment = "production"
	}
	if config.DefaultTimezone == "" {
		config.DefaultTimezone = "America/Chicago"
	}
	if config.Dataset.Dir == "" {
		config.Dataset.Dir = "data"
	}
	if config.Dataset.StatusFile == "" {
		config.Dataset.StatusFile = "store_status.csv"
	}
	if config.Dataset.BusinessHoursFile == "" {
		config.Dataset.BusinessHoursFile = "business_hours.csv"
	}
	if config.Dataset.TimezonesFile == "" {
		config.Dataset.TimezonesFile = "timezones.csv"
	}

	return &config
}

// IsDevelopment reports whether error responses may carry full detail.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
