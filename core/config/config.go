package config

import (
	"fmt"
	"reflect"
	"strings"

	"testset-sync/core/database"
	"testset-sync/core/logger"
	"testset-sync/core/results"
	"testset-sync/core/server"
	"testset-sync/core/storage"
	"testset-sync/core/testrepo"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the test-management database.
	Database database.Config `mapstructure:"database"`
	// Repository addresses the project, user and test-set folder.
	Repository testrepo.Config `mapstructure:"repository"`
	// Results locates and parses result files.
	Results results.Config `mapstructure:"results"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. RESULTS_DELIMITER -> results.delimiter)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports settings that would make every run fail.
func (c *Config) Validate() error {
	if _, err := c.Results.DelimiterRune(); err != nil {
		return fmt.Errorf("invalid results.delimiter: %w", err)
	}
	if !c.Results.IsValidSource() {
		return fmt.Errorf("invalid results.source %q (want %s or %s)", c.Results.Source, results.SourceLocal, results.SourceStorage)
	}
	if c.Repository.CacheTTLSeconds < 0 {
		return fmt.Errorf("invalid repository.cache_ttl_seconds: %d", c.Repository.CacheTTLSeconds)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
