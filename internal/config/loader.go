package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the configuration file at path, overlays APP_* environment
// variables (APP_DATABASE_DSN overrides database.dsn) and validates the result.
// An empty path loads from defaults and environment only. A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.env", "prod")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:pagesearch.db?cache=shared")
	v.SetDefault("database.slowQueryThreshold", "200ms")
	v.SetDefault("storage.engine", "gorm")
	v.SetDefault("storage.metrics", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.maxPageSize", 100)
}
