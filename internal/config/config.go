package config

import (
	"github.com/Alp4ka/pagesearch/internal/logger"
)

type Config struct {
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Database DatabaseConfig      `mapstructure:"database"`
	Storage  StorageConfig       `mapstructure:"storage"`
	HTTP     HTTPConfig          `mapstructure:"http"`
}

type DatabaseConfig struct {
	// Driver selects the GORM dialector.
	Driver string `mapstructure:"driver" validate:"oneof=sqlite mysql postgres"`
	DSN    string `mapstructure:"dsn" validate:"required"`
	// SlowQueryThreshold - statements slower than this are logged at warn level.
	SlowQueryThreshold string `mapstructure:"slowQueryThreshold"`
}

type StorageConfig struct {
	// Engine selects the pagesearch.Store implementation.
	Engine string `mapstructure:"engine" validate:"oneof=gorm sqlx"`
	// Metrics wraps the store with prometheus instrumentation.
	Metrics bool `mapstructure:"metrics"`
}

type HTTPConfig struct {
	Addr        string `mapstructure:"addr" validate:"required"`
	MaxPageSize int    `mapstructure:"maxPageSize" validate:"gte=1"`
}
