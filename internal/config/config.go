// Package config loads the service configuration from the environment.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT" validate:"required"`
	AdminPort string `mapstructure:"ADMIN_PORT" validate:"required"`

	StorageDriver   string `mapstructure:"STORAGE_DRIVER" validate:"required,oneof=mongo postgres sqlite memory"`
	MongoURI        string `mapstructure:"MONGO_URI" validate:"required_if=StorageDriver mongo"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE" validate:"required_if=StorageDriver mongo"`
	MongoCollection string `mapstructure:"MONGO_COLLECTION" validate:"required_if=StorageDriver mongo"`
	DatabaseDSN     string `mapstructure:"DATABASE_DSN" validate:"required_if=StorageDriver postgres,required_if=StorageDriver sqlite"`

	// RabbitMQURL is optional; product events are not published without it.
	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	RabbitMQQueue string `mapstructure:"RABBITMQ_QUEUE" validate:"required_with=RabbitMQURL"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

var defaults = map[string]interface{}{
	"APP_PORT":         ":8080",
	"ADMIN_PORT":       ":9090",
	"STORAGE_DRIVER":   DriverMongo,
	"MONGO_URI":        "mongodb://127.0.0.1:27017",
	"MONGO_DATABASE":   "testProductDB",
	"MONGO_COLLECTION": "products",
	"DATABASE_DSN":     "file:products.db?cache=shared",
	"RABBITMQ_URL":     "",
	"RABBITMQ_QUEUE":   "product_events",
	"LOG_LEVEL":        "info",
	"LOG_PRETTY":       false,
}

// Load reads configuration from environment variables on top of defaults
// and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv() // Load environment variables

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
