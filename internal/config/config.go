package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Cursor   CursorConfig   `mapstructure:"cursor"`
	Manifest ManifestConfig `mapstructure:"manifest"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

type InputConfig struct {
	File string `mapstructure:"file"`
}

type OutputConfig struct {
	SQLite  string `mapstructure:"sqlite"`
	Table   string `mapstructure:"table"`
	CSV     string `mapstructure:"csv"`
	Parquet string `mapstructure:"parquet"`
}

type CursorConfig struct {
	Backend string `mapstructure:"backend"` // pebble|badger|memory
	Dir     string `mapstructure:"dir"`
	Since   string `mapstructure:"since"` // explicit watermark override, YYYY-MM-DD
}

type ManifestConfig struct {
	Dir            string `mapstructure:"dir"`
	Sink           string `mapstructure:"sink"` // file|kafka|both
	KafkaBootstrap string `mapstructure:"kafkaBootstrap"`
	Topic          string `mapstructure:"topic"`
	Key            string `mapstructure:"key"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the listener
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// LoadConfig reads config.yaml (optional) and environment variables.
// DATA_FILE is honored for the input path so existing job schedules
// keep working without an ORDERETL_ prefix.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.orderetl/")
	v.AddConfigPath("/etc/orderetl/")

	v.SetEnvPrefix("ORDERETL")
	v.AutomaticEnv()
	_ = v.BindEnv("input.file", "ORDERETL_INPUT_FILE", "DATA_FILE")

	v.SetDefault("input.file", "dataset.csv")
	v.SetDefault("output.sqlite", "processed_orders.db")
	v.SetDefault("output.table", "customer_orders")
	v.SetDefault("output.csv", "processed_orders.csv")
	v.SetDefault("output.parquet", "processed_orders.parquet")
	v.SetDefault("cursor.backend", "pebble")
	v.SetDefault("cursor.dir", "./data/cursor")
	v.SetDefault("manifest.dir", "./manifests")
	v.SetDefault("manifest.sink", "file")
	v.SetDefault("manifest.topic", "orderetl.manifests")
	v.SetDefault("manifest.key", "orderetl-manifest-latest")
	v.SetDefault("log.file", "etl.log")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
