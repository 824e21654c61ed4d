package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every dial the benchmark harness exposes. Flags always win
// over a -config file; a -config file always wins over these defaults.
type Config struct {
	Ticks           int    `mapstructure:"ticks"`
	Snakes          int    `mapstructure:"snakes"`
	QueueCapacity   int    `mapstructure:"queueCapacity"`
	ProducerCore    int    `mapstructure:"producerCore"`
	ConsumerCore    int    `mapstructure:"consumerCore"`
	Generator       string `mapstructure:"generator"` // "random" or "deterministic"
	StatsEveryTicks int    `mapstructure:"statsEveryTicks"`
}

// defaultConfig targets a world-scale run: ~1024 snakes on the full grid,
// reported every thousand ticks.
func defaultConfig() Config {
	return Config{
		Ticks:           10000,
		Snakes:          1024,
		QueueCapacity:   4096,
		ProducerCore:    0,
		ConsumerCore:    1,
		Generator:       "random",
		StatsEveryTicks: 1000,
	}
}

// loadConfig builds a private *viper.Viper instance (never the global
// singleton, so this can be called more than once in a process), seeds it
// with defaults, then merges an optional YAML file over them.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("ticks", cfg.Ticks)
	v.SetDefault("snakes", cfg.Snakes)
	v.SetDefault("queueCapacity", cfg.QueueCapacity)
	v.SetDefault("producerCore", cfg.ProducerCore)
	v.SetDefault("consumerCore", cfg.ConsumerCore)
	v.SetDefault("generator", cfg.Generator)
	v.SetDefault("statsEveryTicks", cfg.StatsEveryTicks)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
