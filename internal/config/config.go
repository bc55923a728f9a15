package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config настройки процесса. Источники: config.yaml рядом с бинарём
// и переменные окружения, окружение приоритетнее.
type Config struct {
	HTTPAddr              string
	ExchangeRateINRPerUSD float64
	GinMode               string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("http_addr", ":9091")
	v.SetDefault("exchange_rate_inr_per_usd", 83.0)
	v.SetDefault("gin_mode", "release")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// config file is optional
	}

	cfg := &Config{
		HTTPAddr:              v.GetString("http_addr"),
		ExchangeRateINRPerUSD: v.GetFloat64("exchange_rate_inr_per_usd"),
		GinMode:               v.GetString("gin_mode"),
	}
	if cfg.ExchangeRateINRPerUSD <= 0 {
		return nil, fmt.Errorf("exchange_rate_inr_per_usd must be positive, got %v", cfg.ExchangeRateINRPerUSD)
	}
	return cfg, nil
}
