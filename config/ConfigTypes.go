package config

import (
	"fmt"
	"time"

	"SmartMoneyAnalyzer/internal/logger"
	"SmartMoneyAnalyzer/internal/operations/backtest"
	"SmartMoneyAnalyzer/internal/services/analysis"
)

type Config struct {
	Exchange ExchangeConfig  `yaml:"exchange"`
	Database DatabaseConfig  `yaml:"database"`
	Redis    RedisConfig     `yaml:"redis"`
	Log      logger.Config   `yaml:"log"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Backtest backtest.Config `yaml:"backtest"`
	Symbols  []string        `yaml:"symbols" validate:"min=1,dive,required"`
	Source   string          `yaml:"source" default:"binance" validate:"oneof=binance store"`
	Strategy analysis.Params `yaml:"strategy"`
}

type ExchangeConfig struct {
	APIKey      string        `yaml:"api_key"`
	SecretKey   string        `yaml:"secret_key"`
	Timeout     time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
	RateLimit   float64       `yaml:"rate_limit" default:"10" validate:"gt=0"`
	Burst       int           `yaml:"burst" default:"20" validate:"min=1"`
	MaxRetries  int           `yaml:"max_retries" default:"3" validate:"min=0"`
	Backoff     time.Duration `yaml:"backoff" default:"100ms"`
	TripAfter   uint32        `yaml:"trip_after" default:"5" validate:"min=1"`
	OpenTimeout time.Duration `yaml:"open_timeout" default:"30s"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"5432" validate:"min=1,max=65535"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname" default:"smartmoney"`
	SSLMode  string `yaml:"sslmode" default:"disable"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode)
}

// RedisConfig enables the series cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"min=0"`
	TTL      time.Duration `yaml:"ttl" default:"60s"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}
