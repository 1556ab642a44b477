package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port string `json:"port"`

	// База данных
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Исходящие запросы к магазинам
	FetchTimeout    time.Duration `json:"fetch_timeout"`
	FetchRatePerSec float64       `json:"fetch_rate_per_sec"`
	FetchUserAgent  string        `json:"fetch_user_agent"`

	// Провайдеры
	StructuredData *StructuredDataConfig `json:"structured_data"`
	Reichelt       *ReicheltConfig       `json:"reichelt"`
	Pollin         *PollinConfig         `json:"pollin"`
}

// StructuredDataConfig конфигурация обобщенного провайдера "по URL"
type StructuredDataConfig struct {
	Enabled bool `json:"enabled"`
	// TrustedDomains регулярное выражение доверенных хостов
	TrustedDomains   string `json:"trusted_domains"`
	AddGTINToOrderNo bool   `json:"add_gtin_to_orderno"`
}

// ReicheltConfig конфигурация провайдера Reichelt
type ReicheltConfig struct {
	Enabled          bool   `json:"enabled"`
	Country          string `json:"country"`
	Language         string `json:"language"`
	Currency         string `json:"currency"`
	NetPrices        bool   `json:"net_prices"`
	AddGTINToOrderNo bool   `json:"add_gtin_to_orderno"`
}

// PollinConfig конфигурация провайдера Pollin
type PollinConfig struct {
	Enabled          bool `json:"enabled"`
	AddGTINToOrderNo bool `json:"add_gtin_to_orderno"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	config := &Config{
		// Сервер
		Port: getEnv("SERVER_PORT", "8080"),

		// База данных
		DatabasePath: getEnv("DATABASE_PATH", "parts.db"),

		// Connection pooling
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		// Исходящие запросы
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchRatePerSec: getEnvFloat("FETCH_RATE_PER_SEC", 1),
		FetchUserAgent:  getEnv("FETCH_USER_AGENT", "PartServer/1.0"),

		StructuredData: &StructuredDataConfig{
			Enabled:          getEnvBool("PROVIDER_STRUCDATA_ENABLED", false),
			TrustedDomains:   os.Getenv("PROVIDER_STRUCDATA_TRUSTED_DOMAINS"),
			AddGTINToOrderNo: getEnvBool("PROVIDER_STRUCDATA_ADD_GTIN_TO_ORDERNO", false),
		},
		Reichelt: &ReicheltConfig{
			Enabled:          getEnvBool("PROVIDER_REICHELT_ENABLED", false),
			Country:          getEnv("PROVIDER_REICHELT_COUNTRY", "DE"),
			Language:         getEnv("PROVIDER_REICHELT_LANGUAGE", "en"),
			Currency:         getEnv("PROVIDER_REICHELT_CURRENCY", "EUR"),
			NetPrices:        getEnvBool("PROVIDER_REICHELT_NET_PRICES", false),
			AddGTINToOrderNo: getEnvBool("PROVIDER_REICHELT_ADD_GTIN_TO_ORDERNO", false),
		},
		Pollin: &PollinConfig{
			Enabled:          getEnvBool("PROVIDER_POLLIN_ENABLED", false),
			AddGTINToOrderNo: getEnvBool("PROVIDER_POLLIN_ADD_GTIN_TO_ORDERNO", false),
		},
	}

	// Валидация
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool: "1" и "true" считаются истиной
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "1" || value == "true"
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
