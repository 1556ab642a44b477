package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация пути к базе данных
	if c.DatabasePath == "" {
		errors = append(errors, "database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация исходящих запросов
	if c.FetchTimeout < time.Second {
		errors = append(errors, "fetch timeout must be at least 1 second")
	}
	if c.FetchRatePerSec <= 0 {
		errors = append(errors, "fetch rate must be positive")
	}

	// Валидация шаблона доверенных доменов
	if c.StructuredData != nil && c.StructuredData.TrustedDomains != "" {
		if _, err := regexp.Compile(c.StructuredData.TrustedDomains); err != nil {
			errors = append(errors, fmt.Sprintf("invalid trusted domains pattern: %v", err))
		}
	}
	if c.StructuredData != nil && c.StructuredData.Enabled && c.StructuredData.TrustedDomains == "" {
		errors = append(errors, "structured data provider requires a trusted domains pattern")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:            "8080",
		DatabasePath:    "parts.db",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		FetchTimeout:    30 * time.Second,
		FetchRatePerSec: 1,
		FetchUserAgent:  "PartServer/1.0",
		StructuredData:  &StructuredDataConfig{},
		Reichelt: &ReicheltConfig{
			Country:  "DE",
			Language: "en",
			Currency: "EUR",
		},
		Pollin: &PollinConfig{},
	}
}
