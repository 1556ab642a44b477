// @title Part Info Provider API
// @version 1.0
// @description API сервера информации о деталях: поиск и импорт данных о компонентах из онлайн-магазинов и страниц с разметкой schema.org.

// @contact.name API Support
// @contact.email support@example.com

// @BasePath /api
// @schemes http https

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"partserver/database"
	"partserver/internal/config"
	"partserver/providers"
	"partserver/server"
)

func main() {
	log.Println("Запуск Part Info Provider сервера...")

	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Создаем базу деталей
	partsDB, err := database.NewPartsDBWithConfig(cfg.DatabasePath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Ошибка создания базы данных: %v", err)
	}
	defer partsDB.Close()
	log.Printf("Используется база данных: %s", cfg.DatabasePath)

	// Собираем реестр провайдеров
	registry, err := buildRegistry(cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации провайдеров: %v", err)
	}
	for _, p := range registry.Active() {
		log.Printf("Провайдер активен: %s", p.GetProviderKey())
	}

	router := server.NewRouter(registry, partsDB)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("Сервер слушает на порту %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	// Обработка сигналов для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Остановка сервера...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Ошибка остановки сервера: %v", err)
	}
	log.Println("Сервер остановлен")
}

// buildRegistry создает провайдеров по конфигурации
func buildRegistry(cfg *config.Config) (*providers.Registry, error) {
	fetcher := providers.NewFetcher(providers.FetcherConfig{
		Timeout:   cfg.FetchTimeout,
		RateLimit: rate.Limit(cfg.FetchRatePerSec),
		UserAgent: cfg.FetchUserAgent,
	})

	strucdata, err := providers.NewStructuredDataProvider(fetcher, providers.StructuredDataConfig{
		Enabled:          cfg.StructuredData.Enabled,
		TrustedDomains:   cfg.StructuredData.TrustedDomains,
		AddGTINToOrderNo: cfg.StructuredData.AddGTINToOrderNo,
	})
	if err != nil {
		return nil, err
	}

	reichelt := providers.NewReicheltProvider(fetcher, providers.ReicheltConfig{
		Enabled:          cfg.Reichelt.Enabled,
		Country:          cfg.Reichelt.Country,
		Language:         cfg.Reichelt.Language,
		Currency:         cfg.Reichelt.Currency,
		NetPrices:        cfg.Reichelt.NetPrices,
		AddGTINToOrderNo: cfg.Reichelt.AddGTINToOrderNo,
	})

	pollin := providers.NewPollinProvider(fetcher, providers.PollinConfig{
		Enabled:          cfg.Pollin.Enabled,
		AddGTINToOrderNo: cfg.Pollin.AddGTINToOrderNo,
	})

	return providers.NewRegistry(strucdata, reichelt, pollin), nil
}
