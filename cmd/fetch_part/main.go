// fetch_part получает полную запись детали у провайдера и печатает её как
// JSON. Для провайдера strucdata идентификатором служит URL страницы, для
// остальных — внутренний идентификатор магазина.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/time/rate"

	"partserver/internal/config"
	"partserver/providers"
)

func main() {
	providerKey := flag.String("provider", "strucdata", "ключ провайдера (strucdata, reichelt, pollin)")
	id := flag.String("id", "", "идентификатор детали у провайдера")
	pageURL := flag.String("url", "", "URL страницы продукта (только для strucdata, вместо -id)")
	timeout := flag.Duration("timeout", 60*time.Second, "таймаут запроса")
	flag.Parse()

	if *id == "" && *pageURL == "" {
		fmt.Fprintln(os.Stderr, "Использование: fetch_part -provider <key> -id <id> | -url <url>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	fetcher := providers.NewFetcher(providers.FetcherConfig{
		Timeout:   cfg.FetchTimeout,
		RateLimit: rate.Limit(cfg.FetchRatePerSec),
		UserAgent: cfg.FetchUserAgent,
	})

	provider, err := buildProvider(*providerKey, fetcher, cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации провайдера: %v", err)
	}

	partID := *id
	if partID == "" {
		// URL страницы кодируется в идентификатор обратимо
		partID = base64.StdEncoding.EncodeToString([]byte(*pageURL))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	detail, err := provider.GetDetails(ctx, partID)
	if err != nil {
		log.Fatalf("Ошибка получения детали: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(detail); err != nil {
		log.Fatalf("Ошибка вывода JSON: %v", err)
	}
}

// buildProvider создает провайдера по ключу, игнорируя флаг enabled:
// явный запуск из консоли и есть включение
func buildProvider(key string, fetcher *providers.Fetcher, cfg *config.Config) (providers.InfoProvider, error) {
	switch key {
	case "strucdata":
		trusted := cfg.StructuredData.TrustedDomains
		if trusted == "" {
			trusted = ".*"
		}
		return providers.NewStructuredDataProvider(fetcher, providers.StructuredDataConfig{
			Enabled:          true,
			TrustedDomains:   trusted,
			AddGTINToOrderNo: cfg.StructuredData.AddGTINToOrderNo,
		})
	case "reichelt":
		return providers.NewReicheltProvider(fetcher, providers.ReicheltConfig{
			Enabled:          true,
			Country:          cfg.Reichelt.Country,
			Language:         cfg.Reichelt.Language,
			Currency:         cfg.Reichelt.Currency,
			NetPrices:        cfg.Reichelt.NetPrices,
			AddGTINToOrderNo: cfg.Reichelt.AddGTINToOrderNo,
		}), nil
	case "pollin":
		return providers.NewPollinProvider(fetcher, providers.PollinConfig{
			Enabled:          true,
			AddGTINToOrderNo: cfg.Pollin.AddGTINToOrderNo,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %s", key)
	}
}
