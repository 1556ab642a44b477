package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"partserver/schema"
)

// maxDocumentSize предел размера скачиваемой страницы (10 МБ)
const maxDocumentSize = 10 << 20

// Fetcher HTTP клиент для скачивания страниц магазинов.
// Ограничивает частоту исходящих запросов (вежливость к скрейпленным
// сайтам) и приводит тело ответа к UTF-8. Повторов при ошибках нет.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// FetcherConfig конфигурация HTTP клиента
type FetcherConfig struct {
	Timeout   time.Duration
	RateLimit rate.Limit
	UserAgent string
}

// NewFetcher создает новый клиент для скачивания страниц
func NewFetcher(config FetcherConfig) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(time.Second) // 1 запрос в секунду
	}
	if config.UserAgent == "" {
		config.UserAgent = "PartServer/1.0"
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter:   rate.NewLimiter(config.RateLimit, 1),
		userAgent: config.UserAgent,
	}
}

// FetchDocument скачивает HTML документ и возвращает тело в UTF-8.
// Любая ошибка транспорта или неожиданный статус оборачивается в FetchError.
func (f *Fetcher) FetchDocument(ctx context.Context, pageURL string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("rate limit wait failed: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return schema.DecodeDocument(body, resp.Header.Get("Content-Type")), nil
}
