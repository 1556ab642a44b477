package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"

	"partserver/schema"
)

// pageData структурированные данные одной страницы магазина: продукты плюс
// метаданные-фолбэки для нормализатора
type pageData struct {
	products    []*schema.Thing
	siteOwner   string
	breadcrumbs []string
}

// extractPage извлекает structured data из HTML. Никогда не ошибается:
// страница без распознаваемых объектов дает пустой результат.
func extractPage(htmlData []byte, baseURL string) *pageData {
	reader := schema.NewReader()
	page := &pageData{}

	for _, thing := range reader.Parse(htmlData, baseURL) {
		switch thing.Type {
		case schema.TypeProduct:
			page.products = append(page.products, thing)
		case schema.TypeWebSite, schema.TypeWebPage:
			if page.siteOwner == "" {
				page.siteOwner = siteOwnerOf(thing)
			}
		case schema.TypeBreadcrumbList:
			if len(page.breadcrumbs) == 0 {
				page.breadcrumbs = breadcrumbsOf(thing)
			}
		}
	}
	return page
}

// siteOwnerOf извлекает владельца сайта из WebSite/WebPage
func siteOwnerOf(t *schema.Thing) string {
	for _, prop := range []string{"author", "creator", "copyrightHolder", "publisher"} {
		if name := schema.ResolveEntityName(t.Values(prop)); name != "" {
			return name
		}
	}
	return ""
}

// breadcrumbsOf возвращает имена элементов хлебных крошек, упорядоченные
// по позиции (при отсутствии позиций — в порядке объявления)
func breadcrumbsOf(list *schema.Thing) []string {
	type crumb struct {
		position int
		name     string
	}
	var crumbs []crumb

	for i, v := range list.Values("itemListElement") {
		item := v.Thing
		if item == nil || item.Type != schema.TypeListItem {
			continue
		}
		name := item.FirstNonEmptyString("name")
		if name == "" {
			if nested := item.FirstThing("item"); nested != nil {
				name = nested.FirstNonEmptyString("name")
			}
		}
		if name == "" {
			continue
		}
		position := i
		if p, err := strconv.Atoi(item.FirstNonEmptyString("position")); err == nil {
			position = p
		}
		crumbs = append(crumbs, crumb{position: position, name: name})
	}

	sort.SliceStable(crumbs, func(i, j int) bool { return crumbs[i].position < crumbs[j].position })

	names := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		names = append(names, c.name)
	}
	return names
}

// StructuredDataConfig конфигурация обобщенного провайдера "по URL"
type StructuredDataConfig struct {
	Enabled bool
	// TrustedDomains регулярное выражение доверенных хостов; пустое
	// выражение не доверяет ничему
	TrustedDomains   string
	AddGTINToOrderNo bool
}

// StructuredDataProvider обобщенный провайдер: деталью считается любая
// страница с schema.org разметкой Product. Идентификатор детали — base64 от
// URL страницы, поэтому выборка жестко ограничена списком доверенных доменов.
type StructuredDataProvider struct {
	fetcher        *Fetcher
	normalizer     *Normalizer
	enabled        bool
	trustedDomains *regexp.Regexp
}

// NewStructuredDataProvider создает обобщенный провайдер по URL
func NewStructuredDataProvider(fetcher *Fetcher, config StructuredDataConfig) (*StructuredDataProvider, error) {
	var trusted *regexp.Regexp
	if config.TrustedDomains != "" {
		var err error
		trusted, err = regexp.Compile(config.TrustedDomains)
		if err != nil {
			return nil, fmt.Errorf("failed to compile trusted domains pattern: %w", err)
		}
	}

	return &StructuredDataProvider{
		fetcher:        fetcher,
		normalizer:     &Normalizer{AddGTINToOrderNo: config.AddGTINToOrderNo},
		enabled:        config.Enabled,
		trustedDomains: trusted,
	}, nil
}

// GetProviderKey возвращает идентификатор провайдера
func (p *StructuredDataProvider) GetProviderKey() string {
	return "strucdata"
}

// GetProviderInfo возвращает метаданные провайдера
func (p *StructuredDataProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:        "Structured data",
		Description: "Извлекает информацию о детали из schema.org разметки произвольной страницы доверенного домена",
		URL:         "https://schema.org/Product",
	}
}

// IsActive проверяет, включен ли провайдер
func (p *StructuredDataProvider) IsActive() bool {
	return p.enabled
}

// GetCapabilities возвращает возможности провайдера
func (p *StructuredDataProvider) GetCapabilities() []Capability {
	return []Capability{CapabilityBasic, CapabilityPicture, CapabilityPrice}
}

// SearchByKeyword принимает URL страницы как ключевое слово. Некорректный
// URL или недоверенный домен дают пустой список: поиск не падает на вводе
// пользователя. Ошибки транспорта пробрасываются.
func (p *StructuredDataProvider) SearchByKeyword(ctx context.Context, keyword string) ([]*SearchResultDTO, error) {
	if !p.isTrustedURL(keyword) {
		return []*SearchResultDTO{}, nil
	}

	detail, err := p.fetchDetail(ctx, keyword)
	if err != nil {
		if IsParseError(err) {
			return []*SearchResultDTO{}, nil
		}
		return nil, err
	}
	return []*SearchResultDTO{detail.ToSearchResult()}, nil
}

// GetDetails возвращает деталь по идентификатору base64(url).
// Некорректный base64 — ParseError, домен вне списка доверенных —
// DomainNotTrustedError до какого-либо запроса в сеть.
func (p *StructuredDataProvider) GetDetails(ctx context.Context, id string) (*PartDetailDTO, error) {
	decoded, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid base64 id %q", id)}
	}
	pageURL := string(decoded)

	if !p.isTrustedURL(pageURL) {
		return nil, &DomainNotTrustedError{URL: pageURL}
	}
	return p.fetchDetail(ctx, pageURL)
}

// fetchDetail скачивает страницу и нормализует первый найденный продукт
func (p *StructuredDataProvider) fetchDetail(ctx context.Context, pageURL string) (*PartDetailDTO, error) {
	htmlData, err := p.fetcher.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	page := extractPage(htmlData, pageURL)
	if len(page.products) == 0 {
		return nil, &ParseError{URL: pageURL, Reason: "no product found in structured data"}
	}

	return p.normalizer.Normalize(page.products[0], p.GetProviderKey(), NormalizeContext{
		URL:                pageURL,
		ProviderIDOverride: ProviderIDURLBase64,
		SellerFallback:     page.siteOwner,
		CategoryFallback:   page.breadcrumbs,
		IncludesTax:        true,
	}), nil
}

// isTrustedURL проверяет, что URL корректен и его хост доверен
func (p *StructuredDataProvider) isTrustedURL(rawURL string) bool {
	if p.trustedDomains == nil {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return false
	}
	return p.trustedDomains.MatchString(u.Hostname())
}
