package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"partserver/schema"
)

const pollinDefaultSeller = "Pollin Electronic GmbH"

var (
	// pollinSlugPattern слаг страницы продукта под /p/
	pollinSlugPattern = regexp.MustCompile(`/p/([a-z0-9-]+)`)

	pollinQuantityPattern = regexp.MustCompile(`[0-9]+`)
	pollinPricePattern    = regexp.MustCompile(`[0-9]+[.,][0-9]+`)
)

// PollinConfig конфигурация провайдера Pollin
type PollinConfig struct {
	Enabled          bool
	AddGTINToOrderNo bool
}

// PollinProvider провайдер магазина Pollin.de.
//
// Как и Reichelt: основа — structured data, HTML-проход дополняет блочные
// цены, EAN из таблицы характеристик, даташиты (ссылки обфусцированы base64)
// и полноразмерные изображения. Поля перезаписываются только непустыми
// извлеченными значениями.
type PollinProvider struct {
	fetcher    *Fetcher
	normalizer *Normalizer
	config     PollinConfig

	// baseURL переопределяется в тестах
	baseURL string
}

// NewPollinProvider создает провайдер магазина Pollin
func NewPollinProvider(fetcher *Fetcher, config PollinConfig) *PollinProvider {
	return &PollinProvider{
		fetcher:    fetcher,
		normalizer: &Normalizer{AddGTINToOrderNo: config.AddGTINToOrderNo},
		config:     config,
		baseURL:    "https://www.pollin.de",
	}
}

// GetProviderKey возвращает идентификатор провайдера
func (p *PollinProvider) GetProviderKey() string {
	return "pollin"
}

// GetProviderInfo возвращает метаданные провайдера
func (p *PollinProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:         "Pollin.de",
		Description:  "Ищет детали в онлайн-магазине Pollin.de",
		URL:          p.baseURL + "/",
		DisabledHelp: "Установите переменную окружения PROVIDER_POLLIN_ENABLED в 1 (или true).",
	}
}

// IsActive проверяет, включен ли провайдер
func (p *PollinProvider) IsActive() bool {
	return p.config.Enabled
}

// GetCapabilities возвращает возможности провайдера
func (p *PollinProvider) GetCapabilities() []Capability {
	return []Capability{
		CapabilityBasic,
		CapabilityPicture,
		CapabilityDatasheet,
		CapabilityPrice,
	}
}

// SearchByKeyword ищет детали на странице поиска магазина: сначала по
// structured data, затем по плиткам результатов в HTML. Страница без того и
// другого дает пустой список.
func (p *PollinProvider) SearchByKeyword(ctx context.Context, keyword string) ([]*SearchResultDTO, error) {
	searchURL := p.baseURL + "/search?query=" + url.QueryEscape(keyword) + "&hitsPerPage=36"

	htmlData, err := p.fetcher.FetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	page := extractPage(htmlData, searchURL)
	if len(page.products) > 0 {
		results := make([]*SearchResultDTO, 0, len(page.products))
		for _, product := range page.products {
			detail := p.normalizer.Normalize(product, p.GetProviderKey(), NormalizeContext{
				URL:            searchURL,
				SellerFallback: page.siteOwner,
				IncludesTax:    true,
			})
			result := detail.ToSearchResult()
			result.ProviderID = pollinSlug(detail.ProviderURL)
			results = append(results, result)
		}
		return results, nil
	}

	return p.parseSearchTiles(htmlData), nil
}

// parseSearchTiles разбирает плитки результатов поиска из HTML
func (p *PollinProvider) parseSearchTiles(htmlData []byte) []*SearchResultDTO {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlData))
	if err != nil {
		return []*SearchResultDTO{}
	}

	results := []*SearchResultDTO{}
	doc.Find(".product-box").Each(func(_ int, tile *goquery.Selection) {
		link := tile.Find("a.product-name").First()
		href, _ := link.Attr("href")
		slug := pollinSlug(href)
		if slug == "" {
			return
		}

		result := &SearchResultDTO{
			ProviderKey: p.GetProviderKey(),
			ProviderID:  slug,
			Name:        schema.SanitizeUTF8(strings.TrimSpace(link.Text())),
			ProviderURL: p.absoluteURL(href),
		}
		if img, ok := tile.Find(".product-image img").First().Attr("src"); ok {
			result.PreviewImageURL = strings.TrimSpace(img)
		}
		results = append(results, result)
	})
	return results
}

// GetDetails возвращает деталь по слагу страницы продукта
func (p *PollinProvider) GetDetails(ctx context.Context, id string) (*PartDetailDTO, error) {
	pageURL := p.baseURL + "/p/" + id

	htmlData, err := p.fetcher.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	page := extractPage(htmlData, pageURL)
	if len(page.products) == 0 {
		return nil, &ParseError{URL: pageURL, Reason: "product page doesn't contain a schema.org Product"}
	}

	seller := page.siteOwner
	if seller == "" {
		seller = pollinDefaultSeller
	}

	detail := p.normalizer.Normalize(page.products[0], p.GetProviderKey(), NormalizeContext{
		URL:                pageURL,
		ProviderIDOverride: id,
		SellerFallback:     seller,
		CategoryFallback:   page.breadcrumbs,
		IncludesTax:        true,
	})

	if err := p.supplementFromHTML(detail, htmlData, pageURL); err != nil {
		return nil, err
	}
	return detail, nil
}

// supplementFromHTML дополняет базовый DTO данными из HTML страницы
func (p *PollinProvider) supplementFromHTML(detail *PartDetailDTO, htmlData []byte, pageURL string) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlData))
	if err != nil {
		return &ParseError{URL: pageURL, Reason: fmt.Sprintf("failed to parse HTML: %v", err)}
	}

	parameters, ean := p.parsePropertiesTable(doc)
	if len(parameters) > 0 {
		detail.Parameters = parameters
	}

	prices, err := p.parseBlockPrices(doc, pageURL)
	if err != nil {
		return err
	}
	p.supplementVendorInfo(detail, prices, ean)

	if images := p.galleryImages(doc); len(images) > 0 {
		detail.Images = images
		detail.PreviewImageURL = images[0].URL
	}
	if datasheets := p.datasheetLinks(doc); len(datasheets) > 0 {
		detail.Datasheets = datasheets
	}
	return nil
}

// parsePropertiesTable читает таблицу характеристик; строка EAN возвращается
// отдельно для дополнения номера заказа
func (p *PollinProvider) parsePropertiesTable(doc *goquery.Document) ([]*ParameterDTO, string) {
	var parameters []*ParameterDTO
	ean := ""

	doc.Find(".product-detail-properties-table tr").Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find("th").First().Text())
		value := strings.TrimSpace(row.Find("td").First().Text())
		if name == "" || value == "" {
			return
		}
		if strings.EqualFold(name, "EAN") || strings.EqualFold(name, "GTIN") {
			ean = value
			return
		}
		parameters = append(parameters, &ParameterDTO{
			Name:      schema.SanitizeUTF8(name),
			ValueText: schema.SanitizeUTF8(value),
		})
	})
	return parameters, ean
}

// parseBlockPrices разбирает таблицу блочных цен. Первая ступень неявно
// означает количество 1; в подписях следующих ступеней ищется целое число.
// Нераспознанная подпись или цена дает заглушку 0; расхождение числа
// подписей и цен — фатальная ошибка разбора: предположение о верстке
// страницы больше не выполняется, частичный результат вводил бы в
// заблуждение.
func (p *PollinProvider) parseBlockPrices(doc *goquery.Document, pageURL string) ([]*PriceDTO, error) {
	table := doc.Find(".product-block-prices").First()
	if table.Length() == 0 {
		return nil, nil
	}

	labels := table.Find(".product-block-prices-quantity")
	cells := table.Find(".product-block-prices-price")
	if labels.Length() != cells.Length() {
		return nil, &ParseError{URL: pageURL, Reason: "number of price tiers and prices doesn't match"}
	}

	prices := make([]*PriceDTO, 0, labels.Length())
	for i := 0; i < labels.Length(); i++ {
		quantity := 0.0
		if i == 0 {
			quantity = 1
		} else if m := pollinQuantityPattern.FindString(labels.Eq(i).Text()); m != "" {
			if v, ok := parseDecimal(m); ok {
				quantity = v
			}
		}

		price := "0"
		if m := pollinPricePattern.FindString(cells.Eq(i).Text()); m != "" {
			price = NormalizePrice(m)
		}

		prices = append(prices, &PriceDTO{
			MinimumDiscountAmount: quantity,
			Price:                 price,
			CurrencyISOCode:       CurrencyISOCode("EUR"),
			IncludesTax:           true,
		})
	}
	return prices, nil
}

// supplementVendorInfo накладывает блочные цены и EAN на первую группу
// закупки; при отсутствии базовой группы создается новая
func (p *PollinProvider) supplementVendorInfo(detail *PartDetailDTO, prices []*PriceDTO, ean string) {
	var info *PurchaseInfoDTO
	if len(detail.VendorInfos) > 0 {
		info = detail.VendorInfos[0]
	} else {
		info = &PurchaseInfoDTO{
			DistributorName: pollinDefaultSeller,
			ProductURL:      detail.ProviderURL,
			Prices:          []*PriceDTO{},
		}
		detail.VendorInfos = []*PurchaseInfoDTO{info}
	}

	if len(prices) > 0 {
		info.Prices = prices
	}
	if ean != "" && !strings.Contains(info.OrderNumber, ean) {
		if info.OrderNumber != "" {
			info.OrderNumber += ", EAN: " + ean
		} else {
			info.OrderNumber = ean
		}
	}
}

// galleryImages собирает полноразмерные изображения из галереи продукта
func (p *PollinProvider) galleryImages(doc *goquery.Document) []*FileDTO {
	var images []*FileDTO
	doc.Find(".gallery-slider-item img").Each(func(_ int, s *goquery.Selection) {
		img, ok := s.Attr("data-full-image")
		if !ok {
			img, _ = s.Attr("src")
		}
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, &FileDTO{URL: img})
		}
	})
	return images
}

// datasheetLinks собирает ссылки на даташиты. Ссылки на странице бывают
// обфусцированы base64, такие декодируются в настоящий URL.
func (p *PollinProvider) datasheetLinks(doc *goquery.Document) []*FileDTO {
	var datasheets []*FileDTO
	doc.Find("a.link-datasheet").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		datasheets = append(datasheets, &FileDTO{
			URL:  p.resolveDatasheetURL(href),
			Name: schema.SanitizeUTF8(strings.TrimSpace(link.Text())),
		})
	})
	return datasheets
}

// resolveDatasheetURL декодирует обфусцированную ссылку на даташит
func (p *PollinProvider) resolveDatasheetURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(href, "/")); err == nil {
		if u := string(decoded); strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			return u
		}
	}
	return p.absoluteURL(href)
}

// absoluteURL превращает относительную ссылку магазина в абсолютную
func (p *PollinProvider) absoluteURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return p.baseURL + href
}

// pollinSlug извлекает слаг продукта из URL страницы
func pollinSlug(productURL string) string {
	if m := pollinSlugPattern.FindStringSubmatch(productURL); m != nil {
		return m[1]
	}
	return ""
}
