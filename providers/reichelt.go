package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"partserver/schema"
)

// reicheltDefaultSeller подставляется как продавец, когда разметка страницы
// не называет владельца сайта
const reicheltDefaultSeller = "reichelt elektronik GmbH & Co. KG"

var (
	// reicheltProductIDPattern внутренний артикул магазина в URL продукта
	reicheltProductIDPattern = regexp.MustCompile(`p([0-9]{4,})\.html`)

	// Известные форматы значений в таблице характеристик
	reicheltRangePattern  = regexp.MustCompile(`^([-+]?[0-9,.]+) ?(\.\.\.|…) ?([-+]?[0-9,.]+) ?([^\s]*)\s*$`)
	reicheltTriplePattern = regexp.MustCompile(`^([-+]?[0-9,.]+) ?/ ?([-+]?[0-9,.]+) ?/ ?([-+]?[0-9,.]+) ?([^\s]*)\s*$`)
	reicheltTypPattern    = regexp.MustCompile(`^([-+]?[0-9,.]+)(E([-+]?[0-9]+))? ([^\s]*)\s*$`)
	reicheltPMPattern     = regexp.MustCompile(`^±([0-9,.]+)(E([-+]?[0-9]+))? ([^\s]*)\s*$`)

	reicheltIntPattern     = regexp.MustCompile(`[0-9]+`)
	reicheltDecimalPattern = regexp.MustCompile(`[0-9]+,[0-9]+`)
)

// ReicheltConfig конфигурация провайдера Reichelt
type ReicheltConfig struct {
	Enabled bool
	// Country код страны доставки (CCOUNTRY)
	Country string
	// Language код языка магазина (LANGUAGE)
	Language string
	// Currency код валюты магазина (CURRENCY)
	Currency string
	// NetPrices запрашивать цены без НДС (MWSTFREE=1)
	NetPrices        bool
	AddGTINToOrderNo bool
}

// ReicheltProvider провайдер магазина Reichelt.
//
// Берет из HTML как можно меньше: основа — structured data (как у
// обобщенного провайдера), которая переживает редизайны сайта. HTML-проход
// только дополняет то, чего в разметке schema.org нет: таблицу характеристик,
// блочные цены, даташиты и полноразмерные изображения. Поля перезаписываются
// только непустыми извлеченными значениями.
type ReicheltProvider struct {
	fetcher    *Fetcher
	normalizer *Normalizer
	config     ReicheltConfig

	// baseURL переопределяется в тестах
	baseURL string
}

// NewReicheltProvider создает провайдер магазина Reichelt
func NewReicheltProvider(fetcher *Fetcher, config ReicheltConfig) *ReicheltProvider {
	return &ReicheltProvider{
		fetcher:    fetcher,
		normalizer: &Normalizer{AddGTINToOrderNo: config.AddGTINToOrderNo},
		config:     config,
		baseURL:    "https://www.reichelt.com",
	}
}

// GetProviderKey возвращает идентификатор провайдера
func (p *ReicheltProvider) GetProviderKey() string {
	return "reichelt"
}

// GetProviderInfo возвращает метаданные провайдера
func (p *ReicheltProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:         "Reichelt",
		Description:  "Ищет детали в онлайн-магазине Reichelt",
		URL:          p.baseURL,
		DisabledHelp: "Установите переменную окружения PROVIDER_REICHELT_ENABLED в 1 (или true).",
	}
}

// IsActive проверяет, включен ли провайдер
func (p *ReicheltProvider) IsActive() bool {
	return p.config.Enabled
}

// GetCapabilities возвращает возможности провайдера
func (p *ReicheltProvider) GetCapabilities() []Capability {
	return []Capability{
		CapabilityBasic,
		CapabilityFootprint,
		CapabilityPicture,
		CapabilityDatasheet,
		CapabilityPrice,
	}
}

// urlParams параметры языка, страны, валюты и налога для URL магазина
func (p *ReicheltProvider) urlParams() string {
	params := "LANGUAGE=" + p.config.Language
	if p.config.Country != "" {
		params += "&CCOUNTRY=" + p.config.Country
	}
	if p.config.Currency != "" {
		params += "&CURRENCY=" + p.config.Currency
	}
	if p.config.NetPrices {
		params += "&MWSTFREE=1"
	}
	return params
}

// providerIDFromURL извлекает внутренний артикул магазина из URL продукта
func providerIDFromURL(productURL string) string {
	if m := reicheltProductIDPattern.FindStringSubmatch(productURL); m != nil {
		return m[1]
	}
	return ""
}

// SearchByKeyword ищет детали по ключевому слову на странице поиска магазина.
// Страница без продуктов дает пустой список; расхождение числа продуктов и
// lazy-load изображений не фатально — HTML-изображения просто отбрасываются.
func (p *ReicheltProvider) SearchByKeyword(ctx context.Context, keyword string) ([]*SearchResultDTO, error) {
	searchURL := p.baseURL + "/index.html?ACTION=446&LA=3&nbc=1&q=" + url.QueryEscape(keyword) + "&" + p.urlParams()

	htmlData, err := p.fetcher.FetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	page := extractPage(htmlData, searchURL)
	if len(page.products) == 0 {
		return []*SearchResultDTO{}, nil
	}

	// Structured data содержит только заглушку lazy loading
	// (bilder/leer.gif), настоящие превью лежат в data-original
	images := lazyLoadImages(htmlData)
	if len(images) != len(page.products) {
		images = nil
	}

	results := make([]*SearchResultDTO, 0, len(page.products))
	for i, product := range page.products {
		detail := p.normalizer.Normalize(product, p.GetProviderKey(), NormalizeContext{
			URL:            searchURL,
			SellerFallback: page.siteOwner,
			IncludesTax:    !p.config.NetPrices,
		})

		result := detail.ToSearchResult()
		result.ProviderID = providerIDFromURL(detail.ProviderURL)
		if images != nil && images[i] != "" {
			result.PreviewImageURL = images[i]
		}
		results = append(results, result)
	}
	return results, nil
}

// GetDetails возвращает деталь по внутреннему артикулу магазина
func (p *ReicheltProvider) GetDetails(ctx context.Context, id string) (*PartDetailDTO, error) {
	pageURL := p.baseURL + "/index.html?ARTICLE=" + url.QueryEscape(id) + "&" + p.urlParams()

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
		seller = reicheltDefaultSeller
	}

	detail := p.normalizer.Normalize(page.products[0], p.GetProviderKey(), NormalizeContext{
		URL:              pageURL,
		SellerFallback:   seller,
		CategoryFallback: page.breadcrumbs,
		IncludesTax:      !p.config.NetPrices,
	})
	detail.ProviderID = providerIDFromURL(detail.ProviderURL)

	if err := p.supplementFromHTML(detail, htmlData, pageURL); err != nil {
		return nil, err
	}
	return detail, nil
}

// supplementFromHTML дополняет базовый DTO данными, которых нет в разметке
// schema.org. Поля перезаписываются только непустыми извлеченными значениями.
func (p *ReicheltProvider) supplementFromHTML(detail *PartDetailDTO, htmlData []byte, pageURL string) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlData))
	if err != nil {
		return &ParseError{URL: pageURL, Reason: fmt.Sprintf("failed to parse HTML: %v", err)}
	}

	parameters, footprint, err := p.parsePropertyTable(doc, pageURL)
	if err != nil {
		return err
	}
	detail.Parameters = parameters
	if footprint != "" {
		detail.Footprint = footprint
	}

	p.supplementPrices(detail, doc)

	if images := zoomImages(doc); len(images) > 0 {
		detail.Images = images
		detail.PreviewImageURL = images[0].URL
	}
	detail.Datasheets = p.datasheetLinks(doc)

	return nil
}

// parsePropertyTable читает таблицу характеристик av_propname/av_propvalue.
// Список продублирован в HTML страницы, читается только вторая половина.
// Строка с атрибутом name="207" — это монтажный корпус (footprint).
func (p *ReicheltProvider) parsePropertyTable(doc *goquery.Document, pageURL string) ([]*ParameterDTO, string, error) {
	names := doc.Find(".av_propname")
	values := doc.Find(".av_propvalue")
	if names.Length() != values.Length() {
		return nil, "", &ParseError{URL: pageURL, Reason: "number of property names and values doesn't match"}
	}

	var parameters []*ParameterDTO
	footprint := ""

	for i := names.Length() / 2; i < names.Length(); i++ {
		nameNode := names.Eq(i)
		value := strings.TrimSpace(values.Eq(i).Text())

		if attr, _ := nameNode.Attr("name"); attr == "207" {
			footprint = value
			continue
		}

		param := parseParameterValue(value)
		param.Name = schema.SanitizeUTF8(strings.TrimSpace(nameNode.Text()))
		// Заголовок секции: <li class="av_propview_headline"> перед <li>,
		// содержащим список свойств
		param.Group = schema.SanitizeUTF8(strings.TrimSpace(nameNode.Parent().Parent().Prev().Text()))
		parameters = append(parameters, param)
	}
	return parameters, schema.SanitizeUTF8(footprint), nil
}

// parseParameterValue разбирает известные числовые форматы значения
// характеристики; нераспознанный формат остается текстом
func parseParameterValue(value string) *ParameterDTO {
	param := &ParameterDTO{}

	if m := reicheltRangePattern.FindStringSubmatch(value); m != nil {
		// например "+8.0 ... +18.0 VDC"
		param.ValueMin = floatPtr(m[1])
		param.ValueMax = floatPtr(m[3])
		param.Unit = m[4]
	} else if m := reicheltTriplePattern.FindStringSubmatch(value); m != nil {
		// например "+350 / -500 / -1500"
		param.ValueMin = floatPtr(m[1])
		param.ValueTyp = floatPtr(m[2])
		param.ValueMax = floatPtr(m[3])
		param.Unit = m[4]
	} else if m := reicheltTypPattern.FindStringSubmatch(value); m != nil {
		// например "2.0E-4 kg"
		param.ValueTyp = floatPtr(m[1])
		param.Unit = expUnit(m[3], m[4])
	} else if m := reicheltPMPattern.FindStringSubmatch(value); m != nil {
		// например "±200 ppm"
		if max := floatPtr(m[1]); max != nil {
			min := -*max
			param.ValueMax = max
			param.ValueMin = &min
		}
		param.Unit = expUnit(m[2], m[3])
	}

	if param.ValueMin == nil && param.ValueTyp == nil && param.ValueMax == nil {
		param.ValueText = schema.SanitizeUTF8(value)
		param.Unit = ""
	}
	return param
}

// expUnit добавляет порядок величины к единице измерения: 2.0E-4 отобразилось
// бы как 0, поэтому степень десятки уходит в единицу
func expUnit(exp, unit string) string {
	if exp == "" {
		return unit
	}
	return "E^{" + exp + "} " + unit
}

// floatPtr разбирает число характеристики, nil при неудаче
func floatPtr(s string) *float64 {
	v, ok := parseDecimal(s)
	if !ok {
		return nil
	}
	return &v
}

// supplementPrices заменяет цены первой группы закупки блочными ценами из
// таблицы .discounttable; пустая таблица оставляет базовые цены
func (p *ReicheltProvider) supplementPrices(detail *PartDetailDTO, doc *goquery.Document) {
	if len(detail.VendorInfos) == 0 {
		return
	}
	info := detail.VendorInfos[0]
	info.OrderNumber = strings.ReplaceAll(info.OrderNumber, "mpn:", "")

	currency := "EUR"
	if len(info.Prices) > 0 && info.Prices[0].CurrencyISOCode != nil {
		currency = *info.Prices[0].CurrencyISOCode
	}

	prices := p.parseDiscountTable(doc, currency)
	if len(prices) > 0 {
		info.Prices = prices
	}
	detail.VendorInfos = []*PurchaseInfoDTO{info}
}

// parseDiscountTable разбирает ячейки таблицы блочных цен. В каждой ячейке
// две текстовые строки: минимальное количество и цена. Нераспознанное
// количество дает заглушку 1, нераспознанная цена — заглушку 0; ячейки без
// обеих строк пропускаются.
func (p *ReicheltProvider) parseDiscountTable(doc *goquery.Document, currency string) []*PriceDTO {
	table := doc.Find(".discounttable").First()
	if table.Length() == 0 {
		return nil
	}

	var prices []*PriceDTO
	table.Find("td").Each(func(_ int, td *goquery.Selection) {
		var lines []string
		for node := td.Get(0).FirstChild; node != nil; node = node.NextSibling {
			if node.Type != html.TextNode {
				continue
			}
			lines = append(lines, node.Data)
		}
		if len(lines) < 2 {
			return
		}

		quantity := 1.0
		if m := reicheltIntPattern.FindString(lines[0]); m != "" {
			if v, ok := parseDecimal(m); ok {
				quantity = v
			}
		}
		price := "0"
		if m := reicheltDecimalPattern.FindString(lines[1]); m != "" {
			price = NormalizePrice(m)
		}

		iso := currency
		prices = append(prices, &PriceDTO{
			MinimumDiscountAmount: quantity,
			Price:                 price,
			CurrencyISOCode:       &iso,
			IncludesTax:           !p.config.NetPrices,
		})
	})
	return prices
}

// zoomImages собирает полноразмерные изображения продукта из узлов .zoom
func zoomImages(doc *goquery.Document) []*FileDTO {
	var images []*FileDTO
	doc.Find(".zoom").Each(func(_ int, s *goquery.Selection) {
		if img, ok := s.Attr("data-large"); ok && strings.TrimSpace(img) != "" {
			images = append(images, &FileDTO{URL: strings.TrimSpace(img)})
		}
	})
	return images
}

// datasheetLinks собирает ссылки на даташиты из узлов .av_datasheet_description
func (p *ReicheltProvider) datasheetLinks(doc *goquery.Document) []*FileDTO {
	var datasheets []*FileDTO
	doc.Find(".av_datasheet_description").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		datasheets = append(datasheets, &FileDTO{
			URL:  p.baseURL + strings.TrimSpace(href),
			Name: schema.SanitizeUTF8(strings.TrimSpace(link.Text())),
		})
	})
	return datasheets
}

// lazyLoadImages извлекает превью из атрибутов data-original на странице поиска
func lazyLoadImages(htmlData []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlData))
	if err != nil {
		return nil
	}

	var images []string
	doc.Find(`[itemprop="image"]`).Each(func(_ int, s *goquery.Selection) {
		img, _ := s.Attr("data-original")
		images = append(images, strings.TrimSpace(img))
	})
	return images
}
