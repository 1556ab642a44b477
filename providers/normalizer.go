package providers

import (
	"encoding/base64"
	"strconv"
	"strings"

	"golang.org/x/text/currency"

	"partserver/schema"
)

const (
	// ProviderIDURLBase64 специальное значение переопределения provider_id:
	// идентификатором становится base64 от URL страницы (обратимая адресация,
	// идентификатор И ЕСТЬ URL, а не ключ базы данных)
	ProviderIDURLBase64 = "URL_BASE64"

	// DistributorPlaceholder подставляется вместо неизвестного продавца,
	// чтобы distributor_name никогда не был пустым
	DistributorPlaceholder = "<PLEASE REMOVE & SELECT ANOTHER>"

	// CategorySeparator каноничный разделитель сегментов категории
	CategorySeparator = " -> "
)

// massUnitToGrams таблица пересчета кодов единиц UN/CEFACT в граммы
var massUnitToGrams = map[string]float64{
	"KGM": 1000,
	"MGM": 0.001,
	"GRM": 1,
	"LBR": 453.59237,
	"ONZ": 283.4952,
}

// NormalizeContext контекстные фолбэки для нормализации одного продукта.
// Заполняется провайдером из метаданных страницы (владелец сайта, хлебные
// крошки) и собственной конфигурации.
type NormalizeContext struct {
	// URL страницы, фолбэк для url продукта
	URL string
	// ProviderIDOverride переопределение provider_id: пустая строка — нет
	// переопределения, ProviderIDURLBase64 — закодировать URL
	ProviderIDOverride string
	// SellerFallback имя продавца, когда оффер его не называет
	SellerFallback string
	// CategoryFallback сегменты хлебных крошек для категории
	CategoryFallback []string
	// IncludesTax включены ли налоги в цены провайдера
	IncludesTax bool
}

// Normalizer превращает распарсенный Product в каноничный PartDetailDTO.
// Сеть не трогает; провайдеры поверх результата накладывают свой HTML-проход.
// Каждый шаг независим и деградирует в пустое значение на отсутствующих данных.
type Normalizer struct {
	// AddGTINToOrderNo добавлять ли GTIN суффиксом к номеру заказа
	AddGTINToOrderNo bool
}

// Normalize строит базовый PartDetailDTO из продукта и контекстных фолбэков
func (n *Normalizer) Normalize(product *schema.Thing, providerKey string, nctx NormalizeContext) *PartDetailDTO {
	pageURL := product.FirstNonEmptyString("url")
	if pageURL == "" {
		pageURL = nctx.URL
	}

	gtin := gtinOf(product)
	sku := skuOf(product, gtin, true)

	providerID := sku
	switch {
	case nctx.ProviderIDOverride == ProviderIDURLBase64:
		providerID = base64.StdEncoding.EncodeToString([]byte(pageURL))
	case nctx.ProviderIDOverride != "":
		providerID = nctx.ProviderIDOverride
	}

	dto := &PartDetailDTO{
		ProviderKey:  providerKey,
		ProviderID:   schema.SanitizeUTF8(providerID),
		Name:         schema.SanitizeUTF8(product.FirstNonEmptyString("name")),
		Description:  schema.SanitizeUTF8(product.FirstNonEmptyString("description")),
		MPN:          schema.SanitizeUTF8(product.FirstNonEmptyString("mpn")),
		ProviderURL:  schema.SanitizeUTF8(pageURL),
		Category:     schema.SanitizeUTF8(n.normalizeCategory(product, nctx.CategoryFallback)),
		Manufacturer: schema.SanitizeUTF8(n.resolveManufacturer(product)),
		Mass:         massInGrams(product),
	}

	dto.VendorInfos = n.buildVendorInfos(product, OfferKey{SKU: sku, GTIN: gtin, URL: pageURL}, nctx)
	dto.Images, dto.PreviewImageURL = n.collectImages(product)

	return dto
}

// buildVendorInfos группирует офферы продукта и строит по PurchaseInfoDTO на группу
func (n *Normalizer) buildVendorInfos(product *schema.Thing, parent OfferKey, nctx NormalizeContext) []*PurchaseInfoDTO {
	groups := GroupOffers(product.Values("offers"), parent)

	infos := make([]*PurchaseInfoDTO, 0, len(groups.Keys))
	for _, key := range groups.Keys {
		distributor := key.Seller
		if distributor == "" {
			distributor = nctx.SellerFallback
		}
		if distributor == "" {
			distributor = DistributorPlaceholder
		}

		orderNumber := key.SKU
		if n.AddGTINToOrderNo && key.GTIN != "" && key.SKU != key.GTIN {
			orderNumber += ", GTIN: " + key.GTIN
		}

		info := &PurchaseInfoDTO{
			DistributorName: schema.SanitizeUTF8(distributor),
			OrderNumber:     schema.SanitizeUTF8(orderNumber),
			ProductURL:      schema.SanitizeUTF8(key.URL),
			Prices:          []*PriceDTO{},
		}
		for _, offer := range groups.Groups[key] {
			if price := offerPrice(offer, nctx.IncludesTax); price != nil {
				info.Prices = append(info.Prices, price)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// offerPrice строит PriceDTO одного оффера; офферы без цены пропускаются
func offerPrice(offer *schema.Thing, includesTax bool) *PriceDTO {
	raw := offer.FirstNonEmptyString("price")
	if raw == "" {
		return nil
	}

	minAmount := 1.0
	if q := offer.FirstThingOfType("eligibleQuantity", schema.TypeQuantitativeValue); q != nil {
		if v, ok := parseDecimal(q.FirstNonEmptyString("minValue")); ok && v > 0 {
			minAmount = v
		}
	}

	return &PriceDTO{
		MinimumDiscountAmount: minAmount,
		Price:                 NormalizePrice(raw),
		CurrencyISOCode:       CurrencyISOCode(offer.FirstNonEmptyString("priceCurrency")),
		IncludesTax:           includesTax,
	}
}

// NormalizePrice приводит десятичную запятую к точке
func NormalizePrice(price string) string {
	return strings.ReplaceAll(strings.TrimSpace(price), ",", ".")
}

// CurrencyISOCode валидирует код валюты по ISO 4217; нераспознанные коды
// дают nil. Встречающееся в разметке "US$" приводится к "USD" до проверки.
func CurrencyISOCode(code string) *string {
	code = strings.TrimSpace(code)
	if code == "US$" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil
	}
	iso := unit.String()
	return &iso
}

// resolveManufacturer извлекает производителя: manufacturer, иначе brand
func (n *Normalizer) resolveManufacturer(product *schema.Thing) string {
	if name := schema.ResolveEntityName(product.Values("manufacturer")); name != "" {
		return name
	}
	return schema.ResolveEntityName(product.Values("brand"))
}

// massInGrams считает массу в граммах по QuantitativeValue с кодом единицы.
// Неизвестный код единицы или нечисловое значение оставляют массу пустой.
func massInGrams(product *schema.Thing) *float64 {
	weight := product.FirstThingOfType("weight", schema.TypeQuantitativeValue)
	if weight == nil {
		return nil
	}
	value, ok := parseDecimal(weight.FirstNonEmptyString("value"))
	if !ok {
		return nil
	}
	factor, ok := massUnitToGrams[weight.FirstNonEmptyString("unitCode")]
	if !ok {
		return nil
	}
	grams := value * factor
	return &grams
}

// normalizeCategory строит строку категории: собственная категория продукта
// с нормализацией разделителей, иначе склейка хлебных крошек
func (n *Normalizer) normalizeCategory(product *schema.Thing, breadcrumbs []string) string {
	if raw := product.FirstNonEmptyString("category"); raw != "" {
		return JoinCategorySegments(splitCategory(raw))
	}
	return JoinCategorySegments(breadcrumbs)
}

// splitCategory режет строку категории по разделителям "/" и ">"
func splitCategory(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '>'
	})
}

// JoinCategorySegments склеивает непустые сегменты каноничным разделителем
func JoinCategorySegments(segments []string) string {
	var parts []string
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, CategorySeparator)
}

// collectImages собирает изображения продукта без дубликатов;
// превью — первое изображение, иначе логотип
func (n *Normalizer) collectImages(product *schema.Thing) ([]*FileDTO, string) {
	seen := make(map[string]bool)
	var images []*FileDTO
	for _, u := range product.NonEmptyStrings("image") {
		u = schema.SanitizeUTF8(u)
		if seen[u] {
			continue
		}
		seen[u] = true
		images = append(images, &FileDTO{URL: u})
	}

	preview := ""
	if len(images) > 0 {
		preview = images[0].URL
	} else if logo := product.FirstNonEmptyString("logo"); logo != "" {
		preview = schema.SanitizeUTF8(logo)
	}
	return images, preview
}

// parseDecimal разбирает десятичное число, допуская запятую как разделитель
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
