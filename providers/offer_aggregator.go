package providers

import "partserver/schema"

// OfferKey структурный ключ группировки офферов. Сравнивается по значению:
// офферы с одинаковым ключом отличаются только ценой/порогом количества и
// сливаются в один PurchaseInfoDTO с несколькими PriceDTO.
// Пустая строка означает отсутствующее значение.
type OfferKey struct {
	Seller string
	SKU    string
	GTIN   string
	URL    string
}

// OfferGroups результат группировки: порядок ключей — порядок первого
// появления, порядок офферов внутри группы — порядок обхода
type OfferGroups struct {
	Keys   []OfferKey
	Groups map[OfferKey][]*schema.Thing
}

// GroupOffers группирует офферы продукта по каноничным ключам закупки.
//
// Ключ каждого оффера вычисляется цепочкой фолбэков: собственные
// seller/sku/gtin/url оффера, иначе унаследованные из родительского
// контекста. AggregateOffer рекурсивен: его собственный ключ (с наследованием
// от контекста выше) становится родительским контекстом вложенных офферов —
// так метаданные страницы закрывают пробелы отдельной ценовой ступени.
func GroupOffers(offers []schema.Value, parent OfferKey) *OfferGroups {
	g := &OfferGroups{Groups: make(map[OfferKey][]*schema.Thing)}
	g.collect(offers, parent)
	return g
}

func (g *OfferGroups) collect(values []schema.Value, parent OfferKey) {
	for _, v := range values {
		if v.Thing == nil {
			continue
		}
		switch v.Thing.Type {
		case schema.TypeAggregateOffer:
			aggKey := offerKeyOf(v.Thing, parent)
			g.collect(v.Thing.Values("offers"), aggKey)
		case schema.TypeOffer:
			g.push(v.Thing, parent)
		}
	}
}

func (g *OfferGroups) push(offer *schema.Thing, parent OfferKey) {
	key := offerKeyOf(offer, parent)
	if _, exists := g.Groups[key]; !exists {
		g.Keys = append(g.Keys, key)
	}
	g.Groups[key] = append(g.Groups[key], offer)
}

// offerKeyOf вычисляет ключ оффера с наследованием от родительского контекста
func offerKeyOf(offer *schema.Thing, parent OfferKey) OfferKey {
	gtin := gtinOf(offer)
	sku := skuOf(offer, gtin, false)

	key := OfferKey{
		Seller: schema.ResolveEntityName(offer.Values("seller")),
		SKU:    sku,
		GTIN:   gtin,
		URL:    offer.FirstNonEmptyString("url"),
	}
	if key.Seller == "" {
		key.Seller = schema.ResolveEntityName(offer.Values("offeredBy"))
	}

	if key.Seller == "" {
		key.Seller = parent.Seller
	}
	if key.SKU == "" {
		key.SKU = parent.SKU
	}
	if key.GTIN == "" {
		key.GTIN = parent.GTIN
	}
	if key.URL == "" {
		key.URL = parent.URL
	}
	return key
}

// gtinOf возвращает первый непустой GTIN, предпочитая более специфичные коды
func gtinOf(t *schema.Thing) string {
	return t.FirstNonEmptyStringOf("gtin14", "gtin13", "gtin12", "gtin8")
}

// skuOf возвращает SKU с фолбэком на productID (только у Product),
// identifier и GTIN
func skuOf(t *schema.Thing, gtin string, isProduct bool) string {
	if s := t.FirstNonEmptyString("sku"); s != "" {
		return s
	}
	if isProduct {
		if s := t.FirstNonEmptyString("productID"); s != "" {
			return s
		}
	}
	if s := t.FirstNonEmptyString("identifier"); s != "" {
		return s
	}
	return gtin
}
