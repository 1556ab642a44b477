package providers

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const pollinProductPage = `<html><head>
<script type="application/ld+json">
{
  "@type": "Product",
  "name": "Netzteil 12V",
  "sku": "351234",
  "description": "Steckernetzteil 12 V / 1 A",
  "offers": {"@type": "Offer", "price": "9,95", "priceCurrency": "EUR"}
}
</script>
</head><body>
<table class="product-detail-properties-table">
	<tr><th>Spannung</th><td>12 V</td></tr>
	<tr><th>EAN</th><td>4049702123456</td></tr>
	<tr><th>Strom</th><td>1 A</td></tr>
</table>
<div class="product-block-prices">
	<span class="product-block-prices-quantity">Bis 9</span>
	<span class="product-block-prices-quantity">Ab 10</span>
	<span class="product-block-prices-price">9,95 €</span>
	<span class="product-block-prices-price">8,99 €</span>
</div>
<div class="gallery-slider-item"><img data-full-image="https://cdn.pollin.de/big/351234.jpg" src="https://cdn.pollin.de/small/351234.jpg"></div>
<a class="link-datasheet" href="aHR0cHM6Ly9jZG4ucG9sbGluLmRlL2RhdGFzaGVldHMvMzUxMjM0LnBkZg==">Datenblatt</a>
</body></html>`

func pollinTestProvider(t *testing.T, page string) *PollinProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	provider := NewPollinProvider(testFetcher(), PollinConfig{Enabled: true})
	provider.baseURL = server.URL
	return provider
}

func TestPollinGetDetails(t *testing.T) {
	provider := pollinTestProvider(t, pollinProductPage)

	detail, err := provider.GetDetails(context.Background(), "netzteil-12v")
	if err != nil {
		t.Fatalf("GetDetails() error: %v", err)
	}

	if detail.ProviderKey != "pollin" {
		t.Errorf("provider key = %q, want pollin", detail.ProviderKey)
	}
	// Идентификатором остается слаг из запроса, не SKU из разметки
	if detail.ProviderID != "netzteil-12v" {
		t.Errorf("provider id = %q, want %q", detail.ProviderID, "netzteil-12v")
	}
	if detail.Name != "Netzteil 12V" {
		t.Errorf("name = %q, want %q", detail.Name, "Netzteil 12V")
	}
}

func TestPollinPropertiesTable(t *testing.T) {
	provider := pollinTestProvider(t, pollinProductPage)

	detail, err := provider.GetDetails(context.Background(), "netzteil-12v")
	if err != nil {
		t.Fatalf("GetDetails() error: %v", err)
	}

	// Строка EAN уходит в номер заказа, не в характеристики
	if len(detail.Parameters) != 2 {
		t.Fatalf("%d parameters, want 2", len(detail.Parameters))
	}
	if detail.Parameters[0].Name != "Spannung" || detail.Parameters[0].ValueText != "12 V" {
		t.Errorf("first parameter = %q: %q", detail.Parameters[0].Name, detail.Parameters[0].ValueText)
	}
	if detail.Parameters[1].Name != "Strom" {
		t.Errorf("second parameter = %q, want Strom", detail.Parameters[1].Name)
	}
}

func TestPollinBlockPrices(t *testing.T) {
	provider := pollinTestProvider(t, pollinProductPage)

	detail, err := provider.GetDetails(context.Background(), "netzteil-12v")
	if err != nil {
		t.Fatalf("GetDetails() error: %v", err)
	}
	if len(detail.VendorInfos) != 1 {
		t.Fatalf("%d vendor infos, want 1", len(detail.VendorInfos))
	}

	info := detail.VendorInfos[0]
	if len(info.Prices) != 2 {
		t.Fatalf("%d prices, want 2", len(info.Prices))
	}
	// Первая ступень всегда означает количество 1, что бы ни было в подписи
	if info.Prices[0].MinimumDiscountAmount != 1 || info.Prices[0].Price != "9.95" {
		t.Errorf("first tier = %v @ %q, want 1 @ 9.95",
			info.Prices[0].MinimumDiscountAmount, info.Prices[0].Price)
	}
	if info.Prices[1].MinimumDiscountAmount != 10 || info.Prices[1].Price != "8.99" {
		t.Errorf("second tier = %v @ %q, want 10 @ 8.99",
			info.Prices[1].MinimumDiscountAmount, info.Prices[1].Price)
	}
}

func TestPollinEANSupplement(t *testing.T) {
	provider := pollinTestProvider(t, pollinProductPage)

	detail, err := provider.GetDetails(context.Background(), "netzteil-12v")
	if err != nil {
		t.Fatalf("GetDetails() error: %v", err)
	}

	got := detail.VendorInfos[0].OrderNumber
	want := "351234, EAN: 4049702123456"
	if got != want {
		t.Errorf("order number = %q, want %q", got, want)
	}
}

func TestPollinBlockPricesMismatchIsParseError(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">{"@type": "Product", "name": "X", "sku": "X1"}</script>
	</head><body>
	<div class="product-block-prices">
		<span class="product-block-prices-quantity">Bis 9</span>
		<span class="product-block-prices-price">9,95 €</span>
		<span class="product-block-prices-price">8,99 €</span>
	</div>
	</body></html>`

	provider := pollinTestProvider(t, page)
	_, err := provider.GetDetails(context.Background(), "x")
	if !IsParseError(err) {
		t.Errorf("GetDetails() error = %v, want ParseError", err)
	}
}

func TestPollinImagesAndDatasheets(t *testing.T) {
	provider := pollinTestProvider(t, pollinProductPage)

	detail, err := provider.GetDetails(context.Background(), "netzteil-12v")
	if err != nil {
		t.Fatalf("GetDetails() error: %v", err)
	}

	if len(detail.Images) != 1 {
		t.Fatalf("%d images, want 1", len(detail.Images))
	}
	if detail.Images[0].URL != "https://cdn.pollin.de/big/351234.jpg" {
		t.Errorf("image = %q, want data-full-image value", detail.Images[0].URL)
	}

	if len(detail.Datasheets) != 1 {
		t.Fatalf("%d datasheets, want 1", len(detail.Datasheets))
	}
	// base64 href декодируется в настоящий URL
	decoded, _ := base64.StdEncoding.DecodeString("aHR0cHM6Ly9jZG4ucG9sbGluLmRlL2RhdGFzaGVldHMvMzUxMjM0LnBkZg==")
	if detail.Datasheets[0].URL != string(decoded) {
		t.Errorf("datasheet url = %q, want %q", detail.Datasheets[0].URL, decoded)
	}
}

func TestPollinGetDetailsNoProduct(t *testing.T) {
	provider := pollinTestProvider(t, "<html><body>nothing</body></html>")
	_, err := provider.GetDetails(context.Background(), "x")
	if !IsParseError(err) {
		t.Errorf("GetDetails() error = %v, want ParseError", err)
	}
}

func TestPollinSearchFromStructuredData(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">
	[{"@type": "Product", "name": "Netzteil 12V", "sku": "351234",
	  "url": "https://www.pollin.de/p/netzteil-12v"}]
	</script>
	</head><body></body></html>`

	provider := pollinTestProvider(t, page)
	results, err := provider.SearchByKeyword(context.Background(), "netzteil")
	if err != nil {
		t.Fatalf("SearchByKeyword() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("%d results, want 1", len(results))
	}
	if results[0].ProviderID != "netzteil-12v" {
		t.Errorf("provider id = %q, want slug from URL", results[0].ProviderID)
	}
}

func TestPollinSearchFallsBackToTiles(t *testing.T) {
	page := `<html><body>
	<div class="product-box">
		<a class="product-name" href="/p/netzteil-12v">Netzteil 12V</a>
		<div class="product-image"><img src="https://cdn.pollin.de/small/351234.jpg"></div>
	</div>
	<div class="product-box">
		<a class="product-name" href="https://www.pollin.de/p/luefter-80mm">Lüfter 80mm</a>
	</div>
	</body></html>`

	provider := pollinTestProvider(t, page)
	results, err := provider.SearchByKeyword(context.Background(), "netzteil")
	if err != nil {
		t.Fatalf("SearchByKeyword() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("%d results, want 2", len(results))
	}

	if results[0].ProviderID != "netzteil-12v" {
		t.Errorf("first provider id = %q", results[0].ProviderID)
	}
	if !strings.HasSuffix(results[0].ProviderURL, "/p/netzteil-12v") {
		t.Errorf("first provider url = %q, want absolute", results[0].ProviderURL)
	}
	if results[0].PreviewImageURL != "https://cdn.pollin.de/small/351234.jpg" {
		t.Errorf("first preview = %q", results[0].PreviewImageURL)
	}
	if results[1].ProviderID != "luefter-80mm" {
		t.Errorf("second provider id = %q", results[1].ProviderID)
	}
}

func TestPollinSearchEmptyPage(t *testing.T) {
	provider := pollinTestProvider(t, "<html><body></body></html>")
	results, err := provider.SearchByKeyword(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("SearchByKeyword() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("%d results, want 0", len(results))
	}
}
