package providers

import (
	"encoding/base64"
	"testing"

	"partserver/schema"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  string
	}{
		{
			name:  "comma becomes dot",
			price: "1,99",
			want:  "1.99",
		},
		{
			name:  "dot untouched",
			price: "1.99",
			want:  "1.99",
		},
		{
			name:  "surrounding whitespace trimmed",
			price: " 12,50 ",
			want:  "12.50",
		},
		{
			name:  "integer untouched",
			price: "5",
			want:  "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePrice(tt.price)
			if got != tt.want {
				t.Errorf("NormalizePrice(%q) = %q, want %q", tt.price, got, tt.want)
			}
		})
	}
}

func TestCurrencyISOCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantNil bool
	}{
		{
			name: "valid EUR",
			code: "EUR",
			want: "EUR",
		},
		{
			name: "lowercase accepted",
			code: "eur",
			want: "EUR",
		},
		{
			name: "US$ alias",
			code: "US$",
			want: "USD",
		},
		{
			name:    "symbol is not a code",
			code:    "€",
			wantNil: true,
		},
		{
			name:    "empty",
			code:    "",
			wantNil: true,
		},
		{
			name:    "garbage",
			code:    "EURO2",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrencyISOCode(tt.code)
			if tt.wantNil {
				if got != nil {
					t.Errorf("CurrencyISOCode(%q) = %q, want nil", tt.code, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("CurrencyISOCode(%q) = nil, want %q", tt.code, tt.want)
			}
			if *got != tt.want {
				t.Errorf("CurrencyISOCode(%q) = %q, want %q", tt.code, *got, tt.want)
			}
		})
	}
}

func TestJoinCategorySegments(t *testing.T) {
	got := JoinCategorySegments([]string{" Resistors ", "", "Fixed", "THT"})
	want := "Resistors -> Fixed -> THT"
	if got != want {
		t.Errorf("JoinCategorySegments() = %q, want %q", got, want)
	}
}

func makeProduct() *schema.Thing {
	product := schema.NewThing(schema.TypeProduct)
	product.AddString("name", "NE555 Timer")
	product.AddString("description", "Precision timer IC")
	product.AddString("sku", "NE555")
	product.AddString("url", "https://shop.example.com/p/ne555")
	return product
}

func TestNormalizeCategoryFromOwnProperty(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{
			name:     "slash separated",
			category: "Resistors/Fixed/THT",
			want:     "Resistors -> Fixed -> THT",
		},
		{
			name:     "mixed separators",
			category: "Resistors/Fixed>THT",
			want:     "Resistors -> Fixed -> THT",
		},
		{
			name:     "single segment",
			category: "Resistors",
			want:     "Resistors",
		},
	}

	normalizer := &Normalizer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := makeProduct()
			product.AddString("category", tt.category)
			dto := normalizer.Normalize(product, "test", NormalizeContext{})
			if dto.Category != tt.want {
				t.Errorf("category = %q, want %q", dto.Category, tt.want)
			}
		})
	}
}

func TestNormalizeCategoryFallsBackToBreadcrumbs(t *testing.T) {
	normalizer := &Normalizer{}
	dto := normalizer.Normalize(makeProduct(), "test", NormalizeContext{
		CategoryFallback: []string{"Home", "Semiconductors", "Timers"},
	})
	want := "Home -> Semiconductors -> Timers"
	if dto.Category != want {
		t.Errorf("category = %q, want %q", dto.Category, want)
	}
}

func TestNormalizeMassConversion(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		unitCode string
		want     float64
		missing  bool
	}{
		{
			name:     "kilograms",
			value:    "0.5",
			unitCode: "KGM",
			want:     500,
		},
		{
			name:     "grams",
			value:    "12",
			unitCode: "GRM",
			want:     12,
		},
		{
			name:     "milligrams",
			value:    "250",
			unitCode: "MGM",
			want:     0.25,
		},
		{
			name:     "pounds",
			value:    "1",
			unitCode: "LBR",
			want:     453.59237,
		},
		{
			name:     "comma decimal separator",
			value:    "0,5",
			unitCode: "KGM",
			want:     500,
		},
		{
			name:     "unknown unit leaves mass empty",
			value:    "5",
			unitCode: "STN",
			missing:  true,
		},
		{
			name:     "non numeric value leaves mass empty",
			value:    "heavy",
			unitCode: "KGM",
			missing:  true,
		},
	}

	normalizer := &Normalizer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weight := schema.NewThing(schema.TypeQuantitativeValue)
			weight.AddString("value", tt.value)
			weight.AddString("unitCode", tt.unitCode)

			product := makeProduct()
			product.AddThing("weight", weight)

			dto := normalizer.Normalize(product, "test", NormalizeContext{})
			if tt.missing {
				if dto.Mass != nil {
					t.Errorf("mass = %v, want nil", *dto.Mass)
				}
				return
			}
			if dto.Mass == nil {
				t.Fatalf("mass = nil, want %v", tt.want)
			}
			if *dto.Mass != tt.want {
				t.Errorf("mass = %v, want %v", *dto.Mass, tt.want)
			}
		})
	}
}

func TestNormalizeProviderIDURLBase64(t *testing.T) {
	normalizer := &Normalizer{}
	dto := normalizer.Normalize(makeProduct(), "strucdata", NormalizeContext{
		ProviderIDOverride: ProviderIDURLBase64,
	})

	want := base64.StdEncoding.EncodeToString([]byte("https://shop.example.com/p/ne555"))
	if dto.ProviderID != want {
		t.Errorf("provider id = %q, want %q", dto.ProviderID, want)
	}
}

func TestNormalizeProviderIDDefaultsToSKU(t *testing.T) {
	normalizer := &Normalizer{}
	dto := normalizer.Normalize(makeProduct(), "test", NormalizeContext{})
	if dto.ProviderID != "NE555" {
		t.Errorf("provider id = %q, want %q", dto.ProviderID, "NE555")
	}
}

func TestNormalizePageURLFallback(t *testing.T) {
	product := schema.NewThing(schema.TypeProduct)
	product.AddString("name", "Unnamed")

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{URL: "https://shop.example.com/p/1"})
	if dto.ProviderURL != "https://shop.example.com/p/1" {
		t.Errorf("provider url = %q, want context URL", dto.ProviderURL)
	}
}

func TestNormalizeVendorInfos(t *testing.T) {
	offer := schema.NewThing(schema.TypeOffer)
	offer.AddString("price", "1,99")
	offer.AddString("priceCurrency", "EUR")

	product := makeProduct()
	product.AddThing("offers", offer)

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{
		SellerFallback: "Example Shop",
		IncludesTax:    true,
	})

	if len(dto.VendorInfos) != 1 {
		t.Fatalf("%d vendor infos, want 1", len(dto.VendorInfos))
	}
	info := dto.VendorInfos[0]
	if info.DistributorName != "Example Shop" {
		t.Errorf("distributor = %q, want %q", info.DistributorName, "Example Shop")
	}
	if info.OrderNumber != "NE555" {
		t.Errorf("order number = %q, want %q", info.OrderNumber, "NE555")
	}
	if len(info.Prices) != 1 {
		t.Fatalf("%d prices, want 1", len(info.Prices))
	}
	price := info.Prices[0]
	if price.Price != "1.99" {
		t.Errorf("price = %q, want %q", price.Price, "1.99")
	}
	if price.MinimumDiscountAmount != 1 {
		t.Errorf("min discount amount = %v, want 1", price.MinimumDiscountAmount)
	}
	if price.CurrencyISOCode == nil || *price.CurrencyISOCode != "EUR" {
		t.Errorf("currency = %v, want EUR", price.CurrencyISOCode)
	}
	if !price.IncludesTax {
		t.Error("includes tax = false, want true")
	}
}

func TestNormalizeDistributorPlaceholder(t *testing.T) {
	offer := schema.NewThing(schema.TypeOffer)
	offer.AddString("price", "1.00")

	product := makeProduct()
	product.AddThing("offers", offer)

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{})

	if len(dto.VendorInfos) != 1 {
		t.Fatalf("%d vendor infos, want 1", len(dto.VendorInfos))
	}
	if got := dto.VendorInfos[0].DistributorName; got != DistributorPlaceholder {
		t.Errorf("distributor = %q, want placeholder %q", got, DistributorPlaceholder)
	}
}

func TestNormalizeGTINSuffix(t *testing.T) {
	tests := []struct {
		name    string
		addGTIN bool
		sku     string
		gtin    string
		want    string
	}{
		{
			name:    "suffix added",
			addGTIN: true,
			sku:     "ABC123",
			gtin:    "4001234567890",
			want:    "ABC123, GTIN: 4001234567890",
		},
		{
			name:    "flag disabled",
			addGTIN: false,
			sku:     "ABC123",
			gtin:    "4001234567890",
			want:    "ABC123",
		},
		{
			name:    "no gtin",
			addGTIN: true,
			sku:     "ABC123",
			want:    "ABC123",
		},
		{
			name:    "sku equals gtin",
			addGTIN: true,
			gtin:    "4001234567890",
			want:    "4001234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := schema.NewThing(schema.TypeOffer)
			offer.AddString("price", "1.00")

			product := schema.NewThing(schema.TypeProduct)
			product.AddString("name", "Part")
			if tt.sku != "" {
				product.AddString("sku", tt.sku)
			}
			if tt.gtin != "" {
				product.AddString("gtin13", tt.gtin)
			}
			product.AddThing("offers", offer)

			normalizer := &Normalizer{AddGTINToOrderNo: tt.addGTIN}
			dto := normalizer.Normalize(product, "test", NormalizeContext{})
			if len(dto.VendorInfos) != 1 {
				t.Fatalf("%d vendor infos, want 1", len(dto.VendorInfos))
			}
			if got := dto.VendorInfos[0].OrderNumber; got != tt.want {
				t.Errorf("order number = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeOfferWithoutPriceIsSkipped(t *testing.T) {
	offer := schema.NewThing(schema.TypeOffer)
	offer.AddString("availability", "InStock")

	product := makeProduct()
	product.AddThing("offers", offer)

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{})
	if len(dto.VendorInfos) != 1 {
		t.Fatalf("%d vendor infos, want 1", len(dto.VendorInfos))
	}
	if got := len(dto.VendorInfos[0].Prices); got != 0 {
		t.Errorf("%d prices, want 0", got)
	}
}

func TestNormalizeEligibleQuantity(t *testing.T) {
	quantity := schema.NewThing(schema.TypeQuantitativeValue)
	quantity.AddString("minValue", "10")

	offer := schema.NewThing(schema.TypeOffer)
	offer.AddString("price", "0.50")
	offer.AddThing("eligibleQuantity", quantity)

	product := makeProduct()
	product.AddThing("offers", offer)

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{})
	price := dto.VendorInfos[0].Prices[0]
	if price.MinimumDiscountAmount != 10 {
		t.Errorf("min discount amount = %v, want 10", price.MinimumDiscountAmount)
	}
}

func TestNormalizeManufacturerFallsBackToBrand(t *testing.T) {
	brand := schema.NewThing(schema.TypeBrand)
	brand.AddString("name", "Texas Instruments")

	product := makeProduct()
	product.AddThing("brand", brand)

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{})
	if dto.Manufacturer != "Texas Instruments" {
		t.Errorf("manufacturer = %q, want %q", dto.Manufacturer, "Texas Instruments")
	}
}

func TestNormalizeImagesDeduplicated(t *testing.T) {
	product := makeProduct()
	product.AddString("image", "https://example.com/a.jpg")
	product.AddString("image", "https://example.com/a.jpg")
	product.AddString("image", "https://example.com/b.jpg")

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{})
	if len(dto.Images) != 2 {
		t.Fatalf("%d images, want 2", len(dto.Images))
	}
	if dto.PreviewImageURL != "https://example.com/a.jpg" {
		t.Errorf("preview = %q, want first image", dto.PreviewImageURL)
	}
}

func TestNormalizePreviewFallsBackToLogo(t *testing.T) {
	product := makeProduct()
	product.AddString("logo", "https://example.com/logo.png")

	normalizer := &Normalizer{}
	dto := normalizer.Normalize(product, "test", NormalizeContext{})
	if dto.PreviewImageURL != "https://example.com/logo.png" {
		t.Errorf("preview = %q, want logo", dto.PreviewImageURL)
	}
}
