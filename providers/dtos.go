package providers

// DTO каноничного представления детали. Конструируются заново на каждый
// запрос, после возврата вызывающему не изменяются.

// PartDetailDTO полная информация о детали от провайдера
type PartDetailDTO struct {
	ProviderKey string `json:"provider_key"`
	ProviderID  string `json:"provider_id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Категория как одна строка, сегменты соединены разделителем " -> "
	Category     string `json:"category,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	MPN          string `json:"mpn,omitempty"`

	PreviewImageURL        string `json:"preview_image_url,omitempty"`
	ManufacturingStatus    string `json:"manufacturing_status,omitempty"`
	ProviderURL            string `json:"provider_url,omitempty"`
	ManufacturerProductURL string `json:"manufacturer_product_url,omitempty"`
	Footprint              string `json:"footprint,omitempty"`
	Notes                  string `json:"notes,omitempty"`

	Parameters  []*ParameterDTO    `json:"parameters"`
	Images      []*FileDTO         `json:"images"`
	Datasheets  []*FileDTO         `json:"datasheets"`
	VendorInfos []*PurchaseInfoDTO `json:"vendor_infos"`

	// Масса в граммах
	Mass *float64 `json:"mass,omitempty"`
}

// SearchResultDTO краткая информация о детали в результатах поиска
type SearchResultDTO struct {
	ProviderKey         string `json:"provider_key"`
	ProviderID          string `json:"provider_id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Category            string `json:"category,omitempty"`
	Manufacturer        string `json:"manufacturer,omitempty"`
	MPN                 string `json:"mpn,omitempty"`
	PreviewImageURL     string `json:"preview_image_url,omitempty"`
	ManufacturingStatus string `json:"manufacturing_status,omitempty"`
	ProviderURL         string `json:"provider_url,omitempty"`
	Footprint           string `json:"footprint,omitempty"`
}

// PurchaseInfoDTO информация о закупке у одного дистрибьютора
type PurchaseInfoDTO struct {
	// Никогда не пустое: при неизвестном продавце подставляется
	// DistributorPlaceholder
	DistributorName string      `json:"distributor_name"`
	OrderNumber     string      `json:"order_number"`
	Prices          []*PriceDTO `json:"prices"`
	ProductURL      string      `json:"product_url,omitempty"`
}

// PriceDTO одна ценовая ступень
type PriceDTO struct {
	// Минимальное количество для этой цены, по умолчанию 1
	MinimumDiscountAmount float64 `json:"minimum_discount_amount"`
	// Десятичная строка, запятая нормализована в точку
	Price string `json:"price"`
	// nil, если исходная валюта не является кодом ISO 4217
	CurrencyISOCode *string `json:"currency_iso_code"`
	IncludesTax     bool    `json:"includes_tax"`
}

// ParameterDTO параметр детали: либо текстовое значение, либо числовая
// тройка min/typ/max
type ParameterDTO struct {
	Name      string   `json:"name"`
	ValueText string   `json:"value_text,omitempty"`
	ValueMin  *float64 `json:"value_min,omitempty"`
	ValueTyp  *float64 `json:"value_typ,omitempty"`
	ValueMax  *float64 `json:"value_max,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Group     string   `json:"group,omitempty"`
}

// FileDTO ссылка на файл (изображение, даташит) с необязательной подписью
type FileDTO struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// ToSearchResult сокращает полную информацию до результата поиска
func (d *PartDetailDTO) ToSearchResult() *SearchResultDTO {
	return &SearchResultDTO{
		ProviderKey:         d.ProviderKey,
		ProviderID:          d.ProviderID,
		Name:                d.Name,
		Description:         d.Description,
		Category:            d.Category,
		Manufacturer:        d.Manufacturer,
		MPN:                 d.MPN,
		PreviewImageURL:     d.PreviewImageURL,
		ManufacturingStatus: d.ManufacturingStatus,
		ProviderURL:         d.ProviderURL,
		Footprint:           d.Footprint,
	}
}
