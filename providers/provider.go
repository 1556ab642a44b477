package providers

import "context"

// Capability возможность провайдера: какие необязательные поля он умеет
// заполнять. Вызывающая сторона решает по этому списку, какие разделы UI
// показывать, не дергая провайдера.
type Capability string

const (
	CapabilityBasic     Capability = "basic"
	CapabilityFootprint Capability = "footprint"
	CapabilityPicture   Capability = "picture"
	CapabilityDatasheet Capability = "datasheet"
	CapabilityPrice     Capability = "price"
)

// ProviderInfo метаданные провайдера для отображения
type ProviderInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	DisabledHelp string `json:"disabled_help,omitempty"`
}

// InfoProvider провайдер информации о деталях для одного магазина
// (или обобщенного источника "по URL").
//
// Экземпляр не хранит состояние между вызовами: вся конфигурация
// иммутабельна после конструирования, промежуточные данные живут в
// локальных переменных вызова. Поэтому параллельные вызовы из разных
// запросов безопасны.
type InfoProvider interface {
	// GetProviderKey возвращает стабильный короткий идентификатор провайдера
	GetProviderKey() string

	// GetProviderInfo возвращает метаданные провайдера
	GetProviderInfo() ProviderInfo

	// IsActive проверяет, включен ли провайдер конфигурацией.
	// Неактивные провайдеры исключаются из диспетчеризации выше по стеку.
	IsActive() bool

	// GetCapabilities возвращает список возможностей провайдера
	GetCapabilities() []Capability

	// SearchByKeyword ищет детали по ключевому слову. Отказывает мягко:
	// нераспознаваемый или недоверенный ввод дает пустой список, не ошибку.
	// Ошибки транспорта (FetchError) пробрасываются.
	SearchByKeyword(ctx context.Context, keyword string) ([]*SearchResultDTO, error)

	// GetDetails возвращает полную информацию по идентификатору.
	// Всегда возвращает либо полную запись, либо типизированную ошибку:
	// ParseError, DomainNotTrustedError или FetchError.
	GetDetails(ctx context.Context, id string) (*PartDetailDTO, error)
}
