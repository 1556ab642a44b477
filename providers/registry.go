package providers

import (
	"context"
	"fmt"
	"log"
)

// Registry упорядоченный реестр провайдеров. Диспетчеризация идет только по
// активным провайдерам; порядок регистрации определяет порядок результатов.
type Registry struct {
	providers []InfoProvider
}

// NewRegistry создает реестр с заданными провайдерами
func NewRegistry(providers ...InfoProvider) *Registry {
	return &Registry{providers: providers}
}

// Register добавляет провайдера в конец реестра
func (r *Registry) Register(p InfoProvider) {
	r.providers = append(r.providers, p)
}

// All возвращает всех зарегистрированных провайдеров, включая неактивные
func (r *Registry) All() []InfoProvider {
	return r.providers
}

// Active возвращает только активных провайдеров
func (r *Registry) Active() []InfoProvider {
	var active []InfoProvider
	for _, p := range r.providers {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// Get находит активного провайдера по ключу
func (r *Registry) Get(key string) (InfoProvider, error) {
	for _, p := range r.providers {
		if p.GetProviderKey() != key {
			continue
		}
		if !p.IsActive() {
			return nil, fmt.Errorf("provider %s is disabled", key)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown provider %s", key)
}

// SearchResponse результат поиска по нескольким провайдерам.
// Ошибки отдельных провайдеров не прерывают общий поиск.
type SearchResponse struct {
	Results []*SearchResultDTO `json:"results"`
	// Errors тексты ошибок по ключам упавших провайдеров
	Errors map[string]string `json:"errors,omitempty"`
}

// SearchByKeyword опрашивает провайдеров по очереди и склеивает результаты.
// Пустой список ключей означает всех активных провайдеров; неизвестные и
// неактивные ключи пропускаются.
func (r *Registry) SearchByKeyword(ctx context.Context, keyword string, keys []string) *SearchResponse {
	selected := r.Active()
	if len(keys) > 0 {
		selected = selected[:0:0]
		for _, key := range keys {
			p, err := r.Get(key)
			if err != nil {
				continue
			}
			selected = append(selected, p)
		}
	}

	response := &SearchResponse{Results: []*SearchResultDTO{}}
	for _, p := range selected {
		results, err := p.SearchByKeyword(ctx, keyword)
		if err != nil {
			log.Printf("provider %s search failed: %v", p.GetProviderKey(), err)
			if response.Errors == nil {
				response.Errors = make(map[string]string)
			}
			response.Errors[p.GetProviderKey()] = err.Error()
			continue
		}
		response.Results = append(response.Results, results...)
	}
	return response
}
