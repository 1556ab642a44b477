package providers

import (
	"context"
	"errors"
	"testing"
)

// fakeProvider управляемая заглушка для тестов реестра
type fakeProvider struct {
	key     string
	active  bool
	results []*SearchResultDTO
	err     error
}

func (f *fakeProvider) GetProviderKey() string        { return f.key }
func (f *fakeProvider) GetProviderInfo() ProviderInfo { return ProviderInfo{Name: f.key} }
func (f *fakeProvider) IsActive() bool                { return f.active }
func (f *fakeProvider) GetCapabilities() []Capability { return []Capability{CapabilityBasic} }

func (f *fakeProvider) SearchByKeyword(ctx context.Context, keyword string) ([]*SearchResultDTO, error) {
	return f.results, f.err
}

func (f *fakeProvider) GetDetails(ctx context.Context, id string) (*PartDetailDTO, error) {
	return nil, errors.New("not implemented")
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{key: "alpha", active: true},
		&fakeProvider{key: "beta", active: false},
	)

	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{
			name: "active provider found",
			key:  "alpha",
		},
		{
			name:    "disabled provider",
			key:     "beta",
			wantErr: "provider beta is disabled",
		},
		{
			name:    "unknown provider",
			key:     "gamma",
			wantErr: "unknown provider gamma",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := registry.Get(tt.key)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Get(%q) error: %v", tt.key, err)
				}
				if provider.GetProviderKey() != tt.key {
					t.Errorf("Get(%q) returned provider %q", tt.key, provider.GetProviderKey())
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Get(%q) error = %v, want %q", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestRegistryActive(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{key: "alpha", active: true},
		&fakeProvider{key: "beta", active: false},
		&fakeProvider{key: "gamma", active: true},
	)

	active := registry.Active()
	if len(active) != 2 {
		t.Fatalf("Active() returned %d providers, want 2", len(active))
	}
	if active[0].GetProviderKey() != "alpha" || active[1].GetProviderKey() != "gamma" {
		t.Errorf("Active() order = %q, %q", active[0].GetProviderKey(), active[1].GetProviderKey())
	}
}

func TestRegistrySearchAggregatesResults(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{
			key:     "alpha",
			active:  true,
			results: []*SearchResultDTO{{ProviderKey: "alpha", ProviderID: "1"}},
		},
		&fakeProvider{
			key:     "beta",
			active:  true,
			results: []*SearchResultDTO{{ProviderKey: "beta", ProviderID: "2"}},
		},
	)

	response := registry.SearchByKeyword(context.Background(), "ne555", nil)
	if len(response.Results) != 2 {
		t.Fatalf("%d results, want 2", len(response.Results))
	}
	if len(response.Errors) != 0 {
		t.Errorf("errors = %v, want none", response.Errors)
	}
}

func TestRegistrySearchCollectsProviderErrors(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{
			key:     "alpha",
			active:  true,
			results: []*SearchResultDTO{{ProviderKey: "alpha", ProviderID: "1"}},
		},
		&fakeProvider{
			key:    "beta",
			active: true,
			err:    &FetchError{URL: "https://beta.example.com", Err: errors.New("timeout")},
		},
	)

	response := registry.SearchByKeyword(context.Background(), "ne555", nil)
	// Упавший провайдер не прерывает общий поиск
	if len(response.Results) != 1 {
		t.Fatalf("%d results, want 1", len(response.Results))
	}
	if _, ok := response.Errors["beta"]; !ok {
		t.Errorf("errors = %v, want entry for beta", response.Errors)
	}
}

func TestRegistrySearchFiltersByKeys(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{
			key:     "alpha",
			active:  true,
			results: []*SearchResultDTO{{ProviderKey: "alpha", ProviderID: "1"}},
		},
		&fakeProvider{
			key:     "beta",
			active:  true,
			results: []*SearchResultDTO{{ProviderKey: "beta", ProviderID: "2"}},
		},
		&fakeProvider{key: "gamma", active: false},
	)

	response := registry.SearchByKeyword(context.Background(), "ne555", []string{"beta", "gamma", "unknown"})
	// Неизвестные и неактивные ключи молча пропускаются
	if len(response.Results) != 1 {
		t.Fatalf("%d results, want 1", len(response.Results))
	}
	if response.Results[0].ProviderKey != "beta" {
		t.Errorf("result provider = %q, want beta", response.Results[0].ProviderKey)
	}
}
