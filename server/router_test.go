package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partserver/database"
	"partserver/providers"
)

// routerStubProvider минимальный провайдер для интеграционных тестов роутера
type routerStubProvider struct {
	key    string
	detail *providers.PartDetailDTO
}

func (p *routerStubProvider) GetProviderKey() string { return p.key }
func (p *routerStubProvider) GetProviderInfo() providers.ProviderInfo {
	return providers.ProviderInfo{Name: p.key}
}
func (p *routerStubProvider) IsActive() bool { return true }
func (p *routerStubProvider) GetCapabilities() []providers.Capability {
	return []providers.Capability{providers.CapabilityBasic}
}

func (p *routerStubProvider) SearchByKeyword(ctx context.Context, keyword string) ([]*providers.SearchResultDTO, error) {
	return []*providers.SearchResultDTO{
		{ProviderKey: p.key, ProviderID: "1", Name: "NE555"},
	}, nil
}

func (p *routerStubProvider) GetDetails(ctx context.Context, id string) (*providers.PartDetailDTO, error) {
	return p.detail, nil
}

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.NewPartsDB(filepath.Join(t.TempDir(), "router_test.db"))
	require.NoError(t, err, "NewPartsDB должен создать базу")
	t.Cleanup(func() { db.Close() })

	registry := providers.NewRegistry(&routerStubProvider{
		key:    "alpha",
		detail: &providers.PartDetailDTO{ProviderKey: "alpha", ProviderID: "1", Name: "NE555"},
	})
	return NewRouter(registry, db)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouterWiresProviderEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/info-providers", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/info-providers/alpha/parts/1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var detail providers.PartDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "NE555", detail.Name)
}

func TestRouterWiresPartsEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	// Импорт через провайдера, затем чтение из локальной базы
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/info-providers/alpha/parts/1/import", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/parts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
}

func TestRouterSetsRequestID(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterUnknownRoute(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
