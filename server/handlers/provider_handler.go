package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"partserver/database"
	"partserver/providers"
)

// ProviderHandler обработчик для работы с провайдерами информации о деталях
type ProviderHandler struct {
	registry *providers.Registry
	partsDB  *database.PartsDB
}

// NewProviderHandler создает новый обработчик провайдеров
func NewProviderHandler(registry *providers.Registry, partsDB *database.PartsDB) *ProviderHandler {
	return &ProviderHandler{
		registry: registry,
		partsDB:  partsDB,
	}
}

// providerSummary описание провайдера в ответе API
type providerSummary struct {
	Key          string                 `json:"key"`
	Info         providers.ProviderInfo `json:"info"`
	Capabilities []providers.Capability `json:"capabilities"`
	Active       bool                   `json:"active"`
}

// HandleListProviders обработчик списка провайдеров
// @Summary Список провайдеров информации о деталях
// @Description Возвращает все зарегистрированные провайдеры с их возможностями
// @Tags providers
// @Produce json
// @Success 200 {object} map[string]interface{} "Список провайдеров"
// @Router /api/info-providers [get]
func (h *ProviderHandler) HandleListProviders(c *gin.Context) {
	list := make([]providerSummary, 0)
	for _, p := range h.registry.All() {
		list = append(list, providerSummary{
			Key:          p.GetProviderKey(),
			Info:         p.GetProviderInfo(),
			Capabilities: p.GetCapabilities(),
			Active:       p.IsActive(),
		})
	}

	SendJSONResponse(c, http.StatusOK, gin.H{"providers": list})
}

// HandleSearch обработчик поиска деталей у провайдеров
// @Summary Поиск деталей по ключевому слову
// @Description Опрашивает активных провайдеров и возвращает объединенные результаты
// @Tags providers
// @Produce json
// @Param keyword query string true "Ключевое слово"
// @Param providers query string false "Ключи провайдеров через запятую (по умолчанию все активные)"
// @Success 200 {object} providers.SearchResponse "Результаты поиска"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/info-providers/search [get]
func (h *ProviderHandler) HandleSearch(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		SendJSONError(c, http.StatusBadRequest, "Параметр 'keyword' обязателен для поиска")
		return
	}

	var keys []string
	if raw := c.Query("providers"); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			if key = strings.TrimSpace(key); key != "" {
				keys = append(keys, key)
			}
		}
	}

	response := h.registry.SearchByKeyword(c.Request.Context(), keyword, keys)
	SendJSONResponse(c, http.StatusOK, response)
}

// HandleGetDetails обработчик получения полной информации о детали
// @Summary Полная информация о детали
// @Description Возвращает полную запись детали от провайдера по идентификатору
// @Tags providers
// @Produce json
// @Param key path string true "Ключ провайдера"
// @Param id path string true "Идентификатор детали у провайдера"
// @Success 200 {object} providers.PartDetailDTO "Информация о детали"
// @Failure 403 {object} ErrorResponse "Домен не входит в список доверенных"
// @Failure 404 {object} ErrorResponse "Провайдер или деталь не найдены"
// @Failure 502 {object} ErrorResponse "Ошибка запроса к магазину"
// @Router /api/info-providers/{key}/parts/{id} [get]
func (h *ProviderHandler) HandleGetDetails(c *gin.Context) {
	detail, ok := h.fetchDetails(c)
	if !ok {
		return
	}
	SendJSONResponse(c, http.StatusOK, detail)
}

// HandleImport обработчик импорта детали в локальную базу
// @Summary Импортировать деталь
// @Description Получает полную запись детали от провайдера и сохраняет её в базе
// @Tags providers
// @Produce json
// @Param key path string true "Ключ провайдера"
// @Param id path string true "Идентификатор детали у провайдера"
// @Success 200 {object} database.StoredPart "Сохраненная деталь"
// @Failure 403 {object} ErrorResponse "Домен не входит в список доверенных"
// @Failure 404 {object} ErrorResponse "Провайдер или деталь не найдены"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Failure 502 {object} ErrorResponse "Ошибка запроса к магазину"
// @Router /api/info-providers/{key}/parts/{id}/import [post]
func (h *ProviderHandler) HandleImport(c *gin.Context) {
	detail, ok := h.fetchDetails(c)
	if !ok {
		return
	}

	part, err := h.partsDB.SavePart(detail)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "Не удалось сохранить деталь: "+err.Error())
		return
	}
	SendJSONResponse(c, http.StatusOK, part)
}

// fetchDetails получает деталь у провайдера и переводит типизированные
// ошибки в HTTP статусы; при ошибке ответ уже отправлен
func (h *ProviderHandler) fetchDetails(c *gin.Context) (*providers.PartDetailDTO, bool) {
	provider, err := h.registry.Get(c.Param("key"))
	if err != nil {
		SendJSONError(c, http.StatusNotFound, err.Error())
		return nil, false
	}

	detail, err := provider.GetDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case providers.IsDomainNotTrusted(err):
			SendJSONError(c, http.StatusForbidden, err.Error())
		case providers.IsParseError(err):
			SendJSONError(c, http.StatusNotFound, err.Error())
		case providers.IsFetchError(err):
			SendJSONError(c, http.StatusBadGateway, err.Error())
		default:
			SendJSONError(c, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return detail, true
}
