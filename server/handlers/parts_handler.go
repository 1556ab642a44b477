package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"partserver/database"
	"partserver/export"
)

// PartsHandler обработчик для работы с сохраненными деталями
type PartsHandler struct {
	partsDB  *database.PartsDB
	exporter *export.Exporter
}

// NewPartsHandler создает новый обработчик деталей
func NewPartsHandler(partsDB *database.PartsDB, exporter *export.Exporter) *PartsHandler {
	return &PartsHandler{
		partsDB:  partsDB,
		exporter: exporter,
	}
}

// parsePagination читает limit/offset из параметров запроса
func parsePagination(c *gin.Context) (int, int) {
	limit := 50
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	return limit, offset
}

// HandleListParts обработчик получения списка деталей
// @Summary Получить список деталей
// @Description Возвращает сохраненные детали с фильтрацией и пагинацией
// @Tags parts
// @Produce json
// @Param limit query int false "Количество записей на странице" default(50)
// @Param offset query int false "Смещение для пагинации" default(0)
// @Param provider query string false "Фильтр по ключу провайдера"
// @Success 200 {object} map[string]interface{} "Список деталей"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/parts [get]
func (h *PartsHandler) HandleListParts(c *gin.Context) {
	limit, offset := parsePagination(c)

	parts, total, err := h.partsDB.ListParts(limit, offset, c.Query("provider"))
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "Не удалось получить список деталей: "+err.Error())
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"parts":  parts,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// HandleSearchParts обработчик поиска сохраненных деталей
// @Summary Поиск деталей в локальной базе
// @Description Выполняет поиск по ключевым словам с приведением слов к основам
// @Tags parts
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param limit query int false "Количество записей на странице" default(50)
// @Param offset query int false "Смещение для пагинации" default(0)
// @Success 200 {object} map[string]interface{} "Результаты поиска"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/parts/search [get]
func (h *PartsHandler) HandleSearchParts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		SendJSONError(c, http.StatusBadRequest, "Параметр 'q' обязателен для поиска")
		return
	}

	limit, offset := parsePagination(c)

	parts, total, err := h.partsDB.SearchParts(query, limit, offset)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "Не удалось выполнить поиск: "+err.Error())
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"parts":  parts,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// HandleGetPart обработчик получения детали по ID
// @Summary Получить деталь по ID
// @Description Возвращает сохраненную деталь вместе с полной записью провайдера
// @Tags parts
// @Produce json
// @Param id path int true "ID детали"
// @Success 200 {object} database.StoredPart "Деталь"
// @Failure 400 {object} ErrorResponse "Неверный ID"
// @Failure 404 {object} ErrorResponse "Деталь не найдена"
// @Router /api/parts/{id} [get]
func (h *PartsHandler) HandleGetPart(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, "Неверный ID детали")
		return
	}

	part, err := h.partsDB.GetPart(id)
	if err != nil {
		SendJSONError(c, http.StatusNotFound, "Деталь не найдена")
		return
	}

	SendJSONResponse(c, http.StatusOK, part)
}

// HandleGetStatistics обработчик статистики по базе деталей
// @Summary Статистика по базе деталей
// @Description Возвращает количество деталей по провайдерам и производителям
// @Tags parts
// @Produce json
// @Success 200 {object} map[string]interface{} "Статистика"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/parts/stats [get]
func (h *PartsHandler) HandleGetStatistics(c *gin.Context) {
	stats, err := h.partsDB.GetStatistics()
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "Не удалось получить статистику: "+err.Error())
		return
	}

	SendJSONResponse(c, http.StatusOK, stats)
}

// HandleExportParts обработчик экспорта деталей
// @Summary Экспорт деталей
// @Description Экспортирует сохраненные детали в файл выбранного формата
// @Tags parts
// @Produce application/octet-stream
// @Param format query string false "Формат: json, csv или excel" default(excel)
// @Param q query string false "Поисковый запрос для фильтрации"
// @Param provider query string false "Фильтр по ключу провайдера"
// @Success 200 {file} file "Файл экспорта"
// @Failure 400 {object} ErrorResponse "Неверный формат"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/parts/export [get]
func (h *PartsHandler) HandleExportParts(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", string(export.FormatExcel)))

	var ext string
	switch format {
	case export.FormatJSON:
		ext = "json"
	case export.FormatCSV:
		ext = "csv"
	case export.FormatExcel:
		ext = "xlsx"
	default:
		SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Неизвестный формат экспорта: %s", format))
		return
	}

	filename := fmt.Sprintf("parts_%s.%s", time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(os.TempDir(), filename)
	defer os.Remove(path)

	err := h.exporter.Export(format, path, export.Filters{
		ProviderKey: c.Query("provider"),
		Query:       c.Query("q"),
	})
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "Не удалось экспортировать детали: "+err.Error())
		return
	}

	c.FileAttachment(path, filename)
}
