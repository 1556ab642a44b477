package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"partserver/database"
)

// Format формат экспорта
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// Filters фильтры выборки деталей для экспорта
type Filters struct {
	// ProviderKey ограничивает экспорт одним провайдером
	ProviderKey string
	// Query поисковый запрос по ключевым словам
	Query string
	// Limit максимальное число записей, 0 — без ограничения
	Limit int
}

// Exporter экспортер сохраненных деталей
type Exporter struct {
	db *database.PartsDB
}

// NewExporter создает новый экспортер
func NewExporter(db *database.PartsDB) *Exporter {
	return &Exporter{db: db}
}

// Export экспортирует детали в файл в заданном формате
func (e *Exporter) Export(format Format, filename string, filters Filters) error {
	switch format {
	case FormatJSON:
		return e.ExportToJSON(filename, filters)
	case FormatCSV:
		return e.ExportToCSV(filename, filters)
	case FormatExcel:
		return e.ExportToExcel(filename, filters)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// ExportToJSON экспортирует детали в JSON
func (e *Exporter) ExportToJSON(filename string, filters Filters) error {
	parts, err := e.fetchParts(filters)
	if err != nil {
		return fmt.Errorf("failed to fetch parts: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
		"total":       len(parts),
		"parts":       parts,
	}

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportToCSV экспортирует детали в CSV
func (e *Exporter) ExportToCSV(filename string, filters Filters) error {
	parts, err := e.fetchParts(filters)
	if err != nil {
		return fmt.Errorf("failed to fetch parts: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, part := range parts {
		mass := ""
		if part.Mass != nil {
			mass = fmt.Sprintf("%.3f", *part.Mass)
		}
		record := []string{
			fmt.Sprintf("%d", part.ID),
			part.ProviderKey,
			part.ProviderID,
			part.Name,
			part.Description,
			part.Category,
			part.Manufacturer,
			part.MPN,
			part.Footprint,
			mass,
			part.ProviderURL,
			part.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}

var exportHeaders = []string{
	"ID", "Provider", "Provider ID", "Name", "Description", "Category",
	"Manufacturer", "MPN", "Footprint", "Mass (g)", "URL", "Updated At",
}

// ExportToExcel экспортирует детали в Excel
func (e *Exporter) ExportToExcel(filename string, filters Filters) error {
	parts, err := e.fetchParts(filters)
	if err != nil {
		return fmt.Errorf("failed to fetch parts: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Parts"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	// Стиль заголовков
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, part := range parts {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), part.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), part.ProviderKey)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), part.ProviderID)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), part.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), part.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), part.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), part.Manufacturer)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), part.MPN)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), part.Footprint)
		if part.Mass != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), *part.Mass)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), part.ProviderURL)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), part.UpdatedAt.Format(time.RFC3339))
	}

	// Автоширина колонок
	for i := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// fetchParts получает детали из базы с учетом фильтров
func (e *Exporter) fetchParts(filters Filters) ([]*database.StoredPart, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 100000
	}

	if filters.Query != "" {
		parts, _, err := e.db.SearchParts(filters.Query, limit, 0)
		return parts, err
	}
	parts, _, err := e.db.ListParts(limit, 0, filters.ProviderKey)
	return parts, err
}
