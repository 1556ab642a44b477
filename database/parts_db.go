package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"partserver/providers"
)

// DBConfig конфигурация пула подключений
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PartsDB обертка для работы с базой импортированных деталей
type PartsDB struct {
	conn    *sql.DB
	stemmer *KeywordStemmer
}

// NewPartsDB создает новое подключение к базе деталей
func NewPartsDB(dbPath string) (*PartsDB, error) {
	return NewPartsDBWithConfig(dbPath, DBConfig{})
}

// NewPartsDBWithConfig создает новое подключение к базе деталей с конфигурацией
func NewPartsDBWithConfig(dbPath string, config DBConfig) (*PartsDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parts database: %w", err)
	}

	// Настройка connection pooling
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(25)
	}

	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(5)
	}

	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	// Проверяем подключение
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping parts database: %w", err)
	}

	// Убеждаемся, что SQLite использует UTF-8 для текстовых данных
	if _, err := conn.Exec("PRAGMA encoding = 'UTF-8'"); err != nil {
		log.Printf("Warning: failed to set UTF-8 encoding: %v", err)
	}

	if err := InitPartsSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize parts schema: %w", err)
	}

	return &PartsDB{conn: conn, stemmer: NewKeywordStemmer()}, nil
}

// Close закрывает подключение к базе деталей
func (db *PartsDB) Close() error {
	return db.conn.Close()
}

// GetConnection возвращает указатель на sql.DB для прямого доступа
func (db *PartsDB) GetConnection() *sql.DB {
	return db.conn
}

// StoredPart запись детали в базе
type StoredPart struct {
	ID              int       `json:"id"`
	ProviderKey     string    `json:"provider_key"`
	ProviderID      string    `json:"provider_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Manufacturer    string    `json:"manufacturer"`
	MPN             string    `json:"mpn"`
	PreviewImageURL string    `json:"preview_image_url"`
	ProviderURL     string    `json:"provider_url"`
	Footprint       string    `json:"footprint"`
	Mass            *float64  `json:"mass,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Detail полная запись провайдера
	Detail *providers.PartDetailDTO `json:"detail,omitempty"`
}

// SavePart создает или обновляет деталь по паре (provider_key, provider_id)
func (db *PartsDB) SavePart(detail *providers.PartDetailDTO) (*StoredPart, error) {
	if detail.ProviderKey == "" || detail.ProviderID == "" {
		return nil, fmt.Errorf("part has no provider identity")
	}

	data, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal part: %w", err)
	}

	keywords := db.stemmer.StemText(strings.Join([]string{
		detail.Name, detail.Description, detail.Category, detail.Manufacturer, detail.MPN,
	}, " "))

	query := `
		INSERT INTO parts (provider_key, provider_id, name, description, category,
		                   manufacturer, mpn, preview_image_url, provider_url,
		                   footprint, mass, data, keywords, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(provider_key, provider_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			manufacturer = excluded.manufacturer,
			mpn = excluded.mpn,
			preview_image_url = excluded.preview_image_url,
			provider_url = excluded.provider_url,
			footprint = excluded.footprint,
			mass = excluded.mass,
			data = excluded.data,
			keywords = excluded.keywords,
			updated_at = CURRENT_TIMESTAMP
	`

	var mass sql.NullFloat64
	if detail.Mass != nil {
		mass = sql.NullFloat64{Float64: *detail.Mass, Valid: true}
	}

	_, err = db.conn.Exec(query,
		detail.ProviderKey, detail.ProviderID, detail.Name, detail.Description,
		detail.Category, detail.Manufacturer, detail.MPN, detail.PreviewImageURL,
		detail.ProviderURL, detail.Footprint, mass, string(data), keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to save part: %w", err)
	}

	return db.GetPartByProvider(detail.ProviderKey, detail.ProviderID)
}

// GetPart получает деталь по ID
func (db *PartsDB) GetPart(id int) (*StoredPart, error) {
	row := db.conn.QueryRow(selectPartColumns+" FROM parts WHERE id = ?", id)
	return scanPart(row)
}

// GetPartByProvider получает деталь по паре (provider_key, provider_id)
func (db *PartsDB) GetPartByProvider(providerKey, providerID string) (*StoredPart, error) {
	row := db.conn.QueryRow(
		selectPartColumns+" FROM parts WHERE provider_key = ? AND provider_id = ?",
		providerKey, providerID)
	return scanPart(row)
}

const selectPartColumns = `
	SELECT id, provider_key, provider_id, name, description, category,
	       manufacturer, mpn, preview_image_url, provider_url, footprint,
	       mass, data, created_at, updated_at
`

// rowScanner общий интерфейс sql.Row и sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPart(row rowScanner) (*StoredPart, error) {
	part := &StoredPart{}

	var mass sql.NullFloat64
	var data string
	var createdAt sql.NullTime

	err := row.Scan(
		&part.ID, &part.ProviderKey, &part.ProviderID, &part.Name,
		&part.Description, &part.Category, &part.Manufacturer, &part.MPN,
		&part.PreviewImageURL, &part.ProviderURL, &part.Footprint,
		&mass, &data, &createdAt, &part.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan part: %w", err)
	}

	if createdAt.Valid {
		part.CreatedAt = createdAt.Time
	} else {
		part.CreatedAt = part.UpdatedAt
	}
	if mass.Valid {
		part.Mass = &mass.Float64
	}

	detail := &providers.PartDetailDTO{}
	if err := json.Unmarshal([]byte(data), detail); err == nil {
		part.Detail = detail
	}

	return part, nil
}

// ListParts возвращает список деталей с пагинацией
func (db *PartsDB) ListParts(limit, offset int, providerKey string) ([]*StoredPart, int, error) {
	whereClause := "1=1"
	args := []interface{}{}

	if providerKey != "" {
		whereClause += " AND provider_key = ?"
		args = append(args, providerKey)
	}

	query := fmt.Sprintf("%s FROM parts WHERE %s ORDER BY name LIMIT ? OFFSET ?",
		selectPartColumns, whereClause)

	argsWithPagination := append(append([]interface{}{}, args...), limit, offset)
	rows, err := db.conn.Query(query, argsWithPagination...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	var parts []*StoredPart
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, 0, err
		}
		parts = append(parts, part)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM parts WHERE %s", whereClause)
	var total int
	if err := db.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parts: %w", err)
	}

	return parts, total, nil
}

// SearchParts выполняет поиск деталей по ключевым словам.
// Слова запроса приводятся к основам тем же стеммером, что и индекс.
func (db *PartsDB) SearchParts(query string, limit, offset int) ([]*StoredPart, int, error) {
	whereClause := "1=1"
	args := []interface{}{}

	for _, word := range strings.Fields(query) {
		stemmed := db.stemmer.Stem(word)
		if stemmed == "" {
			continue
		}
		whereClause += " AND (keywords LIKE ? OR name LIKE ? OR mpn LIKE ?)"
		pattern := "%" + stemmed + "%"
		args = append(args, pattern, pattern, "%"+word+"%")
	}

	searchQuery := fmt.Sprintf("%s FROM parts WHERE %s ORDER BY name LIMIT ? OFFSET ?",
		selectPartColumns, whereClause)

	argsWithPagination := append(append([]interface{}{}, args...), limit, offset)
	rows, err := db.conn.Query(searchQuery, argsWithPagination...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search parts: %w", err)
	}
	defer rows.Close()

	var parts []*StoredPart
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, 0, err
		}
		parts = append(parts, part)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM parts WHERE %s", whereClause)
	var total int
	if err := db.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parts: %w", err)
	}

	return parts, total, nil
}

// GetStatistics возвращает статистику по базе деталей
func (db *PartsDB) GetStatistics() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalParts int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM parts").Scan(&totalParts); err != nil {
		return nil, fmt.Errorf("failed to count parts: %w", err)
	}
	stats["total_parts"] = totalParts

	// Количество по провайдерам
	rows, err := db.conn.Query(`
		SELECT provider_key, COUNT(*) as count
		FROM parts
		GROUP BY provider_key
	`)
	if err == nil {
		defer rows.Close()
		providerCounts := make(map[string]int)
		for rows.Next() {
			var key string
			var count int
			if err := rows.Scan(&key, &count); err == nil {
				providerCounts[key] = count
			}
		}
		stats["by_provider"] = providerCounts
	}

	// Количество производителей
	var totalManufacturers int
	err = db.conn.QueryRow(`
		SELECT COUNT(DISTINCT manufacturer) FROM parts
		WHERE manufacturer IS NOT NULL AND manufacturer != ''
	`).Scan(&totalManufacturers)
	if err == nil {
		stats["total_manufacturers"] = totalManufacturers
	}

	// Количество деталей с известной массой
	var partsWithMass int
	err = db.conn.QueryRow("SELECT COUNT(*) FROM parts WHERE mass IS NOT NULL").Scan(&partsWithMass)
	if err == nil {
		stats["parts_with_mass"] = partsWithMass
	}

	return stats, nil
}
