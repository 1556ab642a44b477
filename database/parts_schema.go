package database

import (
	"database/sql"
	"fmt"
)

// InitPartsSchema initializes the parts database schema with all required tables
func InitPartsSchema(db *sql.DB) error {
	schema := `
	-- Table for storing imported part records
	CREATE TABLE IF NOT EXISTS parts (
		id INTEGER PRIMARY KEY,
		provider_key TEXT NOT NULL,             -- Provider identifier (strucdata, reichelt, pollin)
		provider_id TEXT NOT NULL,              -- Part identifier within the provider
		name TEXT NOT NULL,                     -- Part name
		description TEXT,                       -- Part description
		category TEXT,                          -- Category path joined with " -> "
		manufacturer TEXT,                      -- Manufacturer name
		mpn TEXT,                               -- Manufacturer part number
		preview_image_url TEXT,                 -- Preview image URL
		provider_url TEXT,                      -- URL of the source page
		footprint TEXT,                         -- Mounting form / package
		mass REAL,                              -- Mass in grams
		data TEXT NOT NULL,                     -- Full part record as JSON
		keywords TEXT,                          -- Stemmed keywords for search
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(provider_key, provider_id)
	);

	-- Indexes for performance optimization
	CREATE INDEX IF NOT EXISTS idx_parts_provider ON parts(provider_key, provider_id);
	CREATE INDEX IF NOT EXISTS idx_parts_name ON parts(name);
	CREATE INDEX IF NOT EXISTS idx_parts_manufacturer ON parts(manufacturer);
	CREATE INDEX IF NOT EXISTS idx_parts_category ON parts(category);
	CREATE INDEX IF NOT EXISTS idx_parts_keywords ON parts(keywords);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create parts schema: %w", err)
	}

	return nil
}
