package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"

	"partserver/database"
	"partserver/providers"
)

// TestDataset набор тестовых деталей
type TestDataset struct {
	Count   int                        `json:"count"`
	Entries []*providers.PartDetailDTO `json:"entries"`
}

func main() {
	// Инициализируем gofakeit
	gofakeit.Seed(0)

	// Размеры наборов данных
	sizes := []struct {
		name string
		size int
	}{
		{"100", 100},
		{"1K", 1000},
		{"10K", 10000},
	}

	// Создаем директорию для тестовых данных
	dataDir := filepath.Join("tests", "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	for _, size := range sizes {
		fmt.Printf("Generating %s parts...\n", size.name)

		entries := make([]*providers.PartDetailDTO, size.size)
		for i := 0; i < size.size; i++ {
			entries[i] = generatePart(i + 1)
		}

		dataset := TestDataset{
			Count:   size.size,
			Entries: entries,
		}

		// Сохраняем в JSON
		filename := filepath.Join(dataDir, fmt.Sprintf("test_parts_%s.json", size.name))
		data, err := json.MarshalIndent(dataset, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal dataset: %v", err)
		}

		if err := os.WriteFile(filename, data, 0644); err != nil {
			log.Fatalf("Failed to write file %s: %v", filename, err)
		}

		fmt.Printf("Generated %s parts in %s\n", size.name, filename)
	}

	// Также создаем SQLite БД с тестовыми данными
	fmt.Println("\nGenerating SQLite database...")
	generateSQLiteDB(dataDir)
}

// generatePart генерирует одну случайную деталь
func generatePart(id int) *providers.PartDetailDTO {
	providerKeys := []string{"strucdata", "reichelt", "pollin"}
	providerKey := gofakeit.RandomString(providerKeys)

	categories := []string{
		"Resistors -> Fixed -> THT",
		"Capacitors -> Ceramic",
		"Semiconductors -> Transistors -> NPN",
		"Semiconductors -> ICs -> Microcontrollers",
		"Connectors -> Pin Headers",
		"Inductors -> Power",
	}

	manufacturers := []string{
		"Texas Instruments", "Vishay", "Yageo", "Murata",
		"STMicroelectronics", "Infineon", "Panasonic", "Wurth Elektronik",
	}

	footprints := []string{"0402", "0603", "0805", "1206", "SOT-23", "SOIC-8", "TO-220", ""}

	mpn := fmt.Sprintf("%s-%s", gofakeit.LetterN(3), gofakeit.Numerify("####"))
	providerID := "part" + strconv.Itoa(id)
	currency := "EUR"

	detail := &providers.PartDetailDTO{
		ProviderKey:  providerKey,
		ProviderID:   providerID,
		Name:         mpn,
		Description:  gofakeit.Sentence(6),
		Category:     gofakeit.RandomString(categories),
		Manufacturer: gofakeit.RandomString(manufacturers),
		MPN:          mpn,
		ProviderURL:  fmt.Sprintf("https://shop.example.com/p/%s", providerID),
		Footprint:    gofakeit.RandomString(footprints),
		Parameters:   []*providers.ParameterDTO{},
		Images:       []*providers.FileDTO{},
		Datasheets:   []*providers.FileDTO{},
		VendorInfos: []*providers.PurchaseInfoDTO{
			{
				DistributorName: gofakeit.Company(),
				OrderNumber:     providerID,
				Prices: []*providers.PriceDTO{
					{
						MinimumDiscountAmount: 1,
						Price:                 fmt.Sprintf("%.2f", gofakeit.Float64Range(0.01, 25)),
						CurrencyISOCode:       &currency,
						IncludesTax:           true,
					},
				},
			},
		},
	}

	// Иногда добавляем массу
	if gofakeit.Bool() {
		mass := gofakeit.Float64Range(0.1, 50)
		detail.Mass = &mass
	}

	// Иногда добавляем параметры
	if gofakeit.Bool() {
		typ := gofakeit.Float64Range(1, 1000)
		detail.Parameters = append(detail.Parameters, &providers.ParameterDTO{
			Name:     "Resistance",
			ValueTyp: &typ,
			Unit:     "Ohm",
		})
	}

	return detail
}

// generateSQLiteDB создает SQLite БД с тестовыми деталями
func generateSQLiteDB(dataDir string) {
	dbPath := filepath.Join(dataDir, "test_parts.db")

	// Удаляем существующую БД
	os.Remove(dbPath)

	db, err := database.NewPartsDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	// Добавляем 1000 записей для быстрого тестирования
	for i := 0; i < 1000; i++ {
		if _, err := db.SavePart(generatePart(i + 1)); err != nil {
			log.Fatalf("Failed to save part %d: %v", i+1, err)
		}
	}

	fmt.Printf("Generated SQLite database with 1000 parts in %s\n", dbPath)
}
