// export_parts выгружает сохраненные детали из базы данных в файл
// формата JSON, CSV или Excel.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"partserver/database"
	"partserver/export"
)

func main() {
	dbPath := flag.String("db", "parts.db", "путь к базе данных SQLite")
	format := flag.String("format", "excel", "формат экспорта: json, csv или excel")
	output := flag.String("out", "", "путь к выходному файлу")
	query := flag.String("q", "", "поисковый запрос для фильтрации деталей")
	providerKey := flag.String("provider", "", "фильтр по ключу провайдера")
	limit := flag.Int("limit", 0, "максимальное число деталей (0 = без ограничения)")
	flag.Parse()

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Использование: export_parts -db <path> -format <json|csv|excel> -out <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	partsDB, err := database.NewPartsDB(*dbPath)
	if err != nil {
		log.Fatalf("Ошибка открытия базы данных: %v", err)
	}
	defer partsDB.Close()

	exporter := export.NewExporter(partsDB)
	err = exporter.Export(export.Format(*format), *output, export.Filters{
		ProviderKey: *providerKey,
		Query:       *query,
		Limit:       *limit,
	})
	if err != nil {
		log.Fatalf("Ошибка экспорта: %v", err)
	}

	log.Printf("Экспорт завершен: %s", *output)
}
