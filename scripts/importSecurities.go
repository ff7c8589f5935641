package main

import (
	"encoding/csv"
	"finbook/config"
	"finbook/database"
	"finbook/models"
	"log"
	"os"
	"strings"
)

// Imports securities from a CSV with columns: ticker_symbol, security_name,
// asset_type. Usage: go run scripts/importSecurities.go securities.csv
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "securities.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db
	inserted := 0
	updated := 0
	skipped := 0

	for _, row := range records[1:] {
		ticker := strings.ToUpper(field(row, "ticker_symbol"))
		name := field(row, "security_name")
		assetType := field(row, "asset_type")

		if ticker == "" || name == "" {
			skipped++
			continue
		}
		if assetType == "" {
			assetType = "Stock"
		}

		var existing models.Security
		err := db.Where("ticker_symbol = ?", ticker).First(&existing).Error
		if err == nil {
			existing.SecurityName = name
			existing.AssetType = assetType
			if err := db.Save(&existing).Error; err != nil {
				log.Printf("Failed to update %s: %v", ticker, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		security := models.Security{
			TickerSymbol: ticker,
			SecurityName: name,
			AssetType:    assetType,
		}
		if err := db.Create(&security).Error; err != nil {
			log.Printf("Failed to insert %s: %v", ticker, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}
