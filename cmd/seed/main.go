package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/autopartshop/autoparts-backend/config"
	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Imports a catalog workbook. Expected sheets: Brands, Models, Variants,
// Categories, Parts. Missing sheets are skipped.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imp := newImporter(db.GetDB())

	if err := imp.importBrands(f); err != nil {
		log.Fatal("Failed to import brands:", err)
	}
	if err := imp.importModels(f); err != nil {
		log.Fatal("Failed to import models:", err)
	}
	if err := imp.importVariants(f); err != nil {
		log.Fatal("Failed to import engine variants:", err)
	}
	if err := imp.importCategories(f); err != nil {
		log.Fatal("Failed to import parts categories:", err)
	}
	if err := imp.importParts(f); err != nil {
		log.Fatal("Failed to import parts:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Brands: %d\n", len(imp.brands))
	fmt.Printf("  Models: %d\n", len(imp.models))
	fmt.Printf("  Categories: %d\n", len(imp.categories))
	fmt.Printf("  Parts: %d\n", imp.partCount)
	fmt.Printf("  Skipped rows: %d\n", imp.skipped)
}

type importer struct {
	db         *gorm.DB
	brands     map[string]uint // lowercased brand name -> id
	models     map[string]uint // "brand|model" -> id
	variants   map[string]uint // "brand|model|fuel|size|from|to" -> id
	categories map[string]uint // lowercased category name -> id
	partCount  int
	skipped    int
}

func newImporter(gdb *gorm.DB) *importer {
	return &importer{
		db:         gdb,
		brands:     make(map[string]uint),
		models:     make(map[string]uint),
		variants:   make(map[string]uint),
		categories: make(map[string]uint),
	}
}

// sheetRows returns data rows of the sheet, skipping the header row.
// A missing sheet returns nil rows without an error.
func sheetRows(f *excelize.File, sheetName string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		fmt.Printf("Sheet %q not found, skipping\n", sheetName)
		return nil, nil
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func (imp *importer) importBrands(f *excelize.File) error {
	rows, err := sheetRows(f, "Brands")
	if err != nil {
		return err
	}

	for _, row := range rows {
		if len(row) < 1 {
			imp.skipped++
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			imp.skipped++
			continue
		}
		if _, err := imp.brandID(name); err != nil {
			return err
		}
	}
	return nil
}

func (imp *importer) importModels(f *excelize.File) error {
	rows, err := sheetRows(f, "Models")
	if err != nil {
		return err
	}

	// brand | model | year
	for _, row := range rows {
		if len(row) < 3 {
			imp.skipped++
			continue
		}
		brandName := strings.TrimSpace(row[0])
		modelName := strings.TrimSpace(row[1])
		year, errYear := strconv.Atoi(strings.TrimSpace(row[2]))
		if brandName == "" || modelName == "" || errYear != nil {
			imp.skipped++
			continue
		}
		if _, err := imp.modelID(brandName, modelName, year); err != nil {
			return err
		}
	}
	return nil
}

func (imp *importer) importVariants(f *excelize.File) error {
	rows, err := sheetRows(f, "Variants")
	if err != nil {
		return err
	}

	// brand | model | fuel_type | engine_size | year_from | year_to
	for _, row := range rows {
		if len(row) < 6 {
			imp.skipped++
			continue
		}
		brandName := strings.TrimSpace(row[0])
		modelName := strings.TrimSpace(row[1])
		fuelType := strings.TrimSpace(row[2])
		engineSize, errSize := strconv.Atoi(strings.TrimSpace(row[3]))
		yearFrom, errFrom := strconv.Atoi(strings.TrimSpace(row[4]))
		yearTo, errTo := strconv.Atoi(strings.TrimSpace(row[5]))

		if brandName == "" || modelName == "" || fuelType == "" ||
			errSize != nil || engineSize <= 0 ||
			errFrom != nil || errTo != nil ||
			yearFrom <= 0 || yearTo < yearFrom {
			imp.skipped++
			continue
		}

		modelID, err := imp.modelID(brandName, modelName, yearFrom)
		if err != nil {
			return err
		}

		key := fmt.Sprintf("%s|%s|%s|%d|%d|%d",
			strings.ToLower(brandName), strings.ToLower(modelName),
			strings.ToLower(fuelType), engineSize, yearFrom, yearTo)
		if _, exists := imp.variants[key]; exists {
			imp.skipped++
			continue
		}

		variant := model.EngineVariant{
			CarModelID: modelID,
			FuelType:   fuelType,
			EngineSize: engineSize,
			YearFrom:   yearFrom,
			YearTo:     yearTo,
		}
		if err := imp.db.Create(&variant).Error; err != nil {
			return fmt.Errorf("failed to create variant %s: %w", key, err)
		}
		imp.variants[key] = variant.ID
	}
	return nil
}

func (imp *importer) importCategories(f *excelize.File) error {
	rows, err := sheetRows(f, "Categories")
	if err != nil {
		return err
	}

	for _, row := range rows {
		if len(row) < 1 {
			imp.skipped++
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			imp.skipped++
			continue
		}
		if _, err := imp.categoryID(name); err != nil {
			return err
		}
	}
	return nil
}

func (imp *importer) importParts(f *excelize.File) error {
	rows, err := sheetRows(f, "Parts")
	if err != nil {
		return err
	}

	// name | manufacturer | price | quantity | brand | model | category | description
	var parts []model.Part
	for _, row := range rows {
		if len(row) < 7 {
			imp.skipped++
			continue
		}
		name := strings.TrimSpace(row[0])
		manufacturer := strings.TrimSpace(row[1])
		price, errPrice := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		quantity, errQty := strconv.Atoi(strings.TrimSpace(row[3]))
		brandName := strings.TrimSpace(row[4])
		modelName := strings.TrimSpace(row[5])
		categoryName := strings.TrimSpace(row[6])

		description := ""
		if len(row) > 7 {
			description = strings.TrimSpace(row[7])
		}

		if name == "" || manufacturer == "" || brandName == "" ||
			modelName == "" || categoryName == "" ||
			errPrice != nil || price < 0 {
			imp.skipped++
			continue
		}
		if errQty != nil || quantity < 1 {
			quantity = 1
		}

		modelID, err := imp.modelID(brandName, modelName, 0)
		if err != nil {
			return err
		}
		categoryID, err := imp.categoryID(categoryName)
		if err != nil {
			return err
		}

		parts = append(parts, model.Part{
			Name:            name,
			Manufacturer:    manufacturer,
			Price:           price,
			Quantity:        quantity,
			Description:     description,
			CarModelID:      modelID,
			PartsCategoryID: categoryID,
		})

		if len(parts)%1000 == 0 {
			fmt.Printf("Processed %d parts...\n", len(parts))
		}
	}

	if len(parts) == 0 {
		return nil
	}

	if err := imp.db.CreateInBatches(parts, 500).Error; err != nil {
		return fmt.Errorf("failed to bulk create parts: %w", err)
	}
	imp.partCount = len(parts)
	return nil
}

// brandID returns the id of the named brand, creating it on first sight.
func (imp *importer) brandID(name string) (uint, error) {
	key := strings.ToLower(name)
	if id, ok := imp.brands[key]; ok {
		return id, nil
	}

	var brand model.CarBrand
	err := imp.db.Where("LOWER(name) = ?", key).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		brand = model.CarBrand{Name: name}
		err = imp.db.Create(&brand).Error
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve brand %s: %w", name, err)
	}

	imp.brands[key] = brand.ID
	return brand.ID, nil
}

// modelID resolves a model by brand and name, creating it when missing.
// A zero year means the model must already exist from an earlier sheet.
func (imp *importer) modelID(brandName, modelName string, year int) (uint, error) {
	key := strings.ToLower(brandName) + "|" + strings.ToLower(modelName)
	if id, ok := imp.models[key]; ok {
		return id, nil
	}

	brandID, err := imp.brandID(brandName)
	if err != nil {
		return 0, err
	}

	var carModel model.CarModel
	err = imp.db.Where("car_brand_id = ? AND LOWER(name) = ?", brandID, strings.ToLower(modelName)).
		First(&carModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if year <= 0 {
			return 0, fmt.Errorf("model %s %s referenced before being defined", brandName, modelName)
		}
		carModel = model.CarModel{Name: modelName, Year: year, CarBrandID: brandID}
		err = imp.db.Create(&carModel).Error
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve model %s %s: %w", brandName, modelName, err)
	}

	imp.models[key] = carModel.ID
	return carModel.ID, nil
}

func (imp *importer) categoryID(name string) (uint, error) {
	key := strings.ToLower(name)
	if id, ok := imp.categories[key]; ok {
		return id, nil
	}

	var category model.PartsCategory
	err := imp.db.Where("LOWER(name) = ?", key).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = model.PartsCategory{Name: name}
		err = imp.db.Create(&category).Error
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve category %s: %w", name, err)
	}

	imp.categories[key] = category.ID
	return category.ID, nil
}
