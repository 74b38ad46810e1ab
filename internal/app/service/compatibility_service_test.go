package service

import (
	"testing"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCompatibilityTest(t *testing.T) (CompatibilityService, *model.CarBrand, *model.CarModel, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	variantRepo := repository.NewEngineVariantRepository(testDB)
	partRepo := repository.NewPartRepository(testDB)
	modelRepo := repository.NewCarModelRepository(testDB)
	compatService := NewCompatibilityService(variantRepo, partRepo, modelRepo)

	brand := &model.CarBrand{Name: "Opel"}
	testDB.Create(brand)
	carModel := &model.CarModel{Name: "Astra", Year: 2010, CarBrandID: brand.ID}
	testDB.Create(carModel)

	return compatService, brand, carModel, testDB
}

func TestCompatibilityService_FindEngineOptions(t *testing.T) {
	compatService, brand, carModel, testDB := setupCompatibilityTest(t)

	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2008, YearTo: 2014,
	})
	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "diesel", EngineSize: 1700, YearFrom: 2010, YearTo: 2015,
	})
	// Out of range for 2010
	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 2000, YearFrom: 2015, YearTo: 2018,
	})

	options, err := compatService.FindEngineOptions(brand.ID, "Astra", 2010)
	require.NoError(t, err)
	assert.Equal(t, []string{"diesel/1700", "petrol/1600"}, options)
}

func TestCompatibilityService_FindEngineOptions_CaseInsensitiveModelName(t *testing.T) {
	compatService, brand, carModel, testDB := setupCompatibilityTest(t)

	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2008, YearTo: 2014,
	})

	options, err := compatService.FindEngineOptions(brand.ID, "astra", 2010)
	require.NoError(t, err)
	assert.Equal(t, []string{"petrol/1600"}, options)
}

func TestCompatibilityService_FindEngineOptions_DeduplicatesOptions(t *testing.T) {
	compatService, brand, carModel, testDB := setupCompatibilityTest(t)

	// Two spans with the same fuel/size combination
	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2008, YearTo: 2010,
	})
	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2010, YearTo: 2014,
	})

	options, err := compatService.FindEngineOptions(brand.ID, "Astra", 2010)
	require.NoError(t, err)
	assert.Equal(t, []string{"petrol/1600"}, options)
}

func TestCompatibilityService_FindEngineOptions_NoMatch(t *testing.T) {
	compatService, brand, carModel, testDB := setupCompatibilityTest(t)

	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2008, YearTo: 2014,
	})

	_, err := compatService.FindEngineOptions(brand.ID, "Astra", 2020)
	assert.ErrorIs(t, err, ErrNoEngineOptions)

	_, err = compatService.FindEngineOptions(brand.ID, "Corsa", 2010)
	assert.ErrorIs(t, err, ErrNoEngineOptions)
}

func TestCompatibilityService_FindCompatibleYears_MergesSpans(t *testing.T) {
	compatService, _, carModel, testDB := setupCompatibilityTest(t)

	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2010, YearTo: 2012,
	})
	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "diesel", EngineSize: 1700, YearFrom: 2015, YearTo: 2015,
	})

	years, err := compatService.FindCompatibleYears(carModel.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2010, 2011, 2012, 2015}, years)
}

func TestCompatibilityService_FindCompatibleYears_OverlappingSpans(t *testing.T) {
	compatService, _, carModel, testDB := setupCompatibilityTest(t)

	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2010, YearTo: 2013,
	})
	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "diesel", EngineSize: 1700, YearFrom: 2012, YearTo: 2014,
	})

	years, err := compatService.FindCompatibleYears(carModel.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2010, 2011, 2012, 2013, 2014}, years)
}

func TestCompatibilityService_FindCompatibleYears_ModelNotFound(t *testing.T) {
	compatService, _, _, _ := setupCompatibilityTest(t)

	_, err := compatService.FindCompatibleYears(9999)
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestCompatibilityService_FindCompatibleYears_NoVariants(t *testing.T) {
	compatService, _, carModel, _ := setupCompatibilityTest(t)

	_, err := compatService.FindCompatibleYears(carModel.ID)
	assert.ErrorIs(t, err, ErrNoMatchingVariants)
}

func TestCompatibilityService_FindPartsByModelAndYear(t *testing.T) {
	compatService, _, carModel, testDB := setupCompatibilityTest(t)

	petrol := &model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2008, YearTo: 2014,
	}
	diesel := &model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "diesel", EngineSize: 1700, YearFrom: 2010, YearTo: 2015,
	}
	testDB.Create(petrol)
	testDB.Create(diesel)

	category := &model.PartsCategory{Name: "Filters"}
	testDB.Create(category)

	partRepo := repository.NewPartRepository(testDB)

	petrolFilter := &model.Part{
		Name: "Air Filter Petrol", Price: 3000, Manufacturer: "Mann",
		CarModelID: carModel.ID, PartsCategoryID: category.ID, Quantity: 5,
	}
	require.NoError(t, partRepo.Create(petrolFilter, []uint{petrol.ID}))

	dieselFilter := &model.Part{
		Name: "Air Filter Diesel", Price: 3500, Manufacturer: "Mann",
		CarModelID: carModel.ID, PartsCategoryID: category.ID, Quantity: 5,
	}
	require.NoError(t, partRepo.Create(dieselFilter, []uint{diesel.ID}))

	// 2010 matches both variants
	parts, err := compatService.FindPartsByModelAndYear(carModel.ID, 2010, PartsByYearFilter{})
	require.NoError(t, err)
	assert.Len(t, parts, 2)

	// Narrowed to diesel
	parts, err = compatService.FindPartsByModelAndYear(carModel.ID, 2010, PartsByYearFilter{FuelType: "diesel"})
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "Air Filter Diesel", parts[0].Name)

	// Narrowed by engine size
	parts, err = compatService.FindPartsByModelAndYear(carModel.ID, 2010, PartsByYearFilter{EngineSize: 1600})
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "Air Filter Petrol", parts[0].Name)
}

func TestCompatibilityService_FindPartsByModelAndYear_NoVariantMatch(t *testing.T) {
	compatService, _, carModel, testDB := setupCompatibilityTest(t)

	testDB.Create(&model.EngineVariant{
		CarModelID: carModel.ID, FuelType: "petrol", EngineSize: 1600, YearFrom: 2008, YearTo: 2014,
	})

	_, err := compatService.FindPartsByModelAndYear(carModel.ID, 2020, PartsByYearFilter{})
	assert.ErrorIs(t, err, ErrNoMatchingVariants)
}

func TestCompatibilityService_FindPartsByModelAndYear_ModelNotFound(t *testing.T) {
	compatService, _, _, _ := setupCompatibilityTest(t)

	_, err := compatService.FindPartsByModelAndYear(9999, 2010, PartsByYearFilter{})
	assert.ErrorIs(t, err, ErrModelNotFound)
}
