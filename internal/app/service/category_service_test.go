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

func setupCategoryServiceTest(t *testing.T) (PartsCategoryService, EquipmentCategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	partsCategoryRepo := repository.NewPartsCategoryRepository(testDB)
	equipmentCategoryRepo := repository.NewEquipmentCategoryRepository(testDB)
	return NewPartsCategoryService(partsCategoryRepo), NewEquipmentCategoryService(equipmentCategoryRepo), testDB
}

func TestPartsCategoryService_CRUD(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Brakes")
	require.NoError(t, err)
	assert.NotZero(t, category.ID)

	updated, err := categoryService.UpdateCategory(category.ID, "Brake System")
	require.NoError(t, err)
	assert.Equal(t, "Brake System", updated.Name)

	categories, err := categoryService.GetAllCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	err = categoryService.DeleteCategory(category.ID)
	assert.NoError(t, err)

	_, err = categoryService.GetCategory(category.ID)
	assert.ErrorIs(t, err, ErrPartsCategoryNotFound)
}

func TestPartsCategoryService_CreateCategory_BlankName(t *testing.T) {
	categoryService, _, _ := setupCategoryServiceTest(t)

	_, err := categoryService.CreateCategory("  ")
	assert.ErrorIs(t, err, ErrCategoryNameRequired)
}

func TestPartsCategoryService_DeleteCategory_BlockedByParts(t *testing.T) {
	categoryService, _, testDB := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Brakes")
	require.NoError(t, err)

	brand := &model.CarBrand{Name: "Opel"}
	testDB.Create(brand)
	carModel := &model.CarModel{Name: "Astra", Year: 2010, CarBrandID: brand.ID}
	testDB.Create(carModel)
	testDB.Create(&model.Part{
		Name: "Brake Disc", Price: 5000, Manufacturer: "Brembo",
		CarModelID: carModel.ID, PartsCategoryID: category.ID,
	})

	err = categoryService.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryHasMembers)
}

func TestEquipmentCategoryService_CRUD(t *testing.T) {
	_, categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Tools")
	require.NoError(t, err)

	updated, err := categoryService.UpdateCategory(category.ID, "Hand Tools")
	require.NoError(t, err)
	assert.Equal(t, "Hand Tools", updated.Name)

	err = categoryService.DeleteCategory(category.ID)
	assert.NoError(t, err)

	_, err = categoryService.GetCategory(category.ID)
	assert.ErrorIs(t, err, ErrEquipmentCategoryNotFound)
}

func TestEquipmentCategoryService_DeleteCategory_BlockedByEquipment(t *testing.T) {
	_, categoryService, testDB := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Tools")
	require.NoError(t, err)

	testDB.Create(&model.Equipment{
		Name: "Torque Wrench", Price: 12000, Manufacturer: "Hazet",
		EquipmentCategoryID: category.ID,
	})

	err = categoryService.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryHasMembers)
}
