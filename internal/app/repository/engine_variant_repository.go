package repository

import (
	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

type EngineVariantRepository interface {
	Create(variant *model.EngineVariant) error
	FindByID(id uint) (*model.EngineVariant, error)
	FindByCarModel(carModelID uint) ([]model.EngineVariant, error)
	FindByIDs(ids []uint) ([]model.EngineVariant, error)
	Update(variant *model.EngineVariant) error
	Delete(id uint) error

	// FindForEngineOptions returns variants whose car model belongs to
	// the brand, matches the name case-insensitively, and whose year
	// span contains year.
	FindForEngineOptions(brandID uint, modelName string, year int) ([]model.EngineVariant, error)

	// FindMatching returns variants of a car model whose span contains
	// year, optionally narrowed by fuel type and engine size.
	FindMatching(carModelID uint, year int, fuelType string, engineSize int) ([]model.EngineVariant, error)
}

type engineVariantRepository struct {
	db *gorm.DB
}

func NewEngineVariantRepository(db *gorm.DB) EngineVariantRepository {
	return &engineVariantRepository{db: db}
}

func (r *engineVariantRepository) Create(variant *model.EngineVariant) error {
	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create engine variant in database", err, map[string]interface{}{
			"car_model_id": variant.CarModelID,
			"fuel_type":    variant.FuelType,
		})
		return err
	}
	return nil
}

func (r *engineVariantRepository) FindByID(id uint) (*model.EngineVariant, error) {
	var variant model.EngineVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *engineVariantRepository) FindByCarModel(carModelID uint) ([]model.EngineVariant, error) {
	var variants []model.EngineVariant
	err := r.db.Where("car_model_id = ?", carModelID).Order("year_from").Find(&variants).Error
	if err != nil {
		logger.Error("Failed to list engine variants by car model from database", err, map[string]interface{}{
			"car_model_id": carModelID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *engineVariantRepository) FindByIDs(ids []uint) ([]model.EngineVariant, error) {
	var variants []model.EngineVariant
	if len(ids) == 0 {
		return variants, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *engineVariantRepository) Update(variant *model.EngineVariant) error {
	return r.db.Save(variant).Error
}

// Delete removes a variant and its part links in one transaction. Parts
// themselves are untouched.
func (r *engineVariantRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("engine_variant_id = ?", id).Delete(&model.PartEngineVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.EngineVariant{}, id).Error
	})
}

func (r *engineVariantRepository) FindForEngineOptions(brandID uint, modelName string, year int) ([]model.EngineVariant, error) {
	var variants []model.EngineVariant
	err := r.db.
		Joins("JOIN car_models ON car_models.id = engine_variants.car_model_id").
		Where("car_models.car_brand_id = ?", brandID).
		Where("LOWER(car_models.name) = LOWER(?)", modelName).
		Where("engine_variants.year_from <= ? AND engine_variants.year_to >= ?", year, year).
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to query engine options from database", err, map[string]interface{}{
			"car_brand_id": brandID,
			"model_name":   modelName,
			"year":         year,
		})
		return nil, err
	}
	return variants, nil
}

func (r *engineVariantRepository) FindMatching(carModelID uint, year int, fuelType string, engineSize int) ([]model.EngineVariant, error) {
	query := r.db.
		Where("car_model_id = ?", carModelID).
		Where("year_from <= ? AND year_to >= ?", year, year)

	if fuelType != "" {
		query = query.Where("LOWER(fuel_type) = LOWER(?)", fuelType)
	}
	if engineSize > 0 {
		query = query.Where("engine_size = ?", engineSize)
	}

	var variants []model.EngineVariant
	if err := query.Find(&variants).Error; err != nil {
		logger.Error("Failed to query matching engine variants from database", err, map[string]interface{}{
			"car_model_id": carModelID,
			"year":         year,
		})
		return nil, err
	}
	return variants, nil
}
