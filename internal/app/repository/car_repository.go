package repository

import (
	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

type CarBrandRepository interface {
	Create(brand *model.CarBrand) error
	FindByID(id uint) (*model.CarBrand, error)
	FindAll() ([]model.CarBrand, error)
	Update(brand *model.CarBrand) error
	Delete(id uint) error
	CountModels(brandID uint) (int64, error)
}

type carBrandRepository struct {
	db *gorm.DB
}

func NewCarBrandRepository(db *gorm.DB) CarBrandRepository {
	return &carBrandRepository{db: db}
}

func (r *carBrandRepository) Create(brand *model.CarBrand) error {
	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create car brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *carBrandRepository) FindByID(id uint) (*model.CarBrand, error) {
	var brand model.CarBrand
	if err := r.db.First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *carBrandRepository) FindAll() ([]model.CarBrand, error) {
	var brands []model.CarBrand
	if err := r.db.Preload("Models").Order("name").Find(&brands).Error; err != nil {
		logger.Error("Failed to list car brands from database", err)
		return nil, err
	}
	return brands, nil
}

func (r *carBrandRepository) Update(brand *model.CarBrand) error {
	return r.db.Save(brand).Error
}

func (r *carBrandRepository) Delete(id uint) error {
	return r.db.Delete(&model.CarBrand{}, id).Error
}

func (r *carBrandRepository) CountModels(brandID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CarModel{}).Where("car_brand_id = ?", brandID).Count(&count).Error
	return count, err
}

type CarModelRepository interface {
	Create(carModel *model.CarModel) error
	FindByID(id uint) (*model.CarModel, error)
	FindAll() ([]model.CarModel, error)
	FindByBrand(brandID uint) ([]model.CarModel, error)
	Update(carModel *model.CarModel) error
	Delete(id uint) error
	CountParts(modelID uint) (int64, error)
	CountVariants(modelID uint) (int64, error)
}

type carModelRepository struct {
	db *gorm.DB
}

func NewCarModelRepository(db *gorm.DB) CarModelRepository {
	return &carModelRepository{db: db}
}

func (r *carModelRepository) Create(carModel *model.CarModel) error {
	if err := r.db.Create(carModel).Error; err != nil {
		logger.Error("Failed to create car model in database", err, map[string]interface{}{
			"name":         carModel.Name,
			"car_brand_id": carModel.CarBrandID,
		})
		return err
	}
	return nil
}

func (r *carModelRepository) FindByID(id uint) (*model.CarModel, error) {
	var carModel model.CarModel
	if err := r.db.First(&carModel, id).Error; err != nil {
		return nil, err
	}
	return &carModel, nil
}

func (r *carModelRepository) FindAll() ([]model.CarModel, error) {
	var models []model.CarModel
	if err := r.db.Order("name").Find(&models).Error; err != nil {
		logger.Error("Failed to list car models from database", err)
		return nil, err
	}
	return models, nil
}

func (r *carModelRepository) FindByBrand(brandID uint) ([]model.CarModel, error) {
	var models []model.CarModel
	err := r.db.Where("car_brand_id = ?", brandID).Order("name").Find(&models).Error
	if err != nil {
		logger.Error("Failed to list car models by brand from database", err, map[string]interface{}{
			"car_brand_id": brandID,
		})
		return nil, err
	}
	return models, nil
}

func (r *carModelRepository) Update(carModel *model.CarModel) error {
	return r.db.Save(carModel).Error
}

func (r *carModelRepository) Delete(id uint) error {
	return r.db.Delete(&model.CarModel{}, id).Error
}

func (r *carModelRepository) CountParts(modelID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Part{}).Where("car_model_id = ?", modelID).Count(&count).Error
	return count, err
}

func (r *carModelRepository) CountVariants(modelID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.EngineVariant{}).Where("car_model_id = ?", modelID).Count(&count).Error
	return count, err
}
