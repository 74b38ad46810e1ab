package repository

import (
	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

type PartsCategoryRepository interface {
	Create(category *model.PartsCategory) error
	FindByID(id uint) (*model.PartsCategory, error)
	FindAll() ([]model.PartsCategory, error)
	Update(category *model.PartsCategory) error
	Delete(id uint) error
	CountParts(categoryID uint) (int64, error)
}

type partsCategoryRepository struct {
	db *gorm.DB
}

func NewPartsCategoryRepository(db *gorm.DB) PartsCategoryRepository {
	return &partsCategoryRepository{db: db}
}

func (r *partsCategoryRepository) Create(category *model.PartsCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create parts category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *partsCategoryRepository) FindByID(id uint) (*model.PartsCategory, error) {
	var category model.PartsCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *partsCategoryRepository) FindAll() ([]model.PartsCategory, error) {
	var categories []model.PartsCategory
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		logger.Error("Failed to list parts categories from database", err)
		return nil, err
	}
	return categories, nil
}

func (r *partsCategoryRepository) Update(category *model.PartsCategory) error {
	return r.db.Save(category).Error
}

func (r *partsCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&model.PartsCategory{}, id).Error
}

func (r *partsCategoryRepository) CountParts(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Part{}).Where("parts_category_id = ?", categoryID).Count(&count).Error
	return count, err
}

type EquipmentCategoryRepository interface {
	Create(category *model.EquipmentCategory) error
	FindByID(id uint) (*model.EquipmentCategory, error)
	FindAll() ([]model.EquipmentCategory, error)
	Update(category *model.EquipmentCategory) error
	Delete(id uint) error
	CountEquipment(categoryID uint) (int64, error)
}

type equipmentCategoryRepository struct {
	db *gorm.DB
}

func NewEquipmentCategoryRepository(db *gorm.DB) EquipmentCategoryRepository {
	return &equipmentCategoryRepository{db: db}
}

func (r *equipmentCategoryRepository) Create(category *model.EquipmentCategory) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create equipment category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *equipmentCategoryRepository) FindByID(id uint) (*model.EquipmentCategory, error) {
	var category model.EquipmentCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *equipmentCategoryRepository) FindAll() ([]model.EquipmentCategory, error) {
	var categories []model.EquipmentCategory
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		logger.Error("Failed to list equipment categories from database", err)
		return nil, err
	}
	return categories, nil
}

func (r *equipmentCategoryRepository) Update(category *model.EquipmentCategory) error {
	return r.db.Save(category).Error
}

func (r *equipmentCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&model.EquipmentCategory{}, id).Error
}

func (r *equipmentCategoryRepository) CountEquipment(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Equipment{}).Where("equipment_category_id = ?", categoryID).Count(&count).Error
	return count, err
}
