package repository

import (
	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(equipment *model.Equipment) error
	FindByID(id uint) (*model.Equipment, error)
	FindAll() ([]model.Equipment, error)
	FindByCategory(categoryID uint) ([]model.Equipment, error)
	Update(equipment *model.Equipment) error
	Delete(id uint) error
}

type equipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(equipment *model.Equipment) error {
	if err := r.db.Create(equipment).Error; err != nil {
		logger.Error("Failed to create equipment in database", err, map[string]interface{}{
			"name":        equipment.Name,
			"category_id": equipment.EquipmentCategoryID,
		})
		return err
	}
	return nil
}

func (r *equipmentRepository) FindByID(id uint) (*model.Equipment, error) {
	var equipment model.Equipment
	if err := r.db.Preload("EquipmentCategory").First(&equipment, id).Error; err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) FindAll() ([]model.Equipment, error) {
	var equipment []model.Equipment
	if err := r.db.Preload("EquipmentCategory").Order("name").Find(&equipment).Error; err != nil {
		logger.Error("Failed to list equipment from database", err)
		return nil, err
	}
	return equipment, nil
}

func (r *equipmentRepository) FindByCategory(categoryID uint) ([]model.Equipment, error) {
	var equipment []model.Equipment
	err := r.db.Where("equipment_category_id = ?", categoryID).Order("name").Find(&equipment).Error
	if err != nil {
		logger.Error("Failed to list equipment by category from database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}
	return equipment, nil
}

func (r *equipmentRepository) Update(equipment *model.Equipment) error {
	return r.db.Save(equipment).Error
}

func (r *equipmentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Equipment{}, id).Error
}
