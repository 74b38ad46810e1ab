package service

import (
	"errors"
	"strings"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPartsCategoryNotFound     = errors.New("parts category not found")
	ErrEquipmentCategoryNotFound = errors.New("equipment category not found")
	ErrCategoryHasMembers        = errors.New("category still has members")
	ErrCategoryNameRequired      = errors.New("category name is required")
)

type PartsCategoryService interface {
	CreateCategory(name string) (*model.PartsCategory, error)
	GetCategory(id uint) (*model.PartsCategory, error)
	GetAllCategories() ([]model.PartsCategory, error)
	UpdateCategory(id uint, name string) (*model.PartsCategory, error)
	DeleteCategory(id uint) error
}

type partsCategoryService struct {
	categoryRepo repository.PartsCategoryRepository
}

func NewPartsCategoryService(categoryRepo repository.PartsCategoryRepository) PartsCategoryService {
	return &partsCategoryService{categoryRepo: categoryRepo}
}

func (s *partsCategoryService) CreateCategory(name string) (*model.PartsCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	logger.Info("Creating parts category", map[string]interface{}{
		"name": name,
	})

	category := &model.PartsCategory{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create parts category", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return category, nil
}

func (s *partsCategoryService) GetCategory(id uint) (*model.PartsCategory, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartsCategoryNotFound
		}
		logger.Error("Failed to fetch parts category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *partsCategoryService) GetAllCategories() ([]model.PartsCategory, error) {
	return s.categoryRepo.FindAll()
}

func (s *partsCategoryService) UpdateCategory(id uint, name string) (*model.PartsCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update parts category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses while parts reference the category.
func (s *partsCategoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountParts(id)
	if err != nil {
		logger.Error("Failed to count category parts", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	if count > 0 {
		logger.Warn("Cannot delete parts category: parts exist", map[string]interface{}{
			"category_id": id,
			"part_count":  count,
		})
		return ErrCategoryHasMembers
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Error("Failed to delete parts category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Parts category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

type EquipmentCategoryService interface {
	CreateCategory(name string) (*model.EquipmentCategory, error)
	GetCategory(id uint) (*model.EquipmentCategory, error)
	GetAllCategories() ([]model.EquipmentCategory, error)
	UpdateCategory(id uint, name string) (*model.EquipmentCategory, error)
	DeleteCategory(id uint) error
}

type equipmentCategoryService struct {
	categoryRepo repository.EquipmentCategoryRepository
}

func NewEquipmentCategoryService(categoryRepo repository.EquipmentCategoryRepository) EquipmentCategoryService {
	return &equipmentCategoryService{categoryRepo: categoryRepo}
}

func (s *equipmentCategoryService) CreateCategory(name string) (*model.EquipmentCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	logger.Info("Creating equipment category", map[string]interface{}{
		"name": name,
	})

	category := &model.EquipmentCategory{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create equipment category", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return category, nil
}

func (s *equipmentCategoryService) GetCategory(id uint) (*model.EquipmentCategory, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentCategoryNotFound
		}
		logger.Error("Failed to fetch equipment category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

func (s *equipmentCategoryService) GetAllCategories() ([]model.EquipmentCategory, error) {
	return s.categoryRepo.FindAll()
}

func (s *equipmentCategoryService) UpdateCategory(id uint, name string) (*model.EquipmentCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update equipment category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses while equipment references the category.
func (s *equipmentCategoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountEquipment(id)
	if err != nil {
		logger.Error("Failed to count category equipment", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	if count > 0 {
		logger.Warn("Cannot delete equipment category: equipment exists", map[string]interface{}{
			"category_id":     id,
			"equipment_count": count,
		})
		return ErrCategoryHasMembers
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Error("Failed to delete equipment category", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Info("Equipment category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
