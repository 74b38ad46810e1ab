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
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrInvalidEquipment  = errors.New("invalid equipment data")
)

type EquipmentInput struct {
	Name                string
	Manufacturer        string
	Price               float64
	EquipmentCategoryID uint
	Size                string
	Material            string
	Side                string
	Description         string
	Quantity            int
	ImageURL            string
}

type EquipmentService interface {
	CreateEquipment(input EquipmentInput) (*model.Equipment, error)
	GetEquipment(id uint) (*model.Equipment, error)
	GetAllEquipment() ([]model.Equipment, error)
	GetEquipmentByCategory(categoryID uint) ([]model.Equipment, error)
	UpdateEquipment(id uint, input EquipmentInput) (*model.Equipment, error)
	DeleteEquipment(id uint) error
}

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	categoryRepo  repository.EquipmentCategoryRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, categoryRepo repository.EquipmentCategoryRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo, categoryRepo: categoryRepo}
}

func (s *equipmentService) validate(input EquipmentInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Manufacturer) == "" {
		return ErrInvalidEquipment
	}
	if input.Price <= 0 {
		return ErrInvalidEquipment
	}
	if _, err := s.categoryRepo.FindByID(input.EquipmentCategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEquipmentCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *equipmentService) CreateEquipment(input EquipmentInput) (*model.Equipment, error) {
	logger.Info("Creating equipment", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.EquipmentCategoryID,
	})

	if err := s.validate(input); err != nil {
		return nil, err
	}

	equipment := &model.Equipment{
		Name:                strings.TrimSpace(input.Name),
		Manufacturer:        strings.TrimSpace(input.Manufacturer),
		Price:               input.Price,
		EquipmentCategoryID: input.EquipmentCategoryID,
		Size:                input.Size,
		Material:            input.Material,
		Side:                input.Side,
		Description:         input.Description,
		Quantity:            input.Quantity,
		ImageURL:            input.ImageURL,
	}
	if equipment.Quantity < 1 {
		equipment.Quantity = 1
	}

	if err := s.equipmentRepo.Create(equipment); err != nil {
		logger.Error("Failed to create equipment", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Equipment created", map[string]interface{}{
		"equipment_id": equipment.ID,
	})
	return equipment, nil
}

func (s *equipmentService) GetEquipment(id uint) (*model.Equipment, error) {
	equipment, err := s.equipmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		logger.Error("Failed to fetch equipment", err, map[string]interface{}{
			"equipment_id": id,
		})
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) GetAllEquipment() ([]model.Equipment, error) {
	return s.equipmentRepo.FindAll()
}

func (s *equipmentService) GetEquipmentByCategory(categoryID uint) ([]model.Equipment, error) {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentCategoryNotFound
		}
		return nil, err
	}
	return s.equipmentRepo.FindByCategory(categoryID)
}

func (s *equipmentService) UpdateEquipment(id uint, input EquipmentInput) (*model.Equipment, error) {
	logger.Info("Updating equipment", map[string]interface{}{
		"equipment_id": id,
	})

	equipment, err := s.GetEquipment(id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(input); err != nil {
		return nil, err
	}

	equipment.Name = strings.TrimSpace(input.Name)
	equipment.Manufacturer = strings.TrimSpace(input.Manufacturer)
	equipment.Price = input.Price
	equipment.EquipmentCategoryID = input.EquipmentCategoryID
	equipment.Size = input.Size
	equipment.Material = input.Material
	equipment.Side = input.Side
	equipment.Description = input.Description
	equipment.Quantity = input.Quantity
	if equipment.Quantity < 1 {
		equipment.Quantity = 1
	}
	if input.ImageURL != "" {
		equipment.ImageURL = input.ImageURL
	}

	if err := s.equipmentRepo.Update(equipment); err != nil {
		logger.Error("Failed to update equipment", err, map[string]interface{}{
			"equipment_id": id,
		})
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) DeleteEquipment(id uint) error {
	if _, err := s.GetEquipment(id); err != nil {
		return err
	}

	if err := s.equipmentRepo.Delete(id); err != nil {
		logger.Error("Failed to delete equipment", err, map[string]interface{}{
			"equipment_id": id,
		})
		return err
	}

	logger.Info("Equipment deleted", map[string]interface{}{
		"equipment_id": id,
	})
	return nil
}
