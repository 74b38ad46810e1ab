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
	ErrPartNotFound         = errors.New("part not found")
	ErrInvalidPart          = errors.New("invalid part data")
	ErrVariantModelMismatch = errors.New("engine variant does not belong to the part's car model")
)

type PartInput struct {
	Name             string
	Price            float64
	CarModelID       uint
	PartsCategoryID  uint
	Manufacturer     string
	Side             string
	Shape            string
	Size             string
	Type             string
	Material         string
	Description      string
	Quantity         int
	ImageURL         string
	EngineVariantIDs []uint
}

type PartService interface {
	CreatePart(input PartInput) (*model.Part, error)
	GetPart(id uint) (*model.Part, error)
	GetAllParts() ([]model.Part, error)
	GetPartsByModel(carModelID uint) ([]model.Part, error)
	UpdatePart(id uint, input PartInput) (*model.Part, error)
	DeletePart(id uint) error
	SearchParts(filter repository.PartSearchFilter) ([]model.Part, error)
}

type partService struct {
	partRepo     repository.PartRepository
	modelRepo    repository.CarModelRepository
	categoryRepo repository.PartsCategoryRepository
	variantRepo  repository.EngineVariantRepository
}

func NewPartService(
	partRepo repository.PartRepository,
	modelRepo repository.CarModelRepository,
	categoryRepo repository.PartsCategoryRepository,
	variantRepo repository.EngineVariantRepository,
) PartService {
	return &partService{
		partRepo:     partRepo,
		modelRepo:    modelRepo,
		categoryRepo: categoryRepo,
		variantRepo:  variantRepo,
	}
}

func (s *partService) CreatePart(input PartInput) (*model.Part, error) {
	logger.Info("Creating part", map[string]interface{}{
		"name":         input.Name,
		"car_model_id": input.CarModelID,
		"category_id":  input.PartsCategoryID,
	})

	if err := s.validate(input); err != nil {
		return nil, err
	}

	part := &model.Part{
		Name:            strings.TrimSpace(input.Name),
		Price:           input.Price,
		CarModelID:      input.CarModelID,
		PartsCategoryID: input.PartsCategoryID,
		Manufacturer:    strings.TrimSpace(input.Manufacturer),
		Side:            input.Side,
		Shape:           input.Shape,
		Size:            input.Size,
		Type:            input.Type,
		Material:        input.Material,
		Description:     input.Description,
		Quantity:        input.Quantity,
		ImageURL:        input.ImageURL,
	}
	if part.Quantity < 1 {
		part.Quantity = 1
	}

	if err := s.partRepo.Create(part, input.EngineVariantIDs); err != nil {
		logger.Error("Failed to create part", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Part created", map[string]interface{}{
		"part_id": part.ID,
	})
	return s.GetPart(part.ID)
}

func (s *partService) GetPart(id uint) (*model.Part, error) {
	part, err := s.partRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		logger.Error("Failed to fetch part", err, map[string]interface{}{
			"part_id": id,
		})
		return nil, err
	}
	return part, nil
}

func (s *partService) GetAllParts() ([]model.Part, error) {
	return s.partRepo.FindAll()
}

func (s *partService) GetPartsByModel(carModelID uint) ([]model.Part, error) {
	if _, err := s.modelRepo.FindByID(carModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return s.partRepo.FindByCarModel(carModelID)
}

// UpdatePart replaces the part's engine variant links wholesale with the
// supplied set.
func (s *partService) UpdatePart(id uint, input PartInput) (*model.Part, error) {
	logger.Info("Updating part", map[string]interface{}{
		"part_id": id,
	})

	part, err := s.GetPart(id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(input); err != nil {
		return nil, err
	}

	part.Name = strings.TrimSpace(input.Name)
	part.Price = input.Price
	part.CarModelID = input.CarModelID
	part.PartsCategoryID = input.PartsCategoryID
	part.Manufacturer = strings.TrimSpace(input.Manufacturer)
	part.Side = input.Side
	part.Shape = input.Shape
	part.Size = input.Size
	part.Type = input.Type
	part.Material = input.Material
	part.Description = input.Description
	part.Quantity = input.Quantity
	if part.Quantity < 1 {
		part.Quantity = 1
	}
	if input.ImageURL != "" {
		part.ImageURL = input.ImageURL
	}
	part.EngineVariants = nil

	if err := s.partRepo.Update(part, input.EngineVariantIDs, true); err != nil {
		logger.Error("Failed to update part", err, map[string]interface{}{
			"part_id": id,
		})
		return nil, err
	}
	return s.GetPart(id)
}

func (s *partService) DeletePart(id uint) error {
	if _, err := s.GetPart(id); err != nil {
		return err
	}

	if err := s.partRepo.Delete(id); err != nil {
		logger.Error("Failed to delete part", err, map[string]interface{}{
			"part_id": id,
		})
		return err
	}

	logger.Info("Part deleted", map[string]interface{}{
		"part_id": id,
	})
	return nil
}

func (s *partService) SearchParts(filter repository.PartSearchFilter) ([]model.Part, error) {
	logger.Debug("Searching parts", map[string]interface{}{
		"name":              filter.Name,
		"car_model_id":      filter.CarModelID,
		"parts_category_id": filter.PartsCategoryID,
		"engine_variant_id": filter.EngineVariantID,
	})
	return s.partRepo.Search(filter)
}

// validate checks references and that every linked variant belongs to
// the part's car model.
func (s *partService) validate(input PartInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Manufacturer) == "" {
		return ErrInvalidPart
	}
	if input.Price < 0 {
		return ErrInvalidPart
	}

	if _, err := s.modelRepo.FindByID(input.CarModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModelNotFound
		}
		return err
	}
	if _, err := s.categoryRepo.FindByID(input.PartsCategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartsCategoryNotFound
		}
		return err
	}

	if len(input.EngineVariantIDs) == 0 {
		return nil
	}
	variants, err := s.variantRepo.FindByIDs(input.EngineVariantIDs)
	if err != nil {
		return err
	}
	if len(variants) != len(input.EngineVariantIDs) {
		return ErrVariantNotFound
	}
	for _, v := range variants {
		if v.CarModelID != input.CarModelID {
			logger.Warn("Part validation failed: variant belongs to another model", map[string]interface{}{
				"variant_id":       v.ID,
				"variant_model_id": v.CarModelID,
				"part_model_id":    input.CarModelID,
			})
			return ErrVariantModelMismatch
		}
	}
	return nil
}
