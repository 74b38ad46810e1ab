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
	ErrVariantNotFound = errors.New("engine variant not found")
	ErrInvalidVariant  = errors.New("invalid engine variant data")
)

type EngineVariantInput struct {
	CarModelID uint
	FuelType   string
	EngineSize int
	YearFrom   int
	YearTo     int
}

type EngineVariantService interface {
	CreateVariant(input EngineVariantInput) (*model.EngineVariant, error)
	GetVariant(id uint) (*model.EngineVariant, error)
	GetVariantsByModel(carModelID uint) ([]model.EngineVariant, error)
	UpdateVariant(id uint, input EngineVariantInput) (*model.EngineVariant, error)
	DeleteVariant(id uint) error
}

type engineVariantService struct {
	variantRepo repository.EngineVariantRepository
	modelRepo   repository.CarModelRepository
}

func NewEngineVariantService(variantRepo repository.EngineVariantRepository, modelRepo repository.CarModelRepository) EngineVariantService {
	return &engineVariantService{variantRepo: variantRepo, modelRepo: modelRepo}
}

func validateVariantInput(input EngineVariantInput) error {
	if strings.TrimSpace(input.FuelType) == "" {
		return ErrInvalidVariant
	}
	if input.EngineSize <= 0 {
		return ErrInvalidVariant
	}
	if input.YearFrom <= 0 || input.YearTo <= 0 || input.YearFrom > input.YearTo {
		return ErrInvalidVariant
	}
	return nil
}

func (s *engineVariantService) CreateVariant(input EngineVariantInput) (*model.EngineVariant, error) {
	logger.Info("Creating engine variant", map[string]interface{}{
		"car_model_id": input.CarModelID,
		"fuel_type":    input.FuelType,
		"engine_size":  input.EngineSize,
	})

	if err := validateVariantInput(input); err != nil {
		logger.Warn("Engine variant validation failed", map[string]interface{}{
			"car_model_id": input.CarModelID,
			"fuel_type":    input.FuelType,
		})
		return nil, err
	}

	if _, err := s.modelRepo.FindByID(input.CarModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}

	variant := &model.EngineVariant{
		CarModelID: input.CarModelID,
		FuelType:   strings.TrimSpace(input.FuelType),
		EngineSize: input.EngineSize,
		YearFrom:   input.YearFrom,
		YearTo:     input.YearTo,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		logger.Error("Failed to create engine variant", err, map[string]interface{}{
			"car_model_id": input.CarModelID,
		})
		return nil, err
	}
	return variant, nil
}

func (s *engineVariantService) GetVariant(id uint) (*model.EngineVariant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		logger.Error("Failed to fetch engine variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return nil, err
	}
	return variant, nil
}

func (s *engineVariantService) GetVariantsByModel(carModelID uint) ([]model.EngineVariant, error) {
	if _, err := s.modelRepo.FindByID(carModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return s.variantRepo.FindByCarModel(carModelID)
}

func (s *engineVariantService) UpdateVariant(id uint, input EngineVariantInput) (*model.EngineVariant, error) {
	if err := validateVariantInput(input); err != nil {
		return nil, err
	}

	variant, err := s.GetVariant(id)
	if err != nil {
		return nil, err
	}

	if input.CarModelID != 0 && input.CarModelID != variant.CarModelID {
		if _, err := s.modelRepo.FindByID(input.CarModelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrModelNotFound
			}
			return nil, err
		}
		variant.CarModelID = input.CarModelID
	}

	variant.FuelType = strings.TrimSpace(input.FuelType)
	variant.EngineSize = input.EngineSize
	variant.YearFrom = input.YearFrom
	variant.YearTo = input.YearTo
	if err := s.variantRepo.Update(variant); err != nil {
		logger.Error("Failed to update engine variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return nil, err
	}
	return variant, nil
}

// DeleteVariant removes the variant and its part links; parts themselves
// are untouched.
func (s *engineVariantService) DeleteVariant(id uint) error {
	if _, err := s.GetVariant(id); err != nil {
		return err
	}

	if err := s.variantRepo.Delete(id); err != nil {
		logger.Error("Failed to delete engine variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return err
	}

	logger.Info("Engine variant deleted", map[string]interface{}{
		"variant_id": id,
	})
	return nil
}
