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
	ErrBrandNotFound      = errors.New("car brand not found")
	ErrBrandHasModels     = errors.New("car brand still has models")
	ErrBrandNameRequired  = errors.New("brand name is required")
	ErrModelNotFound      = errors.New("car model not found")
	ErrModelHasDependents = errors.New("car model still has parts or engine variants")
	ErrModelNameRequired  = errors.New("model name is required")
)

type CarBrandService interface {
	CreateBrand(name string) (*model.CarBrand, error)
	GetBrand(id uint) (*model.CarBrand, error)
	GetAllBrands() ([]model.CarBrand, error)
	UpdateBrand(id uint, name string) (*model.CarBrand, error)
	DeleteBrand(id uint) error
}

type carBrandService struct {
	brandRepo repository.CarBrandRepository
}

func NewCarBrandService(brandRepo repository.CarBrandRepository) CarBrandService {
	return &carBrandService{brandRepo: brandRepo}
}

func (s *carBrandService) CreateBrand(name string) (*model.CarBrand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBrandNameRequired
	}

	logger.Info("Creating car brand", map[string]interface{}{
		"name": name,
	})

	brand := &model.CarBrand{Name: name}
	if err := s.brandRepo.Create(brand); err != nil {
		logger.Error("Failed to create car brand", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return brand, nil
}

func (s *carBrandService) GetBrand(id uint) (*model.CarBrand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		logger.Error("Failed to fetch car brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return brand, nil
}

func (s *carBrandService) GetAllBrands() ([]model.CarBrand, error) {
	return s.brandRepo.FindAll()
}

func (s *carBrandService) UpdateBrand(id uint, name string) (*model.CarBrand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBrandNameRequired
	}

	brand, err := s.GetBrand(id)
	if err != nil {
		return nil, err
	}

	brand.Name = name
	if err := s.brandRepo.Update(brand); err != nil {
		logger.Error("Failed to update car brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return brand, nil
}

// DeleteBrand refuses while models reference the brand.
func (s *carBrandService) DeleteBrand(id uint) error {
	if _, err := s.GetBrand(id); err != nil {
		return err
	}

	count, err := s.brandRepo.CountModels(id)
	if err != nil {
		logger.Error("Failed to count brand models", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}
	if count > 0 {
		logger.Warn("Cannot delete brand: models exist", map[string]interface{}{
			"brand_id":    id,
			"model_count": count,
		})
		return ErrBrandHasModels
	}

	if err := s.brandRepo.Delete(id); err != nil {
		logger.Error("Failed to delete car brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}

	logger.Info("Car brand deleted", map[string]interface{}{
		"brand_id": id,
	})
	return nil
}

type CreateCarModelInput struct {
	Name       string
	Year       int
	CarBrandID uint
}

type CarModelService interface {
	CreateModel(input CreateCarModelInput) (*model.CarModel, error)
	GetModel(id uint) (*model.CarModel, error)
	GetAllModels() ([]model.CarModel, error)
	GetModelsByBrand(brandID uint) ([]model.CarModel, error)
	UpdateModel(id uint, input CreateCarModelInput) (*model.CarModel, error)
	DeleteModel(id uint) error
}

type carModelService struct {
	modelRepo repository.CarModelRepository
	brandRepo repository.CarBrandRepository
}

func NewCarModelService(modelRepo repository.CarModelRepository, brandRepo repository.CarBrandRepository) CarModelService {
	return &carModelService{modelRepo: modelRepo, brandRepo: brandRepo}
}

func (s *carModelService) CreateModel(input CreateCarModelInput) (*model.CarModel, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrModelNameRequired
	}

	logger.Info("Creating car model", map[string]interface{}{
		"name":     input.Name,
		"brand_id": input.CarBrandID,
	})

	if _, err := s.brandRepo.FindByID(input.CarBrandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}

	carModel := &model.CarModel{
		Name:       strings.TrimSpace(input.Name),
		Year:       input.Year,
		CarBrandID: input.CarBrandID,
	}
	if err := s.modelRepo.Create(carModel); err != nil {
		logger.Error("Failed to create car model", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}
	return carModel, nil
}

func (s *carModelService) GetModel(id uint) (*model.CarModel, error) {
	carModel, err := s.modelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		logger.Error("Failed to fetch car model", err, map[string]interface{}{
			"model_id": id,
		})
		return nil, err
	}
	return carModel, nil
}

func (s *carModelService) GetAllModels() ([]model.CarModel, error) {
	return s.modelRepo.FindAll()
}

func (s *carModelService) GetModelsByBrand(brandID uint) ([]model.CarModel, error) {
	if _, err := s.brandRepo.FindByID(brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return s.modelRepo.FindByBrand(brandID)
}

func (s *carModelService) UpdateModel(id uint, input CreateCarModelInput) (*model.CarModel, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrModelNameRequired
	}

	carModel, err := s.GetModel(id)
	if err != nil {
		return nil, err
	}

	if input.CarBrandID != 0 && input.CarBrandID != carModel.CarBrandID {
		if _, err := s.brandRepo.FindByID(input.CarBrandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBrandNotFound
			}
			return nil, err
		}
		carModel.CarBrandID = input.CarBrandID
	}

	carModel.Name = strings.TrimSpace(input.Name)
	carModel.Year = input.Year
	if err := s.modelRepo.Update(carModel); err != nil {
		logger.Error("Failed to update car model", err, map[string]interface{}{
			"model_id": id,
		})
		return nil, err
	}
	return carModel, nil
}

// DeleteModel refuses while parts or engine variants reference the model.
func (s *carModelService) DeleteModel(id uint) error {
	if _, err := s.GetModel(id); err != nil {
		return err
	}

	parts, err := s.modelRepo.CountParts(id)
	if err != nil {
		logger.Error("Failed to count model parts", err, map[string]interface{}{
			"model_id": id,
		})
		return err
	}
	variants, err := s.modelRepo.CountVariants(id)
	if err != nil {
		logger.Error("Failed to count model variants", err, map[string]interface{}{
			"model_id": id,
		})
		return err
	}
	if parts > 0 || variants > 0 {
		logger.Warn("Cannot delete model: dependents exist", map[string]interface{}{
			"model_id":      id,
			"part_count":    parts,
			"variant_count": variants,
		})
		return ErrModelHasDependents
	}

	if err := s.modelRepo.Delete(id); err != nil {
		logger.Error("Failed to delete car model", err, map[string]interface{}{
			"model_id": id,
		})
		return err
	}

	logger.Info("Car model deleted", map[string]interface{}{
		"model_id": id,
	})
	return nil
}
