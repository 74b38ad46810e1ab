package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"github.com/autopartshop/autoparts-backend/pkg/redis"
	"gorm.io/gorm"
)

const compatCacheTTL = 5 * time.Minute

var (
	ErrNoEngineOptions    = errors.New("no engine options for the given model and year")
	ErrNoMatchingVariants = errors.New("no engine variants match the given criteria")
)

// PartsByYearFilter narrows FindPartsByModelAndYear beyond model + year.
// Zero values mean "any".
type PartsByYearFilter struct {
	FuelType   string
	EngineSize int
}

type CompatibilityService interface {
	FindEngineOptions(brandID uint, modelName string, year int) ([]string, error)
	FindCompatibleYears(carModelID uint) ([]int, error)
	FindPartsByModelAndYear(carModelID uint, year int, filter PartsByYearFilter) ([]model.Part, error)
}

type compatibilityService struct {
	variantRepo repository.EngineVariantRepository
	partRepo    repository.PartRepository
	modelRepo   repository.CarModelRepository
}

func NewCompatibilityService(
	variantRepo repository.EngineVariantRepository,
	partRepo repository.PartRepository,
	modelRepo repository.CarModelRepository,
) CompatibilityService {
	return &compatibilityService{
		variantRepo: variantRepo,
		partRepo:    partRepo,
		modelRepo:   modelRepo,
	}
}

// FindEngineOptions lists the distinct "fuelType/engineSize" strings of
// variants whose model matches the brand and name (case-insensitive) and
// whose year span contains year.
func (s *compatibilityService) FindEngineOptions(brandID uint, modelName string, year int) ([]string, error) {
	logger.Debug("Finding engine options", map[string]interface{}{
		"brand_id":   brandID,
		"model_name": modelName,
		"year":       year,
	})

	ctx := context.Background()
	cacheKey := fmt.Sprintf("compat:engine-options:%d:%s:%d", brandID, strings.ToLower(modelName), year)
	var cached []string
	if redis.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	variants, err := s.variantRepo.FindForEngineOptions(brandID, modelName, year)
	if err != nil {
		logger.Error("Failed to query engine options", err, map[string]interface{}{
			"brand_id":   brandID,
			"model_name": modelName,
		})
		return nil, err
	}
	if len(variants) == 0 {
		logger.Warn("No engine options found", map[string]interface{}{
			"brand_id":   brandID,
			"model_name": modelName,
			"year":       year,
		})
		return nil, ErrNoEngineOptions
	}

	seen := make(map[string]bool)
	var options []string
	for _, v := range variants {
		option := fmt.Sprintf("%s/%d", v.FuelType, v.EngineSize)
		if !seen[option] {
			seen[option] = true
			options = append(options, option)
		}
	}
	sort.Strings(options)

	if err := redis.CacheJSON(ctx, cacheKey, options, compatCacheTTL); err != nil {
		logger.Warn("Failed to cache engine options", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}
	return options, nil
}

// FindCompatibleYears returns the sorted union of every year covered by
// the model's variant spans.
func (s *compatibilityService) FindCompatibleYears(carModelID uint) ([]int, error) {
	logger.Debug("Finding compatible years", map[string]interface{}{
		"car_model_id": carModelID,
	})

	if _, err := s.modelRepo.FindByID(carModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("compat:years:%d", carModelID)
	var cached []int
	if redis.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	variants, err := s.variantRepo.FindByCarModel(carModelID)
	if err != nil {
		logger.Error("Failed to fetch variants for year expansion", err, map[string]interface{}{
			"car_model_id": carModelID,
		})
		return nil, err
	}
	if len(variants) == 0 {
		logger.Warn("No variants for compatible years", map[string]interface{}{
			"car_model_id": carModelID,
		})
		return nil, ErrNoMatchingVariants
	}

	seen := make(map[int]bool)
	var years []int
	for _, v := range variants {
		for year := v.YearFrom; year <= v.YearTo; year++ {
			if !seen[year] {
				seen[year] = true
				years = append(years, year)
			}
		}
	}
	sort.Ints(years)

	if err := redis.CacheJSON(ctx, cacheKey, years, compatCacheTTL); err != nil {
		logger.Warn("Failed to cache compatible years", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}
	return years, nil
}

// FindPartsByModelAndYear resolves the variants matching the criteria and
// returns the distinct parts linked to any of them.
func (s *compatibilityService) FindPartsByModelAndYear(carModelID uint, year int, filter PartsByYearFilter) ([]model.Part, error) {
	logger.Debug("Finding parts by model and year", map[string]interface{}{
		"car_model_id": carModelID,
		"year":         year,
		"fuel_type":    filter.FuelType,
		"engine_size":  filter.EngineSize,
	})

	if _, err := s.modelRepo.FindByID(carModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}

	variants, err := s.variantRepo.FindMatching(carModelID, year, filter.FuelType, filter.EngineSize)
	if err != nil {
		logger.Error("Failed to match engine variants", err, map[string]interface{}{
			"car_model_id": carModelID,
			"year":         year,
		})
		return nil, err
	}
	if len(variants) == 0 {
		return nil, ErrNoMatchingVariants
	}

	ids := make([]uint, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}

	parts, err := s.partRepo.FindByEngineVariants(ids)
	if err != nil {
		logger.Error("Failed to fetch parts for variants", err, map[string]interface{}{
			"variant_ids": ids,
		})
		return nil, err
	}
	return parts, nil
}
