package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CarModelController struct {
	modelService  service.CarModelService
	compatService service.CompatibilityService
}

func NewCarModelController(modelService service.CarModelService, compatService service.CompatibilityService) *CarModelController {
	return &CarModelController{
		modelService:  modelService,
		compatService: compatService,
	}
}

type CarModelRequest struct {
	Name       string `json:"name" binding:"required"`
	Year       int    `json:"year"`
	CarBrandID uint   `json:"car_brand_id" binding:"required"`
}

// GetModels lists all car models
// GET /api/v1/cars/models
func (ctrl *CarModelController) GetModels(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	models, err := ctrl.modelService.GetAllModels()
	if err != nil {
		log.Error("Failed to fetch car models", err)
		apperrors.InternalError(c, "failed to fetch car models")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"models": models,
		"count":  len(models),
	})
}

// GetModel returns one car model
// GET /api/v1/cars/models/:id
func (ctrl *CarModelController) GetModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	carModel, err := ctrl.modelService.GetModel(id)
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
			return
		}
		log.Error("Failed to fetch car model", err, map[string]interface{}{
			"model_id": id,
		})
		apperrors.InternalError(c, "failed to fetch car model")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model": carModel,
	})
}

// GetModelsByBrand lists models of one brand
// GET /api/v1/cars/models/brand/:brandId
func (ctrl *CarModelController) GetModelsByBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brandID, ok := parseIDParam(c, "brandId")
	if !ok {
		return
	}

	models, err := ctrl.modelService.GetModelsByBrand(brandID)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "car brand not found")
			return
		}
		log.Error("Failed to fetch brand models", err, map[string]interface{}{
			"brand_id": brandID,
		})
		apperrors.InternalError(c, "failed to fetch models")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"models": models,
		"count":  len(models),
	})
}

// CreateModel creates a car model
// POST /api/v1/cars/models
func (ctrl *CarModelController) CreateModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CarModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	carModel, err := ctrl.modelService.CreateModel(service.CreateCarModelInput{
		Name:       req.Name,
		Year:       req.Year,
		CarBrandID: req.CarBrandID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "car brand not found")
		case errors.Is(err, service.ErrModelNameRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "model name is required")
		default:
			log.Error("Failed to create car model", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "failed to create car model")
		}
		return
	}

	log.Info("Car model created", map[string]interface{}{
		"model_id": carModel.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"model": carModel,
	})
}

// UpdateModel updates a car model
// PUT /api/v1/cars/models/:id
func (ctrl *CarModelController) UpdateModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CarModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	carModel, err := ctrl.modelService.UpdateModel(id, service.CreateCarModelInput{
		Name:       req.Name,
		Year:       req.Year,
		CarBrandID: req.CarBrandID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotFound):
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "car brand not found")
		case errors.Is(err, service.ErrModelNameRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "model name is required")
		default:
			log.Error("Failed to update car model", err, map[string]interface{}{
				"model_id": id,
			})
			apperrors.InternalError(c, "failed to update car model")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model": carModel,
	})
}

// DeleteModel removes a model with no parts or variants
// DELETE /api/v1/cars/models/:id
func (ctrl *CarModelController) DeleteModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.modelService.DeleteModel(id); err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotFound):
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
		case errors.Is(err, service.ErrModelHasDependents):
			apperrors.Conflict(c, apperrors.CatalogHasDependents, "model still has parts or engine variants")
		default:
			log.Error("Failed to delete car model", err, map[string]interface{}{
				"model_id": id,
			})
			apperrors.InternalError(c, "failed to delete car model")
		}
		return
	}

	log.Info("Car model deleted", map[string]interface{}{
		"model_id": id,
	})

	c.Status(http.StatusNoContent)
}

// GetEngineOptions lists "fuelType/engineSize" options for a brand, model
// name and year
// GET /api/v1/cars/models/engine-options?brand_id=&model_name=&year=
func (ctrl *CarModelController) GetEngineOptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brandID, ok := parseUintQuery(c, "brand_id")
	if !ok {
		return
	}
	year, ok := parseIntQuery(c, "year")
	if !ok {
		return
	}
	modelName := c.Query("model_name")

	if brandID == 0 || modelName == "" || year == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "brand_id, model_name and year are required")
		return
	}

	options, err := ctrl.compatService.FindEngineOptions(brandID, modelName, year)
	if err != nil {
		if errors.Is(err, service.ErrNoEngineOptions) {
			apperrors.NotFound(c, apperrors.CatalogNoMatch, "no engine options for the given model and year")
			return
		}
		log.Error("Failed to fetch engine options", err, map[string]interface{}{
			"brand_id":   brandID,
			"model_name": modelName,
		})
		apperrors.InternalError(c, "failed to fetch engine options")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"options": options,
	})
}

// GetCompatibleYears lists every year covered by a model's variants
// GET /api/v1/cars/models/:id/compatible-years
func (ctrl *CarModelController) GetCompatibleYears(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	years, err := ctrl.compatService.FindCompatibleYears(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotFound):
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
		case errors.Is(err, service.ErrNoMatchingVariants):
			apperrors.NotFound(c, apperrors.CatalogNoMatch, "model has no engine variants")
		default:
			log.Error("Failed to fetch compatible years", err, map[string]interface{}{
				"model_id": id,
			})
			apperrors.InternalError(c, "failed to fetch compatible years")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"years": years,
	})
}
