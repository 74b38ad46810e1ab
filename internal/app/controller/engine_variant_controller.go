package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type EngineVariantController struct {
	variantService service.EngineVariantService
}

func NewEngineVariantController(variantService service.EngineVariantService) *EngineVariantController {
	return &EngineVariantController{
		variantService: variantService,
	}
}

type EngineVariantRequest struct {
	CarModelID uint   `json:"car_model_id" binding:"required"`
	FuelType   string `json:"fuel_type" binding:"required"`
	EngineSize int    `json:"engine_size" binding:"required,gt=0"`
	YearFrom   int    `json:"year_from" binding:"required,gt=0"`
	YearTo     int    `json:"year_to" binding:"required,gt=0"`
}

// GetVariant returns one engine variant
// GET /api/v1/enginevariants/:id
func (ctrl *EngineVariantController) GetVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	variant, err := ctrl.variantService.GetVariant(id)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "engine variant not found")
			return
		}
		log.Error("Failed to fetch engine variant", err, map[string]interface{}{
			"variant_id": id,
		})
		apperrors.InternalError(c, "failed to fetch engine variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
	})
}

// GetVariantsByModel lists the variants of one car model
// GET /api/v1/enginevariants/carmodel/:carModelId
func (ctrl *EngineVariantController) GetVariantsByModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	carModelID, ok := parseIDParam(c, "carModelId")
	if !ok {
		return
	}

	variants, err := ctrl.variantService.GetVariantsByModel(carModelID)
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
			return
		}
		log.Error("Failed to fetch model variants", err, map[string]interface{}{
			"car_model_id": carModelID,
		})
		apperrors.InternalError(c, "failed to fetch engine variants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variants": variants,
		"count":    len(variants),
	})
}

// CreateVariant creates an engine variant
// POST /api/v1/enginevariants
func (ctrl *EngineVariantController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req EngineVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	variant, err := ctrl.variantService.CreateVariant(service.EngineVariantInput{
		CarModelID: req.CarModelID,
		FuelType:   req.FuelType,
		EngineSize: req.EngineSize,
		YearFrom:   req.YearFrom,
		YearTo:     req.YearTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVariant):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid engine variant data")
		case errors.Is(err, service.ErrModelNotFound):
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
		default:
			log.Error("Failed to create engine variant", err, map[string]interface{}{
				"car_model_id": req.CarModelID,
			})
			apperrors.InternalError(c, "failed to create engine variant")
		}
		return
	}

	log.Info("Engine variant created", map[string]interface{}{
		"variant_id": variant.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"variant": variant,
	})
}

// UpdateVariant updates an engine variant
// PUT /api/v1/enginevariants/:id
func (ctrl *EngineVariantController) UpdateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EngineVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	variant, err := ctrl.variantService.UpdateVariant(id, service.EngineVariantInput{
		CarModelID: req.CarModelID,
		FuelType:   req.FuelType,
		EngineSize: req.EngineSize,
		YearFrom:   req.YearFrom,
		YearTo:     req.YearTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVariant):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid engine variant data")
		case errors.Is(err, service.ErrVariantNotFound):
			apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "engine variant not found")
		case errors.Is(err, service.ErrModelNotFound):
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
		default:
			log.Error("Failed to update engine variant", err, map[string]interface{}{
				"variant_id": id,
			})
			apperrors.InternalError(c, "failed to update engine variant")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
	})
}

// DeleteVariant removes a variant and its part links
// DELETE /api/v1/enginevariants/:id
func (ctrl *EngineVariantController) DeleteVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.variantService.DeleteVariant(id); err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "engine variant not found")
			return
		}
		log.Error("Failed to delete engine variant", err, map[string]interface{}{
			"variant_id": id,
		})
		apperrors.InternalError(c, "failed to delete engine variant")
		return
	}

	log.Info("Engine variant deleted", map[string]interface{}{
		"variant_id": id,
	})

	c.Status(http.StatusNoContent)
}
