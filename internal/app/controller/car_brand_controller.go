package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CarBrandController struct {
	brandService service.CarBrandService
}

func NewCarBrandController(brandService service.CarBrandService) *CarBrandController {
	return &CarBrandController{
		brandService: brandService,
	}
}

type CarBrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetBrands lists all car brands
// GET /api/v1/cars
func (ctrl *CarBrandController) GetBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brands, err := ctrl.brandService.GetAllBrands()
	if err != nil {
		log.Error("Failed to fetch car brands", err)
		apperrors.InternalError(c, "failed to fetch car brands")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
		"count":  len(brands),
	})
}

// GetBrand returns one car brand
// GET /api/v1/cars/:id
func (ctrl *CarBrandController) GetBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	brand, err := ctrl.brandService.GetBrand(id)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "car brand not found")
			return
		}
		log.Error("Failed to fetch car brand", err, map[string]interface{}{
			"brand_id": id,
		})
		apperrors.InternalError(c, "failed to fetch car brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brand": brand,
	})
}

// CreateBrand creates a car brand
// POST /api/v1/cars
func (ctrl *CarBrandController) CreateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CarBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	brand, err := ctrl.brandService.CreateBrand(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrBrandNameRequired) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "brand name is required")
			return
		}
		log.Error("Failed to create car brand", err, map[string]interface{}{
			"name": req.Name,
		})
		info := apperrors.ParseError(err)
		apperrors.RespondWithError(c, info.StatusCode, info.Code, info.Message)
		return
	}

	log.Info("Car brand created", map[string]interface{}{
		"brand_id": brand.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"brand": brand,
	})
}

// UpdateBrand renames a car brand
// PUT /api/v1/cars/:id
func (ctrl *CarBrandController) UpdateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CarBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	brand, err := ctrl.brandService.UpdateBrand(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "car brand not found")
		case errors.Is(err, service.ErrBrandNameRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "brand name is required")
		default:
			log.Error("Failed to update car brand", err, map[string]interface{}{
				"brand_id": id,
			})
			info := apperrors.ParseError(err)
			apperrors.RespondWithError(c, info.StatusCode, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brand": brand,
	})
}

// DeleteBrand removes a brand with no models
// DELETE /api/v1/cars/:id
func (ctrl *CarBrandController) DeleteBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.brandService.DeleteBrand(id); err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "car brand not found")
		case errors.Is(err, service.ErrBrandHasModels):
			apperrors.Conflict(c, apperrors.CatalogHasDependents, "brand still has models")
		default:
			log.Error("Failed to delete car brand", err, map[string]interface{}{
				"brand_id": id,
			})
			apperrors.InternalError(c, "failed to delete car brand")
		}
		return
	}

	log.Info("Car brand deleted", map[string]interface{}{
		"brand_id": id,
	})

	c.Status(http.StatusNoContent)
}
