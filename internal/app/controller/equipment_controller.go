package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type EquipmentController struct {
	equipmentService service.EquipmentService
}

func NewEquipmentController(equipmentService service.EquipmentService) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
	}
}

type EquipmentRequest struct {
	Name                string  `json:"name" binding:"required"`
	Manufacturer        string  `json:"manufacturer" binding:"required"`
	Price               float64 `json:"price" binding:"required,gt=0"`
	EquipmentCategoryID uint    `json:"equipment_category_id" binding:"required"`
	Size                string  `json:"size"`
	Material            string  `json:"material"`
	Side                string  `json:"side"`
	Description         string  `json:"description"`
	Quantity            int     `json:"quantity"`
	ImageURL            string  `json:"image_url"`
}

func (r EquipmentRequest) toInput() service.EquipmentInput {
	return service.EquipmentInput{
		Name:                r.Name,
		Manufacturer:        r.Manufacturer,
		Price:               r.Price,
		EquipmentCategoryID: r.EquipmentCategoryID,
		Size:                r.Size,
		Material:            r.Material,
		Side:                r.Side,
		Description:         r.Description,
		Quantity:            r.Quantity,
		ImageURL:            r.ImageURL,
	}
}

// GetEquipment lists all equipment
// GET /api/v1/equipment
func (ctrl *EquipmentController) GetEquipment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	equipment, err := ctrl.equipmentService.GetAllEquipment()
	if err != nil {
		log.Error("Failed to fetch equipment", err)
		apperrors.InternalError(c, "failed to fetch equipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipment": equipment,
		"count":     len(equipment),
	})
}

// GetEquipmentByID returns one equipment record
// GET /api/v1/equipment/:id
func (ctrl *EquipmentController) GetEquipmentByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	equipment, err := ctrl.equipmentService.GetEquipment(id)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			apperrors.NotFound(c, apperrors.CatalogEquipmentNotFound, "equipment not found")
			return
		}
		log.Error("Failed to fetch equipment", err, map[string]interface{}{
			"equipment_id": id,
		})
		apperrors.InternalError(c, "failed to fetch equipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipment": equipment,
	})
}

// GetEquipmentByCategory lists equipment in one category
// GET /api/v1/equipment/category/:categoryId
func (ctrl *EquipmentController) GetEquipmentByCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}

	equipment, err := ctrl.equipmentService.GetEquipmentByCategory(categoryID)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "equipment category not found")
			return
		}
		log.Error("Failed to fetch category equipment", err, map[string]interface{}{
			"category_id": categoryID,
		})
		apperrors.InternalError(c, "failed to fetch equipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipment": equipment,
		"count":     len(equipment),
	})
}

// CreateEquipment creates an equipment record
// POST /api/v1/equipment
func (ctrl *EquipmentController) CreateEquipment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	equipment, err := ctrl.equipmentService.CreateEquipment(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEquipment):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid equipment data")
		case errors.Is(err, service.ErrEquipmentCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "equipment category not found")
		default:
			log.Error("Failed to create equipment", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "failed to create equipment")
		}
		return
	}

	log.Info("Equipment created", map[string]interface{}{
		"equipment_id": equipment.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"equipment": equipment,
	})
}

// UpdateEquipment updates an equipment record
// PUT /api/v1/equipment/:id
func (ctrl *EquipmentController) UpdateEquipment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	equipment, err := ctrl.equipmentService.UpdateEquipment(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEquipmentNotFound):
			apperrors.NotFound(c, apperrors.CatalogEquipmentNotFound, "equipment not found")
		case errors.Is(err, service.ErrInvalidEquipment):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid equipment data")
		case errors.Is(err, service.ErrEquipmentCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "equipment category not found")
		default:
			log.Error("Failed to update equipment", err, map[string]interface{}{
				"equipment_id": id,
			})
			apperrors.InternalError(c, "failed to update equipment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipment": equipment,
	})
}

// DeleteEquipment removes an equipment record
// DELETE /api/v1/equipment/:id
func (ctrl *EquipmentController) DeleteEquipment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.equipmentService.DeleteEquipment(id); err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			apperrors.NotFound(c, apperrors.CatalogEquipmentNotFound, "equipment not found")
			return
		}
		log.Error("Failed to delete equipment", err, map[string]interface{}{
			"equipment_id": id,
		})
		apperrors.InternalError(c, "failed to delete equipment")
		return
	}

	log.Info("Equipment deleted", map[string]interface{}{
		"equipment_id": id,
	})

	c.Status(http.StatusNoContent)
}
