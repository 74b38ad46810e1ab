package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type PartsCategoryController struct {
	categoryService service.PartsCategoryService
}

func NewPartsCategoryController(categoryService service.PartsCategoryService) *PartsCategoryController {
	return &PartsCategoryController{
		categoryService: categoryService,
	}
}

// GetCategories lists all parts categories
// GET /api/v1/parts/categories
func (ctrl *PartsCategoryController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.GetAllCategories()
	if err != nil {
		log.Error("Failed to fetch parts categories", err)
		apperrors.InternalError(c, "failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory returns one parts category
// GET /api/v1/parts/categories/:id
func (ctrl *PartsCategoryController) GetCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, service.ErrPartsCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "parts category not found")
			return
		}
		log.Error("Failed to fetch parts category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory creates a parts category
// POST /api/v1/parts/categories
func (ctrl *PartsCategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameRequired) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "category name is required")
			return
		}
		log.Error("Failed to create parts category", err, map[string]interface{}{
			"name": req.Name,
		})
		info := apperrors.ParseError(err)
		apperrors.RespondWithError(c, info.StatusCode, info.Code, info.Message)
		return
	}

	log.Info("Parts category created", map[string]interface{}{
		"category_id": category.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory renames a parts category
// PUT /api/v1/parts/categories/:id
func (ctrl *PartsCategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartsCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "parts category not found")
		case errors.Is(err, service.ErrCategoryNameRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "category name is required")
		default:
			log.Error("Failed to update parts category", err, map[string]interface{}{
				"category_id": id,
			})
			info := apperrors.ParseError(err)
			apperrors.RespondWithError(c, info.StatusCode, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory removes an empty parts category
// DELETE /api/v1/parts/categories/:id
func (ctrl *PartsCategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, service.ErrPartsCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "parts category not found")
		case errors.Is(err, service.ErrCategoryHasMembers):
			apperrors.Conflict(c, apperrors.CatalogCategoryNotEmpty, "category still has parts")
		default:
			log.Error("Failed to delete parts category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "failed to delete category")
		}
		return
	}

	log.Info("Parts category deleted", map[string]interface{}{
		"category_id": id,
	})

	c.Status(http.StatusNoContent)
}

type EquipmentCategoryController struct {
	categoryService service.EquipmentCategoryService
}

func NewEquipmentCategoryController(categoryService service.EquipmentCategoryService) *EquipmentCategoryController {
	return &EquipmentCategoryController{
		categoryService: categoryService,
	}
}

// GetCategories lists all equipment categories
// GET /api/v1/equipment/categories
func (ctrl *EquipmentCategoryController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.GetAllCategories()
	if err != nil {
		log.Error("Failed to fetch equipment categories", err)
		apperrors.InternalError(c, "failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory returns one equipment category
// GET /api/v1/equipment/categories/:id
func (ctrl *EquipmentCategoryController) GetCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "equipment category not found")
			return
		}
		log.Error("Failed to fetch equipment category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory creates an equipment category
// POST /api/v1/equipment/categories
func (ctrl *EquipmentCategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameRequired) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "category name is required")
			return
		}
		log.Error("Failed to create equipment category", err, map[string]interface{}{
			"name": req.Name,
		})
		info := apperrors.ParseError(err)
		apperrors.RespondWithError(c, info.StatusCode, info.Code, info.Message)
		return
	}

	log.Info("Equipment category created", map[string]interface{}{
		"category_id": category.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory renames an equipment category
// PUT /api/v1/equipment/categories/:id
func (ctrl *EquipmentCategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEquipmentCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "equipment category not found")
		case errors.Is(err, service.ErrCategoryNameRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "category name is required")
		default:
			log.Error("Failed to update equipment category", err, map[string]interface{}{
				"category_id": id,
			})
			info := apperrors.ParseError(err)
			apperrors.RespondWithError(c, info.StatusCode, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory removes an empty equipment category
// DELETE /api/v1/equipment/categories/:id
func (ctrl *EquipmentCategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, service.ErrEquipmentCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "equipment category not found")
		case errors.Is(err, service.ErrCategoryHasMembers):
			apperrors.Conflict(c, apperrors.CatalogCategoryNotEmpty, "category still has equipment")
		default:
			log.Error("Failed to delete equipment category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "failed to delete category")
		}
		return
	}

	log.Info("Equipment category deleted", map[string]interface{}{
		"category_id": id,
	})

	c.Status(http.StatusNoContent)
}
