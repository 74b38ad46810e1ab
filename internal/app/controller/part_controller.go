package controller

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/autopartshop/autoparts-backend/internal/errors"

	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type PartController struct {
	partService   service.PartService
	compatService service.CompatibilityService
}

func NewPartController(partService service.PartService, compatService service.CompatibilityService) *PartController {
	return &PartController{
		partService:   partService,
		compatService: compatService,
	}
}

type PartRequest struct {
	Name             string  `json:"name" binding:"required"`
	Price            float64 `json:"price" binding:"required,gte=0"`
	CarModelID       uint    `json:"car_model_id" binding:"required"`
	PartsCategoryID  uint    `json:"parts_category_id" binding:"required"`
	Manufacturer     string  `json:"manufacturer" binding:"required"`
	Side             string  `json:"side"`
	Shape            string  `json:"shape"`
	Size             string  `json:"size"`
	Type             string  `json:"type"`
	Material         string  `json:"material"`
	Description      string  `json:"description"`
	Quantity         int     `json:"quantity"`
	ImageURL         string  `json:"image_url"`
	EngineVariantIDs []uint  `json:"engine_variant_ids"`
}

func (r PartRequest) toInput() service.PartInput {
	return service.PartInput{
		Name:             r.Name,
		Price:            r.Price,
		CarModelID:       r.CarModelID,
		PartsCategoryID:  r.PartsCategoryID,
		Manufacturer:     r.Manufacturer,
		Side:             r.Side,
		Shape:            r.Shape,
		Size:             r.Size,
		Type:             r.Type,
		Material:         r.Material,
		Description:      r.Description,
		Quantity:         r.Quantity,
		ImageURL:         r.ImageURL,
		EngineVariantIDs: r.EngineVariantIDs,
	}
}

func respondPartError(c *gin.Context, log *logger.Logger, err error, action string) {
	switch {
	case errors.Is(err, service.ErrPartNotFound):
		apperrors.NotFound(c, apperrors.CatalogPartNotFound, "part not found")
	case errors.Is(err, service.ErrModelNotFound):
		apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
	case errors.Is(err, service.ErrPartsCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "parts category not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "engine variant not found")
	case errors.Is(err, service.ErrVariantModelMismatch):
		apperrors.BadRequest(c, apperrors.CatalogVariantModelMismatch, "engine variant does not belong to the part's car model")
	case errors.Is(err, service.ErrInvalidPart):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid part data")
	default:
		log.Error("Failed to "+action, err)
		apperrors.InternalError(c, "failed to "+action)
	}
}

// GetParts lists all parts
// GET /api/v1/parts
func (ctrl *PartController) GetParts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	parts, err := ctrl.partService.GetAllParts()
	if err != nil {
		log.Error("Failed to fetch parts", err)
		apperrors.InternalError(c, "failed to fetch parts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"count": len(parts),
	})
}

// GetPart returns one part with its category, model and variants
// GET /api/v1/parts/:id
func (ctrl *PartController) GetPart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	part, err := ctrl.partService.GetPart(id)
	if err != nil {
		respondPartError(c, log, err, "fetch part")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"part": part,
	})
}

// GetPartsByModel lists parts of one car model
// GET /api/v1/parts/carmodel/:carModelId
func (ctrl *PartController) GetPartsByModel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	carModelID, ok := parseIDParam(c, "carModelId")
	if !ok {
		return
	}

	parts, err := ctrl.partService.GetPartsByModel(carModelID)
	if err != nil {
		respondPartError(c, log, err, "fetch model parts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"count": len(parts),
	})
}

// CreatePart creates a part with optional engine variant links
// POST /api/v1/parts
func (ctrl *PartController) CreatePart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	part, err := ctrl.partService.CreatePart(req.toInput())
	if err != nil {
		respondPartError(c, log, err, "create part")
		return
	}

	log.Info("Part created", map[string]interface{}{
		"part_id": part.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"part": part,
	})
}

// UpdatePart updates a part and replaces its variant links
// PUT /api/v1/parts/:id
func (ctrl *PartController) UpdatePart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request data")
		return
	}

	part, err := ctrl.partService.UpdatePart(id, req.toInput())
	if err != nil {
		respondPartError(c, log, err, "update part")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"part": part,
	})
}

// DeletePart removes a part and its variant links
// DELETE /api/v1/parts/:id
func (ctrl *PartController) DeletePart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.partService.DeletePart(id); err != nil {
		respondPartError(c, log, err, "delete part")
		return
	}

	log.Info("Part deleted", map[string]interface{}{
		"part_id": id,
	})

	c.Status(http.StatusNoContent)
}

// SearchParts filters parts by name substring and exact references
// GET /api/v1/parts/search?name=&car_model_id=&parts_category_id=&engine_variant_id=
func (ctrl *PartController) SearchParts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	carModelID, ok := parseUintQuery(c, "car_model_id")
	if !ok {
		return
	}
	categoryID, ok := parseUintQuery(c, "parts_category_id")
	if !ok {
		return
	}
	variantID, ok := parseUintQuery(c, "engine_variant_id")
	if !ok {
		return
	}

	parts, err := ctrl.partService.SearchParts(repository.PartSearchFilter{
		Name:            c.Query("name"),
		CarModelID:      carModelID,
		PartsCategoryID: categoryID,
		EngineVariantID: variantID,
	})
	if err != nil {
		log.Error("Part search failed", err)
		apperrors.InternalError(c, "part search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"count": len(parts),
	})
}

// GetCompatibleParts lists parts fitting a model, year and optional engine
// GET /api/v1/parts/compatible?car_model_id=&year=&fuel_type=&engine_size=
func (ctrl *PartController) GetCompatibleParts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	carModelID, ok := parseUintQuery(c, "car_model_id")
	if !ok {
		return
	}
	year, ok := parseIntQuery(c, "year")
	if !ok {
		return
	}
	engineSize, ok := parseIntQuery(c, "engine_size")
	if !ok {
		return
	}

	if carModelID == 0 || year == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "car_model_id and year are required")
		return
	}

	parts, err := ctrl.compatService.FindPartsByModelAndYear(carModelID, year, service.PartsByYearFilter{
		FuelType:   c.Query("fuel_type"),
		EngineSize: engineSize,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotFound):
			apperrors.NotFound(c, apperrors.CatalogModelNotFound, "car model not found")
		case errors.Is(err, service.ErrNoMatchingVariants):
			apperrors.NotFound(c, apperrors.CatalogNoMatch, "no engine variants match the given criteria")
		default:
			log.Error("Failed to fetch compatible parts", err, map[string]interface{}{
				"car_model_id": carModelID,
				"year":         year,
			})
			apperrors.InternalError(c, "failed to fetch compatible parts")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"count": len(parts),
	})
}

// ExportParts streams the full parts catalog as an Excel workbook
// GET /api/v1/parts/export
func (ctrl *PartController) ExportParts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	parts, err := ctrl.partService.GetAllParts()
	if err != nil {
		log.Error("Failed to fetch parts for export", err)
		apperrors.InternalError(c, "failed to export parts")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Parts"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{"ID", "Name", "Price", "Manufacturer", "Car Model", "Category", "Quantity", "Side", "Type", "Material"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		log.Error("Failed to write export header", err)
		apperrors.InternalError(c, "failed to export parts")
		return
	}

	for i, part := range parts {
		modelName := ""
		if part.CarModel != nil {
			modelName = part.CarModel.Name
		}
		categoryName := ""
		if part.PartsCategory != nil {
			categoryName = part.PartsCategory.Name
		}
		row := []interface{}{
			part.ID, part.Name, part.Price, part.Manufacturer,
			modelName, categoryName, part.Quantity,
			part.Side, part.Type, part.Material,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			log.Error("Failed to write export row", err, map[string]interface{}{
				"part_id": part.ID,
			})
			apperrors.InternalError(c, "failed to export parts")
			return
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="parts.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream export", err)
		return
	}

	log.Info("Parts exported", map[string]interface{}{
		"count": len(parts),
	})
}
