package repository

import (
	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

// PartSearchFilter holds the optional filters of a part search. Zero
// values mean "not filtered".
type PartSearchFilter struct {
	Name            string
	CarModelID      uint
	PartsCategoryID uint
	EngineVariantID uint
}

type PartRepository interface {
	Create(part *model.Part, engineVariantIDs []uint) error
	FindByID(id uint) (*model.Part, error)
	FindAll() ([]model.Part, error)
	FindByCarModel(carModelID uint) ([]model.Part, error)
	FindByEngineVariants(variantIDs []uint) ([]model.Part, error)
	Search(filter PartSearchFilter) ([]model.Part, error)
	Update(part *model.Part, engineVariantIDs []uint, replaceLinks bool) error
	Delete(id uint) error
}

type partRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(part *model.Part, engineVariantIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(part).Error; err != nil {
			return err
		}
		return createVariantLinks(tx, part.ID, engineVariantIDs)
	})
	if err != nil {
		logger.Error("Failed to create part in database", err, map[string]interface{}{
			"name":         part.Name,
			"car_model_id": part.CarModelID,
		})
		return err
	}

	logger.Debug("Part created in database", map[string]interface{}{
		"part_id":       part.ID,
		"variant_links": len(engineVariantIDs),
	})
	return nil
}

func (r *partRepository) FindByID(id uint) (*model.Part, error) {
	var part model.Part
	err := r.db.
		Preload("CarModel").
		Preload("PartsCategory").
		Preload("EngineVariants").
		First(&part, id).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) FindAll() ([]model.Part, error) {
	var parts []model.Part
	err := r.db.
		Preload("CarModel").
		Preload("PartsCategory").
		Order("name").
		Find(&parts).Error
	if err != nil {
		logger.Error("Failed to list parts from database", err)
		return nil, err
	}
	return parts, nil
}

func (r *partRepository) FindByCarModel(carModelID uint) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.
		Where("car_model_id = ?", carModelID).
		Preload("CarModel").
		Preload("CarModel.Brand").
		Preload("PartsCategory").
		Order("name").
		Find(&parts).Error
	if err != nil {
		logger.Error("Failed to list parts by car model from database", err, map[string]interface{}{
			"car_model_id": carModelID,
		})
		return nil, err
	}
	return parts, nil
}

// FindByEngineVariants returns the distinct parts linked to any of the
// given variants.
func (r *partRepository) FindByEngineVariants(variantIDs []uint) ([]model.Part, error) {
	var parts []model.Part
	if len(variantIDs) == 0 {
		return parts, nil
	}

	err := r.db.
		Distinct("parts.*").
		Joins("JOIN part_engine_variants ON part_engine_variants.part_id = parts.id").
		Where("part_engine_variants.engine_variant_id IN ?", variantIDs).
		Preload("PartsCategory").
		Find(&parts).Error
	if err != nil {
		logger.Error("Failed to query parts by engine variants from database", err, map[string]interface{}{
			"variant_count": len(variantIDs),
		})
		return nil, err
	}
	return parts, nil
}

func (r *partRepository) Search(filter PartSearchFilter) ([]model.Part, error) {
	query := r.db.
		Preload("CarModel").
		Preload("CarModel.Brand").
		Preload("PartsCategory")

	if filter.Name != "" {
		query = query.Where("LOWER(parts.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.CarModelID > 0 {
		query = query.Where("parts.car_model_id = ?", filter.CarModelID)
	}
	if filter.PartsCategoryID > 0 {
		query = query.Where("parts.parts_category_id = ?", filter.PartsCategoryID)
	}
	if filter.EngineVariantID > 0 {
		query = query.
			Joins("JOIN part_engine_variants ON part_engine_variants.part_id = parts.id").
			Where("part_engine_variants.engine_variant_id = ?", filter.EngineVariantID)
	}

	var parts []model.Part
	if err := query.Find(&parts).Error; err != nil {
		logger.Error("Failed to search parts in database", err, map[string]interface{}{
			"name":          filter.Name,
			"car_model_id":  filter.CarModelID,
			"category_id":   filter.PartsCategoryID,
			"variant_id":    filter.EngineVariantID,
		})
		return nil, err
	}
	return parts, nil
}

func (r *partRepository) Update(part *model.Part, engineVariantIDs []uint, replaceLinks bool) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(part).Error; err != nil {
			return err
		}
		if !replaceLinks {
			return nil
		}
		if err := tx.Where("part_id = ?", part.ID).Delete(&model.PartEngineVariant{}).Error; err != nil {
			return err
		}
		return createVariantLinks(tx, part.ID, engineVariantIDs)
	})
	if err != nil {
		logger.Error("Failed to update part in database", err, map[string]interface{}{
			"part_id": part.ID,
		})
		return err
	}
	return nil
}

func (r *partRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ?", id).Delete(&model.PartEngineVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Part{}, id).Error
	})
}

func createVariantLinks(tx *gorm.DB, partID uint, variantIDs []uint) error {
	for _, variantID := range variantIDs {
		link := model.PartEngineVariant{PartID: partID, EngineVariantID: variantID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
