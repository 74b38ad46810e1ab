package model

import (
	"time"
)

// EngineVariant is one (fuel type, engine size, year range) configuration
// of a car model. Parts link to the variants they fit via PartEngineVariant.
type EngineVariant struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CarModelID uint      `gorm:"not null;index" json:"car_model_id"`
	FuelType   string    `gorm:"not null" json:"fuel_type"`
	EngineSize int       `gorm:"not null" json:"engine_size"` // cc
	YearFrom   int       `gorm:"not null" json:"year_from"`
	YearTo     int       `gorm:"not null" json:"year_to"` // inclusive
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	CarModel *CarModel `gorm:"foreignKey:CarModelID" json:"car_model,omitempty"`
	Parts    []Part    `gorm:"many2many:part_engine_variants" json:"parts,omitempty"`
}

func (EngineVariant) TableName() string {
	return "engine_variants"
}

// PartEngineVariant is the part/variant association row
type PartEngineVariant struct {
	PartID          uint `gorm:"primarykey" json:"part_id"`
	EngineVariantID uint `gorm:"primarykey" json:"engine_variant_id"`
}

func (PartEngineVariant) TableName() string {
	return "part_engine_variants"
}
