package model

import (
	"time"
)

type CarBrand struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Models []CarModel `gorm:"foreignKey:CarBrandID" json:"models,omitempty"`
}

func (CarBrand) TableName() string {
	return "car_brands"
}

type CarModel struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Year       int       `json:"year"` // first model year
	CarBrandID uint      `gorm:"not null;index" json:"car_brand_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Brand          *CarBrand       `gorm:"foreignKey:CarBrandID" json:"brand,omitempty"`
	Parts          []Part          `gorm:"foreignKey:CarModelID" json:"parts,omitempty"`
	EngineVariants []EngineVariant `gorm:"foreignKey:CarModelID" json:"engine_variants,omitempty"`
}

func (CarModel) TableName() string {
	return "car_models"
}
