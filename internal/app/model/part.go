package model

import (
	"time"
)

type PartsCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parts []Part `gorm:"foreignKey:PartsCategoryID" json:"parts,omitempty"`
}

func (PartsCategory) TableName() string {
	return "parts_categories"
}

type Part struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Price           float64   `gorm:"not null" json:"price"`
	CarModelID      uint      `gorm:"not null;index" json:"car_model_id"`
	PartsCategoryID uint      `gorm:"not null;index" json:"parts_category_id"`
	Manufacturer    string    `gorm:"not null" json:"manufacturer"`
	Side            string    `json:"side"` // left/right/front/rear
	Shape           string    `json:"shape"`
	Size            string    `json:"size"`
	Type            string    `json:"type"`
	Material        string    `json:"material"`
	Description     string    `gorm:"type:text" json:"description"`
	Quantity        int       `gorm:"default:1" json:"quantity"` // stock on hand
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	CarModel       *CarModel       `gorm:"foreignKey:CarModelID" json:"car_model,omitempty"`
	PartsCategory  *PartsCategory  `gorm:"foreignKey:PartsCategoryID" json:"parts_category,omitempty"`
	EngineVariants []EngineVariant `gorm:"many2many:part_engine_variants" json:"engine_variants,omitempty"`
}

func (Part) TableName() string {
	return "parts"
}
