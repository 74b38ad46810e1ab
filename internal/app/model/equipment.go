package model

import (
	"time"
)

type EquipmentCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Equipment []Equipment `gorm:"foreignKey:EquipmentCategoryID" json:"equipment,omitempty"`
}

func (EquipmentCategory) TableName() string {
	return "equipment_categories"
}

// Equipment is a non-car-specific product (tools, accessories, care
// products). Unlike Part it has no model or engine association.
type Equipment struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	Manufacturer        string    `gorm:"not null" json:"manufacturer"`
	Price               float64   `gorm:"not null" json:"price"`
	EquipmentCategoryID uint      `gorm:"not null;index" json:"equipment_category_id"`
	Size                string    `json:"size"`
	Material            string    `json:"material"`
	Side                string    `json:"side"`
	Description         string    `gorm:"type:text" json:"description"`
	Quantity            int       `gorm:"default:1" json:"quantity"`
	ImageURL            string    `json:"image_url"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	EquipmentCategory *EquipmentCategory `gorm:"foreignKey:EquipmentCategoryID" json:"equipment_category,omitempty"`
}

func (Equipment) TableName() string {
	return "equipment"
}
