package model

import (
	"time"
)

type ItemType string // discriminates cart/order line items

const (
	ItemTypePart      ItemType = "part"
	ItemTypeEquipment ItemType = "equipment"
)

// Valid reports whether t is a recognized item type
func (t ItemType) Valid() bool {
	return t == ItemTypePart || t == ItemTypeEquipment
}

// Cart is a user's open pre-checkout selection. At most one per user;
// destroyed on checkout or explicit clear.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem references either a part or an equipment record, tagged by
// ItemType. Name and Price are snapshots taken at add-time so the cart
// is insulated from later catalog edits.
type CartItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CartID      uint      `gorm:"not null;index" json:"cart_id"`
	ItemType    ItemType  `gorm:"type:varchar(20);not null" json:"item_type"`
	PartID      *uint     `gorm:"index" json:"part_id,omitempty"`
	EquipmentID *uint     `gorm:"index" json:"equipment_id,omitempty"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Cart *Cart `gorm:"foreignKey:CartID" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// ReferenceID returns the catalog id the item points at
func (ci *CartItem) ReferenceID() uint {
	if ci.ItemType == ItemTypeEquipment && ci.EquipmentID != nil {
		return *ci.EquipmentID
	}
	if ci.PartID != nil {
		return *ci.PartID
	}
	return 0
}
