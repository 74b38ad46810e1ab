package model

import (
	"time"
)

type OrderStatus string
type PaymentMethod string
type ShippingMethod string

const (
	OrderStatusProcessing OrderStatus = "processing" // initial state
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentMethodCash           PaymentMethod = "cash"
	PaymentMethodCardOnDelivery PaymentMethod = "card_on_delivery"
	PaymentMethodCardOnline     PaymentMethod = "card_online"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"

	ShippingMethodCourier ShippingMethod = "courier"
	ShippingMethodPickup  ShippingMethod = "pickup"
)

// Valid reports whether s is a recognized order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Valid reports whether m is a recognized payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCardOnDelivery, PaymentMethodCardOnline, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Valid reports whether m is a recognized shipping method
func (m ShippingMethod) Valid() bool {
	return m == ShippingMethodCourier || m == ShippingMethodPickup
}

// Order is the immutable priced snapshot of a completed checkout.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	OrderDate       time.Time      `gorm:"not null" json:"order_date"`
	Status          OrderStatus    `gorm:"type:varchar(20);default:'processing'" json:"status"`
	ShippingAddress string         `gorm:"not null" json:"shipping_address"`
	BillingAddress  string         `gorm:"not null" json:"billing_address"`
	Comment         string         `gorm:"size:200" json:"comment"`
	PaymentMethod   PaymentMethod  `gorm:"type:varchar(20);not null" json:"payment_method"`
	ShippingMethod  ShippingMethod `gorm:"type:varchar(20);not null" json:"shipping_method"`
	ExtraFee        int            `gorm:"default:0" json:"extra_fee"` // per-item surcharge applied at checkout
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a frozen copy of a cart item at checkout. Price already
// includes any payment-method surcharge. PartID/EquipmentID keep the
// original catalog reference for display only; no cascade ties the row
// to live catalog records.
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ItemType    ItemType  `gorm:"type:varchar(20);not null" json:"item_type"`
	PartID      *uint     `json:"part_id,omitempty"`
	EquipmentID *uint     `json:"equipment_id,omitempty"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
