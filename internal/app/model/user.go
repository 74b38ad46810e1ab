package model

import (
	"time"
)

type User struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	FirstName       string    `gorm:"size:50;not null" json:"first_name"`
	LastName        string    `gorm:"size:50;not null" json:"last_name"`
	Email           string    `gorm:"size:100;uniqueIndex;not null" json:"email"` // stored lowercase
	PasswordHash    string    `gorm:"not null" json:"-"`
	Address         string    `gorm:"size:255" json:"address"` // billing address
	ShippingAddress string    `gorm:"size:255" json:"shipping_address"`
	PhoneNumber     string    `gorm:"size:20" json:"phone_number"`
	IsAdmin         bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Cart   *Cart   `gorm:"foreignKey:UserID" json:"cart,omitempty"`
	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (User) TableName() string {
	return "users"
}
