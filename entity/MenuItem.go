package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"size:500" json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Currency    string          `gorm:"not null;default:USD" json:"currency"`
	IsAvailable bool            `gorm:"not null;default:true" json:"isAvailable"`
	Tags        string          `json:"tags"`
	Allergens   string          `json:"allergens"`

	CategoryID uint         `gorm:"not null" json:"categoryId"`
	Category   MenuCategory `json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:MenuItemID" json:"-"`
}
