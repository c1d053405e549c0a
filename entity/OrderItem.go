package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `gorm:"not null" json:"quantity"`
	// UnitPrice is the menu price snapshot at ordering time; later menu
	// edits must not change historical totals.
	UnitPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"unitPrice"`
	LineTotal decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"lineTotal"`

	OrderID uint  `gorm:"not null" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"menuItem"`
}
