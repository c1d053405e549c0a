package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. COMPLETED and CANCELLED are terminal.
const (
	OrderPending   = "PENDING"
	OrderPreparing = "PREPARING"
	OrderReady     = "READY"
	OrderServed    = "SERVED"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

type Order struct {
	gorm.Model
	// Invariant: Total always equals the sum of Items' line totals.
	Total    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total"`
	Currency string          `gorm:"not null" json:"currency"`
	Status   string          `gorm:"not null;default:PENDING" json:"status"`

	TableID uint        `gorm:"not null" json:"tableId"`
	Table   DiningTable `json:"table"`

	// Denormalized from Table for ownership-scoped queries.
	RestaurantID uint       `gorm:"not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}
