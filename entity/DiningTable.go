package entity

import (
	"gorm.io/gorm"
)

// DiningTable is generated lazily: the first read of a restaurant's
// tables creates Number 1..TableCount, never again after that.
type DiningTable struct {
	gorm.Model
	Number int `gorm:"not null;uniqueIndex:idx_table_restaurant_number" json:"number"`

	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_table_restaurant_number" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Orders []Order `gorm:"foreignKey:TableID" json:"-"`
}
