package entity

import (
	"gorm.io/gorm"
)

type MenuCategory struct {
	gorm.Model
	Name string `gorm:"not null;uniqueIndex:idx_category_restaurant_name" json:"name"`

	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_category_restaurant_name" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items"`
}
