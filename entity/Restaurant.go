package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	TableCount  int    `gorm:"not null;default:0" json:"tableCount"`

	// Opaque key used by the widget and the voice agent to identify the
	// tenant without exposing internal ids.
	IntegrationKey string `gorm:"uniqueIndex;not null" json:"integrationKey"`

	UserID uint `json:"userId"` // owner (users.id)
	User   User `json:"-"`

	Tables     []DiningTable  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Categories []MenuCategory `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Orders     []Order        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
