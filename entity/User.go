package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:owner" json:"role"`

	// Accounts stay unverified until the emailed token is confirmed;
	// the hourly sweep removes stale ones.
	IsVerified        bool   `gorm:"not null;default:false" json:"isVerified"`
	VerificationToken string `gorm:"index" json:"-"`

	Restaurants []Restaurant `gorm:"foreignKey:UserID" json:"-"`
}
