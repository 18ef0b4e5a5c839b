// internal/models/contact.go
package models

import (
	"gorm.io/gorm"
)

// Contact holds a user's phone and web contact details, one record per user.
type Contact struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"uniqueIndex"`
	PhoneNumber     string `json:"phone_number"`
	PhoneIsVerified bool   `json:"phone_is_verified" gorm:"default:false"`
	Website         string `json:"website,omitempty"`
}
