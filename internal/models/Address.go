// internal/models/address.go
package models

import (
	"gorm.io/gorm"
)

// Address is the structured office/home address checked during the contact
// verification step. Region and district are plain names; the lookup tables
// live in a separate subsystem.
type Address struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"uniqueIndex"`
	Region        string `json:"region"`
	District      string `json:"district"`
	Ward          string `json:"ward"`
	OfficeAddress string `json:"office_address"`
}
