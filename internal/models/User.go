package models

import (
	"time"

	"gorm.io/gorm"
)

// Supported user roles. Citizens, law students and lecturers skip the
// document-based verification process entirely.
const (
	RoleCitizen    = "citizen"
	RoleLawStudent = "law_student"
	RoleLecturer   = "lecturer"
	RoleParalegal  = "paralegal"
	RoleLawyer     = "lawyer"
	RoleAdvocate   = "advocate"
	RoleLawFirm    = "law_firm"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`

	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        string     `json:"gender"` // "M" or "F"
	AgreedToTerms bool       `json:"agreed_to_terms"`

	// Admin capability. Staff can review documents and verifications;
	// superusers can additionally manage other staff accounts.
	IsStaff     bool `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool `json:"is_superuser" gorm:"default:false"`
	IsActive    bool `json:"is_active" gorm:"default:true"`

	// Advocate fields
	RollNumber      string `json:"roll_number,omitempty"`
	RegionalChapter string `json:"regional_chapter,omitempty"`

	// Lawyer/Paralegal fields
	PlaceOfWork       string `json:"place_of_work,omitempty"`
	YearsOfExperience *uint  `json:"years_of_experience,omitempty"`

	// Law firm fields
	FirmName        string `json:"firm_name,omitempty"`
	ManagingPartner string `json:"managing_partner,omitempty"`

	// Academic fields
	UniversityName string `json:"university_name,omitempty"`
	YearOfStudy    *uint  `json:"year_of_study,omitempty"`

	// Citizen fields
	IDNumber string `json:"id_number,omitempty"`

	Contact      *Contact      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"contact,omitempty"`
	Address      *Address      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"address,omitempty"`
	Verification *Verification `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"verification,omitempty"`
	Documents    []Document    `gorm:"foreignKey:UserID" json:"documents,omitempty"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
