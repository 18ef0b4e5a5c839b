package models

import (
	"time"

	"gorm.io/gorm"
)

// Review status of a single document. Shared with Verification.Status since
// both go through the same pending/verified/rejected cycle.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Document type codes. Which ones are required depends on the owner's role.
const (
	// Advocate documents
	DocRollNumberCert  = "roll_number_cert"
	DocPracticeLicense = "practice_license"
	DocWorkCertificate = "work_certificate"

	// Lawyer/Paralegal documents
	DocProfessionalCert = "professional_cert"
	DocEmploymentLetter = "employment_letter"
	DocOrganizationCert = "organization_cert"

	// Law firm documents
	DocBusinessLicense  = "business_license"
	DocRegistrationCert = "registration_cert"
	DocFirmDocuments    = "firm_documents"

	// General
	DocIDDocument = "id_document"
	DocAcademic   = "academic"
	DocOther      = "other"
)

// Document is one independently reviewable piece of uploaded evidence.
// At most one active document per (user, type) may exist; a rejected document
// stays active and blocks re-upload until the owner or an admin deletes it.
type Document struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index"`
	User         User   `gorm:"foreignKey:UserID" json:"-"`
	DocumentType string `json:"document_type" gorm:"index"`
	FilePath     string `json:"file_path"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`

	VerificationStatus string     `json:"verification_status" gorm:"default:pending"`
	VerifiedByID       *uint      `json:"verified_by,omitempty"`
	VerificationDate   *time.Time `json:"verification_date,omitempty"`
	VerificationNotes  string     `json:"verification_notes,omitempty"`

	IsActive bool `json:"is_active" gorm:"default:true"`
}

// IsVerified reports whether an admin has approved this document.
func (d *Document) IsVerified() bool {
	return d.VerificationStatus == StatusVerified
}
