package models

import (
	"time"

	"gorm.io/gorm"
)

// Verification checklist steps, in order. current_step is informational
// progress reporting; it does not by itself gate final approval.
const (
	StepDocuments    = "documents"
	StepIdentity     = "identity"
	StepContact      = "contact"
	StepRoleSpecific = "role_specific"
	StepFinal        = "final"
)

// VerificationSteps lists the steps in workflow order.
var VerificationSteps = []string{
	StepDocuments,
	StepIdentity,
	StepContact,
	StepRoleSpecific,
	StepFinal,
}

// StepLabel returns the human-readable label for a step code.
func StepLabel(step string) string {
	switch step {
	case StepDocuments:
		return "Document Verification"
	case StepIdentity:
		return "Identity Verification"
	case StepContact:
		return "Contact Information"
	case StepRoleSpecific:
		return "Role-Specific Requirements"
	case StepFinal:
		return "Final Approval"
	}
	return step
}

// Verification is the per-user overall case record. Created together with the
// user; auto-verified roles start already verified. Status moves from pending
// to a terminal verified or rejected and never back.
type Verification struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Status      string `json:"status" gorm:"default:pending"`
	CurrentStep string `json:"current_step" gorm:"default:documents"`

	VerifiedByID      *uint      `json:"verified_by,omitempty"`
	VerificationDate  *time.Time `json:"verification_date,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	VerificationNotes string     `json:"verification_notes,omitempty"`
}

// IsVerified reports whether the case reached the verified terminal state.
func (v *Verification) IsVerified() bool {
	return v.Status == StatusVerified
}

// ProgressPercent maps current_step onto a coarse completion percentage.
func (v *Verification) ProgressPercent() float64 {
	for i, step := range VerificationSteps {
		if step == v.CurrentStep {
			return float64(i+1) / float64(len(VerificationSteps)) * 100
		}
	}
	return 0
}
