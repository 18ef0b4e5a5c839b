package services

import (
	"fmt"
	"strings"
	"time"

	"pola_backend/internal/models"
)

// The approval engine mutates loaded records in memory and reports typed
// errors; persisting the result (with the conditional status guard) is the
// caller's job. Nothing here is retried automatically.

// ApproveVerification performs the terminal pending -> verified transition.
// Every required document type for the user's role must already have an
// active verified document.
func ApproveVerification(v *models.Verification, user *models.User, documents []models.Document, admin *models.User, notes string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if IsAutoVerified(user.Role) {
		return ErrAutoVerifiedRole
	}
	if v.Status == models.StatusVerified {
		return ErrAlreadyVerified
	}
	if missing := MissingVerifiedDocuments(user.Role, documents); len(missing) > 0 {
		return &MissingDocumentsError{Missing: missing}
	}

	now := time.Now()
	v.Status = models.StatusVerified
	v.VerifiedByID = &admin.ID
	v.VerificationDate = &now
	v.VerificationNotes = notes
	return nil
}

// RejectVerification performs the terminal transition to rejected. No
// document-completeness check: an admin may reject for any stated reason.
func RejectVerification(v *models.Verification, admin *models.User, reason string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	now := time.Now()
	v.Status = models.StatusRejected
	v.VerifiedByID = &admin.ID
	v.VerificationDate = &now
	v.RejectionReason = reason
	return nil
}

// VerifyStep marks the named step as confirmed. Only the current step can be
// verified; the record then advances to the next step, and confirming the
// final step performs the same required-document gate as ApproveVerification
// before flipping the overall status.
func VerifyStep(v *models.Verification, user *models.User, documents []models.Document, step string, admin *models.User, notes string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	idx := stepIndex(step)
	if idx < 0 {
		return ErrInvalidStep
	}
	if v.Status == models.StatusVerified {
		return ErrAlreadyVerified
	}
	if step != v.CurrentStep {
		return ErrWrongStep
	}

	if idx+1 < len(models.VerificationSteps) {
		v.CurrentStep = models.VerificationSteps[idx+1]
	} else {
		if missing := MissingVerifiedDocuments(user.Role, documents); len(missing) > 0 {
			return &MissingDocumentsError{Missing: missing}
		}
		now := time.Now()
		v.Status = models.StatusVerified
		v.VerifiedByID = &admin.ID
		v.VerificationDate = &now
	}
	if notes != "" {
		appendNote(v, fmt.Sprintf("%s: %s", step, notes))
	}
	return nil
}

// RejectStep rejects the whole case with a reason tagged by the step label.
func RejectStep(v *models.Verification, step string, admin *models.User, reason string) error {
	if stepIndex(step) < 0 {
		return ErrInvalidStep
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return RejectVerification(v, admin, fmt.Sprintf("%s: %s", models.StepLabel(step), reason))
}

// RequestAdditionalDocuments records which documents the admin asked for and
// why. Purely informational; no state transition.
func RequestAdditionalDocuments(v *models.Verification, admin *models.User, documentTypes []string, message string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if len(documentTypes) == 0 {
		return ErrNoDocumentTypes
	}
	if message == "" {
		message = "Additional documents required"
	}
	appendNote(v, fmt.Sprintf("Requested documents: %s\nMessage: %s", strings.Join(documentTypes, ", "), message))
	return nil
}

// MissingVerifiedDocuments returns the required document types for the role
// that lack an active verified document. Empty means approval may proceed.
func MissingVerifiedDocuments(role string, documents []models.Document) []string {
	verified := map[string]bool{}
	for _, doc := range documents {
		if doc.IsActive && doc.VerificationStatus == models.StatusVerified {
			verified[doc.DocumentType] = true
		}
	}
	var missing []string
	for _, docType := range RequiredDocumentTypes(role) {
		if !verified[docType] {
			missing = append(missing, docType)
		}
	}
	return missing
}

func requireAdmin(admin *models.User) error {
	if admin == nil || !admin.IsStaff {
		return ErrPermissionDenied
	}
	return nil
}

func stepIndex(step string) int {
	for i, s := range models.VerificationSteps {
		if s == step {
			return i
		}
	}
	return -1
}

func appendNote(v *models.Verification, note string) {
	if v.VerificationNotes == "" {
		v.VerificationNotes = note
		return
	}
	v.VerificationNotes = v.VerificationNotes + "\n\n" + note
}
