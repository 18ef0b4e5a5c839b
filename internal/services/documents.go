package services

import (
	"time"

	"pola_backend/internal/models"
)

// Allowed upload constraints for evidentiary files.
const (
	MaxDocumentSize = 10 << 20 // 10MB
)

var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".doc":  true,
	".docx": true,
}

// AllowedDocumentExtension reports whether the file extension (with leading
// dot, lowercased) is accepted for document uploads.
func AllowedDocumentExtension(ext string) bool {
	return allowedDocumentExtensions[ext]
}

// ValidDocumentType reports whether the type code is one of the known
// document categories.
func ValidDocumentType(docType string) bool {
	switch docType {
	case models.DocRollNumberCert, models.DocPracticeLicense, models.DocWorkCertificate,
		models.DocProfessionalCert, models.DocEmploymentLetter, models.DocOrganizationCert,
		models.DocBusinessLicense, models.DocRegistrationCert, models.DocFirmDocuments,
		models.DocIDDocument, models.DocAcademic, models.DocOther:
		return true
	}
	return false
}

// EnsureNoActiveDuplicate enforces the at-most-one-active-document-per-type
// invariant at upload time. An existing active document blocks a new upload of
// the same type regardless of its review status; the old one has to be
// deleted first.
func EnsureNoActiveDuplicate(documents []models.Document, docType string) error {
	for _, doc := range documents {
		if doc.IsActive && doc.DocumentType == docType {
			return &DuplicateDocumentError{DocumentType: docType}
		}
	}
	return nil
}

// DocumentChecklistEntry pairs a role requirement with the upload state of
// the matching active document, for status views.
type DocumentChecklistEntry struct {
	DocumentRequirement
	Uploaded   bool   `json:"uploaded"`
	Status     string `json:"status,omitempty"`
	DocumentID *uint  `json:"document_id,omitempty"`
}

// DocumentChecklist merges the role's requirement table with the user's
// active documents.
func DocumentChecklist(role string, documents []models.Document) []DocumentChecklistEntry {
	byType := map[string]*models.Document{}
	for i := range documents {
		if documents[i].IsActive {
			byType[documents[i].DocumentType] = &documents[i]
		}
	}
	var checklist []DocumentChecklistEntry
	for _, req := range RequiredDocuments(role) {
		entry := DocumentChecklistEntry{DocumentRequirement: req}
		if doc, ok := byType[req.Type]; ok {
			entry.Uploaded = true
			entry.Status = doc.VerificationStatus
			id := doc.ID
			entry.DocumentID = &id
		}
		checklist = append(checklist, entry)
	}
	return checklist
}

// ReviewDocument records an admin's verdict on a single document. It does not
// cascade into the owner's Verification record; the overall case is approved
// separately.
func ReviewDocument(doc *models.Document, admin *models.User, status, notes string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if status != models.StatusVerified && status != models.StatusRejected {
		return ErrInvalidStatus
	}
	if status == models.StatusRejected && notes == "" {
		return ErrReasonRequired
	}

	now := time.Now()
	doc.VerificationStatus = status
	doc.VerifiedByID = &admin.ID
	doc.VerificationDate = &now
	doc.VerificationNotes = notes
	return nil
}
