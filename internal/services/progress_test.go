package services

import (
	"testing"
	"time"

	"pola_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// completeAdvocate returns an advocate whose profile satisfies every
// field-based step. Documents are supplied per test.
func completeAdvocate() *models.User {
	dob := time.Date(1988, 4, 12, 0, 0, 0, 0, time.UTC)
	return &models.User{
		Email:           "advocate@example.com",
		FirstName:       "Amina",
		LastName:        "Mushi",
		Role:            models.RoleAdvocate,
		DateOfBirth:     &dob,
		Gender:          "F",
		RollNumber:      "ADV-2201",
		RegionalChapter: "Dar es Salaam",
		Contact:         &models.Contact{PhoneNumber: "+255700000001"},
		Address: &models.Address{
			Region:        "Dar es Salaam",
			District:      "Kinondoni",
			Ward:          "Msasani",
			OfficeAddress: "Plot 14, Haile Selassie Rd",
		},
	}
}

func advocateDocuments(status string) []models.Document {
	types := []string{models.DocRollNumberCert, models.DocPracticeLicense, models.DocWorkCertificate}
	docs := make([]models.Document, 0, len(types))
	for i, docType := range types {
		docs = append(docs, models.Document{
			Model:              gorm.Model{ID: uint(i + 1)},
			DocumentType:       docType,
			VerificationStatus: status,
			IsActive:           true,
		})
	}
	return docs
}

func pendingVerification() *models.Verification {
	return &models.Verification{Status: models.StatusPending, CurrentStep: models.StepDocuments}
}

func TestComputeProgressAutoVerified(t *testing.T) {
	user := &models.User{Role: models.RoleCitizen, Email: "citizen@example.com"}
	verification := &models.Verification{Status: models.StatusVerified}

	progress := ComputeProgress(user, verification, nil)

	assert.False(t, progress.HasMissingItems)
	assert.True(t, progress.IsReadyForApproval)
	assert.Equal(t, StepNotRequired, progress.Steps[models.StepDocuments].Status)
	assert.Equal(t, StepNotRequired, progress.Steps[models.StepIdentity].Status)
	assert.Equal(t, StepNotRequired, progress.Steps[models.StepContact].Status)
	assert.Equal(t, StepNotRequired, progress.Steps[models.StepRoleSpecific].Status)
	assert.Equal(t, StepComplete, progress.Steps[models.StepFinal].Status)
	assert.Contains(t, progress.Summary, "automatically")
}

func TestComputeProgressMissingDocuments(t *testing.T) {
	user := completeAdvocate()

	progress := ComputeProgress(user, pendingVerification(), nil)

	assert.True(t, progress.HasMissingItems)
	assert.False(t, progress.IsReadyForApproval)

	docs := progress.Steps[models.StepDocuments]
	assert.Equal(t, StepIncomplete, docs.Status)
	require.Len(t, docs.Issues, 3)
	for _, issue := range docs.Issues {
		assert.Equal(t, IssueMissingDocument, issue.Code)
	}

	// Field-based steps are satisfied, only the documents block.
	assert.Equal(t, StepComplete, progress.Steps[models.StepIdentity].Status)
	assert.Equal(t, StepComplete, progress.Steps[models.StepContact].Status)
	assert.Equal(t, StepComplete, progress.Steps[models.StepRoleSpecific].Status)
	assert.Equal(t, StepIncomplete, progress.Steps[models.StepFinal].Status)
}

func TestComputeProgressPendingDocuments(t *testing.T) {
	user := completeAdvocate()
	documents := advocateDocuments(models.StatusPending)

	progress := ComputeProgress(user, pendingVerification(), documents)

	docs := progress.Steps[models.StepDocuments]
	assert.Equal(t, StepPendingReview, docs.Status)
	require.Len(t, docs.Issues, 3)
	for _, issue := range docs.Issues {
		assert.Equal(t, IssuePendingDocument, issue.Code)
	}
	assert.True(t, progress.HasMissingItems)
	assert.False(t, progress.IsReadyForApproval)
}

func TestComputeProgressRejectedDocumentOutranksPending(t *testing.T) {
	user := completeAdvocate()
	documents := advocateDocuments(models.StatusPending)
	documents[0].VerificationStatus = models.StatusRejected

	progress := ComputeProgress(user, pendingVerification(), documents)

	// One rejected required document makes the whole step incomplete even
	// while others are merely awaiting review.
	docs := progress.Steps[models.StepDocuments]
	assert.Equal(t, StepIncomplete, docs.Status)

	var codes []string
	for _, issue := range docs.Issues {
		codes = append(codes, issue.Code)
	}
	assert.Contains(t, codes, IssueRejectedDocument)
	assert.Contains(t, codes, IssuePendingDocument)
}

func TestComputeProgressInactiveDocumentsIgnored(t *testing.T) {
	user := completeAdvocate()
	documents := advocateDocuments(models.StatusVerified)
	for i := range documents {
		documents[i].IsActive = false
	}

	progress := ComputeProgress(user, pendingVerification(), documents)

	docs := progress.Steps[models.StepDocuments]
	assert.Equal(t, StepIncomplete, docs.Status)
	assert.Len(t, docs.Issues, 3)
}

func TestComputeProgressReadyForApproval(t *testing.T) {
	user := completeAdvocate()
	documents := advocateDocuments(models.StatusVerified)

	progress := ComputeProgress(user, pendingVerification(), documents)

	assert.False(t, progress.HasMissingItems)
	assert.True(t, progress.IsReadyForApproval)
	assert.Equal(t, StepReadyForApproval, progress.Steps[models.StepFinal].Status)
	assert.Contains(t, progress.Summary, "awaiting final approval")
}

func TestComputeProgressVerifiedCase(t *testing.T) {
	user := completeAdvocate()
	documents := advocateDocuments(models.StatusVerified)
	verification := &models.Verification{Status: models.StatusVerified, CurrentStep: models.StepFinal}

	progress := ComputeProgress(user, verification, documents)

	assert.False(t, progress.IsReadyForApproval)
	assert.Equal(t, StepComplete, progress.Steps[models.StepFinal].Status)
	assert.Equal(t, "Verification complete.", progress.Summary)
}

func TestComputeProgressOptionalDocumentNeverBlocks(t *testing.T) {
	dob := time.Date(1992, 1, 5, 0, 0, 0, 0, time.UTC)
	user := &models.User{
		Email:       "lawyer@example.com",
		FirstName:   "John",
		LastName:    "Kileo",
		Role:        models.RoleLawyer,
		DateOfBirth: &dob,
		Gender:      "M",
		PlaceOfWork: "Kileo & Partners",
		Contact:     &models.Contact{PhoneNumber: "+255700000002"},
		Address: &models.Address{
			Region:        "Arusha",
			District:      "Arusha City",
			Ward:          "Kaloleni",
			OfficeAddress: "Sokoine Rd",
		},
	}
	documents := []models.Document{
		{DocumentType: models.DocProfessionalCert, VerificationStatus: models.StatusVerified, IsActive: true},
		{DocumentType: models.DocEmploymentLetter, VerificationStatus: models.StatusVerified, IsActive: true},
		// organization_cert is optional and absent.
	}

	progress := ComputeProgress(user, pendingVerification(), documents)

	assert.Equal(t, StepComplete, progress.Steps[models.StepDocuments].Status)
	assert.True(t, progress.IsReadyForApproval)

	// A pending optional document keeps the step under review without a
	// hard miss.
	documents = append(documents, models.Document{
		DocumentType: models.DocOrganizationCert, VerificationStatus: models.StatusPending, IsActive: true,
	})
	progress = ComputeProgress(user, pendingVerification(), documents)
	assert.Equal(t, StepPendingReview, progress.Steps[models.StepDocuments].Status)
	assert.False(t, progress.IsReadyForApproval)

	// A rejected optional document raises no issue at all.
	documents[2].VerificationStatus = models.StatusRejected
	progress = ComputeProgress(user, pendingVerification(), documents)
	assert.Equal(t, StepComplete, progress.Steps[models.StepDocuments].Status)
	assert.True(t, progress.IsReadyForApproval)
}

func TestComputeProgressLawFirmSkipsIdentity(t *testing.T) {
	user := &models.User{
		Email:           "firm@example.com",
		Role:            models.RoleLawFirm,
		FirmName:        "Mwanza Legal Chambers",
		ManagingPartner: "Grace Mollel",
		Contact:         &models.Contact{PhoneNumber: "+255700000003"},
		Address: &models.Address{
			Region:        "Mwanza",
			District:      "Ilemela",
			Ward:          "Pasiansi",
			OfficeAddress: "Kenyatta Rd",
		},
	}
	documents := []models.Document{
		{DocumentType: models.DocBusinessLicense, VerificationStatus: models.StatusVerified, IsActive: true},
		{DocumentType: models.DocRegistrationCert, VerificationStatus: models.StatusVerified, IsActive: true},
	}

	progress := ComputeProgress(user, pendingVerification(), documents)

	// No date of birth or gender on the record, yet identity passes.
	identity := progress.Steps[models.StepIdentity]
	assert.Equal(t, StepComplete, identity.Status)
	assert.Empty(t, identity.Issues)
	assert.True(t, progress.IsReadyForApproval)
}

func TestComputeProgressMissingFields(t *testing.T) {
	user := completeAdvocate()
	user.RollNumber = ""
	user.Address = nil
	documents := advocateDocuments(models.StatusVerified)

	progress := ComputeProgress(user, pendingVerification(), documents)

	roleStep := progress.Steps[models.StepRoleSpecific]
	assert.Equal(t, StepIncomplete, roleStep.Status)
	require.Len(t, roleStep.Issues, 1)
	assert.Equal(t, IssueMissingField, roleStep.Issues[0].Code)
	assert.Equal(t, "roll_number", roleStep.Issues[0].Subject)

	contactStep := progress.Steps[models.StepContact]
	assert.Equal(t, StepIncomplete, contactStep.Status)
	require.Len(t, contactStep.Issues, 1)
	assert.Equal(t, "address", contactStep.Issues[0].Subject)

	assert.True(t, progress.HasMissingItems)
	assert.False(t, progress.IsReadyForApproval)
	assert.Contains(t, progress.Summary, "Outstanding:")
}
