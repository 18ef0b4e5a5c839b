package services

import (
	"errors"
	"testing"

	"pola_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func adminUser() *models.User {
	return &models.User{
		Model:   gorm.Model{ID: 99},
		Email:   "admin@example.com",
		Role:    models.RoleAdmin,
		IsStaff: true,
	}
}

func pendingAdvocateCase() (*models.Verification, *models.User) {
	user := &models.User{Model: gorm.Model{ID: 7}, Role: models.RoleAdvocate}
	v := &models.Verification{UserID: user.ID, Status: models.StatusPending, CurrentStep: models.StepDocuments}
	return v, user
}

func TestApproveVerification(t *testing.T) {
	v, user := pendingAdvocateCase()
	admin := adminUser()
	documents := advocateDocuments(models.StatusVerified)

	err := ApproveVerification(v, user, documents, admin, "all documents checked")
	require.NoError(t, err)

	assert.Equal(t, models.StatusVerified, v.Status)
	require.NotNil(t, v.VerifiedByID)
	assert.Equal(t, admin.ID, *v.VerifiedByID)
	assert.NotNil(t, v.VerificationDate)
	assert.Equal(t, "all documents checked", v.VerificationNotes)
}

func TestApproveVerificationRequiresAdmin(t *testing.T) {
	v, user := pendingAdvocateCase()
	documents := advocateDocuments(models.StatusVerified)

	err := ApproveVerification(v, user, documents, &models.User{Role: models.RoleAdvocate}, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = ApproveVerification(v, user, documents, nil, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.Equal(t, models.StatusPending, v.Status)
}

func TestApproveVerificationMissingDocuments(t *testing.T) {
	v, user := pendingAdvocateCase()
	admin := adminUser()
	documents := advocateDocuments(models.StatusVerified)
	documents[1].VerificationStatus = models.StatusPending

	err := ApproveVerification(v, user, documents, admin, "")

	var missingErr *MissingDocumentsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{models.DocPracticeLicense}, missingErr.Missing)
	assert.Equal(t, models.StatusPending, v.Status, "failed approval must not change state")
}

func TestApproveVerificationIgnoresInactiveDocuments(t *testing.T) {
	v, user := pendingAdvocateCase()
	admin := adminUser()
	documents := advocateDocuments(models.StatusVerified)
	documents[0].IsActive = false

	err := ApproveVerification(v, user, documents, admin, "")

	var missingErr *MissingDocumentsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{models.DocRollNumberCert}, missingErr.Missing)
}

func TestApproveVerificationAlreadyVerified(t *testing.T) {
	v, user := pendingAdvocateCase()
	v.Status = models.StatusVerified
	notes := v.VerificationNotes

	err := ApproveVerification(v, user, advocateDocuments(models.StatusVerified), adminUser(), "second attempt")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	assert.Equal(t, notes, v.VerificationNotes)
}

func TestApproveVerificationAutoVerifiedRole(t *testing.T) {
	user := &models.User{Model: gorm.Model{ID: 3}, Role: models.RoleCitizen}
	v := &models.Verification{UserID: user.ID, Status: models.StatusVerified}
	v.Status = models.StatusPending // hypothetical broken record

	err := ApproveVerification(v, user, nil, adminUser(), "")
	assert.ErrorIs(t, err, ErrAutoVerifiedRole)
}

func TestRejectVerification(t *testing.T) {
	v, _ := pendingAdvocateCase()
	admin := adminUser()

	err := RejectVerification(v, admin, "documents appear forged")
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, v.Status)
	assert.Equal(t, "documents appear forged", v.RejectionReason)
	require.NotNil(t, v.VerifiedByID)
	assert.Equal(t, admin.ID, *v.VerifiedByID)
	assert.NotNil(t, v.VerificationDate)
}

func TestRejectVerificationReasonRequired(t *testing.T) {
	v, _ := pendingAdvocateCase()

	assert.ErrorIs(t, RejectVerification(v, adminUser(), ""), ErrReasonRequired)
	assert.ErrorIs(t, RejectVerification(v, adminUser(), "   "), ErrReasonRequired)
	assert.Equal(t, models.StatusPending, v.Status)
}

func TestRejectVerificationNoCompletenessCheck(t *testing.T) {
	// Rejection needs no documents at all.
	v, _ := pendingAdvocateCase()
	err := RejectVerification(v, adminUser(), "application withdrawn")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, v.Status)
}

func TestVerifyStepWalksTheChecklist(t *testing.T) {
	v, user := pendingAdvocateCase()
	admin := adminUser()
	documents := advocateDocuments(models.StatusVerified)

	for i, step := range models.VerificationSteps {
		require.NoError(t, VerifyStep(v, user, documents, step, admin, ""))
		if i+1 < len(models.VerificationSteps) {
			assert.Equal(t, models.VerificationSteps[i+1], v.CurrentStep)
			assert.Equal(t, models.StatusPending, v.Status)
		}
	}

	assert.Equal(t, models.StatusVerified, v.Status)
	require.NotNil(t, v.VerifiedByID)
	assert.Equal(t, admin.ID, *v.VerifiedByID)
}

func TestVerifyStepWrongStep(t *testing.T) {
	v, user := pendingAdvocateCase()

	err := VerifyStep(v, user, nil, models.StepContact, adminUser(), "")
	assert.ErrorIs(t, err, ErrWrongStep)
	assert.Equal(t, models.StepDocuments, v.CurrentStep)
}

func TestVerifyStepInvalidStep(t *testing.T) {
	v, user := pendingAdvocateCase()
	err := VerifyStep(v, user, nil, "no_such_step", adminUser(), "")
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestVerifyStepFinalRequiresVerifiedDocuments(t *testing.T) {
	v, user := pendingAdvocateCase()
	v.CurrentStep = models.StepFinal
	documents := advocateDocuments(models.StatusPending)

	err := VerifyStep(v, user, documents, models.StepFinal, adminUser(), "")

	var missingErr *MissingDocumentsError
	require.ErrorAs(t, err, &missingErr)
	assert.Len(t, missingErr.Missing, 3)
	assert.Equal(t, models.StatusPending, v.Status)
	assert.Equal(t, models.StepFinal, v.CurrentStep)
}

func TestVerifyStepAppendsNotes(t *testing.T) {
	v, user := pendingAdvocateCase()
	require.NoError(t, VerifyStep(v, user, nil, models.StepDocuments, adminUser(), "all three originals sighted"))
	assert.Equal(t, "documents: all three originals sighted", v.VerificationNotes)

	require.NoError(t, VerifyStep(v, user, nil, models.StepIdentity, adminUser(), "passport matched"))
	assert.Contains(t, v.VerificationNotes, "documents: all three originals sighted")
	assert.Contains(t, v.VerificationNotes, "identity: passport matched")
}

func TestRejectStep(t *testing.T) {
	v, _ := pendingAdvocateCase()

	err := RejectStep(v, models.StepIdentity, adminUser(), "name mismatch with ID")
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, v.Status)
	assert.Equal(t, "Identity Verification: name mismatch with ID", v.RejectionReason)
}

func TestRejectStepValidation(t *testing.T) {
	v, _ := pendingAdvocateCase()
	assert.ErrorIs(t, RejectStep(v, "bogus", adminUser(), "reason"), ErrInvalidStep)
	assert.ErrorIs(t, RejectStep(v, models.StepIdentity, adminUser(), ""), ErrReasonRequired)
}

func TestRequestAdditionalDocuments(t *testing.T) {
	v, _ := pendingAdvocateCase()
	v.VerificationNotes = "initial review done"

	err := RequestAdditionalDocuments(v, adminUser(),
		[]string{models.DocPracticeLicense, models.DocWorkCertificate}, "License copy is illegible")
	require.NoError(t, err)

	assert.Contains(t, v.VerificationNotes, "initial review done")
	assert.Contains(t, v.VerificationNotes, "Requested documents: practice_license, work_certificate")
	assert.Contains(t, v.VerificationNotes, "Message: License copy is illegible")
	assert.Equal(t, models.StatusPending, v.Status, "request is informational only")
}

func TestRequestAdditionalDocumentsValidation(t *testing.T) {
	v, _ := pendingAdvocateCase()
	assert.ErrorIs(t, RequestAdditionalDocuments(v, adminUser(), nil, "msg"), ErrNoDocumentTypes)
	assert.ErrorIs(t, RequestAdditionalDocuments(v, &models.User{}, []string{"other"}, "msg"), ErrPermissionDenied)

	// Default message when none given.
	require.NoError(t, RequestAdditionalDocuments(v, adminUser(), []string{models.DocOther}, ""))
	assert.Contains(t, v.VerificationNotes, "Additional documents required")
}

func TestMissingVerifiedDocuments(t *testing.T) {
	documents := advocateDocuments(models.StatusVerified)
	assert.Empty(t, MissingVerifiedDocuments(models.RoleAdvocate, documents))

	documents[2].VerificationStatus = models.StatusRejected
	assert.Equal(t, []string{models.DocWorkCertificate},
		MissingVerifiedDocuments(models.RoleAdvocate, documents))

	// Optional documents never appear in the missing list.
	lawyerDocs := []models.Document{
		{DocumentType: models.DocProfessionalCert, VerificationStatus: models.StatusVerified, IsActive: true},
		{DocumentType: models.DocEmploymentLetter, VerificationStatus: models.StatusVerified, IsActive: true},
	}
	assert.Empty(t, MissingVerifiedDocuments(models.RoleLawyer, lawyerDocs))

	assert.Empty(t, MissingVerifiedDocuments(models.RoleCitizen, nil))
}

func TestReviewDocument(t *testing.T) {
	admin := adminUser()
	doc := &models.Document{DocumentType: models.DocPracticeLicense, VerificationStatus: models.StatusPending, IsActive: true}

	err := ReviewDocument(doc, admin, models.StatusVerified, "license valid until 2027")
	require.NoError(t, err)

	assert.Equal(t, models.StatusVerified, doc.VerificationStatus)
	require.NotNil(t, doc.VerifiedByID)
	assert.Equal(t, admin.ID, *doc.VerifiedByID)
	assert.NotNil(t, doc.VerificationDate)
	assert.Equal(t, "license valid until 2027", doc.VerificationNotes)
}

func TestReviewDocumentValidation(t *testing.T) {
	doc := &models.Document{VerificationStatus: models.StatusPending}

	assert.ErrorIs(t, ReviewDocument(doc, &models.User{}, models.StatusVerified, ""), ErrPermissionDenied)
	assert.ErrorIs(t, ReviewDocument(doc, adminUser(), models.StatusPending, ""), ErrInvalidStatus)
	assert.ErrorIs(t, ReviewDocument(doc, adminUser(), "approved", ""), ErrInvalidStatus)

	// Rejection without an explanation is not allowed.
	assert.ErrorIs(t, ReviewDocument(doc, adminUser(), models.StatusRejected, ""), ErrReasonRequired)
	assert.Equal(t, models.StatusPending, doc.VerificationStatus)

	require.NoError(t, ReviewDocument(doc, adminUser(), models.StatusRejected, "document expired"))
	assert.Equal(t, models.StatusRejected, doc.VerificationStatus)
}

func TestEnsureNoActiveDuplicate(t *testing.T) {
	documents := []models.Document{
		{DocumentType: models.DocRollNumberCert, VerificationStatus: models.StatusRejected, IsActive: true},
		{DocumentType: models.DocPracticeLicense, VerificationStatus: models.StatusVerified, IsActive: false},
	}

	// An active document blocks re-upload even when it was rejected.
	err := EnsureNoActiveDuplicate(documents, models.DocRollNumberCert)
	var dupErr *DuplicateDocumentError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, models.DocRollNumberCert, dupErr.DocumentType)

	// A deactivated document does not block.
	assert.NoError(t, EnsureNoActiveDuplicate(documents, models.DocPracticeLicense))
	assert.NoError(t, EnsureNoActiveDuplicate(documents, models.DocWorkCertificate))
}

func TestDocumentChecklist(t *testing.T) {
	id := uint(42)
	documents := []models.Document{
		{Model: gorm.Model{ID: id}, DocumentType: models.DocRollNumberCert, VerificationStatus: models.StatusPending, IsActive: true},
	}

	checklist := DocumentChecklist(models.RoleAdvocate, documents)
	require.Len(t, checklist, 3)

	byType := map[string]DocumentChecklistEntry{}
	for _, entry := range checklist {
		byType[entry.Type] = entry
	}

	uploaded := byType[models.DocRollNumberCert]
	assert.True(t, uploaded.Uploaded)
	assert.Equal(t, models.StatusPending, uploaded.Status)
	require.NotNil(t, uploaded.DocumentID)
	assert.Equal(t, id, *uploaded.DocumentID)

	missing := byType[models.DocPracticeLicense]
	assert.False(t, missing.Uploaded)
	assert.Empty(t, missing.Status)
	assert.Nil(t, missing.DocumentID)
}

func TestAllowedDocumentExtension(t *testing.T) {
	for _, ext := range []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"} {
		assert.True(t, AllowedDocumentExtension(ext), ext)
	}
	assert.False(t, AllowedDocumentExtension(".exe"))
	assert.False(t, AllowedDocumentExtension(".PDF"), "callers must lowercase first")
	assert.False(t, AllowedDocumentExtension(""))
}

func TestValidDocumentType(t *testing.T) {
	assert.True(t, ValidDocumentType(models.DocOther))
	assert.True(t, ValidDocumentType(models.DocBusinessLicense))
	assert.False(t, ValidDocumentType("passport_scan"))
}

func TestErrorSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrPermissionDenied, ErrAlreadyVerified, ErrAutoVerifiedRole,
		ErrAlreadyDecided, ErrWrongStep, ErrInvalidStep,
		ErrInvalidStatus, ErrReasonRequired, ErrNoDocumentTypes,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b))
			}
		}
	}
}
