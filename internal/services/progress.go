package services

import (
	"fmt"
	"strings"

	"pola_backend/internal/models"
)

// Step statuses reported by the progress calculator.
const (
	StepComplete         = "complete"
	StepIncomplete       = "incomplete"
	StepPendingReview    = "pending_review"
	StepNotRequired      = "not_required"
	StepReadyForApproval = "ready_for_approval"
)

// Issue codes.
const (
	IssueMissingDocument  = "missing_document"
	IssuePendingDocument  = "pending_document"
	IssueRejectedDocument = "rejected_document"
	IssueMissingField     = "missing_field"
)

// Issue is one outstanding item blocking (or awaiting review on) a step.
type Issue struct {
	Code    string `json:"code"`
	Subject string `json:"subject"` // document type or field name
	Message string `json:"message"`
}

// StepProgress describes one checklist step.
type StepProgress struct {
	Status         string   `json:"status"`
	Issues         []Issue  `json:"issues"`
	RequiredFields []string `json:"required_fields"`
	VerifiedFields []string `json:"verified_fields"`
}

// Progress is the full derived verification state for one user. It is
// recomputed on every read and never persisted.
type Progress struct {
	HasMissingItems    bool                    `json:"has_missing_items"`
	IsReadyForApproval bool                    `json:"is_ready_for_approval"`
	Steps              map[string]StepProgress `json:"by_step"`
	Summary            string                  `json:"summary"`
}

// ComputeProgress derives per-step completeness, outstanding issues and the
// overall readiness flag from the user's profile, documents and verification
// record. Deterministic and side-effect free; inactive documents are ignored.
func ComputeProgress(user *models.User, verification *models.Verification, documents []models.Document) Progress {
	if IsAutoVerified(user.Role) {
		return autoVerifiedProgress(user)
	}

	steps := map[string]StepProgress{
		models.StepDocuments:    documentsProgress(user.Role, documents),
		models.StepIdentity:     identityProgress(user),
		models.StepContact:      contactProgress(user),
		models.StepRoleSpecific: roleSpecificProgress(user),
	}

	allComplete := true
	hasMissing := false
	for _, step := range steps {
		if step.Status != StepComplete {
			allComplete = false
		}
		if len(step.Issues) > 0 {
			hasMissing = true
		}
	}

	status := models.StatusPending
	if verification != nil {
		status = verification.Status
	}

	final := StepProgress{Status: StepIncomplete}
	ready := false
	switch {
	case allComplete && status == models.StatusVerified:
		final.Status = StepComplete
	case allComplete && status == models.StatusPending:
		final.Status = StepReadyForApproval
		ready = true
	}
	steps[models.StepFinal] = final

	return Progress{
		HasMissingItems:    hasMissing,
		IsReadyForApproval: ready,
		Steps:              steps,
		Summary:            buildSummary(user, steps, ready),
	}
}

func autoVerifiedProgress(user *models.User) Progress {
	steps := map[string]StepProgress{
		models.StepDocuments:    {Status: StepNotRequired},
		models.StepIdentity:     {Status: StepNotRequired},
		models.StepContact:      {Status: StepNotRequired},
		models.StepRoleSpecific: {Status: StepNotRequired},
		models.StepFinal:        {Status: StepComplete},
	}
	return Progress{
		HasMissingItems:    false,
		IsReadyForApproval: true,
		Steps:              steps,
		Summary:            fmt.Sprintf("Role %s is verified automatically; no further action needed.", user.Role),
	}
}

// documentsProgress inspects the active documents against the role's
// checklist. Optional entries never produce a hard miss; a hard miss
// (missing or rejected required document) outranks awaiting-review.
func documentsProgress(role string, documents []models.Document) StepProgress {
	step := StepProgress{Status: StepComplete}

	byType := map[string]*models.Document{}
	for i := range documents {
		doc := &documents[i]
		if doc.IsActive {
			byType[doc.DocumentType] = doc
		}
	}

	hardMiss := false
	for _, req := range RequiredDocuments(role) {
		step.RequiredFields = append(step.RequiredFields, req.Type)
		doc, uploaded := byType[req.Type]
		if !uploaded {
			if req.Required {
				step.Issues = append(step.Issues, Issue{
					Code:    IssueMissingDocument,
					Subject: req.Type,
					Message: fmt.Sprintf("%s has not been uploaded", req.Label),
				})
				hardMiss = true
			}
			continue
		}
		switch doc.VerificationStatus {
		case models.StatusVerified:
			step.VerifiedFields = append(step.VerifiedFields, req.Type)
		case models.StatusPending:
			step.Issues = append(step.Issues, Issue{
				Code:    IssuePendingDocument,
				Subject: req.Type,
				Message: fmt.Sprintf("%s is awaiting review", req.Label),
			})
		case models.StatusRejected:
			if req.Required {
				step.Issues = append(step.Issues, Issue{
					Code:    IssueRejectedDocument,
					Subject: req.Type,
					Message: fmt.Sprintf("%s was rejected and must be replaced", req.Label),
				})
				hardMiss = true
			}
		}
	}

	if len(step.Issues) > 0 {
		if hardMiss {
			step.Status = StepIncomplete
		} else {
			step.Status = StepPendingReview
		}
	}
	return step
}

func identityProgress(user *models.User) StepProgress {
	step := StepProgress{Status: StepComplete}
	if user.Role == models.RoleLawFirm {
		// Organizational identity has no individual identity fields.
		return step
	}
	step.RequiredFields = RequiredFields(user.Role, models.StepIdentity)
	for _, field := range step.RequiredFields {
		if identityFieldPresent(user, field) {
			step.VerifiedFields = append(step.VerifiedFields, field)
		} else {
			step.Issues = append(step.Issues, missingField(field))
		}
	}
	if len(step.Issues) > 0 {
		step.Status = StepIncomplete
	}
	return step
}

func contactProgress(user *models.User) StepProgress {
	step := StepProgress{Status: StepComplete, RequiredFields: RequiredFields(user.Role, models.StepContact)}
	for _, field := range step.RequiredFields {
		if contactFieldPresent(user, field) {
			step.VerifiedFields = append(step.VerifiedFields, field)
		} else {
			step.Issues = append(step.Issues, missingField(field))
		}
	}
	if len(step.Issues) > 0 {
		step.Status = StepIncomplete
	}
	return step
}

func roleSpecificProgress(user *models.User) StepProgress {
	step := StepProgress{Status: StepComplete, RequiredFields: RequiredFields(user.Role, models.StepRoleSpecific)}
	for _, field := range step.RequiredFields {
		if roleFieldPresent(user, field) {
			step.VerifiedFields = append(step.VerifiedFields, field)
		} else {
			step.Issues = append(step.Issues, missingField(field))
		}
	}
	// Optional extras are recorded when present and never raise issues.
	if user.YearsOfExperience != nil {
		step.VerifiedFields = append(step.VerifiedFields, "years_of_experience")
	}
	if len(step.Issues) > 0 {
		step.Status = StepIncomplete
	}
	return step
}

func identityFieldPresent(user *models.User, field string) bool {
	switch field {
	case "full_name":
		return user.FirstName != "" && user.LastName != ""
	case "date_of_birth":
		return user.DateOfBirth != nil
	case "gender":
		return user.Gender != ""
	}
	return false
}

func contactFieldPresent(user *models.User, field string) bool {
	switch field {
	case "phone_number":
		return user.Contact != nil && user.Contact.PhoneNumber != ""
	case "email":
		return user.Email != ""
	case "address":
		a := user.Address
		return a != nil && a.Region != "" && a.District != "" && a.Ward != "" && a.OfficeAddress != ""
	}
	return false
}

func roleFieldPresent(user *models.User, field string) bool {
	switch field {
	case "roll_number":
		return user.RollNumber != ""
	case "regional_chapter":
		return user.RegionalChapter != ""
	case "place_of_work":
		return user.PlaceOfWork != ""
	case "firm_name":
		return user.FirmName != ""
	case "managing_partner":
		return user.ManagingPartner != ""
	}
	return false
}

func missingField(field string) Issue {
	return Issue{
		Code:    IssueMissingField,
		Subject: field,
		Message: fmt.Sprintf("%s is required but not provided", field),
	}
}

// buildSummary renders a short human-readable digest. Informational only,
// nothing parses it.
func buildSummary(user *models.User, steps map[string]StepProgress, ready bool) string {
	if ready {
		return fmt.Sprintf("All verification requirements met for %s; awaiting final approval.", user.Role)
	}
	if steps[models.StepFinal].Status == StepComplete {
		return "Verification complete."
	}
	var outstanding []string
	for _, name := range models.VerificationSteps {
		step, ok := steps[name]
		if !ok || len(step.Issues) == 0 {
			continue
		}
		outstanding = append(outstanding, fmt.Sprintf("%s (%d outstanding)", models.StepLabel(name), len(step.Issues)))
	}
	if len(outstanding) == 0 {
		return "Verification in progress."
	}
	return "Outstanding: " + strings.Join(outstanding, "; ")
}
