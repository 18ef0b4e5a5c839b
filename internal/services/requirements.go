package services

import (
	"pola_backend/internal/models"
)

// DocumentRequirement is one role-specific evidence category.
type DocumentRequirement struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// autoVerifiedRoles are exempt from the document-based verification process
// and become verified at registration.
var autoVerifiedRoles = map[string]bool{
	models.RoleCitizen:    true,
	models.RoleLawStudent: true,
	models.RoleLecturer:   true,
}

// roleDocumentRequirements maps each role to its evidence checklist. Adding a
// role is a data change here, not a code change. Roles absent from the map
// resolve to an empty list.
var roleDocumentRequirements = map[string][]DocumentRequirement{
	models.RoleAdvocate: {
		{Type: models.DocRollNumberCert, Label: "Roll Number Certificate", Required: true},
		{Type: models.DocPracticeLicense, Label: "Practice License", Required: true},
		{Type: models.DocWorkCertificate, Label: "Certificate of Work", Required: true},
	},
	models.RoleLawyer: {
		{Type: models.DocProfessionalCert, Label: "Professional Certificate", Required: true},
		{Type: models.DocEmploymentLetter, Label: "Employment Letter", Required: true},
		{Type: models.DocOrganizationCert, Label: "Organization Certificate", Required: false},
	},
	models.RoleParalegal: {
		{Type: models.DocProfessionalCert, Label: "Professional Certificate", Required: true},
		{Type: models.DocEmploymentLetter, Label: "Employment Letter", Required: true},
		{Type: models.DocOrganizationCert, Label: "Organization Certificate", Required: false},
	},
	models.RoleLawFirm: {
		{Type: models.DocBusinessLicense, Label: "Business License", Required: true},
		{Type: models.DocRegistrationCert, Label: "Registration Certificate", Required: true},
		{Type: models.DocFirmDocuments, Label: "Other Firm Documents", Required: false},
	},
}

// roleSpecificFields maps each role to the profile fields checked during the
// role_specific step.
var roleSpecificFields = map[string][]string{
	models.RoleAdvocate:  {"roll_number", "regional_chapter"},
	models.RoleLawyer:    {"place_of_work"},
	models.RoleParalegal: {"place_of_work"},
	models.RoleLawFirm:   {"firm_name", "managing_partner"},
}

// identityFields are the individual identity fields; law firms are exempt
// from the identity step.
var identityFields = []string{"full_name", "date_of_birth", "gender"}

// contactFields are checked during the contact step. Email is always present
// from registration but stays in the list so the step reports it as verified.
var contactFields = []string{"phone_number", "email", "address"}

// IsAutoVerified reports whether the role skips verification entirely.
func IsAutoVerified(role string) bool {
	return autoVerifiedRoles[role]
}

// RequiredDocuments returns the evidence checklist for a role. Unknown roles
// get an empty list.
func RequiredDocuments(role string) []DocumentRequirement {
	return roleDocumentRequirements[role]
}

// RequiredDocumentTypes returns just the type codes of the required entries.
func RequiredDocumentTypes(role string) []string {
	var types []string
	for _, req := range roleDocumentRequirements[role] {
		if req.Required {
			types = append(types, req.Type)
		}
	}
	return types
}

// RequiredFields returns the profile fields checked for a role at a given
// step. Unknown roles and steps resolve to empty lists.
func RequiredFields(role, step string) []string {
	if IsAutoVerified(role) {
		return nil
	}
	switch step {
	case models.StepIdentity:
		if role == models.RoleLawFirm {
			return nil
		}
		return identityFields
	case models.StepContact:
		return contactFields
	case models.StepRoleSpecific:
		return roleSpecificFields[role]
	}
	return nil
}
