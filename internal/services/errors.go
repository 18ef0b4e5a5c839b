package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for verification workflow states. Controllers translate
// these into HTTP responses: permission failures map to 403, conflicts to
// 409 and validation failures to 400.
var (
	ErrPermissionDenied = errors.New("admin capability required")
	ErrAlreadyVerified  = errors.New("user is already verified")
	ErrAutoVerifiedRole = errors.New("role is auto-verified and needs no admin action")
	ErrAlreadyDecided   = errors.New("verification already has a terminal decision")
	ErrWrongStep        = errors.New("step does not match the current verification step")
	ErrInvalidStep      = errors.New("unknown verification step")
	ErrInvalidStatus    = errors.New("status must be verified or rejected")
	ErrReasonRequired   = errors.New("rejection reason is required")
	ErrNoDocumentTypes  = errors.New("at least one document type must be requested")
)

// MissingDocumentsError reports which required document types lack a verified
// document, so the admin knows exactly what blocks approval.
type MissingDocumentsError struct {
	Missing []string
}

func (e *MissingDocumentsError) Error() string {
	return fmt.Sprintf("missing verified required documents: %s", strings.Join(e.Missing, ", "))
}

// DuplicateDocumentError reports an upload attempt while an active document of
// the same type already exists for the owner.
type DuplicateDocumentError struct {
	DocumentType string
}

func (e *DuplicateDocumentError) Error() string {
	return fmt.Sprintf("an active document of type %q already exists", e.DocumentType)
}
