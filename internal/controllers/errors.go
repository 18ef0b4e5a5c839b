package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pola_backend/internal/services"
)

// respondServiceError translates the services error taxonomy into HTTP
// responses. Structured details (the missing document list) ride along so the
// operator knows exactly what to fix.
func respondServiceError(c *gin.Context, err error) {
	var missingErr *services.MissingDocumentsError
	if errors.As(err, &missingErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "missing required documents",
			"missing_documents": missingErr.Missing,
			"message":           "all required documents must be verified before approving user verification",
		})
		return
	}

	var dupErr *services.DuplicateDocumentError
	if errors.As(err, &dupErr) {
		c.JSON(http.StatusConflict, gin.H{"error": dupErr.Error()})
		return
	}

	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyVerified),
		errors.Is(err, services.ErrAutoVerifiedRole),
		errors.Is(err, services.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrWrongStep),
		errors.Is(err, services.ErrInvalidStep),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrNoDocumentTypes):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
