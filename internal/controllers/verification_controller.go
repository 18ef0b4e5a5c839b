package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pola_backend/internal/config"
	"pola_backend/internal/models"
	"pola_backend/internal/services"
)

// MyVerificationStatus returns the caller's verification record together with
// the derived progress and the per-type document checklist. Progress is
// recomputed on every read, never stored.
func MyVerificationStatus(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := config.DB.Where("id = ?", userID).
		Preload("Contact").
		Preload("Address").
		Preload("Verification").
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if user.Verification == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "verification record not found",
			"message": "please contact support to create a verification record",
		})
		return
	}

	documents, ok := loadUserDocuments(c, userID)
	if !ok {
		return
	}

	progress := services.ComputeProgress(&user, user.Verification, documents)

	c.JSON(http.StatusOK, gin.H{
		"verification":       verificationResponse(*user.Verification, user),
		"progress":           progress,
		"required_documents": services.DocumentChecklist(user.Role, documents),
		"documents":          documents,
	})
}

// ListPendingVerifications lists cases awaiting a decision.
func ListPendingVerifications(c *gin.Context) {
	var verifications []models.Verification
	if err := config.DB.Where("status = ?", models.StatusPending).
		Preload("User").
		Find(&verifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch verifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(verifications),
		"results": verificationListResponse(verifications),
	})
}

// ListVerificationsByRole filters cases by the owner's role.
// GET /verifications/by_role?role=advocate
func ListVerificationsByRole(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a role parameter"})
		return
	}

	var verifications []models.Verification
	if err := config.DB.
		Joins("JOIN users ON users.id = verifications.user_id").
		Where("users.role = ?", role).
		Preload("User").
		Find(&verifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch verifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role":    role,
		"count":   len(verifications),
		"results": verificationListResponse(verifications),
	})
}

// ListAllVerifications lists every case.
func ListAllVerifications(c *gin.Context) {
	var verifications []models.Verification
	if err := config.DB.Preload("User").Find(&verifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch verifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(verifications),
		"results": verificationListResponse(verifications),
	})
}

// ApproveVerification performs the final approval of a case. The conditional
// update guards against a concurrent decision: whoever loses the race gets a
// conflict instead of silently overwriting.
func ApproveVerification(c *gin.Context) {
	admin, ok := loadAdmin(c)
	if !ok {
		return
	}
	verification, user, ok := findVerificationWithUser(c)
	if !ok {
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	documents, ok := loadUserDocuments(c, user.ID)
	if !ok {
		return
	}

	prevStatus := verification.Status
	if err := services.ApproveVerification(&verification, &user, documents, &admin, body.Notes); err != nil {
		respondServiceError(c, err)
		return
	}

	if !persistDecision(c, &verification, prevStatus) {
		return
	}

	logrus.WithFields(logrus.Fields{
		"verification_id": verification.ID,
		"user_id":         user.ID,
		"admin_id":        admin.ID,
	}).Info("verification approved")

	c.JSON(http.StatusOK, gin.H{
		"message":      "user verification approved",
		"verification": verificationResponse(verification, user),
	})
}

// RejectVerification rejects a case with a mandatory reason. No
// document-completeness check applies.
func RejectVerification(c *gin.Context) {
	admin, ok := loadAdmin(c)
	if !ok {
		return
	}
	verification, user, ok := findVerificationWithUser(c)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
		return
	}

	prevStatus := verification.Status
	if err := services.RejectVerification(&verification, &admin, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	if !persistDecision(c, &verification, prevStatus) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "user verification rejected",
		"verification": verificationResponse(verification, user),
	})
}

// VerifyVerificationStep confirms a single checklist step and advances the
// case. Body: {"step": "...", "notes": "..."}.
func VerifyVerificationStep(c *gin.Context) {
	admin, ok := loadAdmin(c)
	if !ok {
		return
	}
	verification, user, ok := findVerificationWithUser(c)
	if !ok {
		return
	}

	var body struct {
		Step  string `json:"step" binding:"required"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step is required"})
		return
	}

	documents, ok := loadUserDocuments(c, user.ID)
	if !ok {
		return
	}

	prevStatus := verification.Status
	prevStep := verification.CurrentStep
	if err := services.VerifyStep(&verification, &user, documents, body.Step, &admin, body.Notes); err != nil {
		respondServiceError(c, err)
		return
	}

	result := config.DB.Model(&models.Verification{}).
		Where("id = ? AND status = ? AND current_step = ?", verification.ID, prevStatus, prevStep).
		Updates(map[string]interface{}{
			"status":             verification.Status,
			"current_step":       verification.CurrentStep,
			"verified_by_id":     verification.VerifiedByID,
			"verification_date":  verification.VerificationDate,
			"verification_notes": verification.VerificationNotes,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update verification: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrAlreadyDecided.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "verification step updated",
		"verification": verificationResponse(verification, user),
	})
}

// RejectVerificationStep rejects the whole case, tagging the reason with the
// step the admin was reviewing. Body: {"step": "...", "reason": "..."}.
func RejectVerificationStep(c *gin.Context) {
	admin, ok := loadAdmin(c)
	if !ok {
		return
	}
	verification, user, ok := findVerificationWithUser(c)
	if !ok {
		return
	}

	var body struct {
		Step   string `json:"step" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step and reason are required"})
		return
	}

	prevStatus := verification.Status
	if err := services.RejectStep(&verification, body.Step, &admin, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	if !persistDecision(c, &verification, prevStatus) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "verification step rejected",
		"verification": verificationResponse(verification, user),
	})
}

// RequestDocuments records an admin request for additional evidence. Purely
// informational: no state transition happens.
// Body: {"documents": ["practice_license"], "message": "..."}.
func RequestDocuments(c *gin.Context) {
	admin, ok := loadAdmin(c)
	if !ok {
		return
	}
	verification, user, ok := findVerificationWithUser(c)
	if !ok {
		return
	}

	var body struct {
		Documents []string `json:"documents"`
		Message   string   `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a list of document types"})
		return
	}

	if err := services.RequestAdditionalDocuments(&verification, &admin, body.Documents, body.Message); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Model(&verification).
		Update("verification_notes", verification.VerificationNotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update verification: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "document request sent to user",
		"verification": verificationResponse(verification, user),
	})
}

// --- helpers ---

func findVerificationWithUser(c *gin.Context) (models.Verification, models.User, bool) {
	var verification models.Verification
	id := c.Param("id")
	if err := config.DB.Preload("User").First(&verification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "verification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return verification, models.User{}, false
	}
	return verification, verification.User, true
}

func loadUserDocuments(c *gin.Context, userID uint) ([]models.Document, bool) {
	var documents []models.Document
	if err := config.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch documents"})
		return nil, false
	}
	return documents, true
}

// persistDecision writes a terminal transition guarded by the previously read
// status, so two concurrent decisions cannot both land.
func persistDecision(c *gin.Context, verification *models.Verification, prevStatus string) bool {
	result := config.DB.Model(&models.Verification{}).
		Where("id = ? AND status = ?", verification.ID, prevStatus).
		Updates(map[string]interface{}{
			"status":             verification.Status,
			"verified_by_id":     verification.VerifiedByID,
			"verification_date":  verification.VerificationDate,
			"rejection_reason":   verification.RejectionReason,
			"verification_notes": verification.VerificationNotes,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update verification: " + result.Error.Error()})
		return false
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrAlreadyDecided.Error()})
		return false
	}
	return true
}

func verificationResponse(v models.Verification, user models.User) gin.H {
	resp := gin.H{
		"id":                 v.ID,
		"user_id":            v.UserID,
		"user_email":         user.Email,
		"user_name":          user.FullName(),
		"user_role":          user.Role,
		"status":             v.Status,
		"current_step":       v.CurrentStep,
		"progress":           v.ProgressPercent(),
		"verification_notes": v.VerificationNotes,
		"created_at":         v.CreatedAt,
		"updated_at":         v.UpdatedAt,
	}
	if v.VerifiedByID != nil {
		resp["verified_by"] = *v.VerifiedByID
	}
	if v.VerificationDate != nil {
		resp["verification_date"] = *v.VerificationDate
	}
	if v.RejectionReason != "" {
		resp["rejection_reason"] = v.RejectionReason
	}
	return resp
}

func verificationListResponse(verifications []models.Verification) []gin.H {
	results := make([]gin.H, 0, len(verifications))
	for _, v := range verifications {
		results = append(results, verificationResponse(v, v.User))
	}
	return results
}
