package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pola_backend/internal/config"
	"pola_backend/internal/models"
	"pola_backend/internal/services"
)

var allRoles = []string{
	models.RoleCitizen,
	models.RoleLawStudent,
	models.RoleLecturer,
	models.RoleParalegal,
	models.RoleLawyer,
	models.RoleAdvocate,
	models.RoleLawFirm,
}

// VerificationStatistics aggregates case counts for the admin dashboard.
func VerificationStatistics(c *gin.Context) {
	var totalUsers, verifiedUsers, pending, rejected int64

	if err := config.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute statistics"})
		return
	}
	config.DB.Model(&models.Verification{}).Where("status = ?", models.StatusVerified).Count(&verifiedUsers)
	config.DB.Model(&models.Verification{}).Where("status = ?", models.StatusPending).Count(&pending)
	config.DB.Model(&models.Verification{}).Where("status = ?", models.StatusRejected).Count(&rejected)

	verificationRate := 0.0
	if totalUsers > 0 {
		verificationRate = float64(verifiedUsers) / float64(totalUsers) * 100
	}

	roleStats := gin.H{}
	for _, role := range allRoles {
		var total, verified, rolePending int64
		config.DB.Model(&models.User{}).Where("role = ?", role).Count(&total)
		config.DB.Model(&models.Verification{}).
			Joins("JOIN users ON users.id = verifications.user_id").
			Where("users.role = ? AND verifications.status = ?", role, models.StatusVerified).
			Count(&verified)
		config.DB.Model(&models.Verification{}).
			Joins("JOIN users ON users.id = verifications.user_id").
			Where("users.role = ? AND verifications.status = ?", role, models.StatusPending).
			Count(&rolePending)
		roleStats[role] = gin.H{
			"total":    total,
			"verified": verified,
			"pending":  rolePending,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": gin.H{
			"total_users":            totalUsers,
			"verified_users":         verifiedUsers,
			"pending_verifications":  pending,
			"rejected_verifications": rejected,
			"verification_rate":      verificationRate,
		},
		"by_role": roleStats,
	})
}

// PendingDocuments lists every active document awaiting review.
func PendingDocuments(c *gin.Context) {
	var documents []models.Document
	if err := config.DB.
		Where("verification_status = ? AND is_active = ?", models.StatusPending, true).
		Preload("User").
		Order("created_at ASC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(documents),
		"documents": documents,
	})
}

// UsersNeedingReview lists pending users whose uploads cover every required
// document type, so admins review complete cases first.
func UsersNeedingReview(c *gin.Context) {
	var verifications []models.Verification
	if err := config.DB.Where("status = ?", models.StatusPending).
		Preload("User").
		Preload("User.Documents", "is_active = ?", true).
		Find(&verifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch verifications"})
		return
	}

	results := []gin.H{}
	for _, v := range verifications {
		user := v.User
		if len(user.Documents) == 0 {
			continue
		}

		uploaded := map[string]bool{}
		verifiedCount := 0
		pendingCount := 0
		for _, doc := range user.Documents {
			uploaded[doc.DocumentType] = true
			switch doc.VerificationStatus {
			case models.StatusVerified:
				verifiedCount++
			case models.StatusPending:
				pendingCount++
			}
		}

		hasAll := true
		for _, docType := range services.RequiredDocumentTypes(user.Role) {
			if !uploaded[docType] {
				hasAll = false
				break
			}
		}
		if !hasAll {
			continue
		}

		results = append(results, gin.H{
			"user_id":            user.ID,
			"email":              user.Email,
			"name":               user.FullName(),
			"role":               user.Role,
			"documents_count":    len(user.Documents),
			"verified_documents": verifiedCount,
			"pending_documents":  pendingCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(results),
		"users": results,
	})
}
