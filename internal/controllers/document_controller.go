package controllers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pola_backend/internal/config"
	"pola_backend/internal/models"
	"pola_backend/internal/services"
	"pola_backend/internal/storage"
)

// UploadDocument stores one piece of evidence for the authenticated user.
// Multipart form: document_type, title, description (optional), file.
func UploadDocument(c *gin.Context) {
	userID := currentUserID(c)

	docType := c.PostForm("document_type")
	title := c.PostForm("title")
	description := c.PostForm("description")

	if !services.ValidDocumentType(docType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document_type"})
		return
	}
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > services.MaxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size cannot exceed 10MB"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !services.AllowedDocumentExtension(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF, JPG, PNG and DOC/DOCX files are allowed"})
		return
	}

	// One active document per type: the existing one blocks the upload no
	// matter its review status.
	var existing []models.Document
	if err := config.DB.Where("user_id = ? AND document_type = ?", userID, docType).Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check existing documents"})
		return
	}
	if err := services.EnsureNoActiveDuplicate(existing, docType); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	dst := storage.DocumentPath(file.Filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logrus.WithError(err).Error("failed to store uploaded document file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
		return
	}

	document := models.Document{
		UserID:             userID,
		DocumentType:       docType,
		FilePath:           dst,
		Title:              title,
		Description:        description,
		VerificationStatus: models.StatusPending,
		IsActive:           true,
	}
	if err := config.DB.Create(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create document: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// ListDocuments returns the caller's active documents. Staff may inspect any
// user via ?user_id= and include deactivated rows via ?include_inactive=true.
func ListDocuments(c *gin.Context) {
	userID := currentUserID(c)
	isStaff := c.GetBool("is_staff")

	targetID := userID
	if requested := c.Query("user_id"); requested != "" && isStaff {
		parsed, err := strconv.ParseUint(requested, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		targetID = uint(parsed)
	}

	query := config.DB.Where("user_id = ?", targetID)
	if !(isStaff && c.Query("include_inactive") == "true") {
		query = query.Where("is_active = ?", true)
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": documents})
}

// GetDocument fetches one document; owners see their own, staff see all.
func GetDocument(c *gin.Context) {
	document, ok := findDocument(c)
	if !ok {
		return
	}
	if document.UserID != currentUserID(c) && !c.GetBool("is_staff") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": document})
}

// DeleteDocument deactivates a document. This is the escape hatch for
// resubmission: a rejected document must be deleted before a replacement of
// the same type can be uploaded.
func DeleteDocument(c *gin.Context) {
	document, ok := findDocument(c)
	if !ok {
		return
	}
	if document.UserID != currentUserID(c) && !c.GetBool("is_staff") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your document"})
		return
	}

	if err := config.DB.Model(&document).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// VerifyDocument records an admin verdict on a single document.
// Body: {"status": "verified"|"rejected", "notes": "..."}; status defaults to
// verified. The overall case is not touched.
func VerifyDocument(c *gin.Context) {
	admin, ok := loadAdmin(c)
	if !ok {
		return
	}
	document, ok := findDocument(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	// Empty body means a plain approval with no notes.
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Status == "" {
		body.Status = models.StatusVerified
	}

	if err := services.ReviewDocument(&document, &admin, body.Status, body.Notes); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Save(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update document: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "document verification status updated",
		"document": document,
	})
}

// RejectDocument rejects a single document with a mandatory reason.
func RejectDocument(c *gin.Context) {
	admin, ok := loadAdmin(c)
	if !ok {
		return
	}
	document, ok := findDocument(c)
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

	if err := services.ReviewDocument(&document, &admin, models.StatusRejected, body.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Save(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update document: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "document rejected",
		"document": document,
	})
}

func findDocument(c *gin.Context) (models.Document, bool) {
	var document models.Document
	id := c.Param("id")
	if err := config.DB.First(&document, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return document, false
	}
	return document, true
}
