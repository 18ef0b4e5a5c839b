package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pola_backend/internal/config"
	"pola_backend/internal/middleware"
	"pola_backend/internal/models"
	"pola_backend/internal/services"
)

type signupInput struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	DateOfBirth   string `json:"date_of_birth"` // YYYY-MM-DD
	Gender        string `json:"gender"`
	AgreedToTerms bool   `json:"agreed_to_terms"`

	PhoneNumber string `json:"phone_number"`
	Website     string `json:"website"`

	Region        string `json:"region"`
	District      string `json:"district"`
	Ward          string `json:"ward"`
	OfficeAddress string `json:"office_address"`

	RollNumber        string `json:"roll_number"`
	RegionalChapter   string `json:"regional_chapter"`
	PlaceOfWork       string `json:"place_of_work"`
	YearsOfExperience *uint  `json:"years_of_experience"`
	FirmName          string `json:"firm_name"`
	ManagingPartner   string `json:"managing_partner"`
	UniversityName    string `json:"university_name"`
	YearOfStudy       *uint  `json:"year_of_study"`
	IDNumber          string `json:"id_number"`
}

// SignupUser registers a new account and creates its verification record in
// the same transaction. Exempt roles come out already verified.
func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Role = role

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	user, err := createUserRecord(tx, input, hashedPassword)
	if err != nil {
		tx.Rollback()
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	if err := createSatelliteRecords(tx, &user, input); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create related records: " + err.Error()})
		return
	}

	if err := createVerificationRecord(tx, &user); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create verification record: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, user.IsStaff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// LoginUser checks credentials and issues a fresh token.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	query := config.DB.Where("email = ?", body.Email).
		Preload("Contact").
		Preload("Address").
		Preload("Verification")

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, user.IsStaff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// GetMe returns the authenticated user's own profile.
func GetMe(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}

// currentUserID pulls the authenticated user id out of the JWT claims.
func currentUserID(c *gin.Context) uint {
	return uint(c.MustGet("user_id").(float64))
}

// loadAdmin fetches the acting admin's user record for capability checks in
// the services layer.
func loadAdmin(c *gin.Context) (models.User, bool) {
	var admin models.User
	if err := config.DB.First(&admin, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "acting user not found"})
		return admin, false
	}
	return admin, true
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RoleCitizen
	}
	switch role {
	case models.RoleCitizen, models.RoleLawStudent, models.RoleLecturer,
		models.RoleParalegal, models.RoleLawyer, models.RoleAdvocate, models.RoleLawFirm:
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func createUserRecord(tx *gorm.DB, input signupInput, hashedPassword string) (models.User, error) {
	user := models.User{
		Email:             input.Email,
		Password:          hashedPassword,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Role:              input.Role,
		Gender:            input.Gender,
		AgreedToTerms:     input.AgreedToTerms,
		RollNumber:        input.RollNumber,
		RegionalChapter:   input.RegionalChapter,
		PlaceOfWork:       input.PlaceOfWork,
		YearsOfExperience: input.YearsOfExperience,
		FirmName:          input.FirmName,
		ManagingPartner:   input.ManagingPartner,
		UniversityName:    input.UniversityName,
		YearOfStudy:       input.YearOfStudy,
		IDNumber:          input.IDNumber,
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return models.User{}, errors.New("date_of_birth must be YYYY-MM-DD")
		}
		user.DateOfBirth = &dob
	}
	if err := tx.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func createSatelliteRecords(tx *gorm.DB, user *models.User, input signupInput) error {
	if input.PhoneNumber != "" || input.Website != "" {
		contact := models.Contact{
			UserID:      user.ID,
			PhoneNumber: input.PhoneNumber,
			Website:     input.Website,
		}
		if err := tx.Create(&contact).Error; err != nil {
			return err
		}
		user.Contact = &contact
	}

	if input.Region != "" || input.District != "" || input.Ward != "" || input.OfficeAddress != "" {
		address := models.Address{
			UserID:        user.ID,
			Region:        input.Region,
			District:      input.District,
			Ward:          input.Ward,
			OfficeAddress: input.OfficeAddress,
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		user.Address = &address
	}
	return nil
}

func createVerificationRecord(tx *gorm.DB, user *models.User) error {
	verification := models.Verification{
		UserID:      user.ID,
		Status:      models.StatusPending,
		CurrentStep: models.StepDocuments,
	}
	if services.IsAutoVerified(user.Role) {
		now := time.Now()
		verification.Status = models.StatusVerified
		verification.CurrentStep = models.StepFinal
		verification.VerificationDate = &now
		verification.VerificationNotes = "Auto-verified upon registration (" + user.Role + ")"
	}
	if err := tx.Create(&verification).Error; err != nil {
		return err
	}
	user.Verification = &verification
	return nil
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":              user.ID,
		"CreatedAt":       user.CreatedAt,
		"UpdatedAt":       user.UpdatedAt,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"role":            user.Role,
		"gender":          user.Gender,
		"agreed_to_terms": user.AgreedToTerms,
		"is_staff":        user.IsStaff,
	}
	if user.DateOfBirth != nil {
		responseUser["date_of_birth"] = user.DateOfBirth.Format("2006-01-02")
	}

	// Role-specific fields only appear when the role uses them.
	switch user.Role {
	case models.RoleAdvocate:
		responseUser["roll_number"] = user.RollNumber
		responseUser["regional_chapter"] = user.RegionalChapter
	case models.RoleLawyer, models.RoleParalegal:
		responseUser["place_of_work"] = user.PlaceOfWork
		if user.YearsOfExperience != nil {
			responseUser["years_of_experience"] = *user.YearsOfExperience
		}
	case models.RoleLawFirm:
		responseUser["firm_name"] = user.FirmName
		responseUser["managing_partner"] = user.ManagingPartner
	case models.RoleLawStudent, models.RoleLecturer:
		responseUser["university_name"] = user.UniversityName
		if user.YearOfStudy != nil {
			responseUser["year_of_study"] = *user.YearOfStudy
		}
	case models.RoleCitizen:
		responseUser["id_number"] = user.IDNumber
	}

	if user.Contact != nil {
		responseUser["contact"] = gin.H{
			"phone_number":      user.Contact.PhoneNumber,
			"phone_is_verified": user.Contact.PhoneIsVerified,
			"website":           user.Contact.Website,
		}
	}
	if user.Address != nil {
		responseUser["address"] = gin.H{
			"region":         user.Address.Region,
			"district":       user.Address.District,
			"ward":           user.Address.Ward,
			"office_address": user.Address.OfficeAddress,
		}
	}
	if user.Verification != nil {
		responseUser["verification"] = gin.H{
			"status":       user.Verification.Status,
			"current_step": user.Verification.CurrentStep,
			"progress":     user.Verification.ProgressPercent(),
		}
	}
	return responseUser
}
