package controllers

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ink-point/api-go/config"
	"github.com/ink-point/api-go/models"
	"github.com/ink-point/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB           *gorm.DB
	GoogleConfig *config.GoogleConfig
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:           db,
		GoogleConfig: config.NewGoogleConfig(),
	}
}

// validateUsernamePattern validates username format and constraints
func validateUsernamePattern(username string) error {
	trimmedUsername := strings.TrimSpace(username)

	if len(trimmedUsername) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(trimmedUsername) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}

	validPattern, _ := regexp.MatchString(`^[a-zA-Z][a-zA-Z0-9_]*$`, trimmedUsername)
	if !validPattern {
		return fmt.Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}

	reserved := []string{"admin", "root", "api", "www", "feed", "login", "logout", "signup", "test", "null", "undefined"}
	for _, reservedWord := range reserved {
		if strings.ToLower(trimmedUsername) == reservedWord {
			return fmt.Errorf("this username is reserved and cannot be used")
		}
	}

	return nil
}

func (ac *AuthController) issueTokens(user *models.User) (string, string, error) {
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	signed, err := accessToken.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", "", err
	}

	refresh := models.RefreshToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}
	if err := ac.DB.Create(&refresh).Error; err != nil {
		return "", "", err
	}

	return signed, refresh.Token, nil
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} StandardResponse
// @Router /register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := validateUsernamePattern(input.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}
	hashedPasswordStr := string(hashedPassword)

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  &hashedPasswordStr,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Provider:  "email",
		Role:      "user",
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    user,
		Message: "Registration successful",
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "success": false})
		return
	}

	if user.Password == nil || bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "success": false})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
			"user":         user,
		},
	})
}

// GoogleLogin godoc
// @Summary Log in with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /auth/google [post]
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var input struct {
		IDToken string `json:"idToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	info, err := ac.GoogleConfig.VerifyIDToken(input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token", "success": false})
		return
	}

	var user models.User
	err = ac.DB.Where("google_id = ?", info.ID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		username := strings.Split(info.Email, "@")[0]
		user = models.User{
			Username:  username,
			Email:     info.Email,
			GoogleID:  &info.ID,
			Provider:  "google",
			FirstName: info.GivenName,
			LastName:  info.FamilyName,
			Avatar:    info.Picture,
			Role:      "user",
		}
		if err := ac.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create account", "success": false})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed", "success": false})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
			"user":         user,
		},
	})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var token models.RefreshToken
	if err := ac.DB.Where("token = ? AND revoked = false", input.RefreshToken).First(&token).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	if time.Now().After(token.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, token.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	ac.DB.Model(&token).Update("revoked", true)

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}

// Logout godoc
// @Summary Revoke the caller's refresh tokens
// @Tags auth
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	user := utils.GetUser(c)

	ac.DB.Model(&models.RefreshToken{}).
		Where("user_id = ?", user.UserID).
		Update("revoked", true)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Logged out",
	})
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags auth
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /profile [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	claims := utils.GetUser(c)

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    user,
	})
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Description Bio, avatar and name only; username and authorship of
// existing content never change.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /profile [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	claims := utils.GetUser(c)

	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Bio       string `json:"bio"`
		Avatar    string `json:"avatar"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := make(map[string]interface{})
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}
	if input.Bio != "" {
		updates["bio"] = input.Bio
	}
	if input.Avatar != "" {
		updates["avatar"] = input.Avatar
	}

	if err := ac.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    user,
		Message: "Profile updated",
	})
}
