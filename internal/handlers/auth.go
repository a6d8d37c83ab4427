package handlers

import (
	"errors"
	"net/http"

	"govforms/internal/config"
	"govforms/internal/models"
	"govforms/internal/repository"
	"govforms/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := repository.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("userID", user.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session on login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if err := repository.TouchLastLogin(c.Request.Context(), user.ID); err != nil {
		h.log.Warn("Failed to record last login", zap.Uint("userID", user.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Session returns the logged-in user plus the CSRF token the client
// must echo back on mutating requests.
func (h *AuthHandler) Session(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	csrfToken, _ := c.Get("csrf_token")
	c.JSON(http.StatusOK, gin.H{"user": user, "csrfToken": csrfToken})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, _ := c.Get("user")
	currentUser := user.(*models.User)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current and new password are required"})
		return
	}

	if !currentUser.CheckPassword(req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect current password"})
		return
	}
	if !utils.IsComplexPassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters with upper, lower, digit and special characters"})
		return
	}

	if err := repository.UpdateUserPassword(c.Request.Context(), currentUser.ID, req.NewPassword); err != nil {
		h.log.Error("Failed to update password", zap.Error(err), zap.Uint("userID", currentUser.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SeedAdmin creates the initial administrator account. It only works
// while the users table is empty.
func (h *AuthHandler) SeedAdmin(c *gin.Context) {
	count, err := repository.CountUsers(c.Request.Context())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing users"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Admin account already seeded"})
		return
	}

	authConf := config.Conf.Auth
	admin, err := repository.CreateUser(c.Request.Context(), "Administrator", authConf.SeedAdminEmail, authConf.DefaultPassword, models.RoleAdmin, true)
	if err != nil {
		h.log.Error("Failed to seed admin account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed admin account"})
		return
	}

	h.log.Info("Seeded admin account", zap.String("email", admin.Email))
	c.JSON(http.StatusCreated, gin.H{"user": admin})
}
