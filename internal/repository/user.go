package repository

import (
	"context"
	"time"

	"govforms/internal/database"
	"govforms/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func CreateUser(ctx context.Context, name, email, password, role string, isDefault bool) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:              name,
		Email:             email,
		Password:          string(hashedPassword),
		Role:              role,
		IsDefaultPassword: isDefault,
	}
	result := database.DB.WithContext(ctx).Create(user)
	return user, result.Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	return &user, result.Error
}

func ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := database.DB.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

func CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func UpdateUser(ctx context.Context, userID uint, name, role string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"name": name, "role": role}).Error
}

// UpdateUserPassword rehashes and stores a new password and clears the
// default-password flag.
func UpdateUserPassword(ctx context.Context, userID uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"password": string(hashedPassword), "is_default_password": false}).Error
}

func TouchLastLogin(ctx context.Context, userID uint) error {
	now := time.Now().UTC()
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("last_login", now).Error
}

func DeleteUser(ctx context.Context, userID uint) error {
	return database.DB.WithContext(ctx).Delete(&models.User{}, userID).Error
}
