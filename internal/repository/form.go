package repository

import (
	"context"

	"govforms/internal/database"
	"govforms/internal/models"

	"github.com/google/uuid"
)

func CreateForm(ctx context.Context, form *models.Form) error {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	return database.DB.WithContext(ctx).Create(form).Error
}

func GetForm(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	err := database.DB.WithContext(ctx).First(&form, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func ListForms(ctx context.Context) ([]models.Form, error) {
	var forms []models.Form
	err := database.DB.WithContext(ctx).Order("created_at DESC").Find(&forms).Error
	return forms, err
}

func CountForms(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Form{}).Count(&count).Error
	return count, err
}
