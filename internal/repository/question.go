package repository

import (
	"context"

	"govforms/internal/database"
	"govforms/internal/models"

	"github.com/google/uuid"
)

// QuestionStore is the database-backed question source for the
// interview engine. Listing order (position, then creation time) is the
// traversal order.
type QuestionStore struct{}

func (QuestionStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := database.DB.WithContext(ctx).Order("position, created_at").Find(&questions).Error
	return questions, err
}

func CreateQuestion(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return database.DB.WithContext(ctx).Create(q).Error
}

func CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Question{}).Count(&count).Error
	return count, err
}

// SeedQuestions inserts the given questions if the table is empty.
// Used at startup to load the YAML question seed file.
func SeedQuestions(ctx context.Context, questions []models.Question) (int, error) {
	count, err := CountQuestions(ctx)
	if err != nil || count > 0 {
		return 0, err
	}
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		if questions[i].Position == 0 {
			questions[i].Position = i
		}
	}
	if err := database.DB.WithContext(ctx).Create(&questions).Error; err != nil {
		return 0, err
	}
	return len(questions), nil
}
