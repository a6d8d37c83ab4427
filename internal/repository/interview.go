package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"govforms/internal/database"
	"govforms/internal/interview"
	"govforms/internal/models"

	"github.com/google/uuid"
)

// InterviewStore implements the interview engine's session and answer
// storage contracts on top of the interviews and interview_answers
// tables.
type InterviewStore struct{}

func (InterviewStore) CreateSession(ctx context.Context, info interview.Interviewee) (string, error) {
	row := &models.Interview{
		ID:              uuid.NewString(),
		IntervieweeName: info.Name,
		IntervieweeID:   info.ExternalID,
		Location:        info.Location,
		Status:          models.InterviewInProgress,
	}
	if err := database.DB.WithContext(ctx).Create(row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

func (InterviewStore) UpdateSessionStatus(ctx context.Context, sessionID string, status interview.Status) error {
	query := `UPDATE interviews SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	return database.DB.WithContext(ctx).Exec(query, string(status), sessionID).Error
}

func (InterviewStore) UpdateSessionPosition(ctx context.Context, sessionID string, position int) error {
	query := `UPDATE interviews SET current_index = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	return database.DB.WithContext(ctx).Exec(query, position, sessionID).Error
}

// RecordAnswer upserts one captured answer, JSON-encoded, keyed by
// interview and question.
func (InterviewStore) RecordAnswer(ctx context.Context, sessionID, questionID string, value interview.Value) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO interview_answers (interview_id, question_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (interview_id, question_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP;
	`
	return database.DB.WithContext(ctx).Exec(query, sessionID, questionID, string(encoded)).Error
}

func GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var row models.Interview
	err := database.DB.WithContext(ctx).Preload("Answers").First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func ListInterviews(ctx context.Context) ([]models.Interview, error) {
	var rows []models.Interview
	err := database.DB.WithContext(ctx).Preload("Answers").Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func ListCompletedInterviews(ctx context.Context) ([]models.Interview, error) {
	var rows []models.Interview
	err := database.DB.WithContext(ctx).Preload("Answers").
		Where("status = ?", models.InterviewCompleted).
		Order("created_at").Find(&rows).Error
	return rows, err
}

// LoadSession rehydrates an in-memory engine session from the interview
// row and its captured answers.
func LoadSession(ctx context.Context, id string) (*interview.Session, error) {
	row, err := GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}

	s := interview.NewSession()
	s.ID = row.ID
	s.Interviewee = interview.Interviewee{
		Name:       row.IntervieweeName,
		ExternalID: row.IntervieweeID,
		Location:   row.Location,
	}
	s.Position = row.CurrentIndex
	s.Status = interview.Status(row.Status)

	for _, a := range row.Answers {
		var v interview.Value
		if err := json.Unmarshal([]byte(a.Value), &v); err != nil {
			return nil, fmt.Errorf("corrupt answer for question %s: %w", a.QuestionID, err)
		}
		s.Answers[a.QuestionID] = v
	}
	return s, nil
}
