package models

import (
	"time"

	"gorm.io/gorm"
)

// Interview status values persisted on the interview row. "saved" marks
// an interrupted session that can be resumed at its stored index.
const (
	InterviewInProgress = "in-progress"
	InterviewSaved      = "saved"
	InterviewCompleted  = "completed"
)

type Interview struct {
	ID              string            `gorm:"primaryKey" json:"id"`
	IntervieweeName string            `json:"intervieweeName"`
	IntervieweeID   string            `json:"intervieweeId,omitempty"`
	Location        string            `json:"location,omitempty"`
	Status          string            `json:"status"`
	CurrentIndex    int               `json:"currentIndex"`
	Answers         []InterviewAnswer `gorm:"foreignKey:InterviewID" json:"answers,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// InterviewAnswer holds one captured answer. Value is the JSON encoding
// of the answer (a string for single-valued kinds, an array for
// multi-choice). One row per question per interview, upserted on
// re-answer.
type InterviewAnswer struct {
	gorm.Model  `json:"-"`
	InterviewID string `gorm:"uniqueIndex:idx_interview_question" json:"interviewId"`
	QuestionID  string `gorm:"uniqueIndex:idx_interview_question" json:"questionId"`
	Value       string `json:"value"`
}
