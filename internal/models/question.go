package models

import (
	"fmt"
	"os"
	"time"

	"github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

// Question kinds. Free-text questions carry no options; every other
// kind presents a fixed option list.
const (
	QuestionSingleChoice = "single-choice"
	QuestionMultiChoice  = "multi-choice"
	QuestionFreeText     = "free-text"
	QuestionRating       = "rating"
	QuestionYesNo        = "yes-no"
)

// Question is one interview question. Rows are created by form
// designers and treated as read-only while an interview is running.
// The table order (position, then creation time) defines traversal order.
type Question struct {
	ID           string         `gorm:"primaryKey" json:"id" yaml:"id"`
	Text         string         `json:"text" yaml:"text"`
	Type         string         `json:"type" yaml:"type"`
	Options      pq.StringArray `gorm:"type:text[]" json:"options" yaml:"options"`
	Required     bool           `json:"required" yaml:"required"`
	Position     int            `json:"position" yaml:"position"`
	DependsOn    string         `json:"dependsOn,omitempty" yaml:"depends_on"`
	DependsValue string         `json:"dependsValue,omitempty" yaml:"depends_value"`
	CreatedAt    time.Time      `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time      `json:"updatedAt" yaml:"-"`
}

// Conditional reports whether the question is only shown when a prior
// answer matches.
func (q *Question) Conditional() bool {
	return q.DependsOn != ""
}

// HasOption reports whether value is one of the question's options.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// ValidQuestionType reports whether t names a known question kind.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionFreeText, QuestionRating, QuestionYesNo:
		return true
	}
	return false
}

type questionFile struct {
	Questions []Question `yaml:"questions"`
}

// LoadQuestionFile reads and parses a YAML question seed file.
func LoadQuestionFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}

	var file questionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question YAML: %w", err)
	}

	return file.Questions, nil
}
