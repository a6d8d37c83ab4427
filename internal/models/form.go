package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"govforms/internal/forms"
)

// FieldList stores a form's field definitions as a jsonb column.
type FieldList []forms.FormField

func (f FieldList) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *FieldList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		*f = nil
		return nil
	}
	return fmt.Errorf("unsupported type for FieldList: %T", value)
}

type Form struct {
	ID                       string    `gorm:"primaryKey" json:"id"`
	Title                    string    `json:"title"`
	Description              string    `json:"description"`
	Fields                   FieldList `gorm:"type:jsonb" json:"fields"`
	SourceFile               string    `json:"sourceFile,omitempty"`
	AllowMultipleSubmissions bool      `json:"allowMultipleSubmissions"`
	RequireAuthentication    bool      `json:"requireAuthentication"`
	CreatedByID              uint      `json:"createdById"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}
