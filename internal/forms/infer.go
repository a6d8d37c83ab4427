// Package forms derives form definitions from tabular column statistics.
package forms

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// EmailPattern is the validation regex attached to inferred email fields.
const EmailPattern = `^[^@]+@[^@]+\.[^@]+$`

// Field input kinds.
const (
	KindText     = "text"
	KindNumber   = "number"
	KindEmail    = "email"
	KindDate     = "date"
	KindSelect   = "select"
	KindTextarea = "textarea"
	KindCheckbox = "checkbox"
	KindRadio    = "radio"
)

// ColumnDescriptor is the statistical summary of one source column, as
// produced by column analysis. FieldType is the pre-classified type tag;
// inference does not re-detect types.
type ColumnDescriptor struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"displayName"`
	DataType     string   `json:"dataType"`
	FieldType    string   `json:"fieldType"`
	SampleValues []any    `json:"sampleValues"`
	NullCount    int      `json:"nullCount"`
	UniqueCount  int      `json:"uniqueCount"`
	TotalCount   int      `json:"totalCount"`
	Categories   []string `json:"categories,omitempty"`
}

// NullPercentage returns the share of null values in the column, 0..100.
func (c ColumnDescriptor) NullPercentage() float64 {
	if c.TotalCount == 0 {
		return 0
	}
	return float64(c.NullCount) / float64(c.TotalCount) * 100
}

// Validation constrains a field's accepted input.
type Validation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Message string   `json:"message,omitempty"`
}

// FormField is one input definition of a generated form.
type FormField struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Kind        string      `json:"type"`
	Required    bool        `json:"required"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
}

// FormSettings mirror the defaults applied to auto-generated forms.
type FormSettings struct {
	AllowMultipleSubmissions bool `json:"allowMultipleSubmissions"`
	RequireAuthentication    bool `json:"requireAuthentication"`
}

// Form is a complete generated form definition.
type Form struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Fields      []FormField  `json:"fields"`
	Settings    FormSettings `json:"settings"`
}

// InferField maps one column descriptor to a form field. It is total:
// unknown type tags fall through to a plain text field.
//
// A column becomes required when fewer than 10% of its values are null.
// That is a data-quality heuristic (a mostly-populated source column is
// assumed to be mandatory), not a designer choice.
func InferField(col ColumnDescriptor) FormField {
	label := col.DisplayName
	if label == "" {
		label = col.Name
	}

	field := FormField{
		ID:          "field_" + uuid.NewString(),
		Label:       label,
		Kind:        col.FieldType,
		Required:    col.NullPercentage() < 10,
		Placeholder: fmt.Sprintf("Enter %s", strings.ToLower(label)),
	}
	if field.Kind == "" {
		field.Kind = KindText
	}

	switch col.FieldType {
	case KindSelect, KindRadio:
		// Options mirror the source categories, preserving order. An
		// absent category list yields empty options, not an error.
		field.Options = make([]string, 0, len(col.Categories))
		field.Options = append(field.Options, col.Categories...)

	case KindEmail:
		field.Placeholder = "Enter email address"
		field.Validation = &Validation{
			Pattern: EmailPattern,
			Message: "Please enter a valid email address",
		}

	case KindNumber:
		min := 0.0
		field.Placeholder = "Enter number"
		field.Validation = &Validation{
			Min:     &min,
			Message: "Please enter a valid number",
		}

	case KindDate:
		field.Placeholder = "Select date"

	case KindTextarea:
		field.Placeholder = fmt.Sprintf("Enter %s...", strings.ToLower(label))
	}

	return field
}

// GenerateForm maps every column to a field and derives the form title
// and description from the source file name.
func GenerateForm(columns []ColumnDescriptor, sourceName string) Form {
	fields := make([]FormField, 0, len(columns))
	for _, col := range columns {
		fields = append(fields, InferField(col))
	}

	return Form{
		Title:       TitleFromSource(sourceName) + " Form",
		Description: fmt.Sprintf("Auto-generated form from %s", sourceName),
		Fields:      fields,
		Settings: FormSettings{
			AllowMultipleSubmissions: true,
			RequireAuthentication:    true,
		},
	}
}

// TitleFromSource turns a file name like "employee_data.xlsx" into
// "Employee Data": extension stripped, underscores and hyphens replaced
// with spaces, every word capitalized.
func TitleFromSource(sourceName string) string {
	name := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
