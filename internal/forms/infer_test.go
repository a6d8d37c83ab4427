package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferFieldRequiredFollowsNullPercentage(t *testing.T) {
	tests := []struct {
		name      string
		nullCount int
		total     int
		required  bool
	}{
		{"no nulls", 0, 100, true},
		{"under threshold", 9, 100, true},
		{"exactly ten percent", 10, 100, false},
		{"above threshold", 50, 100, false},
		{"empty column stats", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := InferField(ColumnDescriptor{
				Name:        "salary",
				DisplayName: "Salary",
				FieldType:   KindNumber,
				NullCount:   tt.nullCount,
				TotalCount:  tt.total,
			})
			assert.Equal(t, tt.required, field.Required)
		})
	}
}

func TestInferFieldCategorical(t *testing.T) {
	field := InferField(ColumnDescriptor{
		DisplayName: "Department",
		FieldType:   KindSelect,
		Categories:  []string{"HR", "IT", "Finance", "Operations"},
		TotalCount:  100,
	})

	assert.Equal(t, KindSelect, field.Kind)
	// Options mirror the category list exactly, preserving order.
	assert.Equal(t, []string{"HR", "IT", "Finance", "Operations"}, field.Options)
}

func TestInferFieldCategoricalWithoutCategories(t *testing.T) {
	field := InferField(ColumnDescriptor{
		DisplayName: "Region",
		FieldType:   KindSelect,
		TotalCount:  10,
	})

	require.NotNil(t, field.Options)
	assert.Empty(t, field.Options)
}

func TestInferFieldEmail(t *testing.T) {
	field := InferField(ColumnDescriptor{
		DisplayName: "Email Address",
		FieldType:   KindEmail,
		TotalCount:  100,
	})

	assert.Equal(t, "Enter email address", field.Placeholder)
	require.NotNil(t, field.Validation)
	assert.Equal(t, `^[^@]+@[^@]+\.[^@]+$`, field.Validation.Pattern)
	assert.Equal(t, "Please enter a valid email address", field.Validation.Message)
}

func TestInferFieldNumber(t *testing.T) {
	field := InferField(ColumnDescriptor{
		DisplayName: "Salary",
		FieldType:   KindNumber,
		TotalCount:  100,
	})

	assert.Equal(t, "Enter number", field.Placeholder)
	require.NotNil(t, field.Validation)
	require.NotNil(t, field.Validation.Min)
	assert.Equal(t, 0.0, *field.Validation.Min)
	assert.Nil(t, field.Validation.Max)
}

func TestInferFieldDateAndTextarea(t *testing.T) {
	date := InferField(ColumnDescriptor{DisplayName: "Date of Birth", FieldType: KindDate, TotalCount: 10})
	assert.Equal(t, "Select date", date.Placeholder)
	assert.Nil(t, date.Validation)

	long := InferField(ColumnDescriptor{DisplayName: "Notes", FieldType: KindTextarea, TotalCount: 10})
	assert.Equal(t, "Enter notes...", long.Placeholder)
}

func TestInferFieldUnknownTagFallsThroughToText(t *testing.T) {
	field := InferField(ColumnDescriptor{
		DisplayName: "Mystery Column",
		FieldType:   "geojson",
		TotalCount:  10,
	})

	assert.Equal(t, "geojson", field.Kind) // tag preserved
	assert.Equal(t, "Enter mystery column", field.Placeholder)
	assert.Nil(t, field.Options)
	assert.Nil(t, field.Validation)

	blank := InferField(ColumnDescriptor{DisplayName: "Plain", TotalCount: 10})
	assert.Equal(t, KindText, blank.Kind)
}

func TestGenerateFormTitle(t *testing.T) {
	form := GenerateForm(nil, "employee_data.xlsx")
	assert.Equal(t, "Employee Data Form", form.Title)
	assert.Equal(t, "Auto-generated form from employee_data.xlsx", form.Description)
	assert.Empty(t, form.Fields)

	form = GenerateForm(nil, "census-report-2024.csv")
	assert.Equal(t, "Census Report 2024 Form", form.Title)
}

func TestGenerateFormFieldIDsUnique(t *testing.T) {
	columns := []ColumnDescriptor{
		{DisplayName: "A", FieldType: KindText, TotalCount: 10},
		{DisplayName: "B", FieldType: KindText, TotalCount: 10},
		{DisplayName: "C", FieldType: KindNumber, TotalCount: 10},
	}
	form := GenerateForm(columns, "data.csv")

	require.Len(t, form.Fields, 3)
	seen := make(map[string]bool)
	for _, f := range form.Fields {
		assert.NotEmpty(t, f.ID)
		assert.False(t, seen[f.ID], "duplicate field ID %s", f.ID)
		seen[f.ID] = true
	}
	assert.True(t, form.Settings.AllowMultipleSubmissions)
	assert.True(t, form.Settings.RequireAuthentication)
}

func TestNullPercentage(t *testing.T) {
	col := ColumnDescriptor{NullCount: 25, TotalCount: 200}
	assert.InDelta(t, 12.5, col.NullPercentage(), 0.0001)

	empty := ColumnDescriptor{}
	assert.Zero(t, empty.NullPercentage())
}
