package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRows(column []string) [][]string {
	rows := make([][]string, len(column))
	for i, v := range column {
		rows[i] = []string{v}
	}
	return rows
}

func repeatCycle(values []string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, values[i%len(values)])
	}
	return out
}

func TestClassifyNumericColumn(t *testing.T) {
	cols := AnalyzeColumns([]string{"Salary"}, makeRows([]string{"50000", "75000", "61000.50"}))
	require.Len(t, cols, 1)
	assert.Equal(t, KindNumber, cols[0].FieldType)
	assert.Equal(t, "numeric", cols[0].DataType)
}

func TestClassifyBooleanColumn(t *testing.T) {
	cols := AnalyzeColumns([]string{"Is Active"}, makeRows([]string{"true", "false", "True", "0", "1"}))
	require.Len(t, cols, 1)
	assert.Equal(t, KindCheckbox, cols[0].FieldType)
	assert.Equal(t, "boolean", cols[0].DataType)
}

func TestClassifyDateColumn(t *testing.T) {
	cols := AnalyzeColumns([]string{"Date of Birth"}, makeRows([]string{"1985-03-15", "1990-07-22", "1988-11-08"}))
	require.Len(t, cols, 1)
	assert.Equal(t, KindDate, cols[0].FieldType)
	assert.Equal(t, "date_of_birth", cols[0].Name)
}

func TestClassifyEmailColumn(t *testing.T) {
	// More than half must match the pattern; the odd one out does not
	// flip the column back to text.
	values := []string{"john@example.com", "jane@example.com", "mike@example.com", "not-an-email"}
	cols := AnalyzeColumns([]string{"Email Address"}, makeRows(values))
	require.Len(t, cols, 1)
	assert.Equal(t, KindEmail, cols[0].FieldType)
}

func TestClassifyCategoricalColumn(t *testing.T) {
	// 3 distinct values over 60 rows: unique ratio 0.05.
	values := repeatCycle([]string{"HR", "IT", "Finance"}, 60)
	cols := AnalyzeColumns([]string{"Department"}, makeRows(values))
	require.Len(t, cols, 1)
	assert.Equal(t, KindSelect, cols[0].FieldType)
	assert.Equal(t, "categorical", cols[0].DataType)
	// Categories are distinct values, sorted.
	assert.Equal(t, []string{"Finance", "HR", "IT"}, cols[0].Categories)
}

func TestClassifyLongTextColumn(t *testing.T) {
	long := strings.Repeat("The citizen reported an issue with local infrastructure. ", 3)
	cols := AnalyzeColumns([]string{"Notes"}, makeRows([]string{long, long + "More detail.", long}))
	require.Len(t, cols, 1)
	assert.Equal(t, KindTextarea, cols[0].FieldType)
}

func TestClassifyDefaultsToText(t *testing.T) {
	cols := AnalyzeColumns([]string{"Full Name"}, makeRows([]string{"John Doe", "Jane Smith", "Mike Johnson"}))
	require.Len(t, cols, 1)
	assert.Equal(t, KindText, cols[0].FieldType)

	empty := AnalyzeColumns([]string{"Empty"}, makeRows([]string{"", "", ""}))
	require.Len(t, empty, 1)
	assert.Equal(t, KindText, empty[0].FieldType)
	assert.Equal(t, 3, empty[0].NullCount)
}

func TestAnalyzeColumnsCountsNulls(t *testing.T) {
	values := []string{"a1", "", "b2", "", "c3", "d4", "e5", "f6", "g7", "h8"}
	cols := AnalyzeColumns([]string{"Code"}, makeRows(values))
	require.Len(t, cols, 1)

	col := cols[0]
	assert.Equal(t, 2, col.NullCount)
	assert.Equal(t, 10, col.TotalCount)
	assert.Equal(t, 8, col.UniqueCount)
	assert.InDelta(t, 20.0, col.NullPercentage(), 0.0001)
	assert.Len(t, col.SampleValues, 5)
	assert.Equal(t, "a1", col.SampleValues[0])
}

func TestAnalyzeCSV(t *testing.T) {
	csvData := `Full Name,Email Address,Salary
John Doe,john@example.com,50000
Jane Smith,jane@example.com,75000
Mike Johnson,,61000
`
	result, err := AnalyzeCSV(strings.NewReader(csvData), "employee_data.csv")
	require.NoError(t, err)

	assert.Equal(t, "employee_data.csv", result.Filename)
	assert.Equal(t, 3, result.RowCount)
	assert.Equal(t, 3, result.ColumnCount)
	require.Len(t, result.Columns, 3)

	assert.Equal(t, "full_name", result.Columns[0].Name)
	assert.Equal(t, "Full Name", result.Columns[0].DisplayName)
	assert.Equal(t, 1, result.Columns[1].NullCount)
	assert.Equal(t, KindNumber, result.Columns[2].FieldType)

	require.Len(t, result.SampleRows, 3)
	assert.Equal(t, "John Doe", result.SampleRows[0]["Full Name"])
}

func TestAnalyzeCSVRejectsEmptyInput(t *testing.T) {
	_, err := AnalyzeCSV(strings.NewReader(""), "empty.csv")
	assert.Error(t, err)
}

func TestCleanColumnName(t *testing.T) {
	assert.Equal(t, "date_of_birth", cleanColumnName("Date of Birth"))
	assert.Equal(t, "phone_number", cleanColumnName("Phone-Number"))
	assert.Equal(t, "salary_usd", cleanColumnName("Salary (USD)"))
}
