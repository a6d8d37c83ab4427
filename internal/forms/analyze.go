package forms

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// AnalysisResult summarizes an uploaded tabular source: per-column
// statistics for field inference plus a small row sample for preview.
type AnalysisResult struct {
	Filename    string              `json:"filename"`
	RowCount    int                 `json:"rowCount"`
	ColumnCount int                 `json:"columnCount"`
	Columns     []ColumnDescriptor  `json:"columns"`
	SampleRows  []map[string]string `json:"sampleRows"`
	ProcessedAt time.Time           `json:"processedAt"`
}

var emailRegexp = regexp.MustCompile(EmailPattern)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
}

// AnalyzeCSV reads a CSV source (first record is the header) and
// produces column descriptors for field inference.
func AnalyzeCSV(r io.Reader, filename string) (*AnalysisResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("source contains no header row")
	}

	headers := records[0]
	rows := records[1:]

	result := &AnalysisResult{
		Filename:    filename,
		RowCount:    len(rows),
		ColumnCount: len(headers),
		Columns:     AnalyzeColumns(headers, rows),
		SampleRows:  sampleRows(headers, rows, 5),
		ProcessedAt: time.Now().UTC(),
	}
	return result, nil
}

// AnalyzeColumns computes per-column statistics and classifies each
// column into a field type tag.
func AnalyzeColumns(headers []string, rows [][]string) []ColumnDescriptor {
	columns := make([]ColumnDescriptor, 0, len(headers))

	for i, header := range headers {
		values := make([]string, 0, len(rows))
		nullCount := 0
		for _, row := range rows {
			v := ""
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			if v == "" {
				nullCount++
				continue
			}
			values = append(values, v)
		}

		unique := uniqueValues(values)
		tag := classifyColumn(values, unique)

		col := ColumnDescriptor{
			Name:        cleanColumnName(header),
			DisplayName: header,
			DataType:    dataTypeForTag(tag),
			FieldType:   tag,
			NullCount:   nullCount,
			UniqueCount: len(unique),
			TotalCount:  len(rows),
		}
		for _, v := range values[:minInt(5, len(values))] {
			col.SampleValues = append(col.SampleValues, v)
		}
		if tag == KindSelect {
			categories := make([]string, len(unique))
			copy(categories, unique)
			sort.Strings(categories)
			col.Categories = categories
		}
		columns = append(columns, col)
	}
	return columns
}

// classifyColumn determines the best field type tag for a column from
// its non-null values. Checks run in a fixed priority order; columns
// matching nothing fall back to plain text.
func classifyColumn(values, unique []string) string {
	if len(values) == 0 {
		return KindText
	}

	if allBoolean(values) {
		return KindCheckbox
	}
	if allNumeric(values) {
		return KindNumber
	}
	if looksLikeDates(values) {
		return KindDate
	}
	if looksLikeEmails(values) {
		return KindEmail
	}

	// Categorical: few distinct values relative to volume, and a small
	// absolute category count.
	uniqueRatio := float64(len(unique)) / float64(len(values))
	if uniqueRatio < 0.1 && len(unique) <= 20 {
		return KindSelect
	}

	if averageLength(values) > 100 {
		return KindTextarea
	}
	return KindText
}

func allBoolean(values []string) bool {
	for _, v := range values {
		switch strings.ToLower(v) {
		case "true", "false", "1", "0":
		default:
			return false
		}
	}
	return true
}

func allNumeric(values []string) bool {
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

// looksLikeDates probes the first few values against common layouts.
func looksLikeDates(values []string) bool {
	probe := values[:minInt(10, len(values))]
	for _, v := range probe {
		if !parsesAsDate(v) {
			return false
		}
	}
	return true
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// looksLikeEmails requires at least one "@" somewhere and more than half
// of the values matching the email pattern.
func looksLikeEmails(values []string) bool {
	any := false
	matches := 0
	for _, v := range values {
		if strings.Contains(v, "@") {
			any = true
		}
		if emailRegexp.MatchString(v) {
			matches++
		}
	}
	return any && matches*2 > len(values)
}

func averageLength(values []string) float64 {
	total := 0
	for _, v := range values {
		total += len(v)
	}
	return float64(total) / float64(len(values))
}

func uniqueValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}

// cleanColumnName lowercases a header and keeps only alphanumerics and
// underscores, so "Date of Birth" becomes "date_of_birth".
func cleanColumnName(header string) string {
	name := strings.ToLower(strings.TrimSpace(header))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)

	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func dataTypeForTag(tag string) string {
	switch tag {
	case KindNumber:
		return "numeric"
	case KindDate:
		return "date"
	case KindCheckbox:
		return "boolean"
	case KindSelect:
		return "categorical"
	default:
		return "text"
	}
}

func sampleRows(headers []string, rows [][]string, n int) []map[string]string {
	samples := make([]map[string]string, 0, n)
	for _, row := range rows[:minInt(n, len(rows))] {
		sample := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				sample[header] = row[i]
			} else {
				sample[header] = ""
			}
		}
		samples = append(samples, sample)
	}
	return samples
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
