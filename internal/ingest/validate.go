package ingest

import (
	"fmt"
	"strings"
)

// ValidateSchema checks the header shape before any row-level work: the
// file must have rows, exactly FieldCount columns, and every required
// column present. The whole batch is rejected on the first header
// problem found.
func ValidateSchema(rows *RawRows) error {
	if rows == nil || len(rows.Rows) == 0 {
		return &SchemaError{Message: "The CSV file appears to be empty"}
	}
	if len(rows.Header) != FieldCount {
		return &SchemaError{
			Message: fmt.Sprintf(
				"Invalid CSV format: Expected %d columns but found %d. Please ensure you're using the correct CSV template.",
				FieldCount, len(rows.Header)),
			Expected: FieldCount,
			Found:    len(rows.Header),
		}
	}
	present := make(map[string]struct{}, len(rows.Header))
	for _, name := range rows.Header {
		present[name] = struct{}{}
	}
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := present[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{
			Message: fmt.Sprintf(
				"Missing required fields: %s. Please check your CSV file.",
				strings.Join(missing, ", ")),
			Expected: FieldCount,
			Found:    len(rows.Header),
			Missing:  missing,
		}
	}
	return nil
}

// ValidateRows flags every (required field, row) pair whose value is
// empty or whitespace-only. The report is complete, never fail-fast:
// all violations across all rows are collected before returning.
// Row numbers are 1-based.
func ValidateRows(rows *RawRows) error {
	var issues []FieldIssue
	for _, field := range RequiredFields {
		var records []int
		for i, row := range rows.Rows {
			if strings.TrimSpace(row[field]) == "" {
				records = append(records, i+1)
			}
		}
		if len(records) > 0 {
			issues = append(issues, FieldIssue{Field: field, Records: records})
		}
	}
	if len(issues) > 0 {
		return &RowValidationError{Issues: issues}
	}
	return nil
}
