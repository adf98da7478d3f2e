package ingest

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDiag is one structural CSV problem, addressed by 1-based data row.
type ParseDiag struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseError reports malformed CSV structure. It carries one diagnostic
// per bad row rather than stopping at the first.
type ParseError struct {
	Diags []ParseDiag
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("CSV parsing errors:")
	for _, d := range e.Diags {
		fmt.Fprintf(&sb, "\nRow %d: %s", d.Row, d.Message)
	}
	return sb.String()
}

// SchemaError reports a header-level problem: an empty file, a wrong
// column count, or missing required columns.
type SchemaError struct {
	Message  string
	Expected int
	Found    int
	Missing  []string
}

func (e *SchemaError) Error() string { return e.Message }

// FieldIssue lists every 1-based row where one required field is empty.
type FieldIssue struct {
	Field   string `json:"field"`
	Records []int  `json:"records"`
}

// RowValidationError is the full per-field report of empty required
// values across a batch. It is only produced after every row has been
// checked, so the user can fix all issues in one pass.
type RowValidationError struct {
	Issues []FieldIssue
}

func (e *RowValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("Validation issues found:")
	for _, issue := range e.Issues {
		fmt.Fprintf(&sb, "\n%s: Missing data in records %s", issue.Field, joinInts(issue.Records))
	}
	return sb.String()
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
