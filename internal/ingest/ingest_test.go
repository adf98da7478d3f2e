package ingest

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildCSV renders a CSV with the full 125-column header and one line
// per row map; unlisted fields are filled from fill.
func buildCSV(t *testing.T, fill string, rows ...map[string]string) string {
	t.Helper()
	var sb strings.Builder
	for i, spec := range Schema {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(csvQuote(spec.Label))
	}
	sb.WriteByte('\n')
	for _, row := range rows {
		for i, spec := range Schema {
			if i > 0 {
				sb.WriteByte(',')
			}
			v, ok := row[spec.Label]
			if !ok {
				v = fill
			}
			sb.WriteString(csvQuote(v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func csvQuote(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func TestSchemaHasExactlyExpectedFieldCount(t *testing.T) {
	if len(Schema) != FieldCount {
		t.Fatalf("schema has %d fields, want %d", len(Schema), FieldCount)
	}
	seen := map[string]struct{}{}
	for _, spec := range Schema {
		if _, dup := seen[spec.Label]; dup {
			t.Fatalf("duplicate label %q", spec.Label)
		}
		seen[spec.Label] = struct{}{}
		if spec.Column == "" {
			t.Fatalf("field %q has empty column name", spec.Label)
		}
	}
}

func TestColumnNames(t *testing.T) {
	cases := map[string]string{
		"First Name":     "first_name",
		"# Of Gifts":     "num_of_gifts",
		"SP-First":       "sp_first",
		"# of ST w/Prop": "num_of_st_w_prop",
		"IRS 990PF":      "irs_990pf",
		"Wealth-Based Capacity": "wealth_based_capacity",
	}
	for label, want := range cases {
		if got := columnName(label); got != want {
			t.Errorf("columnName(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestValidateSchemaRejectsWrongColumnCount(t *testing.T) {
	rows := &RawRows{
		Header: []string{"First Name", "Last Name"},
		Rows:   []map[string]string{{"First Name": "Ada"}},
	}
	err := ValidateSchema(rows)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Expected != FieldCount || schemaErr.Found != 2 {
		t.Fatalf("expected/found = %d/%d, want %d/2", schemaErr.Expected, schemaErr.Found, FieldCount)
	}
	if !strings.Contains(schemaErr.Message, "Expected 125 columns but found 2") {
		t.Fatalf("message does not name counts: %q", schemaErr.Message)
	}
}

func TestValidateSchemaRejectsEmptyFile(t *testing.T) {
	err := ValidateSchema(&RawRows{Header: []string{"First Name"}})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !strings.Contains(schemaErr.Message, "empty") {
		t.Fatalf("unexpected message: %q", schemaErr.Message)
	}
}

func TestValidateSchemaListsMissingRequiredFields(t *testing.T) {
	header := make([]string, 0, FieldCount)
	for _, spec := range Schema {
		switch spec.Label {
		case "State", "Zip":
			header = append(header, spec.Label+" Renamed")
		default:
			header = append(header, spec.Label)
		}
	}
	rows := &RawRows{Header: header, Rows: []map[string]string{{}}}
	err := ValidateSchema(rows)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 2 || schemaErr.Missing[0] != "State" || schemaErr.Missing[1] != "Zip" {
		t.Fatalf("missing = %v, want [State Zip]", schemaErr.Missing)
	}
	if !strings.Contains(schemaErr.Message, "State, Zip") {
		t.Fatalf("message does not list fields: %q", schemaErr.Message)
	}
}

func TestValidateRowsCollectsEveryViolation(t *testing.T) {
	rows := &RawRows{Header: fullHeader()}
	for i := 0; i < 10; i++ {
		row := map[string]string{}
		for _, field := range RequiredFields {
			row[field] = "x"
		}
		// Rows 2, 5 and 9 lose City; row 5 also loses State.
		switch i {
		case 1, 4, 8:
			row["City"] = "  "
		}
		if i == 4 {
			row["State"] = ""
		}
		rows.Rows = append(rows.Rows, row)
	}
	err := ValidateRows(rows)
	var rowErr *RowValidationError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowValidationError, got %v", err)
	}
	byField := map[string][]int{}
	for _, issue := range rowErr.Issues {
		byField[issue.Field] = issue.Records
	}
	if got := byField["City"]; fmt.Sprint(got) != "[2 5 9]" {
		t.Fatalf("City records = %v, want [2 5 9]", got)
	}
	if got := byField["State"]; fmt.Sprint(got) != "[5]" {
		t.Fatalf("State records = %v, want [5]", got)
	}
	if len(rowErr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(rowErr.Issues))
	}
}

func fullHeader() []string {
	header := make([]string, len(Schema))
	for i, spec := range Schema {
		header[i] = spec.Label
	}
	return header
}

func TestParseHonorsQuotedFieldsAndTrimsHeader(t *testing.T) {
	raw := " A , B \n\"1,5\",\"line\nbreak\"\n\nx,y\n"
	rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rows.Header[0] != "A" || rows.Header[1] != "B" {
		t.Fatalf("header not trimmed: %v", rows.Header)
	}
	if len(rows.Rows) != 2 {
		t.Fatalf("expected 2 rows (blank line skipped), got %d", len(rows.Rows))
	}
	if rows.Rows[0]["A"] != "1,5" || rows.Rows[0]["B"] != "line\nbreak" {
		t.Fatalf("quoted values mishandled: %v", rows.Rows[0])
	}
}

func TestParseReportsStructuralErrorsPerRow(t *testing.T) {
	raw := "A,B\nok,fine\nbad\"quote,x\n"
	_, err := Parse(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if len(parseErr.Diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	if parseErr.Diags[0].Row != 2 {
		t.Fatalf("diagnostic row = %d, want 2", parseErr.Diags[0].Row)
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	rows := &RawRows{Header: fullHeader(), Rows: []map[string]string{{}}}
	donors := Normalize(rows)
	if len(donors) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(donors))
	}
	d := donors[0]
	checks := []struct {
		label string
		want  any
	}{
		{"First Name", ""},
		{"Total Gift Amount", "$0"},
		{"# Of Gifts", 0},
		{"Foundation", "No"},
		{"NonProfit", "Maybe"},
		{"Business Affiliation", "Yes"},
		{"Estimated Capacity", "$518,133"},
		{"Annual Fund Likelihood", 97},
		{"Major Gift Likelihood", 93},
		{"PGID", 7},
		{"Average Home Value", "$178,037"},
		{"Median Household Income", "$57,308"},
		{"Classic Quality Score", 16.3},
	}
	for _, c := range checks {
		if got := d.Fields[c.label]; got != c.want {
			t.Errorf("%s = %#v, want %#v", c.label, got, c.want)
		}
	}
}

func TestNormalizeCoercesValuesAndRoundTripsCurrency(t *testing.T) {
	row := map[string]string{
		"Total Gift Amount":      "1500",
		"Largest Gift Amount":    "$2,500",
		"# Of Gifts":             "12",
		"Age":                    "44abc",
		"Quality Score":          "8.25",
		"Annual Fund Likelihood": "55",
		"Foundation":             "Yes",
		"Notes":                  "keep",
	}
	rows := &RawRows{Header: fullHeader(), Rows: []map[string]string{row}}
	d := Normalize(rows)[0]

	if got := d.Str("Total Gift Amount"); got != "$1500" {
		t.Errorf("Total Gift Amount = %q, want $1500", got)
	}
	if got := d.Str("Largest Gift Amount"); got != "$2,500" {
		t.Errorf("Largest Gift Amount = %q, want $2,500 unchanged", got)
	}
	if got := d.Int("# Of Gifts"); got != 12 {
		t.Errorf("# Of Gifts = %d, want 12", got)
	}
	if got := d.Int("Age"); got != 44 {
		t.Errorf("Age = %d, want 44 (leading digits)", got)
	}
	if got := d.Float("Quality Score"); got != 8.25 {
		t.Errorf("Quality Score = %v, want 8.25", got)
	}
	if got := d.Int("Annual Fund Likelihood"); got != 55 {
		t.Errorf("Annual Fund Likelihood = %d, want 55", got)
	}
	if got := d.Str("Foundation"); got != "Yes" {
		t.Errorf("Foundation = %q, want Yes", got)
	}
	if got := d.Str("Notes"); got != "keep" {
		t.Errorf("Notes = %q, want keep", got)
	}

	if got := FormatCurrency(d.Str("Total Gift Amount")); got != "$1500" {
		t.Errorf("FormatCurrency round-trip = %q, want $1500", got)
	}
	if got := FormatCurrency("$1500"); got != "$1500" {
		t.Errorf("FormatCurrency($1500) = %q, want unchanged", got)
	}
}

func TestCoerceOverflowingDigitRunTakesDefault(t *testing.T) {
	long := strings.Repeat("9", 30)
	if n, ok := leadingInt(long); ok {
		t.Fatalf("leadingInt(%q) = %d, want failure", long, n)
	}
	if n, ok := leadingInt("-" + long); ok {
		t.Fatalf("leadingInt(-%q) = %d, want failure", long, n)
	}
	if n, ok := leadingInt("12abc"); !ok || n != 12 {
		t.Fatalf("leadingInt(12abc) = %d, %v", n, ok)
	}
	for _, spec := range Schema {
		if spec.Label != "Annual Fund Likelihood" {
			continue
		}
		if got := Coerce(spec, long); got != spec.Default {
			t.Fatalf("Coerce(long run) = %#v, want default %#v", got, spec.Default)
		}
	}
}

func TestRunShortCircuitsOnRowValidation(t *testing.T) {
	good := map[string]string{}
	bad := map[string]string{"State": ""}
	for _, field := range RequiredFields {
		good[field] = "v"
		if field != "State" {
			bad[field] = "v"
		}
	}
	raw := buildCSV(t, "", good, bad)

	donors, err := Run(raw)
	if donors != nil {
		t.Fatalf("expected no donors, got %d", len(donors))
	}
	var rowErr *RowValidationError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowValidationError, got %v", err)
	}
	if len(rowErr.Issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d", len(rowErr.Issues))
	}
	issue := rowErr.Issues[0]
	if issue.Field != "State" || fmt.Sprint(issue.Records) != "[2]" {
		t.Fatalf("issue = %+v, want State [2]", issue)
	}
}

func TestRunNormalizesValidUpload(t *testing.T) {
	row := map[string]string{"Age": "38", "Total Gift Amount": "900"}
	for _, field := range RequiredFields {
		row[field] = "v"
	}
	donors, err := Run(buildCSV(t, "", row))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(donors) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(donors))
	}
	if len(donors[0].Fields) != FieldCount {
		t.Fatalf("donor has %d fields, want %d", len(donors[0].Fields), FieldCount)
	}
	if donors[0].Str("Total Gift Amount") != "$900" {
		t.Fatalf("Total Gift Amount = %q", donors[0].Str("Total Gift Amount"))
	}
}
