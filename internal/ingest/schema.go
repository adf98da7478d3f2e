package ingest

import "strings"

// Kind classifies how a schema field is coerced during normalization and
// how its column is typed in the donors table.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindCurrency
	KindCategorical
)

// FieldSpec is one entry in the upload schema: the CSV label, the donors
// table column derived from it, the coercion kind and the value
// substituted when input is absent or unparsable.
type FieldSpec struct {
	Label   string
	Column  string
	Kind    Kind
	Default any
}

// FieldCount is the exact number of columns an upload must carry. The
// store-assigned id and user_id columns are not part of the uploaded
// schema.
const FieldCount = 125

// RequiredFields must be non-empty in every row of a batch.
var RequiredFields = []string{
	"First Name",
	"Last Name",
	"DS Rating",
	"Address",
	"City",
	"State",
	"Zip",
}

func text(label string) FieldSpec {
	return FieldSpec{Label: label, Column: columnName(label), Kind: KindText, Default: ""}
}

func num(label string) FieldSpec {
	return FieldSpec{Label: label, Column: columnName(label), Kind: KindInt, Default: 0}
}

func numDef(label string, def int) FieldSpec {
	return FieldSpec{Label: label, Column: columnName(label), Kind: KindInt, Default: def}
}

func flt(label string, def float64) FieldSpec {
	return FieldSpec{Label: label, Column: columnName(label), Kind: KindFloat, Default: def}
}

func cur(label string) FieldSpec {
	return FieldSpec{Label: label, Column: columnName(label), Kind: KindCurrency, Default: "$0"}
}

func curDef(label, def string) FieldSpec {
	return FieldSpec{Label: label, Column: columnName(label), Kind: KindCurrency, Default: def}
}

func cat(label, def string) FieldSpec {
	return FieldSpec{Label: label, Column: columnName(label), Kind: KindCategorical, Default: def}
}

// Schema is the single source of truth for the 125-field upload format.
// Labels match the CSV template headers verbatim. Several defaults are
// fixture values carried over from the data vendor's sample template
// (Estimated Capacity, the likelihood percentages, PGID, the home-value
// and income medians, Classic Quality Score); they are preserved exactly
// for compatibility and carry no domain meaning.
var Schema = []FieldSpec{
	text("First Name"),
	text("Middle Name"),
	text("Last Name"),
	text("DS Rating"),
	flt("Quality Score", 0),
	text("Profile"),
	num("RFM Total"),
	text("Last Gift Date"),
	cur("Total Gift Amount"),
	num("# Of Gifts"),
	num("Age"),
	text("Date Of Birth"),
	text("Phone Number"),
	text("Address"),
	text("Address 2"),
	text("City"),
	text("State"),
	text("Zip"),
	text("Client ID"),
	text("SP-First"),
	text("SP-Middle"),
	text("SP-Last"),
	text("Notes"),
	cur("Largest Gift Amount"),
	text("Largest Gift Date"),
	cur("Last Gift Amount"),
	text("First Date Range"),
	cur("First Gift Amount"),
	cur("Total Of Likely Matches"),
	num("# Of Gift Matches"),
	cat("Foundation", "No"),
	cur("Fnd Assets"),
	cat("NonProfit", "Maybe"),
	num("Political Likely Count"),
	cur("Political Likely Total"),
	cur("Maybe Total"),
	cur("Largest Gift Found"),
	cur("Largest Gift Found Lower Range"),
	text("Wealth-Based Capacity"),
	cur("Real Estate Est"),
	num("# Of Prop"),
	cat("Real Estate Trust", "No"),
	num("# of ST w/Prop"),
	cur("Zestimate Total"),
	num("Zestimate Count"),
	cur("LN Total"),
	num("LN Count"),
	cur("SEC Stock Value"),
	cat("SEC Stock or Insider", "No"),
	cat("Market Guide", "No"),
	cur("Market Guide Comp"),
	cur("Market Guide Options"),
	cur("Business Revenue"),
	cat("Business Affiliation", "Yes"),
	cat("Pension Admin", "No"),
	cur("Pension Assets"),
	curDef("Estimated Capacity", "$518,133"),
	numDef("Annual Fund Likelihood", 97),
	numDef("Major Gift Likelihood", 93),
	numDef("PGID", 7),
	cat("Vip Match", "No"),
	num("Inner Circle"),
	curDef("Average Home Value", "$178,037"),
	curDef("Median Household Income", "$57,308"),
	cat("Corp Tech", "No"),
	cat("FAA Pilots", "No"),
	cat("Airplane Owner", "No"),
	cat("Boat Owner", "No"),
	cat("Whos Who", "No"),
	num("RFM Recent Gift"),
	num("RFM Freq"),
	num("RFM Money"),
	flt("Classic Quality Score", 16.3),
	text("Prefix"),
	text("Suffix"),
	num("Higher Education Count"),
	cur("Higher Education Total"),
	num("Education Gift Count"),
	cur("Education Gift Amount"),
	num("Philanthropy and Grantmaking Count"),
	cur("Philanthropy and Grantmaking Total"),
	num("Healthcare Count"),
	cur("Healthcare Total"),
	num("Arts Gift Count"),
	cur("Arts Gift Amount"),
	num("Republican Gift Count"),
	cur("Republican Gift Total"),
	num("Democratic Gift Count"),
	cur("Democratic Gift Amount"),
	num("Other Political Count"),
	cur("Other Political Total"),
	num("Religion Count"),
	cur("Religion Total"),
	num("Society Benefit Count"),
	cur("Society Benefit Total"),
	num("Shale Wealth"),
	text("MBT Net Worth"),
	text("MBT Income Estimate"),
	text("MBT Highest Asset"),
	text("User1"),
	text("User2"),
	text("User3"),
	text("User4"),
	text("User5"),
	text("User6"),
	text("User7"),
	text("User8"),
	text("User9"),
	text("User10"),
	text("User11"),
	text("User12"),
	text("User13"),
	text("User14"),
	text("User15"),
	text("User16"),
	text("User17"),
	text("User18"),
	text("User19"),
	text("User20"),
	text("Email"),
	text("Assessed"),
	text("Assessment Questions"),
	text("IRS 990PF"),
	text("IRS PUB78"),
	text("Date Searched"),
}

// columnName maps a CSV label to its donors table column: lowercase,
// "#" spelled out, every other non-alphanumeric run collapsed to one
// underscore.
func columnName(label string) string {
	s := strings.ToLower(label)
	s = strings.ReplaceAll(s, "#", "num")
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
