package ingest

import (
	"strconv"
	"strings"

	"donorpath/internal/domain"
)

// Normalize maps each raw row into a DonorRecord, coercing every schema
// field by its declared kind. This step never fails: unparsable or
// absent input takes the field's default. A numeric value that parses to
// zero also takes the default; the non-zero placeholder defaults depend
// on that rule.
func Normalize(rows *RawRows) []domain.DonorRecord {
	donors := make([]domain.DonorRecord, 0, len(rows.Rows))
	for _, row := range rows.Rows {
		fields := make(map[string]any, len(Schema))
		for _, spec := range Schema {
			fields[spec.Label] = coerce(spec, row[spec.Label])
		}
		donors = append(donors, domain.DonorRecord{Fields: fields})
	}
	return donors
}

// Coerce applies one field's normalization rule to a raw value.
func Coerce(spec FieldSpec, value string) any { return coerce(spec, value) }

func coerce(spec FieldSpec, value string) any {
	switch spec.Kind {
	case KindInt:
		if n, ok := leadingInt(value); ok && n != 0 {
			return n
		}
		return spec.Default
	case KindFloat:
		if f, ok := leadingFloat(value); ok && f != 0 {
			return f
		}
		return spec.Default
	case KindCurrency:
		if strings.TrimSpace(value) == "" {
			return spec.Default
		}
		return FormatCurrency(value)
	case KindCategorical:
		if value == "" {
			return spec.Default.(string)
		}
		return value
	default:
		return value
	}
}

// FormatCurrency ensures the display format: a leading "$". Already
// prefixed values pass through unchanged; empty input becomes "$0".
func FormatCurrency(value string) string {
	if value == "" {
		return "$0"
	}
	if strings.HasPrefix(value, "$") {
		return value
	}
	return "$" + value
}

// leadingInt parses the longest base-10 integer prefix of s, so "12abc"
// yields 12 and "abc" fails. Prefixes that overflow int fail too, so
// the field falls back to its default.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// leadingFloat parses the longest floating-point prefix of s.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	intDigits := i > start
	frac := 0.0
	scale := 1.0
	if i < len(s) && s[i] == '.' {
		i++
		fracStart := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			frac = frac*10 + float64(s[i]-'0')
			scale *= 10
			i++
		}
		if !intDigits && i == fracStart {
			return 0, false
		}
	} else if !intDigits {
		return 0, false
	}
	n := 0.0
	for _, c := range s[start:i] {
		if c == '.' {
			break
		}
		n = n*10 + float64(c-'0')
	}
	n += frac / scale
	if len(s) > 0 && s[0] == '-' {
		n = -n
	}
	return n, true
}
