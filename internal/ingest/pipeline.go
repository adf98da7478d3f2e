package ingest

import "donorpath/internal/domain"

// Run executes the full ingestion pipeline in its fixed order:
// Parse, ValidateSchema, ValidateRows, Normalize. The first failing
// stage short-circuits the rest and its diagnostics are the only ones
// surfaced. No partial batch is ever produced: the caller gets either
// every row normalized or an error and nothing to persist.
func Run(raw string) ([]domain.DonorRecord, error) {
	rows, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateSchema(rows); err != nil {
		return nil, err
	}
	if err := ValidateRows(rows); err != nil {
		return nil, err
	}
	return Normalize(rows), nil
}
