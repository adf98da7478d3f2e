package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// RawRows is the parsed but unvalidated upload: the trimmed header and
// one label-keyed map per data row.
type RawRows struct {
	Header []string
	Rows   []map[string]string
}

// Parse splits CSV text into header and rows. Quoted fields and embedded
// newlines are honored, blank lines are skipped, and header cells are
// trimmed of surrounding whitespace. Structural problems (unbalanced
// quotes, ragged rows) are collected into a single ParseError, one
// diagnostic per bad data row.
func Parse(raw string) (*RawRows, error) {
	r := csv.NewReader(strings.NewReader(raw))

	header, err := r.Read()
	if err == io.EOF {
		return &RawRows{}, nil
	}
	if err != nil {
		return nil, &ParseError{Diags: []ParseDiag{{Row: 1, Message: csvMessage(err)}}}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	out := &RawRows{Header: header}
	var diags []ParseDiag
	rowNum := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			diags = append(diags, ParseDiag{Row: rowNum, Message: csvMessage(err)})
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	if len(diags) > 0 {
		return nil, &ParseError{Diags: diags}
	}
	return out, nil
}

func csvMessage(err error) string {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Err.Error()
	}
	return err.Error()
}
