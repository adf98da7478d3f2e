package infra

import (
	"context"
	"strings"
	"testing"

	"donorpath/internal/sqlinline"
)

func TestExtractMarkerSplitsMarkerFromStatement(t *testing.T) {
	marker, body, err := extractMarker(sqlinline.QSelectPing)
	if err != nil {
		t.Fatalf("extractMarker: %v", err)
	}
	if !markerRegexp.MatchString("--sql " + marker) {
		t.Fatalf("marker = %q", marker)
	}
	if strings.Contains(body, "--sql") {
		t.Fatalf("body still carries the marker: %q", body)
	}
}

func TestExtractMarkerRejectsUnmarkedStatements(t *testing.T) {
	for _, query := range []string{
		"select 1",
		"-- not a marker\nselect 1",
		"--sql not-a-uuid\nselect 1",
	} {
		if _, _, err := extractMarker(query); err == nil {
			t.Fatalf("extractMarker(%q) accepted an unmarked statement", query)
		}
	}
}

func TestErrorRowSurfacesMarkerError(t *testing.T) {
	runner := &SQLRunner{}
	row := runner.QueryRow(context.Background(), "select 1")
	if err := row.Scan(); err == nil {
		t.Fatal("expected marker error from scan")
	}
}
