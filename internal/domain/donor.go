package domain

import (
	"encoding/json"
	"time"
)

// DonorRecord is one prospective or existing donor. The 125 upload fields
// live in Fields keyed by their CSV label; identity and ownership columns
// are assigned by the store and never appear in the uploaded schema.
type DonorRecord struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	Fields    map[string]any
}

// Str returns a string field by its CSV label, or "" when absent or
// not a string.
func (d DonorRecord) Str(label string) string {
	if v, ok := d.Fields[label].(string); ok {
		return v
	}
	return ""
}

// Int returns an integer field by its CSV label, or 0.
func (d DonorRecord) Int(label string) int {
	switch v := d.Fields[label].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float returns a floating-point field by its CSV label, or 0.
func (d DonorRecord) Float(label string) float64 {
	switch v := d.Fields[label].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// MarshalJSON flattens the record so clients see one object keyed by the
// CSV labels plus id, user_id and created_at.
func (d DonorRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["id"] = d.ID
	out["user_id"] = d.OwnerID
	if !d.CreatedAt.IsZero() {
		out["created_at"] = d.CreatedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON. Field values arrive as the
// JSON decoder produces them (string or float64); repositories coerce by
// schema kind before persisting.
func (d *DonorRecord) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"].(string); ok {
		d.ID = v
	}
	if v, ok := raw["user_id"].(string); ok {
		d.OwnerID = v
	}
	if v, ok := raw["created_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			d.CreatedAt = t
		}
	}
	delete(raw, "id")
	delete(raw, "user_id")
	delete(raw, "created_at")
	d.Fields = raw
	return nil
}
