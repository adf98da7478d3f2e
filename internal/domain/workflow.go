package domain

import (
	"encoding/json"
	"errors"
)

// EncodeWorkflowAnswer normalizes a questionnaire answer for storage.
// Plain text is stored as-is; multi-select answers arrive as JSON
// string arrays and are stored as their JSON encoding.
func EncodeWorkflowAnswer(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		encoded, err := json.Marshal(list)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
	return "", errors.New("answer must be a string or an array of strings")
}

// ParseResponse is the inverse of EncodeWorkflowAnswer: a stored JSON
// string array comes back as the list, everything else as plain text.
func (w WorkflowResponse) ParseResponse() (string, []string) {
	var list []string
	if err := json.Unmarshal([]byte(w.Response), &list); err == nil {
		return "", list
	}
	return w.Response, nil
}
