package api

import (
	"encoding/json"
	"fmt"
	"sort"
)

// NetworkError indicates that no response reached the client: connectivity
// failure, timeout, or a response too malformed to interpret. Callers must
// treat "no response" and "error response" as different outcomes.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError indicates invalid or expired credentials (HTTP 401, or an empty
// response from an authenticated endpoint).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// NotFoundError indicates the requested resource does not exist (HTTP 404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return e.Message
}

// ValidationError indicates the server rejected the request (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "invalid request"
	}
	return e.Message
}

// ConflictError indicates a field value is already taken (HTTP 207).
// Fields names the conflicting fields, e.g. "email", "username".
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	if len(e.Fields) == 0 {
		return "already taken"
	}
	msg := "already taken:"
	for _, f := range e.Fields {
		msg += " " + f
	}
	return msg
}

// Has reports whether the named field is among the conflicting ones.
func (e *ConflictError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// conflictFields are the registration fields the server reports on 207.
var conflictFields = []string{"email", "username"}

// Classify maps a response to a typed error, or nil for a success status.
// 207 is nominally a success status but the API uses it to report
// field conflicts, so it classifies as a ConflictError.
func Classify(resp *Response) error {
	switch {
	case resp.Status == 207:
		return &ConflictError{Fields: decodeConflictFields(resp.Body)}
	case resp.Status >= 200 && resp.Status < 300:
		return nil
	case resp.Status == 400:
		return &ValidationError{Message: decodeMessage(resp.Body)}
	case resp.Status == 401:
		return &AuthError{Message: decodeMessage(resp.Body)}
	case resp.Status == 404:
		return &NotFoundError{Message: decodeMessage(resp.Body)}
	default:
		return fmt.Errorf("unexpected status %d", resp.Status)
	}
}

// decodeConflictFields extracts the conflicting field names from a 207 body.
// The registration endpoint reports `{"email": ..., "username": ...}` with
// only the taken fields present.
func decodeConflictFields(body []byte) []string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil
	}
	var fields []string
	for _, f := range conflictFields {
		if _, ok := m[f]; ok {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)
	return fields
}

// decodeMessage pulls a human-readable message out of an error body.
// The API is inconsistent about the key it uses.
func decodeMessage(body []byte) string {
	var m struct {
		Message    string `json:"message"`
		ErrMessage string `json:"errMessage"`
		Error      string `json:"error"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	if m.ErrMessage != "" {
		return m.ErrMessage
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}
