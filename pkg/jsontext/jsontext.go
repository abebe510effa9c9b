// Package jsontext checks that free-form rule payloads are well-formed JSON.
//
// The payloads are stored verbatim and never interpreted, so the only
// requirement is that the text is exactly one JSON value, optionally
// surrounded by whitespace.
package jsontext

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SyntaxError describes why a string is not a JSON document.
type SyntaxError struct {
	Offset int64
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("invalid JSON at offset %d: %s", e.Offset, e.Reason)
	}
	return "invalid JSON: " + e.Reason
}

// Validate returns nil when s is a single complete JSON value.
func Validate(s string) error {
	if json.Valid([]byte(s)) {
		return nil
	}

	// Re-decode only to recover a readable reason.
	var raw json.RawMessage
	err := json.Unmarshal([]byte(s), &raw)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SyntaxError{Offset: syntaxErr.Offset, Reason: syntaxErr.Error()}
	}
	if err != nil {
		return &SyntaxError{Reason: err.Error()}
	}
	return &SyntaxError{Reason: "malformed document"}
}

// IsValid is the boolean form of Validate.
func IsValid(s string) bool {
	return Validate(s) == nil
}
