package jsonb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Format pretty-prints a JSON document with two-space indentation.
// Key order is preserved.
func Format(value string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(value), "", "  "); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}

// Compact strips insignificant whitespace from a JSON document
func Compact(value string) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(value)); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}

// Display returns value pretty-printed when it is a JSON document and
// unchanged otherwise
func Display(value string) string {
	if !IsDocument(value) {
		return value
	}
	pretty, err := Format(value)
	if err != nil {
		return value
	}
	return pretty
}
