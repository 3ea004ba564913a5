// Package jsonb recognizes JSON documents stored in text columns and
// formats them for display.
package jsonb

import (
	"encoding/json"
	"strings"
)

// IsDocument reports whether value is a JSON object or array.
// Scalars are left alone: "1" or "true" in a text column is not worth reformatting.
func IsDocument(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) < 2 {
		return false
	}

	first, last := value[0], value[len(value)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}
	return json.Valid([]byte(value))
}
