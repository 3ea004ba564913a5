// Package command parses the line typed into the input box.
package command

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is what a submitted line asks for
type Kind int

const (
	// Exec runs a statement that returns no rows
	Exec Kind = iota
	// Query runs a statement and opens its result in a new tab
	Query
)

func (k Kind) String() string {
	switch k {
	case Exec:
		return "Exec"
	case Query:
		return "Query"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keyword is the word that selects k at the start of a line
func (k Kind) Keyword() string {
	if k == Query {
		return "query"
	}
	return "exec"
}

// ErrMissingKind is returned for an empty or blank line
var ErrMissingKind = errors.New("missing command: expected exec or query")

// UnknownKindError is returned when the first word is not a command
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown command %q: expected exec or query", e.Kind)
}

// Parse splits line into its command kind and argument text.
// The argument words are each followed by a newline, so
// "exec delete from t" yields (Exec, "delete\nfrom\nt\n").
func Parse(line string) (Kind, string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, "", ErrMissingKind
	}

	var kind Kind
	switch fields[0] {
	case "exec":
		kind = Exec
	case "query":
		kind = Query
	default:
		return 0, "", &UnknownKindError{Kind: fields[0]}
	}

	var b strings.Builder
	for _, f := range fields[1:] {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	return kind, b.String(), nil
}
