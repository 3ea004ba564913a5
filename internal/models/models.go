package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind identifies which field of a Value is meaningful
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

// String returns the kind name
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Value is a single scalar cell produced by the data source.
// Values are never mutated after the data source hands them out.
type Value struct {
	Kind ValueKind
	Int  int64
	Real float64
	Text string
	Blob []byte
}

// Null returns the NULL value
func Null() Value { return Value{Kind: KindNull} }

// Integer wraps an int64
func Integer(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Real wraps a float64
func Real(f float64) Value { return Value{Kind: KindReal, Real: f} }

// Text wraps a string
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Blob wraps raw bytes
func Blob(b []byte) Value { return Value{Kind: KindBlob, Blob: b} }

// IsNull reports whether v is NULL
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value the way the table shows it
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "Null"
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBlob:
		return "Blob"
	default:
		return ""
	}
}

// ValueOf converts a value returned by a database driver into a Value.
// Types without a scalar counterpart (JSON documents, arrays, timestamps)
// become Text.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case int64:
		return Integer(v)
	case int:
		return Integer(int64(v))
	case int32:
		return Integer(int64(v))
	case int16:
		return Integer(int64(v))
	case int8:
		return Integer(int64(v))
	case uint32:
		return Integer(int64(v))
	case uint16:
		return Integer(int64(v))
	case uint8:
		return Integer(int64(v))
	case bool:
		if v {
			return Integer(1)
		}
		return Integer(0)
	case float64:
		return Real(v)
	case float32:
		return Real(float64(v))
	case string:
		return Text(v)
	case []byte:
		b := make([]byte, len(v))
		copy(b, v)
		return Blob(b)
	case time.Time:
		return Text(v.Format(time.RFC3339Nano))
	case fmt.Stringer:
		return Text(v.String())
	case map[string]any, []any:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return Text(fmt.Sprintf("%v", v))
		}
		return Text(string(jsonBytes))
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}

// ResultSet is a schema plus rows, every row exactly as wide as the schema
type ResultSet struct {
	Columns []string
	Rows    [][]Value
}

// NewResultSet builds a ResultSet, rejecting rows whose width differs from the schema
func NewResultSet(columns []string, rows [][]Value) (*ResultSet, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, schema has %d columns", i, len(row), len(columns))
		}
	}
	if columns == nil {
		columns = []string{}
	}
	return &ResultSet{Columns: columns, Rows: rows}, nil
}

// Width returns the number of columns (S)
func (r *ResultSet) Width() int {
	if r == nil {
		return 0
	}
	return len(r.Columns)
}

// Len returns the number of rows
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}
