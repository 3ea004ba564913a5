package jsonb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDocument(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{`{"a":1}`, true},
		{` [1, 2] `, true},
		{`{}`, true},
		{`{"a":}`, false},
		{`1`, false},
		{`"text"`, false},
		{`true`, false},
		{`hello`, false},
		{``, false},
		{`{ not json }`, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDocument(tt.value))
		})
	}
}

func TestFormat(t *testing.T) {
	got, err := Format(`{"b":1,"a":[true,null]}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true,\n    null\n  ]\n}", got)

	_, err = Format(`{"b":`)
	assert.Error(t, err)
}

func TestCompact(t *testing.T) {
	got, err := Compact("{\n  \"a\": 1\n}")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "[\n  1\n]", Display(`[1]`))
	assert.Equal(t, "plain text", Display("plain text"))
	assert.Equal(t, "{broken", Display("{broken"))
}
