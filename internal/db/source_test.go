package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAll(t *testing.T) {
	assert.Equal(t, `SELECT * FROM "users"`, SelectAll("users"))
	assert.Equal(t, `SELECT * FROM "we""ird"`, SelectAll(`we"ird`))
}

func TestError(t *testing.T) {
	cause := errors.New("no such table: nope")
	err := &Error{Op: "query", SQL: "SELECT * FROM nope", Err: cause}

	assert.Equal(t, `query "SELECT * FROM nope": no such table: nope`, err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &Error{Op: "list tables", Err: cause}
	assert.Equal(t, "list tables: no such table: nope", bare.Error())
}

func TestCheckStatement(t *testing.T) {
	assert.NoError(t, CheckStatement("query", "select 1"))

	for _, sql := range []string{"", "   ", "\n\t\n"} {
		err := CheckStatement("query", sql)
		assert.ErrorIs(t, err, ErrEmptyStatement)

		var dbErr *Error
		require.ErrorAs(t, err, &dbErr)
		assert.Equal(t, "query", dbErr.Op)
	}
}
