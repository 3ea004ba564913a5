package query

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rebeliceyang/lazylite/internal/models"
)

// Collect reads every row of a database/sql result into a ResultSet
func Collect(rows *sql.Rows) (*models.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	// Text columns may come back as []byte; the declared type tells them apart from blobs
	textColumn := make([]bool, len(columns))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			textColumn[i] = isTextType(ct.DatabaseTypeName())
		}
	}

	var result [][]models.Value
	raw := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make([]models.Value, len(columns))
		for i, v := range raw {
			if b, ok := v.([]byte); ok && textColumn[i] {
				row[i] = models.Text(string(b))
				continue
			}
			row[i] = models.ValueOf(v)
		}
		result = append(result, row)
	}

	// Check for errors from iteration
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.NewResultSet(columns, result)
}

// Execute runs sql on a pgx pool and returns the results
func Execute(ctx context.Context, pool *pgxpool.Pool, sql string) (*models.ResultSet, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return CollectPgx(rows)
}

// CollectPgx reads every row of a pgx result into a ResultSet
func CollectPgx(rows pgx.Rows) (*models.ResultSet, error) {
	// Get column names
	fieldDescs := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = fd.Name
	}

	var result [][]models.Value
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make([]models.Value, len(values))
		for i, v := range values {
			row[i] = models.ValueOf(v)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.NewResultSet(columns, result)
}

func isTextType(name string) bool {
	name = strings.ToUpper(name)
	return strings.Contains(name, "CHAR") ||
		strings.Contains(name, "TEXT") ||
		strings.Contains(name, "CLOB")
}
