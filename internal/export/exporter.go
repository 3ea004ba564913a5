package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rebeliceyang/lazylite/internal/models"
)

// ExportToCSV writes a result set to a CSV file, header first
func ExportToCSV(rs *models.ResultSet, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(rs.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, rs.Width())
	for _, row := range rs.Rows {
		for i, v := range row {
			record[i] = csvField(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return file.Close()
}

// csvField renders NULL as an empty field
func csvField(v models.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// ExportToJSON writes a result set to a JSON file as an array of objects
func ExportToJSON(rs *models.ResultSet, path string) error {
	records := make([]map[string]any, 0, rs.Len())
	for _, row := range rs.Rows {
		record := make(map[string]any, len(row))
		for i, v := range row {
			record[rs.Columns[i]] = jsonValue(v)
		}
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

func jsonValue(v models.Value) any {
	switch v.Kind {
	case models.KindInteger:
		return v.Int
	case models.KindReal:
		return v.Real
	case models.KindText:
		return v.Text
	case models.KindBlob:
		return v.Blob
	default:
		return nil
	}
}

// FormatRow joins a row's values with tabs, the form used for the clipboard
func FormatRow(row []models.Value) string {
	fields := make([]string, len(row))
	for i, v := range row {
		fields[i] = v.String()
	}
	return strings.Join(fields, "\t")
}

// FileName returns a file path in dir for exporting a tab titled title at t
func FileName(dir, title, ext string, t time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, title)
	if name == "" {
		name = "result"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", name, t.Format("20060102-150405"), ext))
}
