package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rebeliceyang/lazylite/internal/models"
)

func testResult(t *testing.T) *models.ResultSet {
	t.Helper()
	rs, err := models.NewResultSet(
		[]string{"id", "name", "score", "avatar"},
		[][]models.Value{
			{models.Integer(1), models.Text(`says "hi", twice`), models.Real(1.5), models.Null()},
			{models.Integer(2), models.Text("line\nbreak"), models.Null(), models.Blob([]byte{0x1})},
		},
	)
	if err != nil {
		t.Fatalf("NewResultSet failed: %v", err)
	}
	return rs
}

func TestExportToCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "test.csv")

	if err := ExportToCSV(testResult(t), csvPath); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != 3 { // header + 2 rows
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	expectedHeader := []string{"id", "name", "score", "avatar"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Errorf("Header[%d]: expected %q, got %q", i, h, records[0][i])
		}
	}

	if records[1][1] != `says "hi", twice` {
		t.Errorf("Quoted field not preserved, got %q", records[1][1])
	}
	if records[1][3] != "" {
		t.Errorf("Expected NULL as empty field, got %q", records[1][3])
	}
	if records[2][1] != "line\nbreak" {
		t.Errorf("Multiline field not preserved, got %q", records[2][1])
	}
	if records[2][3] != "Blob" {
		t.Errorf("Expected Blob placeholder, got %q", records[2][3])
	}
}

func TestExportToCSV_EmptyResult(t *testing.T) {
	rs, err := models.NewResultSet([]string{"a"}, nil)
	if err != nil {
		t.Fatalf("NewResultSet failed: %v", err)
	}

	csvPath := filepath.Join(t.TempDir(), "empty.csv")
	if err := ExportToCSV(rs, csvPath); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "a\n" {
		t.Errorf("Expected header only, got %q", string(data))
	}
}

func TestExportToCSV_BadPath(t *testing.T) {
	err := ExportToCSV(testResult(t), filepath.Join(t.TempDir(), "missing", "out.csv"))
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
}

func TestExportToJSON(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "test.json")

	if err := ExportToJSON(testResult(t), jsonPath); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0]["id"] != float64(1) {
		t.Errorf("Expected id 1, got %v", records[0]["id"])
	}
	if records[0]["avatar"] != nil {
		t.Errorf("Expected null avatar, got %v", records[0]["avatar"])
	}
	if records[1]["name"] != "line\nbreak" {
		t.Errorf("Expected name to round-trip, got %v", records[1]["name"])
	}
}

func TestFormatRow(t *testing.T) {
	row := []models.Value{models.Integer(7), models.Text("ada"), models.Null()}
	if got := FormatRow(row); got != "7\tada\tNull" {
		t.Errorf("FormatRow = %q", got)
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	got := FileName("/tmp/out", "custom search", "csv", at)
	if got != "/tmp/out/custom_search-20240309-140506.csv" {
		t.Errorf("FileName = %q", got)
	}

	got = FileName(".", "", "csv", at)
	if got != "result-20240309-140506.csv" {
		t.Errorf("FileName = %q", got)
	}
}
