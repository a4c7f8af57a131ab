package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/chronograph/internal/timelog"
)

func sampleData() []timelog.Classified {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	entries := []timelog.Entry{
		{
			Start:   start,
			Stop:    start.Add(90 * time.Minute),
			Project: "apollo11",
			Tags:    []string{"eva", "geology", "@moon"},
		},
		{
			Start:   start.Add(2 * time.Hour),
			Stop:    start.Add(3 * time.Hour),
			Project: "voyager2",
		},
	}

	classified := make([]timelog.Classified, 0, len(entries))
	for _, e := range entries {
		classified = append(classified, timelog.Classify(e))
	}
	return classified
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(sampleData(), path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 data rows
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Project", "Start", "Stop", "Hours", "Duration", "Attributes", "Locations"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "apollo11" {
		t.Fatalf("Project = %q, want apollo11", row[0])
	}
	if row[3] != "1.5000" {
		t.Fatalf("Hours = %q, want 1.5000", row[3])
	}
	if row[4] != "01:30:00" {
		t.Fatalf("Duration = %q, want 01:30:00", row[4])
	}
	if row[5] != "eva, geology" {
		t.Fatalf("Attributes = %q, want 'eva, geology'", row[5])
	}
	if row[6] != "moon" {
		t.Fatalf("Locations = %q, want moon", row[6])
	}

	// No tags means empty attribute and location columns
	bare := records[2]
	if bare[5] != "" || bare[6] != "" {
		t.Fatalf("tagless entry should have empty tag columns, got %q / %q", bare[5], bare[6])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := ToCSV(nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []timelog.Classified{
		timelog.Classify(timelog.Entry{
			Start:   start,
			Stop:    start.Add(time.Hour),
			Project: `project "special", yes`,
			Tags:    []string{"with, comma"},
		}),
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	err := ToCSV(entries, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][0] != `project "special", yes` {
		t.Fatalf("project name mangled: %q", records[1][0])
	}
	if records[1][5] != "with, comma" {
		t.Fatalf("attributes mangled: %q", records[1][5])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	err := ToJSON(sampleData(), path)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("count = %d, want 2", result.Count)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	e := result.Entries[0]
	if e.Project != "apollo11" {
		t.Fatalf("Project = %q, want apollo11", e.Project)
	}
	if e.Hours != 1.5 {
		t.Fatalf("Hours = %v, want 1.5", e.Hours)
	}
	if e.Duration != "01:30:00" {
		t.Fatalf("Duration = %q, want 01:30:00", e.Duration)
	}
	if len(e.Attributes) != 2 || e.Attributes[0] != "eva" {
		t.Fatalf("Attributes = %v", e.Attributes)
	}
	if len(e.Locations) != 1 || e.Locations[0] != "moon" {
		t.Fatalf("Locations = %v", e.Locations)
	}
}

func TestToJSONOmitsEmptyTagSets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.json")
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	err := ToJSON([]timelog.Classified{
		timelog.Classify(timelog.Entry{Start: start, Stop: start.Add(time.Hour), Project: "solo"}),
	}, path)
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "attributes") {
		t.Fatal("tagless entry should not carry an attributes key")
	}
	if strings.Contains(string(data), "locations") {
		t.Fatal("tagless entry should not carry a locations key")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	err := ToJSON(nil, path)
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Entries != nil {
		t.Fatal("entries should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, path)

	data, _ := os.ReadFile(path)
	// Pretty-printed JSON should contain newlines and indentation
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(sampleData(), path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	// exported_at should be valid RFC3339
	_, err := time.Parse(time.RFC3339, result.ExportedAt)
	if err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	for _, e := range result.Entries {
		if _, err := time.Parse(time.RFC3339, e.Start); err != nil {
			t.Fatalf("start is not valid RFC3339: %q", e.Start)
		}
		if _, err := time.Parse(time.RFC3339, e.Stop); err != nil {
			t.Fatalf("stop is not valid RFC3339: %q", e.Stop)
		}
	}
}

// ============================================================
// formatDuration (internal helper)
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{60, "00:01:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{90061, "25:01:01"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.secs)
		if got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
