package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sadopc/chronograph/internal/timelog"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("csv header missing column")

// timeLayouts covers what watson emits: naive local timestamps from the
// CLI, RFC3339 in exports that carry offsets.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}

// SplitTags splits a comma-joined tag field and trims the spaces watson
// leaves around each tag. Empty fields yield no tags.
func SplitTags(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// DecodeCSV reads `watson log --csv` output: a header row naming at least
// start, stop and project, with tags comma-joined in a single field.
// Columns are addressed by name so extra columns and reordering are fine.
func DecodeCSV(r io.Reader) ([]timelog.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, need := range []string{"start", "stop", "project"} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, need)
		}
	}

	var entries []timelog.Entry
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		start, err := parseTime(field(record, col["start"]))
		if err != nil {
			return nil, fmt.Errorf("row %d start: %w", row, err)
		}
		stop, err := parseTime(field(record, col["stop"]))
		if err != nil {
			return nil, fmt.Errorf("row %d stop: %w", row, err)
		}
		e := timelog.Entry{
			Start:   start,
			Stop:    stop,
			Project: strings.TrimSpace(field(record, col["project"])),
		}
		if i, ok := col["tags"]; ok {
			e.Tags = SplitTags(field(record, i))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// field tolerates ragged rows; a missing cell reads as empty.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// CSVFile reads a saved `watson log --csv` export. Query time bounds apply;
// watson args do not.
type CSVFile struct {
	Path string
}

func (c CSVFile) Entries(ctx context.Context, q Query) ([]timelog.Entry, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	entries, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Path, err)
	}
	return filterRange(entries, q), nil
}

func filterRange(entries []timelog.Entry, q Query) []timelog.Entry {
	if q.From.IsZero() && q.To.IsZero() {
		return entries
	}
	out := make([]timelog.Entry, 0, len(entries))
	for _, e := range entries {
		if q.InRange(e.Start) {
			out = append(out, e)
		}
	}
	return out
}
