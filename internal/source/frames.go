package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/chronograph/internal/timelog"
)

// FramesFile reads watson's state file directly: a JSON array of frames
// laid out as [start, stop, project, id, tags, updated_at] with Unix
// timestamps. Reading the file skips shelling out when watson itself is
// not installed where the charts are drawn.
type FramesFile struct {
	Path string
}

// DefaultFramesPath returns watson's standard frames location.
func DefaultFramesPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "watson", "frames"), nil
}

func (f FramesFile) Entries(ctx context.Context, q Query) ([]timelog.Entry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse frames: %w", err)
	}

	entries := make([]timelog.Entry, 0, len(rows))
	for i, row := range rows {
		e, err := decodeFrame(row)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if q.InRange(e.Start) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func decodeFrame(row []json.RawMessage) (timelog.Entry, error) {
	var e timelog.Entry
	if len(row) < 5 {
		return e, fmt.Errorf("want at least 5 fields, got %d", len(row))
	}
	var start, stop int64
	if err := json.Unmarshal(row[0], &start); err != nil {
		return e, fmt.Errorf("start: %w", err)
	}
	if err := json.Unmarshal(row[1], &stop); err != nil {
		return e, fmt.Errorf("stop: %w", err)
	}
	if err := json.Unmarshal(row[2], &e.Project); err != nil {
		return e, fmt.Errorf("project: %w", err)
	}
	if err := json.Unmarshal(row[4], &e.Tags); err != nil {
		return e, fmt.Errorf("tags: %w", err)
	}
	e.Start = time.Unix(start, 0)
	e.Stop = time.Unix(stop, 0)
	return e, nil
}
