package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sadopc/chronograph/internal/timelog"
)

// TrackrDB reads finished entries out of a trackr database, joining the
// project name and the task's tags onto each row. The database is opened
// read-only and running entries (no end_time yet) are skipped.
type TrackrDB struct {
	Path string
}

// DefaultTrackrPath returns ~/.config/trackr/trackr.db
func DefaultTrackrPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "trackr", "trackr.db"), nil
}

func (t TrackrDB) Entries(ctx context.Context, q Query) ([]timelog.Entry, error) {
	if _, err := os.Stat(t.Path); err != nil {
		return nil, fmt.Errorf("trackr database: %w", err)
	}

	db, err := sql.Open("sqlite", t.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA query_only=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	query := `SELECT e.start_time, e.end_time, p.name, COALESCE(t.tags, '')
		FROM time_entries e
		JOIN projects p ON p.id = e.project_id
		LEFT JOIN tasks t ON t.id = e.task_id
		WHERE e.end_time IS NOT NULL`
	var args []any
	if !q.From.IsZero() {
		query += ` AND e.start_time >= ?`
		args = append(args, q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		query += ` AND e.start_time < ?`
		args = append(args, q.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY e.start_time`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []timelog.Entry
	for rows.Next() {
		var startStr, endStr, project, tags string
		if err := rows.Scan(&startStr, &endStr, &project, &tags); err != nil {
			return nil, err
		}
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("entry start %q: %w", startStr, err)
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return nil, fmt.Errorf("entry end %q: %w", endStr, err)
		}
		entries = append(entries, timelog.Entry{
			Start:   start,
			Stop:    end,
			Project: project,
			Tags:    SplitTags(tags),
		})
	}
	return entries, rows.Err()
}
