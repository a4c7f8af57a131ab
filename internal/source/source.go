// Package source loads raw time entries from the places trackers keep
// them: the watson CLI, saved CSV exports, watson's frames file, or a
// trackr database. Sources only decode shape; the pipeline does the
// semantic checks.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/chronograph/internal/timelog"
)

// ErrUnknownKind is returned for a source name New does not recognize.
var ErrUnknownKind = errors.New("unknown source kind")

// Query narrows what a source loads. Zero times mean unbounded. WatsonArgs
// are handed to the watson CLI after flag-word expansion and are ignored by
// the file and database sources.
type Query struct {
	From       time.Time
	To         time.Time
	WatsonArgs []string
}

// InRange reports whether a start instant falls inside the query bounds,
// From inclusive, To exclusive.
func (q Query) InRange(t time.Time) bool {
	if !q.From.IsZero() && t.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !t.Before(q.To) {
		return false
	}
	return true
}

// A Source yields raw entries for the pipeline.
type Source interface {
	Entries(ctx context.Context, q Query) ([]timelog.Entry, error)
}

// Kind names a Source implementation.
type Kind string

const (
	KindWatson Kind = "watson"
	KindCSV    Kind = "csv"
	KindFrames Kind = "frames"
	KindTrackr Kind = "trackr"
)

// Options carries the per-kind settings New needs. Empty paths fall back
// to each tool's standard location.
type Options struct {
	WatsonBin  string
	CSVPath    string
	FramesPath string
	TrackrPath string
}

// New builds the source for a kind, resolving default file locations.
func New(kind Kind, opts Options) (Source, error) {
	switch kind {
	case KindWatson:
		return WatsonCLI{Bin: opts.WatsonBin}, nil
	case KindCSV:
		if opts.CSVPath == "" {
			return nil, fmt.Errorf("csv source: no file given")
		}
		return CSVFile{Path: opts.CSVPath}, nil
	case KindFrames:
		path := opts.FramesPath
		if path == "" {
			var err error
			if path, err = DefaultFramesPath(); err != nil {
				return nil, fmt.Errorf("resolve frames path: %w", err)
			}
		}
		return FramesFile{Path: path}, nil
	case KindTrackr:
		path := opts.TrackrPath
		if path == "" {
			var err error
			if path, err = DefaultTrackrPath(); err != nil {
				return nil, fmt.Errorf("resolve trackr path: %w", err)
			}
		}
		return TrackrDB{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}
