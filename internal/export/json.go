package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/chronograph/internal/timelog"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Project    string   `json:"project"`
	Start      string   `json:"start"`
	Stop       string   `json:"stop"`
	Hours      float64  `json:"hours"`
	Duration   string   `json:"duration"`
	Attributes []string `json:"attributes,omitempty"`
	Locations  []string `json:"locations,omitempty"`
}

func ToJSON(entries []timelog.Classified, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			Project:    e.Project,
			Start:      e.Start.Format(time.RFC3339),
			Stop:       e.Stop.Format(time.RFC3339),
			Hours:      e.Hours(),
			Duration:   formatDuration(int64(e.Duration() / time.Second)),
			Attributes: e.Attributes,
			Locations:  e.Locations,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
