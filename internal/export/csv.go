package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/chronograph/internal/timelog"
)

func ToCSV(entries []timelog.Classified, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Project", "Start", "Stop", "Hours", "Duration", "Attributes", "Locations"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Project,
			e.Start.Format(time.RFC3339),
			e.Stop.Format(time.RFC3339),
			fmt.Sprintf("%.4f", e.Hours()),
			formatDuration(int64(e.Duration() / time.Second)),
			strings.Join(e.Attributes, ", "),
			strings.Join(e.Locations, ", "),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
