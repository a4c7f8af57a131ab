package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sadopc/chronograph/internal/export"
	"github.com/sadopc/chronograph/internal/source"
	"github.com/sadopc/chronograph/internal/timelog"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [flags] [--] [watson args...]",
		Short: "Dump fetched entries as CSV or JSON",
		Long: `Fetch entries from the selected source and write them out with their
tags split into attributes and locations. No grouping or summing is done;
this is the raw material the charts are built from.`,
		Args: cobra.ArbitraryArgs,
		RunE: runExport,
	}

	cmd.Flags().String("format", "csv", "output format (csv, json)")
	cmd.Flags().String("out", "", "output path (default: ~/chronograph-export-<date>.<format>)")

	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	opts := optionsFromViper()

	format := viper.GetString("export.format")
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown export format %q (want csv or json)", format)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		var err error
		if out, err = defaultExportPath(format, time.Now()); err != nil {
			return err
		}
	}

	from, err := parseDate(opts.from)
	if err != nil {
		return err
	}
	to, err := parseDate(opts.to)
	if err != nil {
		return err
	}

	src, err := source.New(source.Kind(opts.sourceKind), opts.sourceOptions())
	if err != nil {
		return err
	}

	entries, err := src.Entries(cmd.Context(), source.Query{From: from, To: to, WatsonArgs: args})
	if err != nil {
		return fmt.Errorf("read entries: %w", err)
	}

	classified := make([]timelog.Classified, 0, len(entries))
	for _, e := range entries {
		classified = append(classified, timelog.Classify(e))
	}

	switch format {
	case "csv":
		err = export.ToCSV(classified, out)
	case "json":
		err = export.ToJSON(classified, out)
	}
	if err != nil {
		return err
	}

	slog.Debug("export written", "format", format, "count", len(classified))
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", len(classified), out)
	return nil
}

func defaultExportPath(format string, now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	name := fmt.Sprintf("chronograph-export-%s.%s", now.Format(dateLayout), format)
	return filepath.Join(home, name), nil
}
