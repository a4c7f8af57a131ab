package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sadopc/chronograph/internal/render"
	"github.com/sadopc/chronograph/internal/source"
	"github.com/sadopc/chronograph/internal/timelog"
	"github.com/sadopc/chronograph/internal/tui"
)

const dateLayout = "2006-01-02"

func graphFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("plot", []string{"all"}, "charts to build (hours, attributes, location, all)")
	cmd.Flags().String("period", "day", "date grouping (day, week, month, quarter, year)")
	cmd.Flags().String("sort", "time", "series order (time: most hours first, name: alphabetical)")
	cmd.Flags().Bool("truncate", false, "merge subprojects by cutting names at the first period")
	cmd.Flags().Bool("totals", false, "add a chart of total hours per project")
	cmd.Flags().Bool("date", false, "show the date range in chart titles")
	cmd.Flags().StringSlice("ignore-project", nil, "projects to leave out")
	cmd.Flags().StringSlice("ignore-attribute", nil, "attribute tags to leave out")
	cmd.Flags().StringSlice("ignore-location", nil, "location tags to leave out")
	cmd.Flags().StringP("output", "o", "", "write charts to an HTML file instead of the terminal")
	cmd.Flags().Bool("no-tui", false, "print charts instead of opening the interactive browser")
	cmd.Flags().Int("width", 0, "chart width for printed output")
	cmd.Flags().Int("height", 0, "chart height for printed output")
	cmd.Flags().BoolP("interactive", "i", false, "pick chart options from a form first")

	_ = viper.BindPFlag("plot.dimensions", cmd.Flags().Lookup("plot"))
	_ = viper.BindPFlag("plot.period", cmd.Flags().Lookup("period"))
	_ = viper.BindPFlag("plot.sort", cmd.Flags().Lookup("sort"))
	_ = viper.BindPFlag("plot.truncate", cmd.Flags().Lookup("truncate"))
	_ = viper.BindPFlag("plot.totals", cmd.Flags().Lookup("totals"))
	_ = viper.BindPFlag("plot.date", cmd.Flags().Lookup("date"))
	_ = viper.BindPFlag("ignore.projects", cmd.Flags().Lookup("ignore-project"))
	_ = viper.BindPFlag("ignore.attributes", cmd.Flags().Lookup("ignore-attribute"))
	_ = viper.BindPFlag("ignore.locations", cmd.Flags().Lookup("ignore-location"))
	_ = viper.BindPFlag("output.html", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.no_tui", cmd.Flags().Lookup("no-tui"))
	_ = viper.BindPFlag("chart.width", cmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("chart.height", cmd.Flags().Lookup("height"))
}

// graphOptions is the resolved option set for one run, gathered from flags,
// config file and environment before anything touches the pipeline.
type graphOptions struct {
	plots    []string
	period   string
	sort     string
	truncate bool
	totals   bool
	date     bool

	ignoreProjects   []string
	ignoreAttributes []string
	ignoreLocations  []string

	sourceKind string
	watsonBin  string
	csvFile    string
	framesFile string
	trackrDB   string
	from       string
	to         string

	output string
	noTUI  bool
	width  int
	height int
}

func optionsFromViper() graphOptions {
	return graphOptions{
		plots:    viper.GetStringSlice("plot.dimensions"),
		period:   viper.GetString("plot.period"),
		sort:     viper.GetString("plot.sort"),
		truncate: viper.GetBool("plot.truncate"),
		totals:   viper.GetBool("plot.totals"),
		date:     viper.GetBool("plot.date"),

		ignoreProjects:   viper.GetStringSlice("ignore.projects"),
		ignoreAttributes: viper.GetStringSlice("ignore.attributes"),
		ignoreLocations:  viper.GetStringSlice("ignore.locations"),

		sourceKind: viper.GetString("source.kind"),
		watsonBin:  viper.GetString("source.watson_bin"),
		csvFile:    viper.GetString("source.csv_file"),
		framesFile: viper.GetString("source.frames_file"),
		trackrDB:   viper.GetString("source.trackr_db"),
		from:       viper.GetString("source.from"),
		to:         viper.GetString("source.to"),

		output: viper.GetString("output.html"),
		noTUI:  viper.GetBool("output.no_tui"),
		width:  viper.GetInt("chart.width"),
		height: viper.GetInt("chart.height"),
	}
}

func (o graphOptions) pipelineConfig() timelog.Config {
	return timelog.Config{
		Dimensions: expandDimensions(o.plots),
		Period:     timelog.Period(o.period),
		Sort:       timelog.SortMode(o.sort),
		Truncate:   o.truncate,
		Totals:     o.totals,
		Ignore: timelog.IgnoreRules{
			Projects:   o.ignoreProjects,
			Attributes: o.ignoreAttributes,
			Locations:  o.ignoreLocations,
		},
	}
}

func (o graphOptions) sourceOptions() source.Options {
	return source.Options{
		WatsonBin:  o.watsonBin,
		CSVPath:    o.csvFile,
		FramesPath: o.framesFile,
		TrackrPath: o.trackrDB,
	}
}

// expandDimensions turns the --plot words into dimensions, expanding "all"
// and dropping duplicates. Unknown words pass through so Config.Validate
// can name them in its error.
func expandDimensions(plots []string) []timelog.Dimension {
	var dims []timelog.Dimension
	seen := make(map[timelog.Dimension]bool)
	add := func(d timelog.Dimension) {
		if !seen[d] {
			seen[d] = true
			dims = append(dims, d)
		}
	}
	for _, p := range plots {
		if p == "all" {
			for _, d := range timelog.AllDimensions() {
				add(d)
			}
			continue
		}
		add(timelog.Dimension(p))
	}
	return dims
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	opts := optionsFromViper()

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := promptOptions(&opts); err != nil {
			return err
		}
	}

	// Reject bad options before going anywhere near the entry source.
	cfg := opts.pipelineConfig()
	if err := cfg.Validate(); err != nil {
		return err
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

	query := source.Query{From: from, To: to, WatsonArgs: args}
	entries, err := src.Entries(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("read entries: %w", err)
	}

	report, err := timelog.Build(cfg, entries)
	if err != nil {
		return err
	}

	for _, d := range report.Dropped {
		slog.Warn("dropped malformed entry",
			"project", d.Entry.Project,
			"start", d.Entry.Start,
			"reason", d.Reason)
	}
	slog.Debug("report built",
		"entries", len(entries),
		"dropped", len(report.Dropped),
		"charts", len(report.Tables))

	ropts := render.Options{
		Title:     "chronograph",
		ShowDates: opts.date,
		Width:     opts.width,
		Height:    opts.height,
	}
	if w, ok := src.(source.WatsonCLI); ok {
		ropts.Subtitle = "Watson command: " + w.Cmdline(query)
	}

	if opts.output != "" {
		if err := render.WriteHTML(report, ropts, opts.output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.output)
		return nil
	}

	if opts.noTUI || !stdoutIsTerminal() {
		return render.WriteTerm(cmd.OutOrStdout(), report, ropts)
	}

	app := tui.NewApp(report)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run chart browser: %w", err)
	}
	return nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
