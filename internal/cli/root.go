// Package cli wires the chart pipeline to the command line: cobra commands,
// viper config/env resolution, and slog setup. All option handling happens
// here; the core packages receive plain values.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "chronograph [flags] [--] [watson args...]",
		Short: "Chart your tracked time as stacked bar graphs",
		Long: `chronograph pulls time entries from watson (or a CSV export, watson's
frames file, or a trackr database), groups them by period, and charts
hours per project, attribute tag, and location tag.

Trailing arguments are passed through to 'watson log'; bare option words
get their dashes added, so 'chronograph week current' runs
'watson log --csv --week --current'.`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: initConfig,
		RunE:              runGraph,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/chronograph/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Source selection is shared by the root command and export
	rootCmd.PersistentFlags().String("source", "watson", "entry source (watson, csv, frames, trackr)")
	rootCmd.PersistentFlags().String("watson-bin", "", "watson executable (default: watson from PATH)")
	rootCmd.PersistentFlags().String("csv-file", "", "CSV file for the csv source")
	rootCmd.PersistentFlags().String("frames-file", "", "frames file for the frames source (default: watson's own)")
	rootCmd.PersistentFlags().String("trackr-db", "", "database for the trackr source (default: trackr's own)")
	rootCmd.PersistentFlags().String("from", "", "earliest entry to load, YYYY-MM-DD (file and db sources)")
	rootCmd.PersistentFlags().String("to", "", "load entries before this date, YYYY-MM-DD (file and db sources)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("source.kind", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("source.watson_bin", rootCmd.PersistentFlags().Lookup("watson-bin"))
	_ = viper.BindPFlag("source.csv_file", rootCmd.PersistentFlags().Lookup("csv-file"))
	_ = viper.BindPFlag("source.frames_file", rootCmd.PersistentFlags().Lookup("frames-file"))
	_ = viper.BindPFlag("source.trackr_db", rootCmd.PersistentFlags().Lookup("trackr-db"))
	_ = viper.BindPFlag("source.from", rootCmd.PersistentFlags().Lookup("from"))
	_ = viper.BindPFlag("source.to", rootCmd.PersistentFlags().Lookup("to"))

	graphFlags(rootCmd)

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command with a signal-aware context.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/chronograph", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CHRONOGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine, flags and defaults cover everything
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}

	var handler slog.Handler
	switch format {
	case "console":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chronograph %s\n", version)
		},
	}
}
