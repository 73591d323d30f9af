package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JMR-dev/namemigrate/internal/config"
	"github.com/JMR-dev/namemigrate/internal/log"
	"github.com/JMR-dev/namemigrate/internal/model"
	"github.com/JMR-dev/namemigrate/internal/pipeline"
	"github.com/JMR-dev/namemigrate/internal/report"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Load the name archives and replace the database tables",
		Long: `Migrate loads the first-name archive, then the last-name archive, normalizes
both lists and replaces the name tables of the SQLite database.

Nothing is written unless both archives load and decode. Each table is
replaced in its own transaction; use --atomic to replace both tables in a
single transaction instead.

Settings are read from the config file (.namemigrate), then NAMEMIGRATE_*
environment variables (a .env file in the working directory is honoured),
then the flags below.

Exit codes:
  0    success
  1    usage or configuration error
  2    input archive not found
  3    archive cannot be decompressed or decoded
  4    archive is an HTML page, not data
  5    database write failed
  130  interrupted

Examples:
  # Use the default file names in the current directory
  namemigrate migrate

  # Explicit inputs and database
  namemigrate migrate --first-names data/first.pkl.gz --last-names data/last.pkl.gz -d out/names.sqlite

  # Write a Markdown run report
  namemigrate migrate -m -o report.md`,
		Args: cobra.NoArgs,
		RunE: runMigrateCmd,
	}

	cmd.Flags().String("first-names", config.DefaultFirstNamesFile, "First-name archive (gzip-compressed pickle or JSON list)")
	cmd.Flags().String("last-names", config.DefaultLastNamesFile, "Last-name archive (gzip-compressed pickle or JSON list)")
	cmd.Flags().StringP("database", "d", config.DefaultDBFile, "SQLite database file (created if missing)")
	cmd.Flags().IntP("batch-size", "b", config.DefaultBatchSize, "Rows per INSERT statement")
	cmd.Flags().String("first-table", config.DefaultFirstNamesTable, "Table receiving the first names")
	cmd.Flags().String("last-table", config.DefaultLastNamesTable, "Table receiving the last names")
	cmd.Flags().String("format", config.DefaultFormat, "Archive payload format: auto, pickle or json")
	cmd.Flags().Bool("atomic", false, "Replace both tables in a single transaction")

	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .namemigrate in current, XDG config or home directory)")

	cmd.Flags().BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write report to specified file path (creates directories if needed)")

	return cmd
}

// runMigrateCmd executes the migrate command.
func runMigrateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := log.New(cmd.ErrOrStderr(), cfg.LogFormat, log.Options{Verbose: cfg.Verbose, ShowNames: cfg.ShowNames})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	slog.SetDefault(logger)
	if cfg.ConfigFilePath != "" {
		logger.Debug("loaded configuration file", "path", cfg.ConfigFilePath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runMigration(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runMigration runs the pipeline, writes the report and prints a diagnostic
// on failure.
func runMigration(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	// Structured reports on stdout must not be mixed with progress lines.
	progress := stdout
	if cfg.ReportFile == "" && (cfg.JSONReport || cfg.MarkdownReport) {
		progress = stderr
	}

	p, err := pipeline.FromConfig(cfg, logger, progress)
	if err != nil {
		return err
	}
	logger.Debug("pipeline assembled", "count", p.StepCount(), "steps", p.StepNames())

	migration := model.NewMigrationReport(cfg.DBFile)
	runErr := p.Execute(ctx, migration)

	if err := outputReport(cfg, migration, stdout); err != nil {
		logger.Error("failed to write report", "error", err)
		if runErr == nil {
			return err
		}
	}

	if runErr != nil {
		printDiagnostic(stderr, runErr)
		return &reportedError{err: runErr}
	}

	fmt.Fprintf(progress, "Migration complete: %s\n", cfg.DBFile)
	return nil
}

// buildConfig creates a Config from defaults, the config file, the
// environment and the flags the user set, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// ConfigFilePath ends up naming the file actually read, or "".
	if cfg.ConfigFilePath, err = config.Load(cfg); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"first-names": &cfg.FirstNamesFile,
		"last-names":  &cfg.LastNamesFile,
		"database":    &cfg.DBFile,
		"first-table": &cfg.FirstNamesTable,
		"last-table":  &cfg.LastNamesTable,
		"format":      &cfg.Format,
		"output":      &cfg.ReportFile,
		"log-format":  &cfg.LogFormat,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("batch-size") {
		if cfg.BatchSize, err = flags.GetInt("batch-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("atomic") {
		if cfg.Atomic, err = flags.GetBool("atomic"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}

	cfg.Verbose = getBoolFlag(cmd, "verbose")
	if getBoolFlag(cmd, "show-names") {
		cfg.ShowNames = true
	}

	return cfg, nil
}

// getBoolFlag retrieves a persistent flag from the command or its root.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// outputReport writes the run report in the requested format. A JSON or
// Markdown report written to a file is accompanied by the text summary on
// stdout.
func outputReport(cfg *config.Config, migration *model.MigrationReport, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	if cfg.ReportFile != "" && (cfg.JSONReport || cfg.MarkdownReport) {
		w = report.NewMultiWriter(w, report.NewSimpleWriter(stdout, report.WithVerbose(cfg.Verbose)))
	}
	_, err := w.Write(migration)
	return err
}
