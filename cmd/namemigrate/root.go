package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JMR-dev/namemigrate/internal/config"
)

// NewRootCmd creates the root command for namemigrate.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namemigrate",
		Short: "Migrate first-name and last-name archives into SQLite",
		Long: `namemigrate loads two gzip-compressed name archives (pickle or JSON lists),
trims and title-cases every name, drops empty values and duplicates, and
replaces the FirstNames and LastNames tables of a SQLite database.

Running it twice with the same archives leaves the database unchanged.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("show-names", false, "Show name values in log output instead of masking them")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log encoding on stderr: text or json")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// run executes the CLI with the given arguments and writers.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	// Failures already explained by the command only set the exit code.
	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCodeFor(err)
}
