package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JMR-dev/namemigrate/internal/config"
	"github.com/JMR-dev/namemigrate/internal/database"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Print row counts and digests of the name tables",
		Long: `Verify opens an existing database without modifying it and prints the row
count and content digest of each name table.

Two databases, or the same database before and after a rerun, hold the same
names in the same order exactly when their digests match.

Examples:
  namemigrate verify
  namemigrate verify -d out/names.sqlite --first-table Given --last-table Family`,
		Args: cobra.NoArgs,
		RunE: runVerifyCmd,
	}

	cmd.Flags().StringP("database", "d", config.DefaultDBFile, "SQLite database file")
	cmd.Flags().String("first-table", config.DefaultFirstNamesTable, "Table holding the first names")
	cmd.Flags().String("last-table", config.DefaultLastNamesTable, "Table holding the last names")
	cmd.Flags().StringP("config", "c", "", "Configuration file path")

	return cmd
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return err
	}
	if _, err := config.Load(cfg); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"database":    &cfg.DBFile,
		"first-table": &cfg.FirstNamesTable,
		"last-table":  &cfg.LastNamesTable,
	} {
		if flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return err
			}
		}
	}

	db, err := database.Open(cfg.DBFile, database.Options{CreateIfNotExists: false})
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", cfg.DBFile)
	for _, table := range []string{cfg.FirstNamesTable, cfg.LastNamesTable} {
		stats, err := db.TableStats(cmd.Context(), table)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-12s %8d rows  blake2b-256 %s\n", stats.Table, stats.Rows, stats.Digest)
	}
	return nil
}
