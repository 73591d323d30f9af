package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JMR-dev/namemigrate/internal/config"
)

//go:embed templates/namemigrate.yaml
var configTemplate embed.FS

const templatePath = "templates/namemigrate.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented configuration template",
		Long: `Init writes a .namemigrate file listing every migration setting with its
default value. migrate and verify pick it up from the current directory,
the XDG config directory or the home directory.

Examples:
  namemigrate init
  namemigrate init --xdg
  namemigrate init -o conf/names.yaml -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "Where to write the template")
	cmd.Flags().Bool("xdg", false, "Write to "+config.XDGConfigFile()+" instead of --output")
	cmd.Flags().BoolP("force", "f", false, "Replace an existing file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	target, err := flags.GetString("output")
	if err != nil {
		return err
	}
	if xdgDir, _ := flags.GetBool("xdg"); xdgDir {
		target = config.XDGConfigFile()
	}
	overwrite, err := flags.GetBool("force")
	if err != nil {
		return err
	}

	if err := writeConfigTemplate(target, overwrite); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", target)
	fmt.Fprintln(out, "\nSettings in this file:")
	fmt.Fprintln(out, "  first_names, last_names  archive paths")
	fmt.Fprintln(out, "  database                 SQLite file to write")
	fmt.Fprintln(out, "  tables, batch_size       target tables and rows per INSERT")
	fmt.Fprintln(out, "  atomic                   one transaction for both tables")
	return nil
}

// writeConfigTemplate writes the embedded template to target, creating its
// directory. An existing file is only replaced when overwrite is set.
func writeConfigTemplate(target string, overwrite bool) error {
	if _, err := os.Stat(target); err == nil && !overwrite {
		return fmt.Errorf("%s already exists (use -f to overwrite)", target)
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read embedded template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(target, content, 0600); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
