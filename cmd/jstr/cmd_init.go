package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qemqemqem/JSTR/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Interactively scaffold a generation config",
		Long: `Run a guided wizard that collects generation parameters and writes a
gen_config.yaml usable with 'jstr generate --config'.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: initCommandE,
	}

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	spec, err := wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	content, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "gen_config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Next: jstr generate --config %s --seed <seed>\n", path)
	return nil
}
