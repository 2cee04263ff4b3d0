package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	terrors "github.com/vango-dev/tooltip/internal/errors"
)

func initCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default tooltipctl.json",
		Long: `Write tooltipctl.json with default settings and create the
scenario directory.

Examples:
  tooltipctl init
  tooltipctl init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags.dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing tooltipctl.json")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	out := cmd.OutOrStdout()
	path := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return terrors.Newf(terrors.CategoryCLI, "%s already exists", path).
			WithSuggestion("Pass --force to overwrite it")
	}

	cfg := config.New()
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.ScenariosPath(), 0755); err != nil {
		return terrors.New("T011").Wrap(err)
	}

	success(out, "Wrote %s", path)
	info(out, "Add scenarios to %s and run 'tooltipctl run'", cfg.ScenariosPath())
	return nil
}
