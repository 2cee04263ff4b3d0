package main

import (
	"github.com/spf13/cobra"

	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/internal/scenario"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [scenario...]",
		Short: "Check tooltipctl.json and scenario files",
		Long: `Parse and validate scenario files without running them.

Every tooltip configuration is checked by building a controller, so
invalid delays and triggers are reported with their file location.

Examples:
  tooltipctl validate
  tooltipctl validate scenarios/hover.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, flags *globalFlags, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	files, err := scenarioFiles(cfg, args)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	invalid := 0
	for _, file := range files {
		sc, err := scenario.Load(file)
		if err == nil {
			err = sc.Validate()
		}
		if err != nil {
			invalid++
			terr := terrors.FromError(err, "T102")
			errorMsg(errOut, "%s: %s", file, terr.FormatCompact())
			if flags.verbose {
				terrors.Fprint(errOut, terr)
			}
			continue
		}
		success(out, "%s (%d steps)", file, len(sc.Steps))
	}

	if invalid > 0 {
		return terrors.New("T102").WithDetailf("%d of %d scenario files are invalid", invalid, len(files))
	}
	return nil
}
