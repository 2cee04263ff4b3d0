package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/internal/scenario"
	"github.com/vango-dev/tooltip/pkg/telemetry"
)

func runCmd(flags *globalFlags) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios against a headless host",
		Long: `Run scenario files on a virtual clock and check their expectations.

Without arguments every .yaml, .yml and .json file in the scenario
directory from tooltipctl.json is run.

Examples:
  tooltipctl run
  tooltipctl run scenarios/hover.yaml
  tooltipctl run --json scenarios/*.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd, flags, args, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print reports as JSON")

	return cmd
}

// reportJSON is the --json form of a scenario report.
type reportJSON struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Passed    bool     `json:"passed"`
	Steps     int      `json:"steps"`
	ElapsedMS int64    `json:"elapsedMs"`
	Failures  []string `json:"failures,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`

	// Error is the TooltipError JSON rendering.
	Error json.RawMessage `json:"error,omitempty"`
}

func runScenarios(cmd *cobra.Command, flags *globalFlags, args []string, jsonOut bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	files, err := scenarioFiles(cfg, args)
	if err != nil {
		return err
	}

	log := logger(cmd, cfg)
	runner := &scenario.Runner{Logger: log}
	if flags.verbose {
		runner.Observer = telemetry.Log{Logger: log}
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var results []reportJSON
	failed := 0
	for _, file := range files {
		result := reportJSON{Name: filepath.Base(file), Path: file}

		report, err := loadAndRun(cmd, runner, file)
		if report != nil {
			result.Name = report.Name
			result.Steps = len(report.Steps)
			result.ElapsedMS = report.Elapsed.Milliseconds()
			result.Failures = report.Failures()
			result.Warnings = report.Warnings
			if err == nil {
				err = report.Err()
			}
		}
		result.Passed = err == nil
		var terr *terrors.TooltipError
		if err != nil {
			failed++
			terr = terrors.FromError(err, "T140")
			result.Error = json.RawMessage(terr.FormatJSON())
		}
		results = append(results, result)

		if jsonOut {
			continue
		}
		for _, w := range result.Warnings {
			warn(out, "%s: %s", result.Name, w)
		}
		if terr != nil {
			errorMsg(errOut, "%s: %s", result.Name, terr.FormatCompact())
			for _, f := range result.Failures {
				info(errOut, "%s", f)
			}
			if flags.verbose {
				terrors.Fprint(errOut, terr)
			}
			continue
		}
		success(out, "%s (%d steps, %s virtual)", result.Name, result.Steps, report.Elapsed)
	}

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out)
		info(out, "%d passed, %d failed", len(files)-failed, failed)
	}

	if failed > 0 {
		return terrors.New("T140").WithDetailf("%d of %d scenarios failed", failed, len(files))
	}
	return nil
}

func loadAndRun(cmd *cobra.Command, runner *scenario.Runner, file string) (*scenario.Report, error) {
	sc, err := scenario.Load(file)
	if err != nil {
		return nil, err
	}
	return runner.Run(cmd.Context(), sc)
}

// scenarioFiles returns args, or the configured scenario directory's files
// when there are none.
func scenarioFiles(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	files, err := cfg.ScenarioFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, terrors.New("T100").
			WithDetail("No scenario files in " + cfg.ScenariosPath()).
			WithSuggestion("Pass scenario files as arguments or set scenarios.dir in tooltipctl.json")
	}
	return files, nil
}
