package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	terrors "github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/internal/playground"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr       string
		positioner string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tooltip playground",
		Long: `Serve a page that drives a live tooltip controller over a WebSocket.

Routes:
  /          playground page
  /ws        session WebSocket
  /healthz   health and session count
  /metrics   Prometheus metrics

Examples:
  tooltipctl serve
  tooltipctl serve --addr=:8080
  tooltipctl serve --positioner=static`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, addr, positioner)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from tooltipctl.json)")
	cmd.Flags().StringVar(&positioner, "positioner", "", "Default positioner: basic or static")

	return cmd
}

func runServe(cmd *cobra.Command, flags *globalFlags, addr, positioner string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if addr != "" {
		cfg.Playground.Addr = addr
	}
	if positioner != "" {
		cfg.Playground.Positioner = positioner
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	pcfg, err := playgroundConfig(cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	success(out, "Playground at http://%s/", cfg.Playground.Addr)
	info(out, "Press Ctrl+C to stop")

	return playground.New(pcfg).ListenAndServe(cmd.Context())
}

// playgroundConfig maps the project configuration onto the server's.
func playgroundConfig(cmd *cobra.Command, cfg *config.Config) (playground.Config, error) {
	pcfg := playground.DefaultConfig()
	pcfg.Addr = cfg.Playground.Addr
	pcfg.Positioner = cfg.Playground.Positioner
	pcfg.Logger = logger(cmd, cfg)

	timeout, err := cfg.ReadTimeout()
	if err != nil {
		return pcfg, terrors.New("T012").Wrap(err)
	}
	pcfg.ReadTimeout = timeout

	tc, err := cfg.Tooltip.ToConfig()
	if err != nil {
		return pcfg, terrors.New("T012").Wrap(err)
	}
	pcfg.Tooltip = tc
	return pcfg, nil
}
