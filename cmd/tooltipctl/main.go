// Command tooltipctl runs tooltip scenarios and serves the interactive
// playground.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	terrors "github.com/vango-dev/tooltip/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	dir     string
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		terrors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tooltipctl",
		Short: "Drive tooltip controllers headlessly",
		Long: `tooltipctl exercises tooltip visibility controllers without a browser.

Scenarios describe gestures, virtual time and expected state in YAML
or JSON. The playground serves a page that drives a live controller
over a WebSocket.

Examples:
  tooltipctl run scenarios/hover.yaml
  tooltipctl validate
  tooltipctl serve --addr=:7070
  tooltipctl explain T104`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "Project directory containing tooltipctl.json")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	rootCmd.AddCommand(
		initCmd(flags),
		runCmd(flags),
		validateCmd(flags),
		serveCmd(flags),
		explainCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads and validates the project configuration. A missing
// tooltipctl.json yields the defaults.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.LoadOptional(flags.dir)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger builds the command logger on the command's error stream.
func logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return cfg.Logger(cmd.ErrOrStderr())
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
