package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	terrors "github.com/vango-dev/tooltip/internal/errors"
)

func explainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Describe error codes",
		Long: `Print the registered error codes, or the details of one code.

Examples:
  tooltipctl explain
  tooltipctl explain T104`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listCodes(cmd)
				return nil
			}
			return explainCode(cmd, args[0])
		},
	}

	return cmd
}

func listCodes(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	for _, code := range terrors.GetAllCodes() {
		tmpl, _ := terrors.GetTemplate(code)
		fmt.Fprintf(out, "%s  %-9s %s\n", code, tmpl.Category, tmpl.Message)
	}
}

func explainCode(cmd *cobra.Command, code string) error {
	code = strings.ToUpper(code)
	tmpl, ok := terrors.GetTemplate(code)
	if !ok {
		return terrors.Newf(terrors.CategoryCLI, "unknown error code %q", code).
			WithSuggestion("Run 'tooltipctl explain' to list codes")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", code, tmpl.Message)
	info(out, "Category: %s", tmpl.Category)
	if tmpl.Severity != "" {
		info(out, "Severity: %s", tmpl.Severity)
	}
	if tmpl.Detail != "" {
		info(out, "%s", tmpl.Detail)
	}
	info(out, "Learn more: %s", tmpl.DocURL)
	return nil
}
