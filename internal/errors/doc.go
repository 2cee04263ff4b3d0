// Package errors provides coded, actionable errors and warnings for the
// tooltip controller, the scenario runner and the tooltipctl CLI.
//
// Every error carries a registered code (e.g. "T001") that maps to:
//   - A category (config, runtime, scenario, protocol, cli)
//   - A short message
//   - A longer explanation
//   - A documentation URL
//
// Deprecated configuration keys are not errors. They are reported as
// warnings with the same structure (SeverityWarning) so the CLI can render
// both the same way.
//
// # Usage
//
//	err := errors.New("T101").
//	    WithLocation("scenarios/hover.yaml", 12, 0).
//	    WithSuggestion("Durations are strings such as \"150ms\"")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR T101: Scenario parse failed
//	//
//	//   scenarios/hover.yaml:12
//	//
//	//     10 │ steps:
//	//     11 │   - event: mouseenter
//	//   → 12 │   - advance: 150
//	//     13 │   - expect: {visible: true}
//	//
//	//   Hint: Durations are strings such as "150ms"
//	//
//	//   Learn more: https://tooltip.vango.dev/errors/T101
package errors
