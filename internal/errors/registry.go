package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Severity Severity
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://tooltip.vango.dev/errors/"

// registry maps codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (T001-T019)
	// ============================================

	"T001": {
		Category: CategoryConfig,
		Message:  "Visibility source missing",
		Detail:   "Either an initial value or a controlled value must be set for the visibility cell. Both are unset.",
		DocURL:   docBase + "T001",
	},
	"T002": {
		Category: CategoryConfig,
		Message:  "Negative delay",
		Detail:   "DelayShow and DelayHide must be zero or positive.",
		DocURL:   docBase + "T002",
	},
	"T003": {
		Category: CategoryConfig,
		Message:  "Unknown trigger",
		Detail:   "Triggers are hover, click, right-click, focus or none.",
		DocURL:   docBase + "T003",
	},
	"T004": {
		Category: CategoryConfig,
		Message:  "Invalid placement",
		Detail:   "Placements are top, bottom, left, right or auto, optionally suffixed with -start or -end.",
		DocURL:   docBase + "T004",
	},
	"T005": {
		Category: CategoryConfig,
		Message:  "Host required",
		Detail:   "A controller needs a host environment to arm timers and attach listeners.",
		DocURL:   docBase + "T005",
	},
	"T010": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No tooltipctl.json was found in the directory.",
		DocURL:   docBase + "T010",
	},
	"T011": {
		Category: CategoryConfig,
		Message:  "Config parse failed",
		Detail:   "tooltipctl.json is not valid JSON for the configuration schema.",
		DocURL:   docBase + "T011",
	},
	"T012": {
		Category: CategoryConfig,
		Message:  "Invalid config",
		Detail:   "A tooltipctl.json value is out of range or malformed.",
		DocURL:   docBase + "T012",
	},

	// ============================================
	// Deprecations (T020-T039), reported as warnings
	// ============================================

	"T020": {
		Category: CategoryConfig,
		Severity: SeverityWarning,
		Message:  "Deprecated option",
		Detail:   "This option was renamed. The old value is used when the new option is unset.",
		DocURL:   docBase + "T020",
	},

	// ============================================
	// Runtime Errors (T040-T059)
	// ============================================

	"T040": {
		Category: CategoryRuntime,
		Message:  "Controller closed",
		Detail:   "The controller was closed. Create a new one for a remounted tooltip.",
		DocURL:   docBase + "T040",
	},

	// ============================================
	// Scenario Errors (T100-T119)
	// ============================================

	"T100": {
		Category: CategoryScenario,
		Message:  "Scenario file not found",
		Detail:   "The scenario file does not exist or cannot be read.",
		DocURL:   docBase + "T100",
	},
	"T101": {
		Category: CategoryScenario,
		Message:  "Scenario parse failed",
		Detail:   "The scenario file is not valid YAML or JSON for the scenario schema.",
		DocURL:   docBase + "T101",
	},
	"T102": {
		Category: CategoryScenario,
		Message:  "Invalid scenario",
		Detail:   "The scenario is structurally invalid.",
		DocURL:   docBase + "T102",
	},
	"T103": {
		Category: CategoryScenario,
		Message:  "Unknown step target",
		Detail:   "Step targets are trigger, tooltip, outside, or the name of a nested fixture's element.",
		DocURL:   docBase + "T103",
	},
	"T104": {
		Category: CategoryScenario,
		Message:  "Expectation failed",
		Detail:   "The observed tooltip state did not match the expectation.",
		DocURL:   docBase + "T104",
	},

	// ============================================
	// Protocol Errors (T120-T139)
	// ============================================

	"T120": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The playground could not upgrade the connection to a WebSocket.",
		DocURL:   docBase + "T120",
	},
	"T121": {
		Category: CategoryProtocol,
		Message:  "Invalid playground message",
		Detail:   "Playground messages are JSON objects with a type field.",
		DocURL:   docBase + "T121",
	},

	// ============================================
	// CLI Errors (T140-T159)
	// ============================================

	"T140": {
		Category: CategoryCLI,
		Message:  "Scenario run failed",
		Detail:   "One or more scenarios had failing expectations.",
		DocURL:   docBase + "T140",
	},
	"T141": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The playground server stopped with an error.",
		DocURL:   docBase + "T141",
	},
}

// GetAllCodes returns all registered codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
