package errors

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Category represents the area an error belongs to.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryRuntime  Category = "runtime"
	CategoryScenario Category = "scenario"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// Severity separates hard failures from developer-facing warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Location represents a source location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// TooltipError is a structured error with location, suggestion and documentation.
type TooltipError struct {
	// Code is a unique identifier (e.g., "T001").
	Code string

	// Category is the area the error belongs to.
	Category Category

	// Severity is SeverityError unless the template says otherwise.
	Severity Severity

	// Message is a short description.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Location is the source location, if any.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the problem.
	Suggestion string

	// Example shows the correct approach.
	Example string

	// DocURL links to documentation about this code.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TooltipError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TooltipError) Unwrap() error {
	return e.Wrapped
}

// IsWarning reports whether the entry is a warning rather than a failure.
func (e *TooltipError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// WithLocation adds a source location and reads context lines from file.
func (e *TooltipError) WithLocation(file string, line, column int) *TooltipError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// yamlLine matches the "line N" fragment yaml.v3 puts in its errors.
var yamlLine = regexp.MustCompile(`line (\d+)`)

// WithLocationFromError extracts a line number from a decoder error
// ("yaml: line 12: ...") and attaches it with file as the location.
func (e *TooltipError) WithLocationFromError(file string, err error) *TooltipError {
	if err == nil {
		return e
	}
	m := yamlLine.FindStringSubmatch(err.Error())
	if len(m) == 2 {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil && line > 0 {
			e.WithLocation(file, line, 0)
		}
	}
	return e
}

// WithSuggestion adds a fix suggestion.
func (e *TooltipError) WithSuggestion(s string) *TooltipError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example.
func (e *TooltipError) WithExample(ex string) *TooltipError {
	e.Example = ex
	return e
}

// WithDetail replaces the detailed explanation.
func (e *TooltipError) WithDetail(d string) *TooltipError {
	e.Detail = d
	return e
}

// WithDetailf replaces the detailed explanation with a formatted string.
func (e *TooltipError) WithDetailf(format string, args ...any) *TooltipError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *TooltipError) Wrap(err error) *TooltipError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around targetLine from filename.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a TooltipError from a registered code.
func New(code string) *TooltipError {
	template, ok := registry[code]
	if !ok {
		return &TooltipError{
			Code:     code,
			Severity: SeverityError,
			Message:  "Unknown error",
		}
	}
	severity := template.Severity
	if severity == "" {
		severity = SeverityError
	}
	return &TooltipError{
		Code:     code,
		Category: template.Category,
		Severity: severity,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates an uncoded error with a formatted message.
func Newf(category Category, format string, args ...any) *TooltipError {
	return &TooltipError{
		Category: category,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a TooltipError with code.
func FromError(err error, code string) *TooltipError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TooltipError); ok {
		return te
	}
	return New(code).Wrap(err)
}
