// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that logging and
//              reporting can prioritize them consistently. Severity maps
//              each error code category onto a default level.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a minor error that doesn't affect core
	// functionality. Examples: invalid user input, a module that could
	// not be loaded but is never referenced.
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but is
	// reported and recovered at a well-defined boundary.
	SeverityMedium

	// SeverityHigh indicates a serious error that aborts the current
	// phase. Examples: lexer and parser failures, malformed defaults.
	SeverityHigh

	// SeverityCritical indicates an internal inconsistency that should
	// never occur during normal operation.
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// GetSeverityFromCode determines the appropriate severity level for an
// error code.
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeLexError, CodeSyntaxError, CodeSchemaError:
		return SeverityHigh

	case CodeFunctionResolution, CodeActionExecution, CodeConfigError:
		return SeverityMedium

	case CodeModuleLoad, CodeUsageError:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
