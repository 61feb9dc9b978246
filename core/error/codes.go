// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for classifying cliscript
//              failures across the compile and dispatch phases. The codes
//              drive severity defaults, exit status mapping, and structured
//              log output.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial implementation

package error

// Code represents a structured error code for categorizing errors
type Code string

// Error codes for the cliscript compiler and runtime
const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Compile phase
	CodeLexError    Code = "LEX_ERROR"
	CodeSyntaxError Code = "SYNTAX_ERROR"
	CodeSchemaError Code = "SCHEMA_ERROR"

	// Module and function binding
	CodeModuleLoad         Code = "MODULE_LOAD"
	CodeFunctionResolution Code = "FUNCTION_RESOLUTION"

	// Dispatch phase
	CodeActionExecution Code = "ACTION_EXECUTION"
	CodeUsageError      Code = "USAGE_ERROR"

	// Environment
	CodeConfigError Code = "CONFIG_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal,
		CodeLexError, CodeSyntaxError, CodeSchemaError,
		CodeModuleLoad, CodeFunctionResolution,
		CodeActionExecution, CodeUsageError,
		CodeConfigError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexError, CodeSyntaxError, CodeSchemaError:
		return "compile"
	case CodeModuleLoad, CodeFunctionResolution:
		return "binding"
	case CodeActionExecution, CodeUsageError:
		return "dispatch"
	case CodeConfigError:
		return "configuration"
	default:
		return "generic"
	}
}

// IsCompileError reports whether the code belongs to the compile phase.
// Compile errors are the only fatal failure path before dispatch.
func (c Code) IsCompileError() bool {
	return c.Category() == "compile"
}
