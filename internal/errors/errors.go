package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// RepositoryUnavailable indicates the commit source cannot produce history
	// for the given location (not a repository, inaccessible, corrupted)
	RepositoryUnavailable ErrorCode = "REPOSITORY_UNAVAILABLE"
	// InvalidFilter indicates a supplied path-prefix filter is malformed
	InvalidFilter ErrorCode = "INVALID_FILTER"
	// InvalidConfig indicates the configuration failed validation
	InvalidConfig ErrorCode = "INVALID_CONFIG"
	// Timeout indicates a git command exceeded its configured timeout
	Timeout ErrorCode = "TIMEOUT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// InstallTool suggests installing a tool
	InstallTool FixActionType = "install-tool"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	Tool        string        `json:"tool,omitempty"`
}

// FrecError represents a frec error with code, message, and suggestions
type FrecError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewFrecError creates a new FrecError
func NewFrecError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *FrecError {
	return &FrecError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *FrecError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *FrecError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *FrecError) WithDetails(details interface{}) *FrecError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	RepositoryUnavailable: {
		{
			Type:        RunCommand,
			Command:     "git status",
			Safe:        true,
			Description: "Verify you're in a git repository",
		},
		{
			Type:        RunCommand,
			Command:     "git init",
			Safe:        false,
			Description: "Initialize a git repository",
		},
	},
	InvalidConfig: {
		{
			Type:        RunCommand,
			Command:     "frec doctor",
			Safe:        true,
			Description: "Check configuration files for problems",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
