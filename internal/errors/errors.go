package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ValidationError represents an input validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// UserError represents an error caused by user input or configuration.
// Suggestion can provide a concrete fix for the user.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a message and optional suggestion.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// WrapUserError wraps an underlying error with a user-facing message and suggestion.
func WrapUserError(err error, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Err: err}
}

// NotFoundError reports a missing input file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file %q not found", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed delimited input. Line and Column are 1-based
// and zero when unknown.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse error in %s at line %d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PermissionError reports a file that cannot be opened for the given
// operation ("read" or "write").
type PermissionError struct {
	Path string
	Op   string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: cannot %s %q", e.Op, e.Path)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// ClassifyFileError maps an error from opening path into NotFoundError or
// PermissionError. Other errors are wrapped with the operation and path.
// Returns nil if err is nil.
func ClassifyFileError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist) && op == "read":
		return &NotFoundError{Path: path, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &PermissionError{Path: path, Op: op, Err: err}
	default:
		return fmt.Errorf("failed to %s %q: %w", op, path, err)
	}
}

// Type checkers
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

func IsPermissionError(err error) bool {
	var e *PermissionError
	return errors.As(err, &e)
}

// UserSuggestion returns a suggestion string for errors the user can fix.
func UserSuggestion(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Suggestion
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return "Check the path, or pass the file explicitly: redelim convert <path>"
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return parseSuggestion(pe)
	}
	var perm *PermissionError
	if errors.As(err, &perm) {
		if perm.Op == "write" {
			return "Make the file writable, or write elsewhere with --out-file"
		}
		return "Check the file's read permissions"
	}
	return ""
}

func parseSuggestion(pe *ParseError) string {
	if pe.Err == nil {
		return ""
	}
	msg := strings.ToLower(pe.Err.Error())
	switch {
	case strings.Contains(msg, "wrong number of fields"):
		return "Every row must have as many fields as the header; check --delimiter"
	case strings.Contains(msg, "quote"):
		return "Retry with --lazy-quotes to accept stray quotes"
	case strings.Contains(msg, "no header"):
		return "The first line must name the columns"
	}
	return ""
}

// InvalidDelimiterError creates a user-friendly error for an unusable delimiter flag.
func InvalidDelimiterError(flag, value, reason string) error {
	return &UserError{
		Message:    fmt.Sprintf("invalid %s %q: %s", flag, value, reason),
		Suggestion: "Use a single character, or one of: comma, semicolon, tab, pipe, space",
	}
}
