package docsync

import (
	"errors"
	"fmt"
	"strings"
)

// Application error codes.
const (
	EINTERNAL       = "internal"
	EINVALID        = "invalid"
	ENOTFOUND       = "not_found"
	ENOTIMPLEMENTED = "not_implemented"

	// EFETCH reports a clone or download that could not be completed.
	EFETCH = "fetch"
	// EEXTRACT reports an unsupported or corrupt archive.
	EEXTRACT = "extract"
	// EUNSAFE reports a filesystem operation refused before any mutation.
	EUNSAFE = "unsafe"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docsync error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ce *CloneError
	if errors.As(err, &ce) {
		return EFETCH
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ce *CloneError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return "Internal error."
}

// CloneError reports a repository clone that failed after any branch
// fallback was attempted.
type CloneError struct {
	URL     string
	Branch  string
	Command string
	Err     error
}

func (e *CloneError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to clone %s (branch %s)", e.URL, e.Branch)
	if e.Command != "" {
		fmt.Fprintf(&b, " [%s]", e.Command)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *CloneError) Unwrap() error {
	return e.Err
}
