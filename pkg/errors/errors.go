// Package errors defines the error types used across dotweave.
//
// Every failure that leaves a filesystem or template operation is
// wrapped into an Error carrying the path it concerns and a stable
// code. Concurrent traversal branches collect their failures into a
// List; lists are merged at the join points of the tree walk and only
// the top-level caller decides overall success from whether the final
// list is empty.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies an error category for stable testing
type ErrorCode string

const (
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Filesystem errors
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrDirList    ErrorCode = "DIR_LIST"
	ErrFileStat   ErrorCode = "FILE_STAT"
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileCopy   ErrorCode = "FILE_COPY"
	ErrFileRemove ErrorCode = "FILE_REMOVE"
	ErrSymlink    ErrorCode = "SYMLINK_CREATE"

	// Template errors
	ErrTemplateParse  ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"

	// Variables file errors
	ErrVariablesParse ErrorCode = "VARIABLES_PARSE"
	ErrVariableType   ErrorCode = "VARIABLE_TYPE"
)

// Error is a failure located at the filesystem path it concerns.
// Immutable once constructed.
type Error struct {
	Code    ErrorCode
	Path    string
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Wrapped != nil && e.Message != "":
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Path, e.Message, e.Wrapped)
	case e.Wrapped != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Path, e.Wrapped)
	default:
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
	}
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports code equality so tests can match with errors.Is
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates an Error with the given code, path and message
func New(code ErrorCode, path, message string) *Error {
	return &Error{Code: code, Path: path, Message: message}
}

// Newf creates an Error with a formatted message
func Newf(code ErrorCode, path, format string, args ...interface{}) *Error {
	return &Error{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and location to an existing error. Returns nil
// when err is nil so call sites can wrap unconditionally.
func Wrap(err error, code ErrorCode, path string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Path: path, Wrapped: err}
}

// List accumulates located errors from a traversal. The zero value is
// an empty, usable list. List carries no lock: each concurrent branch
// owns a private list and merges happen only at single-threaded join
// points.
type List struct {
	errs []*Error
}

// NewList creates a list holding the given errors, dropping nils
func NewList(errs ...*Error) *List {
	l := &List{}
	for _, e := range errs {
		l.Add(e)
	}
	return l
}

// Add appends one located error. Adding nil is a no-op.
func (l *List) Add(e *Error) {
	if e == nil {
		return
	}
	l.errs = append(l.errs, e)
}

// Merge appends all of other's errors, preserving insertion order.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.errs = append(l.errs, other.errs...)
}

// IsEmpty reports whether no errors were recorded
func (l *List) IsEmpty() bool {
	return l == nil || len(l.errs) == 0
}

// Len returns the number of recorded errors
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.errs)
}

// Errors returns the recorded errors in insertion order
func (l *List) Errors() []*Error {
	if l == nil {
		return nil
	}
	return l.errs
}

// Error implements the error interface with the full report
func (l *List) Error() string {
	return l.Report()
}

// ErrOrNil returns the list as an error, or nil when it is empty.
// Returning the typed nil *List as error would be non-nil, hence this
// helper.
func (l *List) ErrOrNil() error {
	if l.IsEmpty() {
		return nil
	}
	return l
}

// Report renders the consolidated failure report: a count followed by
// one location and message per error.
func (l *List) Report() string {
	if l.IsEmpty() {
		return "no errors"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:\n", len(l.errs))
	for i, e := range l.errs {
		fmt.Fprintf(&b, "  err %02d at %s:\n", i, e.Path)
		if e.Wrapped != nil {
			fmt.Fprintf(&b, "      [%s] %v\n", e.Code, e.Wrapped)
		} else {
			fmt.Fprintf(&b, "      [%s] %s\n", e.Code, e.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
