// Package kikierr defines the error kinds shared by the task tracker.
//
// Every failure a user can trigger is an *Error carrying one Kind:
//
//   - KindParse: unknown command or a malformed argument shape
//   - KindValidation: empty field, bad date, end before start
//   - KindIndexOutOfRange: task number outside the current list
//   - KindStorageCorruption: a persisted line that cannot be decoded
//   - KindStorageIO: the save file could not be read or written
//
// Callers switch on KindOf(err) instead of asserting concrete types.
package kikierr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindParse
	KindValidation
	KindIndexOutOfRange
	KindStorageCorruption
	KindStorageIO
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindIndexOutOfRange:
		return "index_out_of_range"
	case KindStorageCorruption:
		return "storage_corruption"
	case KindStorageIO:
		return "storage_io"
	default:
		return "unknown"
	}
}

// Code narrows a Kind to the specific rule that failed.
type Code string

const (
	CodeUnknownCommand  Code = "unknown_command"
	CodeMissingArgument Code = "missing_argument"
	CodeNotANumber      Code = "not_a_number"
	CodeMissingMarker   Code = "missing_marker"
	CodeEmptyField      Code = "empty_field"
	CodeInvalidDate     Code = "invalid_date"
	CodeDateOrder       Code = "date_order"
	CodeInvalidField    Code = "invalid_field"
	CodeOutOfRange      Code = "out_of_range"
	CodeCorruptLine     Code = "corrupt_line"
	CodeUnknownTag      Code = "unknown_tag"
	CodeReadFailed      Code = "read_failed"
	CodeWriteFailed     Code = "write_failed"
)

// Error is the single error type used across the tracker.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message == "":
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with a formatted message.
func New(kind Kind, code Code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause with a formatted message.
func Wrap(kind Kind, code Code, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the Code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
