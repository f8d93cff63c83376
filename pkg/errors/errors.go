// Package errors defines the coded errors returned by the texture packer.
//
// Every failure of the pipeline carries a [Code] so the CLI and library
// callers can branch on the kind of failure without matching strings:
//
//   - DUPLICATE_NAME: a sprite name was registered twice
//   - DECODE_FAILED: a sprite source could not be read or decoded
//   - PACKING_FAILED: the packing service could not place every sprite
//   - ENCODE_FAILED, WRITE_FAILED: a descriptor or texture could not be produced
//   - NOT_GENERATED: Write was called before a successful Generate
//   - INVALID_INPUT, INVALID_OPTIONS: validation failures
//
// Usage:
//
//	if errors.Is(err, errors.ErrCodeDecode) {
//	    name, _ := errors.SpriteName(err)
//	    tp.Remove(name)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error kind.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeDuplicateName  Code = "DUPLICATE_NAME"

	ErrCodeDecode       Code = "DECODE_FAILED"
	ErrCodePacking      Code = "PACKING_FAILED"
	ErrCodeEncode       Code = "ENCODE_FAILED"
	ErrCodeWrite        Code = "WRITE_FAILED"
	ErrCodeNotGenerated Code = "NOT_GENERATED"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error without a cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with cause as its cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// coded finds the outermost *Error in err's chain.
func coded(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := coded(err)
	return ok && e.Code == code
}

// GetCode returns the code of err, or "" for uncoded errors.
func GetCode(err error) Code {
	if e, ok := coded(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without its code and
// cause. Other errors are returned as-is.
func UserMessage(err error) string {
	if e, ok := coded(err); ok {
		return e.Message
	}
	return err.Error()
}

// SpriteError attaches the offending sprite name to a pipeline failure.
// It is used as the cause of DECODE_FAILED errors so callers can find
// which input to remove before retrying.
type SpriteError struct {
	Name string
	Err  error
}

func (e *SpriteError) Error() string {
	return fmt.Sprintf("sprite %q: %v", e.Name, e.Err)
}

func (e *SpriteError) Unwrap() error { return e.Err }

// SpriteName returns the name of the sprite that caused err, if any.
func SpriteName(err error) (string, bool) {
	var se *SpriteError
	if errors.As(err, &se) {
		return se.Name, true
	}
	return "", false
}
