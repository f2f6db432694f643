package errors

import (
	stderr "errors"
	"fmt"
)

// Code is the machine readable error code sent in error envelopes.
type Code string

// Protocol error codes.
const (
	CodeInvalidJSON        Code = "invalidJson"
	CodeUnknownCommand     Code = "unknownCommand"
	CodeCommandError       Code = "commandError"
	CodeUnsupportedFormat  Code = "unsupportedFormat"
	CodeNotInitialized     Code = "notInitialized"
	CodeAlreadyInitialized Code = "alreadyInitialized"
	CodeNotPaused          Code = "notPaused"
	CodeNotRunning         Code = "notRunning"
	CodeAlreadyRunning     Code = "alreadyRunning"
	CodeNoProgram          Code = "noProgram"
	CodeParseError         Code = "parseError"
	CodeInvalidCondition   Code = "invalidCondition"
	CodeInvalidExpression  Code = "invalidExpression"
	CodeInvalidStrategy    Code = "invalidStrategy"
	CodeInvalidRestart     Code = "invalidRestart"
	CodeAlreadyRegistered  Code = "alreadyRegistered"
	CodeNotFound           Code = "notFound"
	CodeNotImplemented     Code = "notImplemented"

	// Codes shared by several fields.
	CodeInvalidAddress Code = "invalidAddress"
	CodeInvalidValue   Code = "invalidValue"
	CodeInvalidRef     Code = "invalidRef"
)

// CommandError is a failed command as reported to the client.
type CommandError struct {
	Code    Code
	Message string
}

// Error is an implementation of the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds a CommandError with a formatted message.
func Errorf(code Code, format string, args ...any) *CommandError {
	return &CommandError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Missing reports a required request field that is absent, as code "missing<Field>".
func Missing(field string) *CommandError {
	return &CommandError{Code: Code("missing" + capitalize(field)), Message: fmt.Sprintf("field %q is required", field)}
}

// Invalid reports a request field with the wrong type or value, as code "invalid<Field>".
func Invalid(field string, reason string) *CommandError {
	return &CommandError{Code: Code("invalid" + capitalize(field)), Message: fmt.Sprintf("field %q %s", field, reason)}
}

// NotFound reports an unknown resource id.
func NotFound(kind string, id string) *CommandError {
	return &CommandError{Code: CodeNotFound, Message: fmt.Sprintf("%s %q not found", kind, id)}
}

// ToCommandError returns the CommandError in err's chain or wraps err as a commandError.
func ToCommandError(err error) *CommandError {
	var ce *CommandError
	if stderr.As(err, &ce) {
		return ce
	}
	return &CommandError{Code: CodeCommandError, Message: err.Error()}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
