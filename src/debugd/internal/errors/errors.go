package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderr.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderr.As(err, target)
}

var (
	// NoCommandOnWireError reports that the message has no command field.
	NoCommandOnWireError = New("command is required")
	// NoMessageOnWireError reports that the connection delivered an empty message.
	NoMessageOnWireError = New("no message on wire")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	if stderr.Is(e, NoCommandOnWireError) || stderr.Is(e, NoMessageOnWireError) {
		return true
	}
	var ce *CommandError
	if !stderr.As(e, &ce) {
		return false
	}
	return ce.Code != CodeCommandError
}
