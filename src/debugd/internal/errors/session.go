package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
)

// UUIDNotFoundError reports a connection id with no session behind it.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

func (e *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("UUID %q not found", e.UUID)
}

// SessionExistsError reports a second session for the same connection id.
type SessionExistsError struct {
	UUID uuid.UUID
}

func (e *SessionExistsError) Error() string {
	return fmt.Sprintf("session %q already exists", e.UUID)
}

// NoSessionFoundError reports a context that carries no connection id.
type NoSessionFoundError struct{}

func (*NoSessionFoundError) Error() string {
	return "no session found in context"
}

// SessionUUID returns the connection id of the first session error in err's chain.
func SessionUUID(err error) (uuid.UUID, bool) {
	var nf *UUIDNotFoundError
	if stderr.As(err, &nf) {
		return nf.UUID, true
	}
	var se *SessionExistsError
	if stderr.As(err, &se) {
		return se.UUID, true
	}
	return uuid.Nil, false
}
