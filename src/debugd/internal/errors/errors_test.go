package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no command", err: NoCommandOnWireError, want: true},
		{name: "wrapped no message", err: fmt.Errorf("reading: %w", NoMessageOnWireError), want: true},
		{name: "validation error", err: Missing("address"), want: true},
		{name: "handler failure", err: &CommandError{Code: CodeCommandError, Message: "x"}, want: false},
		{name: "plain error", err: New("sample"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBadRequest(tt.err))
		})
	}
}
