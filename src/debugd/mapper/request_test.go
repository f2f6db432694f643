package mapper

import (
	"context"
	"testing"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/factory"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func codeOf(t *testing.T, err error) errors.Code {
	t.Helper()
	require.Error(t, err)
	var ce *errors.CommandError
	require.ErrorAs(t, err, &ce)
	return ce.Code
}

func TestContextToSessionUUID(t *testing.T) {
	id := factory.UUID()
	got, err := ContextToSessionUUID(context.WithValue(context.Background(), entity.SessionContextKey, id))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ContextToSessionUUID(context.Background())
	var nf *errors.NoSessionFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestMessageToRequest(t *testing.T) {
	tests := []struct {
		name    string
		message string
		command entity.Command
		code    errors.Code
	}{
		{name: "command", message: `{"command":"ping"}`, command: entity.CommandPing},
		{name: "missing command", message: `{"value":1}`, command: ""},
		{name: "non string command", message: `{"command":7}`, command: ""},
		{name: "malformed", message: `{"command":`, code: errors.CodeInvalidJSON},
		{name: "array", message: `[1,2]`, code: errors.CodeInvalidJSON},
		{name: "empty", message: ``, code: errors.CodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := MessageToRequest([]byte(tt.message))
			if tt.code != "" {
				assert.Equal(t, tt.code, codeOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.command, req.Command)
		})
	}
}

func TestRequestAddress(t *testing.T) {
	req := factory.Request(entity.CommandLinkProcesses, map[string]any{
		"first":  "12",
		"second": 13,
		"bad":    "abc",
		"zero":   0,
		"object": map[string]any{},
	})

	addr, err := RequestAddress(req, "first", "address")
	require.NoError(t, err)
	assert.Equal(t, vm.Address(12), addr)

	addr, err = RequestAddress(req, "second", "address")
	require.NoError(t, err)
	assert.Equal(t, vm.Address(13), addr)

	_, err = RequestAddress(req, "missing", "address")
	assert.Equal(t, errors.Code("missingAddress"), codeOf(t, err))

	for _, field := range []string{"bad", "zero", "object"} {
		_, err = RequestAddress(req, field, "address")
		assert.Equal(t, errors.CodeInvalidAddress, codeOf(t, err), field)
	}

	_, ok, err := OptionalAddress(req, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestScalars(t *testing.T) {
	req := factory.Request(entity.CommandSetLocal, map[string]any{
		"index":    2,
		"negative": -1,
		"fraction": 1.5,
		"text":     "hello",
		"empty":    "",
		"flag":     true,
		"null":     nil,
		"id":       7,
		"sid":      "8",
		"ref":      "9",
	})

	v, err := RequestInt(req, "index")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	_, err = RequestInt(req, "fraction")
	assert.Equal(t, errors.Code("invalidFraction"), codeOf(t, err))

	_, _, err = OptionalNonNegative(req, "negative")
	assert.Equal(t, errors.CodeInvalidValue, codeOf(t, err))

	n, ok, err := OptionalNonNegative(req, "index")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)

	s, err := RequestString(req, "text")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = RequestString(req, "empty")
	assert.Equal(t, errors.Code("missingEmpty"), codeOf(t, err))

	_, err = RequestString(req, "flag")
	assert.Equal(t, errors.Code("invalidFlag"), codeOf(t, err))

	b, err := RequestBool(req, "flag")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = RequestBool(req, "null")
	assert.Equal(t, errors.Code("missingNull"), codeOf(t, err))

	id, err := RequestID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	id, err = RequestID(req, "sid")
	require.NoError(t, err)
	assert.Equal(t, "8", id)

	ref, err := RequestMonitorRef(req)
	require.NoError(t, err)
	assert.Equal(t, vm.MonitorRef(9), ref)

	value, err := RequestValue(req, "null")
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = RequestValue(req, "missing")
	assert.Equal(t, errors.Code("missingMissing"), codeOf(t, err))
}

func TestRequestMonitorRef(t *testing.T) {
	_, err := RequestMonitorRef(factory.Request(entity.CommandDemonitorProcess, nil))
	assert.Equal(t, errors.Code("missingRef"), codeOf(t, err))

	_, err = RequestMonitorRef(factory.Request(entity.CommandDemonitorProcess, map[string]any{"ref": "x"}))
	assert.Equal(t, errors.CodeInvalidRef, codeOf(t, err))
}

func TestRequestInstructions(t *testing.T) {
	req := factory.Request(entity.CommandLoad, map[string]any{
		"instructions": factory.Program(factory.Counting),
		"broken":       factory.Program(`["NOPE"]`),
	})

	program, err := RequestInstructions(req, "instructions")
	require.NoError(t, err)
	assert.Len(t, program, 8)

	_, err = RequestInstructions(req, "broken")
	assert.Equal(t, errors.CodeParseError, codeOf(t, err))

	_, err = RequestInstructions(req, "missing")
	assert.Equal(t, errors.Code("missingMissing"), codeOf(t, err))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
