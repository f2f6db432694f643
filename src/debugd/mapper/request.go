package mapper

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofrs/uuid"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
	"github.com/tidwall/gjson"
)

// ContextToSessionUUID extracts the UUID from a context
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}

// MessageToRequest decodes a text frame. The command defaults to the empty string.
func MessageToRequest(data []byte) (*entity.Request, error) {
	if len(data) == 0 {
		return nil, errors.Errorf(errors.CodeInvalidJSON, "%v", errors.NoMessageOnWireError)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.Errorf(errors.CodeInvalidJSON, "message is not valid JSON")
	}
	body := gjson.ParseBytes(data)
	if !body.IsObject() {
		return nil, errors.Errorf(errors.CodeInvalidJSON, "message must be a JSON object")
	}

	var cmd string
	if c := body.Get("command"); c.Type == gjson.String {
		cmd = c.Str
	}
	return &entity.Request{Command: entity.Command(cmd), Body: body}, nil
}

// RequestAddress decodes a required address field. When the field is absent the
// error code is built from missing, so callers can report the logical argument name.
func RequestAddress(req *entity.Request, field string, missing string) (vm.Address, error) {
	if !req.Has(field) {
		return 0, errors.Missing(missing)
	}
	return resultToAddress(field, req.Field(field))
}

// OptionalAddress decodes an address field that may be omitted.
func OptionalAddress(req *entity.Request, field string) (vm.Address, bool, error) {
	if !req.Has(field) {
		return 0, false, nil
	}
	addr, err := resultToAddress(field, req.Field(field))
	return addr, err == nil, err
}

func resultToAddress(field string, r gjson.Result) (vm.Address, error) {
	var (
		addr vm.Address
		err  error
	)
	switch r.Type {
	case gjson.String:
		addr, err = vm.ParseAddress(r.Str)
	case gjson.Number:
		addr, err = vm.ParseAddress(r.Raw)
	default:
		err = fmt.Errorf("invalid address %s", r.Raw)
	}
	if err != nil {
		return 0, errors.Errorf(errors.CodeInvalidAddress, "field %q: %v", field, err)
	}
	return addr, nil
}

// RequestID decodes a required identifier sent either as a decimal string or an integer.
func RequestID(req *entity.Request, field string) (string, error) {
	if !req.Has(field) {
		return "", errors.Missing(field)
	}
	r := req.Field(field)
	switch r.Type {
	case gjson.String:
		if r.Str == "" {
			return "", errors.Missing(field)
		}
		return r.Str, nil
	case gjson.Number:
		if _, err := strconv.ParseUint(r.Raw, 10, 64); err == nil {
			return r.Raw, nil
		}
	}
	return "", errors.Invalid(field, "must be a decimal string or a non-negative integer")
}

// RequestMonitorRef decodes the "ref" field of a demonitor request.
func RequestMonitorRef(req *entity.Request) (vm.MonitorRef, error) {
	if !req.Has("ref") {
		return 0, errors.Missing("ref")
	}
	r := req.Field("ref")
	s := r.Raw
	if r.Type == gjson.String {
		s = r.Str
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, errors.Errorf(errors.CodeInvalidRef, "invalid monitor ref %s", r.Raw)
	}
	return vm.MonitorRef(v), nil
}

// RequestString decodes a required non-empty string field.
func RequestString(req *entity.Request, field string) (string, error) {
	if !req.Has(field) {
		return "", errors.Missing(field)
	}
	r := req.Field(field)
	if r.Type != gjson.String {
		return "", errors.Invalid(field, "must be a string")
	}
	if r.Str == "" {
		return "", errors.Missing(field)
	}
	return r.Str, nil
}

// OptionalString decodes a string field that may be omitted.
func OptionalString(req *entity.Request, field string) (string, bool, error) {
	if !req.Has(field) {
		return "", false, nil
	}
	r := req.Field(field)
	if r.Type != gjson.String {
		return "", false, errors.Invalid(field, "must be a string")
	}
	return r.Str, true, nil
}

// RequestBool decodes a required boolean field.
func RequestBool(req *entity.Request, field string) (bool, error) {
	if !req.Has(field) {
		return false, errors.Missing(field)
	}
	r := req.Field(field)
	if !r.IsBool() {
		return false, errors.Invalid(field, "must be a boolean")
	}
	return r.Bool(), nil
}

// OptionalBool decodes a boolean field that may be omitted. Type errors use the invalidValue code.
func OptionalBool(req *entity.Request, field string) (bool, bool, error) {
	if !req.Has(field) {
		return false, false, nil
	}
	r := req.Field(field)
	if !r.IsBool() {
		return false, false, errors.Errorf(errors.CodeInvalidValue, "field %q must be a boolean", field)
	}
	return r.Bool(), true, nil
}

// RequestInt decodes a required integer field.
func RequestInt(req *entity.Request, field string) (int64, error) {
	if !req.Has(field) {
		return 0, errors.Missing(field)
	}
	v, ok := resultToInt(req.Field(field))
	if !ok {
		return 0, errors.Invalid(field, "must be an integer")
	}
	return v, nil
}

// OptionalNonNegative decodes a non-negative integer field that may be omitted.
// Type errors use the invalidValue code.
func OptionalNonNegative(req *entity.Request, field string) (int64, bool, error) {
	if !req.Has(field) {
		return 0, false, nil
	}
	v, ok := resultToInt(req.Field(field))
	if !ok || v < 0 {
		return 0, false, errors.Errorf(errors.CodeInvalidValue, "field %q must be a non-negative integer", field)
	}
	return v, true, nil
}

func resultToInt(r gjson.Result) (int64, bool) {
	switch r.Type {
	case gjson.Number:
		v, err := strconv.ParseInt(r.Raw, 10, 64)
		if err == nil {
			return v, true
		}
		if f := r.Num; f == float64(int64(f)) {
			return int64(f), true
		}
	case gjson.String:
		v, err := strconv.ParseInt(r.Str, 10, 64)
		return v, err == nil
	}
	return 0, false
}

// RequestValue decodes a required field holding an arbitrary VM value. JSON null is a valid value.
func RequestValue(req *entity.Request, field string) (vm.Value, error) {
	r := req.Field(field)
	if !r.Exists() {
		return nil, errors.Missing(field)
	}
	return vm.ValueFromJSON(r), nil
}

// RequestInstructions decodes the program carried in field.
func RequestInstructions(req *entity.Request, field string) ([]vm.Instruction, error) {
	if !req.Has(field) {
		return nil, errors.Missing(field)
	}
	program, err := vm.ParseInstructions(req.Field(field))
	if err != nil {
		return nil, errors.Errorf(errors.CodeParseError, "%v", err)
	}
	return program, nil
}
