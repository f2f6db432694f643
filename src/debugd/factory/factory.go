package factory

import (
	"encoding/json"

	"github.com/gofrs/uuid"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// Message is a factory for a raw client message carrying the command and fields.
func Message(command entity.Command, fields map[string]any) []byte {
	data := []byte("{}")
	if len(fields) > 0 {
		data, _ = json.Marshal(fields)
	}
	data, _ = sjson.SetBytes(data, "command", string(command))
	return data
}

// Request is a factory for a decoded request carrying the command and fields.
func Request(command entity.Command, fields map[string]any) *entity.Request {
	return &entity.Request{Command: command, Body: gjson.ParseBytes(Message(command, fields))}
}

// Program is a factory for a raw JSON program; use it as a request field value.
func Program(program string) json.RawMessage {
	return json.RawMessage(program)
}

// Counting is a program that prints 1, 2 and 3 and halts.
const Counting = `["NOP", {"op":"PUSH","arg":1}, "PRINT", {"op":"PUSH","arg":2}, "PRINT", {"op":"PUSH","arg":3}, "PRINT", "HALT"]`

// Forever is a program that never terminates on its own.
const Forever = `[{"op":"JUMP","arg":0}]`

// Waiting is a program that blocks on its mailbox.
const Waiting = `["RECEIVE", "PRINT"]`
