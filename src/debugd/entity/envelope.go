package entity

import "github.com/tidwall/gjson"

// Request is one decoded client message.
type Request struct {
	Command Command
	Body    gjson.Result
}

// Field returns the named top level field of the request.
func (r *Request) Field(name string) gjson.Result {
	return r.Body.Get(name)
}

// Has reports whether the named field is present and not null.
func (r *Request) Has(name string) bool {
	f := r.Field(name)
	return f.Exists() && f.Type != gjson.Null
}

// Fields is the body of an outgoing envelope.
type Fields map[string]any

// Envelope is a server to client message. Its fields are serialized alongside "type".
type Envelope struct {
	Type   string
	Fields Fields
}

// NewEnvelope builds an envelope of the given type.
func NewEnvelope(envelopeType string, fields Fields) *Envelope {
	return &Envelope{Type: envelopeType, Fields: fields}
}
