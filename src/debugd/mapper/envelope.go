package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/tidwall/sjson"
)

// EnvelopeToWire serializes an envelope into a JSON object carrying its type.
func EnvelopeToWire(env *entity.Envelope) ([]byte, error) {
	if env == nil || env.Type == "" {
		return nil, errors.New("envelope type is required")
	}

	data := []byte("{}")
	if len(env.Fields) > 0 {
		var err error
		if data, err = json.Marshal(env.Fields); err != nil {
			return nil, fmt.Errorf("marshalling %s envelope: %w", env.Type, err)
		}
	}
	return sjson.SetBytes(data, "type", env.Type)
}

// ErrorToEnvelope converts any error into an error envelope.
func ErrorToEnvelope(err error) *entity.Envelope {
	ce := errors.ToCommandError(err)
	return entity.NewEnvelope(entity.EnvelopeTypeError, entity.Fields{
		"code":    string(ce.Code),
		"message": ce.Message,
	})
}
