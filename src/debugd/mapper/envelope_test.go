package mapper

import (
	"testing"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEnvelopeToWire(t *testing.T) {
	t.Run("fields and type", func(t *testing.T) {
		data, err := EnvelopeToWire(entity.NewEnvelope("loaded", entity.Fields{
			"processAddress":   "1",
			"instructionCount": 3,
		}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"loaded","processAddress":"1","instructionCount":3}`, string(data))
	})

	t.Run("no fields", func(t *testing.T) {
		data, err := EnvelopeToWire(entity.NewEnvelope("pong", nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"pong"}`, string(data))
	})

	t.Run("type wins over a field of the same name", func(t *testing.T) {
		data, err := EnvelopeToWire(entity.NewEnvelope("state", entity.Fields{"type": "other"}))
		require.NoError(t, err)
		assert.Equal(t, "state", gjson.GetBytes(data, "type").String())
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := EnvelopeToWire(&entity.Envelope{})
		assert.Error(t, err)
	})
}

func TestErrorToEnvelope(t *testing.T) {
	env := ErrorToEnvelope(errors.Errorf(errors.CodeNotPaused, "no process is paused"))
	assert.Equal(t, entity.EnvelopeTypeError, env.Type)
	assert.Equal(t, "notPaused", env.Fields["code"])
	assert.Equal(t, "no process is paused", env.Fields["message"])

	env = ErrorToEnvelope(errors.New("boom"))
	assert.Equal(t, "commandError", env.Fields["code"])
	assert.Equal(t, "boom", env.Fields["message"])
}
