package factory

import (
	"testing"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
	"go.uber.org/goleak"
)

func TestUUID(t *testing.T) {
	assert.NotEqual(t, UUID(), UUID())
}

func TestRequest(t *testing.T) {
	req := Request(entity.CommandLoad, map[string]any{"instructions": Program(Counting)})
	assert.Equal(t, entity.CommandLoad, req.Command)
	assert.Equal(t, "load", req.Field("command").String())
	assert.Len(t, req.Field("instructions").Array(), 8)

	assert.True(t, gjson.ValidBytes(Message(entity.CommandPing, nil)))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
