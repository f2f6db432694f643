package debugger

import (
	"context"
	"fmt"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/grkek/juicy-fruit/src/debugd/controller/debugger/debuggermock"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/factory"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/client/clientmock"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/internal/wsfx/wsfxmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	debugger := debuggermock.NewMockController(ctrl)
	gateway := clientmock.NewMockGateway(ctrl)

	t.Run("registers with the websocket module", func(t *testing.T) {
		wsmod := wsfxmock.NewMockWebsocketModule(ctrl)
		wsmod.EXPECT().RegisterConnectionManager(gomock.Any()).Return(nil)

		h, err := New(debugger, wsmod, gateway, zap.NewNop().Sugar(), tally.NoopScope)
		require.NoError(t, err)
		assert.NotNil(t, h)
	})

	t.Run("registration failure", func(t *testing.T) {
		wsmod := wsfxmock.NewMockWebsocketModule(ctrl)
		wsmod.EXPECT().RegisterConnectionManager(gomock.Any()).Return(errors.New("sample"))

		h, err := New(debugger, wsmod, gateway, zap.NewNop().Sugar(), tally.NoopScope)
		assert.Error(t, err)
		assert.Nil(t, h)
	})
}

func TestNewConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	debugger := debuggermock.NewMockController(ctrl)
	conn := wsfxmock.NewMockConn(ctrl)
	c := &connectionManager{
		ctrl:    debugger,
		gateway: clientmock.NewMockGateway(ctrl),
		logger:  zap.NewNop().Sugar(),
		stats:   tally.NoopScope,
	}

	t.Run("valid", func(t *testing.T) {
		sampleUUID := factory.UUID()
		debugger.EXPECT().InitSession(gomock.Any(), conn).Return(sampleUUID, nil)

		r, err := c.NewConnection(context.Background(), conn)
		require.NoError(t, err)
		assert.Equal(t, sampleUUID, r.UUID())
	})

	t.Run("session failure", func(t *testing.T) {
		debugger.EXPECT().InitSession(gomock.Any(), conn).Return(uuid.Nil, errors.New("sample"))

		r, err := c.NewConnection(context.Background(), conn)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error while creating new connection")
		assert.Nil(t, r)
	})
}

func TestRemoveConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	debugger := debuggermock.NewMockController(ctrl)
	core, logs := observer.New(zap.WarnLevel)
	c := &connectionManager{
		ctrl:    debugger,
		gateway: clientmock.NewMockGateway(ctrl),
		logger:  zap.New(core).Sugar(),
		stats:   tally.NoopScope,
	}

	t.Run("ends the session", func(t *testing.T) {
		sampleUUID := factory.UUID()
		debugger.EXPECT().EndSession(gomock.Any(), sampleUUID).DoAndReturn(func(ctx context.Context, id uuid.UUID) error {
			assert.Equal(t, sampleUUID, ctx.Value(entity.SessionContextKey))
			return nil
		})

		c.RemoveConnection(context.Background(), sampleUUID)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("logs failures", func(t *testing.T) {
		sampleUUID := factory.UUID()
		debugger.EXPECT().EndSession(gomock.Any(), sampleUUID).Return(errors.New("sample"))

		c.RemoveConnection(context.Background(), sampleUUID)
		assert.Equal(t, 1, logs.FilterMessage("ending session").Len())
	})

	t.Run("session already gone", func(t *testing.T) {
		sampleUUID := factory.UUID()
		debugger.EXPECT().EndSession(gomock.Any(), sampleUUID).Return(fmt.Errorf("removing: %w", &errors.UUIDNotFoundError{UUID: sampleUUID}))

		before := logs.Len()
		c.RemoveConnection(context.Background(), sampleUUID)
		assert.Equal(t, before, logs.Len(), "debug logs are below the observed level")
	})

	t.Run("another session missing", func(t *testing.T) {
		sampleUUID := factory.UUID()
		debugger.EXPECT().EndSession(gomock.Any(), sampleUUID).Return(&errors.UUIDNotFoundError{UUID: factory.UUID()})

		before := logs.FilterMessage("ending session").Len()
		c.RemoveConnection(context.Background(), sampleUUID)
		assert.Equal(t, before+1, logs.FilterMessage("ending session").Len())
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
