package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/factory"
	"github.com/grkek/juicy-fruit/src/debugd/internal/wsfx/wsfxmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func getTestGateway(t *testing.T) (*gateway, *wsfxmock.MockConn, context.Context) {
	t.Helper()
	ctrl := gomock.NewController(t)
	g := New(zap.NewNop(), tally.NewTestScope("testing", nil)).(*gateway)

	id := factory.UUID()
	conn := wsfxmock.NewMockConn(ctrl)
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
	require.NoError(t, g.RegisterClient(ctx, id, conn))
	return g, conn, ctx
}

func TestRegisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := gateway{
		clients: make(map[uuid.UUID]*client),
		logger:  zap.NewNop(),
	}

	for i := 0; i < 10; i++ {
		err := g.RegisterClient(ctx, factory.UUID(), wsfxmock.NewMockConn(ctrl))
		assert.NoError(t, err)
	}
	assert.Len(t, g.clients, 10)

	id := factory.UUID()
	require.NoError(t, g.RegisterClient(ctx, id, wsfxmock.NewMockConn(ctrl)))
	assert.Error(t, g.RegisterClient(ctx, id, wsfxmock.NewMockConn(ctrl)))
}

func TestDeregisterClient(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	g := gateway{
		clients: make(map[uuid.UUID]*client),
		logger:  zap.NewNop(),
	}

	// Set up 10 sample clients.
	for i := 0; i < 10; i++ {
		require.NoError(t, g.RegisterClient(ctx, factory.UUID(), wsfxmock.NewMockConn(ctrl)))
	}

	// Remove clients one by one and confirm removal.
	for key := range g.clients {
		assert.NoError(t, g.DeregisterClient(ctx, key))
		assert.Nil(t, g.clients[key])
	}
	assert.Len(t, g.clients, 0)
}

func TestSend(t *testing.T) {
	t.Run("writes a text frame", func(t *testing.T) {
		g, conn, ctx := getTestGateway(t)

		conn.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil)
		conn.EXPECT().WriteMessage(websocket.TextMessage, gomock.Any()).DoAndReturn(func(_ int, data []byte) error {
			assert.JSONEq(t, `{"type":"pong"}`, string(data))
			return nil
		})

		assert.NoError(t, g.Send(ctx, entity.NewEnvelope("pong", nil)))
		snapshot := g.stats.(tally.TestScope).Snapshot()
		assert.Contains(t, snapshot.Counters(), "testing.gateway.envelopes+type=pong")
	})

	t.Run("write failure", func(t *testing.T) {
		g, conn, ctx := getTestGateway(t)

		conn.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil)
		conn.EXPECT().WriteMessage(gomock.Any(), gomock.Any()).Return(errors.New("broken pipe"))

		assert.Error(t, g.Send(ctx, entity.NewEnvelope("pong", nil)))
	})

	t.Run("invalid envelope", func(t *testing.T) {
		g, _, ctx := getTestGateway(t)
		assert.Error(t, g.Send(ctx, entity.NewEnvelope("", nil)))
	})

	t.Run("no session in context", func(t *testing.T) {
		g, _, _ := getTestGateway(t)
		assert.Error(t, g.Send(context.Background(), entity.NewEnvelope("pong", nil)))
	})

	t.Run("unknown client", func(t *testing.T) {
		g, _, _ := getTestGateway(t)
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, factory.UUID())
		assert.Error(t, g.Send(ctx, entity.NewEnvelope("pong", nil)))
	})

	t.Run("concurrent sends are serialized", func(t *testing.T) {
		g, conn, ctx := getTestGateway(t)

		var inflight atomic.Int32
		conn.EXPECT().SetWriteDeadline(gomock.Any()).Return(nil).Times(20)
		conn.EXPECT().WriteMessage(gomock.Any(), gomock.Any()).DoAndReturn(func(int, []byte) error {
			assert.Equal(t, int32(1), inflight.Add(1), "concurrent write")
			time.Sleep(time.Millisecond)
			inflight.Add(-1)
			return nil
		}).Times(20)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, g.Send(ctx, entity.NewEnvelope(entity.PushStdout, entity.Fields{"data": "1\n"})))
			}()
		}
		wg.Wait()
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
