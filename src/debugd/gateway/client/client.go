// Package client pushes envelopes to connected debugger clients.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/wsfx"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=clientmock/client_mock.go -package=clientmock . Gateway

const (
	_errSendToClient = "sending envelope to client: %w"

	_writeWait = 10 * time.Second
)

// Gateway is used to send replies and unsolicited pushes to a client.
// All calls should include a context with a session UUID, which is used to route the envelope to the correct connection.
type Gateway interface {
	// RegisterClient registers a new client with the gateway. Should be called each time a new connection is opened.
	RegisterClient(ctx context.Context, id uuid.UUID, conn wsfx.Conn) error
	// DeregisterClient removes a client from the gateway. Should be called each time a connection is closed.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	// Send writes one envelope as a text frame. Writes to the same client are serialized.
	Send(ctx context.Context, env *entity.Envelope) error
}

type client struct {
	mu   sync.Mutex
	conn wsfx.Conn
}

type gateway struct {
	clients   map[uuid.UUID]*client
	clientsMu sync.Mutex
	logger    *zap.Logger
	stats     tally.Scope
}

// New returns a Gateway for sending envelopes to connected clients.
func New(logger *zap.Logger, stats tally.Scope) Gateway {
	return &gateway{
		clients: make(map[uuid.UUID]*client),
		logger:  logger,
		stats:   stats.SubScope("gateway"),
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn wsfx.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	if _, ok := g.clients[id]; ok {
		return fmt.Errorf("client with id %q already registered", id)
	}
	g.clients[id] = &client{conn: conn}
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.clients, id)
	return nil
}

func (g *gateway) Send(ctx context.Context, env *entity.Envelope) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}

	data, err := mapper.EnvelopeToWire(env)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(_writeWait)); err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		g.stats.Counter("send_failures").Inc(1)
		return fmt.Errorf(_errSendToClient, err)
	}
	g.stats.Tagged(map[string]string{"type": env.Type}).Counter("envelopes").Inc(1)
	return nil
}

func (g *gateway) getClient(ctx context.Context) (*client, error) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	c, ok := g.clients[id]
	if !ok {
		return nil, fmt.Errorf("client with id %q not found", id)
	}
	return c, nil
}
