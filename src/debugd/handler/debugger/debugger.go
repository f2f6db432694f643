// Package debugger implements the websocket inbound of the debugger service.
package debugger

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	controller "github.com/grkek/juicy-fruit/src/debugd/controller/debugger"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/client"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/internal/wsfx"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

// Handler accepts debugger connections from the websocket module.
type Handler = wsfx.ConnectionManager

type connectionManager struct {
	ctrl    controller.Controller
	gateway client.Gateway
	logger  *zap.SugaredLogger
	stats   tally.Scope
}

// New constructs a new debugger Handler and registers it with the websocket module.
func New(ctrl controller.Controller, wsmod wsfx.WebsocketModule, gateway client.Gateway, logger *zap.SugaredLogger, stats tally.Scope) (Handler, error) {
	c := &connectionManager{
		ctrl:    ctrl,
		gateway: gateway,
		logger:  logger,
		stats:   stats.SubScope("websocket"),
	}
	if err := wsmod.RegisterConnectionManager(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConnection will store a new connection and return a router that includes its UUID.
func (c *connectionManager) NewConnection(ctx context.Context, conn wsfx.Conn) (wsfx.Router, error) {
	id, err := c.ctrl.InitSession(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	return &router{
		debugger: c.ctrl,
		gateway:  c.gateway,
		uuid:     id,
		logger:   c.logger.With(zap.Stringer("uuid", id)),
		stats:    c.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection.
func (c *connectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	err := c.ctrl.EndSession(ctx, id)
	if err == nil {
		return
	}
	if sid, ok := errors.SessionUUID(err); ok && sid == id {
		c.logger.Debugw("session already ended", zap.Stringer("uuid", id))
		return
	}
	c.logger.Warnw("ending session", zap.Stringer("uuid", id), zap.Error(err))
}
