package wsfx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/grkek/juicy-fruit/src/debugd/internal/serverinfofile"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=wsfxmock/websocket_mock.go -package=wsfxmock . WebsocketModule,Conn,Router,ConnectionManager

const (
	_configKeyWebsocket = "websocket"
	_outputKey          = "ws-address"

	_writeWait         = 10 * time.Second
	_readHeaderTimeout = 10 * time.Second
)

// Module is an fx module to serve debugger clients over websockets.
var Module = fx.Provide(New)

// WebsocketModule represents a module to manage websocket connections.
type WebsocketModule interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
	ServeConn(ctx context.Context, conn Conn) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
	// Addr returns the bound listen address once the module has started.
	Addr() string
}

// Conn is the subset of *websocket.Conn used by the daemon.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Router serves as the interface through which handling of messages will be implemented.
type Router interface {
	HandleMessage(ctx context.Context, messageType int, data []byte)
	UUID() uuid.UUID
}

// ConnectionManager will manage each active connection and its corresponding Router throughout the lifecycle of a connection.
type ConnectionManager interface {
	NewConnection(ctx context.Context, conn Conn) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

// Settings is the websocket section of the configuration.
type Settings struct {
	Address             string `yaml:"address"`
	Path                string `yaml:"path"`
	ReadLimit           int64  `yaml:"readLimit"`
	PingIntervalSeconds int    `yaml:"pingIntervalSeconds"`
	PongWaitSeconds     int    `yaml:"pongWaitSeconds"`
}

type module struct {
	settings Settings
	upgrader websocket.Upgrader

	connectionMgr  ConnectionManager
	logger         *zap.SugaredLogger
	serverInfoFile serverinfofile.ServerInfoFile

	mu       sync.Mutex
	ln       net.Listener
	server   *http.Server
	stopping bool
	conns    sync.WaitGroup
	serving  sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// Params define values to be used by WebsocketModule.
type Params struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	ServerInfoFile serverinfofile.ServerInfoFile
}

// New creates a new server to handle websocket connections on the configured address and path.
func New(p Params) (WebsocketModule, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := module{
		logger:         p.Logger,
		serverInfoFile: p.ServerInfoFile,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
	}

	if err := m.processConfig(p.Config); err != nil {
		cancel()
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})

	return &m, nil
}

// OnStart binds the listener, advertises its address and begins accepting connections.
func (m *module) OnStart(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.settings.Address)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", m.settings.Address, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(m.settings.Path, m.handleUpgrade)

	m.mu.Lock()
	m.ln = ln
	m.server = &http.Server{Handler: mux, ReadHeaderTimeout: _readHeaderTimeout}
	server := m.server
	m.mu.Unlock()

	if m.serverInfoFile != nil {
		if err := m.serverInfoFile.UpdateField(_outputKey, ln.Addr().String()); err != nil {
			ln.Close()
			return err
		}
	}

	m.logger.Warnw("started websocket inbound", zap.String("address", ln.Addr().String()), zap.String("path", m.settings.Path))
	m.serving.Add(1)
	go func() {
		defer m.serving.Done()
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Errorw("websocket inbound stopped", zap.Error(err))
		}
	}()
	return nil
}

// OnStop stops accepting connections, closes the open ones and waits for them to be cleaned up.
func (m *module) OnStop(ctx context.Context) error {
	m.mu.Lock()
	m.stopping = true
	server := m.server
	m.mu.Unlock()

	m.cancel()
	var err error
	if server != nil {
		err = server.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		m.conns.Wait()
		m.serving.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return multierr.Append(err, ctx.Err())
	}
	return err
}

func (m *module) Addr() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ln == nil {
		return ""
	}
	return m.ln.Addr().String()
}

func (m *module) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	if m.stopping {
		m.mu.Unlock()
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	m.conns.Add(1)
	m.mu.Unlock()
	defer m.conns.Done()

	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		m.logger.Warnw("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if err := m.ServeConn(m.ctx, conn); err != nil {
		m.logger.Warnw("connection closed with error", zap.Error(err))
	}
}

// ServeConn is called when a new connection is initiated. Messages received via the connection will be routed to the handler until the connection closes.
func (m *module) ServeConn(ctx context.Context, conn Conn) error {
	if m.connectionMgr == nil {
		m.logger.Errorf("cannot serve connection, no connection manager set")
		return errors.New("cannot serve connection, no connection manager set")
	}

	pongWait := time.Duration(m.settings.PongWaitSeconds) * time.Second
	conn.SetReadLimit(m.settings.ReadLimit)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	router, err := m.connectionMgr.NewConnection(ctx, conn)
	if err != nil {
		return err
	}
	m.logger.Infow("client connected", zap.Stringer("uuid", router.UUID()))

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return m.readLoop(gctx, conn, router) })
	grp.Go(func() error { return m.pingLoop(gctx, conn) })
	grp.Go(func() error {
		// Unblocks the read loop once the other loops end or the module stops.
		<-gctx.Done()
		conn.Close()
		return nil
	})
	err = grp.Wait()

	// Cleanup after connection.
	m.connectionMgr.RemoveConnection(ctx, router.UUID())
	m.logger.Infow("client disconnected", zap.Stringer("uuid", router.UUID()))

	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived, websocket.CloseAbnormalClosure) {
		return err
	}
	return nil
}

// readLoop dispatches messages until the connection fails. It always returns a non-nil error so the group is cancelled.
func (m *module) readLoop(ctx context.Context, conn Conn, router Router) error {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		router.HandleMessage(ctx, messageType, data)
	}
}

func (m *module) pingLoop(ctx context.Context, conn Conn) error {
	ticker := time.NewTicker(time.Duration(m.settings.PingIntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(_writeWait)); err != nil {
				return fmt.Errorf("sending ping: %w", err)
			}
		}
	}
}

// RegisterConnectionManager sets the connection manager, which keeps track of current active connections and provides a Router implementation.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}

// processConfig will parse the configuration for any values required by this module.
func (m *module) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyWebsocket)
	if err := val.Populate(&m.settings); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyWebsocket, err)
	}

	if m.settings.Address == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyWebsocket+".address")
	}
	if m.settings.Path == "" {
		m.settings.Path = "/"
	}
	if m.settings.ReadLimit <= 0 {
		return fmt.Errorf("missing field %q in config", _configKeyWebsocket+".readLimit")
	}
	if m.settings.PingIntervalSeconds <= 0 || m.settings.PongWaitSeconds <= m.settings.PingIntervalSeconds {
		return fmt.Errorf("config field %q must be positive and shorter than %q", _configKeyWebsocket+".pingIntervalSeconds", _configKeyWebsocket+".pongWaitSeconds")
	}

	return nil
}
