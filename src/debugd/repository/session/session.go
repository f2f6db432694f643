package session

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	tally "github.com/uber-go/tally/v4"
)

//go:generate mockgen -destination=repositorymock/session_mock.go -package=repositorymock . Repository

// Repository is an entity-scoped repository.
type Repository interface {
	Create(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	GetFromContext(ctx context.Context) (*entity.Session, error)
	Remove(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	SessionCount(ctx context.Context) (int, error)
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]*entity.Session
	stats    tally.Scope
}

// New returns a repository to a key-value Session data store.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]*entity.Session),
		stats:    stats,
	}
}

// Create registers a new Session for the given connection id.
func (r *repository) Create(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.memstore[id]; ok {
		return nil, &errors.SessionExistsError{UUID: id}
	}
	s := entity.NewSession(id)
	r.memstore[id] = s
	r.stats.Gauge("active_sessions").Update(float64(len(r.memstore)))
	return s, nil
}

// Get returns the Session associated with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return s, nil
}

// GetFromContext returns the Session associated with the given context.
func (r *repository) GetFromContext(ctx context.Context) (*entity.Session, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Remove takes the Session out of the store. Only one caller can remove a given
// Session, which makes that caller responsible for tearing it down.
func (r *repository) Remove(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	delete(r.memstore, id)
	r.stats.Gauge("active_sessions").Update(float64(len(r.memstore)))
	return s, nil
}

// SessionCount returns the total count of active sessions.
func (r *repository) SessionCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.memstore), nil
}
