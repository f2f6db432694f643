package vm

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSupervisorTerminated reports an operation on a supervisor that has shut down.
	ErrSupervisorTerminated = errors.New("supervisor terminated")
	// ErrDuplicateChild reports a child id that is already used by the supervisor.
	ErrDuplicateChild = errors.New("duplicate child id")
)

// Strategy selects which children restart when one of them exits.
type Strategy uint8

// Restart strategies.
const (
	OneForOne Strategy = iota
	OneForAll
	RestForOne
)

func (s Strategy) String() string {
	switch s {
	case OneForOne:
		return "oneForOne"
	case OneForAll:
		return "oneForAll"
	case RestForOne:
		return "restForOne"
	}
	return "unknown"
}

// ParseStrategy parses the names produced by Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	for _, candidate := range []Strategy{OneForOne, OneForAll, RestForOne} {
		if candidate.String() == s {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// RestartPolicy decides whether an exited child is restarted.
type RestartPolicy uint8

// Restart policies.
const (
	Permanent RestartPolicy = iota
	Transient
	Temporary
)

func (r RestartPolicy) String() string {
	switch r {
	case Permanent:
		return "permanent"
	case Transient:
		return "transient"
	case Temporary:
		return "temporary"
	}
	return "unknown"
}

// ParseRestartPolicy parses the names produced by RestartPolicy.String.
func ParseRestartPolicy(s string) (RestartPolicy, error) {
	for _, candidate := range []RestartPolicy{Permanent, Transient, Temporary} {
		if candidate.String() == s {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("unknown restart policy %q", s)
}

// SupervisorSpec configures a supervisor. More than MaxRestarts restarts within
// MaxSeconds terminates the supervisor and all of its children.
type SupervisorSpec struct {
	Strategy    Strategy
	MaxRestarts int
	MaxSeconds  int
}

// DefaultSupervisorSpec allows three restarts in five seconds, one for one.
func DefaultSupervisorSpec() SupervisorSpec {
	return SupervisorSpec{Strategy: OneForOne, MaxRestarts: 3, MaxSeconds: 5}
}

// ChildSpec describes a supervised process.
type ChildSpec struct {
	ID           string
	Instructions []Instruction
	Restart      RestartPolicy
}

// ChildInfo is a snapshot of one supervised child.
type ChildInfo struct {
	ID       string
	Address  Address
	Restart  RestartPolicy
	Alive    bool
	Restarts int
}

// SupervisorInfo is a snapshot of a supervisor.
type SupervisorInfo struct {
	Address        Address
	Strategy       Strategy
	MaxRestarts    int
	MaxSeconds     int
	Children       int
	ActiveChildren int
	Restarts       int
	Terminated     bool
}

type child struct {
	spec     ChildSpec
	process  *Process
	restarts int
}

// Supervisor restarts child processes according to its strategy.
type Supervisor struct {
	engine   *Engine
	address  Address
	spec     SupervisorSpec
	children []*child

	restartTimes []time.Time
	restarts     int
	stopping     bool
	terminated   bool
}

// NewSupervisor creates a supervisor with its own address.
func (e *Engine) NewSupervisor(spec SupervisorSpec) *Supervisor {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextAddress++
	s := &Supervisor{
		engine:  e,
		address: e.nextAddress,
		spec:    spec,
	}
	e.supervisors = append(e.supervisors, s)
	e.stats.SupervisorsCreated++
	return s
}

// Supervisors returns every supervisor created since the last reset.
func (e *Engine) Supervisors() []*Supervisor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Supervisor(nil), e.supervisors...)
}

// Address returns the supervisor address.
func (s *Supervisor) Address() Address {
	return s.address
}

// AddChild starts a child process under the supervisor.
func (s *Supervisor) AddChild(spec ChildSpec) (*Process, error) {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()

	if s.terminated {
		return nil, fmt.Errorf("%w: %s", ErrSupervisorTerminated, s.address)
	}
	for _, c := range s.children {
		if c.spec.ID == spec.ID {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateChild, spec.ID)
		}
	}

	c := &child{spec: spec}
	s.start(c)
	s.children = append(s.children, c)
	return c.process, nil
}

// Info returns a snapshot of the supervisor.
func (s *Supervisor) Info() SupervisorInfo {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()

	info := SupervisorInfo{
		Address:     s.address,
		Strategy:    s.spec.Strategy,
		MaxRestarts: s.spec.MaxRestarts,
		MaxSeconds:  s.spec.MaxSeconds,
		Children:    len(s.children),
		Restarts:    s.restarts,
		Terminated:  s.terminated,
	}
	for _, c := range s.children {
		if c.process != nil && c.process.alive() {
			info.ActiveChildren++
		}
	}
	return info
}

// Children returns a snapshot of every child in start order.
func (s *Supervisor) Children() []ChildInfo {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()

	out := make([]ChildInfo, 0, len(s.children))
	for _, c := range s.children {
		info := ChildInfo{ID: c.spec.ID, Restart: c.spec.Restart, Restarts: c.restarts}
		if c.process != nil {
			info.Address = c.process.address
			info.Alive = c.process.alive()
		}
		out = append(out, info)
	}
	return out
}

func (s *Supervisor) start(c *child) {
	p := s.engine.spawn(c.spec.Instructions)
	p.supervisor = s
	c.process = p
}

// childExited is called with the engine lock held when a supervised process terminates.
func (s *Supervisor) childExited(p *Process, reason string) {
	if s.stopping || s.terminated {
		return
	}

	idx := -1
	for i, c := range s.children {
		if c.process == p {
			idx = i
			break
		}
	}
	if idx < 0 || !shouldRestart(s.children[idx].spec.Restart, reason) {
		return
	}

	now := s.engine.now()
	window := time.Duration(s.spec.MaxSeconds) * time.Second
	recent := s.restartTimes[:0]
	for _, t := range s.restartTimes {
		if now.Sub(t) < window {
			recent = append(recent, t)
		}
	}
	s.restartTimes = recent
	if len(s.restartTimes) >= s.spec.MaxRestarts {
		s.shutdown()
		return
	}
	s.restartTimes = append(s.restartTimes, now)

	var affected []*child
	switch s.spec.Strategy {
	case OneForAll:
		affected = s.children
	case RestForOne:
		affected = s.children[idx:]
	default:
		affected = s.children[idx : idx+1]
	}

	s.stopping = true
	for _, c := range affected {
		if c.process != p && c.process.alive() {
			s.engine.terminate(c.process, ReasonShutdown)
		}
	}
	s.stopping = false

	for _, c := range affected {
		if c.process != p && c.spec.Restart == Temporary {
			continue
		}
		s.start(c)
		c.restarts++
		s.restarts++
		s.engine.stats.Restarts++
	}
}

func (s *Supervisor) shutdown() {
	s.stopping = true
	for _, c := range s.children {
		if c.process != nil && c.process.alive() {
			s.engine.terminate(c.process, ReasonShutdown)
		}
	}
	s.stopping = false
	s.terminated = true
	s.engine.stats.SupervisorsTerminated++
}

func shouldRestart(policy RestartPolicy, reason string) bool {
	switch policy {
	case Permanent:
		return true
	case Transient:
		return abnormal(reason)
	}
	return false
}
