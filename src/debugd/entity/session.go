package entity

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"weak"

	"github.com/gofrs/uuid"
	"github.com/grkek/juicy-fruit/src/debugd/internal/rendezvous"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
)

// ConditionType names a breakpoint condition template.
type ConditionType string

// Breakpoint condition templates.
const (
	ConditionCounter        ConditionType = "counter"
	ConditionMinStackDepth  ConditionType = "minStackDepth"
	ConditionMaxStackDepth  ConditionType = "maxStackDepth"
	ConditionStackSize      ConditionType = "stackSize"
	ConditionProcessAddress ConditionType = "processAddress"
)

// Breakpoint is a registered condition and the engine handle backing it.
type Breakpoint struct {
	ID            string
	ConditionType ConditionType
	Value         int64
	Handle        *vm.Breakpoint
}

// Session is the per connection debugger state. Every accessor takes the session
// lock only for the duration of a field read or write.
type Session struct {
	UUID uuid.UUID

	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	engine      *vm.Engine
	debugger    *vm.Debugger
	pending     *rendezvous.Slot[vm.Action]
	breakpoints map[string]*Breakpoint
	running     bool
	current     weak.Pointer[vm.Process]
	program     []vm.Instruction
	main        vm.Address
	supervisors map[string]*vm.Supervisor
	closed      bool
}

// NewSession creates the state for a freshly opened connection.
func NewSession(id uuid.UUID) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		UUID:        id,
		ctx:         ctx,
		cancel:      cancel,
		pending:     rendezvous.New[vm.Action](),
		breakpoints: make(map[string]*Breakpoint),
		supervisors: make(map[string]*vm.Supervisor),
	}
}

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Pending returns the rendezvous used to resume a paused process.
func (s *Session) Pending() *rendezvous.Slot[vm.Action] {
	return s.pending
}

// Attach stores the engine and debugger. It reports false when the session already has an engine.
func (s *Session) Attach(engine *vm.Engine, debugger *vm.Debugger) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine != nil || s.closed {
		return false
	}
	s.engine = engine
	s.debugger = debugger
	return true
}

// Engine returns the engine and debugger, both nil before initialization.
func (s *Session) Engine() (*vm.Engine, *vm.Debugger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine, s.debugger
}

// SetProgram remembers the loaded program and the address of the unit running it.
func (s *Session) SetProgram(program []vm.Instruction, main vm.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = program
	s.main = main
}

// Program returns the loaded program and the address of the unit last created for it.
func (s *Session) Program() ([]vm.Instruction, vm.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program, s.main
}

// BeginRun marks the session running. It reports false if a run is already active.
func (s *Session) BeginRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.closed {
		return false
	}
	s.running = true
	return true
}

// FinishRun clears the running flag and the paused process.
func (s *Session) FinishRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.current = weak.Pointer[vm.Process]{}
}

// Running reports whether a run task is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetCurrent records the process paused at a breakpoint, or clears it when p is nil.
func (s *Session) SetCurrent(p *vm.Process) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == nil {
		s.current = weak.Pointer[vm.Process]{}
		return
	}
	s.current = weak.Make(p)
}

// Current returns the paused process or nil.
func (s *Session) Current() *vm.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Value()
}

// AddBreakpoint stores bp under its id.
func (s *Session) AddBreakpoint(bp *Breakpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breakpoints[bp.ID] = bp
}

// Breakpoint returns the breakpoint registered under id.
func (s *Session) Breakpoint(id string) (*Breakpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bp, ok := s.breakpoints[id]
	return bp, ok
}

// RemoveBreakpoint drops id from the session and from the debugger registry.
func (s *Session) RemoveBreakpoint(id string) (*Breakpoint, bool) {
	s.mu.Lock()
	bp, ok := s.breakpoints[id]
	delete(s.breakpoints, id)
	debugger := s.debugger
	s.mu.Unlock()

	if ok && debugger != nil {
		debugger.RemoveBreakpoint(bp.Handle.ID())
	}
	return bp, ok
}

// ClearBreakpoints drops every breakpoint from the session and the debugger and returns how many were removed.
func (s *Session) ClearBreakpoints() int {
	s.mu.Lock()
	n := len(s.breakpoints)
	s.breakpoints = make(map[string]*Breakpoint)
	debugger := s.debugger
	s.mu.Unlock()

	if debugger != nil {
		debugger.ClearBreakpoints()
	}
	return n
}

// Breakpoints returns every breakpoint ordered by numeric id.
func (s *Session) Breakpoints() []*Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Breakpoint, 0, len(s.breakpoints))
	for _, bp := range s.breakpoints {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool { return lessNumeric(out[i].ID, out[j].ID) })
	return out
}

// AddSupervisor makes a supervisor visible to this session.
func (s *Session) AddSupervisor(sup *vm.Supervisor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supervisors[sup.Address().String()] = sup
}

// Supervisor returns the session supervisor with the given address.
func (s *Session) Supervisor(addr string) (*vm.Supervisor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup, ok := s.supervisors[addr]
	return sup, ok
}

// Supervisors returns the session supervisors ordered by address.
func (s *Session) Supervisors() []*vm.Supervisor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*vm.Supervisor, 0, len(s.supervisors))
	for _, sup := range s.supervisors {
		out = append(out, sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address() < out[j].Address() })
	return out
}

// ResetSupervisors forgets every session supervisor.
func (s *Session) ResetSupervisors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supervisors = make(map[string]*vm.Supervisor)
}

// Close releases the session. A blocked engine goroutine receives an abort, the
// rendezvous is closed and the session context is cancelled. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	running := s.running
	debugger := s.debugger
	s.breakpoints = make(map[string]*Breakpoint)
	s.supervisors = make(map[string]*vm.Supervisor)
	s.engine = nil
	s.debugger = nil
	s.mu.Unlock()

	if running {
		if debugger != nil {
			debugger.RequestAbort()
		}
		s.pending.Force(vm.ActionAbort)
	}
	s.pending.Close()
	s.cancel()
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func lessNumeric(a, b string) bool {
	ai, aerr := strconv.ParseUint(a, 10, 64)
	bi, berr := strconv.ParseUint(b, 10, 64)
	if aerr != nil || berr != nil {
		return a < b
	}
	return ai < bi
}
