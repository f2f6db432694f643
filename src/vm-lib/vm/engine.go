// Package vm implements a small process oriented virtual machine with an attachable
// stepping debugger, links, monitors, a name registry and supervisors.
package vm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	// ErrAlreadyRunning is returned by Run when another Run is active.
	ErrAlreadyRunning = errors.New("engine is already running")
	// ErrAborted is returned by Run when the debugger requested an abort.
	ErrAborted = errors.New("execution aborted")
	// ErrDeadlock is returned by Run when only waiting processes remain and deadlock detection is on.
	ErrDeadlock = errors.New("deadlock detected")
	// ErrIterationLimit is returned by Run when the configured iteration limit is exceeded.
	ErrIterationLimit = errors.New("iteration limit exceeded")
	// ErrProcessNotFound reports an unknown process address.
	ErrProcessNotFound = errors.New("process not found")
	// ErrMonitorNotFound reports an unknown monitor reference.
	ErrMonitorNotFound = errors.New("monitor not found")
	// ErrNameRegistered reports a registry name that is already taken.
	ErrNameRegistered = errors.New("name already registered")
)

// Config holds the tunables of an Engine.
type Config struct {
	// IterationLimit bounds the instructions executed by one Run. Zero disables the limit.
	IterationLimit int
	// MaxStackSize bounds the operand stack and the call stack of every process.
	MaxStackSize int
	// MaxMailboxSize bounds every mailbox; further messages are dropped.
	MaxMailboxSize int
	// ExecutionDelay is slept after every instruction.
	ExecutionDelay time.Duration
	// DeadlockDetection makes Run fail when only waiting processes remain.
	DeadlockDetection bool
	// AutoReactivate wakes a waiting process as soon as a message is delivered to it.
	// When false, waiting processes with mail are only woken once nothing else is runnable.
	AutoReactivate bool
	// MessageAcks makes SEND push whether the message was delivered.
	MessageAcks bool
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		IterationLimit:    100000,
		MaxStackSize:      1024,
		MaxMailboxSize:    1024,
		DeadlockDetection: true,
		AutoReactivate:    true,
	}
}

// Hook replaces the default behavior of an opcode. It runs without the engine lock held,
// so it may use the exported Process methods. The counter advances after the hook returns.
type Hook func(p *Process, in Instruction) error

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithOutput sets where the default PRINT writes.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithSleep sets the function used to apply the execution delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(e *Engine) { e.sleep = sleep }
}

// WithNow sets the clock used for crash dumps and supervisor restart intensity.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine schedules processes round robin, one instruction per turn.
type Engine struct {
	mu sync.Mutex

	cfg   Config
	out   io.Writer
	sleep func(time.Duration)
	now   func() time.Time

	nextAddress Address
	procs       []*Process
	byAddress   map[Address]*Process
	cursor      int

	registry map[string]Address
	monitors map[MonitorRef]*monitor
	nextRef  MonitorRef

	supervisors []*Supervisor

	hooks      map[Opcode]Hook
	debugger   *Debugger
	crashDumps []CrashDump
	stats      Stats
	running    bool
}

// New constructs an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:       DefaultConfig(),
		out:       os.Stdout,
		sleep:     time.Sleep,
		now:       time.Now,
		byAddress: make(map[Address]*Process),
		registry:  make(map[string]Address),
		monitors:  make(map[MonitorRef]*monitor),
		hooks:     make(map[Opcode]Hook),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Configure mutates the configuration in place. Changes apply to the next instruction.
func (e *Engine) Configure(fn func(*Config)) Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.cfg)
	return e.cfg
}

// SetHook installs or replaces the hook for op. A nil hook restores the default behavior.
func (e *Engine) SetHook(op Opcode, h Hook) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if h == nil {
		delete(e.hooks, op)
		return
	}
	e.hooks[op] = h
}

// Running reports whether Run is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Spawn creates a runnable process executing instructions.
func (e *Engine) Spawn(instructions []Instruction) *Process {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spawn(instructions)
}

// Process returns the process with the given address, dead or alive.
func (e *Engine) Process(addr Address) (*Process, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.byAddress[addr]
	return p, ok
}

// Processes returns every known process ordered by address.
func (e *Engine) Processes() []*Process {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]*Process(nil), e.procs...)
}

// Discard removes a process without delivering exit signals.
func (e *Engine) Discard(addr Address) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.byAddress[addr]
	if !ok {
		return false
	}
	e.discard(p)
	return true
}

// ResetProcesses discards every process and supervisor. Statistics and crash dumps are kept.
func (e *Engine) ResetProcesses() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.procs {
		p.status = StatusExited
		p.exitReason = ReasonShutdown
	}
	for _, s := range e.supervisors {
		s.terminated = true
	}
	e.procs = nil
	e.byAddress = make(map[Address]*Process)
	e.registry = make(map[string]Address)
	e.monitors = make(map[MonitorRef]*monitor)
	e.supervisors = nil
	e.cursor = 0
}

// Run executes processes until none is runnable, the iteration limit is hit, the
// debugger aborts or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.running = true
	defer func() {
		e.running = false
		e.mu.Unlock()
	}()

	iterations := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.debugger != nil && e.debugger.abort {
			return ErrAborted
		}

		p := e.nextRunnable()
		if p == nil {
			if e.wakeWaiting() {
				continue
			}
			if n := e.countWaiting(); n > 0 && e.cfg.DeadlockDetection {
				return fmt.Errorf("%w: %d processes waiting", ErrDeadlock, n)
			}
			return nil
		}
		if p.counter >= len(p.instructions) {
			e.terminate(p, ReasonNormal)
			continue
		}

		iterations++
		if e.cfg.IterationLimit > 0 && iterations > e.cfg.IterationLimit {
			return fmt.Errorf("%w: %d", ErrIterationLimit, e.cfg.IterationLimit)
		}

		if d := e.debugger; d != nil && d.callback != nil && d.shouldPause(p) {
			in := p.instructions[p.counter]
			e.mu.Unlock()
			action := d.callback(p, in)
			e.mu.Lock()

			d.resume(p, action)
			if action == ActionAbort {
				return ErrAborted
			}
			if p.status != StatusRunnable || p.counter >= len(p.instructions) {
				continue
			}
		}

		e.execute(p, p.instructions[p.counter])

		if delay := e.cfg.ExecutionDelay; delay > 0 {
			e.mu.Unlock()
			e.sleep(delay)
			e.mu.Lock()
		}
	}
}

func (e *Engine) spawn(instructions []Instruction) *Process {
	e.nextAddress++
	p := &Process{
		engine:       e,
		address:      e.nextAddress,
		instructions: instructions,
		globals:      make(map[string]Value),
		links:        make(map[Address]struct{}),
	}
	e.procs = append(e.procs, p)
	e.byAddress[p.address] = p
	e.stats.ProcessesSpawned++
	return p
}

func (e *Engine) lookup(addr Address) (*Process, error) {
	p, ok := e.byAddress[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProcessNotFound, addr)
	}
	return p, nil
}

func (e *Engine) nextRunnable() *Process {
	n := len(e.procs)
	for i := 0; i < n; i++ {
		idx := (e.cursor + i) % n
		if p := e.procs[idx]; p.status == StatusRunnable {
			e.cursor = idx + 1
			return p
		}
	}
	return nil
}

func (e *Engine) wakeWaiting() bool {
	woke := false
	for _, p := range e.procs {
		if p.status == StatusWaiting && len(p.mailbox) > 0 {
			p.status = StatusRunnable
			woke = true
		}
	}
	return woke
}

func (e *Engine) countWaiting() int {
	n := 0
	for _, p := range e.procs {
		if p.status == StatusWaiting {
			n++
		}
	}
	return n
}

func (e *Engine) discard(p *Process) {
	for addr := range p.links {
		if other, ok := e.byAddress[addr]; ok {
			delete(other.links, p.address)
		}
	}
	for ref, m := range e.monitors {
		if m.watcher == p.address || m.target == p.address {
			delete(e.monitors, ref)
		}
	}
	if p.name != "" {
		delete(e.registry, p.name)
	}
	p.status = StatusExited
	p.exitReason = ReasonShutdown

	delete(e.byAddress, p.address)
	for i, candidate := range e.procs {
		if candidate == p {
			e.procs = append(e.procs[:i], e.procs[i+1:]...)
			break
		}
	}
	if e.cursor > len(e.procs) {
		e.cursor = 0
	}
}
