package vm

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Address identifies a process or a supervisor within one Engine.
type Address uint64

func (a Address) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseAddress parses a decimal address.
func ParseAddress(s string) (Address, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return Address(v), nil
}

// Status is the scheduling state of a process.
type Status uint8

// Process states.
const (
	StatusRunnable Status = iota
	StatusWaiting
	StatusExited
	StatusCrashed
)

func (s Status) String() string {
	switch s {
	case StatusRunnable:
		return "runnable"
	case StatusWaiting:
		return "waiting"
	case StatusExited:
		return "exited"
	case StatusCrashed:
		return "crashed"
	}
	return "unknown"
}

// Exit reasons with special meaning.
const (
	ReasonNormal   = "normal"
	ReasonKill     = "kill"
	ReasonKilled   = "killed"
	ReasonShutdown = "shutdown"
	ReasonNoProc   = "noproc"
)

// Frame is one entry of a process call stack.
type Frame struct {
	ReturnCounter int
}

// Process is a single schedulable instruction stream. All exported methods are safe
// to call while the engine runs or is paused at a breakpoint.
type Process struct {
	engine       *Engine
	address      Address
	instructions []Instruction

	counter    int
	stack      []Value
	locals     []Value
	globals    map[string]Value
	callStack  []Frame
	mailbox    []Value
	status     Status
	trapExit   bool
	links      map[Address]struct{}
	name       string
	exitReason string
	executed   uint64
	supervisor *Supervisor
}

// ProcessState is a point in time copy of a process.
type ProcessState struct {
	Address      Address
	Status       Status
	Counter      int
	Instructions int
	Stack        []Value
	Locals       []Value
	Globals      map[string]Value
	CallStack    []Frame
	Mailbox      []Value
	TrapExit     bool
	Links        []Address
	Name         string
	ExitReason   string
	Executed     uint64
	Supervisor   Address
}

// CallDepth returns the number of active call frames.
func (s ProcessState) CallDepth() int {
	return len(s.CallStack)
}

// Alive reports whether the process had not terminated when the state was taken.
func (s ProcessState) Alive() bool {
	return s.Status == StatusRunnable || s.Status == StatusWaiting
}

// Address returns the process address.
func (p *Process) Address() Address {
	return p.address
}

// Instructions returns the program the process executes. The slice must not be modified.
func (p *Process) Instructions() []Instruction {
	return p.instructions
}

// Snapshot copies the current process state.
func (p *Process) Snapshot() ProcessState {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	return p.snapshot()
}

// Alive reports whether the process is still runnable or waiting.
func (p *Process) Alive() bool {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	return p.alive()
}

// Push places v on top of the operand stack.
func (p *Process) Push(v Value) error {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	return p.push(v)
}

// Pop removes and returns the top of the operand stack.
func (p *Process) Pop() (Value, error) {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	return p.pop()
}

// SetLocal stores v at index, growing the locals with nil values when index is past the end.
// The index must stay below the engine's locals limit.
func (p *Process) SetLocal(index int, v Value) error {
	if index < 0 {
		return fmt.Errorf("local index %d is negative", index)
	}

	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	return p.setLocal(index, v)
}

// SetGlobal stores v under name in the process globals.
func (p *Process) SetGlobal(name string, v Value) {
	p.engine.mu.Lock()
	defer p.engine.mu.Unlock()

	p.globals[name] = v
}

const _defaultMaxLocals = 1 << 16

func (p *Process) alive() bool {
	return p.status == StatusRunnable || p.status == StatusWaiting
}

func (p *Process) push(v Value) error {
	if limit := p.engine.cfg.MaxStackSize; limit > 0 && len(p.stack) >= limit {
		return errors.New("stack overflow")
	}
	p.stack = append(p.stack, v)
	return nil
}

func (p *Process) pop() (Value, error) {
	if len(p.stack) == 0 {
		return nil, errors.New("stack underflow")
	}
	v := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return v, nil
}

// maxLocals is the locals limit; MaxStackSize doubles as it, with _defaultMaxLocals when unset.
func (p *Process) maxLocals() int {
	if limit := p.engine.cfg.MaxStackSize; limit > 0 {
		return limit
	}
	return _defaultMaxLocals
}

func (p *Process) setLocal(index int, v Value) error {
	if index >= p.maxLocals() {
		return fmt.Errorf("local index %d out of range", index)
	}
	if n := index + 1 - len(p.locals); n > 0 {
		p.locals = append(p.locals, make([]Value, n)...)
	}
	p.locals[index] = v
	return nil
}

func (p *Process) probe() Probe {
	return Probe{
		Address:   p.address,
		Counter:   p.counter,
		CallDepth: len(p.callStack),
		StackSize: len(p.stack),
		Alive:     p.alive(),
	}
}

func (p *Process) linkedAddresses() []Address {
	out := make([]Address, 0, len(p.links))
	for addr := range p.links {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (p *Process) snapshot() ProcessState {
	s := ProcessState{
		Address:      p.address,
		Status:       p.status,
		Counter:      p.counter,
		Instructions: len(p.instructions),
		Stack:        append([]Value(nil), p.stack...),
		Locals:       append([]Value(nil), p.locals...),
		Globals:      make(map[string]Value, len(p.globals)),
		CallStack:    append([]Frame(nil), p.callStack...),
		Mailbox:      append([]Value(nil), p.mailbox...),
		TrapExit:     p.trapExit,
		Links:        p.linkedAddresses(),
		Name:         p.name,
		ExitReason:   p.exitReason,
		Executed:     p.executed,
	}
	for k, v := range p.globals {
		s.Globals[k] = v
	}
	if p.supervisor != nil {
		s.Supervisor = p.supervisor.address
	}
	return s
}
