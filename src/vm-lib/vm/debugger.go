package vm

import (
	"sort"
	"strconv"
)

// Action tells a paused engine how to continue.
type Action uint8

// Continuation actions.
const (
	ActionContinue Action = iota
	ActionStep
	ActionStepOver
	ActionAbort
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionStep:
		return "step"
	case ActionStepOver:
		return "stepOver"
	case ActionAbort:
		return "abort"
	}
	return "unknown"
}

// PauseCallback is invoked on the engine goroutine before in executes on p. The engine
// lock is released for the duration of the call and execution resumes with the returned Action.
type PauseCallback func(p *Process, in Instruction) Action

// Probe is the view of a process a breakpoint condition is evaluated against.
type Probe struct {
	Address   Address
	Counter   int
	CallDepth int
	StackSize int
	Alive     bool
}

// Condition decides whether a breakpoint fires for a process.
type Condition func(Probe) bool

// BreakpointID is stable for the lifetime of a debugger.
type BreakpointID uint64

func (id BreakpointID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Breakpoint is a registered condition. Hit counts are maintained by the engine.
type Breakpoint struct {
	debugger    *Debugger
	id          BreakpointID
	condition   Condition
	enabled     bool
	ignoreCount int
	hitCount    int
}

// ID returns the breakpoint id.
func (b *Breakpoint) ID() BreakpointID {
	return b.id
}

// Enabled reports whether the breakpoint can fire.
func (b *Breakpoint) Enabled() bool {
	b.debugger.engine.mu.Lock()
	defer b.debugger.engine.mu.Unlock()
	return b.enabled
}

// Enable allows the breakpoint to fire.
func (b *Breakpoint) Enable() {
	b.debugger.engine.mu.Lock()
	defer b.debugger.engine.mu.Unlock()
	b.enabled = true
}

// Disable stops the breakpoint from firing without removing it.
func (b *Breakpoint) Disable() {
	b.debugger.engine.mu.Lock()
	defer b.debugger.engine.mu.Unlock()
	b.enabled = false
}

// IgnoreCount returns how many more matches are skipped before the breakpoint pauses.
func (b *Breakpoint) IgnoreCount() int {
	b.debugger.engine.mu.Lock()
	defer b.debugger.engine.mu.Unlock()
	return b.ignoreCount
}

// SetIgnoreCount sets how many matches are skipped before the breakpoint pauses.
func (b *Breakpoint) SetIgnoreCount(n int) {
	if n < 0 {
		n = 0
	}
	b.debugger.engine.mu.Lock()
	defer b.debugger.engine.mu.Unlock()
	b.ignoreCount = n
}

// HitCount returns how many times the breakpoint paused execution.
func (b *Breakpoint) HitCount() int {
	b.debugger.engine.mu.Lock()
	defer b.debugger.engine.mu.Unlock()
	return b.hitCount
}

type stepMode uint8

const (
	stepNone stepMode = iota
	stepInto
	stepOver
)

// Debugger pauses an Engine on breakpoints and single steps.
type Debugger struct {
	engine   *Engine
	callback PauseCallback

	breakpoints map[BreakpointID]*Breakpoint
	nextID      BreakpointID

	mode        stepMode
	stepProcess Address
	stepDepth   int
	abort       bool
	lastHit     *Breakpoint
}

// AttachDebugger installs a debugger on the engine, replacing any previous one.
func (e *Engine) AttachDebugger(cb PauseCallback) *Debugger {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := &Debugger{
		engine:      e,
		callback:    cb,
		breakpoints: make(map[BreakpointID]*Breakpoint),
	}
	e.debugger = d
	return d
}

// AddBreakpoint registers an enabled breakpoint.
func (d *Debugger) AddBreakpoint(cond Condition) *Breakpoint {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	d.nextID++
	b := &Breakpoint{
		debugger:  d,
		id:        d.nextID,
		condition: cond,
		enabled:   true,
	}
	d.breakpoints[b.id] = b
	return b
}

// RemoveBreakpoint unregisters a breakpoint and reports whether it existed.
func (d *Debugger) RemoveBreakpoint(id BreakpointID) bool {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	if _, ok := d.breakpoints[id]; !ok {
		return false
	}
	delete(d.breakpoints, id)
	return true
}

// Breakpoint returns the breakpoint with the given id.
func (d *Debugger) Breakpoint(id BreakpointID) (*Breakpoint, bool) {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	b, ok := d.breakpoints[id]
	return b, ok
}

// Breakpoints returns all breakpoints ordered by id.
func (d *Debugger) Breakpoints() []*Breakpoint {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	return d.sortedBreakpoints()
}

// ClearBreakpoints removes every breakpoint and returns how many were removed.
func (d *Debugger) ClearBreakpoints() int {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	n := len(d.breakpoints)
	d.breakpoints = make(map[BreakpointID]*Breakpoint)
	return n
}

// LastHit returns the breakpoint that caused the most recent pause, if any.
// Pauses caused by stepping report false.
func (d *Debugger) LastHit() (BreakpointID, bool) {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	if d.lastHit == nil {
		return 0, false
	}
	return d.lastHit.id, true
}

// Reset clears stepping state and any pending abort request. Breakpoints are kept.
func (d *Debugger) Reset() {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	d.mode = stepNone
	d.abort = false
	d.lastHit = nil
}

// RequestAbort makes the running engine stop before the next instruction.
func (d *Debugger) RequestAbort() {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	d.abort = true
}

// AbortRequested reports whether RequestAbort was called since the last Reset.
func (d *Debugger) AbortRequested() bool {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()

	return d.abort
}

func (d *Debugger) sortedBreakpoints() []*Breakpoint {
	out := make([]*Breakpoint, 0, len(d.breakpoints))
	for _, b := range d.breakpoints {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// shouldPause is called with the engine lock held before p executes its next instruction.
func (d *Debugger) shouldPause(p *Process) bool {
	switch d.mode {
	case stepInto:
		if p.address == d.stepProcess {
			d.mode = stepNone
			d.lastHit = nil
			return true
		}
	case stepOver:
		if p.address == d.stepProcess && len(p.callStack) <= d.stepDepth {
			d.mode = stepNone
			d.lastHit = nil
			return true
		}
	}

	probe := p.probe()
	for _, b := range d.sortedBreakpoints() {
		if !b.enabled || b.condition == nil || !b.condition(probe) {
			continue
		}
		if b.ignoreCount > 0 {
			b.ignoreCount--
			continue
		}
		b.hitCount++
		d.lastHit = b
		return true
	}
	return false
}

// resume applies the continuation chosen by the callback. The engine lock is held.
func (d *Debugger) resume(p *Process, action Action) {
	switch action {
	case ActionStep:
		d.mode = stepInto
		d.stepProcess = p.address
	case ActionStepOver:
		d.mode = stepOver
		d.stepProcess = p.address
		d.stepDepth = len(p.callStack)
	case ActionAbort:
		d.abort = true
	default:
		d.mode = stepNone
	}
}
