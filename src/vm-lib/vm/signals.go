package vm

import (
	"fmt"
	"sort"
	"strconv"
)

// MonitorRef identifies one monitor.
type MonitorRef uint64

func (r MonitorRef) String() string {
	return strconv.FormatUint(uint64(r), 10)
}

type monitor struct {
	ref     MonitorRef
	watcher Address
	target  Address
}

// MonitorInfo describes a monitor between two processes.
type MonitorInfo struct {
	Ref     MonitorRef
	Watcher Address
	Target  Address
}

// Send delivers msg to the process at addr and reports whether it reached the mailbox.
func (e *Engine) Send(addr Address, msg Value) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.lookup(addr); err != nil {
		return false, err
	}
	return e.send(addr, msg), nil
}

// Kill terminates a process unconditionally. Linked processes receive the exit reason.
func (e *Engine) Kill(addr Address, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.lookup(addr)
	if err != nil {
		return err
	}
	if reason == "" || reason == ReasonKill {
		reason = ReasonKilled
	}
	e.terminate(p, reason)
	return nil
}

// Exit sends an exit signal to a process as if it came from a linked process.
// Trapping processes receive it as a message; "kill" cannot be trapped.
func (e *Engine) Exit(addr Address, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.lookup(addr)
	if err != nil {
		return err
	}
	if reason == "" {
		reason = ReasonNormal
	}
	e.signal(p, 0, reason)
	return nil
}

// Link creates a bidirectional link between two live processes.
func (e *Engine) Link(a, b Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pa, pb, err := e.lookupPair(a, b)
	if err != nil {
		return err
	}
	if !pa.alive() || !pb.alive() {
		return fmt.Errorf("cannot link exited processes %s and %s", a, b)
	}
	e.link(pa, pb)
	return nil
}

// Unlink removes the link between two processes, if any.
func (e *Engine) Unlink(a, b Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pa, pb, err := e.lookupPair(a, b)
	if err != nil {
		return err
	}
	e.unlink(pa, pb)
	return nil
}

// Links returns the addresses linked to a process.
func (e *Engine) Links(addr Address) ([]Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.lookup(addr)
	if err != nil {
		return nil, err
	}
	return p.linkedAddresses(), nil
}

// Monitor makes watcher receive a DOWN message when target terminates.
func (e *Engine) Monitor(watcher, target Address) (MonitorRef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, _, err := e.lookupPair(watcher, target); err != nil {
		return 0, err
	}
	return e.monitor(watcher, target), nil
}

// Demonitor removes a monitor.
func (e *Engine) Demonitor(ref MonitorRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.monitors[ref]; !ok {
		return fmt.Errorf("%w: %s", ErrMonitorNotFound, ref)
	}
	delete(e.monitors, ref)
	return nil
}

// Monitors returns the active monitors a process takes part in, as watcher or target.
func (e *Engine) Monitors(addr Address) ([]MonitorInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.lookup(addr); err != nil {
		return nil, err
	}
	out := make([]MonitorInfo, 0)
	for _, m := range e.monitors {
		if m.watcher == addr || m.target == addr {
			out = append(out, MonitorInfo{Ref: m.ref, Watcher: m.watcher, Target: m.target})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out, nil
}

// SetTrapExit toggles whether exit signals reach the process as messages.
func (e *Engine) SetTrapExit(addr Address, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.lookup(addr)
	if err != nil {
		return err
	}
	p.trapExit = enabled
	return nil
}

// SpawnLinked spawns a process linked to parent.
func (e *Engine) SpawnLinked(parent Address, instructions []Instruction) (*Process, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pp, err := e.lookup(parent)
	if err != nil {
		return nil, err
	}
	child := e.spawn(instructions)
	if pp.alive() {
		e.link(pp, child)
	}
	return child, nil
}

// SpawnMonitored spawns a process monitored by watcher.
func (e *Engine) SpawnMonitored(watcher Address, instructions []Instruction) (*Process, MonitorRef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.lookup(watcher); err != nil {
		return nil, 0, err
	}
	child := e.spawn(instructions)
	return child, e.monitor(watcher, child.address), nil
}

// Register binds name to a live process.
func (e *Engine) Register(name string, addr Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.lookup(addr)
	if err != nil {
		return err
	}
	return e.register(name, p)
}

// Whereis resolves a registered name.
func (e *Engine) Whereis(name string) (Address, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	addr, ok := e.registry[name]
	return addr, ok
}

// Registered returns a copy of the name registry.
func (e *Engine) Registered() map[string]Address {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]Address, len(e.registry))
	for name, addr := range e.registry {
		out[name] = addr
	}
	return out
}

func (e *Engine) lookupPair(a, b Address) (*Process, *Process, error) {
	pa, err := e.lookup(a)
	if err != nil {
		return nil, nil, err
	}
	pb, err := e.lookup(b)
	if err != nil {
		return nil, nil, err
	}
	return pa, pb, nil
}

func (e *Engine) register(name string, p *Process) error {
	if _, taken := e.registry[name]; taken {
		return fmt.Errorf("%w: %q", ErrNameRegistered, name)
	}
	if !p.alive() {
		return fmt.Errorf("cannot register exited process %s", p.address)
	}
	if p.name != "" {
		delete(e.registry, p.name)
	}
	p.name = name
	e.registry[name] = p.address
	return nil
}

func (e *Engine) link(a, b *Process) {
	if a == b {
		return
	}
	a.links[b.address] = struct{}{}
	b.links[a.address] = struct{}{}
}

func (e *Engine) unlink(a, b *Process) {
	delete(a.links, b.address)
	delete(b.links, a.address)
}

func (e *Engine) monitor(watcher, target Address) MonitorRef {
	e.nextRef++
	ref := e.nextRef

	if t, ok := e.byAddress[target]; !ok || !t.alive() {
		if w, ok := e.byAddress[watcher]; ok {
			e.stats.MonitorNotifications++
			e.deliver(w, downMessage(ref, target, ReasonNoProc))
		}
		return ref
	}
	e.monitors[ref] = &monitor{ref: ref, watcher: watcher, target: target}
	return ref
}

func (e *Engine) send(addr Address, msg Value) bool {
	e.stats.MessagesSent++
	p, ok := e.byAddress[addr]
	if !ok {
		e.stats.MessagesDropped++
		return false
	}
	return e.deliver(p, msg)
}

func (e *Engine) deliver(p *Process, msg Value) bool {
	if !p.alive() {
		e.stats.MessagesDropped++
		return false
	}
	if limit := e.cfg.MaxMailboxSize; limit > 0 && len(p.mailbox) >= limit {
		e.stats.MessagesDropped++
		return false
	}
	p.mailbox = append(p.mailbox, msg)
	if p.status == StatusWaiting && e.cfg.AutoReactivate {
		p.status = StatusRunnable
	}
	return true
}

// terminate ends p and notifies links, monitors and its supervisor.
func (e *Engine) terminate(p *Process, reason string) {
	if !p.alive() {
		return
	}

	p.exitReason = reason
	if abnormal(reason) {
		p.status = StatusCrashed
		e.stats.Crashes++
		e.crashDumps = append(e.crashDumps, CrashDump{
			Address:  p.address,
			Reason:   reason,
			Counter:  p.counter,
			Stack:    append([]Value(nil), p.stack...),
			Executed: p.executed,
			Time:     e.now(),
		})
	} else {
		p.status = StatusExited
	}

	if p.name != "" {
		delete(e.registry, p.name)
	}

	for _, addr := range p.linkedAddresses() {
		other, ok := e.byAddress[addr]
		if !ok {
			continue
		}
		e.unlink(p, other)
		e.signal(other, p.address, reason)
	}

	refs := make([]MonitorRef, 0)
	for ref, m := range e.monitors {
		if m.watcher == p.address || m.target == p.address {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	for _, ref := range refs {
		m := e.monitors[ref]
		delete(e.monitors, ref)
		if m.target != p.address {
			continue
		}
		if w, ok := e.byAddress[m.watcher]; ok {
			e.stats.MonitorNotifications++
			e.deliver(w, downMessage(ref, p.address, reason))
		}
	}

	if s := p.supervisor; s != nil {
		s.childExited(p, reason)
	}
}

// signal applies an exit signal from a linked process or from outside when from is zero.
func (e *Engine) signal(target *Process, from Address, reason string) {
	if !target.alive() {
		return
	}
	if reason == ReasonKill {
		e.stats.LinkedExits++
		e.terminate(target, ReasonKilled)
		return
	}
	if target.trapExit {
		e.deliver(target, exitMessage(from, reason))
		return
	}
	if reason == ReasonNormal {
		return
	}
	e.stats.LinkedExits++
	e.terminate(target, reason)
}

func abnormal(reason string) bool {
	return reason != ReasonNormal && reason != ReasonShutdown
}

func exitMessage(from Address, reason string) Value {
	return map[string]Value{
		"type":   "EXIT",
		"from":   int64(from),
		"reason": reason,
	}
}

func downMessage(ref MonitorRef, process Address, reason string) Value {
	return map[string]Value{
		"type":    "DOWN",
		"ref":     int64(ref),
		"process": int64(process),
		"reason":  reason,
	}
}
