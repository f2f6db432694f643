package mapper

import (
	"time"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
)

// ProcessToWire maps a process snapshot to its wire object.
func ProcessToWire(s vm.ProcessState) entity.Fields {
	f := entity.Fields{
		"address":          s.Address.String(),
		"status":           s.Status.String(),
		"counter":          s.Counter,
		"instructionCount": s.Instructions,
		"stack":            ValuesToWire(s.Stack),
		"stackSize":        len(s.Stack),
		"locals":           ValuesToWire(s.Locals),
		"globals":          GlobalsToWire(s.Globals),
		"callStack":        FramesToWire(s.CallStack),
		"callDepth":        s.CallDepth(),
		"mailbox":          ValuesToWire(s.Mailbox),
		"mailboxSize":      len(s.Mailbox),
		"trapExit":         s.TrapExit,
		"links":            AddressesToWire(s.Links),
	}
	if s.Name != "" {
		f["name"] = s.Name
	}
	if s.ExitReason != "" {
		f["exitReason"] = s.ExitReason
	}
	if s.Supervisor != 0 {
		f["supervisor"] = s.Supervisor.String()
	}
	return f
}

// ValuesToWire copies a value sequence, never returning nil so it encodes as an array.
func ValuesToWire(values []vm.Value) []vm.Value {
	out := make([]vm.Value, len(values))
	copy(out, values)
	return out
}

// GlobalsToWire copies a globals table, never returning nil so it encodes as an object.
func GlobalsToWire(globals map[string]vm.Value) map[string]vm.Value {
	out := make(map[string]vm.Value, len(globals))
	for k, v := range globals {
		out[k] = v
	}
	return out
}

// FramesToWire maps a call stack.
func FramesToWire(frames []vm.Frame) []entity.Fields {
	out := make([]entity.Fields, 0, len(frames))
	for _, fr := range frames {
		out = append(out, entity.Fields{"returnCounter": fr.ReturnCounter})
	}
	return out
}

// AddressesToWire maps addresses to decimal strings.
func AddressesToWire(addrs []vm.Address) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}

// InstructionToWire maps one instruction and its position in the program.
func InstructionToWire(index int, in vm.Instruction) entity.Fields {
	f := entity.Fields{
		"index": index,
		"op":    in.Op.String(),
	}
	switch {
	case in.Body != nil:
		f["arg"] = InstructionsToWire(in.Body)
	case in.HasArg():
		f["arg"] = in.Arg
	}
	return f
}

// InstructionsToWire maps a program.
func InstructionsToWire(program []vm.Instruction) []entity.Fields {
	out := make([]entity.Fields, 0, len(program))
	for i, in := range program {
		out = append(out, InstructionToWire(i, in))
	}
	return out
}

// BreakpointToWire maps a session breakpoint with the live counters of its engine handle.
func BreakpointToWire(bp *entity.Breakpoint) entity.Fields {
	return entity.Fields{
		"id":            bp.ID,
		"conditionType": string(bp.ConditionType),
		"value":         bp.Value,
		"enabled":       bp.Handle.Enabled(),
		"ignoreCount":   bp.Handle.IgnoreCount(),
		"hitCount":      bp.Handle.HitCount(),
	}
}

// BreakpointsToWire maps a breakpoint list.
func BreakpointsToWire(bps []*entity.Breakpoint) []entity.Fields {
	out := make([]entity.Fields, 0, len(bps))
	for _, bp := range bps {
		out = append(out, BreakpointToWire(bp))
	}
	return out
}

// ConfigToWire maps the engine configuration. The execution delay is reported in milliseconds.
func ConfigToWire(c vm.Config) entity.Fields {
	return entity.Fields{
		"iterationLimit":    c.IterationLimit,
		"maxStackSize":      c.MaxStackSize,
		"maxMailboxSize":    c.MaxMailboxSize,
		"executionDelay":    c.ExecutionDelay.Milliseconds(),
		"deadlockDetection": c.DeadlockDetection,
		"autoReactivate":    c.AutoReactivate,
		"messageAcks":       c.MessageAcks,
	}
}

// StatsToWire maps the engine fault tolerance counters.
func StatsToWire(s vm.Stats) entity.Fields {
	return entity.Fields{
		"processesSpawned":      s.ProcessesSpawned,
		"crashes":               s.Crashes,
		"restarts":              s.Restarts,
		"linkedExits":           s.LinkedExits,
		"monitorNotifications":  s.MonitorNotifications,
		"messagesSent":          s.MessagesSent,
		"messagesDropped":       s.MessagesDropped,
		"supervisorsCreated":    s.SupervisorsCreated,
		"supervisorsTerminated": s.SupervisorsTerminated,
		"supervisorsActive":     s.SupervisorsCreated - s.SupervisorsTerminated,
	}
}

// CrashDumpsToWire maps recorded crashes.
func CrashDumpsToWire(dumps []vm.CrashDump) []entity.Fields {
	out := make([]entity.Fields, 0, len(dumps))
	for _, d := range dumps {
		out = append(out, entity.Fields{
			"address":  d.Address.String(),
			"reason":   d.Reason,
			"counter":  d.Counter,
			"stack":    ValuesToWire(d.Stack),
			"executed": d.Executed,
			"time":     d.Time.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}

// RegisteredToWire maps the name registry.
func RegisteredToWire(names map[string]vm.Address) map[string]string {
	out := make(map[string]string, len(names))
	for name, addr := range names {
		out[name] = addr.String()
	}
	return out
}

// MonitorsToWire maps monitor descriptions.
func MonitorsToWire(monitors []vm.MonitorInfo) []entity.Fields {
	out := make([]entity.Fields, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, entity.Fields{
			"ref":     m.Ref.String(),
			"watcher": m.Watcher.String(),
			"target":  m.Target.String(),
		})
	}
	return out
}

// SupervisorToWire maps a supervisor description.
func SupervisorToWire(info vm.SupervisorInfo) entity.Fields {
	return entity.Fields{
		"address":        info.Address.String(),
		"strategy":       info.Strategy.String(),
		"maxRestarts":    info.MaxRestarts,
		"maxSeconds":     info.MaxSeconds,
		"children":       info.Children,
		"activeChildren": info.ActiveChildren,
		"restarts":       info.Restarts,
		"terminated":     info.Terminated,
	}
}

// ChildToWire maps one supervised child.
func ChildToWire(c vm.ChildInfo) entity.Fields {
	f := entity.Fields{
		"id":       c.ID,
		"restart":  c.Restart.String(),
		"alive":    c.Alive,
		"restarts": c.Restarts,
	}
	if c.Address != 0 {
		f["address"] = c.Address.String()
	}
	return f
}

// ChildrenToWire maps supervised children.
func ChildrenToWire(children []vm.ChildInfo) []entity.Fields {
	out := make([]entity.Fields, 0, len(children))
	for _, c := range children {
		out = append(out, ChildToWire(c))
	}
	return out
}
