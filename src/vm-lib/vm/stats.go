package vm

import "time"

// Stats aggregates fault tolerance counters over the lifetime of an Engine.
type Stats struct {
	ProcessesSpawned      int
	Crashes               int
	Restarts              int
	LinkedExits           int
	MonitorNotifications  int
	MessagesSent          int
	MessagesDropped       int
	SupervisorsCreated    int
	SupervisorsTerminated int
}

// CrashDump records the state of a process at the moment it terminated abnormally.
type CrashDump struct {
	Address  Address
	Reason   string
	Counter  int
	Stack    []Value
	Executed uint64
	Time     time.Time
}

// Stats returns a copy of the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// CrashDumps returns every recorded crash in the order they happened.
func (e *Engine) CrashDumps() []CrashDump {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]CrashDump(nil), e.crashDumps...)
}
