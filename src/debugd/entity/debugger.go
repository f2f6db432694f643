// Package entity holds the domain types shared by the debugger service layers.
package entity

// SessionContextKey is used to store a session UUID within a context.Context.
const SessionContextKey = contextKey("SessionUUID")

type contextKey string

// Command is the name carried in the "command" field of a request.
type Command string

// Commands understood by the dispatcher.
const (
	CommandPing Command = "ping"

	// Lifecycle and execution control.
	CommandInit     Command = "init"
	CommandLoad     Command = "load"
	CommandRun      Command = "run"
	CommandStep     Command = "step"
	CommandStepOver Command = "stepOver"
	CommandContinue Command = "continue"
	CommandAbort    Command = "abort"

	// Breakpoints.
	CommandAddBreakpoint     Command = "addBreakpoint"
	CommandRemoveBreakpoint  Command = "removeBreakpoint"
	CommandEnableBreakpoint  Command = "enableBreakpoint"
	CommandDisableBreakpoint Command = "disableBreakpoint"
	CommandClearBreakpoints  Command = "clearBreakpoints"
	CommandListBreakpoints   Command = "listBreakpoints"

	// Introspection.
	CommandGetState               Command = "getState"
	CommandEvaluate               Command = "evaluate"
	CommandGetProcessInfo         Command = "getProcessInfo"
	CommandListProcesses          Command = "listProcesses"
	CommandInspectStack           Command = "inspectStack"
	CommandInspectLocals          Command = "inspectLocals"
	CommandInspectGlobals         Command = "inspectGlobals"
	CommandGetCallStack           Command = "getCallStack"
	CommandGetInstructions        Command = "getInstructions"
	CommandGetConfiguration       Command = "getConfiguration"
	CommandGetFaultToleranceStats Command = "getFaultToleranceStats"
	CommandGetCrashDumps          Command = "getCrashDumps"
	CommandGetRegisteredProcesses Command = "getRegisteredProcesses"

	// Paused state mutation.
	CommandSetLocal  Command = "setLocal"
	CommandSetGlobal Command = "setGlobal"

	// Process and topology control.
	CommandKillProcess           Command = "killProcess"
	CommandSendMessage           Command = "sendMessage"
	CommandGetMailbox            Command = "getMailbox"
	CommandSpawnProcess          Command = "spawnProcess"
	CommandSpawnLinkedProcess    Command = "spawnLinkedProcess"
	CommandSpawnMonitoredProcess Command = "spawnMonitoredProcess"
	CommandLinkProcesses         Command = "linkProcesses"
	CommandUnlinkProcesses       Command = "unlinkProcesses"
	CommandMonitorProcess        Command = "monitorProcess"
	CommandDemonitorProcess      Command = "demonitorProcess"
	CommandSetTrapExit           Command = "setTrapExit"
	CommandExitProcess           Command = "exitProcess"
	CommandRegisterProcess       Command = "registerProcess"
	CommandWhereisProcess        Command = "whereisProcess"
	CommandGetProcessLinks       Command = "getProcessLinks"
	CommandGetProcessMonitors    Command = "getProcessMonitors"

	// Supervision.
	CommandCreateSupervisor      Command = "createSupervisor"
	CommandAddChild              Command = "addChild"
	CommandListSupervisors       Command = "listSupervisors"
	CommandGetSupervisorInfo     Command = "getSupervisorInfo"
	CommandGetSupervisorChildren Command = "getSupervisorChildren"
	CommandRemoveChild           Command = "removeChild"
	CommandRestartChild          Command = "restartChild"

	// Configuration.
	CommandSetConfiguration Command = "setConfiguration"
)

// Unsolicited envelope types pushed by the server.
const (
	PushStdout            = "stdout"
	PushBreakpointHit     = "breakpointHit"
	PushExecutionError    = "executionError"
	PushExecutionComplete = "executionComplete"
)

// EnvelopeTypeError is the type of every error envelope.
const EnvelopeTypeError = "error"
