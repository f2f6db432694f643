package debugger

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/grkek/juicy-fruit/src/debugd/controller/debugger/debuggermock"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/factory"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/client/clientmock"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type expectation func(m *debuggermock.MockController) *gomock.Call

// _routes lists the controller method every command is routed to.
var _routes = map[entity.Command]expectation{
	entity.CommandPing: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Ping(gomock.Any(), gomock.Any())
	},
	entity.CommandInit: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Init(gomock.Any(), gomock.Any())
	},
	entity.CommandLoad: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Load(gomock.Any(), gomock.Any())
	},
	entity.CommandRun: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Run(gomock.Any(), gomock.Any())
	},
	entity.CommandStep: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Step(gomock.Any(), gomock.Any())
	},
	entity.CommandStepOver: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().StepOver(gomock.Any(), gomock.Any())
	},
	entity.CommandContinue: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Continue(gomock.Any(), gomock.Any())
	},
	entity.CommandAbort: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Abort(gomock.Any(), gomock.Any())
	},
	entity.CommandAddBreakpoint: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().AddBreakpoint(gomock.Any(), gomock.Any())
	},
	entity.CommandRemoveBreakpoint: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().RemoveBreakpoint(gomock.Any(), gomock.Any())
	},
	entity.CommandEnableBreakpoint: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().EnableBreakpoint(gomock.Any(), gomock.Any())
	},
	entity.CommandDisableBreakpoint: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().DisableBreakpoint(gomock.Any(), gomock.Any())
	},
	entity.CommandClearBreakpoints: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().ClearBreakpoints(gomock.Any(), gomock.Any())
	},
	entity.CommandListBreakpoints: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().ListBreakpoints(gomock.Any(), gomock.Any())
	},
	entity.CommandGetState: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetState(gomock.Any(), gomock.Any())
	},
	entity.CommandEvaluate: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().Evaluate(gomock.Any(), gomock.Any())
	},
	entity.CommandGetProcessInfo: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetProcessInfo(gomock.Any(), gomock.Any())
	},
	entity.CommandListProcesses: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().ListProcesses(gomock.Any(), gomock.Any())
	},
	entity.CommandInspectStack: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().InspectStack(gomock.Any(), gomock.Any())
	},
	entity.CommandInspectLocals: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().InspectLocals(gomock.Any(), gomock.Any())
	},
	entity.CommandInspectGlobals: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().InspectGlobals(gomock.Any(), gomock.Any())
	},
	entity.CommandGetCallStack: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetCallStack(gomock.Any(), gomock.Any())
	},
	entity.CommandGetInstructions: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetInstructions(gomock.Any(), gomock.Any())
	},
	entity.CommandGetConfiguration: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetConfiguration(gomock.Any(), gomock.Any())
	},
	entity.CommandGetFaultToleranceStats: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetFaultToleranceStats(gomock.Any(), gomock.Any())
	},
	entity.CommandGetCrashDumps: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetCrashDumps(gomock.Any(), gomock.Any())
	},
	entity.CommandGetRegisteredProcesses: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetRegisteredProcesses(gomock.Any(), gomock.Any())
	},
	entity.CommandSetLocal: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SetLocal(gomock.Any(), gomock.Any())
	},
	entity.CommandSetGlobal: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SetGlobal(gomock.Any(), gomock.Any())
	},
	entity.CommandKillProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().KillProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandSendMessage: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SendMessage(gomock.Any(), gomock.Any())
	},
	entity.CommandGetMailbox: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetMailbox(gomock.Any(), gomock.Any())
	},
	entity.CommandSpawnProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SpawnProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandSpawnLinkedProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SpawnLinkedProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandSpawnMonitoredProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SpawnMonitoredProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandLinkProcesses: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().LinkProcesses(gomock.Any(), gomock.Any())
	},
	entity.CommandUnlinkProcesses: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().UnlinkProcesses(gomock.Any(), gomock.Any())
	},
	entity.CommandMonitorProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().MonitorProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandDemonitorProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().DemonitorProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandSetTrapExit: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SetTrapExit(gomock.Any(), gomock.Any())
	},
	entity.CommandExitProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().ExitProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandRegisterProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().RegisterProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandWhereisProcess: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().WhereisProcess(gomock.Any(), gomock.Any())
	},
	entity.CommandGetProcessLinks: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetProcessLinks(gomock.Any(), gomock.Any())
	},
	entity.CommandGetProcessMonitors: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetProcessMonitors(gomock.Any(), gomock.Any())
	},
	entity.CommandCreateSupervisor: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().CreateSupervisor(gomock.Any(), gomock.Any())
	},
	entity.CommandAddChild: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().AddChild(gomock.Any(), gomock.Any())
	},
	entity.CommandListSupervisors: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().ListSupervisors(gomock.Any(), gomock.Any())
	},
	entity.CommandGetSupervisorInfo: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetSupervisorInfo(gomock.Any(), gomock.Any())
	},
	entity.CommandGetSupervisorChildren: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().GetSupervisorChildren(gomock.Any(), gomock.Any())
	},
	entity.CommandRemoveChild: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().RemoveChild(gomock.Any(), gomock.Any())
	},
	entity.CommandRestartChild: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().RestartChild(gomock.Any(), gomock.Any())
	},
	entity.CommandSetConfiguration: func(m *debuggermock.MockController) *gomock.Call {
		return m.EXPECT().SetConfiguration(gomock.Any(), gomock.Any())
	},
}

type routerFixture struct {
	router  *router
	ctrl    *debuggermock.MockController
	gateway *clientmock.MockGateway
	stats   tally.TestScope
	logs    *observer.ObservedLogs
}

func newRouterFixture(t *testing.T) *routerFixture {
	mockCtrl := gomock.NewController(t)
	core, logs := observer.New(zap.InfoLevel)
	f := &routerFixture{
		ctrl:    debuggermock.NewMockController(mockCtrl),
		gateway: clientmock.NewMockGateway(mockCtrl),
		stats:   tally.NewTestScope("testing", make(map[string]string, 0)),
		logs:    logs,
	}
	f.router = &router{
		debugger: f.ctrl,
		gateway:  f.gateway,
		uuid:     factory.UUID(),
		logger:   zap.New(core).Sugar(),
		stats:    f.stats,
	}
	return f
}

func TestHandleMessageRoutesEveryCommand(t *testing.T) {
	for cmd, expect := range _routes {
		t.Run(string(cmd), func(t *testing.T) {
			f := newRouterFixture(t)
			reply := entity.NewEnvelope("reply", entity.Fields{"command": string(cmd)})

			expect(f.ctrl).DoAndReturn(func(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
				id, ok := ctx.Value(entity.SessionContextKey).(uuid.UUID)
				require.True(t, ok)
				assert.Equal(t, f.router.uuid, id)
				assert.Equal(t, cmd, req.Command)
				return reply, nil
			})
			f.gateway.EXPECT().Send(gomock.Any(), reply).Return(nil)

			f.router.HandleMessage(context.Background(), websocket.TextMessage, factory.Message(cmd, nil))

			counter, ok := f.stats.Snapshot().Counters()["testing.commands+command="+string(cmd)]
			require.True(t, ok)
			assert.Equal(t, int64(1), counter.Value())
		})
	}
}

func TestHandleMessageErrors(t *testing.T) {
	tests := []struct {
		name        string
		messageType int
		data        []byte
		setupMocks  func(m *debuggermock.MockController)
		wantCode    errors.Code
		wantMessage string
	}{
		{
			name:        "binary frame",
			messageType: websocket.BinaryMessage,
			data:        []byte{0x1},
			wantCode:    errors.CodeUnsupportedFormat,
		},
		{
			name:        "malformed json",
			messageType: websocket.TextMessage,
			data:        []byte(`{"command":`),
			wantCode:    errors.CodeInvalidJSON,
		},
		{
			name:        "not an object",
			messageType: websocket.TextMessage,
			data:        []byte(`["ping"]`),
			wantCode:    errors.CodeInvalidJSON,
		},
		{
			name:        "missing command",
			messageType: websocket.TextMessage,
			data:        []byte(`{}`),
			wantCode:    errors.CodeUnknownCommand,
		},
		{
			name:        "unknown command",
			messageType: websocket.TextMessage,
			data:        []byte(`{"command":"fly"}`),
			wantCode:    errors.CodeUnknownCommand,
		},
		{
			name:        "command error",
			messageType: websocket.TextMessage,
			data:        factory.Message(entity.CommandRun, nil),
			setupMocks: func(m *debuggermock.MockController) {
				m.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, errors.Errorf(errors.CodeNoProgram, "no program loaded"))
			},
			wantCode:    errors.CodeNoProgram,
			wantMessage: "no program loaded",
		},
		{
			name:        "plain error",
			messageType: websocket.TextMessage,
			data:        factory.Message(entity.CommandGetState, nil),
			setupMocks: func(m *debuggermock.MockController) {
				m.EXPECT().GetState(gomock.Any(), gomock.Any()).Return(nil, errors.New("sample"))
			},
			wantCode:    errors.CodeCommandError,
			wantMessage: "sample",
		},
		{
			name:        "panic in command",
			messageType: websocket.TextMessage,
			data:        factory.Message(entity.CommandEvaluate, nil),
			setupMocks: func(m *debuggermock.MockController) {
				m.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *entity.Request) (*entity.Envelope, error) {
					panic("boom")
				})
			},
			wantCode:    errors.CodeCommandError,
			wantMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			if tt.setupMocks != nil {
				tt.setupMocks(f.ctrl)
			}

			var sent *entity.Envelope
			f.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, env *entity.Envelope) error {
				sent = env
				return nil
			})

			assert.NotPanics(t, func() {
				f.router.HandleMessage(context.Background(), tt.messageType, tt.data)
			})

			require.NotNil(t, sent)
			assert.Equal(t, entity.EnvelopeTypeError, sent.Type)
			assert.Equal(t, string(tt.wantCode), sent.Fields["code"])
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, sent.Fields["message"])
			}

			counter, ok := f.stats.Snapshot().Counters()["testing.command_errors+code="+string(tt.wantCode)]
			require.True(t, ok)
			assert.Equal(t, int64(1), counter.Value())
		})
	}
}

func TestHandleMessageUnknownCommandTag(t *testing.T) {
	f := newRouterFixture(t)
	f.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	f.router.HandleMessage(context.Background(), websocket.TextMessage, []byte(`{"command":"fly"}`))

	counters := f.stats.Snapshot().Counters()
	_, ok := counters["testing.commands+command=fly"]
	assert.False(t, ok)
	counter, ok := counters["testing.commands+command=unknown"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counter.Value())
}

func TestHandleMessageWithoutReply(t *testing.T) {
	f := newRouterFixture(t)
	f.ctrl.EXPECT().Step(gomock.Any(), gomock.Any()).Return(nil, nil)

	// No Send expectation: a nil envelope is not answered.
	f.router.HandleMessage(context.Background(), websocket.TextMessage, factory.Message(entity.CommandStep, nil))
}

func TestHandleMessageSendFailure(t *testing.T) {
	f := newRouterFixture(t)
	f.ctrl.EXPECT().Ping(gomock.Any(), gomock.Any()).Return(entity.NewEnvelope("pong", nil), nil)
	f.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("closed"))

	f.router.HandleMessage(context.Background(), websocket.TextMessage, factory.Message(entity.CommandPing, nil))

	assert.Equal(t, 1, f.logs.FilterMessage("sending reply").Len())
}

func TestHandleMessageLogsPanics(t *testing.T) {
	f := newRouterFixture(t)
	f.ctrl.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *entity.Request) (*entity.Envelope, error) {
		panic("boom")
	})
	f.gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	f.router.HandleMessage(context.Background(), websocket.TextMessage, factory.Message(entity.CommandLoad, nil))

	entries := f.logs.FilterMessage("recovered from panic in command").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "load", entries[0].ContextMap()["command"])
}

func TestUUID(t *testing.T) {
	sampleUUID := factory.UUID()
	r := router{uuid: sampleUUID}
	assert.Equal(t, sampleUUID, r.UUID())
}

func TestRoutesCoverEveryCommand(t *testing.T) {
	assert.Len(t, _routes, 53)
}
