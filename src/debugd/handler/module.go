package handler

import (
	controller "github.com/grkek/juicy-fruit/src/debugd/controller"
	"github.com/grkek/juicy-fruit/src/debugd/controller/debugger"
	handler "github.com/grkek/juicy-fruit/src/debugd/handler/debugger"
	"github.com/grkek/juicy-fruit/src/debugd/repository/session"
	"go.uber.org/fx"
)

// Module provides the debugger websocket inbound into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(outputWebsocketConnectionInfo),
	fx.Invoke(func(m handler.Handler) {}),
	fx.Invoke(func(m debugger.Controller) {}),
)
