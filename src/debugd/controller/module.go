package controller

import (
	"github.com/grkek/juicy-fruit/src/debugd/controller/debugger"
	"go.uber.org/fx"
)

// Module provides the controllers into an Fx application.
var Module = fx.Options(
	fx.Provide(debugger.New),
)
