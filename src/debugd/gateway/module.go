package gateway

import (
	"github.com/grkek/juicy-fruit/src/debugd/gateway/client"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/engine"
	"go.uber.org/fx"
)

// Module provides the outbound gateways into an Fx application.
var Module = fx.Options(
	fx.Provide(client.New),
	fx.Provide(engine.New),
)
