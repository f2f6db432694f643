package app

import (
	"context"
	"fmt"
	"time"

	"github.com/grkek/juicy-fruit/src/debugd/gateway"
	"github.com/grkek/juicy-fruit/src/debugd/handler"
	"github.com/grkek/juicy-fruit/src/debugd/internal/clock"
	"github.com/grkek/juicy-fruit/src/debugd/internal/core"
	"github.com/grkek/juicy-fruit/src/debugd/internal/fs"
	"github.com/grkek/juicy-fruit/src/debugd/internal/serverinfofile"
	"github.com/grkek/juicy-fruit/src/debugd/internal/wsfx"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_defaultServiceName = "debugd"
	_reportInterval     = 1 * time.Second
)

// Module defines the debugd application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	wsfx.Module,
	fs.Module,
	clock.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(newRootScope),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)

// newRootScope builds the metrics root scope tagged with service.name.
func newRootScope(lc fx.Lifecycle, cfg config.Provider) (tally.Scope, error) {
	var name string
	if err := cfg.Get("service.name").Populate(&name); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", "service.name", err)
	}
	if name == "" {
		name = _defaultServiceName
	}

	rs, closer := tally.NewRootScope(tally.ScopeOptions{
		Tags: map[string]string{
			"service": name,
		},
	}, _reportInterval)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close()
		},
	})

	return rs, nil
}
