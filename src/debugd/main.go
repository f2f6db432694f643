package main

import (
	"fmt"
	"os"

	"github.com/grkek/juicy-fruit/src/debugd/app"
	"github.com/grkek/juicy-fruit/src/debugd/internal/cli"
	"github.com/grkek/juicy-fruit/src/debugd/internal/core"
	"go.uber.org/fx"
)

// Overridden at link time with -ldflags "-X main._version=...".
var _version = "dev"

func opts(dir core.ConfigDir) fx.Option {
	return fx.Options(
		fx.Supply(dir),
		app.Module,
	)
}

func serve(dir core.ConfigDir) error {
	application := fx.New(opts(dir))
	if err := application.Err(); err != nil {
		return err
	}
	application.Run()
	return nil
}

func main() {
	if err := cli.NewRootCmd(_version, serve).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
