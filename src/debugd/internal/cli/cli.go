// Package cli builds the debugd command line.
package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/grkek/juicy-fruit/src/debugd/internal/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const _flagConfigDir = "config-dir"

// Runner starts the daemon with the resolved configuration directory and blocks until it stops.
type Runner func(dir core.ConfigDir) error

type serveOptions struct {
	configDir string
}

func (o *serveOptions) flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.StringVar(&o.configDir, _flagConfigDir, "", "directory holding meta.yaml (defaults to $DEBUGD_CONFIG_DIR, then src/debugd/config)")
	return fs
}

func (o *serveOptions) run(run Runner) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		return run(core.ResolveConfigDir(o.configDir))
	}
}

// NewRootCmd returns the debugd command tree. Invoked without a subcommand it behaves like serve.
func NewRootCmd(version string, run Runner) *cobra.Command {
	opts := &serveOptions{}
	root := &cobra.Command{
		Use:           "debugd",
		Short:         "Websocket remote debugger for the process virtual machine",
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          opts.run(run),
	}
	root.Flags().AddFlagSet(opts.flags())
	root.SetVersionTemplate(versionLine(version) + "\n")

	root.AddCommand(newServeCmd(run))
	root.AddCommand(newVersionCmd(version))
	return root
}

func newServeCmd(run Runner) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the debugger daemon",
		Args:  cobra.NoArgs,
		RunE:  opts.run(run),
	}
	cmd.Flags().AddFlagSet(opts.flags())
	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the debugd version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVersion(cmd.OutOrStdout(), version)
		},
	}
}

func printVersion(w io.Writer, version string) error {
	_, err := fmt.Fprintln(w, versionLine(version))
	return err
}

func versionLine(version string) string {
	return fmt.Sprintf("debugd %s (%s %s/%s)", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
