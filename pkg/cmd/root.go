package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"

	"github.com/USGS-EROS/lcmap-data/pkg/config"
	"github.com/USGS-EROS/lcmap-data/pkg/system"
)

type (
	// Params defines the dependencies required by the CLI application.
	Params struct {
		fx.In

		Args       []string
		Commands   []*Handler `group:"commands"`
		Ctx        context.Context
		Env        config.Environ
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	// Version describes the build information for the CLI.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// Handler is a dispatchable command. By the time a handler runs, the
	// global flags have been folded into the runtime's configuration and
	// the runtime has been started, so Run can rely on a live database
	// session. Operands are the positional arguments after the command
	// name.
	Handler struct {
		Name  string
		Usage string
		Run   func(ctx context.Context, sys *system.System, operands []string) error
	}
)

// Run creates and runs the CLI application. Any error surfaced by a command
// is logged here and converted into a non-zero exit code; a completed run
// always exits zero.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := newApp(p)

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func newApp(p Params) *cli.Command {
	// -h belongs to --hosts, so help keeps its long form only.
	cli.HelpFlag = &cli.BoolFlag{
		Name:        "help",
		Usage:       "show help",
		HideDefault: true,
		Local:       true,
	}

	return &cli.Command{
		Name:        "lcmap",
		Usage:       "Manage LCMAP schemas and ingest Landsat scenes into the tile store",
		Description: describeCommands(p.Commands),
		ArgsUsage:   "<command> [operand ...]",
		Version:     p.Version.Version,
		Flags:       globalFlags(p.Env),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, p)
		},
	}
}

// run resolves the configuration, starts the runtime, and hands the first
// positional argument to its command handler. The runtime is started before
// dispatch for every command and stopped again once the handler returns.
func run(ctx context.Context, cmd *cli.Command, p Params) error {
	if cmd.Args().Len() == 0 {
		return cli.ShowAppHelp(cmd)
	}

	cfg, err := config.Resolve(p.Env, options(cmd))
	if err != nil {
		return err
	}

	sys := system.New(cfg)
	defer sys.Stop()

	if err := sys.Start(ctx); err != nil {
		return err
	}

	return dispatch(ctx, sys, cmd.Args().First(), cmd.Args().Tail(), p.Commands)
}

// dispatch runs the handler matching name. Unrecognized names are logged and
// swallowed rather than failing the run, so they exit zero like any other
// run that had nothing to do.
func dispatch(ctx context.Context, sys *system.System, name string, operands []string, handlers []*Handler) error {
	for _, h := range handlers {
		if h.Name == name {
			return h.Run(ctx, sys, operands)
		}
	}

	slog.Error("Invalid command", "command", name)
	return nil
}

// describeCommands lists the dispatchable commands for the application help.
// Handlers arrive as an unordered value group, so they are sorted by name
// first.
func describeCommands(handlers []*Handler) string {
	sorted := make([]*Handler, len(handlers))
	copy(sorted, handlers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString("Commands:")
	for _, h := range sorted {
		fmt.Fprintf(&b, "\n   %-7s %s", h.Name, h.Usage)
	}

	return b.String()
}
