package main

import (
	"context"
	"math"
	"os"
	"time"

	"go.uber.org/fx"

	"github.com/USGS-EROS/lcmap-data/pkg/cmd"
	"github.com/USGS-EROS/lcmap-data/pkg/config"
)

// NB: These are set by GoReleaser during a build.
var (
	version   string
	commit    string
	timestamp string
)

func main() {
	fx.New(
		fx.NopLogger,
		// The whole command runs inside the start hook; schema loads and
		// scene ingests must not be cut off by the default start timeout.
		fx.StartTimeout(time.Duration(math.MaxInt64)),
		fx.Provide(
			func() context.Context { return context.Background() },
			func() []string { return os.Args },
			func() *cmd.Version {
				return &cmd.Version{Version: version, Commit: commit, Timestamp: timestamp}
			},
		),
		config.Module,
		cmd.Module,
	).Run()
}
