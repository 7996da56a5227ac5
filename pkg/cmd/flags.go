package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/USGS-EROS/lcmap-data/pkg/config"
	"github.com/USGS-EROS/lcmap-data/pkg/consts"
)

// envVarSource resolves a flag default from an injected environment. It does
// what cli.EnvVars does, except that it reads through config.Environ so
// tests can supply environment values without mutating the process
// environment.
type envVarSource struct {
	env config.Environ
	key string
}

func (s envVarSource) Lookup() (string, bool) { return s.env(s.key) }
func (s envVarSource) String() string         { return fmt.Sprintf("environment variable %q", s.key) }
func (s envVarSource) GoString() string       { return fmt.Sprintf("envVarSource(%q)", s.key) }

// globalFlags returns the CLI's global option set. Connection and naming
// flags default from the environment; the rest carry fixed defaults.
func globalFlags(env config.Environ) []cli.Flag {
	fromEnv := func(key string) cli.ValueSourceChain {
		return cli.ValueSourceChain{Chain: []cli.ValueSource{envVarSource{env: env, key: key}}}
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "hosts",
			Aliases: []string{"h"},
			Usage:   "comma-separated list of Cassandra hosts",
			Sources: fromEnv(config.EnvHosts),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "username for database authentication",
			Sources: fromEnv(config.EnvUser),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "password for database authentication",
			Sources: fromEnv(config.EnvPass),
		},
		&cli.StringFlag{
			Name:    "spec-keyspace",
			Aliases: []string{"k"},
			Usage:   "keyspace holding tile specs",
			Sources: fromEnv(config.EnvSpecKeyspace),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "spec-table",
			Aliases: []string{"t"},
			Usage:   "table holding tile specs",
			Sources: fromEnv(config.EnvSpecTable),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "cql",
			Aliases: []string{"c"},
			Usage:   "path of the CQL script run by exec",
			Value:   consts.DefaultCQLFile,
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.IntFlag{
			Name:    "batch-size",
			Aliases: []string{"b"},
			Usage:   "number of tile rows written per batch",
			Value:   consts.DefaultBatchSize,
		},
		&cli.BoolFlag{
			Name:    "checksum-ingest",
			Aliases: []string{"m"},
			Usage:   "record md5 checksums of ingested rasters",
		},
		&cli.StringFlag{
			Name:   "checksum-outfile",
			Usage:  "file checksum lines are appended to",
			Value:  filepath.Join(os.TempDir(), consts.ChecksumFileName),
			Config: cli.StringConfig{TrimSpace: true},
		},
	}
}

// options collects the parsed global flags into the raw option block fed to
// config.Resolve.
func options(cmd *cli.Command) config.Options {
	return config.Options{
		Hosts:           cmd.String("hosts"),
		Username:        cmd.String("username"),
		Password:        cmd.String("password"),
		SpecKeyspace:    cmd.String("spec-keyspace"),
		SpecTable:       cmd.String("spec-table"),
		CQL:             cmd.String("cql"),
		BatchSize:       int(cmd.Int("batch-size")),
		ChecksumIngest:  cmd.Bool("checksum-ingest"),
		ChecksumOutfile: cmd.String("checksum-outfile"),
	}
}
