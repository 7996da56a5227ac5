package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/USGS-EROS/lcmap-data/pkg/config"
	"github.com/USGS-EROS/lcmap-data/pkg/consts"
)

// parseOptions runs a throwaway command over args and returns the option
// block the global flags produced.
func parseOptions(t *testing.T, env config.Environ, args ...string) config.Options {
	t.Helper()

	var opts config.Options
	app := &cli.Command{
		Name:     "test",
		HideHelp: true,
		Flags:    globalFlags(env),
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts = options(cmd)
			return nil
		},
	}

	require.NoError(t, app.Run(context.Background(), append([]string{"test"}, args...)))
	return opts
}

func TestGlobalFlags_Defaults(t *testing.T) {
	opts := parseOptions(t, config.MapEnviron(nil))

	assert.Empty(t, opts.Hosts)
	assert.Empty(t, opts.Username)
	assert.Empty(t, opts.Password)
	assert.Empty(t, opts.SpecKeyspace)
	assert.Empty(t, opts.SpecTable)
	assert.Equal(t, consts.DefaultCQLFile, opts.CQL)
	assert.Equal(t, consts.DefaultBatchSize, opts.BatchSize)
	assert.False(t, opts.ChecksumIngest)
	assert.Equal(t, filepath.Join(os.TempDir(), consts.ChecksumFileName), opts.ChecksumOutfile)
}

func TestGlobalFlags_EnvDefaults(t *testing.T) {
	env := config.MapEnviron(map[string]string{
		config.EnvHosts:        "cass1,cass2",
		config.EnvUser:         "lcmap",
		config.EnvPass:         "secret",
		config.EnvSpecKeyspace: "lcmap",
		config.EnvSpecTable:    "tile_specs",
	})

	opts := parseOptions(t, env)

	assert.Equal(t, "cass1,cass2", opts.Hosts)
	assert.Equal(t, "lcmap", opts.Username)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, "lcmap", opts.SpecKeyspace)
	assert.Equal(t, "tile_specs", opts.SpecTable)
}

func TestGlobalFlags_FlagsOverrideEnv(t *testing.T) {
	env := config.MapEnviron(map[string]string{config.EnvHosts: "from-env"})

	opts := parseOptions(t, env, "--hosts", "from-flag")

	assert.Equal(t, "from-flag", opts.Hosts)
}

func TestGlobalFlags_ShortAliases(t *testing.T) {
	opts := parseOptions(t, config.MapEnviron(nil),
		"-h", "cass1",
		"-u", "user",
		"-p", "pass",
		"-k", "keyspace",
		"-t", "table",
		"-c", "schema.cql",
		"-b", "10",
		"-m",
	)

	assert.Equal(t, "cass1", opts.Hosts)
	assert.Equal(t, "user", opts.Username)
	assert.Equal(t, "pass", opts.Password)
	assert.Equal(t, "keyspace", opts.SpecKeyspace)
	assert.Equal(t, "table", opts.SpecTable)
	assert.Equal(t, "schema.cql", opts.CQL)
	assert.Equal(t, 10, opts.BatchSize)
	assert.True(t, opts.ChecksumIngest)
}

func TestGlobalFlags_TrimsWhitespace(t *testing.T) {
	opts := parseOptions(t, config.MapEnviron(nil), "--hosts", "  cass1, cass2  ")

	assert.Equal(t, "cass1, cass2", opts.Hosts)
}

func TestGlobalFlags_UniqueNames(t *testing.T) {
	seen := map[string]string{}

	for _, f := range globalFlags(config.MapEnviron(nil)) {
		for _, name := range f.Names() {
			first, dup := seen[name]
			require.False(t, dup, "flag name %q used by --%s and --%s", name, first, f.Names()[0])
			seen[name] = f.Names()[0]
		}
	}
}
