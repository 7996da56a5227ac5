package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USGS-EROS/lcmap-data/pkg/cmd/testutil"
	"github.com/USGS-EROS/lcmap-data/pkg/config"
	"github.com/USGS-EROS/lcmap-data/pkg/system"
)

// schemaPath points at the repository's schema script.
var schemaPath = filepath.Join("..", "..", "resources", "schema.cql")

func TestExecCommand_MissingScript(t *testing.T) {
	cfg := config.Configuration{Opts: config.Options{CQL: filepath.Join(t.TempDir(), "missing.cql")}}

	err := dispatch(context.Background(), system.New(cfg), "exec", nil, []*Handler{execCmd()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CQL file")
}

func TestExecCommand(t *testing.T) {
	host := testutil.StartCassandra(t)
	env := config.MapEnviron(map[string]string{config.EnvHosts: host})

	require.NoError(t, runApp(t, env, "--cql", schemaPath, "exec"))

	// The script only uses IF NOT EXISTS, so a second run is a no-op.
	require.NoError(t, runApp(t, env, "--cql", schemaPath, "exec"))

	// An unrecognized command against a live cluster still completes.
	require.NoError(t, runApp(t, env, "bogus"))

	client := connect(t, host)
	ctx := context.Background()

	sc := client.Scan(ctx, "SELECT table_name FROM system_schema.tables WHERE keyspace_name = ?", "lcmap")

	var tables []string
	for sc.Next() {
		var name string
		require.NoError(t, sc.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, sc.Err())

	assert.ElementsMatch(t, []string{"tile_specs", "tiles"}, tables)
}
