package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USGS-EROS/lcmap-data/pkg/cmd/testutil"
	"github.com/USGS-EROS/lcmap-data/pkg/config"
	"github.com/USGS-EROS/lcmap-data/pkg/system"
)

func TestSpecCommand_NoOperands(t *testing.T) {
	err := dispatch(context.Background(), system.New(config.Configuration{}), "spec", nil, []*Handler{specCmd()})
	require.NoError(t, err)
}

func TestSpecCommand(t *testing.T) {
	host := testutil.StartCassandra(t)
	env := config.MapEnviron(map[string]string{
		config.EnvHosts:        host,
		config.EnvSpecKeyspace: "lcmap",
		config.EnvSpecTable:    "tile_specs",
	})

	require.NoError(t, runApp(t, env, "--cql", schemaPath, "exec"))

	arch := testutil.NewScene(t).Archive(t.TempDir())
	require.NoError(t, runApp(t, env, "spec", arch))

	// Adoption is an upsert, so adopting the same scene again succeeds.
	require.NoError(t, runApp(t, env, "spec", arch))

	client := connect(t, host)

	sc := client.Scan(context.Background(),
		"SELECT tile_x, tile_y, pixel_x, pixel_y, shift_x, shift_y, data_fill FROM lcmap.tile_specs WHERE ubid = ?",
		testutil.SceneUBID)

	require.True(t, sc.Next(), "expected an adopted tile spec")

	var tileX, tileY, pixelX, pixelY, shiftX, shiftY float64
	var fill int64
	require.NoError(t, sc.Scan(&tileX, &tileY, &pixelX, &pixelY, &shiftX, &shiftY, &fill))
	require.False(t, sc.Next())
	require.NoError(t, sc.Err())

	assert.InDelta(t, 3000.0, tileX, 1e-9)
	assert.InDelta(t, -3000.0, tileY, 1e-9)
	assert.InDelta(t, 30.0, pixelX, 1e-9)
	assert.InDelta(t, -30.0, pixelY, 1e-9)
	assert.InDelta(t, 2415.0, shiftX, 1e-9)
	assert.InDelta(t, -2205.0, shiftY, 1e-9)
	assert.Equal(t, int64(-9999), fill)
}
