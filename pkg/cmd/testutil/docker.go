package testutil

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/USGS-EROS/lcmap-data/pkg/docker"
)

// SkipIfNoDocker skips the test if Docker is not available
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}

	// Check if Docker binary exists
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.CommandContext(t.Context(), "docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

// StartCassandra starts a disposable single-node Cassandra container and
// returns its host:port contact point. The container is stopped when the
// test finishes.
func StartCassandra(t *testing.T) string {
	t.Helper()

	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container := docker.New()
	require.NoError(t, container.Start(ctx), "Failed to start Cassandra container")

	t.Cleanup(func() {
		_ = container.Stop(context.Background())
	})

	host, err := container.ConnectionHost()
	require.NoError(t, err, "Failed to get container contact point")

	return host
}
