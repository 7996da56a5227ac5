package docker

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/cassandra"

	"github.com/USGS-EROS/lcmap-data/pkg/consts"
)

type (
	// DockerOptions represents options for running Cassandra in Docker
	DockerOptions struct {
		// Version is the Cassandra version to run (default: consts.DefaultCassandraVersion)
		Version string

		// InitScripts are optional CQL files executed once the container is
		// ready
		InitScripts []string
	}

	// Container manages Cassandra Docker containers for ingest testing
	Container struct {
		options   DockerOptions
		container *cassandra.CassandraContainer
	}
)

// New creates a new Docker container with default options
//
// Example:
//
//	container := docker.New()
//
//	// Start Cassandra container
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
func New() *Container {
	return &Container{
		options: DockerOptions{},
	}
}

// NewWithOptions creates a new Docker container with custom options
//
// Example:
//
//	opts := docker.DockerOptions{
//		Version:     "4.1",
//		InitScripts: []string{"resources/schema.cql"},
//	}
//	container := docker.NewWithOptions(opts)
//
//	// Start Cassandra container
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
func NewWithOptions(opts DockerOptions) *Container {
	return &Container{
		options: opts,
	}
}

// Start starts a Cassandra Docker container with the configured version. The
// module's wait strategy blocks until the node reports itself bootstrapped,
// so a started container is ready for CQL.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	version := c.options.Version
	if version == "" {
		version = consts.DefaultCassandraVersion
	}

	var customizers []testcontainers.ContainerCustomizer
	if len(c.options.InitScripts) > 0 {
		customizers = append(customizers, cassandra.WithInitScripts(c.options.InitScripts...))
	}

	container, err := cassandra.Run(ctx,
		fmt.Sprintf("cassandra:%s", version),
		customizers...,
	)
	if err != nil {
		return errors.Wrap(err, "failed to start Cassandra container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the Cassandra Docker container
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil // Already stopped
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop Cassandra container")
	}

	return nil
}

// ConnectionHost returns a "host:port" entry for the running container,
// suitable for the --hosts option or LCMAP_HOSTS.
func (c *Container) ConnectionHost() (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	host, err := c.container.ConnectionHost(context.Background())
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection host")
	}

	return host, nil
}

// IsRunning returns true if the container is currently running
func (c *Container) IsRunning() bool {
	return c.container != nil
}
