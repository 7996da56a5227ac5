// Package docker provides Docker integration for running temporary Cassandra
// instances for schema and ingest testing.
//
// The package wraps the testcontainers Cassandra module with lifecycle
// management matching the rest of the codebase: containers are started
// against a pinned Cassandra version, optionally seeded with CQL init
// scripts, and report a host:port entry usable anywhere a configured host is
// accepted.
//
// # Usage Example
//
//	import (
//		"context"
//		"github.com/USGS-EROS/lcmap-data/pkg/cassandra"
//		"github.com/USGS-EROS/lcmap-data/pkg/docker"
//	)
//
//	container := docker.New()
//
//	ctx := context.Background()
//	defer container.Stop(ctx)
//
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	// Connect using the Cassandra client
//	host, _ := container.ConnectionHost()
//	client, _ := cassandra.NewClient(cassandra.ClientOptions{
//		Hosts: []string{host},
//	})
//	defer client.Close()
package docker
