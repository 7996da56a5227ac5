package cmd

import (
	"context"
	"fmt"

	"github.com/USGS-EROS/lcmap-data/pkg/cassandra"
	"github.com/USGS-EROS/lcmap-data/pkg/system"
)

// execCmd creates the exec command, which runs the configured CQL schema
// script against the cluster one statement at a time. Statements run in
// file order and execution stops at the first failure.
//
// Example usage:
//
//	lcmap --hosts localhost:9042 exec
//	lcmap --hosts localhost:9042 --cql resources/schema.cql exec
func execCmd() *Handler {
	return &Handler{
		Name:  "exec",
		Usage: "Run the configured CQL schema script",
		Run: func(ctx context.Context, sys *system.System, _ []string) error {
			return runExec(ctx, sys)
		},
	}
}

func runExec(ctx context.Context, sys *system.System) error {
	path := sys.Config().Opts.CQL

	script, err := cassandra.LoadScript(path)
	if err != nil {
		return err
	}

	fmt.Printf("Executing %s...\n", path)

	n, err := cassandra.ExecuteScript(ctx, sys.DB(), script)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Executed %d statements\n", n)

	return nil
}
