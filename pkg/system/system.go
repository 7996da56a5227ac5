// Package system assembles the runtime shared by all commands: the resolved
// configuration, the Cassandra session and the ingest collaborators built on
// top of it. A System is constructed cold and connects only when started.
package system

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/USGS-EROS/lcmap-data/pkg/cassandra"
	"github.com/USGS-EROS/lcmap-data/pkg/config"
	"github.com/USGS-EROS/lcmap-data/pkg/tile"
)

type (
	// Ingester tiles a staged scene directory into the database.
	Ingester interface {
		Ingest(ctx context.Context, dir string) ([]tile.BandResult, error)
	}

	// Adopter derives and saves tile specs for a staged scene directory.
	Adopter interface {
		Adopt(ctx context.Context, dir string) ([]tile.TileSpec, error)
	}

	// System owns the database session and the collaborators bound to it.
	System struct {
		cfg      config.Configuration
		client   *cassandra.Client
		ingester Ingester
		adopter  Adopter
	}
)

// New creates a System from a resolved configuration without connecting to
// anything. Call Start before using the database-backed collaborators.
//
// Example usage:
//
//	sys := system.New(cfg)
//	defer sys.Stop()
//
//	if err := sys.Start(ctx); err != nil {
//	    return err
//	}
func New(cfg config.Configuration) *System {
	return &System{cfg: cfg}
}

// Start connects the session and builds the ingest collaborators. It fails
// when no hosts are configured or the cluster is unreachable, and can only
// run once per System.
func (s *System) Start(ctx context.Context) error {
	if s.client != nil {
		return errors.New("system already started")
	}

	client, err := cassandra.NewClient(cassandra.ClientOptions{
		Hosts:    s.cfg.DB.Hosts,
		Username: s.cfg.DB.Credentials.Username,
		Password: s.cfg.DB.Credentials.Password,
	})
	if err != nil {
		return err
	}

	s.client = client
	s.ingester = tile.NewIngestor(client, tile.IngestorOptions{
		SpecKeyspace: s.cfg.Opts.SpecKeyspace,
		SpecTable:    s.cfg.Opts.SpecTable,
		BatchSize:    s.cfg.Opts.BatchSize,
		Checksum:     s.cfg.Opts.ChecksumIngest,
		Outfile:      s.cfg.Opts.ChecksumOutfile,
	})
	s.adopter = tile.NewAdopter(client, tile.AdopterOptions{
		SpecKeyspace: s.cfg.Opts.SpecKeyspace,
		SpecTable:    s.cfg.Opts.SpecTable,
	})

	slog.Debug("System started", "hosts", s.cfg.DB.Hosts)
	return nil
}

// Stop releases the database session. Safe to call when Start failed or
// never ran, and safe to call more than once.
func (s *System) Stop() {
	if s.client == nil {
		return
	}

	s.client.Close()
	s.client = nil
	s.ingester = nil
	s.adopter = nil
	slog.Debug("System stopped")
}

// Config returns the resolved configuration the System was built from.
func (s *System) Config() config.Configuration {
	return s.cfg
}

// DB returns the database client, or nil before Start.
func (s *System) DB() *cassandra.Client {
	return s.client
}

// Ingester returns the scene ingester, or nil before Start.
func (s *System) Ingester() Ingester {
	return s.ingester
}

// Adopter returns the tile spec adopter, or nil before Start.
func (s *System) Adopter() Adopter {
	return s.adopter
}
