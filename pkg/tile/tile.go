// Package tile turns ESPA scene rasters into fixed-size tiles stored in
// Cassandra.
//
// Every band of a scene is identified by its UBID (satellite, instrument and
// band name). Before a band can be ingested, a tile spec for its UBID must
// have been adopted: the spec pins the tile grid (tile and pixel dimensions
// plus the grid shift) and records where tile rows live and how their data
// payload is laid out. Ingest then slices the band raster into grid-aligned
// windows, skips windows containing nothing but fill, and writes the rest in
// unlogged batches.
package tile

import (
	"context"

	"github.com/gocql/gocql"
)

// DB is the database surface required by tile adoption and ingest. It is
// satisfied by cassandra.Client and narrow enough to fake in tests.
type DB interface {
	Exec(ctx context.Context, stmt string, args ...any) error
	Scan(ctx context.Context, stmt string, args ...any) gocql.Scanner
	NewBatch() *gocql.Batch
	ExecuteBatch(ctx context.Context, b *gocql.Batch) error
}

// DefaultTileTable is the table tile rows are written to when adoption does
// not specify one.
const DefaultTileTable = "tiles"

// DefaultShape is the tile shape (rows, columns) in pixels used when
// adoption does not specify one. 100x100 pixels at Landsat's 30m resolution
// gives 3km tiles.
var DefaultShape = [2]int{100, 100}
