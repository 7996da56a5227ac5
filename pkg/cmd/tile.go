package cmd

import (
	"context"
	"fmt"

	"github.com/USGS-EROS/lcmap-data/pkg/system"
)

// tileCmd creates the tile command, which ingests the image bands of one or
// more ESPA scene archives into the tile store. Each archive is staged to a
// temporary directory, every image band is sliced into grid-aligned tiles
// using its adopted tile spec, and the staging directory is removed before
// the next archive begins.
//
// Example usage:
//
//	lcmap --hosts localhost:9042 tile scene1.tar.gz scene2.tar.gz
//	lcmap --hosts localhost:9042 --checksum-ingest tile scene.tar.gz
func tileCmd() *Handler {
	return &Handler{
		Name:  "tile",
		Usage: "Ingest tiles from ESPA scene archives",
		Run: func(ctx context.Context, sys *system.System, operands []string) error {
			return eachStaged(operands, func(dir string) error {
				results, err := sys.Ingester().Ingest(ctx, dir)
				if err != nil {
					return err
				}

				for _, res := range results {
					fmt.Printf("✅ %s: %d tiles, %d windows skipped\n", res.UBID, res.Tiles, res.Skipped)
				}

				return nil
			})
		},
	}
}
