package cmd

import (
	"context"
	"fmt"

	"github.com/USGS-EROS/lcmap-data/pkg/system"
)

// specCmd creates the spec command, which adopts a tile spec for every image
// band found in the given ESPA scene archives. A tile spec pins the tile
// grid and payload layout for a band's UBID and must be adopted before any
// scene carrying that band can be ingested.
//
// Example usage:
//
//	lcmap --hosts localhost:9042 spec scene.tar.gz
//	lcmap --hosts localhost:9042 --spec-keyspace lcmap spec scene.tar.gz
func specCmd() *Handler {
	return &Handler{
		Name:  "spec",
		Usage: "Adopt tile specs from ESPA scene archives",
		Run: func(ctx context.Context, sys *system.System, operands []string) error {
			return eachStaged(operands, func(dir string) error {
				specs, err := sys.Adopter().Adopt(ctx, dir)
				if err != nil {
					return err
				}

				for _, spec := range specs {
					fmt.Printf("✅ adopted %s\n", spec.UBID)
				}

				return nil
			})
		},
	}
}
