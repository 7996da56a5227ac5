package cmd

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/USGS-EROS/lcmap-data/pkg/archive"
)

// eachStaged extracts each archive operand into a fresh staging directory
// and applies fn to it. Operands are processed strictly sequentially: each
// staging directory is removed before the next operand is touched, and the
// first failure aborts the remainder. Zero operands is a no-op.
func eachStaged(operands []string, fn func(dir string) error) error {
	for _, operand := range operands {
		fmt.Printf("Processing %s...\n", operand)

		if err := archive.WithStaging(operand, fn); err != nil {
			return errors.Wrapf(err, "failed to process %s", operand)
		}
	}

	return nil
}
