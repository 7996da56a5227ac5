package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USGS-EROS/lcmap-data/pkg/cmd/testutil"
)

func TestEachStaged(t *testing.T) {
	t.Run("stages each operand in order", func(t *testing.T) {
		dir := t.TempDir()
		first := testutil.NewScene(t).Archive(dir)
		second := testutil.NewScene(t).WithID("LT50300282002184-SC20141231134544").Archive(dir)

		var staged []string
		err := eachStaged([]string{first, second}, func(stage string) error {
			staged = append(staged, stage)

			// The archive's contents are present while fn runs.
			entries, err := os.ReadDir(stage)
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			return nil
		})

		require.NoError(t, err)
		require.Len(t, staged, 2)
		assert.NotEqual(t, staged[0], staged[1], "each operand gets its own staging directory")

		// Staging directories are released once processing completes.
		testutil.RequireNoFile(t, staged[0])
		testutil.RequireNoFile(t, staged[1])
	})

	t.Run("first failure aborts the remainder", func(t *testing.T) {
		dir := t.TempDir()
		missing := filepath.Join(dir, "missing.tar.gz")
		second := testutil.NewScene(t).Archive(dir)

		calls := 0
		err := eachStaged([]string{missing, second}, func(string) error {
			calls++
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to process "+missing)
		assert.Zero(t, calls, "the second archive must never be staged")
	})

	t.Run("handler failures propagate", func(t *testing.T) {
		arch := testutil.NewScene(t).Archive(t.TempDir())

		boom := errors.New("kaboom")
		err := eachStaged([]string{arch}, func(string) error { return boom })

		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to process")
	})

	t.Run("zero operands is a no-op", func(t *testing.T) {
		err := eachStaged(nil, func(string) error {
			t.Error("fn must not be called")
			return nil
		})

		require.NoError(t, err)
	})
}
