package cassandra_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/USGS-EROS/lcmap-data/pkg/cassandra"
	"github.com/USGS-EROS/lcmap-data/pkg/consts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type mockExecer struct {
	execFunc func(context.Context, string, ...any) error
	execs    []string
}

func (m *mockExecer) Exec(ctx context.Context, stmt string, args ...any) error {
	m.execs = append(m.execs, stmt)
	if m.execFunc != nil {
		return m.execFunc(ctx, stmt, args...)
	}
	return nil
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected []string
	}{
		{
			name:     "two statements with noise between",
			script:   "CREATE TABLE a;  ; CREATE TABLE b;",
			expected: []string{"CREATE TABLE a", "CREATE TABLE b"},
		},
		{
			name:     "multiline statements",
			script:   "CREATE TABLE a (\n  x int\n);\n\nCREATE TABLE b (y int);\n",
			expected: []string{"CREATE TABLE a (\n  x int\n)", "CREATE TABLE b (y int)"},
		},
		{
			name:     "no trailing semicolon",
			script:   "CREATE TABLE a; CREATE TABLE b",
			expected: []string{"CREATE TABLE a", "CREATE TABLE b"},
		},
		{
			name:     "only separators",
			script:   " ;\n;\t; ",
			expected: []string{},
		},
		{
			name:     "empty script",
			script:   "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, SplitStatements(tt.script))
		})
	}
}

func TestLoadScript(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.cql")
		require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE a;"), consts.ModeFile))

		script, err := LoadScript(path)
		require.NoError(t, err)
		require.Equal(t, "CREATE TABLE a;", script)
	})

	t.Run("error", func(t *testing.T) {
		script, err := LoadScript(filepath.Join(t.TempDir(), "missing.cql"))
		require.Error(t, err)
		require.Empty(t, script)
		require.Contains(t, err.Error(), "failed to read CQL file")
	})
}

func TestExecuteScript(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := &mockExecer{}

		n, err := ExecuteScript(context.Background(), db, "CREATE TABLE a; CREATE TABLE b;")
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, []string{"CREATE TABLE a", "CREATE TABLE b"}, db.execs)
	})

	t.Run("stops at the first failing statement", func(t *testing.T) {
		db := &mockExecer{
			execFunc: func(_ context.Context, stmt string, _ ...any) error {
				if stmt == "CREATE TABLE b" {
					return errors.New("boom")
				}
				return nil
			},
		}

		n, err := ExecuteScript(context.Background(), db, "CREATE TABLE a; CREATE TABLE b; CREATE TABLE c;")
		require.Error(t, err)
		require.Equal(t, 1, n)
		require.Contains(t, err.Error(), "failed to execute statement 2")
		require.Contains(t, err.Error(), "CREATE TABLE b")

		// The third statement was never attempted.
		require.Equal(t, []string{"CREATE TABLE a", "CREATE TABLE b"}, db.execs)
	})

	t.Run("empty script executes nothing", func(t *testing.T) {
		db := &mockExecer{}

		n, err := ExecuteScript(context.Background(), db, " ;\n; ")
		require.NoError(t, err)
		require.Zero(t, n)
		require.Empty(t, db.execs)
	})
}
