package cassandra

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadScript reads a CQL script from the given path.
func LoadScript(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read CQL file: %s", path)
	}
	return string(b), nil
}

// SplitStatements splits a CQL script into individual statements on
// semicolons. Each statement is trimmed of surrounding whitespace and empty
// fragments are dropped, so trailing semicolons and blank lines between
// statements are harmless.
//
// The split is purely textual. Statement payloads are opaque to this tool;
// a semicolon inside a string literal would split incorrectly, which is
// acceptable for the DDL scripts this tool executes.
//
// Example:
//
//	stmts := cassandra.SplitStatements("CREATE TABLE a (x int);\n\nCREATE TABLE b (y int);")
//	// ["CREATE TABLE a (x int)", "CREATE TABLE b (y int)"]
func SplitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))

	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}

// ExecuteScript splits a CQL script and executes its statements one at a
// time in order. Execution stops at the first failing statement; there is no
// tracking of partial progress and no rollback of statements that already
// ran. Returns the number of statements that executed successfully.
func ExecuteScript(ctx context.Context, db Execer, script string) (int, error) {
	stmts := SplitStatements(script)

	for i, stmt := range stmts {
		slog.Debug("Executing statement", "index", i+1, "total", len(stmts))

		if err := db.Exec(ctx, stmt); err != nil {
			return i, errors.Wrapf(err, "failed to execute statement %d: %s", i+1, stmt)
		}
	}

	return len(stmts), nil
}
