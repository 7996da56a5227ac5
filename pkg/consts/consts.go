package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)
)

const (
	// DefaultCQLFile is the schema script executed by the exec command when
	// no --cql flag is given
	DefaultCQLFile = "resources/schema.cql"

	// DefaultBatchSize is the number of tile rows written per database batch
	DefaultBatchSize = 50

	// ChecksumFileName is the base name of the ingest checksum log. The full
	// default path is rooted in the system temp directory.
	ChecksumFileName = "ingest-hashes.txt"

	// DefaultCassandraVersion is the Cassandra version used for local
	// development and integration containers
	DefaultCassandraVersion = "4.1"
)
