package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"dario.cat/mergo"
	"github.com/pkg/errors"
)

// Environment variables read by FromEnv and used as flag defaults.
const (
	EnvHosts        = "LCMAP_HOSTS"
	EnvUser         = "LCMAP_USER"
	EnvPass         = "LCMAP_PASS"
	EnvSpecKeyspace = "LCMAP_SPEC_KEYSPACE"
	EnvSpecTable    = "LCMAP_SPEC_TABLE"
)

type (
	// Environ provides access to environment variables. It has the shape of
	// os.LookupEnv so the process environment can be used directly, while
	// tests substitute a fixed map via MapEnviron.
	Environ func(key string) (string, bool)

	// Credentials holds the username and password used to authenticate
	// against the Cassandra cluster. Both are optional; an empty username
	// disables authentication entirely.
	Credentials struct {
		Username string
		Password string
	}

	// DB is the derived database connection block. It is the single source
	// of truth for establishing the session, assembled from the environment
	// and then overridden by any connection flags that were given.
	DB struct {
		// Hosts is the list of Cassandra contact points
		Hosts []string

		// Credentials used when connecting to the cluster
		Credentials Credentials
	}

	// Options is the raw parsed command-line option block. Every global flag
	// lands here verbatim, including the connection values that also feed
	// the derived DB block.
	Options struct {
		// Hosts is the unsplit comma-separated host list as given on the
		// command line or environment
		Hosts string

		// Username for database authentication
		Username string

		// Password for database authentication
		Password string

		// SpecKeyspace is the keyspace holding tile specs
		SpecKeyspace string

		// SpecTable is the table holding tile specs
		SpecTable string

		// CQL is the path of the schema script executed by the exec command
		CQL string

		// BatchSize is the number of tile rows written per database batch
		BatchSize int

		// ChecksumIngest enables writing md5 checksums of ingested rasters
		ChecksumIngest bool

		// ChecksumOutfile is the file checksum lines are appended to
		ChecksumOutfile string
	}

	// Configuration is the fully merged runtime configuration. The DB block
	// drives the database session; the Opts block carries every raw option
	// for command handlers to consult.
	Configuration struct {
		DB   DB
		Opts Options
	}
)

// OSEnviron returns an Environ backed by the process environment.
func OSEnviron() Environ {
	return os.LookupEnv
}

// MapEnviron returns an Environ backed by the provided map. Primarily used
// by tests to exercise environment-driven configuration without touching
// the process environment.
func MapEnviron(vars map[string]string) Environ {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// FromEnv builds the base configuration layer from the environment. Absent
// variables leave their fields at zero values; the structure itself is
// always complete, so later layers merge into a known shape.
func FromEnv(env Environ) Configuration {
	var cfg Configuration

	if v, ok := env(EnvHosts); ok {
		cfg.DB.Hosts = SplitHosts(v)
	}
	if v, ok := env(EnvUser); ok {
		cfg.DB.Credentials.Username = v
	}
	if v, ok := env(EnvPass); ok {
		cfg.DB.Credentials.Password = v
	}
	if v, ok := env(EnvSpecKeyspace); ok {
		cfg.Opts.SpecKeyspace = v
	}
	if v, ok := env(EnvSpecTable); ok {
		cfg.Opts.SpecTable = v
	}

	return cfg
}

// Merge deep-merges the given configuration layers, with later layers taking
// precedence. Only non-zero fields override; an empty value in a later layer
// never erases an earlier one. Inputs are not mutated.
//
// Example:
//
//	cfg, err := config.Merge(base, derived, raw)
//	if err != nil {
//	    return err
//	}
func Merge(layers ...Configuration) (Configuration, error) {
	var out Configuration
	for _, layer := range layers {
		if err := mergo.Merge(&out, layer, mergo.WithOverride); err != nil {
			return Configuration{}, errors.Wrap(err, "failed to merge configuration")
		}
	}
	return out, nil
}

// Resolve assembles the runtime configuration from the environment and the
// parsed command-line options. Three layers are merged in order of
// increasing precedence:
//
//  1. the environment-derived base (FromEnv)
//  2. the DB connection block derived from the connection options
//  3. the raw option block itself
//
// The result carries both the effective DB connection settings and every raw
// option value.
func Resolve(env Environ, opts Options) (Configuration, error) {
	base := FromEnv(env)

	derived := Configuration{
		DB: DB{
			Hosts: SplitHosts(opts.Hosts),
			Credentials: Credentials{
				Username: opts.Username,
				Password: opts.Password,
			},
		},
	}

	return Merge(base, derived, Configuration{Opts: opts})
}

// SplitHosts splits a host list on commas and whitespace, dropping empty
// entries.
//
// Examples:
//   - "a,b,c" -> ["a", "b", "c"]
//   - "a, b,c" -> ["a", "b", "c"]
//   - "" -> []
func SplitHosts(hosts string) []string {
	return strings.FieldsFunc(hosts, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// Flatten renders the configuration as sorted dotted key/value pairs for
// display. Every field appears, including zero values, so the output is a
// faithful dump of the effective configuration.
func (c Configuration) Flatten() [][2]string {
	pairs := [][2]string{
		{"db.hosts", strings.Join(c.DB.Hosts, ",")},
		{"db.credentials.username", c.DB.Credentials.Username},
		{"db.credentials.password", c.DB.Credentials.Password},
		{"opts.hosts", c.Opts.Hosts},
		{"opts.username", c.Opts.Username},
		{"opts.password", c.Opts.Password},
		{"opts.spec-keyspace", c.Opts.SpecKeyspace},
		{"opts.spec-table", c.Opts.SpecTable},
		{"opts.cql", c.Opts.CQL},
		{"opts.batch-size", strconv.Itoa(c.Opts.BatchSize)},
		{"opts.checksum-ingest", strconv.FormatBool(c.Opts.ChecksumIngest)},
		{"opts.checksum-outfile", c.Opts.ChecksumOutfile},
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	return pairs
}
