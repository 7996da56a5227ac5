package cassandra

import (
	"context"
	"net"
	"strconv"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
)

type (
	// Client represents a Cassandra database session
	Client struct {
		session *gocql.Session
	}

	// ClientOptions contains the connection settings for creating a Client.
	ClientOptions struct {
		// Hosts is the list of cluster contact points. Entries may carry an
		// optional ":port" suffix; when present, the port applies to the
		// whole cluster (gocql uses a single port for all contact points).
		Hosts []string

		// Username for authentication. Leaving it empty disables
		// authentication.
		Username string

		// Password for authentication
		Password string
	}

	// Execer is the narrow statement-execution surface used by code that
	// only needs to run CQL statements.
	Execer interface {
		Exec(ctx context.Context, stmt string, args ...any) error
	}
)

// NewClient creates a new Cassandra session from the given options.
// Session creation contacts the cluster, so a returned client is known to be
// reachable. No keyspace is bound; statements are expected to use fully
// qualified table names.
//
// Example:
//
//	client, err := cassandra.NewClient(cassandra.ClientOptions{
//	    Hosts:    []string{"cassandra-1", "cassandra-2"},
//	    Username: "lcmap",
//	    Password: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
func NewClient(opts ClientOptions) (*Client, error) {
	if len(opts.Hosts) == 0 {
		return nil, errors.New("no database hosts configured")
	}

	hosts, port, err := splitHostPorts(opts.Hosts)
	if err != nil {
		return nil, err
	}

	cluster := gocql.NewCluster(hosts...)
	if port != 0 {
		cluster.Port = port
	}
	if opts.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: opts.Username,
			Password: opts.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to cassandra")
	}

	return &Client{session: session}, nil
}

// Close closes the underlying session. Safe to call on a client whose
// session is already closed.
func (c *Client) Close() {
	c.session.Close()
}

// Exec runs a single CQL statement.
func (c *Client) Exec(ctx context.Context, stmt string, args ...any) error {
	return c.session.Query(stmt, args...).WithContext(ctx).Exec()
}

// Scan runs a CQL query and returns a scanner over its rows.
func (c *Client) Scan(ctx context.Context, stmt string, args ...any) gocql.Scanner {
	return c.session.Query(stmt, args...).WithContext(ctx).Iter().Scanner()
}

// NewBatch returns an empty unlogged batch. Unlogged batches skip the batch
// log since tile rows are idempotent writes partitioned by key.
func (c *Client) NewBatch() *gocql.Batch {
	return c.session.NewBatch(gocql.UnloggedBatch)
}

// ExecuteBatch runs a previously assembled batch.
func (c *Client) ExecuteBatch(ctx context.Context, b *gocql.Batch) error {
	return c.session.ExecuteBatch(b.WithContext(ctx))
}

// splitHostPorts separates optional port suffixes from host entries. Mixed
// ports are rejected since gocql applies one port cluster-wide.
func splitHostPorts(entries []string) ([]string, int, error) {
	hosts := make([]string, 0, len(entries))
	port := 0

	for _, entry := range entries {
		host, p, err := net.SplitHostPort(entry)
		if err != nil {
			hosts = append(hosts, entry)
			continue
		}

		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "invalid port in host %q", entry)
		}
		if port != 0 && port != n {
			return nil, 0, errors.Errorf("conflicting ports in host list: %d and %d", port, n)
		}

		hosts = append(hosts, host)
		port = n
	}

	return hosts, port, nil
}
