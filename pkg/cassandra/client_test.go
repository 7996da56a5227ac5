package cassandra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClient_NoHosts(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.Error(t, err)
	require.Nil(t, client)
	require.Contains(t, err.Error(), "no database hosts configured")
}

func TestNewClient_ConflictingPorts(t *testing.T) {
	client, err := NewClient(ClientOptions{Hosts: []string{"a:9042", "b:9043"}})
	require.Error(t, err)
	require.Nil(t, client)
	require.Contains(t, err.Error(), "conflicting ports")
}

func TestSplitHostPorts(t *testing.T) {
	tests := []struct {
		name     string
		entries  []string
		hosts    []string
		port     int
		hasError bool
	}{
		{
			name:    "bare hosts",
			entries: []string{"a", "b"},
			hosts:   []string{"a", "b"},
			port:    0,
		},
		{
			name:    "hosts with a shared port",
			entries: []string{"a:9042", "b:9042"},
			hosts:   []string{"a", "b"},
			port:    9042,
		},
		{
			name:    "mixed bare and ported hosts",
			entries: []string{"a", "b:9999"},
			hosts:   []string{"a", "b"},
			port:    9999,
		},
		{
			name:     "conflicting ports",
			entries:  []string{"a:9042", "b:9043"},
			hasError: true,
		},
		{
			name:     "non-numeric port",
			entries:  []string{"a:abc"},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hosts, port, err := splitHostPorts(tt.entries)
			if tt.hasError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.hosts, hosts)
			require.Equal(t, tt.port, port)
		})
	}
}
