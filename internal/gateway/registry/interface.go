package registry

import "context"

// Registry tracks which gateway instance holds each live connection,
// keyed by room. Entries expire unless refreshed, so a crashed gateway
// leaks no presence.
type Registry interface {
	Register(ctx context.Context, roomID, connID string) error
	Deregister(ctx context.Context, roomID, connID string) error
	Lookup(ctx context.Context, roomID, connID string) (string, error)
	StartHeartbeat(ctx context.Context) error
	StopHeartbeat()
	Close() error
}
