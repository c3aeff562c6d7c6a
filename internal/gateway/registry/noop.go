package registry

import (
	"context"
	"errors"
)

// NoopRegistry is used when no redis address is configured. Presence
// tracking silently does nothing; lookups always miss.
type NoopRegistry struct{}

func NewNoopRegistry() *NoopRegistry { return &NoopRegistry{} }

func (n *NoopRegistry) Register(ctx context.Context, roomID, connID string) error   { return nil }
func (n *NoopRegistry) Deregister(ctx context.Context, roomID, connID string) error { return nil }

func (n *NoopRegistry) Lookup(ctx context.Context, roomID, connID string) (string, error) {
	return "", errors.New("presence tracking disabled")
}

func (n *NoopRegistry) StartHeartbeat(ctx context.Context) error { return nil }
func (n *NoopRegistry) StopHeartbeat()                           {}
func (n *NoopRegistry) Close() error                             { return nil }
