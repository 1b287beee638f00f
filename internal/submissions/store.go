package submissions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/redis"
)

var (
	ErrEmptyExample = errors.New("submissions: empty example name")
	ErrStoreFailed  = errors.New("submissions: store failed")
)

// DefaultCapacity bounds how many snapshots are kept per example.
const DefaultCapacity = 50

// Store keeps the snapshots of successful submissions, newest first.
type Store interface {
	Save(ctx context.Context, example string, snap form.Snapshot) error
	// Recent returns up to limit snapshots, newest first. A non-positive
	// limit returns everything retained.
	Recent(ctx context.Context, example string, limit int) ([]form.Snapshot, error)
}

// Pinger is implemented by stores backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Open returns a Redis-backed store when cfg has a connection URL, and an
// in-memory store otherwise. The returned close function releases the
// connection.
func Open(ctx context.Context, cfg redis.Config, capacity int, log *slog.Logger) (Store, func() error, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = slog.Default()
	}
	if !cfg.Enabled() {
		log.InfoContext(ctx, "using in-memory submission store", logger.Component("submissions"))
		return NewMemory(capacity), func() error { return nil }, nil
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("submissions: %w", err)
	}
	log.InfoContext(ctx, "using redis submission store", logger.Component("submissions"))
	return NewRedis(client, cfg.KeyPrefix, capacity), client.Close, nil
}
