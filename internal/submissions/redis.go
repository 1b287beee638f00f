package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formkit/pkg/form"
	pkgredis "github.com/dmitrymomot/formkit/pkg/redis"
)

// Redis stores snapshots as JSON in one capped list per example.
type Redis struct {
	client   redis.UniversalClient
	prefix   string
	capacity int
}

func NewRedis(client redis.UniversalClient, prefix string, capacity int) *Redis {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Redis{client: client, prefix: prefix, capacity: capacity}
}

// Ping reports whether the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return pkgredis.Healthcheck(r.client)(ctx)
}

func (r *Redis) key(example string) string {
	return r.prefix + "submissions:" + example
}

func (r *Redis) Save(ctx context.Context, example string, snap form.Snapshot) error {
	if example == "" {
		return ErrEmptyExample
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("submissions: encode snapshot: %w", err)
	}

	key := r.key(example)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(r.capacity-1))
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (r *Redis) Recent(ctx context.Context, example string, limit int) ([]form.Snapshot, error) {
	if example == "" {
		return nil, ErrEmptyExample
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	raw, err := r.client.LRange(ctx, r.key(example), 0, stop).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	out := make([]form.Snapshot, 0, len(raw))
	for _, item := range raw {
		var snap form.Snapshot
		if err := json.Unmarshal([]byte(item), &snap); err != nil {
			return nil, fmt.Errorf("submissions: decode snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, nil
}
