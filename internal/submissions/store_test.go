package submissions_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/submissions"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func snapshot(name string) form.Snapshot {
	return form.Snapshot{
		ID:         uuid.New(),
		Form:       "login",
		CapturedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Entries: []form.Entry{
			{Field: "email", Value: validator.String(name + "@example.com")},
			{Field: "remember", Value: validator.Bool(true)},
		},
	}
}

func exerciseStore(t *testing.T, store submissions.Store, example string) {
	t.Helper()
	ctx := context.Background()

	for i := range 4 {
		require.NoError(t, store.Save(ctx, example, snapshot(fmt.Sprintf("user%d", i))))
	}

	recent, err := store.Recent(ctx, example, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	email, _ := recent[0].Get("email")
	assert.Equal(t, "user3@example.com", email.Text(), "newest first")

	all, err := store.Recent(ctx, example, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "capacity bounds retention")

	other, err := store.Recent(ctx, example+"-other", 10)
	require.NoError(t, err)
	assert.Empty(t, other)

	assert.ErrorIs(t, store.Save(ctx, "", snapshot("x")), submissions.ErrEmptyExample)
	_, err = store.Recent(ctx, "", 1)
	assert.ErrorIs(t, err, submissions.ErrEmptyExample)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exerciseStore(t, submissions.NewMemory(3), "login")
}

func TestMemoryHonoursContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := submissions.NewMemory(3)
	assert.ErrorIs(t, store.Save(ctx, "login", snapshot("x")), context.Canceled)
}

func TestOpenWithoutRedis(t *testing.T) {
	t.Parallel()
	store, closeFn, err := submissions.Open(context.Background(), redis.Config{}, 0, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, closeFn())
	_, ok := store.(*submissions.Memory)
	assert.True(t, ok)
	_, ok = store.(submissions.Pinger)
	assert.False(t, ok)
}

func TestRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "formkit-test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
	})

	store := submissions.NewRedis(client, prefix, 3)
	require.NoError(t, store.Ping(context.Background()))
	exerciseStore(t, store, "login")

	recent, err := store.Recent(context.Background(), "login", 1)
	require.NoError(t, err)
	remember, ok := recent[0].Get("remember")
	require.True(t, ok)
	assert.True(t, remember.Bool())
	assert.Equal(t, "login", recent[0].Form)
}
