// Package redis connects to Redis with retries and exposes a health probe.
// The submission store uses it when REDIS_URL is set.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Errors are sentinel values joined with the underlying go-redis error, so
// errors.Is works for both.
package redis
