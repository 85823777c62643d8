package credstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	redisFieldAccess  = "access"
	redisFieldRefresh = "refresh"
)

// Redis persists the credential pair in a Redis hash. Intended for headless
// deployments where several processes share one credential pair.
type Redis struct {
	client redis.Cmdable
	key    string
}

// NewRedis creates a Redis-backed store using the given key.
func NewRedis(client redis.Cmdable, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) Save(ctx context.Context, pair Pair) error {
	if err := r.client.HSet(ctx, r.key,
		redisFieldAccess, pair.Access,
		redisFieldRefresh, pair.Refresh,
	).Err(); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context) (Pair, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Pair{}, errors.Join(ErrLoadFailed, err)
	}

	pair := Pair{
		Access:  fields[redisFieldAccess],
		Refresh: fields[redisFieldRefresh],
	}
	if pair.Empty() {
		return Pair{}, ErrNotFound
	}
	return pair, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return errors.Join(ErrClearFailed, err)
	}
	return nil
}
