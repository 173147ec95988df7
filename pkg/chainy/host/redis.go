package host

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type RedisOptions = redis.Options

// RedisStore keeps component records in redis under "<namespace>:component:<key>". Updates are
// optimistic: the key is WATCHed while fn runs and the write is committed with MULTI/EXEC, so a
// concurrent writer makes the update fail with ErrConflict instead of being overwritten.
type RedisStore struct {
	namespace string
	client    *redis.Client
	log       zerolog.Logger
}

func NewRedisStore(options RedisOptions, namespace string, log zerolog.Logger) *RedisStore {
	return &RedisStore{
		namespace: namespace,
		client:    redis.NewClient(&options),
		log:       log.With().Str("component", "redis_store").Logger(),
	}
}

func (r *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:component:%s", r.namespace, key)
}

// Ping checks that the server is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return eris.Wrap(r.client.Ping(ctx).Err(), "failed to reach redis")
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrapf(ErrRecordNotFound, "key %q", key)
	} else if err != nil {
		return nil, eris.Wrap(err, "failed to get record")
	}
	return value, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return eris.Wrap(r.client.Set(ctx, r.key(key), value, 0).Err(), "failed to put record")
}

func (r *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	k := r.key(key)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, k).Bytes()
		if eris.Is(err, redis.Nil) {
			return eris.Wrapf(ErrRecordNotFound, "key %q", key)
		} else if err != nil {
			return eris.Wrap(err, "failed to get record")
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, k)
	if eris.Is(err, redis.TxFailedErr) {
		r.log.Debug().Str("key", key).Msg("update lost race")
		return eris.Wrapf(ErrConflict, "key %q", key)
	}
	return err
}

func (r *RedisStore) Close() error {
	r.log.Info().Msg("Closing storage connection.")
	if err := r.client.Close(); err != nil {
		return eris.Wrap(err, "failed to close redis client")
	}
	return nil
}
