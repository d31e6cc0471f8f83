package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/inventory-console/internal/infra"
)

// Redis хранит токен под ключом "<namespace>:auth_token" без TTL.
type Redis struct {
	rdb *redis.Client
	key string
}

var _ Store = (*Redis)(nil)

func NewRedis(rdb *redis.Client, namespace string) *Redis {
	return &Redis{
		rdb: rdb,
		key: infra.NamespacedKey(namespace, infra.TokenKey),
	}
}

func (r *Redis) Get(ctx context.Context) (string, bool, error) {
	token, err := r.rdb.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis: failed to read token: %w", err)
	}
	return token, token != "", nil
}

func (r *Redis) Set(ctx context.Context, token string) error {
	// Срок жизни не ставим: протухание обнаруживается только по 401
	if err := r.rdb.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis: failed to store token: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis: failed to clear token: %w", err)
	}
	return nil
}

// Ping проверяет доступность Redis при старте
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
