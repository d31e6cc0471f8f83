package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avast/retry-go/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/infra"
	"github.com/xela07ax/inventory-console/internal/repository/postgres"
)

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

// Backends — уже открытые подключения, которые может использовать хранилище.
type Backends struct {
	Redis *redis.Client
	DB    *sql.DB
}

// Open собирает хранилище токена по конфигу.
// Если файловому бэкенду негде жить, возвращается Noop: консоль работает, но без персистентности.
func Open(ctx context.Context, cfg infra.StorageConfig, deps Backends, logger *zap.Logger) (Store, error) {
	logger = logger.Named("tokenstore")

	switch cfg.Backend {
	case BackendFile, "":
		path := cfg.FilePath
		if path == "" {
			p, err := DefaultFilePath()
			if err != nil {
				logger.Warn("no location for token file, session will not persist", zap.Error(err))
				return Noop{}, nil
			}
			path = p
		}
		logger.Info("token store ready", zap.String("backend", BackendFile), zap.String("path", path),
			zap.Bool("sealed", cfg.EncryptionSecret != ""))
		return NewFile(path, cfg.EncryptionSecret), nil

	case BackendRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("tokenstore: redis backend selected but no redis client configured")
		}
		store := NewRedis(deps.Redis, cfg.Namespace)
		if err := Probe(ctx, logger, BackendRedis, store.Ping); err != nil {
			return nil, err
		}
		return store, nil

	case BackendPostgres:
		if deps.DB == nil {
			return nil, fmt.Errorf("tokenstore: postgres backend selected but no database configured")
		}
		repo := postgres.NewTokenRepo(deps.DB)
		if err := Probe(ctx, logger, BackendPostgres, repo.Ping); err != nil {
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("tokenstore: %w", err)
		}
		return repo, nil

	case BackendMemory:
		return NewMemory(), nil

	case BackendNone:
		return Noop{}, nil

	default:
		return nil, fmt.Errorf("tokenstore: unknown backend %q", cfg.Backend)
	}
}

// Probe дожидается доступности бэкенда при старте (экспоненциальный бэкофф, 5 попыток).
// К вызовам API это не относится: они никогда не повторяются автоматически.
func Probe(ctx context.Context, logger *zap.Logger, name string, ping func(context.Context) error) error {
	attempt := 0
	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(5),
		retry.DelayType(retry.BackOffDelay),
	)

	err := r.Do(func() error {
		attempt++
		if err := ping(ctx); err != nil {
			logger.Warn("backend not reachable yet",
				zap.String("backend", name),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s unreachable: %w", name, err)
	}

	logger.Info("backend reachable", zap.String("backend", name))
	return nil
}
