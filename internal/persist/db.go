package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/antitower/server/internal/config"
)

const (
	applicationName = "antitower"
	pingTimeout     = 5 * time.Second
)

// DB is the match archive: a pgx pool shared by the ledger and match repos.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// NewDB opens the archive pool and makes sure the server answers before the
// first tick, so a bad DSN fails at startup instead of at the first flush.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open archive pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("archive %s/%s unreachable: %w",
			poolCfg.ConnConfig.Host, poolCfg.ConnConfig.Database, err)
	}

	log.Info("match archive connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("pool_size", poolCfg.MaxConns))
	return &DB{Pool: pool, log: log}, nil
}

// poolConfig maps the [database] section onto pgx settings. A zero pool
// size keeps the pgx default; min_idle never exceeds the pool size.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("database dsn: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolCfg.MaxConns = int32(cfg.PoolSize)
	}
	poolCfg.MinConns = min(int32(cfg.MinIdle), poolCfg.MaxConns)
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	return poolCfg, nil
}

func (db *DB) Close() {
	db.log.Debug("match archive closed")
	db.Pool.Close()
}
