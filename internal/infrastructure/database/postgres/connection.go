// Package postgres stores converted records in PostgreSQL.  It owns the
// pgx connection pool, the embedded schema migrations and the batched
// record sink.
package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

const (
	defaultMaxConns       int32 = 4
	defaultConnectTimeout       = 5 * time.Second
)

// PostgresConfig holds the pool configuration.
type PostgresConfig struct {
	// DSN is a postgres:// URL.  Key/value connection strings are accepted by
	// the pool but not by the migrator.
	DSN             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// Connection manages the pgx pool.
type Connection struct {
	pool   *pgxpool.Pool
	cfg    PostgresConfig
	logger logging.Logger
	once   sync.Once
}

// NewConnection parses cfg.DSN, opens the pool and verifies it with a ping.
func NewConnection(ctx context.Context, cfg PostgresConfig, log logging.Logger) (*Connection, error) {
	if log == nil {
		log = logging.Default()
	}
	if cfg.DSN == "" {
		return nil, errors.InvalidParam("postgres DSN is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "invalid postgres DSN")
	}
	configurePool(poolCfg, cfg)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create connection pool")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrCodeSinkNotConnected, "database connection failed").
			WithDetail(poolCfg.ConnConfig.Host)
	}

	log.Info("Connected to PostgreSQL database",
		logging.String("host", poolCfg.ConnConfig.Host),
		logging.Int("port", int(poolCfg.ConnConfig.Port)),
		logging.String("database", poolCfg.ConnConfig.Database),
		logging.Int("max_conns", int(poolCfg.MaxConns)),
	)

	return &Connection{pool: pool, cfg: cfg, logger: log}, nil
}

// configurePool copies the non-zero settings of cfg onto poolCfg.  Settings
// given as DSN parameters are kept when cfg leaves them at zero.
func configurePool(poolCfg *pgxpool.Config, cfg PostgresConfig) {
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	} else if poolCfg.MaxConns == 0 {
		poolCfg.MaxConns = defaultMaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolCfg.MaxConns {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}
}

// Pool returns the underlying pool.
func (c *Connection) Pool() *pgxpool.Pool {
	return c.pool
}

// Close closes the pool.  Safe to call more than once.
func (c *Connection) Close() error {
	c.once.Do(func() {
		c.pool.Close()
		c.logger.Info("Closed PostgreSQL connection pool")
	})
	return nil
}

//Personal.AI order the ending
