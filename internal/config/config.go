// Package config defines all configuration structures for computefp.  No I/O
// or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "console" | "json"
	Output string `mapstructure:"output"` // "stderr", "stdout" or a file path
}

// ToolkitConfig configures the external InChI program.
type ToolkitConfig struct {
	InChIBinary string        `mapstructure:"inchi_binary"`
	InChIArgs   []string      `mapstructure:"inchi_args"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// OutputConfig controls where converted records are written.
type OutputConfig struct {
	Suffix string `mapstructure:"suffix"`
}

// InputConfig controls how input files are read.
type InputConfig struct {
	// DisableGzip turns off transparent decompression of gzip inputs.
	DisableGzip bool `mapstructure:"disable_gzip"`
	// MaxLineBytes rejects longer lines as unreadable records; 0 means no limit.
	MaxLineBytes int `mapstructure:"max_line_bytes"`
}

// RedisConfig holds Redis connection parameters for the shared identifier cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	TTL          time.Duration `mapstructure:"ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// CacheConfig configures the identifier cache tiers.
type CacheConfig struct {
	// LRUSize is the in-process entry limit; 0 disables the tier.
	LRUSize int         `mapstructure:"lru_size"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// Textfile is written in Prometheus text format at the end of a run.
	Textfile string `mapstructure:"textfile"`
}

// KafkaConfig holds Apache Kafka producer parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	RequiredAcks string        `mapstructure:"required_acks"` // "none" | "leader" | "all"
	Compression  string        `mapstructure:"compression"`   // "none" | "gzip" | "snappy" | "lz4" | "zstd"
}

// MilvusConfig holds Milvus vector-store connection parameters.
type MilvusConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Addr       string        `mapstructure:"addr"`
	DBName     string        `mapstructure:"db_name"`
	Username   string        `mapstructure:"username"`
	Password   string        `mapstructure:"password"`
	Collection string        `mapstructure:"collection"`
	BatchSize  int           `mapstructure:"batch_size"`
	NList      int           `mapstructure:"nlist"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DSN       string `mapstructure:"dsn"`
	MaxConns  int32  `mapstructure:"max_conns"`
	BatchSize int    `mapstructure:"batch_size"`
	// SkipMigrations leaves schema management to the operator.
	SkipMigrations bool `mapstructure:"skip_migrations"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters.
type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// ExpireDays sets a lifecycle expiry on uploaded objects; 0 keeps them.
	ExpireDays int `mapstructure:"expire_days"`
}

// SinksConfig groups the optional record destinations.
type SinksConfig struct {
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Milvus   MilvusConfig   `mapstructure:"milvus"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
}

// WatchConfig configures the directory watcher.
type WatchConfig struct {
	Patterns []string      `mapstructure:"patterns"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Toolkit ToolkitConfig `mapstructure:"toolkit"`
	Output  OutputConfig  `mapstructure:"output"`
	Input   InputConfig   `mapstructure:"input"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Sinks   SinksConfig   `mapstructure:"sinks"`
	Watch   WatchConfig   `mapstructure:"watch"`

	// Source is the file the configuration was read from, empty when only
	// defaults and environment variables were used.
	Source string `mapstructure:"-"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Toolkit
	if c.Toolkit.InChIBinary == "" {
		return fmt.Errorf("config: toolkit.inchi_binary is required")
	}
	if c.Toolkit.Timeout <= 0 {
		return fmt.Errorf("config: toolkit.timeout must be positive, got %s", c.Toolkit.Timeout)
	}

	// Output / input
	if c.Output.Suffix == "" {
		return fmt.Errorf("config: output.suffix is required")
	}
	if c.Input.MaxLineBytes < 0 {
		return fmt.Errorf("config: input.max_line_bytes must be ≥ 0, got %d", c.Input.MaxLineBytes)
	}

	// Cache
	if c.Cache.LRUSize < 0 {
		return fmt.Errorf("config: cache.lru_size must be ≥ 0, got %d", c.Cache.LRUSize)
	}
	if c.Cache.Redis.Enabled {
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("config: cache.redis.addr is required when the redis cache is enabled")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("config: cache.redis.db must be ≥ 0, got %d", c.Cache.Redis.DB)
		}
	}

	// Sinks
	if k := c.Sinks.Kafka; k.Enabled {
		if len(k.Brokers) == 0 {
			return fmt.Errorf("config: sinks.kafka.brokers must contain at least one broker address")
		}
		if k.Topic == "" {
			return fmt.Errorf("config: sinks.kafka.topic is required")
		}
		switch k.RequiredAcks {
		case "none", "leader", "all":
		default:
			return fmt.Errorf("config: sinks.kafka.required_acks %q is invalid; expected none|leader|all", k.RequiredAcks)
		}
	}
	if m := c.Sinks.Milvus; m.Enabled {
		if m.Addr == "" {
			return fmt.Errorf("config: sinks.milvus.addr is required")
		}
		if m.Collection == "" {
			return fmt.Errorf("config: sinks.milvus.collection is required")
		}
	}
	if p := c.Sinks.Postgres; p.Enabled && p.DSN == "" {
		return fmt.Errorf("config: sinks.postgres.dsn is required")
	}
	if m := c.Sinks.MinIO; m.Enabled {
		if m.Endpoint == "" {
			return fmt.Errorf("config: sinks.minio.endpoint is required")
		}
		if m.Bucket == "" {
			return fmt.Errorf("config: sinks.minio.bucket is required")
		}
		if m.ExpireDays < 0 {
			return fmt.Errorf("config: sinks.minio.expire_days must be ≥ 0, got %d", m.ExpireDays)
		}
	}

	// Watch
	if len(c.Watch.Patterns) == 0 {
		return fmt.Errorf("config: watch.patterns must contain at least one pattern")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch.debounce must be ≥ 0, got %s", c.Watch.Debounce)
	}

	return nil
}

//Personal.AI order the ending
