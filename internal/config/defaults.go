package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
	DefaultLogOutput = "stderr"

	DefaultInChIBinary  = "inchi-1"
	DefaultInChITimeout = 30 * time.Second

	DefaultOutputSuffix = ".fp"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisTTL       = 7 * 24 * time.Hour
	DefaultRedisKeyPrefix = "computefp:inchi:"

	DefaultKafkaBroker       = "localhost:9092"
	DefaultKafkaTopic        = "computefp.records"
	DefaultKafkaBatchSize    = 100
	DefaultKafkaBatchTimeout = time.Second

	DefaultMilvusAddr       = "localhost:19530"
	DefaultMilvusCollection = "computefp_fingerprints"
	DefaultMilvusBatchSize  = 512
	DefaultMilvusNList      = 128
	DefaultMilvusTimeout    = 10 * time.Second

	DefaultPostgresMaxConns  = 4
	DefaultPostgresBatchSize = 500

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "computefp"

	DefaultWatchDebounce = 500 * time.Millisecond
)

// DefaultInChIArgs makes inchi-1 read one structure from stdin and print the
// InChI and its key without auxiliary information.
var DefaultInChIArgs = []string{"-STDIO", "-Key", "-AuxNone", "-NoLabels"}

// DefaultWatchPatterns are the file name globs picked up by watch mode.
var DefaultWatchPatterns = []string{"*.smi", "*.smiles", "*.smi.gz"}

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// that have already been set are left unchanged so that explicit
// configuration always wins.  Sinks stay disabled unless enabled explicitly.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	// ── Toolkit ───────────────────────────────────────────────────────────────
	if cfg.Toolkit.InChIBinary == "" {
		cfg.Toolkit.InChIBinary = DefaultInChIBinary
	}
	if len(cfg.Toolkit.InChIArgs) == 0 {
		cfg.Toolkit.InChIArgs = append([]string(nil), DefaultInChIArgs...)
	}
	if cfg.Toolkit.Timeout == 0 {
		cfg.Toolkit.Timeout = DefaultInChITimeout
	}

	// ── Output ────────────────────────────────────────────────────────────────
	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = DefaultOutputSuffix
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	// LRUSize 0 is a valid explicit value (tier disabled) and is also the default.
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Cache.Redis.TTL == 0 {
		cfg.Cache.Redis.TTL = DefaultRedisTTL
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Sinks.Kafka.Brokers) == 0 {
		cfg.Sinks.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Sinks.Kafka.Topic == "" {
		cfg.Sinks.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Sinks.Kafka.BatchSize == 0 {
		cfg.Sinks.Kafka.BatchSize = DefaultKafkaBatchSize
	}
	if cfg.Sinks.Kafka.BatchTimeout == 0 {
		cfg.Sinks.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
	if cfg.Sinks.Kafka.RequiredAcks == "" {
		cfg.Sinks.Kafka.RequiredAcks = "all"
	}
	if cfg.Sinks.Kafka.Compression == "" {
		cfg.Sinks.Kafka.Compression = "none"
	}

	// ── Milvus ────────────────────────────────────────────────────────────────
	if cfg.Sinks.Milvus.Addr == "" {
		cfg.Sinks.Milvus.Addr = DefaultMilvusAddr
	}
	if cfg.Sinks.Milvus.Collection == "" {
		cfg.Sinks.Milvus.Collection = DefaultMilvusCollection
	}
	if cfg.Sinks.Milvus.BatchSize == 0 {
		cfg.Sinks.Milvus.BatchSize = DefaultMilvusBatchSize
	}
	if cfg.Sinks.Milvus.NList == 0 {
		cfg.Sinks.Milvus.NList = DefaultMilvusNList
	}
	if cfg.Sinks.Milvus.Timeout == 0 {
		cfg.Sinks.Milvus.Timeout = DefaultMilvusTimeout
	}

	// ── Postgres ──────────────────────────────────────────────────────────────
	if cfg.Sinks.Postgres.MaxConns == 0 {
		cfg.Sinks.Postgres.MaxConns = DefaultPostgresMaxConns
	}
	if cfg.Sinks.Postgres.BatchSize == 0 {
		cfg.Sinks.Postgres.BatchSize = DefaultPostgresBatchSize
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.Sinks.MinIO.Endpoint == "" {
		cfg.Sinks.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.Sinks.MinIO.Bucket == "" {
		cfg.Sinks.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Watch ─────────────────────────────────────────────────────────────────
	if len(cfg.Watch.Patterns) == 0 {
		cfg.Watch.Patterns = append([]string(nil), DefaultWatchPatterns...)
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}

//Personal.AI order the ending
