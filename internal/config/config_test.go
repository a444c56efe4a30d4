package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/computefp/internal/config"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_Defaults(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"log level", func(c *config.Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
		{"inchi binary", func(c *config.Config) { c.Toolkit.InChIBinary = "" }, "toolkit.inchi_binary"},
		{"timeout", func(c *config.Config) { c.Toolkit.Timeout = -time.Second }, "toolkit.timeout"},
		{"suffix", func(c *config.Config) { c.Output.Suffix = "" }, "output.suffix"},
		{"max line", func(c *config.Config) { c.Input.MaxLineBytes = -1 }, "input.max_line_bytes"},
		{"lru", func(c *config.Config) { c.Cache.LRUSize = -1 }, "cache.lru_size"},
		{"redis addr", func(c *config.Config) {
			c.Cache.Redis.Enabled = true
			c.Cache.Redis.Addr = ""
		}, "cache.redis.addr"},
		{"kafka topic", func(c *config.Config) {
			c.Sinks.Kafka.Enabled = true
			c.Sinks.Kafka.Topic = ""
		}, "sinks.kafka.topic"},
		{"kafka acks", func(c *config.Config) {
			c.Sinks.Kafka.Enabled = true
			c.Sinks.Kafka.RequiredAcks = "some"
		}, "sinks.kafka.required_acks"},
		{"milvus collection", func(c *config.Config) {
			c.Sinks.Milvus.Enabled = true
			c.Sinks.Milvus.Collection = ""
		}, "sinks.milvus.collection"},
		{"postgres dsn", func(c *config.Config) { c.Sinks.Postgres.Enabled = true }, "sinks.postgres.dsn"},
		{"minio bucket", func(c *config.Config) {
			c.Sinks.MinIO.Enabled = true
			c.Sinks.MinIO.Bucket = ""
		}, "sinks.minio.bucket"},
		{"watch patterns", func(c *config.Config) { c.Watch.Patterns = nil }, "watch.patterns"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestConfig_Validate_DisabledSinksAreIgnored(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Sinks.Postgres.DSN = ""
	cfg.Sinks.Kafka.Topic = ""
	assert.NoError(t, cfg.Validate())
}

//Personal.AI order the ending
