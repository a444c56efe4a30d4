package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/turtacn/computefp/internal/application/convert"
	"github.com/turtacn/computefp/internal/config"
	"github.com/turtacn/computefp/internal/domain/molecule"
	"github.com/turtacn/computefp/internal/infrastructure/cache"
	"github.com/turtacn/computefp/internal/infrastructure/chemistry/inchi"
	"github.com/turtacn/computefp/internal/infrastructure/database/postgres"
	"github.com/turtacn/computefp/internal/infrastructure/database/redis"
	"github.com/turtacn/computefp/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	prominfra "github.com/turtacn/computefp/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/computefp/internal/infrastructure/search/milvus"
	"github.com/turtacn/computefp/internal/infrastructure/storage/minio"
)

// newToolkit builds the identifier generator factory.  Tests replace it.
var newToolkit = func(cfg config.ToolkitConfig, log logging.Logger) molecule.GeneratorFactory {
	return inchi.NewFactory(inchi.Config{
		Binary:  cfg.InChIBinary,
		Args:    cfg.InChIArgs,
		Timeout: cfg.Timeout,
	}, log.Named("inchi"))
}

// session owns a Converter together with the connections built for it.
type session struct {
	converter *convert.Converter
	metrics   *prominfra.ConversionMetrics
	closers   []func() error
	cfg       *config.Config
	logger    logging.Logger
	stderr    io.Writer
}

// ─────────────────────────────────────────────────────────────────────────────
// Wiring
// ─────────────────────────────────────────────────────────────────────────────

// newSession wires a Converter from cfg.  With withSinks false only the
// local pipeline is built.  A destination that cannot be reached is reported
// and left out; the .fp output never depends on it.
func newSession(ctx context.Context, cliCtx *CLIContext, withSinks bool, stdout, stderr io.Writer) (*session, error) {
	cfg, log := cliCtx.Config, cliCtx.Logger
	s := &session{cfg: cfg, logger: log, stderr: stderr}

	collector, err := prominfra.NewMetricsCollector(prominfra.CollectorConfig{Namespace: "computefp"}, log)
	if err != nil {
		return nil, err
	}
	s.metrics = prominfra.NewConversionMetrics(collector)

	fingerprinter := molecule.NewKeyFingerprinter(molecule.DefaultSchema())
	generators, err := s.identifierCache(ctx, newToolkit(cfg.Toolkit, log))
	if err != nil {
		s.close()
		return nil, err
	}

	var (
		sinks     []convert.RecordSink
		exporters []convert.FileExporter
	)
	if withSinks {
		sinks = s.recordSinks(ctx, fingerprinter.Schema().Size())
		exporters = s.fileExporters()
	}

	conv, err := convert.NewConverter(convert.Dependencies{
		Parser:        molecule.NewSMILESParser(),
		Fingerprinter: fingerprinter,
		Generators:    generators,
		Sinks:         sinks,
		Exporters:     exporters,
		Metrics:       s.metrics,
		Logger:        log,
		Stdout:        stdout,
		Stderr:        stderr,
	}, convert.Options{
		Suffix:       cfg.Output.Suffix,
		DisableGzip:  cfg.Input.DisableGzip,
		MaxLineBytes: cfg.Input.MaxLineBytes,
	})
	if err != nil {
		for _, sk := range sinks {
			_ = sk.Close()
		}
		for _, e := range exporters {
			_ = e.Close()
		}
		s.close()
		return nil, err
	}
	s.converter = conv
	s.closers = append([]func() error{conv.Close}, s.closers...)
	return s, nil
}

// identifierCache wraps next with the LRU and, when enabled, the Redis tier.
func (s *session) identifierCache(ctx context.Context, next molecule.GeneratorFactory) (molecule.GeneratorFactory, error) {
	cc := s.cfg.Cache
	opts := []cache.Option{cache.WithObserver(s.metrics), cache.WithLogger(s.logger.Named("cache"))}

	if cc.Redis.Enabled {
		client, err := redis.NewClient(&redis.RedisConfig{
			Addr:         cc.Redis.Addr,
			Password:     cc.Redis.Password,
			DB:           cc.Redis.DB,
			PoolSize:     cc.Redis.PoolSize,
			DialTimeout:  cc.Redis.DialTimeout,
			ReadTimeout:  cc.Redis.ReadTimeout,
			WriteTimeout: cc.Redis.WriteTimeout,
		}, s.logger.Named("redis"))
		if err != nil {
			s.unavailable("redis", err)
		} else {
			s.closers = append(s.closers, client.Close)
			store := redis.NewRedisCache(client, s.logger.Named("redis"),
				redis.WithPrefix(cc.Redis.KeyPrefix),
				redis.WithDefaultTTL(cc.Redis.TTL),
			)
			opts = append(opts, cache.WithStore(store, cc.Redis.TTL))
		}
	}

	f, err := cache.NewFactory(next, cc.LRUSize, opts...)
	if err != nil {
		return nil, err
	}
	if !f.Enabled() {
		return next, nil
	}
	return f, nil
}

func (s *session) recordSinks(ctx context.Context, schemaSize int) []convert.RecordSink {
	sc := s.cfg.Sinks
	var sinks []convert.RecordSink

	if sc.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:          sc.Kafka.Brokers,
			Acks:             sc.Kafka.RequiredAcks,
			BatchSize:        sc.Kafka.BatchSize,
			BatchTimeout:     sc.Kafka.BatchTimeout,
			CompressionCodec: sc.Kafka.Compression,
		}, s.logger.Named("kafka"))
		if err != nil {
			s.unavailable("kafka", err)
		} else {
			sinks = append(sinks, kafka.NewRecordProducer(producer, sc.Kafka.Topic, sc.Kafka.BatchSize, s.logger.Named("kafka")))
		}
	}

	if sc.Milvus.Enabled {
		if sink, err := s.milvusSink(ctx, schemaSize); err != nil {
			s.unavailable("milvus", err)
		} else {
			sinks = append(sinks, sink)
		}
	}

	if sc.Postgres.Enabled {
		if sink, err := s.postgresSink(ctx); err != nil {
			s.unavailable("postgres", err)
		} else {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

func (s *session) milvusSink(ctx context.Context, schemaSize int) (convert.RecordSink, error) {
	mc := s.cfg.Sinks.Milvus
	log := s.logger.Named("milvus")
	client, err := milvus.NewClient(milvus.ClientConfig{
		Address:        mc.Addr,
		Username:       mc.Username,
		Password:       mc.Password,
		DBName:         mc.DBName,
		ConnectTimeout: mc.Timeout,
		RequestTimeout: mc.Timeout,
	}, log)
	if err != nil {
		return nil, err
	}
	sink, err := milvus.NewFingerprintSink(ctx, client, milvus.SinkConfig{
		Collection: mc.Collection,
		SchemaSize: schemaSize,
		BatchSize:  mc.BatchSize,
		NList:      mc.NList,
	}, log)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return sink, nil
}

func (s *session) postgresSink(ctx context.Context) (convert.RecordSink, error) {
	pc := s.cfg.Sinks.Postgres
	log := s.logger.Named("postgres")

	if !pc.SkipMigrations {
		m, err := postgres.NewMigrator(pc.DSN, log)
		if err != nil {
			return nil, err
		}
		err = m.Up()
		if cerr := m.Close(); cerr != nil {
			log.Warn("closing migrator failed", logging.Err(cerr))
		}
		if err != nil {
			return nil, err
		}
	}

	conn, err := postgres.NewConnection(ctx, postgres.PostgresConfig{DSN: pc.DSN, MaxConns: pc.MaxConns}, log)
	if err != nil {
		return nil, err
	}
	return conn.NewRecordSink(pc.BatchSize, log), nil
}

func (s *session) fileExporters() []convert.FileExporter {
	mc := s.cfg.Sinks.MinIO
	if !mc.Enabled {
		return nil
	}
	log := s.logger.Named("minio")
	client, err := minio.NewMinIOClient(&minio.MinIOConfig{
		Endpoint:        mc.Endpoint,
		AccessKeyID:     mc.AccessKey,
		SecretAccessKey: mc.SecretKey,
		UseSSL:          mc.UseSSL,
		Region:          mc.Region,
		Bucket:          mc.Bucket,
		Prefix:          mc.Prefix,
		ExpireDays:      mc.ExpireDays,
	}, log)
	if err != nil {
		s.unavailable("minio", err)
		return nil
	}
	return []convert.FileExporter{minio.NewUploader(client, log)}
}

// unavailable reports a destination that could not be set up.
func (s *session) unavailable(name string, err error) {
	fmt.Fprintf(s.stderr, "Generic I/O failure in %s sink: %v\n", name, err)
	s.logger.Error("destination unavailable, continuing without it",
		logging.String("sink", name), logging.Err(err))
	s.metrics.SinkFailed(name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Teardown
// ─────────────────────────────────────────────────────────────────────────────

// finish writes the metrics textfile and releases every connection.
func (s *session) finish() {
	if path := s.cfg.Metrics.Textfile; path != "" {
		if err := s.metrics.WriteToTextfile(path); err != nil {
			fmt.Fprintf(s.stderr, "Cannot write file '%s': %v\n", path, err)
			s.logger.Error("writing metrics textfile failed", logging.String("file", path), logging.Err(err))
		}
	}
	s.close()
}

func (s *session) close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.logger.Warn("close failed", logging.Err(err))
		}
	}
	s.closers = nil
	_ = s.logger.Sync()
}

// runConvert handles the root command.  Sinks are only set up when some
// argument names an input file.
func runConvert(ctx context.Context, cliCtx *CLIContext, args []string, stdout, stderr io.Writer) error {
	withSinks := false
	for _, arg := range args {
		if !convert.IsInfoArgument(arg) {
			withSinks = true
			break
		}
	}

	s, err := newSession(ctx, cliCtx, withSinks, stdout, stderr)
	if err != nil {
		return err
	}
	defer s.finish()

	_, err = s.converter.Run(ctx, args)
	return err
}

//Personal.AI order the ending
