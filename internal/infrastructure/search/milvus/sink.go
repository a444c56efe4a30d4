package milvus

import (
	"context"
	"fmt"
	"sync"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
	"github.com/turtacn/computefp/pkg/types/molecule"
)

// SinkConfig configures a FingerprintSink.
type SinkConfig struct {
	Collection string
	// SchemaSize is the number of fingerprint properties.
	SchemaSize int
	BatchSize  int
	NList      int
}

// FingerprintSink inserts records as binary vectors so that structures can
// later be searched by Jaccard (Tanimoto) similarity.
type FingerprintSink struct {
	client *Client
	cfg    SinkConfig
	dim    int
	logger logging.Logger

	mu        sync.Mutex
	keys      []string
	smiles    []string
	runIDs    []string
	vectors   [][]byte
	inserted  int
	unflushed bool
}

// NewFingerprintSink ensures the collection exists and returns a sink for it.
func NewFingerprintSink(ctx context.Context, client *Client, cfg SinkConfig, logger logging.Logger) (*FingerprintSink, error) {
	if cfg.Collection == "" {
		return nil, errors.NewValidationError("collection", "collection name is required")
	}
	if cfg.SchemaSize <= 0 {
		return nil, errors.NewValidationError("schema_size", "must be positive")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 512
	}
	if logger == nil {
		logger = logging.Default()
	}

	dim := FingerprintDim(cfg.SchemaSize)
	mgr := NewCollectionManager(client, CollectionConfig{}, logger)
	if err := mgr.EnsureCollection(ctx, FingerprintSchema(cfg.Collection, dim), []IndexConfig{FingerprintIndex(cfg.NList)}); err != nil {
		return nil, err
	}
	return &FingerprintSink{client: client, cfg: cfg, dim: dim, logger: logger}, nil
}

func (s *FingerprintSink) Name() string { return "milvus" }

// Write buffers rec and inserts the buffer once it reaches the batch size.
func (s *FingerprintSink) Write(ctx context.Context, rec *molecule.Record) error {
	vec := rec.PackedFingerprint
	if len(vec) != s.dim/8 {
		return errors.Newf(errors.ErrCodeSinkWriteFailed,
			"fingerprint of %d bytes does not match vector dimension %d", len(vec), s.dim)
	}

	s.mu.Lock()
	s.keys = append(s.keys, rec.InChIKey2D)
	s.smiles = append(s.smiles, rec.SMILES)
	s.runIDs = append(s.runIDs, rec.RunID)
	s.vectors = append(s.vectors, vec)
	full := len(s.keys) >= s.cfg.BatchSize
	s.mu.Unlock()

	if full {
		return s.insertPending(ctx)
	}
	return nil
}

// Flush inserts buffered rows and seals the segment so they become
// searchable.
func (s *FingerprintSink) Flush(ctx context.Context) error {
	if err := s.insertPending(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	unflushed := s.unflushed
	s.unflushed = false
	s.mu.Unlock()
	if !unflushed {
		return nil
	}

	ctx, cancel := s.requestContext(ctx)
	defer cancel()
	if err := s.client.GetMilvusClient().Flush(ctx, s.cfg.Collection, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeSinkFlushFailed, "milvus flush failed")
	}
	return nil
}

func (s *FingerprintSink) insertPending(ctx context.Context) error {
	s.mu.Lock()
	keys, smiles, runIDs, vectors := s.keys, s.smiles, s.runIDs, s.vectors
	s.keys, s.smiles, s.runIDs, s.vectors = nil, nil, nil, nil
	s.mu.Unlock()

	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := s.requestContext(ctx)
	defer cancel()
	_, err := s.client.GetMilvusClient().Insert(ctx, s.cfg.Collection, "",
		entity.NewColumnVarChar(FieldInChIKey, keys),
		entity.NewColumnVarChar(FieldSMILES, smiles),
		entity.NewColumnVarChar(FieldRunID, runIDs),
		entity.NewColumnBinaryVector(FieldFingerprint, s.dim, vectors),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSinkWriteFailed,
			fmt.Sprintf("milvus insert of %d rows failed", len(keys)))
	}

	s.mu.Lock()
	s.inserted += len(keys)
	s.unflushed = true
	s.mu.Unlock()
	s.logger.Debug("fingerprints inserted", logging.String("collection", s.cfg.Collection), logging.Int("rows", len(keys)))
	return nil
}

func (s *FingerprintSink) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if t := s.client.RequestTimeout(); t > 0 {
		return context.WithTimeout(ctx, t)
	}
	return context.WithCancel(ctx)
}

// Inserted returns the number of rows sent to Milvus so far.
func (s *FingerprintSink) Inserted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserted
}

func (s *FingerprintSink) Close() error {
	return s.client.Close()
}

//Personal.AI order the ending
