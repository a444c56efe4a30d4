package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
	"github.com/turtacn/computefp/pkg/types/molecule"
)

const defaultBatchSize = 500

const insertRecordSQL = `INSERT INTO fingerprint_records
	(record_id, run_id, source_file, line_number, prefix, inchikey_2d, inchi_2d, smiles, fingerprint, schema_version, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (record_id) DO NOTHING`

// batchSender is the part of *pgxpool.Pool the sink needs.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// RecordSink inserts converted records into fingerprint_records, one
// pgx.Batch per flush.  Rows are keyed by run, file and line, so a batch
// replayed within one run inserts nothing twice; every run adds its own rows.
type RecordSink struct {
	db        batchSender
	batchSize int
	closer    func() error
	logger    logging.Logger

	mu       sync.Mutex
	pending  []*molecule.Record
	inserted int64
}

// NewRecordSink returns a sink writing through c.  Closing the sink closes c.
func (c *Connection) NewRecordSink(batchSize int, log logging.Logger) *RecordSink {
	s := newRecordSink(c.pool, batchSize, log)
	s.closer = c.Close
	return s
}

func newRecordSink(db batchSender, batchSize int, log logging.Logger) *RecordSink {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if log == nil {
		log = logging.Default()
	}
	return &RecordSink{db: db, batchSize: batchSize, logger: log}
}

func (s *RecordSink) Name() string { return "postgres" }

// Write buffers rec and inserts the buffer once it reaches the batch size.
func (s *RecordSink) Write(ctx context.Context, rec *molecule.Record) error {
	s.mu.Lock()
	s.pending = append(s.pending, rec)
	full := len(s.pending) >= s.batchSize
	s.mu.Unlock()

	if full {
		return s.Flush(ctx)
	}
	return nil
}

// Flush inserts everything buffered.  The batch runs in one implicit
// transaction, so a failing row drops the whole batch.
func (s *RecordSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, rec := range batch {
		b.Queue(insertRecordSQL, recordArgs(rec)...)
	}

	br := s.db.SendBatch(ctx, b)
	var (
		firstErr error
		inserted int64
	)
	for range batch {
		tag, err := br.Exec()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		inserted += tag.RowsAffected()
	}
	if err := br.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		return errors.Wrap(firstErr, errors.ErrCodeSinkFlushFailed,
			fmt.Sprintf("%d records not stored in fingerprint_records", len(batch)))
	}

	s.mu.Lock()
	s.inserted += inserted
	s.mu.Unlock()
	s.logger.Debug("Stored fingerprint records",
		logging.Int("batch", len(batch)),
		logging.Int64("inserted", inserted),
	)
	return nil
}

// Inserted reports how many rows were actually inserted; rows skipped as
// duplicates are not counted.
func (s *RecordSink) Inserted() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserted
}

// Close drops anything still buffered and releases the connection.
func (s *RecordSink) Close() error {
	s.mu.Lock()
	if n := len(s.pending); n > 0 {
		s.logger.Warn("Closing postgres sink with unflushed records", logging.Int("records", n))
	}
	s.pending = nil
	s.mu.Unlock()

	if s.closer != nil {
		return s.closer()
	}
	return nil
}

func recordArgs(rec *molecule.Record) []any {
	fp := make([]int32, len(rec.Fingerprint))
	for i, idx := range rec.Fingerprint {
		fp[i] = int32(idx)
	}
	return []any{
		rec.ID(),
		rec.RunID,
		rec.SourceFile,
		rec.LineNumber,
		rec.Prefix,
		rec.InChIKey2D,
		rec.InChI2D,
		rec.SMILES,
		fp,
		rec.SchemaVersion,
		rec.CreatedAt,
	}
}

//Personal.AI order the ending
