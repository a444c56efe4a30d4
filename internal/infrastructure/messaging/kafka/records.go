package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
	"github.com/turtacn/computefp/pkg/types/molecule"
)

// RecordProducer streams converted records, one envelope per record keyed
// by the 2D InChIKey so that all records of a structure share a partition.
type RecordProducer struct {
	producer  *Producer
	topic     string
	batchSize int
	logger    logging.Logger

	mu      sync.Mutex
	pending []*ProducerMessage
}

// NewRecordProducer wraps producer.  batchSize bounds the number of records
// buffered between flushes.
func NewRecordProducer(producer *Producer, topic string, batchSize int, logger logging.Logger) *RecordProducer {
	if topic == "" {
		topic = TopicFingerprintComputed
	}
	if batchSize <= 0 {
		batchSize = producer.config.BatchSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecordProducer{producer: producer, topic: topic, batchSize: batchSize, logger: logger}
}

func (r *RecordProducer) Name() string { return "kafka" }

// Write buffers rec and publishes the buffer once it reaches the batch size.
func (r *RecordProducer) Write(ctx context.Context, rec *molecule.Record) error {
	env, err := NewEventEnvelope(EventFingerprintComputed, EventSource, rec.SchemaVersion, rec)
	if err != nil {
		return err
	}
	env.Metadata = map[string]string{"run_id": rec.RunID, "source_file": rec.SourceFile}
	msg, err := env.ToMessage(r.topic, []byte(rec.InChIKey2D))
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.pending = append(r.pending, msg)
	full := len(r.pending) >= r.batchSize
	r.mu.Unlock()

	if full {
		return r.Flush(ctx)
	}
	return nil
}

// Flush publishes everything buffered.  Records of a failed batch are
// dropped; the error reports how many were lost.
func (r *RecordProducer) Flush(ctx context.Context) error {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	res, err := r.producer.PublishBatch(ctx, batch)
	if err != nil {
		return err
	}
	if res.Failed > 0 {
		first := res.Errors[0].Error
		return errors.Wrap(first, errors.ErrCodeSinkFlushFailed,
			fmt.Sprintf("%d of %d records not published to %s", res.Failed, len(batch), r.topic))
	}
	r.logger.Debug("records published", logging.String("topic", r.topic), logging.Int("count", res.Succeeded))
	return nil
}

func (r *RecordProducer) Close() error {
	return r.producer.Close()
}

//Personal.AI order the ending
