package milvus

import (
	"context"
	"strconv"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

// Field names of the fingerprint collection.
const (
	FieldID          = "id"
	FieldInChIKey    = "inchikey"
	FieldSMILES      = "smiles"
	FieldRunID       = "run_id"
	FieldFingerprint = "fingerprint"

	maxInChIKeyLength = 64
	maxRunIDLength    = 64
	maxSMILESLength   = 65535
)

// CollectionConfig holds configuration for the CollectionManager.
type CollectionConfig struct {
	ShardsNum        int32
	ConsistencyLevel entity.ConsistencyLevel
}

// CollectionSchema defines a collection schema.
type CollectionSchema struct {
	Name        string
	Description string
	Fields      []*entity.Field
}

// IndexConfig defines a binary IVF index on one vector field.
type IndexConfig struct {
	FieldName  string
	MetricType entity.MetricType
	NList      int
}

// CollectionManager manages Milvus collections.
type CollectionManager struct {
	client *Client
	config CollectionConfig
	logger logging.Logger
}

// NewCollectionManager creates a new CollectionManager.
func NewCollectionManager(client *Client, cfg CollectionConfig, logger logging.Logger) *CollectionManager {
	if cfg.ShardsNum == 0 {
		cfg.ShardsNum = 1
	}
	if cfg.ConsistencyLevel == 0 {
		cfg.ConsistencyLevel = entity.ClBounded
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CollectionManager{
		client: client,
		config: cfg,
		logger: logger,
	}
}

// HasCollection checks if a collection exists.
func (m *CollectionManager) HasCollection(ctx context.Context, name string) (bool, error) {
	has, err := m.client.GetMilvusClient().HasCollection(ctx, name)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeExternalService, "failed to check collection existence")
	}
	return has, nil
}

// CreateCollection creates a new collection.
func (m *CollectionManager) CreateCollection(ctx context.Context, schema CollectionSchema) error {
	s := &entity.Schema{
		CollectionName: schema.Name,
		Description:    schema.Description,
		Fields:         schema.Fields,
	}
	if err := m.client.GetMilvusClient().CreateCollection(ctx, s, m.config.ShardsNum,
		client.WithConsistencyLevel(m.config.ConsistencyLevel)); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to create collection").WithDetail(schema.Name)
	}
	m.logger.Info("Collection created", logging.String("name", schema.Name))
	return nil
}

// CreateIndex builds a BIN_IVF_FLAT index and waits for it.
func (m *CollectionManager) CreateIndex(ctx context.Context, collectionName string, indexCfg IndexConfig) error {
	idx, err := entity.NewIndexBinIvfFlat(indexCfg.MetricType, indexCfg.NList)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeValidation, "invalid index parameters")
	}
	if err := m.client.GetMilvusClient().CreateIndex(ctx, collectionName, indexCfg.FieldName, idx, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to create index")
	}
	m.logger.Info("Index created", logging.String("collection", collectionName), logging.String("field", indexCfg.FieldName))
	return nil
}

// LoadCollection loads a collection into memory.
func (m *CollectionManager) LoadCollection(ctx context.Context, name string) error {
	if err := m.client.GetMilvusClient().LoadCollection(ctx, name, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to load collection")
	}
	return nil
}

// EnsureCollection creates and indexes the collection when it is missing,
// then loads it.  An existing collection is used as is.
func (m *CollectionManager) EnsureCollection(ctx context.Context, schema CollectionSchema, indexes []IndexConfig) error {
	exists, err := m.HasCollection(ctx, schema.Name)
	if err != nil {
		return err
	}
	if !exists {
		if err := m.CreateCollection(ctx, schema); err != nil {
			return err
		}
		for _, idx := range indexes {
			if err := m.CreateIndex(ctx, schema.Name, idx); err != nil {
				return err
			}
		}
	}
	return m.LoadCollection(ctx, schema.Name)
}

// FingerprintDim rounds a schema size up to the byte multiple Milvus
// requires for binary vectors.
func FingerprintDim(schemaSize int) int {
	return (schemaSize + 7) / 8 * 8
}

// FingerprintSchema describes the collection holding one row per record.
func FingerprintSchema(name string, dim int) CollectionSchema {
	return CollectionSchema{
		Name:        name,
		Description: "computefp structural key fingerprints",
		Fields: []*entity.Field{
			{Name: FieldID, DataType: entity.FieldTypeInt64, PrimaryKey: true, AutoID: true},
			{Name: FieldInChIKey, DataType: entity.FieldTypeVarChar, TypeParams: map[string]string{"max_length": strconv.Itoa(maxInChIKeyLength)}},
			{Name: FieldSMILES, DataType: entity.FieldTypeVarChar, TypeParams: map[string]string{"max_length": strconv.Itoa(maxSMILESLength)}},
			{Name: FieldRunID, DataType: entity.FieldTypeVarChar, TypeParams: map[string]string{"max_length": strconv.Itoa(maxRunIDLength)}},
			{Name: FieldFingerprint, DataType: entity.FieldTypeBinaryVector, TypeParams: map[string]string{"dim": strconv.Itoa(dim)}},
		},
	}
}

// FingerprintIndex is the Jaccard index used for similarity search.
func FingerprintIndex(nlist int) IndexConfig {
	if nlist <= 0 {
		nlist = 128
	}
	return IndexConfig{FieldName: FieldFingerprint, MetricType: entity.JACCARD, NList: nlist}
}

//Personal.AI order the ending
