package milvus

import (
	"context"
	"testing"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintDim(t *testing.T) {
	assert.Equal(t, 8, FingerprintDim(1))
	assert.Equal(t, 64, FingerprintDim(64))
	assert.Equal(t, 72, FingerprintDim(65))
}

func TestFingerprintSchema(t *testing.T) {
	s := FingerprintSchema("fps", 128)

	assert.Equal(t, "fps", s.Name)
	require.Len(t, s.Fields, 5)
	assert.True(t, s.Fields[0].PrimaryKey)
	assert.True(t, s.Fields[0].AutoID)
	vec := s.Fields[4]
	assert.Equal(t, entity.FieldTypeBinaryVector, vec.DataType)
	assert.Equal(t, "128", vec.TypeParams["dim"])
}

func TestEnsureCollection_CreatesWhenMissing(t *testing.T) {
	mc := &mockMilvusClient{}
	mgr := NewCollectionManager(newTestClient(mc), CollectionConfig{}, nil)

	err := mgr.EnsureCollection(context.Background(), FingerprintSchema("fps", 64), []IndexConfig{FingerprintIndex(0)})
	require.NoError(t, err)

	require.NotNil(t, mc.created)
	assert.Equal(t, "fps", mc.created.CollectionName)
	idx, ok := mc.indexes[FieldFingerprint]
	require.True(t, ok)
	assert.Equal(t, entity.BinIvfFlat, idx.IndexType())
	assert.Equal(t, "JACCARD", idx.Params()["metric_type"])
	assert.Equal(t, []string{"fps"}, mc.loaded)
}

func TestEnsureCollection_ExistingIsOnlyLoaded(t *testing.T) {
	mc := &mockMilvusClient{hasCollection: true}
	mgr := NewCollectionManager(newTestClient(mc), CollectionConfig{}, nil)

	err := mgr.EnsureCollection(context.Background(), FingerprintSchema("fps", 64), []IndexConfig{FingerprintIndex(64)})
	require.NoError(t, err)

	assert.Nil(t, mc.created)
	assert.Empty(t, mc.indexes)
	assert.Equal(t, []string{"fps"}, mc.loaded)
}

//Personal.AI order the ending
