package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	pkgerrors "github.com/turtacn/computefp/pkg/errors"
)

type CacheTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.cache = NewRedisCache(NewClientFromUniversal(db, nil, nil), nil,
		WithPrefix("test:"), WithDefaultTTL(time.Hour))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

type testStruct struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (s *CacheTestSuite) TestGet_CacheHit() {
	val := testStruct{Name: "John", Age: 30}
	bytes, _ := json.Marshal(val)

	s.mock.ExpectGet("test:key1").SetVal(string(bytes))

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), val, dest)
}

func (s *CacheTestSuite) TestGet_CacheMiss() {
	s.mock.ExpectGet("test:key1").RedisNil()

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)

	assert.Equal(s.T(), ErrCacheMiss, err)
	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func (s *CacheTestSuite) TestGet_CorruptValue() {
	s.mock.ExpectGet("test:key1").SetVal("{not json")

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)

	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func (s *CacheTestSuite) TestGet_ServerError() {
	s.mock.ExpectGet("test:key1").SetErr(stderrors.New("connection reset"))

	var dest testStruct
	err := s.cache.Get(context.Background(), "key1", &dest)

	assert.Error(s.T(), err)
	assert.NotEqual(s.T(), ErrCacheMiss, err)
}

func (s *CacheTestSuite) TestSet_DefaultTTL() {
	s.mock.ExpectSet("test:key1", `{"name":"Ada","age":36}`, time.Hour).SetVal("OK")

	err := s.cache.Set(context.Background(), "key1", testStruct{Name: "Ada", Age: 36}, 0)
	assert.NoError(s.T(), err)
}

func (s *CacheTestSuite) TestSet_ExplicitTTL() {
	s.mock.ExpectSet("test:key1", `{"name":"Ada","age":36}`, time.Minute).SetVal("OK")

	err := s.cache.Set(context.Background(), "key1", testStruct{Name: "Ada", Age: 36}, time.Minute)
	assert.NoError(s.T(), err)
}

func (s *CacheTestSuite) TestSet_Unserializable() {
	err := s.cache.Set(context.Background(), "key1", make(chan int), 0)
	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

//Personal.AI order the ending
