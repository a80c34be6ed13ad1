package redis

import (
	"testing"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	r "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisValueToBytes(t *testing.T) {
	data, err := redisValueToBytes("abc", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	data, err = redisValueToBytes(nil, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = redisValueToBytes(42, "k")
	assert.EqualError(t, err, "unexpected Redis value type for key k: int")
}

func TestIsNil(t *testing.T) {
	assert.True(t, isNil(e.Wrap("get", r.Nil)))
	assert.False(t, isNil(e.ErrTransactionNotFound))
}

func TestPageKey(t *testing.T) {
	repo := NewCatalogCacheRepo(nil, nil, &cfg.RedisCfg{}, 20, nil)

	assert.Equal(t, "catalog:20:page:3", repo.pageKey(3))
}
