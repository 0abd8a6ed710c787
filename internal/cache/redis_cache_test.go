package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printhaus/printshop-platform/internal/cache"
	"github.com/printhaus/printshop-platform/internal/config"
	"github.com/printhaus/printshop-platform/internal/models"
)

func newTestCache(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: 10 * time.Minute})

	return c, mock
}

func TestRedisCacheGet(t *testing.T) {

	key := cache.Key(cache.ProductKeyPrefix, "abc")

	t.Run("Success - hit decodes into the target", func(t *testing.T) {
		// Arrange
		c, mock := newTestCache(t)

		stored := models.Product{Name: "Sunset Poster", Price: 500}
		data, _ := json.Marshal(stored)

		mock.ExpectGet(key).SetVal(string(data))

		// Act
		var got models.Product
		hit, err := c.Get(context.Background(), key, &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "Sunset Poster", got.Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - miss is not an error", func(t *testing.T) {
		c, mock := newTestCache(t)

		mock.ExpectGet(key).RedisNil()

		var got models.Product
		hit, err := c.Get(context.Background(), key, &got)

		assert.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("Failure - corrupted payload", func(t *testing.T) {
		c, mock := newTestCache(t)

		mock.ExpectGet(key).SetVal("not json")

		var got models.Product
		hit, err := c.Get(context.Background(), key, &got)

		assert.False(t, hit)
		assert.Error(t, err)
	})
}

func TestRedisCacheSet(t *testing.T) {

	key := cache.Key(cache.ProductKeyPrefix, "abc")

	t.Run("Success - explicit TTL", func(t *testing.T) {
		c, mock := newTestCache(t)

		value := models.Product{Name: "Sunset Poster"}
		data, _ := json.Marshal(value)

		mock.ExpectSet(key, data, time.Minute).SetVal("OK")

		err := c.Set(context.Background(), key, value, time.Minute)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - zero TTL falls back to the configured default", func(t *testing.T) {
		c, mock := newTestCache(t)

		value := models.Product{Name: "Sunset Poster"}
		data, _ := json.Marshal(value)

		mock.ExpectSet(key, data, 10*time.Minute).SetVal("OK")

		err := c.Set(context.Background(), key, value, 0)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheDelete(t *testing.T) {

	key := cache.Key(cache.ProductKeyPrefix, "abc")

	t.Run("Success", func(t *testing.T) {
		c, mock := newTestCache(t)

		mock.ExpectDel(key).SetVal(1)

		err := c.Delete(context.Background(), key)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
