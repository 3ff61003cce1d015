package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "invoice-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func TestRedisUserCache_Set_Success(t *testing.T) {
	client, _ := setupTestRedis(t)

	logger := zaptest.NewLogger(t)
	cache := NewRedisUserCache(client, 5*time.Minute, logger)

	user := &domain.User{
		ID:           1,
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "$2a$12$notarealhash",
	}

	err := cache.Set(context.Background(), user)
	require.NoError(t, err)

	// Verify data is in Redis
	data, err := client.Get(context.Background(), "user:email:john@example.com").Bytes()
	require.NoError(t, err)

	var cached domain.User
	err = json.Unmarshal(data, &cached)
	require.NoError(t, err)

	assert.Equal(t, user.ID, cached.ID)
	assert.Equal(t, user.Name, cached.Name)
	assert.Equal(t, user.Email, cached.Email)
	assert.Equal(t, user.PasswordHash, cached.PasswordHash)
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := cache.Set(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Get_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	got, err := cache.Get(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get_Success(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	user := &domain.User{ID: 1, Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, cache.Set(context.Background(), user))

	got, err := cache.Get(context.Background(), "john@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
}

func TestRedisUserCache_Get_ExpiredTTL(t *testing.T) {
	client, mr := setupTestRedis(t)

	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	user := &domain.User{ID: 1, Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, cache.Set(context.Background(), user))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)

	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	user := &domain.User{ID: 1, Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, cache.Set(context.Background(), user))

	require.NoError(t, cache.Delete(context.Background(), "john@example.com"))

	got, err := cache.Get(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}
