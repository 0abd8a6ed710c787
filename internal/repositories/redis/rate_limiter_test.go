package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printhaus/printshop-platform/internal/config"
	redisrepo "github.com/printhaus/printshop-platform/internal/repositories/redis"
)

const testWindow = 15 * time.Minute

func newTestRateLimiter(t *testing.T) (redisrepo.RateLimitRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.Config{
		RateConfig: config.RateConfig{MaxAttempts: 5, WindowSize: testWindow},
	}

	return redisrepo.NewRateLimitRepo(client, cfg), mock
}

// The window-trim and attempt-record commands carry timestamps taken inside
// the repository, so their arguments are matched loosely.
func ignoreTimestamps(expected, actual []interface{}) error {
	if len(expected) < 2 || len(actual) < 2 {
		return fmt.Errorf("unexpected command shape: %v", actual)
	}

	if expected[0] != actual[0] || expected[1] != actual[1] {
		return fmt.Errorf("expected command %v %v, got %v %v", expected[0], expected[1], actual[0], actual[1])
	}

	return nil
}

func TestCheckLoginRateLimit(t *testing.T) {

	email := "test@example.com"
	key := "login_attempts:" + email

	t.Run("Success - attempts under the limit are allowed", func(t *testing.T) {
		// Arrange
		repo, mock := newTestRateLimiter(t)

		mock.CustomMatch(ignoreTimestamps).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(ignoreTimestamps).ExpectZAdd(key, goredis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(2)
		mock.ExpectExpire(key, testWindow).SetVal(true)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(context.Background(), email)

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3, remaining)
		assert.Zero(t, retryAfter)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - window full, retry-after points at the oldest attempt", func(t *testing.T) {
		repo, mock := newTestRateLimiter(t)

		oldest := time.Now().Add(-time.Minute).Unix()

		mock.CustomMatch(ignoreTimestamps).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(ignoreTimestamps).ExpectZAdd(key, goredis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, testWindow).SetVal(true)
		mock.ExpectZRangeArgsWithScores(goredis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]goredis.Z{{Score: float64(oldest), Member: oldest}})

		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(context.Background(), email)

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		// One minute of the window elapsed since the oldest attempt.
		assert.InDelta(t, int(testWindow.Seconds())-60, retryAfter, 2)
	})

	t.Run("Failure - pipeline error denies the attempt", func(t *testing.T) {
		repo, mock := newTestRateLimiter(t)

		mock.CustomMatch(ignoreTimestamps).ExpectZRemRangeByScore(key, "0", "0").
			SetErr(fmt.Errorf("connection refused"))

		allowed, _, _, err := repo.CheckLoginRateLimit(context.Background(), email)

		assert.False(t, allowed)
		assert.Error(t, err)
	})
}
