package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entrhq/playpool/pkg/config"
)

func TestWithLoggerPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { WithLogger(nil) })
}

func TestWithPoolOptionsPanicsOnInvalidCapacity(t *testing.T) {
	assert.Panics(t, func() { WithPoolOptions(config.PoolOptions{MaxTotal: 0}) })
}

func TestApplySettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := applySettings(config.DriverPoolOptions(4), nil)
		require.NotNil(t, s.log)
		require.NotNil(t, s.poolOpts)
		assert.Equal(t, 4, s.poolOpts.MaxTotal)
	})

	t.Run("overrides", func(t *testing.T) {
		log := zap.NewNop()
		custom := config.PoolOptions{MaxTotal: 2, MaxWait: time.Second}
		s := applySettings(config.DriverPoolOptions(4), []Option{
			WithLogger(log),
			WithPoolOptions(custom),
		})
		assert.Same(t, log, s.log)
		assert.Equal(t, 2, s.poolOpts.MaxTotal)
		assert.Equal(t, time.Second, s.poolOpts.MaxWait)
	})
}

func TestToPoolConfig(t *testing.T) {
	opts := config.PoolOptions{
		MaxTotal:                3,
		MaxIdle:                 2,
		MinIdle:                 1,
		BlockWhenExhausted:      true,
		MaxWait:                 10 * time.Second,
		TestOnBorrow:            true,
		TestOnReturn:            true,
		TestWhileIdle:           true,
		TimeBetweenEvictionRuns: time.Minute,
		MinEvictableIdleTime:    time.Hour,
	}

	cfg := toPoolConfig(opts)
	assert.Equal(t, 3, cfg.MaxTotal)
	assert.Equal(t, 2, cfg.MaxIdle)
	assert.Equal(t, 1, cfg.MinIdle)
	assert.True(t, cfg.BlockWhenExhausted)
	assert.True(t, cfg.TestOnBorrow)
	assert.True(t, cfg.TestOnReturn)
	assert.True(t, cfg.TestWhileIdle)
	assert.Equal(t, time.Minute, cfg.TimeBetweenEvictionRuns)
	assert.Equal(t, time.Hour, cfg.MinEvictableIdleTime)
}

func TestStatisticsString(t *testing.T) {
	s := Statistics{Created: 3, Borrowed: 10, Returned: 9, Destroyed: 1, Active: 1, Idle: 2, Waiting: 0}
	out := s.String()
	assert.Contains(t, out, "Created: 3")
	assert.Contains(t, out, "Borrowed: 10")
	assert.Contains(t, out, "Returned: 9")
	assert.Contains(t, out, "Destroyed: 1")
	assert.Contains(t, out, "Waiters: 0")
}
