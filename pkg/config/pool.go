package config

import "time"

// PoolOptions configures the pooling container backing a manager. The zero
// value is not usable; start from DriverPoolOptions or BrowserPoolOptions.
type PoolOptions struct {
	// MaxTotal caps the number of live pooled resources. Callers beyond
	// this limit block (see BlockWhenExhausted and MaxWait).
	MaxTotal int `yaml:"max_total"`

	// MaxIdle caps how many idle resources are kept around for reuse.
	MaxIdle int `yaml:"max_idle"`

	// MinIdle is the number of idle resources the evictor tries to keep
	// warm.
	MinIdle int `yaml:"min_idle"`

	// BlockWhenExhausted makes borrowers wait for a returned resource
	// instead of failing immediately when the pool is at capacity.
	BlockWhenExhausted bool `yaml:"block_when_exhausted"`

	// MaxWait bounds how long a borrower blocks before the borrow fails
	// with ErrPoolTimeout. Zero means wait as long as the caller's context
	// allows.
	MaxWait time.Duration `yaml:"max_wait"`

	// TestOnBorrow validates a resource before handing it out; invalid
	// resources are destroyed and replaced transparently.
	TestOnBorrow bool `yaml:"test_on_borrow"`

	// TestOnReturn validates a resource when it is returned.
	TestOnReturn bool `yaml:"test_on_return"`

	// TestWhileIdle validates idle resources during eviction runs.
	TestWhileIdle bool `yaml:"test_while_idle"`

	// TimeBetweenEvictionRuns is the period of the background idle sweep.
	// Zero disables the sweep.
	TimeBetweenEvictionRuns time.Duration `yaml:"time_between_eviction_runs"`

	// MinEvictableIdleTime is how long a resource may sit idle before the
	// sweep destroys it.
	MinEvictableIdleTime time.Duration `yaml:"min_evictable_idle_time"`
}

// DriverPoolOptions returns the defaults for a pool of bare driver
// processes: no liveness testing, no background eviction.
func DriverPoolOptions(capacity int) PoolOptions {
	return PoolOptions{
		MaxTotal:           capacity,
		MaxIdle:            capacity,
		MinIdle:            1,
		BlockWhenExhausted: true,
	}
}

// BrowserPoolOptions returns the defaults for a pool of launched browsers:
// validate on borrow, sweep idle browsers every 30 minutes, destroy browsers
// idle for more than an hour, and give up on borrowing after 30 seconds.
func BrowserPoolOptions(capacity int) PoolOptions {
	return PoolOptions{
		MaxTotal:                capacity,
		MaxIdle:                 capacity,
		MinIdle:                 1,
		BlockWhenExhausted:      true,
		MaxWait:                 30 * time.Second,
		TestOnBorrow:            true,
		TestWhileIdle:           true,
		TimeBetweenEvictionRuns: 30 * time.Minute,
		MinEvictableIdleTime:    time.Hour,
	}
}
