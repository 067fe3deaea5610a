package manager

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/entrhq/playpool/pkg/config"
)

type settings struct {
	log      *zap.Logger
	poolOpts *config.PoolOptions
}

// Option configures a Manager or BrowserManager during construction.
type Option func(*settings)

// WithLogger sets the structured logger used for lifecycle and cleanup
// events. By default logs are discarded.
//
// Panics if log is nil; passing an explicit nil logger is a programmer
// error, not a runtime condition.
func WithLogger(log *zap.Logger) Option {
	if log == nil {
		panic("playpool: logger must not be nil")
	}
	return func(s *settings) {
		s.log = log
	}
}

// WithPoolOptions replaces the manager's default pooling configuration.
// The capacity passed to the constructor is ignored when this option is
// used; opts.MaxTotal wins.
//
// Panics if opts.MaxTotal < 1.
func WithPoolOptions(opts config.PoolOptions) Option {
	if opts.MaxTotal < 1 {
		panic(fmt.Sprintf("playpool: pool MaxTotal must be at least 1, got %d", opts.MaxTotal))
	}
	return func(s *settings) {
		o := opts
		s.poolOpts = &o
	}
}

func applySettings(defaults config.PoolOptions, opts []Option) settings {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.poolOpts == nil {
		s.poolOpts = &defaults
	}
	return s
}
