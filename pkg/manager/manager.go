package manager

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	pool "github.com/jolestar/go-commons-pool/v2"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/entrhq/playpool/pkg/browserpool"
	"github.com/entrhq/playpool/pkg/config"
)

// Manager pools Playwright driver processes and launches a fresh browser
// for every Execute call. Suited to short one-shot operations; use
// BrowserManager when the cost of launching a browser per call matters.
type Manager struct {
	log      *zap.Logger
	poolOpts config.PoolOptions
	factory  *browserpool.DriverFactory
	pool     *pool.ObjectPool

	borrowed atomic.Uint64
	returned atomic.Uint64
	waiting  atomic.Int64
}

// New creates a Manager with a driver pool of the given capacity.
func New(ctx context.Context, capacity int, opts ...Option) *Manager {
	s := applySettings(config.DriverPoolOptions(capacity), opts)

	factory := browserpool.NewDriverFactory(s.log)
	objectPool := pool.NewObjectPool(ctx, factory, toPoolConfig(*s.poolOpts))
	if s.poolOpts.TimeBetweenEvictionRuns > 0 {
		objectPool.StartEvictor()
	}

	s.log.Info("playwright manager initialized", zap.Int("capacity", s.poolOpts.MaxTotal))
	return &Manager{
		log:      s.log,
		poolOpts: *s.poolOpts,
		factory:  factory,
		pool:     objectPool,
	}
}

// Execute borrows a driver, launches a browser, runs body in a fresh
// session, and tears everything down again. See ExecuteWith.
func (m *Manager) Execute(ctx context.Context, body PageFunc) error {
	return m.ExecuteWith(ctx, nil, nil, body)
}

// ExecuteWith is Execute with a per-call Config and an optional context
// customizer. A nil cfg uses the defaults. The borrowed driver is returned
// to the pool on every exit path; a failed return is logged, never
// propagated, and never masks the body's error.
func (m *Manager) ExecuteWith(ctx context.Context, cfg *config.Config, customize ContextFunc, body PageFunc) error {
	obj, err := m.borrow(ctx)
	if err != nil {
		return err
	}
	driver := obj.(*playwright.Playwright)
	m.borrowed.Add(1)
	defer func() {
		if err := m.pool.ReturnObject(context.WithoutCancel(ctx), obj); err != nil {
			m.log.Warn("failed to return driver to pool", zap.Error(err))
			return
		}
		m.returned.Add(1)
	}()

	return ExecuteWithDriver(driver, cfg, customize, body, m.log)
}

// ExecuteBatch runs every body concurrently, each in its own pooled
// session, and returns the first error. Bodies beyond the pool capacity
// block until a driver frees up.
func (m *Manager) ExecuteBatch(ctx context.Context, cfg *config.Config, bodies ...PageFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, body := range bodies {
		g.Go(func() error {
			return m.ExecuteWith(ctx, cfg, nil, body)
		})
	}
	return g.Wait()
}

// PoolStatus returns a one-line snapshot of the driver pool.
func (m *Manager) PoolStatus() string {
	active := m.pool.GetNumActive()
	idle := m.pool.GetNumIdle()
	return fmt.Sprintf("Pool Status - Active: %d, Idle: %d, Total: %d/%d",
		active, idle, active+idle, m.poolOpts.MaxTotal)
}

// Close shuts the pool down, destroying idle drivers. In-flight borrows
// fail once the pool is closed.
func (m *Manager) Close(ctx context.Context) {
	m.pool.Close(ctx)
	m.log.Info("playwright manager closed")
}

func (m *Manager) borrow(ctx context.Context) (interface{}, error) {
	return borrowFromPool(ctx, m.pool, m.poolOpts.MaxWait, &m.waiting)
}

// borrowFromPool borrows with the configured maximum wait applied via the
// borrow context, translating failures into the library's error taxonomy:
// a deadline hit becomes ErrPoolTimeout, a caller cancellation surfaces
// as-is, and anything else means the container could not create a resource.
func borrowFromPool(ctx context.Context, p *pool.ObjectPool, maxWait time.Duration, waiting *atomic.Int64) (interface{}, error) {
	borrowCtx := ctx
	if maxWait > 0 {
		var cancel context.CancelFunc
		borrowCtx, cancel = context.WithTimeout(ctx, maxWait)
		defer cancel()
	}

	waiting.Add(1)
	obj, err := p.BorrowObject(borrowCtx)
	waiting.Add(-1)
	if err == nil {
		return obj, nil
	}

	switch {
	case errors.Is(borrowCtx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %v", ErrPoolTimeout, err)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		return nil, &CreationError{Err: err}
	}
}

// toPoolConfig maps PoolOptions onto the container's own configuration.
// MaxWait is intentionally absent: the borrow deadline is carried by the
// borrow context instead.
func toPoolConfig(o config.PoolOptions) *pool.ObjectPoolConfig {
	cfg := pool.NewDefaultPoolConfig()
	cfg.MaxTotal = o.MaxTotal
	cfg.MaxIdle = o.MaxIdle
	cfg.MinIdle = o.MinIdle
	cfg.BlockWhenExhausted = o.BlockWhenExhausted
	cfg.TestOnBorrow = o.TestOnBorrow
	cfg.TestOnReturn = o.TestOnReturn
	cfg.TestWhileIdle = o.TestWhileIdle
	cfg.TimeBetweenEvictionRuns = o.TimeBetweenEvictionRuns
	cfg.MinEvictableIdleTime = o.MinEvictableIdleTime
	return cfg
}
