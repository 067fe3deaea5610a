package manager

import (
	"context"
	"fmt"
	"sync/atomic"

	pool "github.com/jolestar/go-commons-pool/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/entrhq/playpool/pkg/browserpool"
	"github.com/entrhq/playpool/pkg/config"
)

// BrowserManager pools launched browsers instead of bare drivers, skipping
// the per-call launch cost. Each Execute call still gets its own isolated
// context and page; only the browser process is shared over time, never
// concurrently.
type BrowserManager struct {
	log      *zap.Logger
	cfg      *config.Config
	poolOpts config.PoolOptions
	factory  *browserpool.BrowserFactory
	pool     *pool.ObjectPool

	borrowed atomic.Uint64
	returned atomic.Uint64
	waiting  atomic.Int64
}

// Statistics is a read-only snapshot of the browser pool's counters. It is
// informational; none of the values participate in the pooling contract.
type Statistics struct {
	Created   uint64
	Borrowed  uint64
	Returned  uint64
	Destroyed uint64
	Active    int
	Idle      int
	Waiting   int
}

func (s Statistics) String() string {
	return fmt.Sprintf(
		"Browser Pool Statistics - Created: %d, Borrowed: %d, Returned: %d, Destroyed: %d, Active: %d, Idle: %d, Waiters: %d",
		s.Created, s.Borrowed, s.Returned, s.Destroyed, s.Active, s.Idle, s.Waiting)
}

// NewBrowserManager creates a BrowserManager whose pooled browsers are
// launched per cfg. A nil cfg uses the defaults. The default pool validates
// browsers on borrow and sweeps idle ones in the background; override with
// WithPoolOptions.
func NewBrowserManager(ctx context.Context, cfg *config.Config, capacity int, opts ...Option) *BrowserManager {
	if cfg == nil {
		cfg = config.New()
	}
	s := applySettings(config.BrowserPoolOptions(capacity), opts)

	factory := browserpool.NewBrowserFactory(cfg, s.log)
	objectPool := pool.NewObjectPool(ctx, factory, toPoolConfig(*s.poolOpts))
	if s.poolOpts.TimeBetweenEvictionRuns > 0 {
		objectPool.StartEvictor()
	}

	s.log.Info("browser manager initialized",
		zap.Int("capacity", s.poolOpts.MaxTotal),
		zap.String("stealth_mode", string(cfg.StealthMode)))
	return &BrowserManager{
		log:      s.log,
		cfg:      cfg,
		poolOpts: *s.poolOpts,
		factory:  factory,
		pool:     objectPool,
	}
}

// Execute borrows a pooled browser, runs body in a fresh session on it, and
// returns the browser. See ExecuteWith.
func (m *BrowserManager) Execute(ctx context.Context, body PageFunc) error {
	return m.ExecuteWith(ctx, nil, body)
}

// ExecuteWith is Execute with an optional context customizer applied before
// the page is created. The borrowed browser is returned to the pool on
// every exit path; a failed return is logged, never propagated, and never
// masks the body's error.
func (m *BrowserManager) ExecuteWith(ctx context.Context, customize ContextFunc, body PageFunc) error {
	obj, err := m.borrow(ctx)
	if err != nil {
		return err
	}
	resource := obj.(*browserpool.PooledBrowser)
	m.borrowed.Add(1)
	m.log.Debug("browser borrowed", zap.String("browser_id", resource.ID), zap.String("pool", m.PoolStatus()))
	defer func() {
		if err := m.pool.ReturnObject(context.WithoutCancel(ctx), obj); err != nil {
			m.log.Warn("failed to return browser to pool",
				zap.String("browser_id", resource.ID), zap.Error(err))
			return
		}
		m.returned.Add(1)
		m.log.Debug("browser returned", zap.String("browser_id", resource.ID), zap.String("pool", m.PoolStatus()))
	}()

	return ExecuteWithBrowser(resource.Browser, m.cfg, customize, body, m.log)
}

// ExecuteAll runs every body concurrently, each in its own session on a
// pooled browser, and returns the first error. Bodies beyond the pool
// capacity block until a browser frees up.
func (m *BrowserManager) ExecuteAll(ctx context.Context, customize ContextFunc, bodies ...PageFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, body := range bodies {
		g.Go(func() error {
			return m.ExecuteWith(ctx, customize, body)
		})
	}
	return g.Wait()
}

// PoolStatus returns a one-line snapshot of the browser pool.
func (m *BrowserManager) PoolStatus() string {
	active := m.pool.GetNumActive()
	idle := m.pool.GetNumIdle()
	return fmt.Sprintf("Browser Pool Status - Active: %d, Idle: %d, Total: %d/%d, Waiting: %d",
		active, idle, active+idle, m.poolOpts.MaxTotal, m.waiting.Load())
}

// Statistics returns the pool's lifetime counters and current gauges.
func (m *BrowserManager) Statistics() Statistics {
	return Statistics{
		Created:   m.factory.Created(),
		Borrowed:  m.borrowed.Load(),
		Returned:  m.returned.Load(),
		Destroyed: m.factory.Destroyed(),
		Active:    m.pool.GetNumActive(),
		Idle:      m.pool.GetNumIdle(),
		Waiting:   int(m.waiting.Load()),
	}
}

// ClearIdle destroys the browsers currently sitting idle in the pool,
// releasing their driver processes. Active browsers are unaffected.
func (m *BrowserManager) ClearIdle(ctx context.Context) {
	m.pool.Clear(ctx)
	m.log.Info("cleared idle browsers from pool")
}

// Close shuts the pool down, destroying idle browsers and their drivers.
// In-flight borrows fail once the pool is closed.
func (m *BrowserManager) Close(ctx context.Context) {
	m.pool.Close(ctx)
	m.log.Info("browser manager closed")
}

func (m *BrowserManager) borrow(ctx context.Context) (interface{}, error) {
	return borrowFromPool(ctx, m.pool, m.poolOpts.MaxWait, &m.waiting)
}
