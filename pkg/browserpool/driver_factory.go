package browserpool

import (
	"context"
	"fmt"
	"sync/atomic"

	pool "github.com/jolestar/go-commons-pool/v2"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// DriverFactory creates and destroys pooled Playwright driver processes.
// Drivers are heavyweight (a node process plus browser bookkeeping), so the
// pool keeps them warm between one-shot browser launches.
type DriverFactory struct {
	log *zap.Logger

	created   atomic.Uint64
	destroyed atomic.Uint64
}

var _ pool.PooledObjectFactory = (*DriverFactory)(nil)

// NewDriverFactory returns a driver factory. A nil logger discards.
func NewDriverFactory(log *zap.Logger) *DriverFactory {
	if log == nil {
		log = zap.NewNop()
	}
	return &DriverFactory{log: log}
}

// MakeObject starts a new driver process.
func (f *DriverFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	driver, err := StartDriver()
	if err != nil {
		return nil, fmt.Errorf("driver creation failed: %w", err)
	}
	f.created.Add(1)
	f.log.Debug("driver started")
	return pool.NewPooledObject(driver), nil
}

// DestroyObject stops the driver. Stop errors are logged and swallowed so
// destruction can never stall the pool.
func (f *DriverFactory) DestroyObject(ctx context.Context, object *pool.PooledObject) error {
	driver, ok := object.Object.(*playwright.Playwright)
	if !ok {
		return nil
	}
	if err := driver.Stop(); err != nil {
		f.log.Warn("error stopping driver", zap.Error(err))
	}
	f.destroyed.Add(1)
	f.log.Debug("driver stopped")
	return nil
}

// ValidateObject always passes; a driver process has no cheap liveness
// probe, and launch failures surface on use instead.
func (f *DriverFactory) ValidateObject(ctx context.Context, object *pool.PooledObject) bool {
	return true
}

// ActivateObject is a no-op.
func (f *DriverFactory) ActivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

// PassivateObject is a no-op.
func (f *DriverFactory) PassivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

// Created reports how many drivers this factory has started.
func (f *DriverFactory) Created() uint64 { return f.created.Load() }

// Destroyed reports how many drivers this factory has stopped.
func (f *DriverFactory) Destroyed() uint64 { return f.destroyed.Load() }
