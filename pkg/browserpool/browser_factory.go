package browserpool

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	pool "github.com/jolestar/go-commons-pool/v2"
	"go.uber.org/zap"

	"github.com/entrhq/playpool/pkg/config"
)

// BrowserFactory creates, validates, and destroys pooled browsers for a
// go-commons-pool ObjectPool. Every browser gets its own driver process;
// the factory records the association so destroy can stop the driver and
// let the close cascade to the browser and everything below it.
type BrowserFactory struct {
	cfg      *config.Config
	log      *zap.Logger
	registry *driverRegistry

	created   atomic.Uint64
	destroyed atomic.Uint64
}

var _ pool.PooledObjectFactory = (*BrowserFactory)(nil)

// NewBrowserFactory returns a factory launching browsers per cfg. A nil cfg
// uses the defaults; a nil logger discards.
func NewBrowserFactory(cfg *config.Config, log *zap.Logger) *BrowserFactory {
	if cfg == nil {
		cfg = config.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BrowserFactory{
		cfg:      cfg,
		log:      log,
		registry: newDriverRegistry(),
	}
}

// MakeObject starts a fresh driver, launches a browser from it, and records
// the browser→driver association before the browser becomes pool-visible.
func (f *BrowserFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	driver, err := StartDriver()
	if err != nil {
		return nil, fmt.Errorf("browser creation failed: %w", err)
	}

	browser, err := Launch(driver, f.cfg)
	if err != nil {
		// The half-built driver must not leak.
		if stopErr := driver.Stop(); stopErr != nil {
			f.log.Warn("failed to stop driver after launch failure", zap.Error(stopErr))
		}
		return nil, fmt.Errorf("browser creation failed: %w", err)
	}

	resource := &PooledBrowser{
		ID:      uuid.NewString(),
		Browser: browser,
	}
	f.registry.put(resource.ID, driver)
	f.created.Add(1)

	f.log.Debug("browser created",
		zap.String("browser_id", resource.ID),
		zap.Bool("headless", f.cfg.Headless),
		zap.Strings("args", f.cfg.LaunchArgs()))

	return pool.NewPooledObject(resource), nil
}

// ValidateObject probes the browser cheaply: connectivity flag plus a
// context listing. It never fails hard; any problem reads as invalid and
// the container discards and recreates.
func (f *BrowserFactory) ValidateObject(ctx context.Context, object *pool.PooledObject) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Warn("browser validation panicked, discarding", zap.Any("cause", r))
			ok = false
		}
	}()

	resource, valid := object.Object.(*PooledBrowser)
	if !valid || resource.Browser == nil {
		return false
	}
	if !resource.Browser.IsConnected() {
		f.log.Warn("browser validation failed, will be destroyed and recreated",
			zap.String("browser_id", resource.ID))
		return false
	}
	resource.Browser.Contexts()
	return true
}

// DestroyObject stops the owning driver (cascading the close to the browser
// and all of its contexts), removes the association entry regardless of the
// outcome, and falls back to closing a still-connected browser directly.
// Errors are logged and swallowed; calling destroy twice is safe.
func (f *BrowserFactory) DestroyObject(ctx context.Context, object *pool.PooledObject) error {
	resource, valid := object.Object.(*PooledBrowser)
	if !valid {
		return nil
	}

	driver, found := f.registry.get(resource.ID)
	if found {
		if err := driver.Stop(); err != nil {
			f.log.Warn("error stopping driver", zap.String("browser_id", resource.ID), zap.Error(err))
		}
	}
	f.registry.remove(resource.ID)

	if resource.Browser != nil && resource.Browser.IsConnected() {
		if err := resource.Browser.Close(); err != nil {
			f.log.Warn("error closing browser", zap.String("browser_id", resource.ID), zap.Error(err))
		}
	}

	if found {
		f.destroyed.Add(1)
	}
	f.log.Debug("browser destroyed",
		zap.String("browser_id", resource.ID),
		zap.Int("live_drivers", f.registry.size()))
	return nil
}

// ActivateObject is a no-op; borrowed browsers need no reactivation.
func (f *BrowserFactory) ActivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

// PassivateObject is a no-op; sessions are torn down before return.
func (f *BrowserFactory) PassivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

// Created reports how many browsers this factory has created.
func (f *BrowserFactory) Created() uint64 { return f.created.Load() }

// Destroyed reports how many browsers this factory has destroyed.
func (f *BrowserFactory) Destroyed() uint64 { return f.destroyed.Load() }

// LiveDrivers reports the current size of the browser→driver association.
func (f *BrowserFactory) LiveDrivers() int { return f.registry.size() }
