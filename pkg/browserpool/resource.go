package browserpool

import (
	"sync"

	"github.com/playwright-community/playwright-go"
)

// PooledBrowser is the pooled resource handed out by a browser pool: a live
// browser plus the stable identity the factory uses to find its owning
// driver at destroy time.
type PooledBrowser struct {
	// ID is assigned at creation and never changes. It keys the
	// browser→driver association.
	ID string

	// Browser is the underlying Playwright browser.
	Browser playwright.Browser
}

// driverRegistry is the browser→driver association map. It is shared by
// every callback of one factory instance and accessed concurrently by
// borrowing goroutines and the container's eviction goroutine.
type driverRegistry struct {
	mu      sync.RWMutex
	drivers map[string]*playwright.Playwright
}

func newDriverRegistry() *driverRegistry {
	return &driverRegistry{drivers: make(map[string]*playwright.Playwright)}
}

func (r *driverRegistry) put(id string, driver *playwright.Playwright) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[id] = driver
}

func (r *driverRegistry) get(id string) (*playwright.Playwright, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	driver, ok := r.drivers[id]
	return driver, ok
}

// remove deletes the entry for id. Removing an absent entry is a no-op, so
// a second destroy of the same resource stays safe.
func (r *driverRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drivers, id)
}

func (r *driverRegistry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.drivers)
}
