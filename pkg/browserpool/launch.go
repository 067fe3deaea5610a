package browserpool

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/playpool/pkg/config"
)

var (
	installOnce sync.Once
	installErr  error
)

// runOptions silences the driver's own output so it cannot interleave with
// the host application's logging.
func runOptions() *playwright.RunOptions {
	return &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
}

// ensureInstalled downloads the Playwright driver and browsers on first use.
// Subsequent calls return the cached outcome.
func ensureInstalled() error {
	installOnce.Do(func() {
		installErr = playwright.Install(runOptions())
	})
	if installErr != nil {
		return fmt.Errorf("failed to install playwright: %w", installErr)
	}
	return nil
}

// StartDriver installs (once) and starts a new Playwright driver process.
func StartDriver() (*playwright.Playwright, error) {
	if err := ensureInstalled(); err != nil {
		return nil, err
	}
	driver, err := playwright.Run(runOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright driver: %w", err)
	}
	return driver, nil
}

// Launch starts a Chromium browser from the given driver using the launch
// options derived from cfg. A nil cfg uses the defaults.
func Launch(driver *playwright.Playwright, cfg *config.Config) (playwright.Browser, error) {
	if cfg == nil {
		cfg = config.New()
	}
	browser, err := driver.Chromium.Launch(cfg.LaunchOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return browser, nil
}
