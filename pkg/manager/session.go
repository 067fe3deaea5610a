package manager

import (
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/entrhq/playpool/pkg/browserpool"
	"github.com/entrhq/playpool/pkg/config"
	"github.com/entrhq/playpool/pkg/stealth"
)

// PageFunc is the caller-supplied body of an execution: it receives the
// session's page and is invoked exactly once.
type PageFunc func(page playwright.Page) error

// ContextFunc customizes the session's browser context before the page is
// created: grant permissions, set geolocation, add headers, and so on.
type ContextFunc func(ctx playwright.BrowserContext) error

// ExecuteWithDriver runs body against a one-off browser launched from an
// already-open driver, bypassing any pool. The browser lives exactly as
// long as the call.
func ExecuteWithDriver(driver *playwright.Playwright, cfg *config.Config, customize ContextFunc, body PageFunc, log *zap.Logger) error {
	if cfg == nil {
		cfg = config.New()
	}
	if log == nil {
		log = zap.NewNop()
	}

	browser, err := browserpool.Launch(driver, cfg)
	if err != nil {
		return &CreationError{Err: err}
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Warn("failed to close browser", zap.Error(err))
		}
	}()

	return ExecuteWithBrowser(browser, cfg, customize, body, log)
}

// ExecuteWithBrowser runs body inside a fresh execution session on an
// already-open browser: isolated context, optional customizer, new page,
// init scripts in configured order, then the body. The page and context are
// closed on every exit path, in that order, before the call returns; close
// failures are logged and never propagated. Any failure from setup or the
// body comes back as an *OperationError wrapping the cause.
func ExecuteWithBrowser(browser playwright.Browser, cfg *config.Config, customize ContextFunc, body PageFunc, log *zap.Logger) error {
	if cfg == nil {
		cfg = config.New()
	}
	if log == nil {
		log = zap.NewNop()
	}

	browserCtx, err := browser.NewContext(cfg.NewContextOptions())
	if err != nil {
		return &OperationError{Err: err}
	}
	defer func() {
		if err := browserCtx.Close(); err != nil {
			log.Warn("failed to close browser context", zap.Error(err))
		}
	}()

	if customize != nil {
		if err := customize(browserCtx); err != nil {
			return &OperationError{Err: err}
		}
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return &OperationError{Err: err}
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Warn("failed to close page", zap.Error(err))
		}
	}()

	if err := injectInitScripts(page, cfg, log); err != nil {
		return &OperationError{Err: err}
	}

	if err := body(page); err != nil {
		return &OperationError{Err: err}
	}
	return nil
}

// injectInitScripts registers the built-in stealth script (exactly one,
// selected by mode) followed by every custom script in configured order.
// Registered scripts run on every document the page loads afterwards.
func injectInitScripts(page playwright.Page, cfg *config.Config, log *zap.Logger) error {
	if script := stealth.ScriptFor(cfg.StealthMode); script != "" {
		if err := page.AddInitScript(playwright.Script{Content: playwright.String(script)}); err != nil {
			return err
		}
		log.Debug("stealth script injected", zap.String("mode", string(cfg.StealthMode)))
	}

	for i, script := range cfg.CustomInitScripts {
		if err := page.AddInitScript(playwright.Script{Content: playwright.String(script)}); err != nil {
			return err
		}
		log.Debug("custom init script injected",
			zap.Int("index", i),
			zap.Int("chars", len(script)))
	}
	return nil
}
