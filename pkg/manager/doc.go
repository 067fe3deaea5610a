// Package manager provides the pooled execution wrappers at the center of
// playpool. A manager borrows a resource from its pool, opens an isolated
// execution session (browser context plus page), injects the configured
// init scripts in a fixed order, hands the page to the caller's body, and
// guarantees teardown and return of the resource on every exit path.
//
// # Managers
//
// Two managers cover the two reuse strategies:
//
//   - Manager pools driver processes and launches a throwaway browser per
//     call. Cheapest to keep warm; every call pays the launch cost.
//   - BrowserManager pools launched browsers. Calls skip the launch cost;
//     idle browsers are validated and swept in the background.
//
// Both expose the same execution contract. ExecuteWithDriver and
// ExecuteWithBrowser run the identical session procedure against a
// caller-supplied driver or browser, bypassing the pool for one-off use.
//
// # Session procedure
//
// Every execution performs, in order: create context (with the configured
// per-context options), apply the optional context customizer, create the
// page, inject the built-in stealth script selected by stealth mode, inject
// the custom init scripts in configured order, invoke the body. Cleanup is
// unconditional and ordered: close page, close context — each close failure
// is logged and suppressed. Injected scripts apply to every document the
// page loads, not just the first.
//
// # Errors
//
// Setup and body failures come back as *OperationError (cause preserved);
// resource creation failures as *CreationError; a borrow that outlives the
// configured maximum wait as ErrPoolTimeout. Validation and cleanup
// failures never reach the caller. After any failure the pool's accounting
// is consistent: no active entry leaks.
//
// # Example
//
//	m := manager.NewBrowserManager(ctx, config.New(), 5)
//	defer m.Close(ctx)
//
//	err := m.Execute(ctx, func(page playwright.Page) error {
//	    if _, err := page.Goto("https://example.com"); err != nil {
//	        return err
//	    }
//	    behavior.Simulate(ctx, page, behavior.Normal)
//	    title, err := page.Title()
//	    ...
//	})
package manager
