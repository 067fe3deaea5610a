// Package browserpool supplies the object-pool factories that create,
// validate, and destroy pooled Playwright resources.
//
// Two factories are provided:
//
//  1. DriverFactory pools bare Playwright driver processes. A driver is the
//     creator/owner of everything it launches; stopping it cascades.
//  2. BrowserFactory pools launched browsers. Each browser is backed by its
//     own driver process, and the factory keeps a browser→driver
//     association so that destroying a browser also stops the driver that
//     owns it. The association is instance-scoped and keyed by a stable
//     UUID, so two factories never interfere and a destroyed entry cannot
//     alias a recreated one.
//
// Both factories implement the go-commons-pool PooledObjectFactory contract
// and are driven entirely by the pooling container: creation on pool miss,
// validation on borrow or during idle sweeps, destruction on eviction or
// invalidation. Validation never fails hard; any probe error reads as
// "invalid" and the container replaces the resource. Destruction never
// propagates errors; failures are logged and swallowed so a broken browser
// can never wedge the pool.
package browserpool
