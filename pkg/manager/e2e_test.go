package manager_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/playpool/pkg/behavior"
	"github.com/entrhq/playpool/pkg/config"
	"github.com/entrhq/playpool/pkg/manager"
)

// These tests launch real Chromium processes and are gated behind
// PLAYPOOL_E2E=1. The first run downloads browser binaries.

func requireE2E(t *testing.T) {
	t.Helper()
	if os.Getenv("PLAYPOOL_E2E") == "" {
		t.Skip("set PLAYPOOL_E2E=1 to run browser tests")
	}
}

const blankPage = "data:text/html,<html><body><p>hello</p></body></html>"

func TestE2EExecuteRunsBody(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	m := manager.NewBrowserManager(ctx, nil, 1)
	defer m.Close(ctx)

	var title interface{}
	err := m.Execute(ctx, func(page playwright.Page) error {
		if _, err := page.Goto(blankPage); err != nil {
			return err
		}
		var err error
		title, err = page.Evaluate("() => document.body.textContent")
		return err
	})
	require.NoError(t, err)
	assert.Contains(t, title, "hello")
}

func TestE2ECustomScriptsRunInOrder(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	cfg := config.New()
	cfg.CustomInitScripts = []string{
		"window.__trace = ['step1'];",
		"window.__trace.push('step2');",
		"window.__trace.push('step3');",
	}
	m := manager.NewBrowserManager(ctx, cfg, 1)
	defer m.Close(ctx)

	err := m.Execute(ctx, func(page playwright.Page) error {
		if _, err := page.Goto(blankPage); err != nil {
			return err
		}
		trace, err := page.Evaluate("() => window.__trace.join('_')")
		if err != nil {
			return err
		}
		if trace != "step1_step2_step3" {
			return fmt.Errorf("unexpected trace %v", trace)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestE2EStealthHidesWebdriver(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	probe := func(t *testing.T, cfg *config.Config) interface{} {
		t.Helper()
		m := manager.NewBrowserManager(ctx, cfg, 1)
		defer m.Close(ctx)

		var webdriver interface{}
		err := m.Execute(ctx, func(page playwright.Page) error {
			if _, err := page.Goto(blankPage); err != nil {
				return err
			}
			var err error
			webdriver, err = page.Evaluate("() => navigator.webdriver")
			return err
		})
		require.NoError(t, err)
		return webdriver
	}

	t.Run("disabled leaves the flag visible", func(t *testing.T) {
		cfg := config.New()
		cfg.StealthMode = config.StealthDisabled
		cfg.DisableAutomationControlled = false
		assert.Equal(t, true, probe(t, cfg))
	})

	t.Run("light hides the flag", func(t *testing.T) {
		cfg := config.New()
		cfg.StealthMode = config.StealthLight
		assert.NotEqual(t, true, probe(t, cfg))
	})
}

func TestE2EPoolExhaustionTimesOut(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	opts := config.BrowserPoolOptions(1)
	opts.MaxWait = 500 * time.Millisecond
	m := manager.NewBrowserManager(ctx, nil, 1, manager.WithPoolOptions(opts))
	defer m.Close(ctx)

	holding := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = m.Execute(ctx, func(page playwright.Page) error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding
	err := m.Execute(ctx, func(page playwright.Page) error { return nil })
	assert.ErrorIs(t, err, manager.ErrPoolTimeout)

	close(release)
	wg.Wait()
}

func TestE2EFailedBodyReturnsBrowser(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	m := manager.NewBrowserManager(ctx, nil, 1)
	defer m.Close(ctx)

	boom := errors.New("boom")
	err := m.Execute(ctx, func(page playwright.Page) error { return boom })
	require.ErrorIs(t, err, boom)
	var opErr *manager.OperationError
	require.ErrorAs(t, err, &opErr)

	// The browser must be back in the pool; the next call reuses it.
	require.NoError(t, m.Execute(ctx, func(page playwright.Page) error { return nil }))
	stats := m.Statistics()
	assert.Zero(t, stats.Active)
	assert.Equal(t, uint64(2), stats.Borrowed)
	assert.Equal(t, uint64(2), stats.Returned)
}

func TestE2ESessionsAreIsolated(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	m := manager.NewBrowserManager(ctx, nil, 2)
	defer m.Close(ctx)

	// Two concurrent sessions write the same global; neither may see the
	// other's value.
	check := func(value string) manager.PageFunc {
		return func(page playwright.Page) error {
			if _, err := page.Goto(blankPage); err != nil {
				return err
			}
			if _, err := page.Evaluate(fmt.Sprintf("window.__owner = %q", value)); err != nil {
				return err
			}
			time.Sleep(300 * time.Millisecond)
			got, err := page.Evaluate("() => window.__owner")
			if err != nil {
				return err
			}
			if got != value {
				return fmt.Errorf("session leaked: got %v, want %s", got, value)
			}
			return nil
		}
	}
	require.NoError(t, m.ExecuteAll(ctx, nil, check("a"), check("b")))
}

func TestE2EDriverManagerBatch(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	m := manager.New(ctx, 2)
	defer m.Close(ctx)

	body := func(page playwright.Page) error {
		_, err := page.Goto(blankPage)
		return err
	}
	require.NoError(t, m.ExecuteBatch(ctx, nil, body, body, body))
	assert.Contains(t, m.PoolStatus(), "Active: 0")
}

func TestE2EBehaviorSimulation(t *testing.T) {
	requireE2E(t)
	ctx := context.Background()

	m := manager.NewBrowserManager(ctx, nil, 1)
	defer m.Close(ctx)

	err := m.Execute(ctx, func(page playwright.Page) error {
		if _, err := page.Goto(blankPage); err != nil {
			return err
		}
		start := time.Now()
		behavior.Simulate(ctx, page, behavior.Quick)
		elapsed := time.Since(start)
		if elapsed > 5*time.Second {
			return fmt.Errorf("quick simulation took %v", elapsed)
		}
		return nil
	})
	require.NoError(t, err)
}
