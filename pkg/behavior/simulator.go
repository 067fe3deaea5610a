// Package behavior simulates human browsing patterns against an active
// page: randomized mouse movement, scrolling, and hovering under a
// human-like delay distribution, bounded by a sampled target duration.
// Every action is read-only — no clicks, key presses, or form submissions —
// so a simulation can be abandoned at any point without leaving the page in
// a changed state.
package behavior

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// minRemaining is the floor below which the loop stops rather than squeeze
// in one more action.
const minRemaining = 50 * time.Millisecond

// maxDelayCap bounds any single inter-action delay regardless of tier.
const maxDelayCap = 800 * time.Millisecond

const (
	defaultWidth  = 1280.0
	defaultHeight = 720.0
	minWidth      = 800.0
	minHeight     = 600.0
)

type safeAction int

const (
	actionMouseMove safeAction = iota
	actionScrollDown
	actionScrollUp
	actionScrollTo
	actionHover
	actionMouseTrack
	actionCount
)

func (a safeAction) String() string {
	switch a {
	case actionMouseMove:
		return "mouse_move"
	case actionScrollDown:
		return "scroll_down"
	case actionScrollUp:
		return "scroll_up"
	case actionScrollTo:
		return "scroll_to"
	case actionHover:
		return "hover"
	case actionMouseTrack:
		return "mouse_track"
	}
	return "unknown"
}

// hoverSelectors are the only elements the hover action touches: plain
// content, never anything interactive.
var hoverSelectors = []string{"p", "div", "span", "h1", "h2", "h3", "h4", "h5", "h6", "img"}

type dimensions struct {
	width  float64
	height float64
}

// Simulate runs a time-boxed loop of randomly chosen read-only interactions
// against page. The loop length is drawn uniformly from the intensity's
// window and fixed up front; action failures are ignored and never abort
// the loop. Cancelling ctx during a delay stops the simulation immediately
// and silently.
//
// A nil page is a no-op. A zero intensity falls back to Normal.
func Simulate(ctx context.Context, page playwright.Page, intensity Intensity) {
	SimulateWithLogger(ctx, page, intensity, nil)
}

// SimulateWithLogger is Simulate with simulation progress logged at debug
// level.
func SimulateWithLogger(ctx context.Context, page playwright.Page, intensity Intensity, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	if page == nil {
		log.Warn("page is nil, skipping behavior simulation")
		return
	}
	if !intensity.valid() {
		intensity = Normal
	}

	target := sampleTarget(intensity)
	deadline := time.Now().Add(target)
	log.Debug("starting behavior simulation",
		zap.String("intensity", intensity.Name),
		zap.Duration("target", target))

	dims := probeDimensions(page)
	actions := 0
	for {
		remaining := time.Until(deadline)
		if remaining < minRemaining {
			break
		}

		action := safeAction(rand.Intn(int(actionCount)))
		if err := executeAction(ctx, page, action, dims); err != nil {
			log.Debug("action failed", zap.Stringer("action", action), zap.Error(err))
		}
		actions++

		remaining = time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if delay := computeDelay(remaining, intensity); delay > 0 {
			if !sleep(ctx, delay) {
				log.Debug("behavior simulation interrupted")
				return
			}
		}
	}

	log.Debug("behavior simulation completed",
		zap.String("intensity", intensity.Name),
		zap.Int("actions", actions))
}

// sampleTarget draws the total duration uniformly from the intensity window.
func sampleTarget(intensity Intensity) time.Duration {
	if intensity.Max == intensity.Min {
		return intensity.Min
	}
	return intensity.Min + time.Duration(rand.Int63n(int64(intensity.Max-intensity.Min)+1))
}

// computeDelay samples the pause before the next action. The delay is
// bounded by half the remaining time and the intensity's ceiling; outside
// the quick tier it follows the natural 60/30/10 distribution.
func computeDelay(remaining time.Duration, intensity Intensity) time.Duration {
	if remaining <= minRemaining {
		return 0
	}
	maxDelay := remaining / 2
	if maxDelay > maxDelayCap {
		maxDelay = maxDelayCap
	}

	ceiling := intensity.delayCeiling
	if ceiling <= 0 {
		ceiling = Normal.delayCeiling
	}

	if intensity.uniformDelay {
		upper := minDuration(maxDelay, ceiling)
		if upper <= 20*time.Millisecond {
			return upper
		}
		return 20*time.Millisecond + time.Duration(rand.Int63n(int64(upper-20*time.Millisecond)))
	}

	floor := 30 * time.Millisecond
	if intensity.delayCeiling >= Thorough.delayCeiling {
		floor = 50 * time.Millisecond
	}
	return naturalDelay(maxDuration(floor, minDuration(maxDelay, ceiling)))
}

// naturalDelay mimics the uneven rhythm of a real user: mostly fast
// operations, sometimes ordinary speed, occasionally a long "thinking"
// pause.
func naturalDelay(max time.Duration) time.Duration {
	if max <= 30*time.Millisecond {
		return max
	}
	third := max / 3
	switch r := rand.Float64(); {
	case r < 0.6:
		return randomBetween(30*time.Millisecond, maxDuration(31*time.Millisecond, third))
	case r < 0.9:
		return randomBetween(third, maxDuration(third+time.Millisecond, 2*third))
	default:
		return randomBetween(2*third, max)
	}
}

func randomBetween(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int63n(int64(hi-lo)))
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// sleep blocks for d or until ctx is done. It reports whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// probeDimensions queries the viewport once per simulation. Failures fall
// back to a common desktop size, and tiny reported sizes are clamped so
// coordinate math stays inside a sane canvas.
func probeDimensions(page playwright.Page) dimensions {
	result, err := page.Evaluate("() => ({width: window.innerWidth, height: window.innerHeight})")
	if err != nil {
		return dimensions{width: defaultWidth, height: defaultHeight}
	}
	return parseDimensions(result)
}

func parseDimensions(result interface{}) dimensions {
	m, ok := result.(map[string]interface{})
	if !ok {
		return dimensions{width: defaultWidth, height: defaultHeight}
	}
	width, wok := toFloat(m["width"])
	height, hok := toFloat(m["height"])
	if !wok || !hok {
		return dimensions{width: defaultWidth, height: defaultHeight}
	}
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	return dimensions{width: width, height: height}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// executeAction performs one safe action. Errors are reported for logging
// only; callers never abort on them.
func executeAction(ctx context.Context, page playwright.Page, action safeAction, dims dimensions) error {
	switch action {
	case actionMouseMove:
		return mouseMove(page, dims)
	case actionScrollDown:
		distance := 100 + rand.Intn(500)
		_, err := page.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", distance))
		return err
	case actionScrollUp:
		distance := 50 + rand.Intn(250)
		_, err := page.Evaluate(fmt.Sprintf("window.scrollBy(0, -%d)", distance))
		return err
	case actionScrollTo:
		position := 0.1 + rand.Float64()*0.8
		_, err := page.Evaluate(fmt.Sprintf("window.scrollTo(0, document.body.scrollHeight * %.3f)", position))
		return err
	case actionHover:
		return hover(page)
	case actionMouseTrack:
		return mouseTrack(ctx, page, dims)
	}
	return nil
}

func mouseMove(page playwright.Page, dims dimensions) error {
	x := 50 + rand.Float64()*(dims.width-100)
	y := 50 + rand.Float64()*(dims.height-100)
	return page.Mouse().Move(x, y)
}

// hover targets the first visible element of a randomly chosen
// non-interactive selector. Pages without a match are simply skipped.
func hover(page playwright.Page) error {
	selector := hoverSelectors[rand.Intn(len(hoverSelectors))]
	first := page.Locator(selector).First()
	visible, err := first.IsVisible()
	if err != nil || !visible {
		return err
	}
	return first.Hover()
}

// mouseTrack moves the cursor along a short natural path of 2–4 points with
// small pauses between them. Cancellation between points stops the track.
func mouseTrack(ctx context.Context, page playwright.Page, dims dimensions) error {
	x := 100 + rand.Float64()*(dims.width-200)
	y := 100 + rand.Float64()*(dims.height-200)

	points := 2 + rand.Intn(3)
	for i := 0; i < points; i++ {
		x = clamp(x+(rand.Float64()*160-80), 50, dims.width-50)
		y = clamp(y+(rand.Float64()*100-50), 50, dims.height-50)
		if err := page.Mouse().Move(x, y); err != nil {
			return err
		}
		pause := time.Duration(20+rand.Intn(60)) * time.Millisecond
		if !sleep(ctx, pause) {
			return nil
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
