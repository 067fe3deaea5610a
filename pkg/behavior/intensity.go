package behavior

import (
	"fmt"
	"time"
)

// Intensity is a named duration window governing how long a simulation
// runs. The target duration for one Simulate call is drawn uniformly from
// [Min, Max]; the delay ceiling skews how densely actions are packed into
// that window. The zero value is treated as Normal.
type Intensity struct {
	// Name identifies the tier in logs.
	Name string

	// Min and Max bound the sampled target duration.
	Min time.Duration
	Max time.Duration

	// delayCeiling caps a single inter-action delay for this tier.
	delayCeiling time.Duration

	// uniformDelay picks delays uniformly instead of the skewed natural
	// distribution. Only the quick tier does this.
	uniformDelay bool
}

var (
	// Quick finishes in 0.5–1.5 s. Batch processing and smoke checks.
	Quick = Intensity{Name: "quick", Min: 500 * time.Millisecond, Max: 1500 * time.Millisecond, delayCeiling: 150 * time.Millisecond, uniformDelay: true}

	// Normal finishes in 1.5–3 s. The default for ordinary pages.
	Normal = Intensity{Name: "normal", Min: 1500 * time.Millisecond, Max: 3 * time.Second, delayCeiling: 400 * time.Millisecond}

	// Thorough finishes in 3–6 s. Heavily instrumented sites.
	Thorough = Intensity{Name: "thorough", Min: 3 * time.Second, Max: 6 * time.Second, delayCeiling: 600 * time.Millisecond}
)

func (i Intensity) String() string {
	return fmt.Sprintf("%s(%v-%v)", i.Name, i.Min, i.Max)
}

// valid reports whether the window is usable; the zero value is not.
func (i Intensity) valid() bool {
	return i.Max > 0 && i.Min >= 0 && i.Max >= i.Min
}
