package config

import "fmt"

// StealthMode selects which built-in anti-detection script, if any, is
// injected into every execution session's page.
type StealthMode string

const (
	// StealthDisabled injects nothing.
	StealthDisabled StealthMode = "disabled"

	// StealthLight patches the basic automation markers (webdriver flag,
	// languages, platform). Fast and sufficient for most sites.
	StealthLight StealthMode = "light"

	// StealthFull additionally fakes plugins, mime types, hardware
	// characteristics, WebGL, audio fingerprints, and the chrome object.
	// Use against heavily instrumented sites.
	StealthFull StealthMode = "full"
)

// Enabled reports whether any stealth script is injected.
func (m StealthMode) Enabled() bool { return m == StealthLight || m == StealthFull }

// Light reports whether the light script is selected.
func (m StealthMode) Light() bool { return m == StealthLight }

// Full reports whether the full script is selected.
func (m StealthMode) Full() bool { return m == StealthFull }

// UnmarshalYAML validates the mode; an empty value falls back to light.
func (m *StealthMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch mode := StealthMode(s); mode {
	case StealthDisabled, StealthLight, StealthFull:
		*m = mode
	case "":
		*m = StealthLight
	default:
		return fmt.Errorf("unknown stealth mode %q", s)
	}
	return nil
}
