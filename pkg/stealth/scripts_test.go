package stealth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/playpool/pkg/config"
)

func TestScriptFor(t *testing.T) {
	tests := []struct {
		mode config.StealthMode
		want string
	}{
		{config.StealthDisabled, ""},
		{config.StealthLight, LightScript},
		{config.StealthFull, FullScript},
		{config.StealthMode("bogus"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, ScriptFor(tt.mode))
		})
	}
}

func TestLightScriptPatchesBasics(t *testing.T) {
	for _, marker := range []string{"'webdriver'", "'languages'", "'platform'"} {
		assert.Contains(t, LightScript, marker)
	}
	// Light stays light: no plugin or fingerprint machinery.
	assert.NotContains(t, LightScript, "plugins")
	assert.NotContains(t, LightScript, "WebGL")
	assert.NotContains(t, LightScript, "AudioContext")
}

func TestFullScriptIsSupersetOfLight(t *testing.T) {
	// Every property the light script patches is patched by the full one.
	for _, marker := range []string{"'webdriver'", "'languages'", "'platform'"} {
		assert.Contains(t, FullScript, marker)
	}

	// Plus the heavyweight patches.
	for _, marker := range []string{
		"'plugins'",
		"'mimeTypes'",
		"'hardwareConcurrency'",
		"'deviceMemory'",
		"WebGLRenderingContext",
		"AudioContext",
		"navigator.permissions",
		"chrome.runtime",
	} {
		assert.Contains(t, FullScript, marker)
	}
}

func TestScriptsAreBalanced(t *testing.T) {
	// A truncated constant would silently break injection; sanity-check the
	// brace balance of both bodies.
	for name, script := range map[string]string{"light": LightScript, "full": FullScript} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, strings.Count(script, "{"), strings.Count(script, "}"))
			assert.Equal(t, strings.Count(script, "("), strings.Count(script, ")"))
		})
	}
}
