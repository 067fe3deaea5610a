// Package config holds the launch, context, and pool configuration shared by
// the playpool managers and factories. A Config describes how a single
// browser is launched and how its execution sessions are prepared; a
// PoolOptions describes how the pooling container behaves.
package config

import (
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is applied to new browser contexts unless the caller
// supplies their own context options.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36"

// Proxy configures an HTTP/HTTPS/SOCKS proxy for launched browsers.
type Proxy struct {
	Server   string `yaml:"server"`
	Bypass   string `yaml:"bypass,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Config describes how browsers are launched and how execution sessions are
// prepared. The zero value is not usable; construct with New and adjust
// fields, or load one from YAML with Load.
type Config struct {
	// DisableAutomationControlled adds --disable-blink-features=AutomationControlled,
	// hiding the most common automation marker.
	DisableAutomationControlled bool `yaml:"disable_automation_controlled"`

	// DisableGPU adds --disable-gpu. Recommended in headless mode.
	DisableGPU bool `yaml:"disable_gpu"`

	// DisableImageRender adds --blink-settings=imagesEnabled=false and
	// speeds up page loads when images are not needed.
	DisableImageRender bool `yaml:"disable_image_render"`

	// StartMaximized adds --start-maximized. Only meaningful headed.
	StartMaximized bool `yaml:"start_maximized"`

	// Headless runs the browser without a visible window.
	Headless bool `yaml:"headless"`

	// ChromiumSandbox enables the Chromium sandbox. Off by default because
	// it fails to start in many container environments.
	ChromiumSandbox bool `yaml:"chromium_sandbox"`

	// StealthMode selects the built-in anti-detection script.
	StealthMode StealthMode `yaml:"stealth_mode"`

	// SlowMo delays every driver operation by the given milliseconds.
	SlowMo *float64 `yaml:"slow_mo,omitempty"`

	// Proxy routes browser traffic through the given proxy.
	Proxy *Proxy `yaml:"proxy,omitempty"`

	// CustomInitScripts are injected into every page after the built-in
	// stealth script, in slice order, and apply to every document the page
	// loads afterwards.
	CustomInitScripts []string `yaml:"custom_init_scripts,omitempty"`

	// ContextOptions overrides the options used for new browser contexts.
	// When nil, sessions ignore HTTPS errors and use DefaultUserAgent.
	ContextOptions *playwright.BrowserNewContextOptions `yaml:"-"`
}

// New returns a Config with the library defaults: headless, GPU and image
// rendering disabled, automation markers hidden, light stealth mode.
func New() *Config {
	return &Config{
		DisableAutomationControlled: true,
		DisableGPU:                  true,
		DisableImageRender:          true,
		Headless:                    true,
		StealthMode:                 StealthLight,
	}
}

// Load reads a YAML file into a Config. Fields absent from the file keep
// the New defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LaunchArgs derives the Chromium argument list from the toggles.
func (c *Config) LaunchArgs() []string {
	var args []string
	if c.DisableImageRender {
		args = append(args, "--blink-settings=imagesEnabled=false")
	}
	if c.DisableAutomationControlled {
		args = append(args, "--disable-blink-features=AutomationControlled")
	}
	if c.DisableGPU {
		args = append(args, "--disable-gpu")
	}
	if c.StartMaximized {
		args = append(args, "--start-maximized")
	}
	return args
}

// LaunchOptions builds the playwright launch options for this Config.
func (c *Config) LaunchOptions() playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Args:            c.LaunchArgs(),
		Headless:        playwright.Bool(c.Headless),
		ChromiumSandbox: playwright.Bool(c.ChromiumSandbox),
	}
	if c.SlowMo != nil {
		opts.SlowMo = playwright.Float(*c.SlowMo)
	}
	if c.Proxy != nil {
		p := &playwright.Proxy{Server: c.Proxy.Server}
		if c.Proxy.Bypass != "" {
			p.Bypass = playwright.String(c.Proxy.Bypass)
		}
		if c.Proxy.Username != "" {
			p.Username = playwright.String(c.Proxy.Username)
		}
		if c.Proxy.Password != "" {
			p.Password = playwright.String(c.Proxy.Password)
		}
		opts.Proxy = p
	}
	return opts
}

// NewContextOptions returns the options used when creating a browser context
// for an execution session. Callers that set ContextOptions get them verbatim.
func (c *Config) NewContextOptions() playwright.BrowserNewContextOptions {
	if c.ContextOptions != nil {
		return *c.ContextOptions
	}
	return playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
		UserAgent:         playwright.String(DefaultUserAgent),
	}
}
