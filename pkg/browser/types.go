package browser

import "fmt"

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config fixes how sessions are launched. It is supplied externally; the
// engine never hardcodes these values.
type Config struct {
	// Headless controls whether the browser runs without a visible window.
	// A pointer so an unset value is distinguishable from an explicit
	// headful request; nil is defaulted to headless.
	Headless *bool

	// Viewport sets the window and viewport size.
	Viewport Viewport

	// LaunchArgs are extra Chromium flags. The defaults carry the
	// sandboxing and IPC flags the flows were recorded with.
	LaunchArgs []string

	// DefaultTimeout is the context-wide default for engine waits, in
	// milliseconds. Individual steps override it with their own budgets.
	DefaultTimeout float64
}

// Default values for session acquisition.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultTimeoutMs      = 5000.0
)

// DefaultConfig returns the fixed launch configuration: headless Chromium,
// container-safe shared memory, host IPC, single process.
func DefaultConfig() Config {
	return Config{
		Headless: Bool(true),
		Viewport: Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		LaunchArgs: []string{
			"--disable-dev-shm-usage",
			"--ipc=host",
			"--single-process",
		},
		DefaultTimeout: DefaultTimeoutMs,
	}
}

// launchArgs returns the full flag list, including the window size derived
// from the viewport.
func (c Config) launchArgs() []string {
	args := make([]string, 0, len(c.LaunchArgs)+1)
	args = append(args, fmt.Sprintf("--window-size=%d,%d", c.Viewport.Width, c.Viewport.Height))
	args = append(args, c.LaunchArgs...)
	return args
}

// Bool returns a pointer to b, for setting Config.Headless.
func Bool(b bool) *bool { return &b }

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Headless == nil {
		c.Headless = def.Headless
	}
	if c.Viewport.Width == 0 {
		c.Viewport.Width = def.Viewport.Width
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = def.Viewport.Height
	}
	if c.LaunchArgs == nil {
		c.LaunchArgs = def.LaunchArgs
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = def.DefaultTimeout
	}
	return c
}
