package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/flowprobe/pkg/browser"
	"github.com/entrhq/flowprobe/pkg/runner"
)

// Timeouts are the default budgets, in milliseconds, applied when a step or
// assertion carries none of its own.
type Timeouts struct {
	// Session is the context-wide engine default.
	Session float64 `yaml:"session_ms"`

	// Step bounds locator resolution and element actions.
	Step float64 `yaml:"step_ms"`

	// Navigation bounds the network-commit wait of a navigation.
	Navigation float64 `yaml:"navigation_ms"`

	// Settle bounds the best-effort content-ready wait after navigation.
	Settle float64 `yaml:"settle_ms"`

	// Assertion bounds the final gate. Kept shorter than step budgets.
	Assertion float64 `yaml:"assertion_ms"`
}

// Config is the externally supplied configuration surface: target base URL,
// timeout defaults, and browser launch shape. Nothing here is owned by the
// engine core.
type Config struct {
	BaseURL     string           `yaml:"base_url"`
	Headless    bool             `yaml:"headless"`
	Viewport    browser.Viewport `yaml:"viewport"`
	LaunchArgs  []string         `yaml:"launch_args"`
	Timeouts    Timeouts         `yaml:"timeouts"`
	Parallelism int              `yaml:"parallelism"`
}

// Default returns the configuration the recorded flows were captured with.
func Default() Config {
	bc := browser.DefaultConfig()
	return Config{
		BaseURL:    "http://localhost:3000",
		Headless:   true,
		Viewport:   bc.Viewport,
		LaunchArgs: bc.LaunchArgs,
		Timeouts: Timeouts{
			Session:    browser.DefaultTimeoutMs,
			Step:       5000,
			Navigation: 10000,
			Settle:     3000,
			Assertion:  3000,
		},
		Parallelism: 1,
	}
}

// Load reads a YAML config file over the defaults. A missing path returns
// the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from FLOWPROBE_* environment variables, which
// win over the file but lose to explicit flags.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FLOWPROBE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("FLOWPROBE_HEADLESS"); v != "" {
		if headless, err := strconv.ParseBool(v); err == nil {
			c.Headless = headless
		}
	}
	if v := os.Getenv("FLOWPROBE_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Parallelism = n
		}
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	t := c.Timeouts
	for name, v := range map[string]float64{
		"session_ms":    t.Session,
		"step_ms":       t.Step,
		"navigation_ms": t.Navigation,
		"settle_ms":     t.Settle,
		"assertion_ms":  t.Assertion,
	} {
		if v < 0 {
			return fmt.Errorf("timeouts.%s must not be negative", name)
		}
	}
	return nil
}

// BrowserConfig maps the config onto the session launch shape.
func (c Config) BrowserConfig() browser.Config {
	return browser.Config{
		Headless:       browser.Bool(c.Headless),
		Viewport:       c.Viewport,
		LaunchArgs:     c.LaunchArgs,
		DefaultTimeout: c.Timeouts.Session,
	}
}

// RunnerDefaults maps the config onto the executor's timeout budgets.
func (c Config) RunnerDefaults() runner.Defaults {
	return runner.Defaults{
		StepTimeout:   c.Timeouts.Step,
		NavTimeout:    c.Timeouts.Navigation,
		SettleTimeout: c.Timeouts.Settle,
		AssertTimeout: c.Timeouts.Assertion,
	}
}
