package browser

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/flowprobe/pkg/logging"
	"github.com/entrhq/flowprobe/pkg/runner"
)

// Manager owns the process-wide playwright driver and acquires isolated
// sessions from it. Each acquired Session is the exclusive triple of one
// browser process, one context, and one page; sessions are never shared
// between concurrent scenario runs.
type Manager struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	cfg         Config
	log         *logging.Logger
	initialized bool
}

// Manager is the production session provider for the scenario runner.
var _ runner.SessionProvider = (*Manager)(nil)

// NewManager creates a manager with the given launch configuration.
func NewManager(cfg Config, log *logging.Logger) *Manager {
	return &Manager{cfg: cfg.withDefaults(), log: log}
}

// Initialize installs and starts the playwright driver. Must be called once
// before Acquire. Driver output is discarded so it cannot pollute the
// reporting stream.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.pw = pw
	m.initialized = true
	m.log.Infof("playwright driver started")
	return nil
}

// Acquire launches a browser and wraps one fresh context and page into a
// Session. Partially acquired resources are closed in reverse order when a
// later stage fails, so a failed acquisition leaks nothing.
func (m *Manager) Acquire(ctx context.Context) (runner.Session, error) {
	m.mu.Lock()
	pw := m.pw
	initialized := m.initialized
	m.mu.Unlock()

	if !initialized {
		return nil, fmt.Errorf("session manager not initialized")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("session acquisition cancelled: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: m.cfg.Headless,
		Args:     m.cfg.launchArgs(),
	}
	b, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.cfg.Viewport.Width,
			Height: m.cfg.Viewport.Height,
		},
	}
	browserCtx, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	browserCtx.SetDefaultTimeout(m.cfg.DefaultTimeout)

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(m.cfg.DefaultTimeout)

	m.log.Debugf("session acquired (headless=%v viewport=%dx%d)",
		*m.cfg.Headless, m.cfg.Viewport.Width, m.cfg.Viewport.Height)

	return newSession(b, browserCtx, page, m.log), nil
}

// Shutdown stops the playwright driver. Sessions must have been released by
// their owners first; the driver itself holds no per-scenario state.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.pw == nil {
		return nil
	}
	if err := m.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	m.pw = nil
	m.initialized = false
	m.log.Infof("playwright driver stopped")
	return nil
}
