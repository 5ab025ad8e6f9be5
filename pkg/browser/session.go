package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/flowprobe/pkg/logging"
	"github.com/entrhq/flowprobe/pkg/runner"
)

// visibilityPollInterval is how often frame sets are re-scanned while
// waiting for a selector to become visible.
const visibilityPollInterval = 250 * time.Millisecond

// Session wraps one browser, context, and page as the exclusive property of
// a single scenario run. It implements both the runner's Session lifecycle
// and its Page capability.
//
// Frame handles are never cached: every lookup walks Page.Frames() fresh,
// because a navigation invalidates the previous frame identities.
type Session struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	log     *logging.Logger

	releaseOnce sync.Once
}

var (
	_ runner.Session = (*Session)(nil)
	_ runner.Page    = (*Session)(nil)
)

func newSession(b playwright.Browser, ctx playwright.BrowserContext, page playwright.Page, log *logging.Logger) *Session {
	return &Session{browser: b, context: ctx, page: page, log: log}
}

// Page returns the session's page capability.
func (s *Session) Page() runner.Page { return s }

// Release closes page, context, and browser in reverse-acquisition order.
// Each stage's error is swallowed and logged so a failure closing the
// context never prevents closing the browser. Release is idempotent.
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		if err := s.page.Close(); err != nil {
			s.log.Warnf("failed to close page: %v", err)
		}
		if err := s.context.Close(); err != nil {
			s.log.Warnf("failed to close context: %v", err)
		}
		if err := s.browser.Close(); err != nil {
			s.log.Warnf("failed to close browser: %v", err)
		}
		s.log.Debugf("session released")
	})
}

// Goto navigates to url waiting only for the network commit, not the full
// load, so slow third-party resources cannot stall a scenario.
func (s *Session) Goto(url string, timeoutMs float64) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateCommit,
		Timeout:   playwright.Float(timeoutMs),
	})
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// WaitReady waits for domcontentloaded on the page and then on each frame,
// all within the same budget. Expiry on any of them is reported but the
// page is left in whatever state it reached; callers proceed regardless.
func (s *Session) WaitReady(timeoutMs float64) error {
	var lastErr error

	if err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: playwright.Float(timeoutMs),
	}); err != nil {
		lastErr = err
	}

	for _, frame := range s.page.Frames() {
		if err := frame.WaitForLoadState(playwright.FrameWaitForLoadStateOptions{
			State:   playwright.LoadStateDomcontentloaded,
			Timeout: playwright.Float(timeoutMs),
		}); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Scroll issues a relative mouse-wheel scroll.
func (s *Session) Scroll(deltaX, deltaY float64) error {
	if err := s.page.Mouse().Wheel(deltaX, deltaY); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	return nil
}

// InnerHeight reads the live viewport height from the page.
func (s *Session) InnerHeight() (float64, error) {
	result, err := s.page.Evaluate("() => window.innerHeight")
	if err != nil {
		return 0, fmt.Errorf("failed to read viewport height: %w", err)
	}
	switch v := result.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("unexpected viewport height value %T", result)
	}
}

// IsVisible polls the page's frames for a visible match of selector until
// the timeout elapses. Timeout means false, never an error; per-frame lookup
// errors are ignored because frames detach mid-navigation and are looked up
// fresh on the next poll.
func (s *Session) IsVisible(selector string, timeoutMs float64) (bool, error) {
	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	for {
		for _, frame := range s.page.Frames() {
			visible, err := frame.Locator(selector).First().IsVisible()
			if err != nil {
				continue
			}
			if visible {
				return true, nil
			}
		}
		if !time.Now().Before(deadline) {
			return false, nil
		}
		time.Sleep(visibilityPollInterval)
	}
}

// Fill types value into the first visible match of selector.
func (s *Session) Fill(selector, value string, timeoutMs float64) error {
	locator, err := s.locate(selector, timeoutMs)
	if err != nil {
		return err
	}
	if err := locator.Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(timeoutMs),
	}); err != nil {
		return fmt.Errorf("fill %s failed: %w", selector, err)
	}
	return nil
}

// Click clicks the first visible match of selector.
func (s *Session) Click(selector string, timeoutMs float64) error {
	locator, err := s.locate(selector, timeoutMs)
	if err != nil {
		return err
	}
	if err := locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(timeoutMs),
	}); err != nil {
		return fmt.Errorf("click %s failed: %w", selector, err)
	}
	return nil
}

// locate finds the first frame with a visible match for selector, scanning
// the frame set fresh on each poll.
func (s *Session) locate(selector string, timeoutMs float64) (playwright.Locator, error) {
	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	for {
		for _, frame := range s.page.Frames() {
			locator := frame.Locator(selector).First()
			visible, err := locator.IsVisible()
			if err != nil {
				continue
			}
			if visible {
				return locator, nil
			}
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("timeout: no visible match for %s within %.0fms", selector, timeoutMs)
		}
		time.Sleep(visibilityPollInterval)
	}
}
