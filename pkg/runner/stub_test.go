package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/flowprobe/pkg/logging"
)

// stubPage scripts engine behavior for tests. Every operation is recorded
// so tests can assert ordering.
type stubPage struct {
	mu    sync.Mutex
	calls []string

	visible   map[string]bool  // selector -> immediately visible
	gotoErrs  map[string]error // url -> navigation error
	readyErr  error
	scrollErr error
	fillErr   error
	clickErr  error

	visibleErr      error         // engine breakage during visibility checks
	visibleDelay    time.Duration // wall time consumed by each visibility check
	visibleTimeouts []float64     // timeout budget passed to each check, in order

	innerHeight float64

	// failAtCall injects an engine fault at the Nth recorded operation
	// (1-based). Zero disables injection.
	failAtCall int
}

func newStubPage() *stubPage {
	return &stubPage{
		visible:     make(map[string]bool),
		gotoErrs:    make(map[string]error),
		innerHeight: 720,
	}
}

var errInjected = errors.New("injected engine fault")

func (p *stubPage) record(op string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, op)
	if p.failAtCall > 0 && len(p.calls) == p.failAtCall {
		return errInjected
	}
	return nil
}

func (p *stubPage) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}

func (p *stubPage) Goto(url string, timeoutMs float64) error {
	if err := p.record("goto " + url); err != nil {
		return err
	}
	return p.gotoErrs[url]
}

func (p *stubPage) WaitReady(timeoutMs float64) error {
	if err := p.record("ready"); err != nil {
		return err
	}
	return p.readyErr
}

func (p *stubPage) Scroll(dx, dy float64) error {
	if err := p.record(fmt.Sprintf("scroll %.0f,%.0f", dx, dy)); err != nil {
		return err
	}
	return p.scrollErr
}

func (p *stubPage) InnerHeight() (float64, error) {
	if err := p.record("innerHeight"); err != nil {
		return 0, err
	}
	return p.innerHeight, nil
}

func (p *stubPage) IsVisible(selector string, timeoutMs float64) (bool, error) {
	p.mu.Lock()
	p.visibleTimeouts = append(p.visibleTimeouts, timeoutMs)
	p.mu.Unlock()
	if err := p.record("visible? " + selector); err != nil {
		return false, err
	}
	if p.visibleDelay > 0 {
		time.Sleep(p.visibleDelay)
	}
	if p.visibleErr != nil {
		return false, p.visibleErr
	}
	return p.visible[selector], nil
}

func (p *stubPage) Fill(selector, value string, timeoutMs float64) error {
	if err := p.record("fill " + selector); err != nil {
		return err
	}
	return p.fillErr
}

func (p *stubPage) Click(selector string, timeoutMs float64) error {
	if err := p.record("click " + selector); err != nil {
		return err
	}
	return p.clickErr
}

// stubSession counts releases so tests can prove exactly-once teardown.
type stubSession struct {
	page     *stubPage
	released int
}

func (s *stubSession) Page() Page { return s.page }
func (s *stubSession) Release() { s.released++ }

// stubProvider hands out a fixed session or a fixed acquisition error.
type stubProvider struct {
	session *stubSession
	err     error
}

func (p *stubProvider) Acquire(ctx context.Context) (Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

func testLogger() *logging.Logger {
	log, _ := logging.NewLogger("test")
	return log
}

var testDefaults = Defaults{
	StepTimeout:   50,
	NavTimeout:    50,
	SettleTimeout: 10,
	AssertTimeout: 50,
}

func newTestRunner(provider SessionProvider) *ScenarioRunner {
	log := testLogger()
	return NewScenarioRunner(
		provider,
		NewStepExecutor("http://localhost:3000", testDefaults, NewFallbackNavigator(log), log),
		NewEvaluator(testDefaults, log),
		log,
	)
}
