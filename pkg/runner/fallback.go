package runner

import (
	"github.com/entrhq/flowprobe/pkg/logging"
)

// FallbackNavigator resolves the first actionable target among ordered
// alternatives. It models best-effort discovery of UI entry points when the
// exact markup is unknown: the application under test does not guarantee a
// stable page structure, so scenarios author candidate selectors and routes
// instead of exact ones.
//
// Ordering is strictly the authored order, never randomized, so a resolution
// is reproducible across runs.
type FallbackNavigator struct {
	log *logging.Logger
}

// NewFallbackNavigator creates a navigator logging through log.
func NewFallbackNavigator(log *logging.Logger) *FallbackNavigator {
	return &FallbackNavigator{log: log}
}

// Resolve returns the first selector among primary followed by alternatives
// that matches a visible element within its own timeout. The boolean is
// false only after every candidate has been exhausted; that NotFound result
// is not itself fatal — the caller decides whether to keep exploring.
func (n *FallbackNavigator) Resolve(page Page, primary string, alternatives []string, timeoutMs float64) (string, bool, *EngineError) {
	candidates := make([]string, 0, len(alternatives)+1)
	candidates = append(candidates, primary)
	candidates = append(candidates, alternatives...)

	for _, selector := range candidates {
		visible, err := page.IsVisible(selector, timeoutMs)
		if err != nil {
			return "", false, newError(KindUnexpectedEngine, "resolve "+selector, err)
		}
		if visible {
			if selector != primary {
				n.log.Debugf("selector %q not actionable, resolved fallback %q", primary, selector)
			}
			return selector, true, nil
		}
		n.log.Debugf("selector %q not visible within %.0fms", selector, timeoutMs)
	}
	return "", false, nil
}

// Navigate tries the primary route and then each fallback route in order,
// returning after the first navigation the engine accepts. All routes
// exhausted is reported as a step timeout on the last route, since that is
// what the engine observed.
func (n *FallbackNavigator) Navigate(page Page, url string, fallbacks []string, timeoutMs float64) *EngineError {
	routes := make([]string, 0, len(fallbacks)+1)
	routes = append(routes, url)
	routes = append(routes, fallbacks...)

	var lastErr *EngineError
	for _, route := range routes {
		err := page.Goto(route, timeoutMs)
		if err == nil {
			if route != url {
				n.log.Infof("primary route %q unavailable, landed on fallback %q", url, route)
			}
			return nil
		}
		lastErr = classifyStep("goto "+route, err)
		if lastErr.Kind == KindUnexpectedEngine {
			return lastErr
		}
		n.log.Debugf("navigation to %q failed: %v", route, err)
	}
	return lastErr
}
