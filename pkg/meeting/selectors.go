package meeting

import (
	"errors"
	"fmt"
	"time"
)

// ClickFirstVisible tries each selector in order against the target and
// clicks the first one that becomes visible within the timeout. It
// returns a handle to the clicked element, or nil when no selector
// matched. Exhausting the list is not itself an error: callers decide
// whether absence is fatal. A click failure on a matched element is.
func ClickFirstVisible(target DOMTarget, selectors []string, timeout time.Duration) (Element, error) {
	for _, sel := range selectors {
		el := target.Element(sel)
		if err := el.WaitVisible(timeout); err != nil {
			continue
		}
		if err := el.Click(); err != nil {
			return nil, fmt.Errorf("click %q: %w", sel, err)
		}
		return el, nil
	}
	return nil, nil
}

// WaitForAny waits for the first selector in the list to become visible
// and returns a handle to it without clicking. Unlike ClickFirstVisible,
// exhausting the list propagates the last failure wrapped in
// ErrElementNotFound.
func WaitForAny(target DOMTarget, selectors []string, timeout time.Duration) (Element, error) {
	var lastErr error
	for _, sel := range selectors {
		el := target.Element(sel)
		if err := el.WaitVisible(timeout); err != nil {
			lastErr = err
			continue
		}
		return el, nil
	}
	if lastErr == nil {
		lastErr = errors.New("empty selector list")
	}
	return nil, fmt.Errorf("%w after trying %d selectors: %v", ErrElementNotFound, len(selectors), lastErr)
}

// AnyVisible reports whether any of the selectors is currently visible,
// probing each without waiting. A probe failure on one selector counts
// as "not found" and the next selector is tried; it never aborts the
// check.
func AnyVisible(target DOMTarget, selectors []string) bool {
	for _, sel := range selectors {
		visible, err := target.Element(sel).IsVisible()
		if err != nil {
			continue
		}
		if visible {
			return true
		}
	}
	return false
}
