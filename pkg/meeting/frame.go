package meeting

import (
	"strings"
	"time"

	"github.com/entrhq/meetbot/pkg/logging"
)

// FrameResolver locates the embedded frame hosting a meeting client and
// caches it. The cached frame is reused until the page reports it
// detached, at which point resolution runs again: a bounded poll over
// the page's frames for one whose URL matches the configured pattern,
// falling back to the top-level page with a warning when none appears
// in time.
type FrameResolver struct {
	page         Page
	urlPattern   string
	timeout      time.Duration
	pollInterval time.Duration
	log          *logging.Logger

	cached Frame
}

// NewFrameResolver creates a resolver matching frames whose URL
// contains urlPattern, polling for at most timeout.
func NewFrameResolver(page Page, urlPattern string, timeout time.Duration, log *logging.Logger) *FrameResolver {
	return &FrameResolver{
		page:         page,
		urlPattern:   urlPattern,
		timeout:      timeout,
		pollInterval: 250 * time.Millisecond,
		log:          log,
	}
}

// Target returns the DOM target to evaluate selectors against: the
// cached frame when still attached, a freshly resolved one otherwise,
// or the page itself as a last resort.
func (r *FrameResolver) Target() (DOMTarget, error) {
	if r.cached != nil && !r.cached.IsDetached() {
		return r.cached, nil
	}
	r.cached = nil

	deadline := time.Now().Add(r.timeout)
	for {
		if f := r.find(); f != nil {
			r.cached = f
			r.log.Debugf("resolved meeting frame %s", f.URL())
			return f, nil
		}
		if !time.Now().Before(deadline) {
			break
		}
		time.Sleep(r.pollInterval)
	}

	r.log.Warnf("no frame matching %q within %s, falling back to the top-level page", r.urlPattern, r.timeout)
	return r.page, nil
}

func (r *FrameResolver) find() Frame {
	for _, f := range r.page.Frames() {
		if f.IsDetached() {
			continue
		}
		if strings.Contains(f.URL(), r.urlPattern) {
			return f
		}
	}
	return nil
}
