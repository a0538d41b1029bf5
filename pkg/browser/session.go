package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/meetbot/pkg/meeting"
)

// Session represents an active browser session with its associated
// resources: one browser, one isolated context, one page.
type Session struct {
	// Name is the unique identifier for this session.
	Name string

	// Browser is the Playwright browser instance.
	Browser playwright.Browser

	// Context is the browser context (isolated session).
	Context playwright.BrowserContext

	// Page is the page the meeting client runs in.
	Page playwright.Page

	// Headless indicates whether the browser runs without a window.
	Headless bool

	// CreatedAt is when the session was created.
	CreatedAt time.Time
}

// MeetingPage adapts the session's page to the capability set the join
// engine consumes.
func (s *Session) MeetingPage() meeting.Page {
	return &pageTarget{page: s.Page}
}
