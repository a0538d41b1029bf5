package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/meetbot/pkg/meeting"
)

// pageTarget adapts a Playwright page to meeting.Page.
type pageTarget struct {
	page playwright.Page
}

func (p *pageTarget) Element(selector string) meeting.Element {
	// First() keeps multi-match selectors from tripping Playwright's
	// strict-mode violation; ordered selector sets want the first hit.
	return &element{locator: p.page.Locator(selector).First()}
}

func (p *pageTarget) URL() string {
	return p.page.URL()
}

func (p *pageTarget) IsClosed() bool {
	return p.page.IsClosed()
}

func (p *pageTarget) Frames() []meeting.Frame {
	frames := p.page.Frames()
	out := make([]meeting.Frame, 0, len(frames))
	for _, f := range frames {
		out = append(out, &frameTarget{frame: f})
	}
	return out
}

func (p *pageTarget) Navigate(url string) error {
	waitUntil := playwright.WaitUntilStateDomcontentloaded
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntil,
	})
	return err
}

func (p *pageTarget) GrantPermissions(permissions []string, origin string) error {
	opts := playwright.BrowserContextGrantPermissionsOptions{}
	if origin != "" {
		opts.Origin = playwright.String(origin)
	}
	return p.page.Context().GrantPermissions(permissions, opts)
}

func (p *pageTarget) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

// frameTarget adapts a Playwright frame to meeting.Frame.
type frameTarget struct {
	frame playwright.Frame
}

func (f *frameTarget) Element(selector string) meeting.Element {
	return &element{locator: f.frame.Locator(selector).First()}
}

func (f *frameTarget) URL() string {
	return f.frame.URL()
}

func (f *frameTarget) IsDetached() bool {
	return f.frame.IsDetached()
}

// element adapts a Playwright locator to meeting.Element.
type element struct {
	locator playwright.Locator
}

func (e *element) WaitVisible(timeout time.Duration) error {
	state := playwright.WaitForSelectorStateVisible
	return e.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (e *element) Click() error {
	return e.locator.Click()
}

func (e *element) Fill(value string) error {
	return e.locator.Fill(value)
}

func (e *element) Press(key string) error {
	return e.locator.Press(key)
}

func (e *element) IsVisible() (bool, error) {
	return e.locator.IsVisible()
}

func (e *element) IsEnabled() (bool, error) {
	return e.locator.IsEnabled()
}

func (e *element) GetAttribute(name string) (string, error) {
	return e.locator.GetAttribute(name)
}

func (e *element) TextContent() (string, error) {
	return e.locator.TextContent()
}
