// Package meetingtest provides scripted fakes of the meeting driver
// interfaces for use in tests. The fakes never touch a real browser:
// visibility, enablement, and attributes are set by the test, and every
// interaction is recorded for assertions.
package meetingtest

import (
	"errors"
	"sync"
	"time"

	"github.com/entrhq/meetbot/pkg/meeting"
)

// ErrNotVisible is returned by Element.WaitVisible when the scripted
// element never becomes visible.
var ErrNotVisible = errors.New("element did not become visible")

// Element is a scripted meeting.Element. The zero value is an absent
// element: never visible, never enabled. Use NewElement for a present
// but hidden one.
type Element struct {
	mu sync.Mutex

	Visible bool
	Enabled bool
	Attrs   map[string]string
	Text    string

	// VisibleAfterWaits makes the element become visible on the n-th
	// WaitVisible call, simulating UI that appears asynchronously.
	VisibleAfterWaits int

	// EnabledAfterChecks makes IsEnabled start returning true on the
	// n-th call, simulating controls that unlock after form input.
	EnabledAfterChecks int

	ClickErr   error
	FillErr    error
	VisibleErr error

	// OnClick runs on every successful click, letting tests mutate
	// page state in reaction (e.g. hide an admit control).
	OnClick func()

	Clicks        int
	Fills         []string
	Presses       []string
	WaitCalls     int
	EnabledChecks int
}

// NewElement returns a present, enabled, hidden element.
func NewElement() *Element {
	return &Element{Enabled: true, Attrs: map[string]string{}}
}

// VisibleElement returns a present, enabled, visible element.
func VisibleElement() *Element {
	el := NewElement()
	el.Visible = true
	return el
}

func (e *Element) WaitVisible(timeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.WaitCalls++
	if e.VisibleErr != nil {
		return e.VisibleErr
	}
	if e.VisibleAfterWaits > 0 && e.WaitCalls >= e.VisibleAfterWaits {
		e.Visible = true
	}
	if e.Visible {
		return nil
	}
	return ErrNotVisible
}

func (e *Element) Click() error {
	e.mu.Lock()
	if e.ClickErr != nil {
		defer e.mu.Unlock()
		return e.ClickErr
	}
	e.Clicks++
	onClick := e.OnClick
	e.mu.Unlock()

	if onClick != nil {
		onClick()
	}
	return nil
}

func (e *Element) Fill(value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.FillErr != nil {
		return e.FillErr
	}
	e.Fills = append(e.Fills, value)
	return nil
}

func (e *Element) Press(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Presses = append(e.Presses, key)
	return nil
}

func (e *Element) IsVisible() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.VisibleErr != nil {
		return false, e.VisibleErr
	}
	return e.Visible, nil
}

func (e *Element) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.EnabledChecks++
	if e.EnabledAfterChecks > 0 && e.EnabledChecks >= e.EnabledAfterChecks {
		e.Enabled = true
	}
	return e.Enabled, nil
}

func (e *Element) GetAttribute(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Attrs[name], nil
}

func (e *Element) TextContent() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Text, nil
}

// SetVisible flips visibility under lock, for tests that change page
// state while a loop is polling.
func (e *Element) SetVisible(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Visible = v
}

// ClickCount returns how many times the element was clicked.
func (e *Element) ClickCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Clicks
}

// Target is a fake meeting.DOMTarget serving scripted elements by
// selector. Selectors no test has registered resolve to absent
// elements.
type Target struct {
	mu       sync.Mutex
	elements map[string]*Element
}

// NewTarget returns an empty target.
func NewTarget() *Target {
	return &Target{elements: make(map[string]*Element)}
}

// Set registers the element under the given selector and returns it.
func (t *Target) Set(selector string, el *Element) *Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.elements[selector] = el
	return el
}

func (t *Target) Element(selector string) meeting.Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	if el, ok := t.elements[selector]; ok {
		return el
	}
	// Absent element: keep returning the same handle so repeated
	// lookups observe accumulated state.
	el := &Element{}
	t.elements[selector] = el
	return el
}

// Frame is a fake meeting.Frame.
type Frame struct {
	*Target

	mu       sync.Mutex
	FrameURL string
	Detached bool
}

// NewFrame returns a frame with the given URL.
func NewFrame(url string) *Frame {
	return &Frame{Target: NewTarget(), FrameURL: url}
}

func (f *Frame) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.FrameURL
}

func (f *Frame) IsDetached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Detached
}

// Detach marks the frame detached, forcing resolvers to re-resolve.
func (f *Frame) Detach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Detached = true
}

// Page is a fake meeting.Page.
type Page struct {
	*Target

	mu          sync.Mutex
	Closed      bool
	CurrentURL  string
	NavErr      error
	Navigations []string
	FrameList   []*Frame

	Grants        []PermissionGrant
	GrantErr      error
	Screenshots   []string
	ScreenshotErr error
}

// PermissionGrant records one GrantPermissions call.
type PermissionGrant struct {
	Permissions []string
	Origin      string
}

// NewPage returns an open page with no frames.
func NewPage() *Page {
	return &Page{Target: NewTarget()}
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.CurrentURL
}

func (p *Page) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Closed
}

func (p *Page) Frames() []meeting.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]meeting.Frame, 0, len(p.FrameList))
	for _, f := range p.FrameList {
		out = append(out, f)
	}
	return out
}

// AddFrame attaches a fake frame to the page.
func (p *Page) AddFrame(f *Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.FrameList = append(p.FrameList, f)
}

func (p *Page) Navigate(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.NavErr != nil {
		return p.NavErr
	}
	p.Navigations = append(p.Navigations, url)
	p.CurrentURL = url
	return nil
}

func (p *Page) GrantPermissions(permissions []string, origin string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.GrantErr != nil {
		return p.GrantErr
	}
	p.Grants = append(p.Grants, PermissionGrant{Permissions: permissions, Origin: origin})
	return nil
}

func (p *Page) Screenshot(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ScreenshotErr != nil {
		return p.ScreenshotErr
	}
	p.Screenshots = append(p.Screenshots, path)
	return nil
}
