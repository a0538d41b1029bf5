package meeting

import "time"

// Element is a handle to a single DOM element candidate. Handles are
// cheap selector bindings: obtaining one never touches the page, only
// the operations do.
type Element interface {
	// WaitVisible blocks until the element is visible or the timeout
	// elapses, in which case it returns an error.
	WaitVisible(timeout time.Duration) error

	// Click clicks the element.
	Click() error

	// Fill replaces the element's value with the given text.
	Fill(value string) error

	// Press sends a single key press to the element.
	Press(key string) error

	// IsVisible reports current visibility without waiting.
	IsVisible() (bool, error)

	// IsEnabled reports whether the element accepts interaction.
	// Meeting clients commonly render join controls disabled until a
	// form field registers a change.
	IsEnabled() (bool, error)

	// GetAttribute returns the value of the named attribute, or an
	// empty string when the attribute is absent.
	GetAttribute(name string) (string, error)

	// TextContent returns the element's text content.
	TextContent() (string, error)
}

// DOMTarget is the context selectors are evaluated against: the
// top-level page by default, or an embedded frame for platforms that
// deliver their client inside an iframe.
type DOMTarget interface {
	Element(selector string) Element
}

// Frame is an embedded document within a page.
type Frame interface {
	DOMTarget

	URL() string
	IsDetached() bool
}

// Page is the top-level document handle bound to one browser session.
// The engine treats it as an opaque capability set; it does not depend
// on any particular driver's wire protocol.
type Page interface {
	DOMTarget

	URL() string
	IsClosed() bool
	Frames() []Frame

	// Navigate loads the given URL and waits for the document to be
	// ready for interaction.
	Navigate(url string) error

	// GrantPermissions grants browser permissions (e.g. "microphone",
	// "camera") scoped to the given origin. An empty origin grants
	// them for all origins.
	GrantPermissions(permissions []string, origin string) error

	// Screenshot writes a full-page screenshot to the given path.
	Screenshot(path string) error
}
