package meeting

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/meetbot/pkg/logging"
)

// Controller is the per-platform capability contract for the join state
// machine. Adapters embed BaseController and shadow the operations they
// support; required steps left on the base signal ErrNotImplemented so
// integrators notice missing coverage immediately.
type Controller interface {
	// Optional hooks. Failures are logged by the engine and never
	// abort the session.
	BeforeNavigate() error
	AfterJoin() error

	// Required steps. Failures propagate and abort the join attempt.
	BeforeJoin() error
	PerformJoin() error
	EnsureJoined() error

	// Media and lifecycle controls used while the session is active.
	SetMicrophone(on bool) error
	SetCamera(on bool) error
	LeaveMeeting() error
	HasBotJoined() (bool, error)

	// DOMTarget returns the context selectors are evaluated against:
	// the page by default, an embedded frame for adapters that operate
	// inside one.
	DOMTarget() (DOMTarget, error)

	// PresenceSelectors lists UI markers whose visibility indicates
	// the meeting session is still active. An empty list means the
	// adapter has no reliable marker and the session is assumed active
	// while the page is open.
	PresenceSelectors() []string

	// Cleanup releases adapter-local resources such as pending
	// admission-poll timers. It must be idempotent.
	Cleanup()
}

// BaseController carries the per-session state shared by every adapter:
// the page handle, the session configuration, the logger, and the
// computed join deadline. Adapters embed it by value.
type BaseController struct {
	Page   Page
	Config SessionConfig
	Log    *logging.Logger

	// SessionID tags logs and diagnostic artifacts for this attempt.
	SessionID string

	// JoinDeadline is the instant the whole join attempt must have
	// completed by: creation time plus the configured timeout.
	JoinDeadline time.Time

	// Clock is the time source for deadline checks. Tests substitute
	// it; production code leaves it as time.Now.
	Clock func() time.Time
}

// NewBaseController binds a controller to one page for the lifetime of
// one meeting attempt.
func NewBaseController(page Page, cfg SessionConfig, log *logging.Logger) BaseController {
	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return BaseController{
		Page:         page,
		Config:       cfg,
		Log:          log,
		SessionID:    sessionID,
		JoinDeadline: time.Now().Add(cfg.joinTimeout()),
		Clock:        time.Now,
	}
}

// Optional hooks default to no-ops.

func (b *BaseController) BeforeNavigate() error { return nil }
func (b *BaseController) AfterJoin() error      { return nil }

// Required steps default to a contract-violation marker, not a silent
// success.

func (b *BaseController) BeforeJoin() error   { return notImplemented("beforeJoin") }
func (b *BaseController) PerformJoin() error  { return notImplemented("performJoin") }
func (b *BaseController) EnsureJoined() error { return notImplemented("ensureJoined") }

func (b *BaseController) SetMicrophone(on bool) error { return notImplemented("setMicrophone") }
func (b *BaseController) SetCamera(on bool) error     { return notImplemented("setCamera") }
func (b *BaseController) LeaveMeeting() error         { return notImplemented("leaveMeeting") }
func (b *BaseController) HasBotJoined() (bool, error) {
	return false, notImplemented("hasBotJoined")
}

// DOMTarget returns the top-level page. Adapters operating inside an
// embedded client shadow this with a FrameResolver-backed lookup.
func (b *BaseController) DOMTarget() (DOMTarget, error) { return b.Page, nil }

func (b *BaseController) PresenceSelectors() []string { return nil }

func (b *BaseController) Cleanup() {}

// EnforceJoinDeadline signals a timeout failure when invoked at or
// after the join deadline, and never before. Adapters must call it at
// the top of every wait-loop iteration that can run indefinitely so a
// stuck lobby cannot hang the session forever.
func (b *BaseController) EnforceJoinDeadline() error {
	if !b.Clock().Before(b.JoinDeadline) {
		return fmt.Errorf("%w: %s elapsed", ErrJoinDeadlineExceeded, b.Config.joinTimeout())
	}
	return nil
}

// EnsureToggleState resolves a media control through the selector set,
// infers its current tri-state, and clicks only when the inferred state
// differs from the desired one. When inference is inconclusive the
// control is clicked only if allowUnknown is false: unknown-state
// controls should not be blindly toggled, they may already be correct.
func (b *BaseController) EnsureToggleState(target DOMTarget, selectors []string, desired bool, allowUnknown bool) error {
	el, err := WaitForAny(target, selectors, toggleResolveTimeout)
	if err != nil {
		return err
	}

	current := ResolveToggleState(el)
	var click bool
	switch current {
	case ToggleOn:
		click = !desired
	case ToggleOff:
		click = desired
	case ToggleUnknown:
		click = !allowUnknown
	}

	if !click {
		b.Log.Debugf("toggle already %s (desired %v), not clicking", current, desired)
		return nil
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("toggle click: %w", err)
	}
	return nil
}

// Status reports a join milestone through the session callback, when
// one is configured. Fire-and-forget.
func (b *BaseController) Status(status, message string, metadata map[string]any) {
	if b.Config.SendStatusUpdate != nil {
		b.Config.SendStatusUpdate(status, message, metadata)
	}
}

// toggleResolveTimeout bounds how long a toggle control may take to
// appear before EnsureToggleState gives up with ErrElementNotFound.
const toggleResolveTimeout = 5 * time.Second
