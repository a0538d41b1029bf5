package meeting

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/meetbot/pkg/logging"
)

// Engine executes the join state machine for one session, dispatching
// every platform-specific step through the Controller interface. Steps
// run strictly in sequence; no step begins before the previous one
// completes.
type Engine struct {
	page Page
	cfg  SessionConfig
	ctrl Controller
	log  *logging.Logger
}

// NewEngine binds an engine to one page, one configuration, and one
// platform controller.
func NewEngine(page Page, cfg SessionConfig, ctrl Controller, log *logging.Logger) *Engine {
	return &Engine{page: page, cfg: cfg, ctrl: ctrl, log: log}
}

// JoinMeeting runs the five-step join protocol:
//
//	beforeNavigate -> navigate -> beforeJoin -> performJoin -> ensureJoined -> afterJoin
//
// Failures in beforeJoin, performJoin, and ensureJoined abort the
// attempt and propagate as a single terminal error; failures in the
// optional hooks (beforeNavigate, afterJoin) are logged and swallowed.
// The engine performs no automatic retry: retry, if any, belongs to the
// caller.
func (e *Engine) JoinMeeting(ctx context.Context) error {
	joinAttempts.WithLabelValues(e.cfg.Platform).Inc()
	start := time.Now()

	if err := e.ctrl.BeforeNavigate(); err != nil {
		e.log.Warnf("pre-navigation hook failed: %v", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	e.log.Infof("navigating to %s", e.cfg.MeetingURL)
	if err := e.page.Navigate(e.cfg.MeetingURL); err != nil {
		return e.failJoin(fmt.Errorf("navigate to meeting: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.ctrl.BeforeJoin(); err != nil {
		return e.failJoin(fmt.Errorf("before join: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.ctrl.PerformJoin(); err != nil {
		return e.failJoin(fmt.Errorf("perform join: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.ctrl.EnsureJoined(); err != nil {
		return e.failJoin(fmt.Errorf("ensure joined: %w", err))
	}

	if err := e.ctrl.AfterJoin(); err != nil {
		e.log.Warnf("post-join hook failed: %v", err)
	}

	joinDuration.Observe(time.Since(start).Seconds())
	e.log.Infof("joined meeting %s", e.cfg.MeetingURL)
	e.status(StatusInMeeting, "joined the meeting", nil)
	return nil
}

// failJoin reports a terminal join failure exactly once and returns it
// unchanged for the caller.
func (e *Engine) failJoin(err error) error {
	joinFailures.WithLabelValues(e.cfg.Platform, failureReason(err)).Inc()
	e.log.Errorf("join attempt failed: %v", err)
	return err
}

// IsMeetingActive reports whether the meeting session is still live.
// A closed page is never active. An adapter that declares no presence
// selectors is assumed active while the page is open; otherwise the
// session is active if any declared presence selector is currently
// visible.
func (e *Engine) IsMeetingActive() bool {
	if e.page.IsClosed() {
		return false
	}
	selectors := e.ctrl.PresenceSelectors()
	if len(selectors) == 0 {
		return true
	}
	target, err := e.ctrl.DOMTarget()
	if err != nil {
		e.log.Warnf("presence check could not resolve DOM target: %v", err)
		return false
	}
	return AnyVisible(target, selectors)
}

// SetMicrophone synchronizes the microphone control to the desired
// state.
func (e *Engine) SetMicrophone(on bool) error {
	return e.ctrl.SetMicrophone(on)
}

// SetCamera synchronizes the camera control to the desired state.
func (e *Engine) SetCamera(on bool) error {
	return e.ctrl.SetCamera(on)
}

// LeaveMeeting leaves the meeting and reports the terminal status. The
// controller's cleanup still belongs to the caller via Cleanup.
func (e *Engine) LeaveMeeting() error {
	if err := e.ctrl.LeaveMeeting(); err != nil {
		return err
	}
	e.status(StatusDone, "left the meeting", nil)
	return nil
}

// Cleanup releases adapter-local resources. Idempotent.
func (e *Engine) Cleanup() {
	e.ctrl.Cleanup()
}

func (e *Engine) status(status, message string, metadata map[string]any) {
	if e.cfg.SendStatusUpdate != nil {
		e.cfg.SendStatusUpdate(status, message, metadata)
	}
}
