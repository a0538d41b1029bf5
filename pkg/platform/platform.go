package platform

import (
	"fmt"
	"net/url"
	"time"

	"github.com/entrhq/meetbot/pkg/meeting"
)

// Shared timing knobs. Vars rather than consts so adapter tests can
// shrink the poll intervals.
var (
	// lobbyPollInterval paces the admission/lobby wait loops.
	lobbyPollInterval = 500 * time.Millisecond

	// enablePollInterval paces waiting for a disabled join control to
	// unlock after form input.
	enablePollInterval = 250 * time.Millisecond

	// admitPollInterval paces the organizer auto-admit loop.
	admitPollInterval = meeting.DefaultAdmissionInterval
)

const (
	// dismissTimeout bounds best-effort popup dismissal probes.
	dismissTimeout = 2 * time.Second

	// controlTimeout bounds how long a required control (name field,
	// join button, leave button) may take to appear.
	controlTimeout = 10 * time.Second

	// sidePanelTimeout bounds the best-effort participants panel open.
	sidePanelTimeout = 3 * time.Second
)

// mediaPermissions are granted to the meeting origin before navigation
// so clients never block on a browser permission prompt.
var mediaPermissions = []string{"microphone", "camera"}

// originOf extracts scheme://host from the meeting URL, falling back to
// the given default when the URL does not parse.
func originOf(meetingURL, fallback string) string {
	u, err := url.Parse(meetingURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fallback
	}
	return u.Scheme + "://" + u.Host
}

// fillFirst waits for the first visible selector and fills it.
func fillFirst(target meeting.DOMTarget, selectors []string, value string, timeout time.Duration) error {
	el, err := meeting.WaitForAny(target, selectors, timeout)
	if err != nil {
		return err
	}
	if err := el.Fill(value); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return nil
}

// waitLobbyClear blocks until the in-meeting UI is confirmed or a
// previously seen lobby indicator clears, re-checking the join deadline
// on every iteration. The moment a lobby indicator that was visible
// disappears counts as admission; there is no fixed delay.
func waitLobbyClear(b *meeting.BaseController, target meeting.DOMTarget, lobby, joined []string) error {
	sawLobby := false
	for {
		if err := b.EnforceJoinDeadline(); err != nil {
			return err
		}
		if meeting.AnyVisible(target, lobby) {
			if !sawLobby {
				sawLobby = true
				b.Log.Infof("waiting in lobby for the host")
				b.Status(meeting.StatusWaitingForHost, "waiting for the host to admit the bot", nil)
			}
			time.Sleep(lobbyPollInterval)
			continue
		}
		if sawLobby {
			// Lobby indicator cleared: admitted.
			return nil
		}
		if meeting.AnyVisible(target, joined) {
			return nil
		}
		time.Sleep(lobbyPollInterval)
	}
}

// admitWatcher runs the organizer auto-admit loop: every tick it clicks
// an admit control when one is visible, clicks the confirmation dialog
// if one follows, and infers a successful admission once the admit
// control disappears after having been clicked.
type admitWatcher struct {
	poller   *meeting.AdmissionPoller
	sawAdmit bool
}

func newAdmitWatcher(b *meeting.BaseController, target meeting.DOMTarget, admit, confirm []string, interval time.Duration) *admitWatcher {
	w := &admitWatcher{}
	w.poller = meeting.NewAdmissionPoller(interval, func() (bool, error) {
		el, err := meeting.ClickFirstVisible(target, admit, dismissTimeout)
		if err != nil {
			return false, err
		}
		if el == nil {
			// Control absent. Admission is inferred only after we
			// actually clicked it on an earlier tick.
			return w.sawAdmit, nil
		}
		w.sawAdmit = true
		b.Log.Infof("clicked admit control")
		if _, err := meeting.ClickFirstVisible(target, confirm, dismissTimeout); err != nil {
			b.Log.Warnf("admit confirmation: %v", err)
		}
		return false, nil
	}, b.Log)
	w.poller.Start()
	return w
}

func (w *admitWatcher) stop() {
	if w != nil {
		w.poller.Stop()
	}
}
