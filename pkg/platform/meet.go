package platform

import (
	"fmt"
	"strings"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
)

// meetBrowserArgs keep Chromium from prompting for media devices and
// from advertising automation to the client.
var meetBrowserArgs = []string{
	"--use-fake-ui-for-media-stream",
	"--use-fake-device-for-media-stream",
	"--disable-blink-features=AutomationControlled",
	"--autoplay-policy=no-user-gesture-required",
}

func meetPermissionOrigin(meetingURL string) string {
	return originOf(meetingURL, "https://meet.google.com")
}

// Selector sets for the Meet-style client. Ordered by priority: the
// first visible match wins.
var (
	meetDismissSelectors = []string{
		"button:has-text('Got it')",
		"button:has-text('Dismiss')",
		"button:has-text('Continue without microphone and camera')",
		"[aria-label='Close']",
	}

	meetNameSelectors = []string{
		"input[placeholder='Your name']",
		"input[aria-label='Your name']",
		"input[type='text']",
	}

	meetCameraToggleSelectors = []string{
		"[role='button'][aria-label*='camera']",
		"[data-is-muted][aria-label*='camera']",
		"div[aria-label*='Turn off camera']",
	}

	meetMicToggleSelectors = []string{
		"[role='button'][aria-label*='microphone']",
		"[data-is-muted][aria-label*='microphone']",
		"div[aria-label*='Turn off microphone']",
	}

	meetJoinSelectors = []string{
		"button:has-text('Join now')",
		"div[role='button']:has-text('Join now')",
		"button:has-text('Ask to join')",
		"div[role='button']:has-text('Ask to join')",
	}

	meetLobbySelectors = []string{
		"text=Asking to be let in",
		"text=Waiting for the host to let you in",
		"text=You'll join the call when someone lets you in",
	}

	meetLeaveSelectors = []string{
		"button[aria-label='Leave call']",
		"[aria-label*='Leave call']",
	}

	meetPeopleSelectors = []string{
		"button[aria-label*='People']",
		"button[aria-label*='Show everyone']",
	}

	meetAdmitSelectors = []string{
		"button:has-text('Admit')",
		"div[role='button']:has-text('Admit')",
	}

	meetAdmitConfirmSelectors = []string{
		"div[role='dialog'] button:has-text('Admit')",
		"div[role='dialog'] button:has-text('Admit all')",
	}
)

// meetController drives the Meet-style client. The client renders on
// the top-level page, so the base DOM target is used as-is.
type meetController struct {
	meeting.BaseController

	// clickedAskToJoin records whether the join submission went
	// through the "Ask to join" control, meaning a lobby wait is
	// expected rather than an immediate join.
	clickedAskToJoin bool

	admission *admitWatcher
}

func newMeetController(page meeting.Page, cfg meeting.SessionConfig, log *logging.Logger) meeting.Controller {
	return &meetController{BaseController: meeting.NewBaseController(page, cfg, log)}
}

func (c *meetController) BeforeNavigate() error {
	return c.Page.GrantPermissions(mediaPermissions, meetPermissionOrigin(c.Config.MeetingURL))
}

func (c *meetController) BeforeJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}

	// Onboarding popups block the pre-join screen; dismissal is best
	// effort because most sessions never see one.
	if _, err := meeting.ClickFirstVisible(target, meetDismissSelectors, dismissTimeout); err != nil {
		c.Log.Warnf("popup dismissal: %v", err)
	}

	if c.Config.BotName != "" {
		if err := fillFirst(target, meetNameSelectors, c.Config.BotName, controlTimeout); err != nil {
			return fmt.Errorf("display name field: %w", err)
		}
		c.Log.Infof("filled display name %q", c.Config.BotName)
	}

	// Camera off before joining; an unknown toggle state is left alone.
	if err := c.EnsureToggleState(target, meetCameraToggleSelectors, false, true); err != nil {
		c.Log.Warnf("pre-join camera off: %v", err)
	}

	return nil
}

func (c *meetController) PerformJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}

	el, err := meeting.ClickFirstVisible(target, meetJoinSelectors, controlTimeout)
	if err != nil {
		return fmt.Errorf("join control: %w", err)
	}
	if el == nil {
		meeting.CaptureJoinFailure(c.Page, c.Config.ScreenshotDir, c.meetingID(), c.SessionID, "join-control-not-found", c.Log)
		return fmt.Errorf("%w: join control (tried %d selectors)", meeting.ErrElementNotFound, len(meetJoinSelectors))
	}

	if text, err := el.TextContent(); err == nil && strings.Contains(strings.ToLower(text), "ask to join") {
		c.clickedAskToJoin = true
		c.Log.Infof("requested to join, awaiting host admission")
	}
	return nil
}

func (c *meetController) EnsureJoined() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return waitLobbyClear(&c.BaseController, target, meetLobbySelectors, meetLeaveSelectors)
}

func (c *meetController) AfterJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}

	// Post-join stabilization: camera stays off, microphone comes up.
	if err := c.EnsureToggleState(target, meetCameraToggleSelectors, false, true); err != nil {
		c.Log.Warnf("post-join camera off: %v", err)
	}
	if err := c.EnsureToggleState(target, meetMicToggleSelectors, true, true); err != nil {
		c.Log.Warnf("post-join microphone on: %v", err)
	}

	if c.Config.IsOrganizer {
		c.startAdmissionLoop(target)
	}
	return nil
}

// startAdmissionLoop opens the participants panel (best effort: admit
// controls also surface as toasts) and begins the recurring admit poll.
func (c *meetController) startAdmissionLoop(target meeting.DOMTarget) {
	if _, err := meeting.ClickFirstVisible(target, meetPeopleSelectors, sidePanelTimeout); err != nil {
		c.Log.Warnf("open participants panel: %v", err)
	}
	c.admission = newAdmitWatcher(&c.BaseController, target, meetAdmitSelectors, meetAdmitConfirmSelectors, admitPollInterval)
	c.Status(meeting.StatusWaitingToAdmit, "watching for participants waiting to be admitted", nil)
}

func (c *meetController) SetMicrophone(on bool) error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return c.EnsureToggleState(target, meetMicToggleSelectors, on, false)
}

func (c *meetController) SetCamera(on bool) error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return c.EnsureToggleState(target, meetCameraToggleSelectors, on, false)
}

func (c *meetController) LeaveMeeting() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	el, err := meeting.ClickFirstVisible(target, meetLeaveSelectors, controlTimeout)
	if err != nil {
		return fmt.Errorf("leave control: %w", err)
	}
	if el == nil {
		return fmt.Errorf("%w: leave control", meeting.ErrElementNotFound)
	}
	return nil
}

func (c *meetController) HasBotJoined() (bool, error) {
	target, err := c.DOMTarget()
	if err != nil {
		return false, err
	}
	return meeting.AnyVisible(target, meetLeaveSelectors), nil
}

func (c *meetController) PresenceSelectors() []string {
	return meetLeaveSelectors
}

func (c *meetController) Cleanup() {
	c.admission.stop()
}

func (c *meetController) meetingID() string {
	if c.Config.MeetingID != "" {
		return c.Config.MeetingID
	}
	return c.Config.MeetingURL
}
