package platform

import (
	"fmt"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
)

var teamsBrowserArgs = []string{
	"--use-fake-ui-for-media-stream",
	"--use-fake-device-for-media-stream",
	"--disable-blink-features=AutomationControlled",
	"--disable-features=msTeamsWebviewBlock",
}

func teamsPermissionOrigin(meetingURL string) string {
	return originOf(meetingURL, "https://teams.microsoft.com")
}

var (
	teamsContinueSelectors = []string{
		"button:has-text('Continue on this browser')",
		"a:has-text('Join on the web instead')",
	}

	teamsDismissSelectors = []string{
		"button:has-text('Continue without audio or video')",
		"button[aria-label='Close']",
	}

	teamsNameSelectors = []string{
		"input[data-tid='prejoin-display-name-input']",
		"input[placeholder='Type your name']",
		"input[aria-label='Type your name']",
	}

	teamsCameraToggleSelectors = []string{
		"[data-tid='toggle-video']",
		"input[title='Camera']",
		"button[aria-label*='camera']",
	}

	teamsMicToggleSelectors = []string{
		"[data-tid='toggle-mute']",
		"input[title='Microphone']",
		"button[aria-label*='microphone']",
	}

	teamsJoinSelectors = []string{
		"button[data-tid='prejoin-join-button']",
		"button:has-text('Join now')",
	}

	teamsLobbySelectors = []string{
		"text=Someone in the meeting should let you in soon",
		"text=When the meeting starts, we'll let people know you're waiting",
		"[data-tid='lobby-screen']",
	}

	teamsLeaveSelectors = []string{
		"button[data-tid='hangup-main-btn']",
		"#hangup-button",
		"button[aria-label='Leave (Ctrl+Shift+H)']",
	}

	teamsAdmitSelectors = []string{
		"button:has-text('Admit')",
		"button[data-tid='admit-button']",
	}

	teamsAdmitConfirmSelectors = []string{
		"div[role='dialog'] button:has-text('Admit')",
	}
)

// teamsController drives the Teams-style web client. The prejoin screen
// renders on the top-level page; a browser-choice interstitial may
// precede it.
type teamsController struct {
	meeting.BaseController

	admission *admitWatcher
}

func newTeamsController(page meeting.Page, cfg meeting.SessionConfig, log *logging.Logger) meeting.Controller {
	return &teamsController{BaseController: meeting.NewBaseController(page, cfg, log)}
}

func (c *teamsController) BeforeNavigate() error {
	return c.Page.GrantPermissions(mediaPermissions, teamsPermissionOrigin(c.Config.MeetingURL))
}

func (c *teamsController) BeforeJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}

	if el, err := meeting.ClickFirstVisible(target, teamsContinueSelectors, dismissTimeout); err != nil {
		c.Log.Warnf("browser-choice interstitial: %v", err)
	} else if el != nil {
		c.Log.Infof("continuing in the browser")
	}
	if _, err := meeting.ClickFirstVisible(target, teamsDismissSelectors, dismissTimeout); err != nil {
		c.Log.Warnf("prejoin dialog dismissal: %v", err)
	}

	if c.Config.BotName != "" {
		if err := fillFirst(target, teamsNameSelectors, c.Config.BotName, controlTimeout); err != nil {
			return fmt.Errorf("display name field: %w", err)
		}
	}

	if err := c.EnsureToggleState(target, teamsCameraToggleSelectors, false, true); err != nil {
		c.Log.Warnf("pre-join camera off: %v", err)
	}
	return nil
}

func (c *teamsController) PerformJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	el, err := meeting.ClickFirstVisible(target, teamsJoinSelectors, controlTimeout)
	if err != nil {
		return fmt.Errorf("join control: %w", err)
	}
	if el == nil {
		meeting.CaptureJoinFailure(c.Page, c.Config.ScreenshotDir, c.meetingID(), c.SessionID, "join-control-not-found", c.Log)
		return fmt.Errorf("%w: join control (tried %d selectors)", meeting.ErrElementNotFound, len(teamsJoinSelectors))
	}
	return nil
}

func (c *teamsController) EnsureJoined() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return waitLobbyClear(&c.BaseController, target, teamsLobbySelectors, teamsLeaveSelectors)
}

func (c *teamsController) AfterJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	if err := c.EnsureToggleState(target, teamsCameraToggleSelectors, false, true); err != nil {
		c.Log.Warnf("post-join camera off: %v", err)
	}
	if c.Config.IsOrganizer {
		c.admission = newAdmitWatcher(&c.BaseController, target, teamsAdmitSelectors, teamsAdmitConfirmSelectors, admitPollInterval)
		c.Status(meeting.StatusWaitingToAdmit, "watching for participants waiting in the lobby", nil)
	}
	return nil
}

func (c *teamsController) SetMicrophone(on bool) error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return c.EnsureToggleState(target, teamsMicToggleSelectors, on, false)
}

func (c *teamsController) SetCamera(on bool) error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return c.EnsureToggleState(target, teamsCameraToggleSelectors, on, false)
}

func (c *teamsController) LeaveMeeting() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	el, err := meeting.ClickFirstVisible(target, teamsLeaveSelectors, controlTimeout)
	if err != nil {
		return fmt.Errorf("leave control: %w", err)
	}
	if el == nil {
		return fmt.Errorf("%w: leave control", meeting.ErrElementNotFound)
	}
	return nil
}

func (c *teamsController) HasBotJoined() (bool, error) {
	target, err := c.DOMTarget()
	if err != nil {
		return false, err
	}
	return meeting.AnyVisible(target, teamsLeaveSelectors), nil
}

func (c *teamsController) PresenceSelectors() []string {
	return teamsLeaveSelectors
}

func (c *teamsController) Cleanup() {
	c.admission.stop()
}

func (c *teamsController) meetingID() string {
	if c.Config.MeetingID != "" {
		return c.Config.MeetingID
	}
	return c.Config.MeetingURL
}
