package platform

import (
	"fmt"
	"time"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
)

var zoomBrowserArgs = []string{
	"--use-fake-ui-for-media-stream",
	"--use-fake-device-for-media-stream",
	"--disable-blink-features=AutomationControlled",
}

func zoomPermissionOrigin(meetingURL string) string {
	return originOf(meetingURL, "https://zoom.us")
}

// zoomFrameURLPattern identifies the embedded web-client frame the
// Zoom-style meeting UI renders inside.
const zoomFrameURLPattern = "/wc/"

const zoomFrameResolveTimeout = 15 * time.Second

var (
	// zoomBrowserJoinSelectors live on the top-level page, before the
	// web-client frame exists.
	zoomBrowserJoinSelectors = []string{
		"a:has-text('Join from your Browser')",
		"a:has-text('Join from Your Browser')",
		"a[web_client]",
	}

	zoomCookieSelectors = []string{
		"#onetrust-accept-btn-handler",
		"button:has-text('Accept Cookies')",
	}

	zoomNameSelectors = []string{
		"#input-for-name",
		"input[placeholder='Your Name']",
		"input[aria-label='Your Name']",
	}

	zoomPasscodeSelectors = []string{
		"#input-for-pwd",
		"input[placeholder='Meeting Passcode']",
		"input[aria-label='Meeting Passcode']",
	}

	zoomJoinSelectors = []string{
		"button.preview-join-button",
		"button:has-text('Join')",
		"button.zm-btn--primary:has-text('Join')",
	}

	zoomWaitingRoomSelectors = []string{
		".waiting-room-container",
		"text=The host will let you in soon",
		"text=Please wait, the meeting host will let you in soon",
	}

	zoomMicToggleSelectors = []string{
		"button[aria-label='Mute']",
		"button[aria-label='Unmute']",
		".join-audio-container button",
	}

	zoomCameraToggleSelectors = []string{
		"button[aria-label='Start Video']",
		"button[aria-label='Stop Video']",
		".send-video-container button",
	}

	zoomLeaveSelectors = []string{
		"button[aria-label='Leave']",
		".footer__leave-btn",
		"button:has-text('Leave')",
	}

	zoomLeaveConfirmSelectors = []string{
		"button:has-text('Leave Meeting')",
	}
)

// zoomController drives the Zoom-style web client. The client is
// delivered inside an embedded frame, so every selector after the
// browser-join interstitial is evaluated against the resolved frame.
type zoomController struct {
	meeting.BaseController

	frames *meeting.FrameResolver
}

func newZoomController(page meeting.Page, cfg meeting.SessionConfig, log *logging.Logger) meeting.Controller {
	c := &zoomController{BaseController: meeting.NewBaseController(page, cfg, log)}
	c.frames = meeting.NewFrameResolver(page, zoomFrameURLPattern, zoomFrameResolveTimeout, log)
	return c
}

// DOMTarget resolves the embedded web-client frame, re-resolving when
// the cached frame has detached and falling back to the page when no
// frame matches in time.
func (c *zoomController) DOMTarget() (meeting.DOMTarget, error) {
	return c.frames.Target()
}

func (c *zoomController) BeforeNavigate() error {
	return c.Page.GrantPermissions(mediaPermissions, zoomPermissionOrigin(c.Config.MeetingURL))
}

func (c *zoomController) BeforeJoin() error {
	// Cookie banner and browser-join interstitial render on the
	// top-level page, before the web-client frame exists.
	if _, err := meeting.ClickFirstVisible(c.Page, zoomCookieSelectors, dismissTimeout); err != nil {
		c.Log.Warnf("cookie banner: %v", err)
	}
	if el, err := meeting.ClickFirstVisible(c.Page, zoomBrowserJoinSelectors, dismissTimeout); err != nil {
		c.Log.Warnf("browser-join interstitial: %v", err)
	} else if el != nil {
		c.Log.Infof("clicked join-from-browser link")
	}

	target, err := c.DOMTarget()
	if err != nil {
		return err
	}

	if c.Config.BotName != "" {
		if err := fillFirst(target, zoomNameSelectors, c.Config.BotName, controlTimeout); err != nil {
			return fmt.Errorf("display name field: %w", err)
		}
	}
	if c.Config.MeetingPasscode != "" {
		if err := fillFirst(target, zoomPasscodeSelectors, c.Config.MeetingPasscode, controlTimeout); err != nil {
			return fmt.Errorf("passcode field: %w", err)
		}
	}
	return nil
}

// PerformJoin clicks the join control, which the client keeps disabled
// until the name field registers a change. The enabled state is polled
// under the join deadline rather than clicking unconditionally.
func (c *zoomController) PerformJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}

	el, err := meeting.WaitForAny(target, zoomJoinSelectors, controlTimeout)
	if err != nil {
		meeting.CaptureJoinFailure(c.Page, c.Config.ScreenshotDir, c.meetingID(), c.SessionID, "join-control-not-found", c.Log)
		return fmt.Errorf("join control: %w", err)
	}

	for {
		if err := c.EnforceJoinDeadline(); err != nil {
			return fmt.Errorf("join control never enabled: %w", err)
		}
		enabled, err := el.IsEnabled()
		if err == nil && enabled {
			break
		}
		time.Sleep(enablePollInterval)
	}

	if err := el.Click(); err != nil {
		return fmt.Errorf("click join control: %w", err)
	}
	return nil
}

func (c *zoomController) EnsureJoined() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return waitLobbyClear(&c.BaseController, target, zoomWaitingRoomSelectors, zoomLeaveSelectors)
}

func (c *zoomController) AfterJoin() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	if err := c.EnsureToggleState(target, zoomCameraToggleSelectors, false, true); err != nil {
		c.Log.Warnf("post-join camera off: %v", err)
	}
	return nil
}

func (c *zoomController) SetMicrophone(on bool) error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return c.EnsureToggleState(target, zoomMicToggleSelectors, on, false)
}

func (c *zoomController) SetCamera(on bool) error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	return c.EnsureToggleState(target, zoomCameraToggleSelectors, on, false)
}

func (c *zoomController) LeaveMeeting() error {
	target, err := c.DOMTarget()
	if err != nil {
		return err
	}
	el, err := meeting.ClickFirstVisible(target, zoomLeaveSelectors, controlTimeout)
	if err != nil {
		return fmt.Errorf("leave control: %w", err)
	}
	if el == nil {
		return fmt.Errorf("%w: leave control", meeting.ErrElementNotFound)
	}
	// A confirmation dialog may follow; absence is fine.
	if _, err := meeting.ClickFirstVisible(target, zoomLeaveConfirmSelectors, dismissTimeout); err != nil {
		c.Log.Warnf("leave confirmation: %v", err)
	}
	return nil
}

func (c *zoomController) HasBotJoined() (bool, error) {
	target, err := c.DOMTarget()
	if err != nil {
		return false, err
	}
	return meeting.AnyVisible(target, zoomLeaveSelectors), nil
}

func (c *zoomController) PresenceSelectors() []string {
	return zoomLeaveSelectors
}

func (c *zoomController) meetingID() string {
	if c.Config.MeetingID != "" {
		return c.Config.MeetingID
	}
	return c.Config.MeetingURL
}
