package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
	"github.com/entrhq/meetbot/pkg/meeting/meetingtest"
)

func newMeetTest(t *testing.T, cfg meeting.SessionConfig) (*meetController, *meetingtest.Page) {
	t.Helper()
	shrinkPollIntervals(t)
	page := meetingtest.NewPage()
	ctrl := newMeetController(page, cfg, logging.Discard()).(*meetController)
	return ctrl, page
}

func TestMeetBeforeNavigateGrantsMediaPermissions(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	require.NoError(t, ctrl.BeforeNavigate())
	require.Len(t, page.Grants, 1)
	assert.Equal(t, []string{"microphone", "camera"}, page.Grants[0].Permissions)
	assert.Equal(t, "https://meet.google.com", page.Grants[0].Origin)
}

func TestMeetBeforeJoinFillsNameAndTurnsCameraOff(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	popup := page.Set("button:has-text('Got it')", meetingtest.VisibleElement())
	name := page.Set("input[placeholder='Your name']", meetingtest.VisibleElement())
	camera := page.Set("[role='button'][aria-label*='camera']", meetingtest.VisibleElement())
	camera.Attrs["data-is-muted"] = "false" // camera currently on

	require.NoError(t, ctrl.BeforeJoin())

	assert.Equal(t, 1, popup.ClickCount(), "onboarding popup dismissed")
	assert.Equal(t, []string{"Notetaker"}, name.Fills)
	assert.Equal(t, 1, camera.ClickCount(), "camera toggled off before joining")
}

func TestMeetBeforeJoinMissingNameFieldIsFatal(t *testing.T) {
	ctrl, _ := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	err := ctrl.BeforeJoin()
	require.ErrorIs(t, err, meeting.ErrElementNotFound)
}

func TestMeetBeforeJoinUnknownCameraStateLeftAlone(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	page.Set("input[placeholder='Your name']", meetingtest.VisibleElement())
	// No toggle attributes or label at all: state cannot be inferred.
	camera := page.Set("[role='button'][aria-label*='camera']", meetingtest.VisibleElement())

	require.NoError(t, ctrl.BeforeJoin())
	assert.Zero(t, camera.ClickCount(), "unknown toggle state must not be blindly clicked")
}

func TestMeetPerformJoinClicksJoinNow(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	join := page.Set("button:has-text('Join now')", meetingtest.VisibleElement())
	join.Text = "Join now"

	require.NoError(t, ctrl.PerformJoin())
	assert.Equal(t, 1, join.ClickCount())
	assert.False(t, ctrl.clickedAskToJoin)
}

func TestMeetPerformJoinRecordsAskToJoin(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	ask := page.Set("button:has-text('Ask to join')", meetingtest.VisibleElement())
	ask.Text = "Ask to join"

	require.NoError(t, ctrl.PerformJoin())
	assert.Equal(t, 1, ask.ClickCount())
	assert.True(t, ctrl.clickedAskToJoin)
}

func TestMeetPerformJoinMissingControlCapturesScreenshot(t *testing.T) {
	cfg := testSessionConfig("https://meet.google.com/abc-defg-hij", "meet")
	cfg.ScreenshotDir = t.TempDir()
	cfg.MeetingID = "abc-defg-hij"
	ctrl, page := newMeetTest(t, cfg)

	err := ctrl.PerformJoin()
	require.ErrorIs(t, err, meeting.ErrElementNotFound)
	require.Len(t, page.Screenshots, 1)
	assert.Contains(t, page.Screenshots[0], "abc-defg-hij")
	assert.Contains(t, page.Screenshots[0], "join-control-not-found")
}

func TestMeetEnsureJoinedImmediateWhenInMeetingUIVisible(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))
	page.Set("button[aria-label='Leave call']", meetingtest.VisibleElement())

	require.NoError(t, ctrl.EnsureJoined())
}

func TestMeetEnsureJoinedWaitsForLobbyToClear(t *testing.T) {
	var statuses []string
	cfg := testSessionConfig("https://meet.google.com/abc-defg-hij", "meet")
	cfg.SendStatusUpdate = func(status, message string, metadata map[string]any) {
		statuses = append(statuses, status)
	}
	ctrl, page := newMeetTest(t, cfg)

	lobby := page.Set("text=Asking to be let in", meetingtest.VisibleElement())
	time.AfterFunc(20*time.Millisecond, func() { lobby.SetVisible(false) })

	require.NoError(t, ctrl.EnsureJoined())
	assert.Equal(t, []string{meeting.StatusWaitingForHost}, statuses, "lobby status reported exactly once")
}

func TestMeetEnsureJoinedTimesOutInLobby(t *testing.T) {
	cfg := testSessionConfig("https://meet.google.com/abc-defg-hij", "meet")
	cfg.JoinTimeout = time.Second
	ctrl, page := newMeetTest(t, cfg)

	page.Set("text=Asking to be let in", meetingtest.VisibleElement())

	// Advance the controller's clock past the deadline instead of
	// waiting the timeout out in real time.
	ctrl.Clock = func() time.Time { return ctrl.JoinDeadline.Add(time.Second) }

	err := ctrl.EnsureJoined()
	require.ErrorIs(t, err, meeting.ErrJoinDeadlineExceeded)
}

func TestMeetOrganizerAdmitsWaitingParticipant(t *testing.T) {
	var statuses []string
	cfg := testSessionConfig("https://meet.google.com/abc-defg-hij", "meet")
	cfg.IsOrganizer = true
	cfg.SendStatusUpdate = func(status, message string, metadata map[string]any) {
		statuses = append(statuses, status)
	}
	ctrl, page := newMeetTest(t, cfg)

	people := page.Set("button[aria-label*='People']", meetingtest.VisibleElement())
	admit := page.Set("button:has-text('Admit')", meetingtest.VisibleElement())
	// Admitting removes the control from the page; the next poll tick
	// infers admission from its disappearance.
	admit.OnClick = func() { admit.SetVisible(false) }

	require.NoError(t, ctrl.AfterJoin())
	require.NotNil(t, ctrl.admission)
	assert.Equal(t, []string{meeting.StatusWaitingToAdmit}, statuses)

	eventually(t, ctrl.admission.poller.Admitted, "admission inferred once the admit control disappears")
	assert.Equal(t, 1, people.ClickCount(), "participants panel opened")
	assert.Equal(t, 1, admit.ClickCount())

	// Cleanup after admission is a safe no-op.
	ctrl.Cleanup()
	ctrl.Cleanup()
}

func TestMeetNonOrganizerSkipsAdmissionLoop(t *testing.T) {
	ctrl, _ := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	require.NoError(t, ctrl.AfterJoin())
	assert.Nil(t, ctrl.admission)

	// Cleanup with no admission loop must not panic.
	ctrl.Cleanup()
}

func TestMeetSetMicrophone(t *testing.T) {
	tests := []struct {
		name       string
		muted      string
		on         bool
		wantClicks int
	}{
		{"unmute a muted mic", "true", true, 1},
		{"mute an unmuted mic", "false", false, 1},
		{"already unmuted", "false", true, 0},
		{"already muted", "true", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))
			mic := page.Set("[role='button'][aria-label*='microphone']", meetingtest.VisibleElement())
			mic.Attrs["data-is-muted"] = tt.muted

			require.NoError(t, ctrl.SetMicrophone(tt.on))
			assert.Equal(t, tt.wantClicks, mic.ClickCount())
		})
	}
}

func TestMeetSetMicrophoneUnknownStateStillActs(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))
	mic := page.Set("[role='button'][aria-label*='microphone']", meetingtest.VisibleElement())

	// An explicit command acts even when the state cannot be inferred.
	require.NoError(t, ctrl.SetMicrophone(true))
	assert.Equal(t, 1, mic.ClickCount())
}

func TestMeetLeaveMeeting(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))
	leave := page.Set("button[aria-label='Leave call']", meetingtest.VisibleElement())

	require.NoError(t, ctrl.LeaveMeeting())
	assert.Equal(t, 1, leave.ClickCount())
}

func TestMeetLeaveMeetingMissingControl(t *testing.T) {
	ctrl, _ := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))
	require.ErrorIs(t, ctrl.LeaveMeeting(), meeting.ErrElementNotFound)
}

func TestMeetHasBotJoined(t *testing.T) {
	ctrl, page := newMeetTest(t, testSessionConfig("https://meet.google.com/abc-defg-hij", "meet"))

	joined, err := ctrl.HasBotJoined()
	require.NoError(t, err)
	assert.False(t, joined)

	page.Set("button[aria-label='Leave call']", meetingtest.VisibleElement())
	joined, err = ctrl.HasBotJoined()
	require.NoError(t, err)
	assert.True(t, joined)
}
