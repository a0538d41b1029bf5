package meeting_test

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
	"github.com/entrhq/meetbot/pkg/meeting/meetingtest"
)

func TestCaptureJoinFailureNamesArtifact(t *testing.T) {
	page := meetingtest.NewPage()
	dir := t.TempDir()

	meeting.CaptureJoinFailure(page, dir, "abc-defg-hij", "4f9d2c1a-session-id", "element_not_found", logging.Discard())

	require.Len(t, page.Screenshots, 1)
	path := page.Screenshots[0]
	assert.Equal(t, dir, filepath.Dir(path))

	// timestamp_meetingID_session8_reason.png
	pattern := regexp.MustCompile(`^\d{8}-\d{6}_abc-defg-hij_4f9d2c1a_element-not-found\.png$`)
	assert.Regexp(t, pattern, filepath.Base(path))
}

func TestCaptureJoinFailureEmptyDirDisablesCapture(t *testing.T) {
	page := meetingtest.NewPage()

	meeting.CaptureJoinFailure(page, "", "abc", "session", "timeout", logging.Discard())

	assert.Empty(t, page.Screenshots)
}

func TestCaptureJoinFailureSwallowsScreenshotErrors(t *testing.T) {
	page := meetingtest.NewPage()
	page.ScreenshotErr = assert.AnError

	// Must not panic or escalate.
	meeting.CaptureJoinFailure(page, t.TempDir(), "abc", "session", "timeout", logging.Discard())

	assert.Empty(t, page.Screenshots)
}

func TestCaptureJoinFailureSanitizesComponents(t *testing.T) {
	page := meetingtest.NewPage()

	meeting.CaptureJoinFailure(page, t.TempDir(), "https://zoom.us/j/42?pwd=x", "", "element_not_found", logging.Discard())

	require.Len(t, page.Screenshots, 1)
	base := filepath.Base(page.Screenshots[0])
	assert.NotContains(t, base, "/")
	assert.NotContains(t, base, "?")
	assert.Contains(t, base, "_unknown_", "empty session id names as unknown")
}
