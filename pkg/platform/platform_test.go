package platform

import (
	"testing"
	"time"

	"github.com/entrhq/meetbot/pkg/meeting"
)

// shrinkPollIntervals makes the wait loops tick fast enough for unit
// tests, restoring the production values afterwards.
func shrinkPollIntervals(t *testing.T) {
	t.Helper()
	oldLobby, oldEnable, oldAdmit := lobbyPollInterval, enablePollInterval, admitPollInterval
	lobbyPollInterval = time.Millisecond
	enablePollInterval = time.Millisecond
	admitPollInterval = 2 * time.Millisecond
	t.Cleanup(func() {
		lobbyPollInterval = oldLobby
		enablePollInterval = oldEnable
		admitPollInterval = oldAdmit
	})
}

func testSessionConfig(url, platform string) meeting.SessionConfig {
	return meeting.SessionConfig{
		MeetingURL: url,
		Platform:   platform,
		BotName:    "Notetaker",
		SessionID:  "test-session-id",
	}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition never met: %s", msg)
}
