package meeting

import "time"

// Status codes reported through the session's status callback at join
// milestones.
const (
	StatusInMeeting      = "in_meeting"
	StatusWaitingToAdmit = "waiting_to_admit"
	StatusWaitingForHost = "waiting_for_host"
	StatusDone           = "done_status"
)

// DefaultJoinTimeout bounds the whole join attempt when the caller does
// not provide one.
const DefaultJoinTimeout = 60 * time.Second

// StatusFunc receives join-milestone updates. It is fire-and-forget
// from the engine's perspective: failures are not retried and the
// callback must not block.
type StatusFunc func(status, message string, metadata map[string]any)

// SessionConfig describes one meeting attempt. It is owned by the
// caller and read-only to the engine.
type SessionConfig struct {
	// MeetingURL is the full URL of the meeting to join.
	MeetingURL string

	// Platform identifies the adapter to drive the client with
	// ("meet", "zoom", "teams"). Lookup is case-insensitive.
	Platform string

	// BotName is the display name the agent joins under.
	BotName string

	// IsOrganizer marks the agent as the meeting organizer; organizer
	// sessions run the host-admission auto-confirmation loop after
	// joining.
	IsOrganizer bool

	// JoinTimeout bounds the join attempt from controller creation to
	// confirmed join. Zero means DefaultJoinTimeout.
	JoinTimeout time.Duration

	// MeetingPasscode is filled into the client's passcode field when
	// the platform requires one. Optional.
	MeetingPasscode string

	// MeetingID tags diagnostic artifacts. Optional; falls back to a
	// value derived from the meeting URL.
	MeetingID string

	// SessionID identifies this attempt in logs and diagnostics. A
	// random ID is generated when empty.
	SessionID string

	// ScreenshotDir receives diagnostic screenshots captured on
	// critical join failures. Empty disables capture.
	ScreenshotDir string

	// SendStatusUpdate is invoked at join milestones. Optional.
	SendStatusUpdate StatusFunc
}

func (c SessionConfig) joinTimeout() time.Duration {
	if c.JoinTimeout <= 0 {
		return DefaultJoinTimeout
	}
	return c.JoinTimeout
}
