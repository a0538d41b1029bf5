package meeting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/meetbot/pkg/logging"
)

// CaptureJoinFailure writes a full-page screenshot for post-mortem
// debugging of a critical join failure. The file is named with a
// timestamp, the meeting id, a truncated session id, and the failure
// reason. Purely advisory: every failure here is logged and swallowed,
// never escalated, and an empty directory disables capture entirely.
func CaptureJoinFailure(page Page, dir, meetingID, sessionID, reason string, log *logging.Logger) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.Warnf("screenshot directory %s: %v", dir, err)
		return
	}

	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	name := fmt.Sprintf("%s_%s_%s_%s.png",
		time.Now().Format("20060102-150405"),
		sanitizeFileComponent(meetingID),
		sanitizeFileComponent(short),
		sanitizeFileComponent(reason),
	)
	path := filepath.Join(dir, name)

	if err := page.Screenshot(path); err != nil {
		log.Warnf("diagnostic screenshot failed: %v", err)
		return
	}
	log.Infof("captured diagnostic screenshot %s", path)
}

func sanitizeFileComponent(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '-'
		}
	}, s)
}
