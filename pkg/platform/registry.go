// Package platform supplies the per-platform controllers for the
// meeting-join engine and the registry that resolves them.
//
// Each adapter owns the selector sets and timing quirks of one meeting
// client. Selector lists are ordered by priority and static: UI
// variants are absorbed by extending a list, never by branching logic.
// The lists are inherently coupled to each platform's current markup
// and will drift; that volatility is accepted and isolated here so the
// engine and utilities stay stable.
package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
)

// Factory builds a platform controller bound to one page and one
// session configuration.
type Factory func(page meeting.Page, cfg meeting.SessionConfig, log *logging.Logger) meeting.Controller

type entry struct {
	factory          Factory
	browserArgs      []string
	permissionOrigin func(meetingURL string) string
}

var registry = map[string]entry{
	"meet": {
		factory:          newMeetController,
		browserArgs:      meetBrowserArgs,
		permissionOrigin: meetPermissionOrigin,
	},
	"zoom": {
		factory:          newZoomController,
		browserArgs:      zoomBrowserArgs,
		permissionOrigin: zoomPermissionOrigin,
	},
	"teams": {
		factory:          newTeamsController,
		browserArgs:      teamsBrowserArgs,
		permissionOrigin: teamsPermissionOrigin,
	},
}

// Resolve returns the controller factory for the given platform
// identifier. Lookup is case-insensitive. Unknown identifiers return
// meeting.ErrUnsupportedPlatform carrying the list of supported ones.
func Resolve(platformID string) (Factory, error) {
	e, ok := registry[normalize(platformID)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			meeting.ErrUnsupportedPlatform, platformID, strings.Join(Supported(), ", "))
	}
	return e.factory, nil
}

// Supported returns the sorted list of registered platform identifiers.
func Supported() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BrowserArgs returns the browser launch arguments the platform needs.
// Advisory: unknown platforms yield nil rather than an error, since
// this is consulted before a session exists.
func BrowserArgs(platformID string) []string {
	e, ok := registry[normalize(platformID)]
	if !ok {
		return nil
	}
	return e.browserArgs
}

// PermissionOrigin returns the origin media permissions should be
// granted for. Advisory: unknown platforms yield an empty string.
func PermissionOrigin(platformID, meetingURL string) string {
	e, ok := registry[normalize(platformID)]
	if !ok {
		return ""
	}
	return e.permissionOrigin(meetingURL)
}

func normalize(platformID string) string {
	return strings.ToLower(strings.TrimSpace(platformID))
}
