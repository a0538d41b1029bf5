package meeting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
	"github.com/entrhq/meetbot/pkg/meeting/meetingtest"
)

func TestFrameResolverFindsMatchingFrame(t *testing.T) {
	page := meetingtest.NewPage()
	page.AddFrame(meetingtest.NewFrame("https://zoom.us/postattendee"))
	client := meetingtest.NewFrame("https://app.zoom.us/wc/123/join")
	page.AddFrame(client)

	resolver := meeting.NewFrameResolver(page, "/wc/", 10*time.Millisecond, logging.Discard())

	target, err := resolver.Target()
	require.NoError(t, err)
	assert.Same(t, meeting.DOMTarget(client), target)
}

func TestFrameResolverCachesUntilDetached(t *testing.T) {
	page := meetingtest.NewPage()
	first := meetingtest.NewFrame("https://app.zoom.us/wc/123/join")
	page.AddFrame(first)

	resolver := meeting.NewFrameResolver(page, "/wc/", 10*time.Millisecond, logging.Discard())

	target, err := resolver.Target()
	require.NoError(t, err)
	require.Same(t, meeting.DOMTarget(first), target)

	// Still attached: the cached frame is reused.
	again, err := resolver.Target()
	require.NoError(t, err)
	assert.Same(t, target, again)

	// Detaching the frame forces a fresh resolution pass.
	first.Detach()
	second := meetingtest.NewFrame("https://app.zoom.us/wc/123/join")
	page.AddFrame(second)

	resolved, err := resolver.Target()
	require.NoError(t, err)
	assert.Same(t, meeting.DOMTarget(second), resolved)
}

func TestFrameResolverSkipsDetachedFrames(t *testing.T) {
	page := meetingtest.NewPage()
	dead := meetingtest.NewFrame("https://app.zoom.us/wc/123/join")
	dead.Detach()
	page.AddFrame(dead)
	live := meetingtest.NewFrame("https://app.zoom.us/wc/456/join")
	page.AddFrame(live)

	resolver := meeting.NewFrameResolver(page, "/wc/", 10*time.Millisecond, logging.Discard())

	target, err := resolver.Target()
	require.NoError(t, err)
	assert.Same(t, meeting.DOMTarget(live), target)
}

func TestFrameResolverFallsBackToPage(t *testing.T) {
	page := meetingtest.NewPage()
	page.AddFrame(meetingtest.NewFrame("https://zoom.us/unrelated"))

	resolver := meeting.NewFrameResolver(page, "/wc/", time.Millisecond, logging.Discard())

	target, err := resolver.Target()
	require.NoError(t, err)
	assert.Same(t, meeting.DOMTarget(page), target, "no matching frame falls back to the top-level page")
}
