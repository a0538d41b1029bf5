package meeting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/meetbot/pkg/meeting"
	"github.com/entrhq/meetbot/pkg/meeting/meetingtest"
)

const probeTimeout = 50 * time.Millisecond

func TestClickFirstVisibleClicksFirstVisibleMatch(t *testing.T) {
	tests := []struct {
		name         string
		visible      map[string]bool
		selectors    []string
		wantClicked  string
		wantNoResult bool
	}{
		{
			name:        "first selector visible",
			visible:     map[string]bool{"#a": true, "#b": true},
			selectors:   []string{"#a", "#b"},
			wantClicked: "#a",
		},
		{
			name:        "falls through to second selector",
			visible:     map[string]bool{"#b": true},
			selectors:   []string{"#a", "#b"},
			wantClicked: "#b",
		},
		{
			name:        "order encodes priority, not match count",
			visible:     map[string]bool{"#c": true},
			selectors:   []string{"#a", "#b", "#c"},
			wantClicked: "#c",
		},
		{
			name:         "nothing visible yields null result",
			visible:      map[string]bool{},
			selectors:    []string{"#a", "#b"},
			wantNoResult: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := meetingtest.NewTarget()
			els := make(map[string]*meetingtest.Element)
			for _, sel := range tt.selectors {
				el := meetingtest.NewElement()
				el.Visible = tt.visible[sel]
				els[sel] = target.Set(sel, el)
			}

			got, err := meeting.ClickFirstVisible(target, tt.selectors, probeTimeout)
			require.NoError(t, err)

			if tt.wantNoResult {
				assert.Nil(t, got, "exhausting the list must return a null result, not an error")
				for sel, el := range els {
					assert.Zero(t, el.ClickCount(), "selector %s must not be clicked", sel)
				}
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, 1, els[tt.wantClicked].ClickCount(), "winning selector clicked exactly once")
			for sel, el := range els {
				if sel != tt.wantClicked {
					assert.Zero(t, el.ClickCount(), "selector %s must not be clicked", sel)
				}
			}
		})
	}
}

func TestClickFirstVisiblePropagatesClickFailure(t *testing.T) {
	target := meetingtest.NewTarget()
	el := meetingtest.VisibleElement()
	el.ClickErr = assert.AnError
	target.Set("#a", el)

	got, err := meeting.ClickFirstVisible(target, []string{"#a"}, probeTimeout)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWaitForAnyReturnsFirstVisibleWithoutClicking(t *testing.T) {
	target := meetingtest.NewTarget()
	target.Set("#a", meetingtest.NewElement())
	b := target.Set("#b", meetingtest.VisibleElement())

	got, err := meeting.WaitForAny(target, []string{"#a", "#b"}, probeTimeout)
	require.NoError(t, err)
	assert.Equal(t, meeting.Element(b), got)
	assert.Zero(t, b.ClickCount())
}

func TestWaitForAnyPropagatesElementNotFound(t *testing.T) {
	target := meetingtest.NewTarget()
	target.Set("#a", meetingtest.NewElement())
	target.Set("#b", meetingtest.NewElement())

	got, err := meeting.WaitForAny(target, []string{"#a", "#b"}, probeTimeout)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, meeting.ErrElementNotFound)
}

func TestAnyVisibleToleratesProbeFailures(t *testing.T) {
	target := meetingtest.NewTarget()
	broken := meetingtest.NewElement()
	broken.VisibleErr = assert.AnError
	target.Set("#broken", broken)
	target.Set("#ok", meetingtest.VisibleElement())

	// The failing probe counts as "not found"; the next selector is
	// still tried.
	assert.True(t, meeting.AnyVisible(target, []string{"#broken", "#ok"}))
	assert.False(t, meeting.AnyVisible(target, []string{"#broken"}))
}
