package meeting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/meetbot/pkg/meeting"
	"github.com/entrhq/meetbot/pkg/meeting/meetingtest"
)

func TestResolveToggleState(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  meeting.ToggleState
	}{
		{
			name:  "aria-pressed true means on",
			attrs: map[string]string{"aria-pressed": "true"},
			want:  meeting.ToggleOn,
		},
		{
			name:  "aria-pressed false means off",
			attrs: map[string]string{"aria-pressed": "false"},
			want:  meeting.ToggleOff,
		},
		{
			name:  "data-is-muted true means off",
			attrs: map[string]string{"data-is-muted": "true"},
			want:  meeting.ToggleOff,
		},
		{
			name:  "turn-off label means currently on",
			attrs: map[string]string{"aria-label": "Turn off camera (ctrl + e)"},
			want:  meeting.ToggleOn,
		},
		{
			name:  "unmute label means currently off",
			attrs: map[string]string{"aria-label": "Unmute microphone"},
			want:  meeting.ToggleOff,
		},
		{
			name:  "mute label means currently on",
			attrs: map[string]string{"aria-label": "Mute"},
			want:  meeting.ToggleOn,
		},
		{
			name: "first rule wins over later signals",
			attrs: map[string]string{
				"aria-pressed": "true",
				"aria-label":   "Unmute microphone",
			},
			want: meeting.ToggleOn,
		},
		{
			name:  "no signal yields unknown",
			attrs: map[string]string{"aria-label": "More options"},
			want:  meeting.ToggleUnknown,
		},
		{
			name:  "no attributes yields unknown",
			attrs: map[string]string{},
			want:  meeting.ToggleUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := meetingtest.VisibleElement()
			el.Attrs = tt.attrs
			assert.Equal(t, tt.want, meeting.ResolveToggleState(el))
		})
	}
}
