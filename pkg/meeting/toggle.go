package meeting

import "strings"

// ToggleState is the inferred state of a media control: on, off, or
// unknown when no signal is conclusive.
type ToggleState int

const (
	ToggleUnknown ToggleState = iota
	ToggleOn
	ToggleOff
)

func (s ToggleState) String() string {
	switch s {
	case ToggleOn:
		return "on"
	case ToggleOff:
		return "off"
	default:
		return "unknown"
	}
}

// ResolveToggleState infers whether a media control is currently
// enabled from its attributes. Inference rules are ordered; the first
// rule that fires wins. Absence of any signal yields ToggleUnknown and
// the caller decides whether to click.
//
// Accessible labels describe the action a click would perform, so a
// control labelled "Turn off camera" is currently on.
func ResolveToggleState(el Element) ToggleState {
	if v, err := el.GetAttribute("aria-pressed"); err == nil {
		switch v {
		case "true":
			return ToggleOn
		case "false":
			return ToggleOff
		}
	}

	// Meet-style clients expose mute state directly.
	if v, err := el.GetAttribute("data-is-muted"); err == nil {
		switch v {
		case "true":
			return ToggleOff
		case "false":
			return ToggleOn
		}
	}

	if label, err := el.GetAttribute("aria-label"); err == nil && label != "" {
		l := strings.ToLower(label)
		switch {
		// "unmute" must be tested before "mute": it contains it.
		case strings.Contains(l, "unmute"),
			strings.Contains(l, "turn on"),
			strings.Contains(l, "start video"):
			return ToggleOff
		case strings.Contains(l, "mute"),
			strings.Contains(l, "turn off"),
			strings.Contains(l, "stop video"):
			return ToggleOn
		}
	}

	return ToggleUnknown
}
