package app

import (
	"strings"

	"github.com/nhle/taskflow/internal/theme"
)

// renderToasts stacks the active toasts above the content area, oldest
// first. Each line shows the message plus key hints for its action and
// dismissal.
func (m Model) renderToasts() string {
	if len(m.state.Toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.state.Toasts))
	for _, toast := range m.state.Toasts {
		text := toast.Message
		if toast.ActionLabel != "" {
			text += "  [a: " + toast.ActionLabel + "]"
		}
		text += "  [z: dismiss]"
		lines = append(lines, theme.ToastStyle(toast.Type).Render(text))
	}

	return strings.Join(lines, "\n")
}
