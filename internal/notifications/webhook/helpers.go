package webhook

import (
	"fmt"
	"strings"

	"skyherald/internal/types"
)

// maxBodyInError limits how much response body is echoed into error messages.
const maxBodyInError = 200

// formatTitle generates a human-readable title for a message.
func formatTitle(m *Message) string {
	switch m.Kind {
	case KindOutlook:
		return fmt.Sprintf("Weekly Outlook: %s", m.RegionName)
	default:
		return fmt.Sprintf("Today's Weather: %s", m.RegionName)
	}
}

// dayHeading renders one day's heading line, e.g.
// "Wednesday, 13 August 2025: Hot".
func dayHeading(day *types.WeatherResult) string {
	condition := string(day.Condition)
	if day.HasComet() {
		condition = fmt.Sprintf("Comet %s", day.Comet.Name)
	}
	return fmt.Sprintf("%s, %s: %s", day.DayOfWeek, day.Date, condition)
}

// impactText joins a day's impact lines, substituting a fixed phrase when
// the day carries no impacts at all.
func impactText(day *types.WeatherResult) string {
	if day.HasComet() {
		return fmt.Sprintf("%s %s", day.Comet.Description, day.Comet.Effect)
	}
	if len(day.Impacts) == 0 {
		return "No travel impacts."
	}
	return strings.Join(day.Impacts, "\n")
}

// truncateBody shortens a response body for inclusion in error messages.
func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyInError {
		return s[:maxBodyInError] + "..."
	}
	return s
}
