package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"skyherald/internal/types"
)

// Discord embed colors by severity (decimal color values).
const (
	colorCalm    = 0x4CAF50 // Green
	colorBad     = 0xFF9800 // Orange
	colorVeryBad = 0xF44336 // Red
	colorComet   = 0x9C27B0 // Purple
)

// DiscordFormatter formats weather reports as Discord webhook JSON with embeds.
type DiscordFormatter struct{}

// Platform returns the platform identifier.
func (f *DiscordFormatter) Platform() Platform {
	return PlatformDiscord
}

// Format transforms a Message into Discord webhook JSON. A daily report is a
// single embed; an outlook renders each day as an embed field.
func (f *DiscordFormatter) Format(_ context.Context, m *Message) ([]byte, error) {
	if m == nil || len(m.Days) == 0 {
		return nil, fmt.Errorf("discord formatter: message is empty")
	}

	title := formatTitle(m)

	var embed DiscordEmbed
	if m.Kind == KindOutlook {
		embed = DiscordEmbed{
			Title:  title,
			Color:  severityColor(m.Today()),
			Fields: buildOutlookFields(m.Days),
		}
	} else {
		today := m.Today()
		embed = DiscordEmbed{
			Title:       title,
			Description: dayHeading(today),
			Color:       severityColor(today),
			Fields: []DiscordField{
				{Name: "Travel", Value: impactText(today)},
			},
		}
	}
	embed.Footer = &DiscordFooter{
		Text: fmt.Sprintf("Skyherald | %s", m.RegionName),
	}

	payload := DiscordPayload{
		Username: "Skyherald",
		Content:  title,
		Embeds:   []DiscordEmbed{embed},
	}

	return json.Marshal(payload)
}

// ValidateResponse checks the Discord webhook response. Discord returns 204
// No Content on success for webhook messages.
func (f *DiscordFormatter) ValidateResponse(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	// Check for Discord-specific error responses.
	var resp map[string]interface{}
	if err := json.Unmarshal(body, &resp); err == nil {
		if msg, ok := resp["message"].(string); ok {
			return fmt.Errorf("discord: API error: %s", msg)
		}
	}

	return fmt.Errorf("discord: unexpected status %d: %s", statusCode, truncateBody(body))
}

// severityColor maps a day's severity to an embed color. Comet days are
// always purple regardless of the underlying condition.
func severityColor(day *types.WeatherResult) int {
	if day == nil {
		return colorCalm
	}
	if day.HasComet() {
		return colorComet
	}
	switch day.Profile.Severity {
	case types.SeverityVeryBad:
		return colorVeryBad
	case types.SeverityBad:
		return colorBad
	default:
		return colorCalm
	}
}

// buildOutlookFields renders one inline field per outlook day.
func buildOutlookFields(days []*types.WeatherResult) []DiscordField {
	fields := make([]DiscordField, 0, len(days))
	for _, day := range days {
		fields = append(fields, DiscordField{
			Name:   fmt.Sprintf("%s, %s", day.DayOfWeek, day.Date),
			Value:  conditionLabel(day),
			Inline: true,
		})
	}
	return fields
}

func conditionLabel(day *types.WeatherResult) string {
	if day.HasComet() {
		return fmt.Sprintf("Comet %s", day.Comet.Name)
	}
	return string(day.Condition)
}
