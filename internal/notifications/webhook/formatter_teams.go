package webhook

import (
	"context"
	"encoding/json"
	"fmt"
)

// TeamsFormatter formats weather reports as Microsoft Teams Adaptive Cards.
type TeamsFormatter struct{}

// Platform returns the platform identifier.
func (f *TeamsFormatter) Platform() Platform {
	return PlatformTeams
}

// Format transforms a Message into a Teams Adaptive Card payload.
func (f *TeamsFormatter) Format(_ context.Context, m *Message) ([]byte, error) {
	if m == nil || len(m.Days) == 0 {
		return nil, fmt.Errorf("teams formatter: message is empty")
	}

	body := []AdaptiveItem{
		{
			Type:   "TextBlock",
			Text:   formatTitle(m),
			Size:   "Large",
			Weight: "Bolder",
			Wrap:   true,
		},
	}

	if m.Kind == KindOutlook {
		facts := make([]Fact, 0, len(m.Days))
		for _, day := range m.Days {
			facts = append(facts, Fact{
				Title: fmt.Sprintf("%s, %s", day.DayOfWeek, day.Date),
				Value: conditionLabel(day),
			})
		}
		body = append(body, AdaptiveItem{Type: "FactSet", Facts: facts})
	} else {
		today := m.Today()
		body = append(body,
			AdaptiveItem{Type: "TextBlock", Text: dayHeading(today), Weight: "Bolder", Wrap: true},
			AdaptiveItem{Type: "TextBlock", Text: impactText(today), Wrap: true},
		)
	}

	payload := TeamsPayload{
		Type: "message",
		Attachments: []TeamsAttachment{
			{
				ContentType: "application/vnd.microsoft.card.adaptive",
				Content: AdaptiveCard{
					Type:    "AdaptiveCard",
					Version: "1.4",
					Body:    body,
				},
			},
		},
	}

	return json.Marshal(payload)
}

// ValidateResponse checks the Teams webhook response. Power Automate
// Workflows return 200/202 on success.
func (f *TeamsFormatter) ValidateResponse(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return fmt.Errorf("teams: unexpected status %d: %s", statusCode, truncateBody(body))
}
