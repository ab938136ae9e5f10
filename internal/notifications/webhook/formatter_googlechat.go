package webhook

import (
	"context"
	"encoding/json"
	"fmt"
)

// GoogleChatFormatter formats weather reports as Google Chat cards.
type GoogleChatFormatter struct{}

// Platform returns the platform identifier.
func (f *GoogleChatFormatter) Platform() Platform {
	return PlatformGoogleChat
}

// Format transforms a Message into a Google Chat card payload.
func (f *GoogleChatFormatter) Format(_ context.Context, m *Message) ([]byte, error) {
	if m == nil || len(m.Days) == 0 {
		return nil, fmt.Errorf("google chat formatter: message is empty")
	}

	var widgets []GoogleWidget
	if m.Kind == KindOutlook {
		for _, day := range m.Days {
			widgets = append(widgets, GoogleWidget{
				KeyValue: &GoogleKeyValue{
					TopLabel: fmt.Sprintf("%s, %s", day.DayOfWeek, day.Date),
					Content:  conditionLabel(day),
				},
			})
		}
	} else {
		today := m.Today()
		widgets = []GoogleWidget{
			{TextParagraph: &GoogleTextParagraph{Text: dayHeading(today)}},
			{TextParagraph: &GoogleTextParagraph{Text: impactText(today)}},
		}
	}

	payload := GoogleChatPayload{
		Cards: []GoogleCard{
			{
				Header:   GoogleHeader{Title: formatTitle(m), Subtitle: m.RegionName},
				Sections: []GoogleSection{{Widgets: widgets}},
			},
		},
	}

	return json.Marshal(payload)
}

// ValidateResponse checks the Google Chat webhook response.
func (f *GoogleChatFormatter) ValidateResponse(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return fmt.Errorf("google chat: unexpected status %d: %s", statusCode, truncateBody(body))
}
