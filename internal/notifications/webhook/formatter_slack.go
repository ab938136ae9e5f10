package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SlackFormatter formats weather reports as Slack Block Kit JSON.
type SlackFormatter struct{}

// Platform returns the platform identifier.
func (f *SlackFormatter) Platform() Platform {
	return PlatformSlack
}

// Format transforms a Message into Slack Block Kit JSON: a header block
// followed by one section per day.
func (f *SlackFormatter) Format(_ context.Context, m *Message) ([]byte, error) {
	if m == nil || len(m.Days) == 0 {
		return nil, fmt.Errorf("slack formatter: message is empty")
	}

	title := formatTitle(m)
	blocks := []SlackBlock{
		{
			Type: "header",
			Text: &SlackText{Type: "plain_text", Text: title},
		},
	}

	if m.Kind == KindOutlook {
		var lines []string
		for _, day := range m.Days {
			lines = append(lines, fmt.Sprintf("*%s, %s*: %s", day.DayOfWeek, day.Date, conditionLabel(day)))
		}
		blocks = append(blocks, SlackBlock{
			Type: "section",
			Text: &SlackText{Type: "mrkdwn", Text: strings.Join(lines, "\n")},
		})
	} else {
		today := m.Today()
		blocks = append(blocks,
			SlackBlock{
				Type: "section",
				Text: &SlackText{Type: "mrkdwn", Text: fmt.Sprintf("*%s*", dayHeading(today))},
			},
			SlackBlock{
				Type: "section",
				Text: &SlackText{Type: "mrkdwn", Text: impactText(today)},
			},
		)
	}

	payload := SlackPayload{
		Text:   title,
		Blocks: blocks,
	}

	return json.Marshal(payload)
}

// ValidateResponse checks the Slack webhook response. Slack incoming webhooks
// return the literal body "ok" on success; anything else on a 2xx status is a
// soft failure.
func (f *SlackFormatter) ValidateResponse(statusCode int, body []byte) error {
	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("slack: unexpected status %d: %s", statusCode, truncateBody(body))
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" && trimmed != "ok" {
		return fmt.Errorf("slack: soft failure: %s", truncateBody(body))
	}

	return nil
}
