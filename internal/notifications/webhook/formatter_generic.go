package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"skyherald/internal/types"
)

// GenericFormatter emits the raw report as JSON for consumers that speak the
// native skyherald payload.
type GenericFormatter struct{}

// genericPayload is the native webhook body.
type genericPayload struct {
	Region string                 `json:"region"`
	Kind   MessageKind            `json:"kind"`
	Days   []*types.WeatherResult `json:"days"`
}

// Platform returns the platform identifier.
func (f *GenericFormatter) Platform() Platform {
	return PlatformGeneric
}

// Format marshals the message without any platform dressing.
func (f *GenericFormatter) Format(_ context.Context, m *Message) ([]byte, error) {
	if m == nil || len(m.Days) == 0 {
		return nil, fmt.Errorf("generic formatter: message is empty")
	}

	return json.Marshal(genericPayload{
		Region: m.RegionName,
		Kind:   m.Kind,
		Days:   m.Days,
	})
}

// ValidateResponse treats any 2xx as success.
func (f *GenericFormatter) ValidateResponse(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return fmt.Errorf("generic: unexpected status %d: %s", statusCode, truncateBody(body))
}
