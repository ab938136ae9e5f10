package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatformFromURL(t *testing.T) {
	registry := NewPlatformRegistry()

	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{"slack", "https://hooks.slack.com/services/T000/B000/XXX", PlatformSlack},
		{"discord", "https://discord.com/api/webhooks/123/token", PlatformDiscord},
		{"teams legacy", "https://contoso.webhook.office.com/webhookb2/abc", PlatformTeams},
		{"teams workflows", "https://prod-01.westus.logic.azure.com/workflows/abc", PlatformTeams},
		{"google chat", "https://chat.googleapis.com/v1/spaces/AAA/messages?key=k", PlatformGoogleChat},
		{"unknown", "https://example.com/hooks/weather", PlatformGeneric},
		{"case insensitive", "https://HOOKS.SLACK.COM/services/T000", PlatformSlack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, registry.Detect(tt.url))
		})
	}
}

func TestGetFallsBackToGeneric(t *testing.T) {
	registry := NewPlatformRegistry()

	f := registry.Get(Platform("telegram"))
	assert.Equal(t, PlatformGeneric, f.Platform())
}

func TestGetReturnsRegisteredFormatter(t *testing.T) {
	registry := NewPlatformRegistry()

	assert.Equal(t, PlatformDiscord, registry.Get(PlatformDiscord).Platform())
	assert.Equal(t, PlatformSlack, registry.Get(PlatformSlack).Platform())
	assert.Equal(t, PlatformTeams, registry.Get(PlatformTeams).Platform())
	assert.Equal(t, PlatformGoogleChat, registry.Get(PlatformGoogleChat).Platform())
}
