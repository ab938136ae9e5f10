package webhook

import (
	"strings"
)

// PlatformRegistry maps webhook URLs to platform-specific formatters by URL
// pattern auto-detection.
type PlatformRegistry struct {
	formatters map[Platform]PlatformFormatter
}

// NewPlatformRegistry creates a PlatformRegistry with all built-in formatters.
func NewPlatformRegistry() *PlatformRegistry {
	r := &PlatformRegistry{
		formatters: make(map[Platform]PlatformFormatter),
	}

	r.formatters[PlatformSlack] = &SlackFormatter{}
	r.formatters[PlatformTeams] = &TeamsFormatter{}
	r.formatters[PlatformDiscord] = &DiscordFormatter{}
	r.formatters[PlatformGoogleChat] = &GoogleChatFormatter{}
	r.formatters[PlatformGeneric] = &GenericFormatter{}

	return r
}

// Detect inspects the URL string to determine the target Platform.
//
// URL patterns:
//   - "hooks.slack.com" -> PlatformSlack
//   - "discord.com/api/webhooks" -> PlatformDiscord
//   - ".webhook.office.com" OR ".logic.azure.com" -> PlatformTeams
//   - "chat.googleapis.com" -> PlatformGoogleChat
//   - anything else -> PlatformGeneric
func (r *PlatformRegistry) Detect(url string) Platform {
	lowerURL := strings.ToLower(url)

	if strings.Contains(lowerURL, "hooks.slack.com") {
		return PlatformSlack
	}
	if strings.Contains(lowerURL, "discord.com/api/webhooks") {
		return PlatformDiscord
	}
	if strings.Contains(lowerURL, ".webhook.office.com") || strings.Contains(lowerURL, ".logic.azure.com") {
		return PlatformTeams
	}
	if strings.Contains(lowerURL, "chat.googleapis.com") {
		return PlatformGoogleChat
	}

	return PlatformGeneric
}

// Get returns the PlatformFormatter for the given platform.
// Returns the GenericFormatter if the platform is not registered.
func (r *PlatformRegistry) Get(p Platform) PlatformFormatter {
	if f, ok := r.formatters[p]; ok {
		return f
	}
	return r.formatters[PlatformGeneric]
}
