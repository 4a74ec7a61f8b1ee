package publisher

import (
	"errors"
	"fmt"
	"strings"
)

// DeveloperPortalURL is where app permissions and tokens are managed.
const DeveloperPortalURL = "https://developer.twitter.com/en/portal/dashboard"

// PermissionFixSteps lists how to grant write access to the app.
var PermissionFixSteps = []string{
	"Go to " + DeveloperPortalURL,
	"Select your app",
	"Go to 'App permissions' section",
	"Change from 'Read' to 'Read and Write'",
	"Save changes and regenerate your Access Token & Secret",
	"Update your .env file with the new tokens",
}

// Guidance returns operator-facing advice for a classified publishing
// error, or "" when there is none.
func Guidance(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "Set the TWITTER_* variables in your .env file or environment."
	case errors.Is(err, ErrAuthentication):
		return "Invalid API credentials. Please check your .env file."
	case errors.Is(err, ErrPermission):
		return "Your app doesn't have write permissions. To fix this:\n" + numbered(PermissionFixSteps)
	case errors.Is(err, ErrRateLimit):
		return "Too many requests. Please wait before trying again."
	default:
		return ""
	}
}

func numbered(steps []string) string {
	var b strings.Builder
	for i, s := range steps {
		fmt.Fprintf(&b, "  %d. %s", i+1, s)
		if i < len(steps)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
