package luno

import "net/url"

const maxLoggedBody = 512

// maskURL strips credentials that could appear in a URL before it is
// logged. Query values are kept; the API carries nothing secret there.
func maskURL(u *url.URL) string {
	masked := *u
	masked.User = nil
	return masked.String()
}

func truncateBody(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
