package feed

import (
	"net/http"
)

// addFeedHeaders sets headers for catalog API requests.
// arXiv asks automated clients to identify themselves, so the user agent is always set.
func addFeedHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")
}
