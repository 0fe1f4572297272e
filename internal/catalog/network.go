package catalog

import (
	"context"
	"net/http"
)

// DefaultProbeURL is requested by IsConnected when no URL is given.
const DefaultProbeURL = "https://www.google.com"

// IsConnected reports whether a HEAD request to probeURL succeeds.
func IsConnected(ctx context.Context, client *http.Client, probeURL string) bool {
	if client == nil {
		client = http.DefaultClient
	}
	if probeURL == "" {
		probeURL = DefaultProbeURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
