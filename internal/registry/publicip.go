package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ipifyURL is a variable so tests can point it at a local server.
var ipifyURL = "https://api.ipify.org?format=text"

// PublicIP detects the WAN address of this host via ipify.
func PublicIP(ctx context.Context) (string, error) {
	httpc := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ipifyURL, nil)
	if err != nil {
		return "", fmt.Errorf("detecting WAN host: %w", err)
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("detecting WAN host: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("detecting WAN host: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("detecting WAN host: %w", err)
	}

	ip := strings.TrimSpace(string(body))
	if ip == "" {
		return "", fmt.Errorf("detecting WAN host: empty response")
	}
	return ip, nil
}
