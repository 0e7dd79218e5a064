// Package browser opens URLs in the user's default web browser.
package browser

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"

	"github.com/vultuk/agentrix/logutil"
)

// Open launches the system default browser at url. Only http and
// https URLs are accepted.
func Open(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("invalid URL scheme: URL must start with http:// or https://")
	}

	logutil.Debug("opening browser", "url", url)
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
