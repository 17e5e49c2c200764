package releases

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultURL = "https://api.github.com/repos/XRPLF/rippled"

// latestRelease is the part of the GitHub release schema the feed reads.
type latestRelease struct {
	TagName *string `json:"tag_name"`
}

// Client reads the latest published release of a GitHub-hosted project.
type Client struct {
	repoURL    string
	httpClient *http.Client
}

func NewClient(repoURL string, timeout time.Duration) *Client {
	if repoURL == "" {
		repoURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		repoURL:    strings.TrimRight(repoURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LatestTag returns the tag of the latest release, or "" when the release has no tag.
func (c *Client) LatestTag(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.repoURL+"/releases/latest", nil)
	if err != nil {
		return "", fmt.Errorf("releases: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "xrpl-executor")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("releases: failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status code: %d", resp.StatusCode)
	}

	var release latestRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("releases: failed to decode response: %w", err)
	}
	if release.TagName == nil {
		return "", nil
	}
	return strings.TrimSpace(*release.TagName), nil
}
