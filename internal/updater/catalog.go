package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/robust-labs/robustls/internal/branding"
)

const (
	// catalogTimeout bounds a single metadata or download request so an
	// unreachable endpoint cannot stall an interactive install.
	catalogTimeout = 30 * time.Second

	// fetchAttempts is the total number of tries (one retry) before a
	// network failure is surfaced.
	fetchAttempts = 2
)

// LatestRelease fetches metadata for the most recent published release.
// The first successful result is memoized for the lifetime of the Updater;
// later calls within the same run reuse it without touching the network.
// Failures are reported as ErrCatalogUnavailable.
func (u *Updater) LatestRelease(ctx context.Context) (*Release, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.latest != nil {
		return u.latest, nil
	}

	url := fmt.Sprintf("%s/repos/%s/releases/latest", u.apiBase, u.repo)

	var release *Release
	var err error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		release, err = u.fetchRelease(ctx, url)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	u.latest = release
	return release, nil
}

func (u *Updater) fetchRelease(ctx context.Context, url string) (*Release, error) {
	ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.UserAgent())

	// Support optional GitHub token for higher rate limits.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("release not found")
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("release endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}

	// If a mirror is configured, rewrite asset download URLs.
	if u.mirror != "" {
		for i := range release.Assets {
			release.Assets[i].DownloadURL = strings.TrimRight(u.mirror, "/") + "/" + release.Assets[i].Name
		}
	}

	return &release, nil
}
