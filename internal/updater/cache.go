package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/robust-labs/robustls/internal/branding"
)

const (
	cacheFileName = "version-check.json"
	// DefaultCacheMaxAge is the maximum age of a cached version check.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache holds the cached result of a server version check. Only
// version strings are stored; release metadata itself is never persisted
// across runs.
type VersionCache struct {
	LatestVersion    string    `json:"latest_version"`
	InstalledVersion string    `json:"installed_version"`
	CheckedAt        time.Time `json:"checked_at"`
	UpdateAvailable  bool      `json:"update_available"`
}

// LoadCache reads the version cache from the config directory.
// Returns nil, nil if the cache file does not exist (first run).
func LoadCache(configDir string) (*VersionCache, error) {
	path := filepath.Join(configDir, cacheFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the version cache to the config directory.
func SaveCache(configDir string, cache *VersionCache) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	path := filepath.Join(configDir, cacheFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is older than maxAge or nil.
func IsCacheStale(cache *VersionCache, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	return time.Since(cache.CheckedAt) > maxAge
}

// CheckAndPrintBanner prints an update banner from the cached version check
// if a newer server is available. It never blocks: when the cache is stale,
// a background goroutine refreshes it for the next invocation.
func (u *Updater) CheckAndPrintBanner(w io.Writer, configDir, binPath string) {
	cache, err := LoadCache(configDir)
	if err != nil {
		// Silently ignore cache errors.
		return
	}

	if cache != nil && cache.UpdateAvailable {
		PrintUpdateBanner(w, cache.InstalledVersion, cache.LatestVersion)
	}

	if IsCacheStale(cache, DefaultCacheMaxAge) {
		go u.refreshCache(configDir, binPath)
	}
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, installed, latest string) {
	fmt.Fprintf(w, "\n%s update available: %s -> %s\n", branding.ServerBinary(), installed, latest)
	fmt.Fprintf(w, "    Run `%s update` to upgrade\n\n", branding.CLIName())
}

// refreshCache probes the installed binary, fetches the latest release, and
// rewrites the cache file. It runs in a background goroutine and never
// fails loudly.
func (u *Updater) refreshCache(configDir, binPath string) {
	ctx := context.Background()

	result, err := ProbeVersion(ctx, binPath)
	if err != nil {
		return
	}
	installed := result.Version()

	release, err := u.LatestRelease(ctx)
	if err != nil {
		return
	}
	latest := release.Tag()

	cache := &VersionCache{
		LatestVersion:    latest.String(),
		InstalledVersion: installed.String(),
		CheckedAt:        time.Now(),
		UpdateAvailable:  latest.Newer(installed),
	}

	// Silently ignore save errors.
	_ = SaveCache(configDir, cache)
}
