package updater

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := &VersionCache{
		LatestVersion:    "1.3.0",
		InstalledVersion: "1.2.0",
		CheckedAt:        time.Now().Truncate(time.Second),
		UpdateAvailable:  true,
	}
	if err := SaveCache(dir, want); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	got, err := LoadCache(dir)
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	if got == nil {
		t.Fatal("LoadCache returned nil for saved cache")
	}
	if got.LatestVersion != want.LatestVersion ||
		got.InstalledVersion != want.InstalledVersion ||
		!got.CheckedAt.Equal(want.CheckedAt) ||
		got.UpdateAvailable != want.UpdateAvailable {
		t.Errorf("cache = %+v, want %+v", got, want)
	}
}

func TestLoadCacheMissing(t *testing.T) {
	cache, err := LoadCache(t.TempDir())
	if err != nil {
		t.Fatalf("LoadCache on empty dir: %v", err)
	}
	if cache != nil {
		t.Errorf("expected nil cache on first run, got %+v", cache)
	}
}

func TestIsCacheStale(t *testing.T) {
	tests := []struct {
		name  string
		cache *VersionCache
		want  bool
	}{
		{"nil cache", nil, true},
		{"fresh", &VersionCache{CheckedAt: time.Now()}, false},
		{"stale", &VersionCache{CheckedAt: time.Now().Add(-25 * time.Hour)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheStale(tt.cache, DefaultCacheMaxAge); got != tt.want {
				t.Errorf("IsCacheStale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrintUpdateBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintUpdateBanner(&buf, "1.2.0", "1.3.0")

	out := buf.String()
	if !strings.Contains(out, "1.2.0") || !strings.Contains(out, "1.3.0") {
		t.Errorf("banner missing versions: %q", out)
	}
	if !strings.Contains(out, "update") {
		t.Errorf("banner missing update hint: %q", out)
	}
}

func TestCheckAndPrintBannerFromCache(t *testing.T) {
	dir := t.TempDir()
	if err := SaveCache(dir, &VersionCache{
		LatestVersion:    "1.3.0",
		InstalledVersion: "1.2.0",
		CheckedAt:        time.Now(),
		UpdateAvailable:  true,
	}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	u := New("robust-labs/robust-lsp")
	u.CheckAndPrintBanner(&buf, dir, "/nonexistent/robust-lsp")

	if !strings.Contains(buf.String(), "1.3.0") {
		t.Errorf("banner not printed from fresh cache: %q", buf.String())
	}
}

func TestCheckAndPrintBannerQuietWhenCurrent(t *testing.T) {
	dir := t.TempDir()
	if err := SaveCache(dir, &VersionCache{
		LatestVersion:    "1.3.0",
		InstalledVersion: "1.3.0",
		CheckedAt:        time.Now(),
		UpdateAvailable:  false,
	}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	u := New("robust-labs/robust-lsp")
	u.CheckAndPrintBanner(&buf, dir, "/nonexistent/robust-lsp")

	if buf.Len() != 0 {
		t.Errorf("banner printed for up-to-date install: %q", buf.String())
	}
}
