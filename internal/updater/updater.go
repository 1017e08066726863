package updater

import (
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// Release represents a published robust-lsp release.
type Release struct {
	TagName   string    `json:"tag_name"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Tag returns the release version as a VersionTag.
func (r *Release) Tag() VersionTag {
	return ParseTag(r.TagName)
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Updater fetches release metadata and downloads server binaries. The latest
// release is memoized per instance, so the install path and a later update
// check within one run share a single fetch. Instances are scoped to one
// orchestrator run and discarded with it.
type Updater struct {
	httpClient *http.Client
	apiBase    string
	repo       string
	mirror     string
	progress   io.Writer

	mu     sync.Mutex
	latest *Release
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		if c != nil {
			u.httpClient = c
		}
	}
}

// WithAPIBase overrides the release API base URL.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		if base != "" {
			u.apiBase = base
		}
	}
}

// WithMirror sets a mirror URL for downloading release assets.
func WithMirror(mirror string) Option {
	return func(u *Updater) {
		u.mirror = mirror
	}
}

// WithProgress sets the writer for download progress output.
func WithProgress(w io.Writer) Option {
	return func(u *Updater) {
		if w != nil {
			u.progress = w
		}
	}
}

// New creates an Updater for the given "owner/repo" release source.
func New(repo string, opts ...Option) *Updater {
	u := &Updater{
		httpClient: http.DefaultClient,
		apiBase:    "https://api.github.com",
		repo:       repo,
		progress:   os.Stderr,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
