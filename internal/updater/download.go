package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/robust-labs/robustls/internal/branding"
)

// DownloadAsset downloads a release artifact into destDir and returns the
// path of the downloaded file. The response body is written verbatim, since
// robust-lsp publishes bare executables, not archives. A failed transfer is
// retried once, then surfaced as ErrDownloadFailed; the partial file is
// removed so it can never be mistaken for an installed binary.
func (u *Updater) DownloadAsset(ctx context.Context, asset *Asset, destDir string) (string, error) {
	destPath := filepath.Join(destDir, asset.Name)

	var err error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		err = u.downloadTo(ctx, asset, destPath)
		if err == nil {
			return destPath, nil
		}
		os.Remove(destPath)
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
}

func (u *Updater) downloadTo(ctx context.Context, asset *Asset, destPath string) error {
	ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	total := resp.ContentLength
	var downloaded int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			if total > 0 {
				percent := int(downloaded * 100 / total)
				if percent != lastPercent {
					fmt.Fprintf(u.progress, "\rDownloading... %d%%", percent)
					lastPercent = percent
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading download stream: %w", readErr)
		}
	}
	if total > 0 {
		fmt.Fprintln(u.progress)
	}

	return f.Close()
}
