package updater

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/robust-labs/robustls/internal/branding"
	"github.com/robust-labs/robustls/internal/platform"
)

// Store owns the on-disk server binary: presence checks, atomic installs,
// and replacement during updates. Only one orchestrator runs per editor
// session, so no cross-process locking is needed; the rename-based write
// alone guarantees a presence check never observes half-written bytes.
type Store struct {
	path string
}

// DefaultServerPath resolves where the server binary lives. The
// ROBUSTLS_SERVER_PATH environment variable takes precedence; otherwise the
// binary sits in ~/.robustls/bin/. The same resolution governs both the
// existence check and where updates are written.
func DefaultServerPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("SERVER_PATH")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	name := branding.ServerBinary() + platform.ExecutableSuffix()
	return filepath.Join(home, branding.HomeDir(), "bin", name), nil
}

// NewStore creates a Store for the binary at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the resolved binary path.
func (s *Store) Path() string { return s.path }

// Exists reports whether the binary is present. Absence is a valid answer,
// not an error.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Install moves the downloaded file at srcPath into place. The bytes are
// first copied to a temporary file in the target directory and then renamed
// over the destination, so a concurrent existence check can never see a
// partially written binary.
func (s *Store) Install(srcPath string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating binary directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating staging file: %w", err)
	}
	tmpPath := tmp.Name()

	src, err := os.Open(srcPath)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("opening downloaded file: %w", err)
	}

	_, copyErr := io.Copy(tmp, src)
	src.Close()
	if closeErr := tmp.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("staging binary: %w", copyErr)
	}

	// CreateTemp stages at 0600; the binary must be runnable the moment the
	// rename lands, before any verify probe. MarkExecutable remains the
	// explicit check for callers that need the failure surfaced.
	_ = os.Chmod(tmpPath, 0755)

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("installing binary: %w", err)
	}
	return nil
}

// Replace swaps the current binary for the file at srcPath, keeping a
// backup until the optional verify callback accepts the new binary. On
// verification failure the backup is restored and the error returned.
func (s *Store) Replace(srcPath string, verify func(path string) error) error {
	backupPath := s.path + ".backup"

	if err := os.Rename(s.path, backupPath); err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}

	if err := s.Install(srcPath); err != nil {
		s.rollback(backupPath)
		return err
	}

	if verify != nil {
		if err := verify(s.path); err != nil {
			s.rollback(backupPath)
			return fmt.Errorf("verification failed, rolled back: %w", err)
		}
	}

	os.Remove(backupPath)
	return nil
}

func (s *Store) rollback(backupPath string) {
	os.Remove(s.path)
	os.Rename(backupPath, s.path)
}

// MarkExecutable sets the executable bit on the installed binary. It is a
// no-op on Windows. Failure is reported as ErrPermissionDenied but never
// rolls back the write, since the bytes are already correct.
func (s *Store) MarkExecutable() error {
	if err := platform.Chmod(s.path, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return nil
}
