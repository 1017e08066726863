// Package platform provides the small cross-platform filesystem shims the
// launcher needs: permission management (a no-op on Windows, where
// executability is implied by the file extension) and executable naming.
package platform

import (
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if IsWindows() {
		return nil
	}
	return os.Chmod(path, mode)
}

// ExecutableSuffix returns ".exe" on Windows and "" elsewhere.
func ExecutableSuffix() string {
	if IsWindows() {
		return ".exe"
	}
	return ""
}

// IsWindows reports whether the current OS is Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
