package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "robust-lsp")
	if err := os.WriteFile(path, []byte("binary"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0755); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0755 {
			t.Errorf("permissions = %o, want %o", perm, 0755)
		}
	}
}

func TestExecutableSuffix(t *testing.T) {
	suffix := ExecutableSuffix()
	if runtime.GOOS == "windows" {
		if suffix != ".exe" {
			t.Errorf("ExecutableSuffix() = %q, want .exe", suffix)
		}
	} else if suffix != "" {
		t.Errorf("ExecutableSuffix() = %q, want empty", suffix)
	}
}
