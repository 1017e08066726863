package updater

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStoreExists(t *testing.T) {
	tmp := t.TempDir()
	store := NewStore(filepath.Join(tmp, "robust-lsp"))

	if store.Exists() {
		t.Error("Exists() = true for missing binary")
	}

	writeFile(t, tmp, "robust-lsp", []byte("binary"))
	if !store.Exists() {
		t.Error("Exists() = false after write")
	}
}

func TestStoreExistsDirectory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "robust-lsp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if NewStore(dir).Exists() {
		t.Error("Exists() = true for a directory")
	}
}

// Writing then checking and reading back must round-trip byte-identically.
func TestStoreInstallRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	content := []byte("#!/bin/sh\necho robust-lsp\n")
	src := writeFile(t, tmp, "download", content)

	store := NewStore(filepath.Join(tmp, "bin", "robust-lsp"))
	if err := store.Install(src); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if !store.Exists() {
		t.Fatal("Exists() = false after Install")
	}
	got, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("installed bytes differ from source")
	}

	// No staging leftovers next to the binary.
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the binary in bin/, found %d entries", len(entries))
	}
}

func TestStoreReplace(t *testing.T) {
	tmp := t.TempDir()
	store := NewStore(filepath.Join(tmp, "robust-lsp"))

	writeFile(t, tmp, "robust-lsp", []byte("old"))
	src := writeFile(t, tmp, "download", []byte("new"))

	if err := store.Replace(src, nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, _ := os.ReadFile(store.Path())
	if string(got) != "new" {
		t.Errorf("binary = %q, want %q", got, "new")
	}
	if _, err := os.Stat(store.Path() + ".backup"); !os.IsNotExist(err) {
		t.Error("backup not cleaned up after successful replace")
	}
}

func TestStoreReplaceRollsBackOnVerifyFailure(t *testing.T) {
	tmp := t.TempDir()
	store := NewStore(filepath.Join(tmp, "robust-lsp"))

	writeFile(t, tmp, "robust-lsp", []byte("old"))
	src := writeFile(t, tmp, "download", []byte("broken"))

	verify := func(path string) error { return fmt.Errorf("does not run") }
	if err := store.Replace(src, verify); err == nil {
		t.Fatal("expected Replace to fail verification")
	}

	got, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("binary missing after rollback: %v", err)
	}
	if string(got) != "old" {
		t.Errorf("binary = %q after rollback, want %q", got, "old")
	}
}

func TestStoreMarkExecutable(t *testing.T) {
	tmp := t.TempDir()
	store := NewStore(writeFile(t, tmp, "robust-lsp", []byte("binary")))

	if err := store.MarkExecutable(); err != nil {
		t.Fatalf("MarkExecutable failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(store.Path())
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0111 == 0 {
			t.Error("binary is not executable")
		}
	}
}

func TestStoreMarkExecutableMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod is a no-op on Windows")
	}
	store := NewStore(filepath.Join(t.TempDir(), "nope"))

	err := store.MarkExecutable()
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
