package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func fakeServer(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "robust-lsp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewLauncherDefaults(t *testing.T) {
	l := NewLauncher(Config{Command: "/usr/bin/robust-lsp"})
	cfg := l.Config()

	if cfg.Verbosity != "info" {
		t.Errorf("Verbosity = %q, want info", cfg.Verbosity)
	}
	want := DefaultDocumentSelector()
	if len(cfg.DocumentSelector) != len(want) {
		t.Fatalf("DocumentSelector = %v, want %v", cfg.DocumentSelector, want)
	}
	for i, kind := range want {
		if cfg.DocumentSelector[i] != kind {
			t.Errorf("DocumentSelector[%d] = %q, want %q", i, cfg.DocumentSelector[i], kind)
		}
	}
	if cfg.Stdin != os.Stdin || cfg.Stdout != os.Stdout || cfg.Stderr != os.Stderr {
		t.Error("stdio defaults not wired to the process streams")
	}
}

func TestNewLauncherKeepsExplicitConfig(t *testing.T) {
	l := NewLauncher(Config{
		Command:          "/usr/bin/robust-lsp",
		Verbosity:        "debug",
		DocumentSelector: []string{"yaml"},
	})
	cfg := l.Config()

	if cfg.Verbosity != "debug" {
		t.Errorf("Verbosity = %q, want debug", cfg.Verbosity)
	}
	if len(cfg.DocumentSelector) != 1 || cfg.DocumentSelector[0] != "yaml" {
		t.Errorf("DocumentSelector = %v, want [yaml]", cfg.DocumentSelector)
	}
}

func TestLaunchPassesVerbosityEnv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "env.txt")
	bin := fakeServer(t, `printf '%s' "$RUST_LOG" > `+out)

	l := NewLauncher(Config{Command: bin, Verbosity: "trace"})
	if err := l.Launch(context.Background()); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "trace" {
		t.Errorf("RUST_LOG = %q, want trace", got)
	}
}

func TestLaunchExactlyOnce(t *testing.T) {
	bin := fakeServer(t, "exit 0")

	l := NewLauncher(Config{Command: bin})
	if err := l.Launch(context.Background()); err != nil {
		t.Fatalf("first Launch failed: %v", err)
	}
	if err := l.Launch(context.Background()); !errors.Is(err, ErrAlreadyLaunched) {
		t.Fatalf("second Launch = %v, want ErrAlreadyLaunched", err)
	}
}

func TestLaunchReportsServerFailure(t *testing.T) {
	bin := fakeServer(t, "exit 7")

	l := NewLauncher(Config{Command: bin})
	if err := l.Launch(context.Background()); err == nil {
		t.Fatal("expected error for non-zero server exit")
	}
}
