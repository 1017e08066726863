// Package session hands a verified server binary off to the protocol
// session. The launcher starts robust-lsp as a long-lived subprocess wired
// to the editor through inherited stdio; the LSP conversation itself is
// owned by the editor's client and the server, not by this package.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync/atomic"
)

// ErrAlreadyLaunched guards the exactly-once handoff: a launcher must not
// be started from more than one terminal state of the same run.
var ErrAlreadyLaunched = errors.New("session already launched")

// DefaultDocumentSelector lists the source kinds robust-lsp analyzes:
// RobustToolbox YAML prototypes, C#, and Fluent localization files.
func DefaultDocumentSelector() []string {
	return []string{"yaml", "csharp", "fluent"}
}

// Config describes a session handoff.
type Config struct {
	// Command is the resolved server binary path.
	Command string
	// Verbosity is passed to the server via RUST_LOG.
	Verbosity string
	// DocumentSelector is the set of source kinds the session runtime
	// activates for. Defaults to DefaultDocumentSelector.
	DocumentSelector []string
	// Stdin/Stdout/Stderr default to the process's own streams so the
	// editor client speaks to the server directly through us.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Launcher starts the server subprocess exactly once.
type Launcher struct {
	cfg      Config
	launched atomic.Bool
}

// NewLauncher creates a Launcher, filling in config defaults.
func NewLauncher(cfg Config) *Launcher {
	if len(cfg.DocumentSelector) == 0 {
		cfg.DocumentSelector = DefaultDocumentSelector()
	}
	if cfg.Verbosity == "" {
		cfg.Verbosity = "info"
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &Launcher{cfg: cfg}
}

// Config returns the handoff configuration.
func (l *Launcher) Config() Config { return l.cfg }

// Launch starts the server and blocks until it exits or ctx is cancelled.
// A second call returns ErrAlreadyLaunched without starting anything.
func (l *Launcher) Launch(ctx context.Context) error {
	if !l.launched.CompareAndSwap(false, true) {
		return ErrAlreadyLaunched
	}

	cmd := exec.CommandContext(ctx, l.cfg.Command)
	cmd.Stdin = l.cfg.Stdin
	cmd.Stdout = l.cfg.Stdout
	cmd.Stderr = l.cfg.Stderr
	cmd.Env = append(os.Environ(), "RUST_LOG="+l.cfg.Verbosity)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", l.cfg.Command, err)
	}
	return nil
}
