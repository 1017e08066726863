package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/robust-labs/robustls/internal/branding"
)

// State is a phase of the install/verify/update flow.
type State int

const (
	StateUninitialized State = iota
	StateCheckingPresence
	StateInstalling
	StateVerifyingVersion
	StateUpToDate
	StateUpdating
	StateReady
	StateAborted
)

var stateNames = map[State]string{
	StateUninitialized:    "uninitialized",
	StateCheckingPresence: "checking-presence",
	StateInstalling:       "installing",
	StateVerifyingVersion: "verifying-version",
	StateUpToDate:         "up-to-date",
	StateUpdating:         "updating",
	StateReady:            "ready",
	StateAborted:          "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Prompter asks the user to confirm a state transition. Every prompt offers
// a cancel path; cancellation short-circuits immediately, with no network
// or disk operation afterwards.
type Prompter interface {
	ConfirmInstall(ctx context.Context) (bool, error)
	ConfirmUpdate(ctx context.Context, installed, latest string) (bool, error)
}

// ProbeFunc reports the version of an installed binary.
type ProbeFunc func(ctx context.Context, binPath string) (*ProbeResult, error)

// Orchestrator decides and executes the install-or-update flow for the
// server binary, then hands control back to the caller for session launch.
// One Orchestrator serves one run; it is not reused.
type Orchestrator struct {
	updater *Updater
	store   *Store
	prompt  Prompter
	log     *slog.Logger
	out     io.Writer
	goos    string
	goarch  string
	probe   ProbeFunc

	state State
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithPlatform overrides the platform/architecture pair (useful for testing
// resolution without running on the target platform).
func WithPlatform(goos, goarch string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.goos = goos
		o.goarch = goarch
	}
}

// WithOutput sets the writer for user-visible messages.
func WithOutput(w io.Writer) OrchestratorOption {
	return func(o *Orchestrator) {
		if w != nil {
			o.out = w
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithProbe overrides the version probe (useful for testing).
func WithProbe(fn ProbeFunc) OrchestratorOption {
	return func(o *Orchestrator) {
		if fn != nil {
			o.probe = fn
		}
	}
}

// NewOrchestrator wires an Orchestrator from its collaborators.
func NewOrchestrator(u *Updater, store *Store, prompt Prompter, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		updater: u,
		store:   store,
		prompt:  prompt,
		log:     slog.Default(),
		out:     os.Stderr,
		goos:    runtime.GOOS,
		goarch:  runtime.GOARCH,
		probe:   ProbeVersion,
		state:   StateUninitialized,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current state.
func (o *Orchestrator) State() State { return o.state }

// Run executes the state machine and returns the terminal state: StateReady
// when the session may launch, StateAborted when it must not. Every failure
// class is converted into a single explanatory message on the output writer;
// Run never panics or returns a raw fault for expected failures. The
// returned error is non-nil only when the flow could not even start.
func (o *Orchestrator) Run(ctx context.Context) (State, error) {
	if o.state != StateUninitialized {
		return o.state, fmt.Errorf("orchestrator already ran (state %s)", o.state)
	}

	o.to(StateCheckingPresence)
	if !o.store.Exists() {
		return o.runInstall(ctx), nil
	}
	return o.runVerify(ctx), nil
}

// runInstall handles the binary-absent branch: confirm, fetch, resolve,
// download, install.
func (o *Orchestrator) runInstall(ctx context.Context) State {
	o.to(StateInstalling)

	ok, err := o.prompt.ConfirmInstall(ctx)
	if err != nil || !ok {
		o.infof("%s installation cancelled.", o.serverName())
		return o.to(StateAborted)
	}

	if err := o.fetchAndInstall(ctx, false); err != nil {
		o.explain(err)
		return o.to(StateAborted)
	}

	o.infof("%s installed to %s.", o.serverName(), o.store.Path())
	return o.to(StateReady)
}

// runVerify handles the binary-present branch: probe, compare, and offer an
// advisory update. Nothing on this path may block startup.
func (o *Orchestrator) runVerify(ctx context.Context) State {
	o.to(StateVerifyingVersion)

	result, err := o.probe(ctx, o.store.Path())
	if err != nil {
		o.log.Warn("version probe failed, skipping update check",
			"path", o.store.Path(), "error", err)
		return o.to(StateReady)
	}
	installed := result.Version()

	release, err := o.updater.LatestRelease(ctx)
	if err != nil {
		o.log.Warn("release check failed, launching installed binary", "error", err)
		return o.to(StateReady)
	}
	latest := release.Tag()

	if !latest.Newer(installed) {
		o.to(StateUpToDate)
		return o.to(StateReady)
	}

	o.to(StateUpdating)
	ok, err := o.prompt.ConfirmUpdate(ctx, installed.String(), latest.String())
	if err != nil || !ok {
		// Update is advisory: an outdated binary still launches.
		return o.to(StateReady)
	}

	if err := o.fetchAndInstall(ctx, true); err != nil {
		o.explain(err)
		o.log.Warn("update failed, launching existing binary", "error", err)
		return o.to(StateReady)
	}

	o.infof("%s updated to %s.", o.serverName(), latest)
	return o.to(StateReady)
}

// fetchAndInstall resolves the asset for the current platform, downloads it,
// and writes it into the store. No write happens before a successful
// resolution; the executable bit is set only after a successful write.
func (o *Orchestrator) fetchAndInstall(ctx context.Context, replace bool) error {
	release, err := o.updater.LatestRelease(ctx)
	if err != nil {
		return err
	}

	asset, err := ResolveAsset(release.Assets, o.goos, o.goarch)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "robustls-download-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer os.RemoveAll(tmpDir)

	srcPath, err := o.updater.DownloadAsset(ctx, asset, tmpDir)
	if err != nil {
		return err
	}

	if replace {
		err = o.store.Replace(srcPath, nil)
	} else {
		err = o.store.Install(srcPath)
	}
	if err != nil {
		return err
	}

	if err := o.store.MarkExecutable(); err != nil {
		// Bytes are correct; only the permission bit failed.
		o.log.Warn("could not mark binary executable", "path", o.store.Path(), "error", err)
	}
	return nil
}

// explain prints one user-visible message naming the failure class.
func (o *Orchestrator) explain(err error) {
	switch {
	case errors.Is(err, ErrCatalogUnavailable):
		o.infof("Could not reach the release catalog. Check your network and try again.")
	case errors.Is(err, ErrAssetNotFound):
		o.infof("No %s release is published for %s/%s.", o.serverName(), o.goos, o.goarch)
	case errors.Is(err, ErrDownloadFailed):
		o.infof("Downloading %s failed. The existing installation was left untouched.", o.serverName())
	default:
		o.infof("Installing %s failed: %v", o.serverName(), err)
	}
}

func (o *Orchestrator) to(s State) State {
	o.log.Debug("state transition", "from", o.state.String(), "to", s.String())
	o.state = s
	return s
}

func (o *Orchestrator) infof(format string, args ...any) {
	fmt.Fprintf(o.out, format+"\n", args...)
}

func (o *Orchestrator) serverName() string {
	return branding.ServerBinary()
}
