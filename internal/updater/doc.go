// Package updater implements the install/verify/update flow for the managed
// robust-lsp server binary. It checks GitHub Releases (or a configured
// mirror) for the latest version, matches the artifact for the current
// platform, downloads it, and installs or replaces the binary on disk. The
// Orchestrator ties these pieces into the state machine that runs before
// every session launch.
package updater
