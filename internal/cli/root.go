package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/robust-labs/robustls/internal/branding"
	"github.com/robust-labs/robustls/internal/config"
	"github.com/robust-labs/robustls/internal/settings"
	"github.com/robust-labs/robustls/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps a local robust-lsp language server installed and
current: it resolves the right binary for this platform, installs or updates
it from the latest published release, and launches it for the editor session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Commands that manage server state run their own checks.
		name := cmd.Name()
		if name == "start" || name == "install" || name == "update" {
			return
		}

		// Non-blocking banner from the cached version check.
		path, err := resolveServerPath(nil)
		if err != nil {
			return
		}
		newUpdater().CheckAndPrintBanner(os.Stderr, config.Dir(), path)
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// newUpdater builds an Updater honoring the configured download mirror.
func newUpdater() *updater.Updater {
	config.Load()
	mirror := config.Get(config.KeyMirror)
	if envMirror := os.Getenv(branding.EnvVar("MIRROR")); envMirror != "" {
		mirror = envMirror
	}

	var opts []updater.Option
	if mirror != "" {
		opts = append(opts, updater.WithMirror(mirror))
	}
	return updater.New(branding.ServerRepo(), opts...)
}

// resolveServerPath resolves where the server binary lives. Precedence:
// ROBUSTLS_SERVER_PATH env var, then the launcher config, then the session
// settings file, then ~/.robustls/bin/. The same path governs the existence
// check and where installs and updates are written.
func resolveServerPath(st *settings.Settings) (string, error) {
	if v := os.Getenv(branding.EnvVar("SERVER_PATH")); v != "" {
		return v, nil
	}

	config.Load()
	if v := config.Get(config.KeyServerPath); v != "" {
		return v, nil
	}

	if st != nil && st.Server.Path != "" {
		return st.Server.Path, nil
	}

	return updater.DefaultServerPath()
}
