package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/robust-labs/robustls/internal/branding"
	"github.com/robust-labs/robustls/internal/config"
	"github.com/robust-labs/robustls/internal/settings"
	"github.com/robust-labs/robustls/internal/updater"
	"github.com/robust-labs/robustls/internal/ux"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the launcher environment",
	Long:  `Report resolved paths, override provenance, installed and latest server versions, and session settings validity.`,
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	config.Load()

	fmt.Fprintf(out, "%s %s on %s/%s\n\n", branding.CLIName(), buildVersion, runtime.GOOS, runtime.GOARCH)

	// Paths.
	fmt.Fprintf(out, "Config directory: %s\n", config.Dir())
	fmt.Fprintf(out, "Install directory: %s\n", config.BinDir())
	fmt.Fprintf(out, "Config file:      %s\n", existsMark(config.FilePath()))
	fmt.Fprintf(out, "Settings file:    %s\n", existsMark(settings.Path(config.Dir())))

	// Settings validity.
	st, err := settings.Load(config.Dir())
	if err != nil {
		ux.Errorf(out, "Session settings: %v", err)
		st = settings.Default()
	} else {
		ux.Successf(out, "Session settings valid (selector: %v, verbosity: %s)",
			st.DocumentSelector, st.Server.Verbosity)
	}

	// Server binary.
	path, err := resolveServerPath(st)
	if err != nil {
		return fmt.Errorf("resolving server path: %w", err)
	}
	fmt.Fprintf(out, "\nServer path:      %s (%s)\n", path, serverPathSource(st))

	store := updater.NewStore(path)
	if !store.Exists() {
		ux.Warnf(out, "%s is not installed (run `%s install`)", branding.ServerBinary(), branding.CLIName())
		return nil
	}

	probe, probeErr := updater.ProbeVersion(cmd.Context(), path)
	if probeErr != nil {
		ux.Errorf(out, "Installed binary did not report a version: %v", probeErr)
	} else {
		ux.Successf(out, "Installed version: %s", probe.Version())
	}

	release, err := newUpdater().LatestRelease(cmd.Context())
	if err != nil {
		ux.Warnf(out, "Could not reach the release catalog: %v", err)
		return nil
	}
	fmt.Fprintf(out, "Latest release:   %s\n", release.Tag())

	if probeErr == nil && release.Tag().Newer(probe.Version()) {
		ux.Warnf(out, "An update is available (run `%s update`)", branding.CLIName())
	}
	return nil
}

// serverPathSource names which layer supplied the server path.
func serverPathSource(st *settings.Settings) string {
	switch {
	case os.Getenv(branding.EnvVar("SERVER_PATH")) != "":
		return "env " + branding.EnvVar("SERVER_PATH")
	case config.Get(config.KeyServerPath) != "":
		return "config " + config.KeyServerPath
	case st != nil && st.Server.Path != "":
		return "settings server.path"
	default:
		return "default"
	}
}

func existsMark(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return path + " (missing)"
}
