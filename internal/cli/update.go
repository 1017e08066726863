package cli

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/robust-labs/robustls/internal/branding"
	"github.com/robust-labs/robustls/internal/config"
	"github.com/robust-labs/robustls/internal/settings"
	"github.com/robust-labs/robustls/internal/updater"
	"github.com/robust-labs/robustls/internal/ux"
)

var (
	updateCheck bool
	updateForce bool
)

func init() {
	updateCmd.Flags().BoolVar(&updateCheck, "check", false, "Only check for updates, don't install")
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "Update even if already on the latest version")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the robust-lsp server to the latest release",
	Long: `Compare the installed server's reported version against the latest
published release and replace the binary if it is outdated.

  robustls update           # update to latest
  robustls update --check   # check only
  robustls update --force   # reinstall latest regardless`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	config.Load()
	st, err := settings.Load(config.Dir())
	if err != nil {
		return fmt.Errorf("loading session settings: %w", err)
	}

	path, err := resolveServerPath(st)
	if err != nil {
		return fmt.Errorf("resolving server path: %w", err)
	}
	store := updater.NewStore(path)

	if !store.Exists() {
		return fmt.Errorf("%s is not installed at %s (run `%s install` first)",
			branding.ServerBinary(), path, branding.CLIName())
	}

	ctx := cmd.Context()

	probe, err := updater.ProbeVersion(ctx, path)
	if err != nil {
		return fmt.Errorf("probing installed version: %w", err)
	}
	installed := probe.Version()

	u := newUpdater()
	fmt.Fprintln(cmd.ErrOrStderr(), "Checking for updates...")
	release, err := u.LatestRelease(ctx)
	if err != nil {
		return err
	}
	latest := release.Tag()

	if updateCheck {
		if latest.Newer(installed) {
			fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s -> %s\n", installed, latest)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is on the latest version (%s)\n", branding.ServerBinary(), installed)
		}
		return nil
	}

	if !latest.Newer(installed) && !updateForce {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is on the latest version (%s)\n", branding.ServerBinary(), installed)
		return nil
	}

	asset, err := updater.ResolveAsset(release.Assets, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Downloading %s %s for %s/%s...\n",
		branding.ServerBinary(), release.TagName, runtime.GOOS, runtime.GOARCH)

	tmpDir, err := os.MkdirTemp("", "robustls-update-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	srcPath, err := u.DownloadAsset(ctx, asset, tmpDir)
	if err != nil {
		return err
	}

	// Verify the replacement responds to its version flag before dropping
	// the backup.
	verify := func(binPath string) error {
		_, probeErr := updater.ProbeVersion(ctx, binPath)
		return probeErr
	}
	if err := store.Replace(srcPath, verify); err != nil {
		return err
	}

	if err := store.MarkExecutable(); err != nil {
		ux.Warnf(cmd.ErrOrStderr(), "%v", err)
	}

	_ = updater.SaveCache(config.Dir(), &updater.VersionCache{
		LatestVersion:    latest.String(),
		InstalledVersion: latest.String(),
		CheckedAt:        time.Now(),
		UpdateAvailable:  false,
	})

	ux.Successf(cmd.OutOrStdout(), "Updated %s to %s", branding.ServerBinary(), latest)
	return nil
}
