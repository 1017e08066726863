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

var installForce bool

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Reinstall even if the server is already present")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the robust-lsp server binary",
	Long: `Download the latest robust-lsp release for this platform and install it
to the resolved server path (ROBUSTLS_SERVER_PATH, the server.path config
key, or ~/.robustls/bin/). Running install explicitly never prompts.`,
	Args: cobra.NoArgs,
	RunE: runInstallServer,
}

func runInstallServer(cmd *cobra.Command, args []string) error {
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

	if store.Exists() && !installForce {
		ux.Mutedf(cmd.OutOrStdout(), "%s is already installed at %s (use --force to reinstall).",
			branding.ServerBinary(), path)
		return nil
	}

	u := newUpdater()
	ctx := cmd.Context()

	fmt.Fprintln(cmd.ErrOrStderr(), "Checking latest release...")
	release, err := u.LatestRelease(ctx)
	if err != nil {
		return err
	}

	asset, err := updater.ResolveAsset(release.Assets, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Downloading %s %s for %s/%s...\n",
		branding.ServerBinary(), release.TagName, runtime.GOOS, runtime.GOARCH)

	tmpDir, err := os.MkdirTemp("", "robustls-install-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	srcPath, err := u.DownloadAsset(ctx, asset, tmpDir)
	if err != nil {
		return err
	}

	if store.Exists() {
		err = store.Replace(srcPath, nil)
	} else {
		err = store.Install(srcPath)
	}
	if err != nil {
		return err
	}

	if err := store.MarkExecutable(); err != nil {
		ux.Warnf(cmd.ErrOrStderr(), "%v", err)
	}

	ux.Successf(cmd.OutOrStdout(), "Installed %s %s to %s", branding.ServerBinary(), release.TagName, path)
	return nil
}
