package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robust-labs/robustls/internal/branding"
	"github.com/robust-labs/robustls/internal/config"
	"github.com/robust-labs/robustls/internal/logging"
	"github.com/robust-labs/robustls/internal/session"
	"github.com/robust-labs/robustls/internal/settings"
	"github.com/robust-labs/robustls/internal/updater"
	"github.com/robust-labs/robustls/internal/ux"
)

var startYes bool

func init() {
	startCmd.Flags().BoolVarP(&startYes, "yes", "y", false, "Answer yes to install/update prompts (headless use)")
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Ensure the server is installed and current, then launch it",
	Long: `Start runs the full bootstrap sequence: check whether robust-lsp is
installed, install it (with confirmation) if missing, offer an update if the
installed version is older than the latest release, then launch the server
wired to this process's stdio for the editor session.

Editors should configure this command as the language server executable.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	config.Load()
	logger := logging.New(logging.ParseLevel(config.Get(config.KeyLogLevel)))

	st, err := settings.Load(config.Dir())
	if err != nil {
		return fmt.Errorf("loading session settings: %w", err)
	}
	// The launcher config (and ROBUSTLS_SERVER_VERBOSITY) outranks the
	// session settings file.
	if v := config.Get(config.KeyVerbosity); v != "" {
		st.Server.Verbosity = v
	}

	path, err := resolveServerPath(st)
	if err != nil {
		return fmt.Errorf("resolving server path: %w", err)
	}

	var prompt updater.Prompter = ux.ConsolePrompter{}
	if startYes {
		prompt = autoConfirm{}
	}

	orch := updater.NewOrchestrator(
		newUpdater(),
		updater.NewStore(path),
		prompt,
		updater.WithLogger(logger),
		updater.WithOutput(cmd.ErrOrStderr()),
	)

	state, err := orch.Run(cmd.Context())
	if err != nil {
		return err
	}
	if state != updater.StateReady {
		// Aborted: the orchestrator already explained why. The session
		// must not start.
		return nil
	}

	launcher := session.NewLauncher(session.Config{
		Command:          path,
		Verbosity:        st.Server.Verbosity,
		DocumentSelector: st.DocumentSelector,
	})
	return launcher.Launch(cmd.Context())
}

// autoConfirm accepts every prompt; used by --yes for headless installs.
type autoConfirm struct{}

func (autoConfirm) ConfirmInstall(context.Context) (bool, error) { return true, nil }

func (autoConfirm) ConfirmUpdate(ctx context.Context, installed, latest string) (bool, error) {
	fmt.Fprintf(os.Stderr, "Updating %s %s -> %s\n", branding.ServerBinary(), installed, latest)
	return true, nil
}
