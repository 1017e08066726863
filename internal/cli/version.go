package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robust-labs/robustls/internal/branding"
	"github.com/robust-labs/robustls/internal/config"
	"github.com/robust-labs/robustls/internal/settings"
	"github.com/robust-labs/robustls/internal/updater"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print launcher version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print launcher and server version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
			return nil
		}

		serverVersion := installedServerVersion(cmd)

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
				"server":  serverVersion,
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s)\n",
			branding.CLIName(), buildVersion, buildCommit, buildDate)
		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", branding.ServerBinary(), serverVersion)
		return nil
	},
}

// installedServerVersion probes the installed binary, or reports why it
// could not.
func installedServerVersion(cmd *cobra.Command) string {
	config.Load()
	st, err := settings.Load(config.Dir())
	if err != nil {
		st = settings.Default()
	}
	path, err := resolveServerPath(st)
	if err != nil {
		return "unknown"
	}
	store := updater.NewStore(path)
	if !store.Exists() {
		return "not installed"
	}
	probe, err := updater.ProbeVersion(cmd.Context(), path)
	if err != nil {
		return "unknown"
	}
	return probe.Version().String()
}
