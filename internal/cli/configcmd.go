package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robust-labs/robustls/internal/config"
	"github.com/robust-labs/robustls/internal/ux"
)

var knownConfigKeys = []string{
	config.KeyServerPath,
	config.KeyMirror,
	config.KeyLogLevel,
	config.KeyVerbosity,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write launcher configuration",
	Long: `Manage the launcher configuration stored in ~/.robustls/config.yaml.

Recognized keys:
  server.path       Where the server binary is installed and looked up
  server.verbosity  Log verbosity passed to the server (RUST_LOG)
  mirror            Base URL for downloading release assets
  log.level         Launcher diagnostic log level`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if err := checkConfigKey(key); err != nil {
			return err
		}
		config.Load()
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(key))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := checkConfigKey(key); err != nil {
			return err
		}
		config.Load()
		if err := config.Set(key, value); err != nil {
			return err
		}
		ux.Successf(cmd.OutOrStdout(), "%s = %s", key, value)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all recognized keys and their current values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		keys := append([]string(nil), knownConfigKeys...)
		sort.Strings(keys)
		for _, key := range keys {
			value := config.Get(key)
			if value == "" {
				value = "(unset)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", key, value)
		}
		return nil
	},
}

func checkConfigKey(key string) error {
	for _, k := range knownConfigKeys {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(knownConfigKeys, ", "))
}
