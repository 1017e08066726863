// Package branding provides compile-time identity values for the launcher.
//
// Forkers edit branding.yaml in this directory; //go:embed bakes it into
// the binary so a rebrand needs no source changes.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	ServerRepo   string `yaml:"server_repo"`
	ServerBinary string `yaml:"server_binary"`
	UserAgent    string `yaml:"user_agent"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:      "robustls",
			DisplayName:  "RobustLS",
			Description:  "Installer and launcher for the robust-lsp language server",
			HomeDir:      ".robustls",
			EnvPrefix:    "ROBUSTLS",
			GoModule:     "github.com/robust-labs/robustls",
			ServerRepo:   "robust-labs/robust-lsp",
			ServerBinary: "robust-lsp",
			UserAgent:    "robustls-launcher",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "robustls").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".robustls").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ROBUSTLS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ServerRepo returns the "owner/repo" string the server is released from.
func ServerRepo() string { load(); return defaults.ServerRepo }

// ServerBinary returns the base name of the managed server executable.
func ServerBinary() string { load(); return defaults.ServerBinary }

// UserAgent returns the client identifier sent on all outbound HTTP requests.
func UserAgent() string { load(); return defaults.UserAgent }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("SERVER_PATH")
// yields "ROBUSTLS_SERVER_PATH".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
