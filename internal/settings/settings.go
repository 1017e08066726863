// Package settings loads the session handoff settings file
// (~/.robustls/session.yaml): the server path override, log verbosity
// passed to the server, and the document selector the session runtime
// activates for. The file is optional; every field has a default. Files
// that do exist are validated against an embedded JSON schema so typos
// surface as named issues instead of silently ignored keys.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/robust-labs/robustls/internal/session"
)

// FileName is the settings file name inside the launcher home directory.
const FileName = "session.yaml"

// Settings is the parsed session handoff configuration.
type Settings struct {
	Server struct {
		// Path overrides where the server binary is looked up and written.
		Path string `yaml:"path"`
		// Verbosity is forwarded to the server via RUST_LOG.
		Verbosity string `yaml:"verbosity"`
	} `yaml:"server"`
	// DocumentSelector lists the source kinds the session activates for.
	DocumentSelector []string `yaml:"documentSelector"`
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	var s Settings
	s.Server.Verbosity = "info"
	s.DocumentSelector = session.DefaultDocumentSelector()
	return &s
}

// Path returns the settings file location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, FileName)
}

// Load reads the settings file from configDir. A missing file yields the
// defaults; a present but invalid file is an error naming each issue.
func Load(configDir string) (*Settings, error) {
	data, err := os.ReadFile(Path(configDir))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes raw settings YAML.
func Parse(data []byte) (*Settings, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid settings: %s", result.Issues[0].Message)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if len(s.DocumentSelector) == 0 {
		s.DocumentSelector = session.DefaultDocumentSelector()
	}
	if s.Server.Verbosity == "" {
		s.Server.Verbosity = "info"
	}
	return s, nil
}
