package updater

import (
	"fmt"
	"strings"
)

// Canonical tokens embedded in robust-lsp artifact names. Artifacts follow
// the pattern robust-lsp-<platform>-<arch>[.exe]. Keeping the raw to
// canonical mapping as explicit tables makes the supported pairs auditable.
var canonicalPlatform = map[string]string{
	"windows": "win",
	"win32":   "win",
	"win":     "win",
	"linux":   "linux",
	"darwin":  "macos",
	"macos":   "macos",
}

var canonicalArch = map[string]string{
	"amd64":   "x86_64",
	"x64":     "x86_64",
	"x86_64":  "x86_64",
	"arm64":   "aarch64",
	"aarch64": "aarch64",
}

// ResolveAsset picks the release artifact for the given platform and
// architecture. Asset names are split on "-" after stripping a trailing
// ".exe"; both the canonical platform token and the canonical architecture
// token must appear among the parts, so a platform-only match is not enough.
// The first matching asset wins, so resolution is deterministic. No match
// returns ErrAssetNotFound, the normal outcome on unsupported platforms.
func ResolveAsset(assets []Asset, platform, arch string) (*Asset, error) {
	osToken, ok := canonicalPlatform[strings.ToLower(platform)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported platform %q", ErrAssetNotFound, platform)
	}
	archToken, ok := canonicalArch[strings.ToLower(arch)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported architecture %q", ErrAssetNotFound, arch)
	}

	for i := range assets {
		name := strings.TrimSuffix(assets[i].Name, ".exe")
		parts := strings.Split(name, "-")
		if containsToken(parts, osToken) && containsToken(parts, archToken) {
			return &assets[i], nil
		}
	}

	return nil, fmt.Errorf("%w for %s/%s", ErrAssetNotFound, osToken, archToken)
}

func containsToken(parts []string, token string) bool {
	for _, p := range parts {
		if p == token {
			return true
		}
	}
	return false
}
