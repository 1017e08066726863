package updater

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// probeTimeout bounds the version probe; the server prints its version and
// exits immediately, so anything slower is treated as a failure.
const probeTimeout = 5 * time.Second

// ProbeResult is the structured outcome of a subprocess invocation. All
// decisions gate on ExitCode; output presence alone never implies success.
type ProbeResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Version returns the reported version tag: the first line of stdout, with
// an optional "v" prefix tolerated by ParseTag.
func (r *ProbeResult) Version() VersionTag {
	line, _, _ := strings.Cut(r.Stdout, "\n")
	return ParseTag(line)
}

// ProbeVersion invokes the installed binary with its version flag and
// captures the result. Invocation failure or a non-zero exit is reported as
// ErrVersionProbeFailed; callers log it and skip the update check rather
// than blocking startup.
func ProbeVersion(ctx context.Context, binPath string) (*ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binPath, "-v")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &ProbeResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("%w: exit code %d", ErrVersionProbeFailed, result.ExitCode)
		}
		return result, fmt.Errorf("%w: %v", ErrVersionProbeFailed, err)
	}

	return result, nil
}
