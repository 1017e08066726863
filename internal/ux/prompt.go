package ux

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/robust-labs/robustls/internal/branding"
)

// ConsolePrompter implements the orchestrator's Prompter contract with
// interactive terminal confirm dialogs. Ctrl-C and an explicit Cancel both
// read as "no"; declining is a decision, not an error.
type ConsolePrompter struct{}

// ConfirmInstall asks whether the missing server binary should be
// downloaded and installed.
func (ConsolePrompter) ConfirmInstall(ctx context.Context) (bool, error) {
	return runConfirm(ctx,
		fmt.Sprintf("%s is not installed", branding.ServerBinary()),
		"Download and install the latest release?",
		"Install")
}

// ConfirmUpdate asks whether an outdated server binary should be replaced.
func (ConsolePrompter) ConfirmUpdate(ctx context.Context, installed, latest string) (bool, error) {
	return runConfirm(ctx,
		fmt.Sprintf("%s %s is available (installed: %s)", branding.ServerBinary(), latest, installed),
		"Download and install the update?",
		"Update")
}

func runConfirm(ctx context.Context, title, description, affirmative string) (bool, error) {
	confirm := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative(affirmative).
			Negative("Cancel").
			Value(&confirm),
	))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirm, nil
}
