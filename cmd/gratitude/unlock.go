// ABOUTME: Passcode gate run before any command that reads the journal.
// ABOUTME: Takes --passcode, $GRATITUDE_PASSCODE, or prompts on a terminal without echo.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harper/gratitude/internal/settings"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errPasscodeRequired = errors.New("journal is locked: pass --passcode or set GRATITUDE_PASSCODE")

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal reports whether stdin is interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (a *app) unlock(cmd *cobra.Command) error {
	prefs, err := a.settings.Load()
	if err != nil {
		return err
	}
	if !prefs.HasPasscode() {
		return nil
	}

	code := a.passcode
	if code == "" {
		code = os.Getenv("GRATITUDE_PASSCODE")
	}
	if code == "" {
		// The mcp server owns stdin, so it can never prompt.
		if cmd.Name() == "mcp" || !isTerminal() {
			return errPasscodeRequired
		}
		code, err = promptSecret(os.Stderr, "Passcode: ")
		if err != nil {
			return err
		}
	}

	if err := a.settings.VerifyPasscode(code); err != nil {
		if errors.Is(err, settings.ErrPasscodeMismatch) {
			return errors.New("wrong passcode")
		}
		return err
	}
	return nil
}

// promptSecret reads a line from the terminal without echo.
func promptSecret(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read passcode: %w", err)
	}
	return string(secret), nil
}
