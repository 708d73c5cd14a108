// ABOUTME: Settings subcommands: show, set, and passcode.
// ABOUTME: Values are validated by the settings store before saving.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/gratitude/internal/settings"
	"github.com/harper/gratitude/internal/ui"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		Long: `Show or change preferences.

Commands:
  show      - Show current preferences
  set       - Change font size, calendar start day or language
  passcode  - Set, change or clear the journal passcode`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := a.settings.Load()
			if err != nil {
				return err
			}
			printSettings(prefs)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		Args:  cobra.NoArgs,
		Example: `  gratitude settings set --language english
  gratitude settings set --start-day monday --font-size large`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := a.settings.Load()
			if err != nil {
				return err
			}

			changed := false
			if v, _ := cmd.Flags().GetString("font-size"); v != "" {
				prefs.FontSize = settings.FontSize(strings.ToLower(v))
				changed = true
			}
			if v, _ := cmd.Flags().GetString("start-day"); v != "" {
				prefs.CalendarStartDay = settings.StartDay(strings.ToLower(v))
				changed = true
			}
			if v, _ := cmd.Flags().GetString("language"); v != "" {
				prefs.Language = settings.Language(strings.ToLower(v))
				changed = true
			}
			if !changed {
				return errors.New("nothing to change: pass --font-size, --start-day or --language")
			}

			if err := a.settings.Save(prefs); err != nil {
				return err
			}
			fmt.Println(ui.Success("Settings saved"))
			printSettings(prefs)
			return nil
		},
	}
	setCmd.Flags().String("font-size", "", "small, medium or large")
	setCmd.Flags().String("start-day", "", "first calendar column: sunday or monday")
	setCmd.Flags().String("language", "", "japanese, english or chinese")

	passcodeCmd := &cobra.Command{
		Use:   "passcode",
		Short: "Set, change or clear the passcode",
		Long: `Set a passcode that must be entered before the journal can be read.

The new passcode is read from --new, or prompted for twice on a terminal.
Use --clear to remove it. The current passcode is required either way.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clearFlag, _ := cmd.Flags().GetBool("clear")
			code, _ := cmd.Flags().GetString("new")

			if clearFlag {
				if err := a.settings.SetPasscode(""); err != nil {
					return err
				}
				fmt.Println(ui.Success("Passcode removed"))
				return nil
			}

			if code == "" {
				if !isTerminal() {
					return errors.New("pass the new passcode with --new")
				}
				first, err := promptSecret(os.Stderr, "New passcode: ")
				if err != nil {
					return err
				}
				second, err := promptSecret(os.Stderr, "Repeat passcode: ")
				if err != nil {
					return err
				}
				if first != second {
					return errors.New("passcodes do not match")
				}
				code = first
			}
			if strings.TrimSpace(code) == "" {
				return errors.New("passcode cannot be empty (use --clear to remove it)")
			}

			if err := a.settings.SetPasscode(code); err != nil {
				return err
			}
			fmt.Println(ui.Success("Passcode set"))
			return nil
		},
	}
	passcodeCmd.Flags().String("new", "", "new passcode")
	passcodeCmd.Flags().Bool("clear", false, "remove the passcode")

	cmd.AddCommand(showCmd, setCmd, passcodeCmd)
	return cmd
}

func printSettings(prefs settings.Settings) {
	fmt.Printf("Font size:  %s\n", prefs.FontSize)
	fmt.Printf("Week start: %s\n", prefs.CalendarStartDay)
	fmt.Printf("Language:   %s\n", prefs.Language)
	if prefs.HasPasscode() {
		fmt.Printf("Passcode:   %s\n", color.GreenString("set"))
	} else {
		fmt.Printf("Passcode:   %s\n", color.New(color.Faint).Sprint("(not set)"))
	}
}
