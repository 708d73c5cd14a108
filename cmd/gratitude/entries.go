// ABOUTME: Commands for writing and reading entries: write, show, list.
// ABOUTME: Writes are limited to today and yesterday; reads take any day.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harper/gratitude/internal/diary"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/settings"
	"github.com/harper/gratitude/internal/stats"
	"github.com/harper/gratitude/internal/ui"
	"github.com/spf13/cobra"
)

// parseDayArg accepts "", "today", "yesterday" or YYYY-MM-DD.
func parseDayArg(s string, today models.Day) (models.Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return models.ParseDay(s)
}

// wrapWidth narrows rendered text as the preferred font grows.
func wrapWidth(size settings.FontSize) int {
	switch size {
	case settings.FontSmall:
		return 100
	case settings.FontLarge:
		return 60
	default:
		return ui.DefaultWrap
	}
}

func newWriteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write today's entry",
		Long: `Write what you are grateful for. One entry per day; writing again replaces it.

Only today's and yesterday's entries can be written. Content can be provided
via --content, --file (use - for stdin), or $EDITOR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFlag, _ := cmd.Flags().GetString("date")
			contentFlag, _ := cmd.Flags().GetString("content")
			fileFlag, _ := cmd.Flags().GetString("file")

			today := a.today()
			day, err := parseDayArg(dateFlag, today)
			if err != nil {
				return err
			}
			if err := diary.CheckEditable(day, today); err != nil {
				return err
			}

			var content string
			switch {
			case contentFlag != "":
				content = contentFlag
			case fileFlag != "":
				content, err = readContent(fileFlag, os.Stdin)
				if err != nil {
					return err
				}
			default:
				var initial string
				if existing, err := a.entries.FindByDay(day); err == nil {
					initial = existing.Content
				}
				content, err = openEditor(initial)
				if err != nil {
					return fmt.Errorf("failed to open editor: %w", err)
				}
			}

			content = strings.TrimSpace(content)
			if err := diary.ValidateContent(content); err != nil {
				return err
			}

			ts := a.now()
			if day != today {
				ts = day.Noon(a.loc)
			}
			if err := a.entries.Upsert(models.NewEntry(content, ts)); err != nil {
				return fmt.Errorf("entry was not saved: %w", err)
			}

			fmt.Println(ui.Success(fmt.Sprintf("Saved entry for %s (%d characters)", day, len([]rune(content)))))

			entries, err := a.entries.All()
			if err == nil {
				if streak := a.calc.CurrentStreak(entries, a.now()); streak > 1 {
					fmt.Printf("  %d days in a row. Keep it up!\n", streak)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("date", "d", "", "day to write: today, yesterday or YYYY-MM-DD")
	cmd.Flags().StringP("content", "c", "", "entry content (inline)")
	cmd.Flags().StringP("file", "f", "", "read content from file (- for stdin)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show an entry",
		Long:  `Display the entry for a day (default today) with rendered markdown.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			day, err := parseDayArg(arg, a.today())
			if err != nil {
				return err
			}

			entry, err := a.entries.FindByDay(day)
			if errors.Is(err, diary.ErrEntryNotFound) {
				return fmt.Errorf("no entry for %s", day)
			}
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			prefs, _ := a.settings.Load()

			fmt.Print(ui.FormatEntryHeader(entry, a.loc))
			content, _ := ui.FormatEntryContent(entry.Content, wrapWidth(prefs.FontSize))
			fmt.Print(content)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Long:  `List entries newest first, optionally limited to one month.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limitFlag, _ := cmd.Flags().GetInt("limit")
			monthFlag, _ := cmd.Flags().GetString("month")

			entries, err := a.entries.All()
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			if monthFlag != "" {
				year, month, err := parseMonth(monthFlag)
				if err != nil {
					return err
				}
				var filtered []models.Entry
				for _, e := range entries {
					d := e.Day(a.loc)
					if d.Year == year && d.Month == month {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}

			if len(entries) == 0 {
				fmt.Println("No entries yet. Run 'gratitude write' to add one.")
				return nil
			}

			for _, e := range stats.Recent(entries, limitFlag) {
				fmt.Print(ui.FormatEntryListItem(e, a.loc))
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "max entries to show (-1 for all)")
	cmd.Flags().StringP("month", "m", "", "only entries in this month (YYYY-MM)")
	return cmd
}
