// ABOUTME: Read-only overview commands: home, calendar, streak, chart, plan.
// ABOUTME: All statistics are computed from the entry collection on each run.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/gratitude/internal/diary"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/stats"
	"github.com/harper/gratitude/internal/ui"
	"github.com/spf13/cobra"
)

// recentCount is how many entries the home screen previews.
const recentCount = 3

func newHomeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the dashboard",
		Long:  `Show your journaling day count, streak, trophies, recent entries and the two-week chart.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHome()
		},
	}
}

func (a *app) runHome() error {
	entries, err := a.entries.All()
	if err != nil {
		return err
	}

	now := a.now()
	today := a.today()
	start := a.calc.ProgramStart(entries, today)
	programDay := stats.ProgramDay(start, today)

	_, findErr := a.entries.FindByDay(today)

	fmt.Print(ui.FormatHome(ui.Home{
		ChallengeDays: len(entries),
		Streak:        a.calc.CurrentStreak(entries, now),
		Milestones:    stats.MilestonesFor(a.calc.MaxStreak(entries)),
		Recent:        stats.Recent(entries, recentCount),
		Window:        a.calc.TrailingWindow(entries, stats.DefaultWindowDays, now),
		Task:          stats.TaskFor(programDay),
		ProgramDay:    programDay,
		WrittenToday:  findErr == nil,
	}, a.loc))
	return nil
}

// parseMonth reads YYYY-MM.
func parseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}

func newCalendarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show a month calendar",
		Long:  `Show which days have entries, with today and the still-writable days marked.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := a.today()
			year, month := today.Year, today.Month
			if len(args) > 0 {
				var err error
				if year, month, err = parseMonth(args[0]); err != nil {
					return err
				}
			}

			entries, err := a.entries.All()
			if err != nil {
				return err
			}
			prefs, _ := a.settings.Load()

			grid := a.calc.MonthGrid(entries, year, month, prefs.WeekStart())
			opts := ui.DefaultCalendarOptions()
			opts.Language = string(prefs.Language)
			title := models.Day{Year: year, Month: month, Day: 1}.Format("January 2006")

			editable := func(d models.Day) bool { return diary.Editable(d, today) }
			fmt.Print(ui.RenderCalendar(grid, title, today, editable, opts))
			fmt.Print(ui.CalendarLegend(opts))
			fmt.Println()
			fmt.Print(ui.FormatTrophies(stats.MilestonesFor(a.calc.MaxStreak(entries))))
			return nil
		},
	}
}

func newStreakCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show your writing streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.entries.All()
			if err != nil {
				return err
			}
			longest := a.calc.MaxStreak(entries)
			fmt.Print(ui.FormatStreak(a.calc.CurrentStreak(entries, a.now()), longest))
			fmt.Print(ui.FormatTrophies(stats.MilestonesFor(longest)))
			return nil
		},
	}
}

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart characters written per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			entries, err := a.entries.All()
			if err != nil {
				return err
			}
			fmt.Print(ui.RenderChart(a.calc.TrailingWindow(entries, days, a.now())))
			return nil
		},
	}
	cmd.Flags().Int("days", stats.DefaultWindowDays, "number of days ending today")
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the two-week programme",
		Long: `Show each day of the two-week programme: a survey on the first and last day, diary entries in between.

Run "gratitude intro" for a walkthrough of the programme.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.entries.All()
			if err != nil {
				return err
			}
			today := a.today()
			start := a.calc.ProgramStart(entries, today)
			day := stats.ProgramDay(start, today)

			fmt.Print(ui.FormatPlan(start, day))
			if day > stats.ProgramLength {
				fmt.Println("\nThe programme is complete. Keep writing whenever you like.")
			} else {
				fmt.Printf("\n%s\n", stats.TaskFor(day).Message(day))
			}
			return nil
		},
	}
}

func newIntroCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "intro",
		Short:       "Walk through the two-week programme",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), ui.FormatIntro(ui.IntroSteps))
		},
	}
}
