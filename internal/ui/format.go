// ABOUTME: Terminal UI formatting for gratitude output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/stats"
	"github.com/harper/gratitude/internal/survey"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// PreviewLength is how many characters of an entry list views show.
const PreviewLength = 50

// DefaultWrap is the glamour word-wrap width for medium text.
const DefaultWrap = 80

func FormatEntryListItem(entry models.Entry, loc *time.Location) string {
	var sb strings.Builder

	day := entry.Day(loc)
	sb.WriteString(fmt.Sprintf("  %s  %s\n", cyan(day.String()), entry.Preview(PreviewLength)))
	sb.WriteString(fmt.Sprintf("              %s\n",
		faint(fmt.Sprintf("%d characters", entry.Length()))))

	return sb.String()
}

func FormatEntryHeader(entry models.Entry, loc *time.Location) string {
	var sb strings.Builder

	day := entry.Day(loc)
	sb.WriteString(fmt.Sprintf("%s\n", bold(day.Format("Monday, January 2, 2006"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Written:"), faint(entry.Timestamp.In(loc).Format("2006-01-02 15:04"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Length:"), faint(fmt.Sprintf("%d / %d characters", entry.Length(), models.MaxContentLength))))

	sb.WriteString(Separator())
	return sb.String()
}

// FormatEntryContent renders entry text as markdown wrapped at width columns.
func FormatEntryContent(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWrap
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

// FormatTrophies lists the streak milestones, reached ones highlighted.
func FormatTrophies(m stats.Milestones) string {
	var parts []string
	for _, th := range m.Thresholds() {
		label := fmt.Sprintf("%d days", th.Days)
		if th.Reached {
			parts = append(parts, yellow("★ "+label))
		} else {
			parts = append(parts, faint("☆ "+label))
		}
	}
	return fmt.Sprintf("%s %s\n", faint("Trophies:"), strings.Join(parts, "  "))
}

// FormatStreak shows the current and longest streaks.
func FormatStreak(current, longest int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Current streak:"), bold(pluralDays(current))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Longest streak:"), bold(pluralDays(longest))))
	return sb.String()
}

// Home is everything the dashboard shows.
type Home struct {
	ChallengeDays int
	Streak        int
	Milestones    stats.Milestones
	Recent        []models.Entry
	Window        []stats.Point
	Task          stats.Task
	ProgramDay    int
	WrittenToday  bool
}

func FormatHome(h Home, loc *time.Location) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", bold("Gratitude journal"), faint(fmt.Sprintf("day %d of journaling", h.ChallengeDays))))
	sb.WriteString(Separator())

	if h.ProgramDay >= 1 && h.ProgramDay <= stats.ProgramLength {
		sb.WriteString(fmt.Sprintf("%s\n", cyan(h.Task.Message(h.ProgramDay))))
	}
	if !h.WrittenToday {
		sb.WriteString(faint("Nothing written today yet. Run 'gratitude write' to add an entry.\n"))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Current streak:"), bold(pluralDays(h.Streak))))
	sb.WriteString(FormatTrophies(h.Milestones))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s\n", bold("Recent entries")))
	if len(h.Recent) == 0 {
		sb.WriteString(faint("  No entries yet.\n"))
	}
	for _, e := range h.Recent {
		sb.WriteString(FormatEntryListItem(e, loc))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s\n", bold(fmt.Sprintf("Last %d days", len(h.Window)))))
	sb.WriteString(RenderChart(h.Window))
	return sb.String()
}

// FormatPlan lists every programme day with its task, marking today.
func FormatPlan(start models.Day, today int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", bold("Two-week programme"), faint("from "+start.String())))
	sb.WriteString(Separator())
	for day := 1; day <= stats.ProgramLength; day++ {
		marker := "  "
		line := fmt.Sprintf("Day %2d  %s  %s", day, start.AddDays(day-1).Format("Jan 02"), stats.TaskFor(day))
		if day == today {
			marker = cyan("▶ ")
			line = bold(line)
		} else if day < today {
			line = faint(line)
		}
		sb.WriteString(marker + line + "\n")
	}
	return sb.String()
}

// IntroStep is one page of the programme walkthrough.
type IntroStep struct {
	Title string
	Body  string
}

// IntroSteps walks a new user through the two-week programme.
var IntroSteps = []IntroStep{
	{
		Title: "About gratitude",
		Body: "A two-week gratitude journal, based on research finding that writing down " +
			"what you are thankful for each day raises motivation. Keep it for two weeks " +
			"and see how your own motivation changes.",
	},
	{
		Title: "Baseline check",
		Body: "Before the first entry, answer a short work-engagement survey " +
			"(gratitude survey take). It scores vigor, dedication and absorption.",
	},
	{
		Title: "Diary period (two weeks)",
		Body: "Every day, write two or three things you felt grateful for " +
			"(gratitude write). Turning your attention to gratitude once a day is what matters, " +
			"so try not to skip a day.",
	},
	{
		Title: "Follow-up check",
		Body: "On the last day, take the same survey again and compare it with " +
			"your baseline (gratitude survey list).",
	},
	{
		Title: "That's all",
		Body:  "Start writing and notice how your outlook changes.",
	},
}

var introBody = lipgloss.NewStyle().Width(DefaultWrap).PaddingLeft(4)

// FormatIntro renders the walkthrough, numbering each step.
func FormatIntro(steps []IntroStep) string {
	var sb strings.Builder
	for i, step := range steps {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", faint(fmt.Sprintf("%d/%d", i+1, len(steps))), bold(step.Title)))
		sb.WriteString(introBody.Render(step.Body) + "\n")
	}
	return sb.String()
}

func FormatSurveyResponse(r survey.Response, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
		faint(r.ID.String()[:8]),
		cyan(r.SubmittedAt.In(loc).Format("2006-01-02 15:04")),
		faint(fmt.Sprintf("(%d items)", int(r.Version)))))
	sb.WriteString(fmt.Sprintf("            vigor %.2f  dedication %.2f  absorption %.2f  %s\n",
		r.Score.Vigor, r.Score.Dedication, r.Score.Absorption,
		bold(fmt.Sprintf("total %.2f", r.Score.Total))))
	return sb.String()
}

// FormatQuestion prints one survey item with the answer scale.
func FormatQuestion(n, of int, q survey.Question) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", faint(fmt.Sprintf("[%d/%d]", n, of)), bold(q.Text)))
	for i, label := range survey.AnswerLabels {
		sb.WriteString(fmt.Sprintf("  %d %s\n", i, faint(label)))
	}
	return sb.String()
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
