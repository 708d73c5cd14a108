// ABOUTME: Survey subcommands: take and list the work-engagement survey.
// ABOUTME: Answers come from --answers or are prompted one question at a time.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/harper/gratitude/internal/survey"
	"github.com/harper/gratitude/internal/ui"
	"github.com/spf13/cobra"
)

func newSurveyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Take or review the engagement survey",
		Long: `The engagement survey is taken on the first and last day of the two-week programme.

Commands:
  take  - Answer the survey (3, 9 or 17 questions)
  list  - Show past results, newest first`,
	}

	takeCmd := &cobra.Command{
		Use:   "take",
		Short: "Answer the survey",
		Long: `Answer each question from 0 (never) to 6 (always).

Pass --answers with comma-separated values in question order to skip the prompts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versionFlag, _ := cmd.Flags().GetString("version")
			answersFlag, _ := cmd.Flags().GetString("answers")

			v, err := survey.ParseVersion(versionFlag)
			if err != nil {
				return err
			}

			var answers survey.Answers
			if answersFlag != "" {
				answers, err = survey.ParseAnswers(v, answersFlag)
			} else {
				answers, err = promptAnswers(v, os.Stdin, os.Stdout)
			}
			if err != nil {
				return err
			}

			resp, err := a.surveys.Submit(v, answers, a.now())
			var incomplete *survey.IncompleteError
			if errors.As(err, &incomplete) {
				return fmt.Errorf("please answer every question (missing: %v)", incomplete.Missing)
			}
			if err != nil {
				return err
			}

			fmt.Println(ui.Success("Survey saved"))
			fmt.Print(ui.FormatSurveyResponse(*resp, a.loc))
			return nil
		},
	}
	takeCmd.Flags().String("version", "9", "number of questions: 3, 9 or 17")
	takeCmd.Flags().String("answers", "", "comma-separated answers 0-6 in question order")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show past survey results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			responses, err := a.surveys.List()
			if err != nil {
				return err
			}
			if len(responses) == 0 {
				fmt.Println("No surveys yet. Run 'gratitude survey take'.")
				return nil
			}
			for _, r := range responses {
				fmt.Print(ui.FormatSurveyResponse(r, a.loc))
			}
			return nil
		},
	}

	cmd.AddCommand(takeCmd, listCmd)
	return cmd
}

// promptAnswers asks each question until it gets a valid answer. EOF stops early.
func promptAnswers(v survey.Version, in io.Reader, out io.Writer) (survey.Answers, error) {
	reader := bufio.NewReader(in)
	answers := make(survey.Answers)
	questions := v.Questions()

	for i, q := range questions {
		for {
			fmt.Fprint(out, ui.FormatQuestion(i+1, len(questions), q))
			fmt.Fprint(out, "> ")
			line, err := reader.ReadString('\n')
			line = strings.TrimSpace(line)
			if n, convErr := strconv.Atoi(line); convErr == nil && n >= survey.MinAnswer && n <= survey.MaxAnswer {
				answers[q.ID] = n
				break
			}
			if err != nil {
				// Out of input: leave the rest unanswered for validation to report.
				return answers, nil
			}
			fmt.Fprintf(out, "Please answer with a number from %d to %d.\n", survey.MinAnswer, survey.MaxAnswer)
		}
		fmt.Fprintln(out)
	}
	return answers, nil
}
