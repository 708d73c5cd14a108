// ABOUTME: Work-engagement survey in 3, 9 and 17 item versions.
// ABOUTME: Validates completeness and scores vigor, dedication and absorption subscales.

package survey

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type Subscale string

const (
	Vigor      Subscale = "vigor"
	Dedication Subscale = "dedication"
	Absorption Subscale = "absorption"
)

// Answer range on the seven-point frequency scale.
const (
	MinAnswer = 0
	MaxAnswer = 6
)

// AnswerLabels describes each point of the answer scale.
var AnswerLabels = [...]string{
	"Never",
	"Almost never",
	"Rarely",
	"Sometimes",
	"Often",
	"Very often",
	"Always",
}

type Question struct {
	ID       int
	Text     string
	Subscale Subscale
}

// Questions is the full item list; shorter versions use a prefix of it.
var Questions = []Question{
	{1, "When I am working, I feel bursting with energy.", Vigor},
	{2, "I find the work that I do full of meaning and purpose.", Dedication},
	{3, "Time flies when I am working.", Absorption},
	{4, "At my job, I feel strong and vigorous.", Vigor},
	{5, "I am enthusiastic about my job.", Dedication},
	{6, "When I am working, I forget everything else around me.", Absorption},
	{7, "My job inspires me.", Dedication},
	{8, "When I get up in the morning, I feel like going to work.", Vigor},
	{9, "I feel happy when I am working intensely.", Absorption},
	{10, "I am proud of the work that I do.", Dedication},
	{11, "I am immersed in my work.", Absorption},
	{12, "I can continue working for very long periods at a time.", Vigor},
	{13, "To me, my job is motivating.", Dedication},
	{14, "I get carried away when I am working.", Absorption},
	{15, "At my job, I feel lively and upbeat.", Vigor},
	{16, "It is difficult to detach myself from my job.", Absorption},
	{17, "At my work I always persevere, even when things do not go well.", Vigor},
}

type Version int

const (
	Version3  Version = 3
	Version9  Version = 9
	Version17 Version = 17
)

var (
	ErrUnknownVersion = errors.New("unknown survey version")
	ErrIncomplete     = errors.New("survey has unanswered questions")
	ErrInvalidAnswer  = errors.New("answer out of range")
)

// ParseVersion accepts "3", "9" or "17".
func ParseVersion(s string) (Version, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}
	v := Version(n)
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVersion, n)
	}
	return v, nil
}

func (v Version) Valid() bool {
	return v == Version3 || v == Version9 || v == Version17
}

// Questions returns the items asked in this version.
func (v Version) Questions() []Question {
	if !v.Valid() {
		return nil
	}
	return Questions[:int(v)]
}

// Answers maps question ID to a point on the answer scale.
type Answers map[int]int

// IncompleteError lists unanswered question IDs in ascending order.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%v: %s", ErrIncomplete, strings.Join(ids, ", "))
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// Validate reports every unanswered question of the version, and any answer out of range.
func Validate(v Version, answers Answers) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownVersion, int(v))
	}

	var missing []int
	for _, q := range v.Questions() {
		a, ok := answers[q.ID]
		if !ok {
			missing = append(missing, q.ID)
			continue
		}
		if a < MinAnswer || a > MaxAnswer {
			return fmt.Errorf("%w: question %d answered %d", ErrInvalidAnswer, q.ID, a)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return &IncompleteError{Missing: missing}
	}
	return nil
}

// Score holds subscale and overall mean answers.
type Score struct {
	Vigor      float64 `json:"vigor"`
	Dedication float64 `json:"dedication"`
	Absorption float64 `json:"absorption"`
	Total      float64 `json:"total"`
}

// ScoreAnswers validates answers and returns their subscale means.
func ScoreAnswers(v Version, answers Answers) (Score, error) {
	if err := Validate(v, answers); err != nil {
		return Score{}, err
	}

	sums := make(map[Subscale]int)
	counts := make(map[Subscale]int)
	total := 0
	for _, q := range v.Questions() {
		a := answers[q.ID]
		sums[q.Subscale] += a
		counts[q.Subscale]++
		total += a
	}

	mean := func(s Subscale) float64 {
		if counts[s] == 0 {
			return 0
		}
		return float64(sums[s]) / float64(counts[s])
	}
	return Score{
		Vigor:      mean(Vigor),
		Dedication: mean(Dedication),
		Absorption: mean(Absorption),
		Total:      float64(total) / float64(len(v.Questions())),
	}, nil
}

// ParseAnswers reads a comma-separated answer list in question order, e.g. "3,4,5".
func ParseAnswers(v Version, s string) (Answers, error) {
	answers := make(Answers)
	if strings.TrimSpace(s) == "" {
		return answers, nil
	}

	parts := strings.Split(s, ",")
	questions := v.Questions()
	if len(parts) > len(questions) {
		return nil, fmt.Errorf("got %d answers for %d questions", len(parts), len(questions))
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
		answers[questions[i].ID] = n
	}
	return answers, nil
}
