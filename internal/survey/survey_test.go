// ABOUTME: Tests for survey versions, validation, scoring and the response store.
// ABOUTME: Uses the in-memory KV backend.

package survey

import (
	"errors"
	"testing"
	"time"

	"github.com/harper/gratitude/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(v Version, answer int) Answers {
	a := make(Answers)
	for _, q := range v.Questions() {
		a[q.ID] = answer
	}
	return a
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"3", Version3, false},
		{" 9 ", Version9, false},
		{"17", Version17, false},
		{"5", 0, true},
		{"many", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuestionsPrefix(t *testing.T) {
	assert.Len(t, Version3.Questions(), 3)
	assert.Len(t, Version9.Questions(), 9)
	assert.Len(t, Version17.Questions(), 17)
	assert.Nil(t, Version(4).Questions())

	// The 3-item version asks one question per subscale.
	seen := map[Subscale]bool{}
	for _, q := range Version3.Questions() {
		seen[q.Subscale] = true
	}
	assert.Len(t, seen, 3)

	for i, q := range Questions {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestValidateReportsAllMissing(t *testing.T) {
	answers := fill(Version9, 3)
	delete(answers, 2)
	delete(answers, 7)

	err := Validate(Version9, answers)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncomplete))

	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []int{2, 7}, incomplete.Missing)
	assert.Contains(t, err.Error(), "2, 7")
}

func TestValidateRange(t *testing.T) {
	answers := fill(Version3, 6)
	answers[1] = 7
	assert.ErrorIs(t, Validate(Version3, answers), ErrInvalidAnswer)

	answers[1] = -1
	assert.ErrorIs(t, Validate(Version3, answers), ErrInvalidAnswer)

	assert.NoError(t, Validate(Version3, fill(Version3, 0)))
}

func TestScoreAnswers(t *testing.T) {
	answers := Answers{1: 6, 2: 3, 3: 0}
	score, err := ScoreAnswers(Version3, answers)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, score.Vigor, 1e-9)
	assert.InDelta(t, 3.0, score.Dedication, 1e-9)
	assert.InDelta(t, 0.0, score.Absorption, 1e-9)
	assert.InDelta(t, 3.0, score.Total, 1e-9)

	score, err = ScoreAnswers(Version17, fill(Version17, 4))
	require.NoError(t, err)
	assert.Equal(t, Score{Vigor: 4, Dedication: 4, Absorption: 4, Total: 4}, score)

	_, err = ScoreAnswers(Version17, fill(Version9, 4))
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestParseAnswers(t *testing.T) {
	a, err := ParseAnswers(Version3, "1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, Answers{1: 1, 2: 2, 3: 3}, a)

	a, err = ParseAnswers(Version3, "1,,3")
	require.NoError(t, err)
	assert.Equal(t, Answers{1: 1, 3: 3}, a)

	_, err = ParseAnswers(Version3, "1,2,3,4")
	assert.Error(t, err)

	_, err = ParseAnswers(Version3, "1,x")
	assert.Error(t, err)
}

func TestStoreSubmitAndList(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 0, 13)

	r1, err := s.Submit(Version3, fill(Version3, 2), first)
	require.NoError(t, err)
	r2, err := s.Submit(Version9, fill(Version9, 5), second)
	require.NoError(t, err)
	assert.NotEqual(t, r1.ID, r2.ID)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, r2.ID, list[0].ID)
	assert.Equal(t, Version9, list[0].Version)
	assert.InDelta(t, 5.0, list[0].Score.Total, 1e-9)
	assert.Equal(t, r1.ID, list[1].ID)
	assert.True(t, list[1].SubmittedAt.Equal(first))
}

func TestStoreRejectsIncomplete(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)

	_, err := s.Submit(Version9, fill(Version3, 2), time.Now())
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, 0, kv.Len())
}

func TestStoreDropsExtraAnswers(t *testing.T) {
	s := NewStore(storage.NewMemory())

	r, err := s.Submit(Version3, fill(Version17, 1), time.Now())
	require.NoError(t, err)
	assert.Len(t, r.Answers, 3)
}

func TestStoreCorruptIsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(Key, []byte("{oops")))
	s := NewStore(kv)

	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, kv.Len())
}
