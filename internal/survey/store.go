// ABOUTME: Persists survey responses as a JSON array under the "surveys" key.
// ABOUTME: Responses are validated and scored before they are stored.

package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harper/gratitude/internal/storage"
	"go.uber.org/zap"
)

// Key holds the serialized response list.
const Key = "surveys"

// Response is one completed survey.
type Response struct {
	ID          uuid.UUID `json:"id"`
	Version     Version   `json:"version"`
	Answers     Answers   `json:"answers"`
	Score       Score     `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Store struct {
	kv     storage.KV
	logger *zap.Logger
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) load() ([]Response, error) {
	data, err := s.kv.Get(Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read surveys: %w", err)
	}

	var responses []Response
	if err := json.Unmarshal(data, &responses); err != nil {
		s.logger.Warn("stored surveys are unreadable, treating as empty",
			zap.String("key", Key),
			zap.Error(err))
		return nil, nil
	}
	return responses, nil
}

// Submit validates, scores and stores a response taken at the given time.
func (s *Store) Submit(v Version, answers Answers, at time.Time) (*Response, error) {
	score, err := ScoreAnswers(v, answers)
	if err != nil {
		return nil, err
	}

	responses, err := s.load()
	if err != nil {
		return nil, err
	}

	kept := make(Answers, len(v.Questions()))
	for _, q := range v.Questions() {
		kept[q.ID] = answers[q.ID]
	}
	r := Response{
		ID:          uuid.New(),
		Version:     v,
		Answers:     kept,
		Score:       score,
		SubmittedAt: at,
	}
	responses = append(responses, r)

	data, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("encode surveys: %w", err)
	}
	if err := s.kv.Set(Key, data); err != nil {
		return nil, fmt.Errorf("save surveys: %w", err)
	}

	s.logger.Debug("survey submitted",
		zap.String("id", r.ID.String()),
		zap.Int("version", int(v)))
	return &r, nil
}

// List returns stored responses, newest first.
func (s *Store) List() ([]Response, error) {
	responses, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].SubmittedAt.After(responses[j].SubmittedAt)
	})
	return responses, nil
}

// Clear removes every stored response.
func (s *Store) Clear() error {
	if err := s.kv.Delete(Key); err != nil {
		return fmt.Errorf("clear surveys: %w", err)
	}
	return nil
}
