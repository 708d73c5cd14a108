// ABOUTME: EntryStore: durable one-entry-per-day storage on top of a KV backend.
// ABOUTME: Sole owner of the "diaries" key; every write persists before returning.

package diary

import (
	"errors"
	"fmt"
	"time"

	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/storage"
	"go.uber.org/zap"
)

const (
	// EntriesKey holds the serialized entry collection.
	EntriesKey = "diaries"
	// BackupKey receives unreadable entry data before it is first overwritten.
	BackupKey = "diaries.unreadable"
)

var (
	ErrEntryNotFound  = errors.New("no entry for that day")
	ErrContentTooLong = fmt.Errorf("entry content exceeds %d characters", models.MaxContentLength)
)

// Store keeps diary entries unique by calendar day in its location.
type Store struct {
	kv     storage.KV
	loc    *time.Location
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLocation sets the zone that decides which calendar day an entry belongs to.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the zone used for day comparisons.
func (s *Store) Location() *time.Location {
	return s.loc
}

// load reads the collection. Unreadable data is reported as empty with unreadable=true.
func (s *Store) load() (entries []models.Entry, unreadable []byte, err error) {
	data, err := s.kv.Get(EntriesKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read entries: %w", err)
	}

	entries, err = Decode(data)
	if err != nil {
		s.logger.Warn("stored entries are unreadable, treating as empty",
			zap.String("key", EntriesKey),
			zap.Int("bytes", len(data)),
			zap.Error(err))
		return nil, data, nil
	}
	return entries, nil, nil
}

func (s *Store) save(entries []models.Entry) error {
	encoded, err := Encode(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := s.kv.Set(EntriesKey, encoded); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

// Upsert replaces the content of the entry on entry's day, or appends entry.
func (s *Store) Upsert(entry models.Entry) error {
	if entry.Length() > models.MaxContentLength {
		return ErrContentTooLong
	}

	entries, unreadable, err := s.load()
	if err != nil {
		return err
	}
	if unreadable != nil {
		if err := s.kv.Set(BackupKey, unreadable); err != nil {
			return fmt.Errorf("back up unreadable entries: %w", err)
		}
		s.logger.Warn("unreadable entries backed up before overwrite", zap.String("key", BackupKey))
	}

	day := entry.Day(s.loc)
	replaced := false
	for i := range entries {
		if entries[i].Day(s.loc) == day {
			entries[i].Content = entry.Content
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := s.save(entries); err != nil {
		return err
	}
	s.logger.Debug("entry saved",
		zap.Stringer("day", day),
		zap.Bool("replaced", replaced),
		zap.Int("characters", entry.Length()))
	return nil
}

// All returns every stored entry in storage order.
func (s *Store) All() ([]models.Entry, error) {
	entries, _, err := s.load()
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDay returns the entry on day, or ErrEntryNotFound.
func (s *Store) FindByDay(day models.Day) (models.Entry, error) {
	entries, _, err := s.load()
	if err != nil {
		return models.Entry{}, err
	}
	for _, e := range entries {
		if e.Day(s.loc) == day {
			return e, nil
		}
	}
	return models.Entry{}, ErrEntryNotFound
}

// Clear removes every entry. It cannot be undone.
func (s *Store) Clear() error {
	if err := s.kv.Delete(EntriesKey); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if err := s.kv.Delete(BackupKey); err != nil {
		return fmt.Errorf("clear entry backup: %w", err)
	}
	s.logger.Info("all entries cleared")
	return nil
}
