// ABOUTME: User preferences persisted as one flat record under the "settings" key.
// ABOUTME: Unknown or unreadable values fall back to defaults field by field.

package settings

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/gratitude/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Key holds the serialized settings record.
const Key = "settings"

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

type StartDay string

const (
	StartSunday StartDay = "sunday"
	StartMonday StartDay = "monday"
)

type Language string

const (
	LangJapanese Language = "japanese"
	LangEnglish  Language = "english"
	LangChinese  Language = "chinese"
)

var (
	ErrInvalidValue     = errors.New("invalid setting value")
	ErrPasscodeMismatch = errors.New("passcode does not match")
)

// Settings is the persisted preference record. Passcode holds a bcrypt hash.
type Settings struct {
	FontSize         FontSize `json:"fontSize"`
	CalendarStartDay StartDay `json:"calendarStartDay"`
	Language         Language `json:"language"`
	Passcode         string   `json:"passcode"`
}

func Defaults() Settings {
	return Settings{
		FontSize:         FontMedium,
		CalendarStartDay: StartSunday,
		Language:         LangJapanese,
	}
}

// WeekStart returns the first weekday of calendar rows.
func (s Settings) WeekStart() time.Weekday {
	if s.CalendarStartDay == StartMonday {
		return time.Monday
	}
	return time.Sunday
}

// HasPasscode reports whether a passcode is set.
func (s Settings) HasPasscode() bool {
	return s.Passcode != ""
}

func (f FontSize) valid() bool {
	return f == FontSmall || f == FontMedium || f == FontLarge
}

func (d StartDay) valid() bool {
	return d == StartSunday || d == StartMonday
}

func (l Language) valid() bool {
	return l == LangJapanese || l == LangEnglish || l == LangChinese
}

// Validate checks every enum field.
func (s Settings) Validate() error {
	if !s.FontSize.valid() {
		return fmt.Errorf("%w: font size %q", ErrInvalidValue, s.FontSize)
	}
	if !s.CalendarStartDay.valid() {
		return fmt.Errorf("%w: calendar start day %q", ErrInvalidValue, s.CalendarStartDay)
	}
	if !s.Language.valid() {
		return fmt.Errorf("%w: language %q", ErrInvalidValue, s.Language)
	}
	return nil
}

// normalize replaces invalid fields with their defaults.
func (s Settings) normalize() Settings {
	d := Defaults()
	if !s.FontSize.valid() {
		s.FontSize = d.FontSize
	}
	if !s.CalendarStartDay.valid() {
		s.CalendarStartDay = d.CalendarStartDay
	}
	if !s.Language.valid() {
		s.Language = d.Language
	}
	return s
}

// Store reads and writes the settings record.
type Store struct {
	kv     storage.KV
	logger *zap.Logger
	cost   int
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHashCost sets the bcrypt cost used for new passcodes.
func WithHashCost(cost int) Option {
	return func(s *Store) {
		s.cost = cost
	}
}

func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: zap.NewNop(),
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored settings, or defaults when none are stored or they are unreadable.
func (s *Store) Load() (Settings, error) {
	data, err := s.kv.Get(Key)
	if errors.Is(err, storage.ErrNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var stored Settings
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("stored settings are unreadable, using defaults", zap.Error(err))
		return Defaults(), nil
	}
	return stored.normalize(), nil
}

// Save validates and persists settings. The passcode hash is stored as given.
func (s *Store) Save(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.kv.Set(Key, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SetPasscode hashes and stores a new passcode. An empty passcode removes it.
func (s *Store) SetPasscode(plain string) error {
	current, err := s.Load()
	if err != nil {
		return err
	}

	if plain == "" {
		current.Passcode = ""
		return s.Save(current)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return fmt.Errorf("hash passcode: %w", err)
	}
	current.Passcode = string(hash)
	return s.Save(current)
}

// VerifyPasscode checks plain against the stored passcode.
// It succeeds when no passcode is set.
func (s *Store) VerifyPasscode(plain string) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	if !current.HasPasscode() {
		return nil
	}

	if !strings.HasPrefix(current.Passcode, "$2") {
		// Records written before hashing hold the passcode itself.
		if subtle.ConstantTimeCompare([]byte(current.Passcode), []byte(plain)) != 1 {
			return ErrPasscodeMismatch
		}
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(current.Passcode), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasscodeMismatch
		}
		return fmt.Errorf("verify passcode: %w", err)
	}
	return nil
}

// Reset removes the settings record.
func (s *Store) Reset() error {
	if err := s.kv.Delete(Key); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
