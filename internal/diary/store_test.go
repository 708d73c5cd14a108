// ABOUTME: Tests for the entry store.
// ABOUTME: Covers same-day replacement, write-then-read, corrupt data fallback, and write failures.

package diary

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/storage"
)

var testLoc = time.FixedZone("JST", 9*60*60)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, testLoc)
}

func newTestStore() (*Store, *storage.Memory) {
	kv := storage.NewMemory()
	return NewStore(kv, WithLocation(testLoc)), kv
}

// failingKV fails every write.
type failingKV struct {
	*storage.Memory
}

func (f failingKV) Set(string, []byte) error { return errors.New("quota exceeded") }
func (f failingKV) Delete(string) error      { return errors.New("storage unavailable") }

func TestUpsertThenFindByDay(t *testing.T) {
	s, _ := newTestStore()

	entry := models.NewEntry("grateful for the sunrise", at(2024, 5, 1, 8, 0))
	if err := s.Upsert(entry); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	got, err := s.FindByDay(models.Day{Year: 2024, Month: time.May, Day: 1})
	if err != nil {
		t.Fatalf("failed to find entry: %v", err)
	}
	if got.Content != entry.Content {
		t.Errorf("expected content %q, got %q", entry.Content, got.Content)
	}
}

func TestUpsertSameDayReplaces(t *testing.T) {
	s, _ := newTestStore()

	_ = s.Upsert(models.NewEntry("morning", at(2024, 5, 1, 0, 1)))
	if err := s.Upsert(models.NewEntry("evening", at(2024, 5, 1, 23, 59))); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	if all[0].Content != "evening" {
		t.Errorf("expected replaced content, got %q", all[0].Content)
	}
}

func TestUpsertNewDayAppends(t *testing.T) {
	s, _ := newTestStore()

	_ = s.Upsert(models.NewEntry("day one", at(2024, 5, 1, 23, 59)))
	_ = s.Upsert(models.NewEntry("day two", at(2024, 5, 2, 0, 1)))

	all, _ := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	s, _ := newTestStore()
	entry := models.NewEntry("same words", at(2024, 6, 10, 12, 0))

	_ = s.Upsert(entry)
	_ = s.Upsert(entry)

	all, _ := s.All()
	if len(all) != 1 {
		t.Errorf("expected 1 entry, got %d", len(all))
	}
	got, _ := s.FindByDay(entry.Day(testLoc))
	if got.Content != "same words" {
		t.Errorf("unexpected content %q", got.Content)
	}
}

func TestUpsertUsesStoreLocation(t *testing.T) {
	s, _ := newTestStore()

	// 15:30 UTC on the 1st is 00:30 on the 2nd in Tokyo.
	_ = s.Upsert(models.NewEntry("late", time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)))

	if _, err := s.FindByDay(models.Day{Year: 2024, Month: time.May, Day: 2}); err != nil {
		t.Errorf("expected entry on the local day: %v", err)
	}
}

func TestUpsertRejectsLongContent(t *testing.T) {
	s, kv := newTestStore()

	long := strings.Repeat("あ", models.MaxContentLength+1)
	err := s.Upsert(models.NewEntry(long, at(2024, 5, 1, 9, 0)))
	if !errors.Is(err, ErrContentTooLong) {
		t.Errorf("expected ErrContentTooLong, got %v", err)
	}
	if kv.Len() != 0 {
		t.Error("expected nothing to be written")
	}

	exact := strings.Repeat("あ", models.MaxContentLength)
	if err := s.Upsert(models.NewEntry(exact, at(2024, 5, 1, 9, 0))); err != nil {
		t.Errorf("content at the cap should be accepted: %v", err)
	}
}

func TestFindByDayMissing(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.FindByDay(models.Day{Year: 2024, Month: time.January, Day: 1})
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestCorruptDataReadsAsEmpty(t *testing.T) {
	s, kv := newTestStore()
	_ = kv.Set(EntriesKey, []byte("{not json"))

	all, err := s.All()
	if err != nil {
		t.Fatalf("corrupt data should not be an error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty collection, got %d", len(all))
	}
}

func TestWriteAfterCorruptDataKeepsBackup(t *testing.T) {
	s, kv := newTestStore()
	_ = kv.Set(EntriesKey, []byte("{not json"))

	if err := s.Upsert(models.NewEntry("fresh start", at(2024, 5, 3, 9, 0))); err != nil {
		t.Fatalf("write should succeed over corrupt data: %v", err)
	}

	backup, err := kv.Get(BackupKey)
	if err != nil {
		t.Fatalf("expected backup of unreadable data: %v", err)
	}
	if string(backup) != "{not json" {
		t.Errorf("unexpected backup %q", backup)
	}

	all, _ := s.All()
	if len(all) != 1 || all[0].Content != "fresh start" {
		t.Errorf("unexpected entries after recovery: %+v", all)
	}
}

func TestWriteFailureIsSurfaced(t *testing.T) {
	s := NewStore(failingKV{storage.NewMemory()}, WithLocation(testLoc))

	err := s.Upsert(models.NewEntry("lost?", at(2024, 5, 1, 9, 0)))
	if err == nil {
		t.Fatal("expected write failure to be returned")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected underlying cause in error, got %v", err)
	}

	if err := s.Clear(); err == nil {
		t.Error("expected clear failure to be returned")
	}
}

func TestClear(t *testing.T) {
	s, _ := newTestStore()
	_ = s.Upsert(models.NewEntry("one", at(2024, 5, 1, 9, 0)))
	_ = s.Upsert(models.NewEntry("two", at(2024, 5, 2, 9, 0)))

	if err := s.Clear(); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}

	all, _ := s.All()
	if len(all) != 0 {
		t.Errorf("expected no entries after clear, got %d", len(all))
	}
	if err := s.Clear(); err != nil {
		t.Errorf("clearing an empty store should succeed: %v", err)
	}
}
