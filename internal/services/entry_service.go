package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
)

// ErrNotFound is returned when a requested entry is not found.
var ErrNotFound = errors.New("entry not found")

// EntryService keeps at most one journal entry per calendar day. Reads never
// fail: storage errors are logged and an empty result is returned. Writes
// return their errors.
type EntryService struct {
	ctx     *database.Context
	entries *database.EntryRepository
	now     func() time.Time
}

// NewEntryService creates a new EntryService.
func NewEntryService(ctx *database.Context) *EntryService {
	return &EntryService{
		ctx:     ctx,
		entries: database.NewEntryRepository(ctx),
		now:     time.Now,
	}
}

// WithClock replaces the source of write timestamps and returns s.
func (s *EntryService) WithClock(now func() time.Time) *EntryService {
	if now != nil {
		s.now = now
	}
	return s
}

// List returns all entries, newest day first and then newest created first.
func (s *EntryService) List(ctx context.Context) []journal.Entry {
	entries, err := s.entries.FindAll(ctx)
	if err != nil {
		slog.WarnContext(ctx, "list entries failed", "err", err)
		return []journal.Entry{}
	}
	return entries
}

// Get returns the entry with id, or nil.
func (s *EntryService) Get(ctx context.Context, id int64) *journal.Entry {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "get entry failed", "entry_id", id, "err", err)
		return nil
	}
	return entry
}

// ForDate returns the entries whose calendar day equals the day of date.
func (s *EntryService) ForDate(ctx context.Context, date time.Time) []journal.Entry {
	day := journal.DayKey(date)
	entries, err := s.entries.ListByDay(ctx, day)
	if err != nil {
		slog.WarnContext(ctx, "list entries for day failed", "day", day, "err", err)
		return []journal.Entry{}
	}
	return entries
}

// OneForDate returns the entry for the day of date, or nil.
func (s *EntryService) OneForDate(ctx context.Context, date time.Time) *journal.Entry {
	day := journal.DayKey(date)
	entry, err := s.entries.FindByDay(ctx, day)
	if err != nil {
		slog.WarnContext(ctx, "get entry for day failed", "day", day, "err", err)
		return nil
	}
	return entry
}

// InRange returns entries from the start of start's day through the end of
// end's day, newest first.
func (s *EntryService) InRange(ctx context.Context, start, end time.Time) []journal.Entry {
	startDay, endDay := journal.DayKey(start), journal.DayKey(end)
	entries, err := s.entries.ListInDayRange(ctx, startDay, endDay)
	if err != nil {
		slog.WarnContext(ctx, "list entries in range failed", "start", startDay, "end", endDay, "err", err)
		return []journal.Entry{}
	}
	return entries
}

// Search matches query case-insensitively against title, content, tags and
// moods. A blank query returns List.
func (s *EntryService) Search(ctx context.Context, query string) []journal.Entry {
	all := s.List(ctx)
	if strings.TrimSpace(query) == "" {
		return all
	}

	needle := strings.ToLower(query)
	matches := make([]journal.Entry, 0, len(all))
	for _, entry := range all {
		if entryContains(entry, needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func entryContains(entry journal.Entry, needle string) bool {
	for _, field := range []string{entry.Title, entry.Content, entry.Tags, entry.PrimaryMood, entry.SecondaryMoods} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Save writes entry and returns the number of rows affected.
//
// An entry with an ID updates that row. An entry without one is matched to
// the existing row for its day (today when Date is zero) and updated, keeping
// the original CreatedAt; otherwise it is inserted. On success entry carries
// the stored ID and timestamps.
func (s *EntryService) Save(ctx context.Context, entry *journal.Entry) (int64, error) {
	if entry == nil {
		return 0, fmt.Errorf("entry service: nil entry")
	}

	now := s.now()
	next := *entry
	next.UpdatedAt = now

	if next.ID != 0 {
		affected, err := s.entries.Update(ctx, next)
		if err != nil {
			slog.ErrorContext(ctx, "update entry failed", "entry_id", next.ID, "err", err)
			return 0, fmt.Errorf("update entry %d: %w", next.ID, err)
		}
		*entry = next
		return affected, nil
	}

	if next.Date.IsZero() {
		next.Date = now
	}

	var affected int64
	err := s.withTx(ctx, func(tx *database.Context) error {
		repo := database.NewEntryRepository(tx)

		existing, err := repo.FindByDay(ctx, next.Day())
		if err != nil {
			return err
		}

		if existing != nil {
			next.ID = existing.ID
			next.CreatedAt = existing.CreatedAt
			if next.CreatedAt.IsZero() {
				next.CreatedAt = now
			}
			affected, err = repo.Update(ctx, next)
			return err
		}

		next.CreatedAt = now
		id, err := repo.Create(ctx, next)
		if err != nil {
			return err
		}
		next.ID = id
		affected = 1
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "save entry failed", "day", next.Day(), "err", err)
		return 0, fmt.Errorf("save entry for %s: %w", next.Day(), err)
	}

	*entry = next
	return affected, nil
}

// Delete removes entry by ID and returns the number of rows removed.
func (s *EntryService) Delete(ctx context.Context, entry journal.Entry) (int64, error) {
	affected, err := s.entries.Delete(ctx, entry.ID)
	if err != nil {
		slog.ErrorContext(ctx, "delete entry failed", "entry_id", entry.ID, "err", err)
		return 0, fmt.Errorf("delete entry %d: %w", entry.ID, err)
	}
	return affected, nil
}

func (s *EntryService) withTx(ctx context.Context, fn func(*database.Context) error) error {
	if s.ctx == nil || s.ctx.DB == nil {
		return fmt.Errorf("entry service: missing database context")
	}
	return database.RunInTx(ctx, s.ctx, fn)
}
