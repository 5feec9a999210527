package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/daybook/daybook/internal/database/sqlc"
	"github.com/daybook/daybook/internal/journal"
)

type EntryRepository struct {
	ctx *Context
}

func NewEntryRepository(dbCtx *Context) *EntryRepository {
	return &EntryRepository{ctx: dbCtx}
}

func (r *EntryRepository) queries() (*sqldb.Queries, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("entry repository: missing database context")
	}
	return queries, nil
}

// FindAll returns every entry, newest date first.
func (r *EntryRepository) FindAll(ctx context.Context) ([]journal.Entry, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListJournalEntries(ctx)
	if err != nil {
		return nil, err
	}
	return EntriesFromRows(rows), nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id int64) (*journal.Entry, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	row, err := queries.GetJournalEntry(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	entry := EntryFromRow(row)
	return &entry, nil
}

// FindByDay returns the entry stored under the YYYY-MM-DD day key.
func (r *EntryRepository) FindByDay(ctx context.Context, day string) (*journal.Entry, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	row, err := queries.FindJournalEntryByDay(ctx, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	entry := EntryFromRow(row)
	return &entry, nil
}

func (r *EntryRepository) ListByDay(ctx context.Context, day string) ([]journal.Entry, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListJournalEntriesByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return EntriesFromRows(rows), nil
}

// ListInDayRange returns entries whose day key lies in [startDay, endDay].
func (r *EntryRepository) ListInDayRange(ctx context.Context, startDay, endDay string) ([]journal.Entry, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListJournalEntriesInDayRange(ctx, sqldb.ListJournalEntriesInDayRangeParams{
		StartDay: startDay,
		EndDay:   endDay,
	})
	if err != nil {
		return nil, err
	}
	return EntriesFromRows(rows), nil
}

func (r *EntryRepository) Create(ctx context.Context, entry journal.Entry) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	res, err := queries.InsertJournalEntry(ctx, EntryInsertParams(entry))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites entry.ID and returns the number of rows affected.
func (r *EntryRepository) Update(ctx context.Context, entry journal.Entry) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.UpdateJournalEntry(ctx, EntryUpdateParams(entry))
}

func (r *EntryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.DeleteJournalEntry(ctx, id)
}
