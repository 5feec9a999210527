package sqldb

import (
	"context"
	"database/sql"
	"time"
)

const journalEntryColumns = `id, date, day, title, content, created_at, updated_at, primary_mood, secondary_moods, tags, tag_id`

func scanJournalEntry(row interface{ Scan(...any) error }) (JournalEntry, error) {
	var i JournalEntry
	err := row.Scan(
		&i.ID,
		&i.Date,
		&i.Day,
		&i.Title,
		&i.Content,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.PrimaryMood,
		&i.SecondaryMoods,
		&i.Tags,
		&i.TagID,
	)
	return i, err
}

func (q *Queries) listJournalEntries(ctx context.Context, query string, args ...any) ([]JournalEntry, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []JournalEntry
	for rows.Next() {
		i, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listJournalEntries = `SELECT ` + journalEntryColumns + `
FROM JournalEntries
ORDER BY date DESC, created_at DESC`

func (q *Queries) ListJournalEntries(ctx context.Context) ([]JournalEntry, error) {
	return q.listJournalEntries(ctx, listJournalEntries)
}

const getJournalEntry = `SELECT ` + journalEntryColumns + `
FROM JournalEntries
WHERE id = ?`

func (q *Queries) GetJournalEntry(ctx context.Context, id int64) (JournalEntry, error) {
	row := q.db.QueryRowContext(ctx, getJournalEntry, id)
	return scanJournalEntry(row)
}

const findJournalEntryByDay = `SELECT ` + journalEntryColumns + `
FROM JournalEntries
WHERE day = ?
ORDER BY created_at ASC
LIMIT 1`

func (q *Queries) FindJournalEntryByDay(ctx context.Context, day string) (JournalEntry, error) {
	row := q.db.QueryRowContext(ctx, findJournalEntryByDay, day)
	return scanJournalEntry(row)
}

const listJournalEntriesByDay = `SELECT ` + journalEntryColumns + `
FROM JournalEntries
WHERE day = ?
ORDER BY date DESC, created_at DESC`

func (q *Queries) ListJournalEntriesByDay(ctx context.Context, day string) ([]JournalEntry, error) {
	return q.listJournalEntries(ctx, listJournalEntriesByDay, day)
}

const listJournalEntriesInDayRange = `SELECT ` + journalEntryColumns + `
FROM JournalEntries
WHERE day >= ? AND day <= ?
ORDER BY date DESC, created_at DESC`

type ListJournalEntriesInDayRangeParams struct {
	StartDay string
	EndDay   string
}

func (q *Queries) ListJournalEntriesInDayRange(ctx context.Context, arg ListJournalEntriesInDayRangeParams) ([]JournalEntry, error) {
	return q.listJournalEntries(ctx, listJournalEntriesInDayRange, arg.StartDay, arg.EndDay)
}

const insertJournalEntry = `INSERT INTO JournalEntries (
    date, day, title, content, created_at, updated_at, primary_mood, secondary_moods, tags, tag_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type InsertJournalEntryParams struct {
	Date           time.Time
	Day            string
	Title          string
	Content        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PrimaryMood    string
	SecondaryMoods string
	Tags           string
	TagID          sql.NullInt64
}

func (q *Queries) InsertJournalEntry(ctx context.Context, arg InsertJournalEntryParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertJournalEntry,
		arg.Date,
		arg.Day,
		arg.Title,
		arg.Content,
		arg.CreatedAt,
		arg.UpdatedAt,
		arg.PrimaryMood,
		arg.SecondaryMoods,
		arg.Tags,
		arg.TagID,
	)
}

// created_at is never rewritten.
const updateJournalEntry = `UPDATE JournalEntries
SET date = ?, day = ?, title = ?, content = ?, updated_at = ?,
    primary_mood = ?, secondary_moods = ?, tags = ?, tag_id = ?
WHERE id = ?`

type UpdateJournalEntryParams struct {
	Date           time.Time
	Day            string
	Title          string
	Content        string
	UpdatedAt      time.Time
	PrimaryMood    string
	SecondaryMoods string
	Tags           string
	TagID          sql.NullInt64
	ID             int64
}

func (q *Queries) UpdateJournalEntry(ctx context.Context, arg UpdateJournalEntryParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateJournalEntry,
		arg.Date,
		arg.Day,
		arg.Title,
		arg.Content,
		arg.UpdatedAt,
		arg.PrimaryMood,
		arg.SecondaryMoods,
		arg.Tags,
		arg.TagID,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteJournalEntry = `DELETE FROM JournalEntries WHERE id = ?`

func (q *Queries) DeleteJournalEntry(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteJournalEntry, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
