package sqldb

import "context"

const deleteAllEntryTags = `DELETE FROM JournalEntryTags`

func (q *Queries) DeleteAllEntryTags(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllEntryTags)
	return err
}

const deleteAllJournalEntries = `DELETE FROM JournalEntries`

func (q *Queries) DeleteAllJournalEntries(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllJournalEntries)
	return err
}

const deleteAllTags = `DELETE FROM Tags`

func (q *Queries) DeleteAllTags(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllTags)
	return err
}

const deleteAllMoods = `DELETE FROM Moods`

func (q *Queries) DeleteAllMoods(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllMoods)
	return err
}

const deleteAllUsers = `DELETE FROM Users`

func (q *Queries) DeleteAllUsers(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllUsers)
	return err
}
