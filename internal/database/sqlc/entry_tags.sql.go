package sqldb

import "context"

const listTagIDsForEntry = `SELECT tag_id
FROM JournalEntryTags
WHERE journal_entry_id = ?
ORDER BY id`

func (q *Queries) ListTagIDsForEntry(ctx context.Context, journalEntryID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listTagIDsForEntry, journalEntryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var tagID int64
		if err := rows.Scan(&tagID); err != nil {
			return nil, err
		}
		items = append(items, tagID)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listTagsForEntry = `SELECT t.id, t.name
FROM JournalEntryTags et
JOIN Tags t ON t.id = et.tag_id
WHERE et.journal_entry_id = ?
ORDER BY et.id`

func (q *Queries) ListTagsForEntry(ctx context.Context, journalEntryID int64) ([]Tag, error) {
	return q.listTags(ctx, listTagsForEntry, journalEntryID)
}

const deleteEntryTags = `DELETE FROM JournalEntryTags WHERE journal_entry_id = ?`

func (q *Queries) DeleteEntryTags(ctx context.Context, journalEntryID int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteEntryTags, journalEntryID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const insertEntryTag = `INSERT OR IGNORE INTO JournalEntryTags (journal_entry_id, tag_id) VALUES (?, ?)`

type InsertEntryTagParams struct {
	JournalEntryID int64
	TagID          int64
}

func (q *Queries) InsertEntryTag(ctx context.Context, arg InsertEntryTagParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertEntryTag, arg.JournalEntryID, arg.TagID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
