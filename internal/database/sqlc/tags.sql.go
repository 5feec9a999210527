package sqldb

import (
	"context"
	"database/sql"
)

func (q *Queries) listTags(ctx context.Context, query string, args ...any) ([]Tag, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tag
	for rows.Next() {
		var i Tag
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
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

const listTags = `SELECT id, name FROM Tags ORDER BY name`

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	return q.listTags(ctx, listTags)
}

const getTag = `SELECT id, name FROM Tags WHERE id = ?`

func (q *Queries) GetTag(ctx context.Context, id int64) (Tag, error) {
	row := q.db.QueryRowContext(ctx, getTag, id)
	var i Tag
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const findTagByName = `SELECT id, name FROM Tags WHERE name = ? COLLATE NOCASE LIMIT 1`

func (q *Queries) FindTagByName(ctx context.Context, name string) (Tag, error) {
	row := q.db.QueryRowContext(ctx, findTagByName, name)
	var i Tag
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const insertTag = `INSERT INTO Tags (name) VALUES (?)`

func (q *Queries) InsertTag(ctx context.Context, name string) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertTag, name)
}

const updateTag = `UPDATE Tags SET name = ? WHERE id = ?`

type UpdateTagParams struct {
	Name string
	ID   int64
}

func (q *Queries) UpdateTag(ctx context.Context, arg UpdateTagParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateTag, arg.Name, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteTag = `DELETE FROM Tags WHERE id = ?`

func (q *Queries) DeleteTag(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTag, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countTags = `SELECT COUNT(*) FROM Tags`

func (q *Queries) CountTags(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTags)
	var count int64
	err := row.Scan(&count)
	return count, err
}
