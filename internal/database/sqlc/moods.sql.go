package sqldb

import (
	"context"
	"database/sql"
)

func (q *Queries) listMoods(ctx context.Context, query string, args ...any) ([]Mood, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Mood
	for rows.Next() {
		var i Mood
		if err := rows.Scan(&i.ID, &i.Name, &i.Category, &i.MoodType); err != nil {
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

const listMoods = `SELECT id, name, category, mood_type
FROM Moods
ORDER BY category, name`

func (q *Queries) ListMoods(ctx context.Context) ([]Mood, error) {
	return q.listMoods(ctx, listMoods)
}

const listMoodsByCategory = `SELECT id, name, category, mood_type
FROM Moods
WHERE category = ? COLLATE NOCASE
ORDER BY name`

func (q *Queries) ListMoodsByCategory(ctx context.Context, category string) ([]Mood, error) {
	return q.listMoods(ctx, listMoodsByCategory, category)
}

const getMood = `SELECT id, name, category, mood_type FROM Moods WHERE id = ?`

func (q *Queries) GetMood(ctx context.Context, id int64) (Mood, error) {
	row := q.db.QueryRowContext(ctx, getMood, id)
	var i Mood
	err := row.Scan(&i.ID, &i.Name, &i.Category, &i.MoodType)
	return i, err
}

const findMoodByName = `SELECT id, name, category, mood_type
FROM Moods
WHERE name = ? COLLATE NOCASE
LIMIT 1`

func (q *Queries) FindMoodByName(ctx context.Context, name string) (Mood, error) {
	row := q.db.QueryRowContext(ctx, findMoodByName, name)
	var i Mood
	err := row.Scan(&i.ID, &i.Name, &i.Category, &i.MoodType)
	return i, err
}

const insertMood = `INSERT INTO Moods (name, category, mood_type) VALUES (?, ?, ?)`

type InsertMoodParams struct {
	Name     string
	Category string
	MoodType string
}

func (q *Queries) InsertMood(ctx context.Context, arg InsertMoodParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertMood, arg.Name, arg.Category, arg.MoodType)
}

const updateMood = `UPDATE Moods SET name = ?, category = ?, mood_type = ? WHERE id = ?`

type UpdateMoodParams struct {
	Name     string
	Category string
	MoodType string
	ID       int64
}

func (q *Queries) UpdateMood(ctx context.Context, arg UpdateMoodParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMood, arg.Name, arg.Category, arg.MoodType, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMood = `DELETE FROM Moods WHERE id = ?`

func (q *Queries) DeleteMood(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMood, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listMoodCategories = `SELECT DISTINCT category FROM Moods ORDER BY category`

func (q *Queries) ListMoodCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listMoodCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		items = append(items, category)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
