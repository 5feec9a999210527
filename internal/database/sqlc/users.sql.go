package sqldb

import "context"

const getUser = `SELECT id, name, otp FROM Users ORDER BY id LIMIT 1`

func (q *Queries) GetUser(ctx context.Context) (User, error) {
	row := q.db.QueryRowContext(ctx, getUser)
	var i User
	err := row.Scan(&i.ID, &i.Name, &i.Otp)
	return i, err
}

const countUsers = `SELECT COUNT(*) FROM Users`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUsers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertUser = `INSERT INTO Users (id, name, otp) VALUES (1, ?, ?)`

type InsertUserParams struct {
	Name string
	Otp  string
}

func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) error {
	_, err := q.db.ExecContext(ctx, insertUser, arg.Name, arg.Otp)
	return err
}

const updateUserOtp = `UPDATE Users SET otp = ? WHERE id = 1`

func (q *Queries) UpdateUserOtp(ctx context.Context, otp string) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateUserOtp, otp)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteUser = `DELETE FROM Users`

func (q *Queries) DeleteUser(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteUser)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
