package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/daybook/daybook/internal/database/sqlc"
	"github.com/daybook/daybook/internal/journal"
)

// UserRepository accesses the single-row Users table.
type UserRepository struct {
	ctx *Context
}

func NewUserRepository(dbCtx *Context) *UserRepository {
	return &UserRepository{ctx: dbCtx}
}

func (r *UserRepository) queries() (*sqldb.Queries, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("user repository: missing database context")
	}
	return queries, nil
}

// Find returns the registered user, or nil when none exists.
func (r *UserRepository) Find(ctx context.Context) (*journal.User, error) {
	queries, err := r.queries()
	if err != nil {
		return nil, err
	}

	row, err := queries.GetUser(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	user := UserFromRow(row)
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context) (bool, error) {
	queries, err := r.queries()
	if err != nil {
		return false, err
	}

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the user row. ErrUserExists is returned when one is already
// present; callers wanting atomicity run it inside RunInTx.
func (r *UserRepository) Create(ctx context.Context, name, otpHash string) error {
	queries, err := r.queries()
	if err != nil {
		return err
	}

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}

	return queries.InsertUser(ctx, sqldb.InsertUserParams{Name: name, Otp: otpHash})
}

// UpdateOTP replaces the stored secret. ErrNotFound is returned when no user
// exists.
func (r *UserRepository) UpdateOTP(ctx context.Context, otpHash string) error {
	queries, err := r.queries()
	if err != nil {
		return err
	}

	affected, err := queries.UpdateUserOtp(ctx, otpHash)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context) (int64, error) {
	queries, err := r.queries()
	if err != nil {
		return 0, err
	}

	return queries.DeleteUser(ctx)
}
