// Package database provides connection management and typed repositories for
// the journal store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/daybook/daybook/db/migrations"
	"github.com/daybook/daybook/internal/config"
	sqldb "github.com/daybook/daybook/internal/database/sqlc"

	// Import SQLite driver for database/sql
	_ "modernc.org/sqlite"
)

const dsnOptions = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// Context holds the database connection and query interface. Inside RunInTx
// the Queries are bound to the open transaction.
type Context struct {
	DB      *sql.DB
	Queries *sqldb.Queries

	tx *sql.Tx
}

// CreateDatabase opens (creating if needed) the SQLite file at dbPath and
// applies the embedded migrations. An empty path selects config.GetDBPath.
func CreateDatabase(dbPath string) (*Context, error) {
	path := dbPath
	if path == "" {
		path = config.GetDBPath()
	}

	useMemory := path == ":memory:"

	if !useMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var dsn string
	if useMemory {
		dsn = "file::memory:?cache=shared&" + dsnOptions
	} else {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?%s", filepath.ToSlash(absPath), dsnOptions)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Context{
		DB:      db,
		Queries: sqldb.New(db),
	}, nil
}

// CloseDatabase closes the database connection.
func CloseDatabase(ctx *Context) error {
	if ctx == nil || ctx.DB == nil {
		return nil
	}
	return ctx.DB.Close()
}

// RunInTx runs fn with a Context whose queries are bound to a new
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise. Called with a Context that RunInTx produced, fn joins that
// transaction and the outermost call decides commit or rollback.
func RunInTx(ctx context.Context, dbCtx *Context, fn func(tx *Context) error) error {
	if dbCtx == nil || dbCtx.DB == nil {
		return fmt.Errorf("database: missing database context")
	}
	if dbCtx.tx != nil {
		return fn(dbCtx)
	}

	queries := dbCtx.Queries
	if queries == nil {
		queries = sqldb.New(dbCtx.DB)
	}

	tx, err := dbCtx.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := &Context{DB: dbCtx.DB, Queries: queries.WithTx(tx), tx: tx}
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback error: %w)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClearDatabase removes all rows from every journal table.
func ClearDatabase(ctx *Context) error {
	if ctx == nil || ctx.DB == nil {
		return nil
	}

	return RunInTx(context.Background(), ctx, func(tx *Context) error {
		bg := context.Background()
		steps := []struct {
			name string
			run  func(context.Context) error
		}{
			{"entry tags", tx.Queries.DeleteAllEntryTags},
			{"journal entries", tx.Queries.DeleteAllJournalEntries},
			{"tags", tx.Queries.DeleteAllTags},
			{"moods", tx.Queries.DeleteAllMoods},
			{"users", tx.Queries.DeleteAllUsers},
		}
		for _, step := range steps {
			if err := step.run(bg); err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.name, err)
			}
		}
		return nil
	})
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to initialise migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	defer func() {
		_ = sourceDriver.Close()
	}()

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
