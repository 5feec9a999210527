package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/daybook/daybook/internal/config"
)

func setupTestDB(t *testing.T) *Context {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("DAYBOOK_DIR", tmp)

	ctx, err := CreateDatabase("")
	if err != nil {
		t.Fatalf("CreateDatabase returned error: %v", err)
	}

	t.Cleanup(func() {
		if err := CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

func TestDatabaseCreationAndMigration(t *testing.T) {
	ctx := setupTestDB(t)

	dbPath := filepath.Join(config.GetDataDir(), "daybook.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected database file to exist at %s: %v", dbPath, err)
	}

	var version int
	var dirty bool
	if err := ctx.DB.QueryRow("SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty); err != nil {
		t.Fatalf("failed to read schema_migrations: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("expected clean migration version 1, got %d (dirty=%v)", version, dirty)
	}

	tables := []string{"JournalEntries", "Moods", "Tags", "JournalEntryTags", "Users"}
	for _, table := range tables {
		if !tableExists(t, ctx.DB, table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestCreateDatabaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	first, err := CreateDatabase(path)
	if err != nil {
		t.Fatalf("first CreateDatabase error: %v", err)
	}
	insertTag(t, first.DB, "Work")
	if err := CloseDatabase(first); err != nil {
		t.Fatalf("CloseDatabase error: %v", err)
	}

	second, err := CreateDatabase(path)
	if err != nil {
		t.Fatalf("second CreateDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = CloseDatabase(second) })

	assertCount(t, second.DB, "Tags", 1)
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := setupTestDB(t)

	_, err := ctx.DB.Exec(`INSERT INTO JournalEntryTags(journal_entry_id, tag_id) VALUES(999, 999)`)
	if err == nil {
		t.Fatalf("expected foreign key violation")
	}
}

func TestClearDatabaseRemovesAllRows(t *testing.T) {
	ctx := setupTestDB(t)

	tagID := insertTag(t, ctx.DB, "Work")
	entryID := insertEntry(t, ctx.DB, "2024-03-01")
	if _, err := ctx.DB.Exec(`INSERT INTO JournalEntryTags(journal_entry_id, tag_id) VALUES(?, ?)`, entryID, tagID); err != nil {
		t.Fatalf("insert entry tag: %v", err)
	}
	if _, err := ctx.DB.Exec(`INSERT INTO Moods(name, category, mood_type) VALUES('Happy', 'Primary', 'Positive')`); err != nil {
		t.Fatalf("insert mood: %v", err)
	}
	if _, err := ctx.DB.Exec(`INSERT INTO Users(id, name, otp) VALUES(1, 'Ada', 'x')`); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	if err := ClearDatabase(ctx); err != nil {
		t.Fatalf("ClearDatabase returned error: %v", err)
	}

	for _, table := range []string{"JournalEntries", "Moods", "Tags", "JournalEntryTags", "Users"} {
		assertCount(t, ctx.DB, table, 0)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	ctx := setupTestDB(t)
	boom := errors.New("boom")

	err := RunInTx(context.Background(), ctx, func(tx *Context) error {
		if _, err := NewTagRepository(tx).Create(context.Background(), "Work"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	assertCount(t, ctx.DB, "Tags", 0)

	err = RunInTx(context.Background(), ctx, func(tx *Context) error {
		_, err := NewTagRepository(tx).Create(context.Background(), "Work")
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
	assertCount(t, ctx.DB, "Tags", 1)
}

func TestRunInTxNestedJoinsOuter(t *testing.T) {
	ctx := setupTestDB(t)
	bg := context.Background()
	boom := errors.New("boom")

	err := RunInTx(bg, ctx, func(outer *Context) error {
		if _, err := NewTagRepository(outer).Create(bg, "Work"); err != nil {
			return err
		}
		if err := RunInTx(bg, outer, func(inner *Context) error {
			if inner != outer {
				t.Fatalf("expected nested call to reuse the outer context")
			}
			_, err := NewTagRepository(inner).Create(bg, "Family")
			return err
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	assertCount(t, ctx.DB, "Tags", 0)
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("tableExists query failed for %s: %v", table, err)
	}
	return true
}

func insertTag(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO Tags(name) VALUES(?)`, name)
	if err != nil {
		t.Fatalf("insertTag failed: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insertTag LastInsertId failed: %v", err)
	}
	return id
}

func insertEntry(t *testing.T, db *sql.DB, day string) int64 {
	t.Helper()
	now := time.Now().UTC()
	res, err := db.Exec(`INSERT INTO JournalEntries(date, day, created_at, updated_at) VALUES(?, ?, ?, ?)`, now, day, now, now)
	if err != nil {
		t.Fatalf("insertEntry failed: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insertEntry LastInsertId failed: %v", err)
	}
	return id
}

func assertCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("count query failed for %s: %v", table, err)
	}
	if count != expected {
		t.Fatalf("expected %s to have %d rows, got %d", table, expected, count)
	}
}
