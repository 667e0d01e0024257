package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	err := MigrateUp(db)
	if err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	// Verify tables were created
	for _, table := range []string{"runs", "schema_migrations"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Run migration twice
	if err := MigrateUp(db); err != nil {
		t.Fatalf("First MigrateUp() failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Errorf("Second MigrateUp() failed: %v (should be idempotent)", err)
	}
}

func TestSchema_RunDefaults(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	// Status and detail carry defaults so a crashed run still reads back.
	_, err := db.Exec("INSERT INTO runs (operation, started_at) VALUES ('cache', datetime('now'))")
	if err != nil {
		t.Fatalf("Failed to insert run: %v", err)
	}

	var status, detail string
	err = db.QueryRow("SELECT status, detail FROM runs WHERE operation = 'cache'").Scan(&status, &detail)
	if err != nil {
		t.Fatalf("Failed to retrieve run: %v", err)
	}
	if status != "running" {
		t.Errorf("default status = %q, want %q", status, "running")
	}
	if detail != "" {
		t.Errorf("default detail = %q, want empty", detail)
	}
}

func TestSchema_RunIDsIncrement(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	res1, err := db.Exec("INSERT INTO runs (operation, started_at) VALUES ('cache', datetime('now'))")
	if err != nil {
		t.Fatalf("Failed to insert run: %v", err)
	}
	res2, err := db.Exec("INSERT INTO runs (operation, started_at) VALUES ('link', datetime('now'))")
	if err != nil {
		t.Fatalf("Failed to insert run: %v", err)
	}

	id1, _ := res1.LastInsertId()
	id2, _ := res2.LastInsertId()
	if id2 <= id1 {
		t.Errorf("ids did not increment: %d then %d", id1, id2)
	}
}

// openTestDB opens an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	return db
}
