package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mvess/spendlog/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func TestRun(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// Enable foreign keys for consistency with production.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	// Verify the users table exists by inserting a row.
	res, err := db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		"alice", "hash123",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	// Verify the expenses table exists and its owner FK resolves.
	_, err = db.ExecContext(ctx,
		"INSERT INTO expenses (user_id, title, amount, date) VALUES (?, ?, ?, ?)",
		userID, "coffee", "3.5", "2024-01-01",
	)
	if err != nil {
		t.Fatalf("insert into expenses: %v", err)
	}

	// Verify schema_migrations tracks the applied migrations.
	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one migration recorded in schema_migrations")
	}
}

func TestRunIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	var countBefore int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&countBefore); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}

	// Second run should be a no-op.
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second migration run: %v", err)
	}

	var countAfter int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&countAfter); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if countBefore != countAfter {
		t.Fatalf("expected migration count to stay at %d, got %d", countBefore, countAfter)
	}
}
