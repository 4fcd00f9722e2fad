package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvess/spendlog/internal/domain"
	"github.com/mvess/spendlog/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB owns the SQLite connection pool and hands out repositories bound to it.
// It is opened once at startup and closed on shutdown; individual requests
// borrow connections implicitly through database/sql.
type DB struct {
	sqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite allows a single writer; serialize access through one connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{sqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.sqlDB)
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.sqlDB.Close()
}

// Users returns the user repository backed by this database.
func (d *DB) Users() domain.UserRepository {
	return &userRepo{db: d.sqlDB}
}

// Expenses returns the expense repository backed by this database.
func (d *DB) Expenses() domain.ExpenseRepository {
	return &expenseRepo{db: d.sqlDB}
}
