package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies every embedded migration that has not run yet. Filenames
// are applied in lexical order and recorded in schema_migrations, so the
// numeric prefix is the ordering contract.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := migrationApplied(ctx, db, name)
		if err != nil {
			return err
		}

		if applied {
			continue
		}

		if err := applyMigration(ctx, db, name); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}

		log.Printf("Applied migration %s", name)
	}

	return nil
}

// Pending lists migrations that have not been applied yet.
func Pending(ctx context.Context, db *sql.DB) ([]string, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, entry := range entries {
		applied, err := migrationApplied(ctx, db, entry.Name())
		if err != nil {
			return nil, err
		}

		if !applied {
			pending = append(pending, entry.Name())
		}
	}
	sort.Strings(pending)

	return pending, nil
}

func migrationApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename = $1)`, name).Scan(&exists)
	if err != nil {
		// First run: the bookkeeping table may not exist yet. Anything else
		// is a real failure and must not read as "not applied".
		if isUndefinedTable(err) {
			return false, nil
		}

		return false, err
	}

	return exists, nil
}

// undefinedTable is the Postgres error code for a relation that does not
// exist.
const undefinedTable = "42P01"

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == undefinedTable
}

func applyMigration(ctx context.Context, db *sql.DB, name string) error {
	body, err := migrationFS.ReadFile("migrations/" + name)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
		return err
	}

	return tx.Commit()
}
