package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations
var migrationsFS embed.FS

type migration struct {
	version string
	sql     string
}

// Migrate applies every embedded migration for the active driver that is not
// yet recorded in schema_migrations. Each file runs in its own transaction.
func (d *Database) Migrate(ctx context.Context) error {
	files, err := loadMigrations(string(d.Driver))
	if err != nil {
		return err
	}
	if d.Driver == DriverPostgres {
		return d.migratePostgres(ctx, files)
	}
	return d.migrateSQLite(ctx, files)
}

func loadMigrations(dir string) ([]migration, error) {
	root := path.Join("migrations", dir)
	entries, err := fs.ReadDir(migrationsFS, root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	out := make([]migration, 0, len(names))
	for _, name := range names {
		sqlBytes, err := fs.ReadFile(migrationsFS, path.Join(root, name))
		if err != nil {
			return nil, err
		}
		out = append(out, migration{version: strings.TrimSuffix(name, ".sql"), sql: string(sqlBytes)})
	}
	return out, nil
}

func (d *Database) migratePostgres(ctx context.Context, files []migration) error {
	if _, err := d.Pool.Exec(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())"); err != nil {
		return err
	}

	for _, m := range files {
		var count int
		if err := d.Pool.QueryRow(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = $1", m.version).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		tx, err := d.Pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, m.sql); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %s failed: %w", m.version, err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) migrateSQLite(ctx context.Context, files []migration) error {
	if _, err := d.SQL.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP)"); err != nil {
		return err
	}

	for _, m := range files {
		var count int
		if err := d.SQL.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		tx, err := d.SQL.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
