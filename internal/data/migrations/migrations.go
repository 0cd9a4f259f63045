package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"club-booking/pkg/database"
)

//go:embed sql/*.sql
var files embed.FS

// Apply runs every migration not yet recorded in schema_migrations, in file
// name order, each inside its own transaction. It returns the number of
// migrations applied.
func Apply(ctx context.Context, db database.PgxIface) (int, error) {
	if _, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := allVersions()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, name := range names {
		var exists bool
		err := db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name,
		).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile("sql/" + name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		err = db.RunInTx(ctx, func(q database.Querier) error {
			if _, err := q.Exec(ctx, string(body)); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			if _, err := q.Exec(ctx,
				`INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
				return fmt.Errorf("record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// Status returns applied and pending migration versions.
func Status(ctx context.Context, db database.PgxIface) (applied []string, pending []string, err error) {
	names, err := allVersions()
	if err != nil {
		return nil, nil, err
	}

	var tracked bool
	err = db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables WHERE table_name = 'schema_migrations'
	)`).Scan(&tracked)
	if err != nil {
		return nil, nil, fmt.Errorf("check schema_migrations: %w", err)
	}
	if !tracked {
		return nil, names, nil
	}

	done := make(map[string]bool, len(names))
	rows, err := db.Query(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, nil, fmt.Errorf("read migration versions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, nil, fmt.Errorf("scan migration version: %w", err)
		}
		done[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read migration versions: %w", err)
	}

	for _, name := range names {
		if done[name] {
			applied = append(applied, name)
		} else {
			pending = append(pending, name)
		}
	}
	return applied, pending, nil
}

func allVersions() ([]string, error) {
	entries, err := files.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
