package migrate

import (
	"context"
	"fmt"
	"log"
	"sort"

	"campusexpense/internal/db"

	"github.com/jmoiron/sqlx"
)

// Migration is one forward-only schema step. Statements run in order
// inside a single transaction together with the version bump, so a
// failing step leaves the stored version untouched.
type Migration struct {
	Version    int
	Name       string
	Statements []string
}

// Run applies every migration past the stored schema version, in
// ascending version order, one transaction per migration. A failure
// aborts the run; the caller must treat it as fatal rather than continue
// on a partial schema.
func Run(ctx context.Context, database *sqlx.DB) error {
	if err := ensureVersionTable(ctx, database); err != nil {
		return fmt.Errorf("ensure schema_version: %w", err)
	}
	current, err := CurrentVersion(ctx, database)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for _, m := range Pending(All, current) {
		if err := applyOne(ctx, database, m); err != nil {
			return err
		}
		log.Printf("applied migration %d (%s)", m.Version, m.Name)
	}
	return nil
}

// Pending selects the migrations with a version above current, sorted
// ascending.
func Pending(migrations []Migration, current int) []Migration {
	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })
	return pending
}

func CurrentVersion(ctx context.Context, getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}) (int, error) {
	var version int
	if err := getter.GetContext(ctx, &version, `SELECT version FROM schema_version`); err != nil {
		return 0, err
	}
	return version, nil
}

func ensureVersionTable(ctx context.Context, database *sqlx.DB) error {
	return db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version integer NOT NULL)`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM schema_version)`)
		return err
	})
}

func applyOne(ctx context.Context, database *sqlx.DB, m Migration) error {
	err := db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
		for _, stmt := range m.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `UPDATE schema_version SET version = $1`, m.Version)
		return err
	})
	if err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	return nil
}
