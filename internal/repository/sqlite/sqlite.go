package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/repository"
)

const (
	metaSource    = "source"
	metaUpdatedAt = "updated_at"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository. Use ":memory:" for a private
// in-memory store.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dbPath != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite has a single writer; one connection also keeps an in-memory
	// database alive for the lifetime of the pool
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS families (
		id INTEGER PRIMARY KEY,
		position INTEGER NOT NULL UNIQUE,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS members (
		id INTEGER PRIMARY KEY,
		family_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		profession TEXT,
		bio TEXT,
		UNIQUE (family_id, position),
		FOREIGN KEY (family_id) REFERENCES families(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS connections (
		member_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (member_id, position),
		FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_members_family ON members(family_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close releases the database
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveDataset replaces the stored dataset in one transaction
func (r *Repository) SaveDataset(ctx context.Context, ds domain.Dataset, source string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// connections and members go with their family
	if _, err := tx.ExecContext(ctx, `DELETE FROM families`); err != nil {
		return fmt.Errorf("failed to clear dataset: %w", err)
	}

	familyStmt, err := tx.PrepareContext(ctx, `INSERT INTO families (position, name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare family insert: %w", err)
	}
	defer familyStmt.Close()

	memberStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO members (family_id, position, name, profession, bio)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare member insert: %w", err)
	}
	defer memberStmt.Close()

	connStmt, err := tx.PrepareContext(ctx, `INSERT INTO connections (member_id, position, text) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare connection insert: %w", err)
	}
	defer connStmt.Close()

	for gi, family := range ds {
		res, err := familyStmt.ExecContext(ctx, gi, family.Name)
		if err != nil {
			return fmt.Errorf("failed to insert family %d: %w", gi, err)
		}
		familyID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read family id: %w", err)
		}

		for mi, m := range family.Members {
			res, err := memberStmt.ExecContext(ctx, familyID, mi, m.Name, stringToNull(m.Profession), stringToNull(m.Bio))
			if err != nil {
				return fmt.Errorf("failed to insert member %s: %w", domain.NodeID(gi, mi), err)
			}
			memberID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read member id: %w", err)
			}

			for ci, text := range m.Connections {
				if _, err := connStmt.ExecContext(ctx, memberID, ci, text); err != nil {
					return fmt.Errorf("failed to insert connection of %s: %w", domain.NodeID(gi, mi), err)
				}
			}
		}
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for key, value := range map[string]string{metaSource: source, metaUpdatedAt: now} {
		if err := setMeta(ctx, tx, key, value); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}

// LoadDataset reads the stored dataset in input order
func (r *Repository) LoadDataset(ctx context.Context) (domain.Dataset, error) {
	if _, err := r.meta(ctx, metaUpdatedAt); err != nil {
		return nil, err
	}

	ds := domain.Dataset{}
	familyIndex := make(map[int64]int)

	rows, err := r.db.QueryContext(ctx, `SELECT `+familyColumns+` FROM families ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query families: %w", err)
	}
	for rows.Next() {
		var row familyRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		familyIndex[row.ID] = len(ds)
		ds = append(ds, row.toDomain())
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate families: %w", err)
	}

	type memberRef struct{ family, member int }
	memberIndex := make(map[int64]memberRef)

	rows, err = r.db.QueryContext(ctx, `
		SELECT `+memberColumns+`
		FROM members m JOIN families f ON f.id = m.family_id
		ORDER BY f.position, m.position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	for rows.Next() {
		var row memberRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		fi := familyIndex[row.FamilyID]
		memberIndex[row.ID] = memberRef{family: fi, member: len(ds[fi].Members)}
		ds[fi].Members = append(ds[fi].Members, row.toDomain())
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `SELECT member_id, text FROM connections ORDER BY member_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			memberID int64
			text     string
		)
		if err := rows.Scan(&memberID, &text); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		ref, ok := memberIndex[memberID]
		if !ok {
			continue
		}
		m := &ds[ref.family].Members[ref.member]
		m.Connections = append(m.Connections, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", err)
	}

	return ds, nil
}

// Stats reports row counts and import metadata
func (r *Repository) Stats(ctx context.Context) (repository.Stats, error) {
	var stats repository.Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM families),
			(SELECT COUNT(*) FROM members),
			(SELECT COUNT(*) FROM connections)
	`).Scan(&stats.Families, &stats.Members, &stats.Connections)
	if err != nil {
		return stats, fmt.Errorf("failed to count dataset: %w", err)
	}

	source, err := r.meta(ctx, metaSource)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyStore) {
			return stats, nil
		}
		return stats, err
	}
	stats.Source = source

	if updated, err := r.meta(ctx, metaUpdatedAt); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			stats.UpdatedAt = t
		}
	}
	return stats, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setMeta(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata %s: %w", key, err)
	}
	return nil
}

func (r *Repository) meta(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrEmptyStore
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return value, nil
}
