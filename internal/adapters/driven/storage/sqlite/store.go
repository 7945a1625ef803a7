package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kadolab/kado-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/kadolab/kado-cli/internal/core/domain"
	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

const dbFileName = "history.db"

// Store owns the SQLite connection used for recommendation history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the history database under dataDir,
// defaulting to ~/.kado/data, and brings the schema up to date.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kado", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL keeps concurrent readers out of the writer's way; the busy
	// timeout covers the rare case of two kado processes at once.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyMigrations(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecommendationStore exposes the history table through its port.
func (s *Store) RecommendationStore() driven.RecommendationStore {
	return &recommendationStore{store: s}
}

// applyMigrations executes every *.up.sql in fsys whose numeric prefix is
// higher than the recorded schema version, in filename order.
func applyMigrations(db *sql.DB, fsys fs.FS) error {
	const versionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(versionTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	names, err := pendingMigrations(fsys, current)
	if err != nil {
		return err
	}

	for _, name := range names {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", migrationVersion(name)); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

// pendingMigrations lists the up-migrations newer than version, sorted so
// the NNN_ filename prefix dictates execution order.
func pendingMigrations(fsys fs.FS, version int) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		if v := migrationVersion(name); v == 0 || v <= version {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// migrationVersion parses the numeric prefix of a migration filename,
// e.g. "001_initial.up.sql" yields 1. Unparseable names yield 0.
func migrationVersion(name string) int {
	var v int
	if _, err := fmt.Sscanf(name, "%d_", &v); err != nil {
		return 0
	}
	return v
}

type recommendationStore struct {
	store *Store
}

var _ driven.RecommendationStore = (*recommendationStore)(nil)

// Save persists one completed recommendation, replacing any previous row
// with the same id.
func (r *recommendationStore) Save(ctx context.Context, rec domain.SavedRecommendation) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: recommendation id is empty", domain.ErrInvalidInput)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	const upsert = `INSERT INTO recommendations
		(id, timestamp, user_id, description, price_range, gift_type, interests, context)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			timestamp = excluded.timestamp,
			description = excluded.description,
			price_range = excluded.price_range,
			gift_type = excluded.gift_type,
			interests = excluded.interests,
			context = excluded.context`

	_, err := r.store.db.ExecContext(ctx, upsert,
		rec.ID, rec.Timestamp.UTC(), rec.UserID, rec.Description,
		rec.PriceRange, rec.GiftType, rec.Interests, rec.Context)
	if err != nil {
		return fmt.Errorf("save recommendation: %w", err)
	}
	return nil
}

// List returns all saved recommendations, most recent first.
func (r *recommendationStore) List(ctx context.Context) ([]domain.SavedRecommendation, error) {
	const query = `SELECT id, timestamp, user_id, description, price_range, gift_type, interests, context
		FROM recommendations
		ORDER BY timestamp DESC, id`

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []domain.SavedRecommendation
	for rows.Next() {
		var rec domain.SavedRecommendation
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.UserID, &rec.Description,
			&rec.PriceRange, &rec.GiftType, &rec.Interests, &rec.Context); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// Close is a no-op; the owning Store manages the connection.
func (r *recommendationStore) Close() error {
	return nil
}
