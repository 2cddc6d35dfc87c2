package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/cartvoice/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

// dbFile is the database file name within the data directory.
const dbFile = "catalog.db"

// Store is a SQLite-based storage for the product catalog.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.cartvoice/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cartvoice", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return Open(filepath.Join(dataDir, dbFile))
}

// Open opens or creates the database file at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Catalog Store ====================

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// List returns all entries in insertion order.
func (c *catalogStore) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, name, category, brand, tags, price, rating
		FROM catalog_entries
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog entries: %w", err)
	}
	return entries, nil
}

// Save inserts or updates entries by ID in one transaction.
// Updated entries keep their original position.
func (c *catalogStore) Save(ctx context.Context, entries []domain.CatalogEntry) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var position int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) FROM catalog_entries",
	).Scan(&position); err != nil {
		return fmt.Errorf("reading catalog position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_entries (id, name, category, brand, tags, price, rating, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			brand = excluded.brand,
			tags = excluded.tags,
			price = excluded.price,
			rating = excluded.rating,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("preparing catalog insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("%w: catalog entry %q has no id", domain.ErrInvalidInput, e.Name)
		}

		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("marshalling tags: %w", err)
		}

		position++
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Name, e.Category, e.Brand, string(tagsJSON), e.Price, e.Rating, position,
		); err != nil {
			return fmt.Errorf("saving catalog entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

// Count returns the number of entries.
func (c *catalogStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting catalog entries: %w", err)
	}
	return n, nil
}

// Close closes the underlying store.
func (c *catalogStore) Close() error {
	return c.store.Close()
}

func scanEntry(rows *sql.Rows) (*domain.CatalogEntry, error) {
	var (
		e        domain.CatalogEntry
		tagsJSON string
	)
	if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Brand, &tagsJSON, &e.Price, &e.Rating); err != nil {
		return nil, fmt.Errorf("scanning catalog entry: %w", err)
	}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("unmarshalling tags for %s: %w", e.ID, err)
		}
	}
	if len(e.Tags) == 0 {
		e.Tags = nil
	}
	return &e, nil
}
