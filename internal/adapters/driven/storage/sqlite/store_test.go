package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cartvoice-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func sampleEntries() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{ID: "a1", Name: "Green Apple", Category: "Fruits", Brand: "FarmFresh", Tags: []string{"seb", "fruit"}, Price: 150, Rating: 4.5},
		{ID: "p1", Name: "Potato", Category: "Vegetables", Price: 30},
		{ID: "d1", Name: "Paneer", Category: "Dairy", Brand: "Amul", Tags: []string{"cheese"}, Price: 90, Rating: 4.3},
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "catalog.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	err = store.db.Ping()
	assert.NoError(t, err)
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestOpen_ExplicitPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shop.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var tableExists int
	err = store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
		"catalog_entries",
	).Scan(&tableExists)
	require.NoError(t, err)
	assert.Equal(t, 1, tableExists)
}

func TestNewStore_MigrationsRunOnce(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.CatalogStore().Save(context.Background(), sampleEntries()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	err = reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	n, err := reopened.CatalogStore().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_Close(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.Close()
	assert.NoError(t, err)

	err = store.db.Ping()
	assert.Error(t, err)
}

// ==================== Catalog Store Tests ====================

func TestCatalogStore_SaveAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	catalog := store.CatalogStore()

	err := catalog.Save(ctx, sampleEntries())
	require.NoError(t, err)

	entries, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, sampleEntries(), entries)
}

func TestCatalogStore_List_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	entries, err := store.CatalogStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	n, err := store.CatalogStore().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogStore_Save_UpsertKeepsPosition(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	catalog := store.CatalogStore()

	require.NoError(t, catalog.Save(ctx, sampleEntries()))

	updated := domain.CatalogEntry{ID: "a1", Name: "Green Apple (1 kg)", Category: "Fruits", Price: 180, Rating: 4.6}
	extra := domain.CatalogEntry{ID: "g1", Name: "Ghee", Category: "Dairy", Price: 550}
	require.NoError(t, catalog.Save(ctx, []domain.CatalogEntry{extra, updated}))

	entries, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "a1", entries[0].ID)
	assert.Equal(t, "Green Apple (1 kg)", entries[0].Name)
	assert.InDelta(t, 180.0, entries[0].Price, 0.0001)
	assert.Nil(t, entries[0].Tags)
	assert.Equal(t, "g1", entries[3].ID)
}

func TestCatalogStore_Save_MissingIDRollsBack(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	catalog := store.CatalogStore()

	err := catalog.Save(ctx, []domain.CatalogEntry{
		{ID: "ok", Name: "Curd"},
		{Name: "Nameless"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	n, err := catalog.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogStore_NativeScriptRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	catalog := store.CatalogStore()

	entry := domain.CatalogEntry{ID: "h1", Name: "दूध", Tags: []string{"doodh", "milk"}, Price: 60}
	require.NoError(t, catalog.Save(ctx, []domain.CatalogEntry{entry}))

	entries, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestCatalogStore_ContextCancelled(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.CatalogStore().List(ctx)
	assert.Error(t, err)
}
