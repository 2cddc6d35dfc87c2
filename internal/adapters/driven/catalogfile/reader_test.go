package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReader_JSONArray(t *testing.T) {
	path := writeFile(t, "catalog.json", `[
		{"id": "a1", "name": "Green Apple", "category": "Fruits", "tags": ["seb"], "price": 150, "rating": 4.5},
		{"name": "Potato", "price": 30}
	]`)

	entries, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, domain.CatalogEntry{
		ID: "a1", Name: "Green Apple", Category: "Fruits", Tags: []string{"seb"}, Price: 150, Rating: 4.5,
	}, entries[0])
	assert.Empty(t, entries[1].ID)
	assert.Equal(t, "Potato", entries[1].Name)
}

func TestReader_JSONObject(t *testing.T) {
	path := writeFile(t, "catalog.JSON", `{"items": [{"id": "d1", "name": "Paneer", "brand": "Amul"}]}`)

	entries, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Amul", entries[0].Brand)
}

func TestReader_JSONEmpty(t *testing.T) {
	path := writeFile(t, "empty.json", "  \n")

	entries, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReader_TOML(t *testing.T) {
	path := writeFile(t, "catalog.toml", `
[[items]]
id = "a1"
name = "Green Apple"
category = "Fruits"
tags = ["seb", "fruit"]
price = 150.0
rating = 4.5

[[items]]
name = "दूध"
price = 60.0
`)

	entries, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"seb", "fruit"}, entries[0].Tags)
	assert.Equal(t, "दूध", entries[1].Name)
	assert.InDelta(t, 60.0, entries[1].Price, 0.0001)
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "bad json", file: "bad.json", content: `[{"name": }]`, wantErr: domain.ErrInvalidInput},
		{name: "wrong json shape", file: "shape.json", content: `{"items": "milk"}`, wantErr: domain.ErrInvalidInput},
		{name: "unknown toml key", file: "bad.toml", content: "[[items]]\nname = \"Milk\"\ncolour = \"white\"\n", wantErr: domain.ErrInvalidInput},
		{name: "unsupported extension", file: "catalog.csv", content: "id,name\n", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := NewReader().Read(context.Background(), path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader().Read(context.Background(), filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader().Read(ctx, "catalog.json")
	assert.ErrorIs(t, err, context.Canceled)
}
