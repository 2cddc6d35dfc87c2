// Package catalogfile reads product catalogs from JSON or TOML files for
// import into the catalog store.
package catalogfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.CatalogFileReader = (*Reader)(nil)

// Reader decodes catalog files by extension.
//
// JSON files hold either an array of entries or an object with an "items"
// array. TOML files hold [[items]] tables.
type Reader struct{}

// NewReader creates a catalog file reader.
func NewReader() *Reader {
	return &Reader{}
}

// document is the wrapped form shared by both formats.
type document struct {
	Items []domain.CatalogEntry `json:"items" toml:"items"`
}

// Read decodes the file at path.
func (r *Reader) Read(ctx context.Context, path string) ([]domain.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog file %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSON(data)
	case ".toml":
		return decodeTOML(data)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q (use .json or .toml)", domain.ErrInvalidInput, ext)
	}
}

func decodeJSON(data []byte) ([]domain.CatalogEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var entries []domain.CatalogEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: decode catalog json: %w", domain.ErrInvalidInput, err)
		}
		return entries, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode catalog json: %w", domain.ErrInvalidInput, err)
	}
	return doc.Items, nil
}

func decodeTOML(data []byte) ([]domain.CatalogEntry, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode catalog toml: %w", domain.ErrInvalidInput, err)
	}
	return doc.Items, nil
}
