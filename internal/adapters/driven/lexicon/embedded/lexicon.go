// Package embedded provides the lexicon compiled into the binary.
package embedded

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

//go:embed default.toml
var defaultLexicon []byte

// Ensure Source implements the interface.
var _ driven.LexiconSource = (*Source)(nil)

// Source decodes a TOML lexicon.
type Source struct {
	data []byte
}

// New returns a source for the built-in lexicon.
func New() *Source {
	return &Source{data: defaultLexicon}
}

// Default returns a copy of the built-in lexicon TOML.
func Default() []byte {
	return append([]byte(nil), defaultLexicon...)
}

// FromBytes returns a source for a caller-supplied TOML lexicon.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

// Load parses the lexicon. Unknown keys are rejected.
func (s *Source) Load() (*domain.Lexicon, error) {
	var lex domain.Lexicon
	dec := toml.NewDecoder(bytes.NewReader(s.data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lex); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if lex.Dictionary == nil {
		lex.Dictionary = map[string]string{}
	}
	if lex.Synonyms == nil {
		lex.Synonyms = map[string]string{}
	}
	return &lex, nil
}

// MustLoad loads the built-in lexicon and panics on error.
// The embedded file is covered by tests, so failure is a build defect.
func MustLoad() *domain.Lexicon {
	lex, err := New().Load()
	if err != nil {
		panic(err)
	}
	return lex
}
