package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/cartvoice/internal/adapters/driven/lexicon/embedded"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Ensure LexiconStore implements the interface.
var _ driven.LexiconSource = (*LexiconStore)(nil)

// lexiconFile is the user-editable lexicon within the config directory.
const lexiconFile = "lexicon.toml"

// LexiconStore loads the lexicon from a user-editable TOML file.
// The file is seeded with the built-in lexicon on first Load. If the
// directory cannot be written or the file is missing, the built-in
// lexicon is used. A file that exists but does not decode is an error.
type LexiconStore struct {
	mu      sync.Mutex
	dir     string
	cached  *domain.Lexicon
	once    sync.Once
	initErr error
}

// NewLexiconStore creates a lexicon store.
// If dir is empty, defaults to ~/.cartvoice.
// No I/O happens until the first Load.
func NewLexiconStore(dir string) (*LexiconStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = d
	}
	return &LexiconStore{dir: dir}, nil
}

// Load returns the lexicon, reading the file once and caching the result.
func (s *LexiconStore) Load() (*domain.Lexicon, error) {
	s.once.Do(s.initialise)
	if s.initErr != nil {
		logger.Warn("Lexicon directory unavailable, using built-in lexicon: %v", s.initErr)
		return embedded.New().Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		logger.Warn("Lexicon file unreadable, using built-in lexicon: %v", err)
		return embedded.New().Load()
	}

	lex, err := embedded.FromBytes(data).Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(), err)
	}

	logger.Debug("Lexicon loaded from %s: %d dictionary entries", s.Path(), len(lex.Dictionary))
	s.cached = lex
	return lex, nil
}

// Reload clears the cache so the next Load reads the file again.
func (s *LexiconStore) Reload() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Path returns the lexicon file path.
func (s *LexiconStore) Path() string {
	return filepath.Join(s.dir, lexiconFile)
}

// initialise creates the directory and writes the built-in lexicon if no
// file exists. Called once via sync.Once on first Load.
func (s *LexiconStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create lexicon directory: %w", err)
		return
	}

	path := s.Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, embedded.Default(), 0600); err != nil {
			s.initErr = fmt.Errorf("write default lexicon: %w", err)
		}
	}
}
