package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigFileName is the settings file inside the config directory.
const ConfigFileName = "config.toml"

const configHeader = "# cartvoice settings. Change with 'cartvoice settings'.\n\n"

// ConfigStore keeps settings in a TOML file. Dotted keys such as
// "translation.online" are read from and written to nested tables, so
// the file stays hand-editable:
//
//	[translation]
//	online = true
//	base_url = "http://localhost:5000/translate"
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	data map[string]any
}

// NewConfigStore opens <configDir>/config.toml, creating the directory if
// needed. An empty configDir uses DefaultDir. A missing file is an empty
// configuration; a file that does not parse is an error.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, ConfigFileName),
		data: make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultDir returns ~/.cartvoice.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cartvoice"), nil
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt reads TOML integers (int64) and values set in-process (int).
// Floats are not truncated: "timeout_ms = 1.5" is a mistake, not 1.
func (s *ConfigStore) GetInt(key string) int {
	switch v, _ := s.Get(key); n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

// GetFloat also accepts integers, so "rate_per_second = 2" reads as 2.0.
func (s *ConfigStore) GetFloat(key string) float64 {
	switch v, _ := s.Get(key); n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set stores value under key and rewrites the file. On a write error the
// previous value is restored.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[key]
	s.data[key] = value
	if err := s.write(); err != nil {
		if existed {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// Save rewrites the file from the in-memory values.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write replaces the file through a temp file and rename. Caller holds mu.
func (s *ConfigStore) write() error {
	body, err := toml.Marshal(nestKeys(s.data))
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.WriteString(configHeader); err == nil {
		_, err = tmp.Write(body)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o600)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), s.path)
	}
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Load replaces the in-memory values with the file contents.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.data = make(map[string]any)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	var tables map[string]any
	if err := toml.Unmarshal(raw, &tables); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}

	s.data = make(map[string]any)
	flattenInto(s.data, tables, "")
	return nil
}

// Path returns the settings file path.
func (s *ConfigStore) Path() string {
	return s.path
}

// flattenInto copies nested tables into dst under dotted keys.
func flattenInto(dst, tables map[string]any, prefix string) {
	for k, v := range tables {
		if prefix != "" {
			k = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flattenInto(dst, sub, k)
			continue
		}
		dst[k] = v
	}
}

// nestKeys is the inverse of flattenInto. Keys are visited in sorted
// order, so a key that is both a value and a table prefix keeps the value.
func nestKeys(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := make(map[string]any)
next:
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part]
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			table, ok := child.(map[string]any)
			if !ok {
				continue next
			}
			node = table
		}
		node[parts[len(parts)-1]] = flat[key]
	}
	return root
}
