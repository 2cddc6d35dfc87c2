package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map keyed by dotted names such as
// "translation.online". Nothing is written to disk, so Save and Load only
// report success.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreWith(nil)
}

// NewConfigStoreWith returns a store preloaded with a copy of values.
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any, len(values))}
	maps.Copy(s.values, values)
	return s
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt truncates float values, so thresholds written as 2.0 read as 2.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	n, _ := number(val)
	return int(n)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	n, _ := number(val)
	return n
}

func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path reports ":memory:" in place of a file name.
func (s *ConfigStore) Path() string {
	return ":memory:"
}

// number widens the numeric types TOML decoding and callers produce.
func number(val any) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
