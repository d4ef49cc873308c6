// Package settings is the flat JSON key/value store backing user
// preferences. All persistence is best-effort: a missing or corrupt file is
// never fatal, and failed writes leave the in-memory state as the source of
// truth for the running process.
package settings

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Well-known settings keys.
const (
	KeyPinnedMetrics           = "pinnedMetrics"
	KeyApplyMarkup             = "applyMarkup"
	KeyApplyAdditionalExpenses = "applyAdditionalExpenses"
	KeyChatLogPath             = "chatLogPath"
	KeyWeaponUsesPerMinute     = "weaponUsesPerMinute"
	KeyWeaponCostPerUse        = "weaponCostPerUse"
)

// Store is a mutex-guarded key/value cache persisted as a single JSON file.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]any
	loaded bool
}

func NewStore(path string) *Store {
	return &Store{path: path, values: make(map[string]any)}
}

// DefaultPath returns the settings file location in the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "entropia-hud", "settings.json")
}

// Load reads the settings file into the cache and returns a copy. A missing
// file yields empty defaults; a corrupt file is logged and treated as empty.
func (s *Store) Load() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return copyValues(s.values)
}

func (s *Store) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to read settings file", "path", s.path, "error", err)
		}
		return
	}

	parsed := make(map[string]any)
	if err := json.Unmarshal(data, &parsed); err != nil {
		slog.Warn("settings file is corrupt, using empty defaults", "path", s.path, "error", err)
		return
	}
	s.values = parsed
}

// Save merges partial into the cached settings and rewrites the file.
// Write failures are logged and swallowed; the merge always survives in
// memory so the running process stays consistent.
func (s *Store) Save(partial map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	for k, v := range partial {
		s.values[k] = v
	}
	s.writeLocked()
}

func (s *Store) writeLocked() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		slog.Warn("failed to encode settings", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		slog.Warn("failed to create settings directory", "path", s.path, "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		slog.Warn("failed to write settings file", "path", s.path, "error", err)
	}
}

// Get returns the value stored under key, loading the file on first access.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	v, ok := s.values[key]
	return v, ok
}

// GetAll returns a defensive copy of the current settings.
func (s *Store) GetAll() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return copyValues(s.values)
}

// Clear removes the persisted file (best-effort) and resets the cache.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.values = make(map[string]any)
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove settings file", "path", s.path, "error", err)
	}
}

// GetBool reads a boolean setting, falling back when absent or mistyped.
func (s *Store) GetBool(key string, fallback bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// GetString reads a string setting, falling back when absent or mistyped.
func (s *Store) GetString(key string, fallback string) string {
	v, ok := s.Get(key)
	if !ok {
		return fallback
	}
	str, ok := v.(string)
	if !ok {
		return fallback
	}
	return str
}

// GetFloat reads a numeric setting. JSON numbers decode as float64; other
// types fall back.
func (s *Store) GetFloat(key string, fallback float64) float64 {
	v, ok := s.Get(key)
	if !ok {
		return fallback
	}
	f, ok := v.(float64)
	if !ok {
		return fallback
	}
	return f
}

// GetStringSlice reads a list setting. JSON arrays decode as []any; entries
// that are not strings are dropped.
func (s *Store) GetStringSlice(key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			return append([]string(nil), typed...)
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
