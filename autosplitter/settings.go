package autosplitter

import "sync"

// Settings are the user's choices about what the autosplitter may do on its
// own.
type Settings struct {
	// AllowStart lets the autosplitter start the timer.
	AllowStart bool `json:"allow_start"`

	// AllowSplit lets the autosplitter split. Completing a game splits
	// regardless.
	AllowSplit bool `json:"allow_split"`

	// AllowReset lets the autosplitter reset the timer. Automatic resets are
	// disabled after the first split even if splitting is not allowed.
	AllowReset bool `json:"allow_reset"`
}

// DefaultSettings allows everything.
func DefaultSettings() Settings {
	return Settings{
		AllowStart: true,
		AllowSplit: true,
		AllowReset: true,
	}
}

// A SettingsSource provides the current settings. The coordinator reads it
// once per tick.
type SettingsSource interface {
	Settings() Settings
}

// SettingsStore holds settings that may be changed from another goroutine,
// such as the monitor's HTTP handlers.
type SettingsStore struct {
	mu       sync.RWMutex
	settings Settings
}

// NewSettingsStore creates a store holding s.
func NewSettingsStore(s Settings) *SettingsStore {
	return &SettingsStore{settings: s}
}

// Settings implements SettingsSource.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// Set replaces the settings.
func (s *SettingsStore) Set(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
}
