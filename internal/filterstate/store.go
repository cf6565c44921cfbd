package filterstate

import "sync"

// Selection is a saved set of view filters, keyed by a caller-chosen
// identifier. Dates stay textual here; parsing belongs to the views
// that consume them.
type Selection struct {
	DateStart  string   `json:"dateStart"`
	DateEnd    string   `json:"dateEnd"`
	Accounts   []string `json:"accounts"`
	Categories []string `json:"categories"`
	Type       string   `json:"type"`
	Project    string   `json:"project"`
}

// Store keeps filter selections in memory. It deliberately does not
// persist anywhere: the spreadsheet stays the only durable state this
// system has.
type Store struct {
	mu       sync.RWMutex
	defaults Selection
	byKey    map[string]Selection
}

// NewStore creates a store with the given defaults.
func NewStore(defaults Selection) *Store {
	return &Store{
		defaults: defaults,
		byKey:    map[string]Selection{},
	}
}

// Load returns the selection saved under key, merged with the
// defaults: any field the saved entry left empty comes from the
// defaults. An unknown key yields the defaults unchanged.
func (s *Store) Load(key string) Selection {
	s.mu.RLock()
	saved, ok := s.byKey[key]
	s.mu.RUnlock()
	if !ok {
		return s.defaults
	}
	return merge(saved, s.defaults)
}

// Save stores a selection under key, replacing any previous one.
func (s *Store) Save(key string, sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[key] = sel
}

// Clear removes the saved selection so that Load falls back to the
// defaults.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byKey, key)
}

// Defaults returns the configured default selection.
func (s *Store) Defaults() Selection {
	return s.defaults
}

func merge(saved, defaults Selection) Selection {
	out := saved
	if out.DateStart == "" {
		out.DateStart = defaults.DateStart
	}
	if out.DateEnd == "" {
		out.DateEnd = defaults.DateEnd
	}
	if len(out.Accounts) == 0 {
		out.Accounts = defaults.Accounts
	}
	if len(out.Categories) == 0 {
		out.Categories = defaults.Categories
	}
	if out.Type == "" {
		out.Type = defaults.Type
	}
	if out.Project == "" {
		out.Project = defaults.Project
	}
	return out
}
