package stoplist

import (
	"sort"
	"strings"
)

// Manager holds the stopword set used by tokenization and the extractors
type Manager struct {
	stops map[string]Source
}

// Source records where a stopword came from
type Source string

const (
	Builtin Source = "builtin"
	File    Source = "file"
	Manual  Source = "manual"
)

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]Source, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s, Builtin)
	}
	return m
}

// ForLanguage returns a manager seeded with the builtin list for lang.
// Unknown languages start empty.
func ForLanguage(lang string) *Manager {
	switch strings.ToLower(lang) {
	case "fr", "french":
		return NewManager(French())
	case "en", "english":
		return NewManager(English())
	default:
		return NewManager(nil)
	}
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string, src Source) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	m.stops[token] = src
}

// Merge adds every token from terms with the given source
func (m *Manager) Merge(terms []string, src Source) {
	for _, t := range terms {
		m.Add(t, src)
	}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// SourceOf reports where a stopword was defined
func (m *Manager) SourceOf(token string) (Source, bool) {
	src, ok := m.stops[strings.ToLower(token)]
	return src, ok
}

// All returns all stopwords, sorted
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of stopwords
func (m *Manager) Len() int {
	return len(m.stops)
}
