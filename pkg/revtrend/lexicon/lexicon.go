package lexicon

import "strings"

// Lexicon maps groups of synonym terms to a canonical label.
//
// Groups keep the order they were added in: when a phrase contains terms
// from several groups, the earliest group wins.
//
//	"livraison": ["colis", "expédition", "livreur"]
//	"service client": ["sav", "conseiller", "hotline"]
type Lexicon struct {
	order []string // canonical labels in insertion order

	// canonical -> synonym terms (lowercase, canonical not included)
	synonyms map[string][]string

	// term -> canonical, for exact token lookups
	reverseIndex map[string]string
}

// Group is one canonical label with its synonym terms.
type Group struct {
	Canonical string
	Terms     []string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		synonyms:     make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// FromGroups builds a lexicon from ordered groups.
func FromGroups(groups []Group) *Lexicon {
	lex := New()
	for _, g := range groups {
		lex.AddSynonymGroup(g.Canonical, g.Terms)
	}
	return lex
}

// AddSynonymGroup adds a canonical label and its synonym terms.
// The label keeps its original casing, terms are lowercased.
// If the label already exists, its old terms are replaced and it keeps its
// original position.
func (l *Lexicon) AddSynonymGroup(canonical string, terms []string) {
	if canonical == "" {
		return
	}

	if oldTerms, exists := l.synonyms[canonical]; exists {
		for _, t := range oldTerms {
			delete(l.reverseIndex, t)
		}
	} else {
		l.order = append(l.order, canonical)
	}

	seen := make(map[string]bool, len(terms))
	normalized := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		normalized = append(normalized, t)
	}

	l.synonyms[canonical] = normalized
	for _, t := range normalized {
		if _, taken := l.reverseIndex[t]; !taken {
			l.reverseIndex[t] = canonical
		}
	}
}

// Canonicalize replaces the whole phrase with the label of the first group
// that has a term occurring in the lowercased phrase. Phrases without a
// match are returned unchanged.
func (l *Lexicon) Canonicalize(phrase string) (string, bool) {
	lower := strings.ToLower(phrase)
	for _, canonical := range l.order {
		for _, term := range l.synonyms[canonical] {
			if strings.Contains(lower, term) {
				return canonical, true
			}
		}
	}
	return phrase, false
}

// Normalize returns the canonical label of a single term, or the term itself.
func (l *Lexicon) Normalize(term string) string {
	if canonical, ok := l.reverseIndex[strings.ToLower(term)]; ok {
		return canonical
	}
	return term
}

// Synonyms returns the terms of a canonical label.
func (l *Lexicon) Synonyms(canonical string) []string {
	terms := l.synonyms[canonical]
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// Groups returns all groups in insertion order.
func (l *Lexicon) Groups() []Group {
	out := make([]Group, 0, len(l.order))
	for _, c := range l.order {
		out = append(out, Group{Canonical: c, Terms: l.Synonyms(c)})
	}
	return out
}

// Len returns the number of groups.
func (l *Lexicon) Len() int {
	return len(l.order)
}
