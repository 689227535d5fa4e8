package lexicon

import "strings"

// Replacement is one literal substitution.
type Replacement struct {
	Old string
	New string
}

// Rewriter applies literal substitutions in a fixed order.
type Rewriter struct {
	rules []Replacement
}

// NewRewriter keeps rules in the given order; rules with an empty Old are
// ignored.
func NewRewriter(rules []Replacement) *Rewriter {
	kept := make([]Replacement, 0, len(rules))
	for _, r := range rules {
		if r.Old == "" {
			continue
		}
		kept = append(kept, r)
	}
	return &Rewriter{rules: kept}
}

// Apply runs every rule over phrase. Later rules see the output of earlier
// ones.
func (w *Rewriter) Apply(phrase string) string {
	if w == nil {
		return phrase
	}
	for _, r := range w.rules {
		phrase = strings.ReplaceAll(phrase, r.Old, r.New)
	}
	return phrase
}

// Rules returns a copy of the rules.
func (w *Rewriter) Rules() []Replacement {
	if w == nil {
		return nil
	}
	out := make([]Replacement, len(w.rules))
	copy(out, w.rules)
	return out
}
