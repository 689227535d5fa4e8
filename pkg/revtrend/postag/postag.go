// Package postag assigns coarse part-of-speech tags to phrase tokens.
package postag

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// POS is a universal part-of-speech tag.
type POS string

const (
	Noun  POS = "NOUN"
	Verb  POS = "VERB"
	Propn POS = "PROPN"
	Adj   POS = "ADJ"
	Adv   POS = "ADV"
	Det   POS = "DET"
	Adp   POS = "ADP"
	Pron  POS = "PRON"
	Conj  POS = "CONJ"
	Aux   POS = "AUX"
	Num   POS = "NUM"
	Part  POS = "PART"
)

// Substantive reports whether the tag carries topical content.
func (p POS) Substantive() bool {
	return p == Noun || p == Verb || p == Propn
}

// Tagger tags the tokens of a phrase.
type Tagger interface {
	Tag(tokens []string) []POS
}

// HasSubstantive reports whether any token of the phrase is a noun, verb or
// proper noun.
func HasSubstantive(t Tagger, tokens []string) bool {
	for _, p := range t.Tag(tokens) {
		if p.Substantive() {
			return true
		}
	}
	return false
}

// Lexicon is a dictionary tagger. Words found in the dictionary get their
// listed tag; unknown words are tagged with suffix rules, falling back to
// NOUN, which is the open class most review vocabulary belongs to.
type Lexicon struct {
	words    map[string]POS
	suffixes []suffixRule
}

type suffixRule struct {
	suffix string
	pos    POS
}

// NewLexicon builds a tagger from a tag -> words dictionary.
func NewLexicon(dict map[POS][]string) *Lexicon {
	l := &Lexicon{words: make(map[string]POS)}
	l.Merge(dict)
	return l
}

// Merge adds dictionary entries; later entries override earlier ones.
func (l *Lexicon) Merge(dict map[POS][]string) {
	for pos, words := range dict {
		for _, w := range words {
			l.words[strings.ToLower(w)] = pos
		}
	}
}

// AddSuffix registers a suffix rule for unknown words. Rules are tried in
// the order they were added.
func (l *Lexicon) AddSuffix(suffix string, pos POS) {
	l.suffixes = append(l.suffixes, suffixRule{suffix: strings.ToLower(suffix), pos: pos})
}

// Tag implements Tagger.
func (l *Lexicon) Tag(tokens []string) []POS {
	out := make([]POS, len(tokens))
	for i, tok := range tokens {
		out[i] = l.tagOne(tok)
	}
	return out
}

func (l *Lexicon) tagOne(tok string) POS {
	if tok == "" {
		return Part
	}
	if isNumber(tok) {
		return Num
	}
	lower := strings.ToLower(tok)
	if pos, ok := l.words[lower]; ok {
		return pos
	}
	if r := []rune(tok); unicode.IsUpper(r[0]) {
		return Propn
	}
	for _, rule := range l.suffixes {
		if len(lower) > len(rule.suffix)+2 && strings.HasSuffix(lower, rule.suffix) {
			return rule.pos
		}
	}
	return Noun
}

func isNumber(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ForLanguage returns the builtin tagger for lang, or an error for an
// unsupported language.
func ForLanguage(lang string) (*Lexicon, error) {
	switch strings.ToLower(lang) {
	case "fr", "french":
		return French(), nil
	case "en", "english":
		return English(), nil
	default:
		return nil, fmt.Errorf("postag: unsupported language %q", lang)
	}
}

// LoadYAML extends base with a YAML dictionary:
//
//	words:
//	  ADJ: [rapide, lent]
//	  VERB: [livrer]
//	suffixes:
//	  - {suffix: ment, pos: ADV}
func LoadYAML(path string, base *Lexicon) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg struct {
		Words    map[string][]string `yaml:"words"`
		Suffixes []struct {
			Suffix string `yaml:"suffix"`
			POS    string `yaml:"pos"`
		} `yaml:"suffixes"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if base == nil {
		base = NewLexicon(nil)
	}
	dict := make(map[POS][]string, len(cfg.Words))
	for tag, words := range cfg.Words {
		dict[POS(strings.ToUpper(tag))] = words
	}
	base.Merge(dict)
	for _, s := range cfg.Suffixes {
		base.AddSuffix(s.Suffix, POS(strings.ToUpper(s.POS)))
	}
	return base, nil
}
