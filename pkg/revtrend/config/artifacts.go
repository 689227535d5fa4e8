package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-faster/jx"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/revtrend/pkg/revtrend/lexicon"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// LoadSynonyms loads a JSON synonym map (canonical label to synonyms).
// Groups keep document order, which decides which group wins when a phrase
// matches several.
//
//	{"service client": ["sav", "service clientèle"]}
func LoadSynonyms(path string) ([]lexicon.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var groups []lexicon.Group
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		g := lexicon.Group{Canonical: key}
		switch d.Next() {
		case jx.String:
			s, err := d.Str()
			if err != nil {
				return err
			}
			g.Terms = []string{s}
		case jx.Array:
			if err := d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return err
				}
				g.Terms = append(g.Terms, s)
				return nil
			}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("synonyms for %q must be a string or a list", key)
		}
		groups = append(groups, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse synonyms %s: %w", path, err)
	}
	return groups, nil
}

// LoadReplacements loads a JSON replacement map (old to new). Rules keep
// document order since they are applied one after another.
//
//	{"super ": "", "tres": "très"}
func LoadReplacements(path string) ([]lexicon.Replacement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rules []lexicon.Replacement
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		s, err := d.Str()
		if err != nil {
			return fmt.Errorf("replacement for %q: %w", key, err)
		}
		rules = append(rules, lexicon.Replacement{Old: key, New: s})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse replacements %s: %w", path, err)
	}
	return rules, nil
}

// LoadBlacklist loads a JSON list of blacklisted phrases. Entries are
// lowercased and trimmed; empty entries are dropped.
func LoadBlacklist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var terms []string
	d := jx.DecodeBytes(data)
	err = d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			terms = append(terms, s)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse blacklist %s: %w", path, err)
	}
	return terms, nil
}
