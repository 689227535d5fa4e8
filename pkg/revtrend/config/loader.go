package config

import (
	"fmt"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
	"github.com/cognicore/revtrend/pkg/revtrend/lang"
	"github.com/cognicore/revtrend/pkg/revtrend/lexicon"
	"github.com/cognicore/revtrend/pkg/revtrend/postag"
	"github.com/cognicore/revtrend/pkg/revtrend/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	Language         string
	SynonymsPath     string
	ReplacementsPath string
	BlacklistPath    string
	StoplistPath     string
	POSLexiconPath   string
}

// NewLoader builds a loader from the run settings.
func NewLoader(s Settings) *Loader {
	return &Loader{
		Language:         s.Language,
		SynonymsPath:     s.Artifacts.Synonyms,
		ReplacementsPath: s.Artifacts.Replacements,
		BlacklistPath:    s.Artifacts.Blacklist,
		StoplistPath:     s.Artifacts.Stoplist,
		POSLexiconPath:   s.Artifacts.POSLexicon,
	}
}

// Components holds all loaded configuration components. They are read-only
// once loaded.
type Components struct {
	Profile   *lang.Profile
	Stoplist  *stoplist.Manager
	Tokenizer *ingest.Tokenizer
	Lexicon   *lexicon.Lexicon
	Rewriter  *lexicon.Rewriter
	Blacklist []string
	Tagger    *postag.Lexicon
}

// Load reads all configuration files and returns initialized components.
// Synonyms, replacements and blacklist are required. The stoplist and POS
// lexicon are optional and extend the language builtins. A configured path
// that cannot be read or parsed is fatal.
func (l *Loader) Load() (*Components, error) {
	profile, err := lang.Get(l.Language)
	if err != nil {
		return nil, err
	}
	if err := l.requireArtifacts(); err != nil {
		return nil, err
	}
	comp := &Components{Profile: profile}

	// Load stoplist
	comp.Stoplist = profile.Stoplist()
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, invalid("load stoplist", err)
		}
		comp.Stoplist.Merge(sl.Terms, stoplist.File)
	}
	comp.Tokenizer = ingest.NewTokenizer(comp.Stoplist)

	// Load synonyms
	groups, err := LoadSynonyms(l.SynonymsPath)
	if err != nil {
		return nil, invalid("load synonyms", err)
	}
	comp.Lexicon = lexicon.FromGroups(groups)

	// Load replacements
	rules, err := LoadReplacements(l.ReplacementsPath)
	if err != nil {
		return nil, invalid("load replacements", err)
	}
	comp.Rewriter = lexicon.NewRewriter(rules)

	// Load blacklist
	comp.Blacklist, err = LoadBlacklist(l.BlacklistPath)
	if err != nil {
		return nil, invalid("load blacklist", err)
	}

	// Load part-of-speech lexicon
	comp.Tagger = profile.Tagger()
	if l.POSLexiconPath != "" {
		comp.Tagger, err = postag.LoadYAML(l.POSLexiconPath, comp.Tagger)
		if err != nil {
			return nil, invalid("load pos lexicon", err)
		}
	}

	return comp, nil
}

func (l *Loader) requireArtifacts() error {
	for _, a := range []struct{ name, path string }{
		{"synonyms", l.SynonymsPath},
		{"replacements", l.ReplacementsPath},
		{"blacklist", l.BlacklistPath},
	} {
		if a.path == "" {
			return fmt.Errorf("%s file not configured: %w", a.name, internalerr.ErrInvalidConfig)
		}
	}
	return nil
}

func invalid(what string, err error) error {
	return fmt.Errorf("%s: %v: %w", what, err, internalerr.ErrInvalidConfig)
}
