// Package lang holds the language-specific wording and heuristics of the
// pipeline: stopwords, tagger, report labels, fixed messages, prompt
// template and the truncation cue used to repair generated text.
package lang

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
	"github.com/cognicore/revtrend/pkg/revtrend/postag"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
	"github.com/cognicore/revtrend/pkg/revtrend/stoplist"
)

// Template placeholders.
const (
	PlaceholderClass   = "{class}"
	PlaceholderOthers  = "{others}"
	PlaceholderTrends  = "{trends}"
	PlaceholderContext = "{context}"
)

// TruncationCue reports whether the last word of a sentence looks cut off
// by the decoder. The word is lowercased with trailing punctuation removed.
type TruncationCue func(word string) bool

// Labels is the fixed report wording.
type Labels struct {
	Distribution string                      // header line
	Class        map[review.Sentiment]string // distribution row prefix, padded
	Count        string                      // "%d avis (%.2f%%)"
	Synthesis    string                      // "**Synthèse des avis %s :**"
	Trends       string                      // "**Tendances extraites (%s) :**"
}

// Profile is everything that changes with the review language.
type Profile struct {
	Code     string
	Snowball string // snowball stemmer language

	Plural   map[review.Sentiment]string // "positifs"
	Singular map[review.Sentiment]string // "positif"
	Others   map[review.Sentiment]string // the classes a summary must not mention

	Labels Labels

	NoTrend      string
	NoIdea       string
	NotGenerated string
	Fragmented   string

	System    string
	Template  string
	Forbidden []*regexp.Regexp
	Truncated TruncationCue

	// Lead phrasing connectives.
	And         string
	AsWellAs    string
	AmongOthers string

	stopwords func() []string
	tagger    func() *postag.Lexicon
}

// Get returns the builtin profile for a language code.
func Get(code string) (*Profile, error) {
	switch strings.ToLower(code) {
	case "", "fr", "french":
		return French(), nil
	case "en", "english":
		return English(), nil
	default:
		return nil, fmt.Errorf("language %q: %w", code, internalerr.ErrInvalidConfig)
	}
}

// Stoplist returns a fresh stopword manager for the language.
func (p *Profile) Stoplist() *stoplist.Manager {
	return stoplist.NewManager(p.stopwords())
}

// Tagger returns a fresh part-of-speech tagger for the language.
func (p *Profile) Tagger() *postag.Lexicon {
	return p.tagger()
}

// Lead phrases the trend list for the prompt. The wording depends on how
// many trends there are: one, two, three or four, five, six and more.
func (p *Profile) Lead(trends []string) string {
	switch n := len(trends); {
	case n == 0:
		return ""
	case n == 1:
		return trends[0]
	case n == 2:
		return trends[0] + " " + p.And + " " + trends[1]
	case n <= 4:
		return strings.Join(trends[:n-1], ", ") + " " + p.And + " " + trends[n-1]
	case n == 5:
		return strings.Join(trends[:4], ", ") + " " + p.AsWellAs + " " + trends[4]
	default:
		return strings.Join(trends[:4], ", ") + ", " + p.AmongOthers
	}
}

// Prompt fills the template for one sentiment class.
func (p *Profile) Prompt(template string, s review.Sentiment, lead, context string) string {
	if template == "" {
		template = p.Template
	}
	r := strings.NewReplacer(
		PlaceholderClass, p.Plural[s],
		PlaceholderOthers, p.Others[s],
		PlaceholderTrends, lead,
		PlaceholderContext, context,
	)
	return r.Replace(template)
}

// IsTruncated applies the truncation cue to the last word of a sentence.
func (p *Profile) IsTruncated(sentence string) bool {
	if p.Truncated == nil {
		return false
	}
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return false
	}
	last := strings.Trim(strings.ToLower(words[len(words)-1]), ",;!?'.-")
	return last != "" && p.Truncated(last)
}
