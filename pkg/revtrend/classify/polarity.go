package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
)

// DefaultPolarityThreshold is the dead band around zero labelled neutral.
const DefaultPolarityThreshold = 0.1

// negationReach is how many following words a negation flips.
const negationReach = 3

// Polarity is an offline lexicon classifier. The score of a text is the
// mean polarity of its opinion words, each scaled by a preceding
// intensifier and flipped by a negation within reach.
type Polarity struct {
	words        map[string]float64
	intensifiers map[string]float64
	negations    map[string]bool
	threshold    float64
	tokenizer    *ingest.Tokenizer
}

// NewPolarity returns the builtin lexicon classifier for a language.
func NewPolarity(lang string) (*Polarity, error) {
	var lex polarityLexicon
	switch strings.ToLower(lang) {
	case "", "fr", "french":
		lex = frenchPolarity
	case "en", "english":
		lex = englishPolarity
	default:
		return nil, fmt.Errorf("polarity: language %q: %w", lang, internalerr.ErrInvalidConfig)
	}
	return &Polarity{
		words:        lex.words,
		intensifiers: lex.intensifiers,
		negations:    lex.negations,
		threshold:    DefaultPolarityThreshold,
		tokenizer:    ingest.NewTokenizer(nil),
	}, nil
}

// Score returns the polarity of text in [-1, 1]; 0 when no opinion word is
// found.
func (p *Polarity) Score(text string) float64 {
	words := p.tokenizer.Words(text)
	var sum float64
	var n int
	negatedUntil := -1
	for i, w := range words {
		if p.negations[w] {
			negatedUntil = i + negationReach
			continue
		}
		v, ok := p.words[w]
		if !ok {
			continue
		}
		if i > 0 {
			if k, ok := p.intensifiers[words[i-1]]; ok {
				v *= k
			}
		}
		if i <= negatedUntil {
			v = -v * 0.5
		}
		sum += clamp(v)
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

// Classify implements Classifier.
func (p *Polarity) Classify(ctx context.Context, text string) (review.Sentiment, error) {
	return FromPolarity(p.Score(text), p.threshold), nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

type polarityLexicon struct {
	words        map[string]float64
	intensifiers map[string]float64
	negations    map[string]bool
}

var frenchPolarity = polarityLexicon{
	words: map[string]float64{
		"bon": 0.7, "bonne": 0.7, "bons": 0.7, "bonnes": 0.7, "excellent": 1, "excellente": 1,
		"parfait": 1, "parfaite": 1, "super": 0.8, "génial": 0.9, "géniale": 0.9, "top": 0.8,
		"agréable": 0.6, "sympa": 0.6, "sympathique": 0.6, "délicieux": 0.9, "délicieuse": 0.9,
		"savoureux": 0.8, "savoureuse": 0.8, "rapide": 0.4, "rapides": 0.4, "efficace": 0.6,
		"aimable": 0.6, "accueillant": 0.6, "accueillante": 0.6, "chaleureux": 0.7,
		"chaleureuse": 0.7, "recommande": 0.8, "satisfait": 0.6, "satisfaite": 0.6,
		"merci": 0.4, "bravo": 0.8, "propre": 0.4, "professionnel": 0.5, "impeccable": 0.9,
		"mauvais": -0.7, "mauvaise": -0.7, "nul": -0.9, "nulle": -0.9, "horrible": -1,
		"catastrophique": -1, "lent": -0.5, "lente": -0.5, "cher": -0.4, "chère": -0.4,
		"déçu": -0.7, "déçue": -0.7, "décevant": -0.7, "décevante": -0.7, "sale": -0.7,
		"froid": -0.3, "froide": -0.3, "désagréable": -0.7, "impoli": -0.8, "impolie": -0.8,
		"arnaque": -1, "retard": -0.5, "attente": -0.3, "fade": -0.6, "médiocre": -0.8,
		"inadmissible": -1,
	},
	intensifiers: map[string]float64{
		"très": 1.3, "trop": 1.2, "vraiment": 1.3, "super": 1.4, "extrêmement": 1.5,
		"tellement": 1.4, "assez": 0.8, "peu": 0.5,
	},
	negations: map[string]bool{
		"pas": true, "ne": true, "n": true, "aucun": true, "aucune": true, "sans": true, "ni": true,
		"jamais": true,
	},
}

var englishPolarity = polarityLexicon{
	words: map[string]float64{
		"good": 0.7, "great": 0.8, "excellent": 1, "perfect": 1, "amazing": 0.9, "nice": 0.6,
		"friendly": 0.6, "delicious": 0.9, "tasty": 0.8, "fast": 0.4, "quick": 0.4,
		"efficient": 0.6, "recommend": 0.8, "clean": 0.4, "helpful": 0.6, "pleasant": 0.6,
		"bad": -0.7, "terrible": -1, "awful": -1, "horrible": -1, "slow": -0.5,
		"expensive": -0.4, "rude": -0.8, "dirty": -0.7, "disappointed": -0.7,
		"disappointing": -0.7, "cold": -0.3, "bland": -0.6, "scam": -1, "late": -0.5,
	},
	intensifiers: map[string]float64{
		"very": 1.3, "really": 1.3, "extremely": 1.5, "so": 1.2, "too": 1.2,
		"quite": 0.9, "slightly": 0.5,
	},
	negations: map[string]bool{
		"not": true, "no": true, "never": true, "without": true, "nor": true, "t": true,
	},
}
