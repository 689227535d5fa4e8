package lang

import (
	"regexp"
	"strings"

	"github.com/cognicore/revtrend/pkg/revtrend/postag"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
	"github.com/cognicore/revtrend/pkg/revtrend/stoplist"
)

// French is the default profile.
func French() *Profile {
	return &Profile{
		Code:     "fr",
		Snowball: "french",
		Plural: map[review.Sentiment]string{
			review.Positive: "positifs",
			review.Negative: "négatifs",
			review.Neutral:  "neutres",
		},
		Singular: map[review.Sentiment]string{
			review.Positive: "positif",
			review.Negative: "négatif",
			review.Neutral:  "neutre",
		},
		Others: map[review.Sentiment]string{
			review.Positive: "négatifs ou neutres",
			review.Negative: "positifs ou neutres",
			review.Neutral:  "positifs ou négatifs",
		},
		Labels: Labels{
			Distribution: "Répartition des sentiments :",
			Class: map[review.Sentiment]string{
				review.Positive: "Positifs : ",
				review.Negative: "Négatifs : ",
				review.Neutral:  "Neutres  : ",
			},
			Count:     "%d avis (%.2f%%)",
			Synthesis: "**Synthèse des avis %s :**",
			Trends:    "**Tendances extraites (%s) :**",
		},
		NoTrend:      "Aucune tendance détectée",
		NoIdea:       "Aucune idée générale détectée.",
		NotGenerated: "Synthèse non générée.",
		Fragmented:   "Synthèse trop fragmentaire pour être retenue.",
		System:       "Tu résumes des avis clients en français, de façon factuelle.",
		Template: "Voici plusieurs extraits d'avis {class} sur : {trends}.\n" +
			"{context}\n\n" +
			"Rédige un unique paragraphe concis (3 à 5 phrases). " +
			"Ne parle pas des avis {others}. " +
			"Évite toute formule de politesse ou liste de points. " +
			"Ne commente pas ta façon d'écrire. " +
			"Évite de répéter les mêmes mots de liaison. " +
			"Reste descriptif et objectif.",
		Forbidden: []*regexp.Regexp{
			regexp.MustCompile(`(?is)si tu veux continuer.*`),
			regexp.MustCompile(`(?is)remplacez le paragraphe.*`),
		},
		// Final words ending in é, è or ai.
		Truncated: func(word string) bool {
			return strings.HasSuffix(word, "é") || strings.HasSuffix(word, "è") || strings.HasSuffix(word, "ai")
		},
		And:         "et",
		AsWellAs:    "ainsi que",
		AmongOthers: "entre autres",
		stopwords:   stoplist.French,
		tagger:      postag.French,
	}
}

var englishDangling = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "of": true,
	"to": true, "with": true, "for": true, "but": true, "very": true,
}

// English is the profile for English reviews.
func English() *Profile {
	return &Profile{
		Code:     "en",
		Snowball: "english",
		Plural: map[review.Sentiment]string{
			review.Positive: "positive",
			review.Negative: "negative",
			review.Neutral:  "neutral",
		},
		Singular: map[review.Sentiment]string{
			review.Positive: "positive",
			review.Negative: "negative",
			review.Neutral:  "neutral",
		},
		Others: map[review.Sentiment]string{
			review.Positive: "negative or neutral",
			review.Negative: "positive or neutral",
			review.Neutral:  "positive or negative",
		},
		Labels: Labels{
			Distribution: "Sentiment distribution:",
			Class: map[review.Sentiment]string{
				review.Positive: "Positive : ",
				review.Negative: "Negative : ",
				review.Neutral:  "Neutral  : ",
			},
			Count:     "%d reviews (%.2f%%)",
			Synthesis: "**Summary of %s reviews:**",
			Trends:    "**Extracted trends (%s):**",
		},
		NoTrend:      "No trend detected",
		NoIdea:       "No general idea detected.",
		NotGenerated: "Summary not generated.",
		Fragmented:   "Summary too fragmented to keep.",
		System:       "You summarize customer reviews factually.",
		Template: "Here are several excerpts of {class} reviews about: {trends}.\n" +
			"{context}\n\n" +
			"Write a single concise paragraph (3 to 5 sentences). " +
			"Do not mention {others} reviews. " +
			"Avoid politeness formulas and bullet lists. " +
			"Do not comment on how you write. " +
			"Avoid repeating the same connectives. " +
			"Stay descriptive and objective.",
		Forbidden: []*regexp.Regexp{
			regexp.MustCompile(`(?is)if you want me to continue.*`),
			regexp.MustCompile(`(?is)replace the paragraph.*`),
		},
		Truncated: func(word string) bool {
			return englishDangling[word]
		},
		And:         "and",
		AsWellAs:    "as well as",
		AmongOthers: "among others",
		stopwords:   stoplist.English,
		tagger:      postag.English,
	}
}
