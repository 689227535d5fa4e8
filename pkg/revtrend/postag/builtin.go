package postag

// French returns a tagger covering French closed-class words and the most
// frequent review adjectives and adverbs.
func French() *Lexicon {
	l := NewLexicon(map[POS][]string{
		Det: {"le", "la", "les", "l", "un", "une", "des", "du", "au", "aux", "ce", "cet", "cette",
			"ces", "mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses", "notre", "nos",
			"votre", "vos", "leur", "leurs", "quelques", "chaque", "aucun", "aucune", "tout",
			"toute", "tous", "toutes", "d"},
		Adp: {"à", "a", "de", "dans", "en", "par", "pour", "sur", "sous", "avec", "sans", "chez",
			"entre", "vers", "depuis", "pendant", "avant", "après", "contre", "malgré", "selon"},
		Pron: {"je", "j", "tu", "il", "elle", "on", "nous", "vous", "ils", "elles", "me", "m", "te",
			"t", "se", "s", "lui", "y", "moi", "toi", "eux", "qui", "que", "qu", "quoi", "dont",
			"où", "ça", "cela", "ceci", "c", "rien", "personne"},
		Conj: {"et", "ou", "mais", "donc", "or", "ni", "car", "comme", "si", "quand", "lorsque",
			"puisque"},
		Aux: {"est", "suis", "es", "sommes", "êtes", "sont", "était", "étaient", "été", "être",
			"ai", "as", "avons", "avez", "ont", "avait", "avaient", "eu", "avoir", "sera", "seront"},
		Part: {"ne", "n", "pas", "plus", "jamais"},
		Adv: {"très", "trop", "bien", "mal", "peu", "beaucoup", "assez", "vraiment", "toujours",
			"encore", "déjà", "aussi", "ici", "là", "vite", "rapidement", "super", "hyper",
			"tellement", "vraiment", "enfin", "même"},
		Adj: {"bon", "bonne", "bons", "bonnes", "mauvais", "mauvaise", "rapide", "rapides", "lent",
			"lente", "lents", "cher", "chère", "chers", "parfait", "parfaite", "excellent",
			"excellente", "agréable", "sympathique", "sympa", "efficace", "efficaces", "grand",
			"grande", "petit", "petite", "nouveau", "nouvelle", "correct", "correcte", "nul",
			"nulle", "froid", "froide", "chaud", "chaude", "propre", "sale", "simple", "facile",
			"professionnel", "professionnelle", "satisfait", "satisfaite", "déçu", "déçue"},
		Num: {"un", "deux", "trois", "quatre", "cinq", "dix", "cent", "mille"},
	})
	// "un" is more often an article than a number.
	l.Merge(map[POS][]string{Det: {"un"}})

	l.AddSuffix("ment", Adv)
	l.AddSuffix("er", Verb)
	l.AddSuffix("ir", Verb)
	l.AddSuffix("é", Verb)
	l.AddSuffix("ée", Verb)
	l.AddSuffix("és", Verb)
	l.AddSuffix("ées", Verb)
	l.AddSuffix("ait", Verb)
	l.AddSuffix("aient", Verb)
	l.AddSuffix("eux", Adj)
	l.AddSuffix("euse", Adj)
	l.AddSuffix("able", Adj)
	l.AddSuffix("ible", Adj)
	return l
}

// English returns a tagger covering English closed-class words.
func English() *Lexicon {
	l := NewLexicon(map[POS][]string{
		Det: {"the", "a", "an", "this", "that", "these", "those", "my", "your", "his", "her",
			"its", "our", "their", "some", "any", "each", "every", "no", "all"},
		Adp: {"in", "on", "at", "by", "for", "with", "about", "against", "between", "into",
			"through", "during", "before", "after", "to", "from", "of", "off", "over", "under"},
		Pron: {"i", "you", "he", "she", "it", "we", "they", "me", "him", "us", "them", "who",
			"whom", "which", "what", "nothing", "something"},
		Conj: {"and", "or", "but", "nor", "so", "yet", "because", "if", "when", "while", "as"},
		Aux: {"is", "am", "are", "was", "were", "be", "been", "being", "have", "has", "had",
			"do", "does", "did", "will", "would", "can", "could", "should", "may", "might"},
		Part: {"not", "never", "to"},
		Adv: {"very", "too", "really", "quite", "always", "never", "again", "also", "just",
			"still", "already", "here", "there", "quickly", "well"},
		Adj: {"good", "bad", "great", "fast", "slow", "cheap", "expensive", "nice", "friendly",
			"rude", "clean", "dirty", "excellent", "poor", "perfect", "terrible", "awful"},
	})
	l.AddSuffix("ly", Adv)
	l.AddSuffix("ing", Verb)
	l.AddSuffix("ed", Verb)
	l.AddSuffix("ful", Adj)
	l.AddSuffix("ous", Adj)
	l.AddSuffix("able", Adj)
	return l
}
