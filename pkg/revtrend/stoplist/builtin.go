package stoplist

// French returns the builtin French stopword list. It covers articles,
// pronouns, prepositions, conjunctions, common auxiliaries and the review
// boilerplate words that carry no topic.
func French() []string {
	return []string{
		"a", "à", "ai", "aie", "aient", "aies", "ait", "alors", "as", "au", "aucun", "aucune",
		"aussi", "autre", "aux", "avais", "avait", "avant", "avec", "avez", "avis", "avoir",
		"avons", "ayant", "c", "ça", "car", "ce", "ceci", "cela", "celle", "celui", "ces",
		"cet", "cette", "chez", "ci", "comme", "d", "dans", "de", "des", "donc", "dont", "du",
		"elle", "elles", "en", "encore", "es", "est", "et", "étaient", "était", "étant", "été",
		"être", "eu", "eux", "fait", "fois", "font", "ici", "il", "ils", "j", "je", "l", "la",
		"le", "les", "leur", "leurs", "lui", "m", "ma", "mais", "me", "même", "mes", "moi",
		"mon", "n", "ne", "ni", "nos", "notre", "nous", "on", "ont", "ou", "où", "par", "pas",
		"peu", "peut", "plus", "pour", "qu", "que", "quel", "quelle", "quelles", "quels", "qui",
		"s", "sa", "sans", "se", "sera", "ses", "si", "son", "sont", "suis", "suite", "sur",
		"t", "ta", "te", "tes", "toi", "ton", "tous", "tout", "toute", "toutes", "très", "tu",
		"un", "une", "vos", "votre", "vous", "y",
	}
}

// English returns the builtin English stopword list.
func English() []string {
	return []string{
		"a", "about", "after", "again", "all", "also", "am", "an", "and", "any", "are", "as",
		"at", "be", "been", "before", "being", "but", "by", "can", "could", "did", "do", "does",
		"doing", "for", "from", "had", "has", "have", "having", "he", "her", "here", "him",
		"his", "how", "i", "if", "in", "into", "is", "it", "its", "just", "me", "more", "most",
		"my", "no", "nor", "not", "of", "on", "once", "only", "or", "other", "our", "out",
		"over", "own", "review", "same", "she", "should", "so", "some", "such", "than", "that",
		"the", "their", "them", "then", "there", "these", "they", "this", "those", "through",
		"to", "too", "under", "until", "up", "very", "was", "we", "were", "what", "when",
		"where", "which", "while", "who", "why", "will", "with", "would", "you", "your",
	}
}
