package ingest

import "strings"

// SplitSentences cuts text after each '.', '!', '?' or line break. Terminal
// punctuation stays attached to its sentence; blank pieces are dropped.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' && r != '\n' {
			continue
		}
		// Keep runs like "..." or "?!" together.
		if i+1 < len(runes) && isTerminal(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Chunks splits each text into sentences, normalizes them and keeps those
// with at least minWords words. Output order follows the input.
func Chunks(texts []string, minWords int) []string {
	var chunks []string
	for _, text := range texts {
		for _, sentence := range SplitSentences(text) {
			chunk := Normalize(sentence)
			if chunk == "" || WordCount(chunk) < minWords {
				continue
			}
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
