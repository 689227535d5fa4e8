package ingest

import (
	"reflect"
	"testing"
)

type stopSet map[string]bool

func (s stopSet) IsStop(tok string) bool { return s[tok] }

func TestWords(t *testing.T) {
	tok := NewTokenizer(nil)
	got := tok.Words("L'accueil était très-bien, 2 fois!")
	want := []string{"l", "accueil", "était", "très", "bien", "2", "fois"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestTokenizeRemovesStopwords(t *testing.T) {
	tok := NewTokenizer(stopSet{"le": true, "est": true, "et": true})
	got := tok.Tokenize("le service client est rapide et efficace en 2024")
	want := []string{"service", "client", "rapide", "efficace", "en"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestIsContent(t *testing.T) {
	tok := NewTokenizer(stopSet{"de": true})
	cases := map[string]bool{
		"de":      false,
		"a":       false,
		"2025":    false,
		"colis":   true,
		"python3": true,
	}
	for word, want := range cases {
		if got := tok.IsContent(word); got != want {
			t.Errorf("IsContent(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestWordCount(t *testing.T) {
	if WordCount("  un  deux trois ") != 3 {
		t.Error("expected 3 words")
	}
	if WordCount("") != 0 {
		t.Error("expected 0 words")
	}
}
