package ingest

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Livraison rapide. Produit conforme!! Et le SAV ?\nMerci")
	want := []string{"Livraison rapide.", "Produit conforme!!", "Et le SAV ?", "Merci"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences() = %q, want %q", got, want)
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	if got := SplitSentences("  ...  "); len(got) != 1 || got[0] != "..." {
		t.Errorf("unexpected split %q", got)
	}
	if got := SplitSentences(""); len(got) != 0 {
		t.Errorf("expected no sentences, got %q", got)
	}
}

func TestChunksMinWords(t *testing.T) {
	texts := []string{
		"Très bien. Le colis est arrivé en parfait état et à l'heure.",
		"Nul.",
	}
	got := Chunks(texts, 5)
	want := []string{"le colis est arrivé en parfait état et à l'heure"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chunks() = %q, want %q", got, want)
	}
}
