package lexicon

import (
	"reflect"
	"testing"
)

func TestCanonicalizeFirstGroupWins(t *testing.T) {
	lex := FromGroups([]Group{
		{Canonical: "délai de livraison", Terms: []string{"Livraison", "colis"}},
		{Canonical: "service client", Terms: []string{"sav", "colis perdu"}},
	})

	tests := []struct {
		in     string
		want   string
		change bool
	}{
		{"colis perdu par le transporteur", "délai de livraison", true},
		{"Le SAV ne répond jamais", "service client", true},
		{"prix très attractifs", "prix très attractifs", false},
	}
	for _, tt := range tests {
		got, changed := lex.Canonicalize(tt.in)
		if got != tt.want || changed != tt.change {
			t.Errorf("Canonicalize(%q) = %q,%v want %q,%v", tt.in, got, changed, tt.want, tt.change)
		}
	}
}

func TestAddSynonymGroupReplacesTerms(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("prix", []string{"tarif", "coût"})
	lex.AddSynonymGroup("qualité", []string{"finition"})
	lex.AddSynonymGroup("prix", []string{"tarif", "Tarif", "montant"})

	if lex.Normalize("coût") != "coût" {
		t.Error("expected old term to be dropped")
	}
	if lex.Normalize("MONTANT") != "prix" {
		t.Error("expected new term to map to canonical")
	}
	if !reflect.DeepEqual(lex.Synonyms("prix"), []string{"tarif", "montant"}) {
		t.Errorf("unexpected synonyms %v", lex.Synonyms("prix"))
	}

	groups := lex.Groups()
	if len(groups) != 2 || groups[0].Canonical != "prix" || groups[1].Canonical != "qualité" {
		t.Errorf("expected insertion order kept, got %+v", groups)
	}
}

func TestRewriterOrder(t *testing.T) {
	w := NewRewriter([]Replacement{
		{Old: "tres", New: "très"},
		{Old: "", New: "ignored"},
		{Old: "très très", New: "très"},
	})
	if got := w.Apply("tres tres bon"); got != "très bon" {
		t.Errorf("Apply() = %q", got)
	}
	if len(w.Rules()) != 2 {
		t.Errorf("expected empty rule dropped, got %d rules", len(w.Rules()))
	}

	var nilRewriter *Rewriter
	if nilRewriter.Apply("x") != "x" {
		t.Error("nil rewriter should be a no-op")
	}
}
