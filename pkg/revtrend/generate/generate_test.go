package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

func TestDecodingValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Decoding)
		wantErr bool
	}{
		{"default", func(d *Decoding) {}, false},
		{"sampling", func(d *Decoding) { *d = SamplingDecoding() }, false},
		{"unknown mode", func(d *Decoding) { d.Mode = "beam" }, true},
		{"negative temperature", func(d *Decoding) { d.Temperature = -1 }, true},
		{"zero top_p", func(d *Decoding) { d.TopP = 0 }, true},
		{"zero max tokens", func(d *Decoding) { d.MaxTokens = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultDecoding()
			tt.mutate(&d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	if !DefaultDecoding().Deterministic() {
		t.Error("greedy decoding should be deterministic")
	}
	if SamplingDecoding().Deterministic() {
		t.Error("sampling decoding should not be deterministic")
	}
}

func TestLexRankNoPassages(t *testing.T) {
	_, err := NewLexRank(nil).Generate(context.Background(), Request{Passages: []string{"ok", ""}})
	if !errors.Is(err, internalerr.ErrEmptyGeneration) {
		t.Fatalf("expected ErrEmptyGeneration, got %v", err)
	}
}

func TestLexRankSummary(t *testing.T) {
	req := Request{
		MaxSentences: 2,
		Passages: []string{
			"le colis est arrivé très vite et bien emballé",
			"la livraison du colis a été rapide",
			"le service client a répondu à toutes mes questions",
			"livraison rapide et colis en parfait état",
		},
	}
	a, err := NewLexRank(nil).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(a, "。") {
		t.Errorf("separator leaked into output: %q", a)
	}
	if !strings.HasSuffix(a, ".") {
		t.Errorf("expected terminal punctuation: %q", a)
	}
	if n := strings.Count(a, "."); n == 0 || n > 2 {
		t.Errorf("expected 1..2 sentences, got %d in %q", n, a)
	}
}

type stopSet map[string]bool

func (s stopSet) IsStop(w string) bool { return s[w] }

func TestLexRankKeepsSentencesVerbatim(t *testing.T) {
	passages := []string{
		"Très bonne expérience, livraison rapide et colis bien protégé !",
		"Le colis est arrivé en avance, livraison très rapide.",
		"Le service après-vente m'a répondu en français sous deux jours.",
	}
	tok := ingest.NewTokenizer(stopSet{"le": true, "est": true, "en": true, "et": true})
	out, err := NewLexRank(tok).Generate(context.Background(), Request{Passages: passages, MaxSentences: 2})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := map[string]bool{
		"Très bonne expérience, livraison rapide et colis bien protégé.":   true,
		"Le colis est arrivé en avance, livraison très rapide.":            true,
		"Le service après-vente m'a répondu en français sous deux jours.": true,
	}
	got := strings.SplitAfter(out, ". ")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %q", out)
	}
	for _, s := range got {
		if !want[strings.TrimSpace(s)] {
			t.Errorf("sentence %q is not one of the passages", s)
		}
	}
}

func TestLexRankStopwordsOnly(t *testing.T) {
	tok := ingest.NewTokenizer(stopSet{"pas": true, "mal": true, "du": true, "tout": true})
	_, err := NewLexRank(tok).Generate(context.Background(), Request{Passages: []string{"pas mal du tout"}})
	if !errors.Is(err, internalerr.ErrEmptyGeneration) {
		t.Fatalf("expected ErrEmptyGeneration, got %v", err)
	}
}

func TestLetterCode(t *testing.T) {
	for n, want := range map[int]string{0: "xa", 25: "xz", 26: "xba", 27: "xbb", 676: "xbaa"} {
		if got := letterCode(n); got != want {
			t.Errorf("letterCode(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestGeneratorFunc(t *testing.T) {
	g := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		return req.Prompt, nil
	})
	got, _ := g.Generate(context.Background(), Request{Prompt: "echo"})
	if got != "echo" {
		t.Errorf("GeneratorFunc returned %q", got)
	}
}
