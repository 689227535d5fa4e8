package retrieve

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cognicore/revtrend/pkg/revtrend/embed"
	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/stoplist"
	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

func newSemantic() *Semantic {
	tok := ingest.NewTokenizer(stoplist.ForLanguage("fr"))
	return NewSemantic(embed.NewHashing(256, "french", tok), SemanticOptions{Logger: log.New(io.Discard)})
}

var corpus = []string{
	"La livraison du colis a pris trois semaines. Le colis est arrivé abîmé et ouvert.",
	"Le service client répond au téléphone très rapidement. Trop court.",
	"La terrasse est agréable et bien ombragée en été. Les serveurs sont souriants et attentionnés.",
}

func TestSemanticNotBuilt(t *testing.T) {
	if _, err := newSemantic().Find(context.Background(), "colis"); !errors.Is(err, ErrIndexNotBuilt) {
		t.Fatalf("expected ErrIndexNotBuilt, got %v", err)
	}
}

func TestSemanticBuildSkipsShortChunks(t *testing.T) {
	s := newSemantic()
	if err := s.Build(context.Background(), corpus); err != nil {
		t.Fatal(err)
	}
	// "Trop court." has fewer than five words.
	if s.Len() != 5 {
		t.Errorf("expected 5 indexed chunks, got %d", s.Len())
	}
}

func TestSemanticNearest(t *testing.T) {
	s := newSemantic()
	ctx := context.Background()
	if err := s.Build(ctx, corpus); err != nil {
		t.Fatal(err)
	}

	got, err := s.Retrieve(ctx, "colis arrivé abîmé")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || len(got) > DefaultTopK {
		t.Fatalf("expected 1..%d passages, got %v", DefaultTopK, got)
	}
	if got[0] != "le colis est arrivé abîmé et ouvert" {
		t.Errorf("nearest chunk = %q", got[0])
	}

	again, _ := s.Retrieve(ctx, "colis arrivé abîmé")
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("search not deterministic: %v vs %v", got, again)
		}
	}
}

func TestSemanticEmptyCorpusAndClose(t *testing.T) {
	s := newSemantic()
	ctx := context.Background()
	if err := s.Build(ctx, []string{"bof"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Find(ctx, "anything")
	if err != nil || got != nil {
		t.Errorf("expected no passages on empty index, got %v %v", got, err)
	}

	s.Close()
	if _, err := s.Find(ctx, "anything"); !errors.Is(err, ErrIndexNotBuilt) {
		t.Errorf("expected closed index to report not built, got %v", err)
	}
}

type stubRetriever map[string][]string

func (s stubRetriever) Retrieve(ctx context.Context, phrase string) ([]string, error) {
	if phrase == "boom" {
		return nil, errors.New("index offline")
	}
	return s[phrase], nil
}

func TestAttachAndPassages(t *testing.T) {
	r := stubRetriever{
		"a b c": {"p1", "p2"},
		"d e f": {"p2", "p3", ""},
	}
	in := trend.List{{Text: "a b c"}, {Text: "boom"}, {Text: "d e f"}}
	got := Attach(context.Background(), r, in, log.New(io.Discard))

	if in[0].HasEvidence() {
		t.Error("Attach should not mutate its input")
	}
	if got[1].HasEvidence() {
		t.Error("failed retrieval should leave evidence empty")
	}

	all := Passages(got, 0)
	if len(all) != 3 || all[0] != "p1" || all[1] != "p2" || all[2] != "p3" {
		t.Errorf("Passages() = %v", all)
	}
	if capped := Passages(got, 2); len(capped) != 2 {
		t.Errorf("expected cap of 2, got %v", capped)
	}
}
