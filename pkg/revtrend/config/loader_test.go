package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// requiredArtifacts returns a loader with empty synonyms, replacements and
// blacklist files.
func requiredArtifacts(t *testing.T) *Loader {
	t.Helper()
	return &Loader{
		SynonymsPath:     writeFile(t, "syn.json", `{}`),
		ReplacementsPath: writeFile(t, "rep.json", `{}`),
		BlacklistPath:    writeFile(t, "bl.json", `[]`),
	}
}

func TestLoaderEmptyArtifacts(t *testing.T) {
	comp, err := requiredArtifacts(t).Load()
	if err != nil {
		t.Fatalf("Load with empty files: %v", err)
	}
	if comp.Profile == nil || comp.Profile.Code != "fr" {
		t.Errorf("expected french profile by default, got %+v", comp.Profile)
	}
	if comp.Tokenizer == nil || comp.Lexicon == nil || comp.Rewriter == nil || comp.Tagger == nil {
		t.Fatal("components should never be nil")
	}
	if !comp.Stoplist.IsStop("le") {
		t.Error("builtin french stopwords missing")
	}
	if len(comp.Blacklist) != 0 {
		t.Errorf("unexpected blacklist %v", comp.Blacklist)
	}
}

func TestLoaderRequiresArtifacts(t *testing.T) {
	tests := []struct {
		name  string
		clear func(*Loader)
	}{
		{"synonyms", func(l *Loader) { l.SynonymsPath = "" }},
		{"replacements", func(l *Loader) { l.ReplacementsPath = "" }},
		{"blacklist", func(l *Loader) { l.BlacklistPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := requiredArtifacts(t)
			tt.clear(l)
			_, err := l.Load()
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("error should name the missing file: %v", err)
			}
		})
	}

	if _, err := (&Loader{}).Load(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig with no files, got %v", err)
	}
}

func TestLoaderValidFiles(t *testing.T) {
	l := &Loader{
		Language:         "fr",
		SynonymsPath:     writeFile(t, "syn.json", `{"service client": ["sav"]}`),
		ReplacementsPath: writeFile(t, "rep.json", `{"tres": "très"}`),
		BlacklistPath:    writeFile(t, "bl.json", `["je recommande"]`),
		StoplistPath:     writeFile(t, "stop.yaml", "terms:\n  - franchement\n"),
		POSLexiconPath:   writeFile(t, "pos.yaml", "words:\n  NOUN: [tajine]\n"),
	}
	comp, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := comp.Lexicon.Canonicalize("le sav répond"); !ok || got != "service client" {
		t.Errorf("synonyms not loaded: %q %v", got, ok)
	}
	if got := comp.Rewriter.Apply("tres bon"); got != "très bon" {
		t.Errorf("replacements not loaded: %q", got)
	}
	if len(comp.Blacklist) != 1 {
		t.Errorf("blacklist not loaded: %v", comp.Blacklist)
	}
	if !comp.Stoplist.IsStop("franchement") {
		t.Error("file stopwords not merged")
	}
	if tags := comp.Tagger.Tag([]string{"tajine"}); len(tags) != 1 || !tags[0].Substantive() {
		t.Errorf("pos lexicon not merged: %v", tags)
	}
}

func TestLoaderMissingFileIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	loaders := map[string]func(*Loader){
		"synonyms":     func(l *Loader) { l.SynonymsPath = missing },
		"replacements": func(l *Loader) { l.ReplacementsPath = missing },
		"blacklist":    func(l *Loader) { l.BlacklistPath = missing },
		"stoplist":     func(l *Loader) { l.StoplistPath = missing },
		"pos":          func(l *Loader) { l.POSLexiconPath = missing },
	}
	for name, set := range loaders {
		t.Run(name, func(t *testing.T) {
			l := requiredArtifacts(t)
			set(l)
			_, err := l.Load()
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoaderUnknownLanguage(t *testing.T) {
	_, err := (&Loader{Language: "tlh"}).Load()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewLoaderFromSettings(t *testing.T) {
	s := DefaultSettings()
	s.Language = "en"
	s.Artifacts.Blacklist = "bl.json"
	l := NewLoader(s)
	if l.Language != "en" || l.BlacklistPath != "bl.json" {
		t.Fatalf("unexpected loader %+v", l)
	}
}
