package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/revtrend/pkg/revtrend/generate"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stoplist.yaml", `terms:
  - vraiment
  - franchement
`)
	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}
	if len(sl.Terms) != 2 {
		t.Errorf("Expected 2 terms, got %d", len(sl.Terms))
	}
}

func TestLoadSynonymsKeepsOrder(t *testing.T) {
	path := writeFile(t, "synonyms.json", `{
  "service client": ["sav", "conseiller"],
  "livraison": ["colis", "livreur"],
  "accueil": "réception"
}`)
	groups, err := LoadSynonyms(path)
	if err != nil {
		t.Fatalf("LoadSynonyms: %v", err)
	}
	want := []string{"service client", "livraison", "accueil"}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %+v", len(want), groups)
	}
	for i, w := range want {
		if groups[i].Canonical != w {
			t.Errorf("group %d = %q, want %q", i, groups[i].Canonical, w)
		}
	}
	if len(groups[0].Terms) != 2 || groups[2].Terms[0] != "réception" {
		t.Errorf("unexpected terms %+v", groups)
	}
}

func TestLoadSynonymsRejectsNumbers(t *testing.T) {
	path := writeFile(t, "synonyms.json", `{"service": 3}`)
	if _, err := LoadSynonyms(path); err == nil {
		t.Fatal("expected error for numeric synonyms")
	}
}

func TestLoadReplacementsKeepsOrder(t *testing.T) {
	path := writeFile(t, "replace.json", `{"z": "a", "b": "c", "a": "b"}`)
	rules, err := LoadReplacements(path)
	if err != nil {
		t.Fatalf("LoadReplacements: %v", err)
	}
	if len(rules) != 3 || rules[0].Old != "z" || rules[1].Old != "b" || rules[2].Old != "a" {
		t.Fatalf("document order lost: %+v", rules)
	}
}

func TestLoadBlacklist(t *testing.T) {
	path := writeFile(t, "blacklist.json", `["Merci Beaucoup", "  ", "je recommande"]`)
	terms, err := LoadBlacklist(path)
	if err != nil {
		t.Fatalf("LoadBlacklist: %v", err)
	}
	if len(terms) != 2 || terms[0] != "merci beaucoup" {
		t.Fatalf("unexpected blacklist %v", terms)
	}
}

func TestLoadBlacklistMalformed(t *testing.T) {
	path := writeFile(t, "blacklist.json", `{"not": "a list"}`)
	if _, err := LoadBlacklist(path); err == nil {
		t.Fatal("expected error for non-list blacklist")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := LoadSynonyms(missing); err == nil {
		t.Error("expected error for missing synonyms")
	}
	if _, err := LoadReplacements(missing); err == nil {
		t.Error("expected error for missing replacements")
	}
	if _, err := LoadBlacklist(missing); err == nil {
		t.Error("expected error for missing blacklist")
	}
}

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if s.Selection.TopN != 20 || s.Selection.MinCount != 3 {
		t.Errorf("unexpected selection defaults %+v", s.Selection)
	}
	if s.Refine.Threshold != 0.85 || s.Refine.MinWords != 3 || s.Refine.MaxWords != 8 {
		t.Errorf("unexpected refine defaults %+v", s.Refine)
	}
	if s.Evidence.TopK != 3 || s.Evidence.MaxPassages != 10 || s.Evidence.Scope != ScopePartition {
		t.Errorf("unexpected evidence defaults %+v", s.Evidence)
	}
	if s.Synthesis.MaxSentences != 5 || s.Synthesis.MaxAttempts != 2 {
		t.Errorf("unexpected synthesis defaults %+v", s.Synthesis)
	}
}

func TestLoadSettingsOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "revtrend.yaml", `
language: en
timeout: 15s
selection:
  top_n: 10
evidence:
  strategy: exact
  window: 2
synthesis:
  decoding:
    mode: sampling
    temperature: 0.7
    top_p: 0.9
`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Language != "en" || s.Timeout != 15*time.Second {
		t.Errorf("top-level keys not applied: %+v", s)
	}
	if s.Selection.TopN != 10 || s.Selection.MinCount != 3 {
		t.Errorf("selection overlay wrong: %+v", s.Selection)
	}
	if s.Evidence.Strategy != EvidenceExact || s.Evidence.Window != 2 || s.Evidence.TopK != 3 {
		t.Errorf("evidence overlay wrong: %+v", s.Evidence)
	}
	if s.Synthesis.Decoding.Mode != generate.Sampling || s.Synthesis.Decoding.MaxTokens != 400 {
		t.Errorf("decoding overlay wrong: %+v", s.Synthesis.Decoding)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad strategy", "evidence:\n  strategy: psychic\n"},
		{"bad threshold", "refine:\n  threshold: 1.5\n"},
		{"empty band", "refine:\n  min_words: 9\n"},
		{"bad yaml", "selection: [\n"},
		{"bad decoding", "synthesis:\n  decoding:\n    mode: beam\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeFile(t, "revtrend.yaml", tt.content))
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadSettingsMissing(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "REVTREND_LLM_API_KEY=from-file\nREVTREND_EMBED_ENDPOINT=http://localhost:11434\n")
	t.Setenv(EnvLLMAPIKey, "")
	os.Unsetenv(EnvLLMAPIKey)
	t.Setenv(EnvEmbedEndpoint, "")
	os.Unsetenv(EnvEmbedEndpoint)
	t.Setenv(EnvClassifierAPIKey, "from-process")

	s := DefaultSettings()
	if err := LoadEnv(path, &s); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if s.Models.LLM.APIKey != "from-file" {
		t.Errorf("api key = %q", s.Models.LLM.APIKey)
	}
	if s.Models.Embedding.Endpoint != "http://localhost:11434" {
		t.Errorf("embed endpoint = %q", s.Models.Embedding.Endpoint)
	}
	if s.Models.Classifier.Token != "from-process" {
		t.Errorf("classifier token = %q", s.Models.Classifier.Token)
	}
}

func TestLoadEnvMissingFileIsFine(t *testing.T) {
	s := DefaultSettings()
	if err := LoadEnv(filepath.Join(t.TempDir(), ".env"), &s); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}
