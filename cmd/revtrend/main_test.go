package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTemp(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// artifactFlags writes the three JSON configuration files into dir and
// returns the flags pointing at them.
func artifactFlags(t *testing.T, dir string) []string {
	t.Helper()
	syn := writeTemp(t, dir, "synonyms.json", []string{`{"service client": ["sav"]}`})
	rep := writeTemp(t, dir, "replacements.json", []string{`{"tres ": "très "}`})
	bl := writeTemp(t, dir, "blacklist.json", []string{`["je recommande"]`})
	return []string{"--synonyms", syn, "--replacements", rep, "--blacklist", bl}
}

func TestClassifiedPath(t *testing.T) {
	if got := classifiedPath("data/reviews.tsv"); got != "data/reviews.classified.tsv" {
		t.Errorf("got %q", got)
	}
	if got := classifiedPath("reviews.txt"); got != "reviews.txt.classified.tsv" {
		t.Errorf("got %q", got)
	}
}

func TestTrendsCommandWritesReport(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "classified.tsv", []string{
		"Le service client est rapide et efficace.\tPOSITIVE",
		"Livraison en retard et colis abîmé.\tNEGATIVE",
		"ligne sans label",
	})
	out := filepath.Join(dir, "report.txt")

	args := append([]string{"trends",
		"--env", filepath.Join(dir, ".env"),
		"--log-level", "error",
		"--evidence", "exact",
		"-i", input, "-o", out}, artifactFlags(t, dir)...)
	_, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "Répartition des sentiments :") {
		t.Errorf("unexpected report:\n%s", data)
	}
}

func TestTrendsCommandRequiresArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "classified.tsv", []string{"Le service client est rapide.\tPOSITIVE"})
	_, err := runCLI(t, "trends", "--env", filepath.Join(dir, ".env"), "--log-level", "error", "-i", input)
	if err == nil || !strings.Contains(err.Error(), "synonyms") {
		t.Fatalf("expected missing synonyms error, got %v", err)
	}
}

func TestTrendsCommandRequiresInput(t *testing.T) {
	if _, err := runCLI(t, "trends", "--env", filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Fatal("expected error without --input")
	}
}

func TestRootRejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "classified.tsv", []string{"texte\tPOSITIVE"})
	if _, err := runCLI(t, "trends", "--env", filepath.Join(dir, ".env"), "--log-level", "loud", "-i", input); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestRunCommandArchives(t *testing.T) {
	dir := t.TempDir()
	raw := writeTemp(t, dir, "reviews.tsv", []string{
		"b1\tresto-a\tResto A\t4.5\tr1\t5\tTrès bon accueil, service excellent et rapide.",
		"b1\tresto-a\tResto A\t4.5\tr2\t1\tService horrible, attente interminable et plats froids.",
	})
	db := filepath.Join(dir, "runs.db")
	env := filepath.Join(dir, ".env")

	args := append([]string{"run", "--env", env, "--log-level", "error", "--db", db, "--evidence", "none", "-i", raw}, artifactFlags(t, dir)...)
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "classified 2/2 reviews") {
		t.Errorf("missing classify summary:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "reviews.classified.tsv")); err != nil {
		t.Errorf("classified file not written: %v", err)
	}

	listing, err := runCLI(t, "runs", "--env", env, "--log-level", "error", "--db", db)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(listing, "reviews.classified.tsv") {
		t.Errorf("archived run not listed:\n%s", listing)
	}
}
