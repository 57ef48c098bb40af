package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ruri-sayo/word-test-KAI/internal/config"
	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/store"
	"github.com/ruri-sayo/word-test-KAI/internal/wordlist"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Quiz.Words != nil || cfg.Quiz.TimeLimit != nil || cfg.Labels.Noun != nil {
		t.Fatalf("expected all template values commented out: %+v", cfg)
	}
	if !strings.Contains(defaultConfigTemplate(), `vocab-question = "What does %q mean?"`) {
		t.Fatalf("template missing question example")
	}
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordtest", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[quiz]\ntime-limit = 5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[quiz]\ntime-limit = 5\n" {
		t.Fatalf("config was overwritten: %q", data)
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := model.QuizConfig{TimeLimit: 10, TimeLimits: defaultTimeLimits}
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	cfg.TimeLimit = 7
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("expected error for limit outside the set")
	}
	cfg.TimeLimit = -1
	if err := validateConfig(cfg); err == nil || !strings.Contains(err.Error(), "--time-limit") {
		t.Fatalf("expected --time-limit error, got %v", err)
	}
}

func TestResolveWordsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if got := resolveWordsPath("mine.json"); got != "mine.json" {
		t.Fatalf("expected explicit path, got %q", got)
	}
	if got := resolveWordsPath(""); got != wordlist.BuiltinSource {
		t.Fatalf("expected builtin fallback, got %q", got)
	}
	path := config.DefaultWordsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := resolveWordsPath(""); got != path {
		t.Fatalf("expected default words file, got %q", got)
	}
}

func TestWordListLoadError(t *testing.T) {
	err := wordListLoadError("words.json", wordlist.ErrEmpty)
	msg := err.Error()
	for _, want := range []string{"failed to load word list", "words.json", "no entries", "wordtest --words builtin"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q: %s", want, msg)
		}
	}
	entryErr := &wordlist.EntryError{Index: 2, Word: "x", Err: errors.New("bad")}
	if msg := wordListLoadError("w.json", entryErr).Error(); !strings.Contains(msg, "needs a word and a part of speech") {
		t.Fatalf("unexpected entry error message: %s", msg)
	}
}

func TestHistoryConfig(t *testing.T) {
	cfg, err := historyConfig("pos", "2024-03-01", 5, 3)
	if err != nil {
		t.Fatalf("history config: %v", err)
	}
	if cfg.Mode != "pos" || cfg.Last != 5 || cfg.Window != 3 || cfg.Since == nil {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := historyConfig("", "", -1, 3); err == nil {
		t.Fatalf("expected --last error")
	}
	if _, err := historyConfig("", "", 0, 0); err == nil {
		t.Fatalf("expected --window error")
	}
	if _, err := historyConfig("kanji", "", 0, 1); err == nil {
		t.Fatalf("expected --mode error")
	}
	if _, err := historyConfig("", "yesterday", 0, 1); err == nil {
		t.Fatalf("expected --since error")
	}
}

func TestWriteWordsReport(t *testing.T) {
	words := []model.WordEntry{
		{Word: "apple", Meaning: "a fruit", PartOfSpeech: model.Noun},
		{Word: "run", PartOfSpeech: model.Verb},
	}
	var buf bytes.Buffer
	if err := writeWordsReport(&buf, "w.tsv", words, model.DefaultLabels()); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Source: w.tsv", "Entries: 2", "noun: 1", "verb: 1", "adverb: 0", "Missing meanings: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q: %s", want, out)
		}
	}
}

func TestWriteHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()

	var buf bytes.Buffer
	if err := writeHistory(ctx, &buf, st, model.HistoryConfig{Window: 1}, 80); err != nil {
		t.Fatalf("write empty history: %v", err)
	}
	if !strings.Contains(buf.String(), "No results found.") {
		t.Fatalf("unexpected empty output: %s", buf.String())
	}

	rec := model.ResultRecord{
		StartedAt: time.Unix(100, 0),
		EndedAt:   time.Unix(160, 0),
		Mode:      model.ModeVocabulary,
		TimeLimit: 10,
		Total:     2,
		Correct:   1,
		Incorrect: 1,
	}
	outcomes := []model.WordOutcome{
		{Word: "apple", Outcome: model.OutcomeCorrect},
		{Word: "run", Outcome: model.OutcomeIncorrect},
	}
	if _, err := st.InsertResult(ctx, rec, outcomes); err != nil {
		t.Fatalf("insert result: %v", err)
	}
	buf.Reset()
	if err := writeHistory(ctx, &buf, st, model.HistoryConfig{Window: 1}, 80); err != nil {
		t.Fatalf("write history: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 1", "Learning Curve", "vocab", "Most Missed", "run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history missing %q: %s", want, out)
		}
	}
}
