package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func inputs(values ...string) []textinput.Model {
	out := make([]textinput.Model, len(values))
	for i, v := range values {
		out[i] = textinput.New()
		out[i].SetValue(v)
	}
	return out
}

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter(inputs("vocabulary", "2024-02-03", "5", "3"))
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cfg.Mode != "vocab" || cfg.Last != 5 || cfg.Window != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Since == nil || cfg.Since.Format("2006-01-02") != "2024-02-03" {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}

	cases := [][]string{
		{"kanji", "", "", ""},
		{"", "03/02/2024", "", ""},
		{"", "", "-1", ""},
		{"", "", "", "0"},
	}
	for _, tc := range cases {
		if _, err := parseFilter(inputs(tc...)); err == nil {
			t.Fatalf("expected error for %q", tc)
		}
	}
}

func TestWindowSteps(t *testing.T) {
	if got := nextWindow(1); got != 5 {
		t.Fatalf("nextWindow(1) = %d", got)
	}
	if got := nextWindow(7); got != 10 {
		t.Fatalf("nextWindow(7) = %d", got)
	}
	if got := prevWindow(7); got != 5 {
		t.Fatalf("prevWindow(7) = %d", got)
	}
	if got := prevWindow(5); got != 1 {
		t.Fatalf("prevWindow(5) = %d", got)
	}
}

func TestModelRendersHistory(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	words := []model.WordOutcome{
		{Word: "apple", Outcome: model.OutcomeCorrect},
		{Word: "run", Outcome: model.OutcomeTimeout},
	}
	for i := 0; i < 3; i++ {
		end := time.Unix(int64(1000+i*60), 0)
		rec := model.ResultRecord{
			StartedAt: end.Add(-time.Minute),
			EndedAt:   end,
			Mode:      model.ModePartOfSpeech,
			Total:     2,
			Correct:   1,
			Incorrect: 1,
			Timeouts:  1,
		}
		if _, err := st.InsertResult(ctx, rec, words); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}

	m := NewModel(st, model.HistoryConfig{Window: 2})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	for _, want := range []string{"Overview", "Sessions", "window=2", "Avg Acc", "50.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("overview missing %q: %s", want, out)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabWords {
		t.Fatalf("expected words tab, got %d", m.activeTab)
	}
	if out := m.View(); !strings.Contains(out, "run") {
		t.Fatalf("expected missed word in table: %s", out)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.Window != 5 {
		t.Fatalf("expected window 5, got %d", m.cfg.Window)
	}
}

func TestModelEmptyHistory(t *testing.T) {
	m := NewModel(openStore(t), model.HistoryConfig{Window: 1})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if out := m.View(); !strings.Contains(out, "No results found.") {
		t.Fatalf("expected empty message: %s", out)
	}
}
