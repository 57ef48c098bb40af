package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruri-sayo/word-test-KAI/internal/generator"
	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/quiz"
	"github.com/ruri-sayo/word-test-KAI/internal/store"
)

func testWords() []model.WordEntry {
	return []model.WordEntry{
		{Word: "apple", Meaning: "a round fruit", PartOfSpeech: model.Noun},
		{Word: "run", Meaning: "to move quickly on foot", PartOfSpeech: model.Verb},
	}
}

func testConfig() model.QuizConfig {
	return model.QuizConfig{
		TimeLimit:  10,
		TimeLimits: []int{0, 5, 10},
		Labels:     model.DefaultLabels(),
		History:    true,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, cfg model.QuizConfig, st *store.Store) *Model {
	t.Helper()
	return NewModel(cfg, st, generator.NewWithSeed(7), testWords(), "test")
}

func TestEmptyWordsShowsError(t *testing.T) {
	m := NewModel(testConfig(), nil, generator.NewWithSeed(1), nil, "test")
	if m.Init() != nil {
		t.Fatalf("expected no init command")
	}
	if out := m.View(); !strings.Contains(out, "Cannot start a quiz") {
		t.Fatalf("expected error screen, got %q", out)
	}
	cmd := m.handleKey(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestDigitSelectsModeAndAnswers(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)
	if out := m.View(); !strings.Contains(out, "Select a mode") {
		t.Fatalf("expected mode select screen, got %q", out)
	}
	m.handleKey(runes("2"))
	snap := m.engine.Snapshot()
	if snap.Phase != quiz.PhaseUnanswered || snap.Mode != model.ModePartOfSpeech {
		t.Fatalf("expected pos question, got %+v", snap)
	}
	if len(m.pending) != 1 {
		t.Fatalf("expected one scheduled tick, got %d", len(m.pending))
	}
	if out := m.View(); !strings.Contains(out, "Question 1/2") || !strings.Contains(out, "Time left: 10 s") {
		t.Fatalf("unexpected question view: %q", out)
	}

	m.handleKey(runes("1"))
	snap = m.engine.Snapshot()
	if snap.Phase != quiz.PhaseAnswered {
		t.Fatalf("expected answered phase, got %s", snap.Phase)
	}
	want := "Correct!"
	if snap.Feedback != quiz.FeedbackCorrect {
		want = "Incorrect. The answer is " + snap.CorrectText
	}
	if out := m.View(); !strings.Contains(out, want) {
		t.Fatalf("expected feedback %q in %q", want, out)
	}
}

func TestArrowAndEnterSubmit(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)
	m.handleKey(runes("2"))
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.cursor)
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	snap := m.engine.Snapshot()
	if !snap.Answered || snap.Selected != 2 {
		t.Fatalf("expected option 2 submitted, got %+v", snap)
	}
}

func TestTicksTimeOutQuestion(t *testing.T) {
	cfg := testConfig()
	cfg.TimeLimit = 1
	m := newTestModel(t, cfg, nil)
	m.handleKey(runes("2"))
	id := m.pending[0]
	m.pending = nil

	if _, cmd := m.Update(tickMsg{id: id}); cmd == nil {
		t.Fatalf("expected tick to be rescheduled")
	}
	if snap := m.engine.Snapshot(); snap.Remaining != 0 || snap.Answered {
		t.Fatalf("expected running at 0, got %+v", snap)
	}
	if _, cmd := m.Update(tickMsg{id: id}); cmd != nil {
		t.Fatalf("expected no reschedule after expiry")
	}
	snap := m.engine.Snapshot()
	if snap.Feedback != quiz.FeedbackTimeout || snap.Incorrect != 1 {
		t.Fatalf("expected timeout, got %+v", snap)
	}
	if out := m.View(); !strings.Contains(out, "Time's up! The answer is "+snap.CorrectText) {
		t.Fatalf("expected timeout feedback, got %q", out)
	}
}

func TestPauseHidesOptions(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)
	m.handleKey(runes("2"))
	m.handleKey(runes("p"))
	snap := m.engine.Snapshot()
	if !snap.Paused {
		t.Fatalf("expected paused")
	}
	out := m.View()
	if !strings.Contains(out, "Paused. Press p to resume.") || strings.Contains(out, "1. ( )") {
		t.Fatalf("unexpected paused view: %q", out)
	}
	m.handleKey(runes("1"))
	if m.engine.Snapshot().Answered {
		t.Fatalf("expected answer ignored while paused")
	}
}

func TestTimeLimitCycles(t *testing.T) {
	m := newTestModel(t, testConfig(), nil)
	m.handleKey(runes("t"))
	if got := m.engine.TimeLimit(); got != 0 {
		t.Fatalf("expected limit to wrap to 0, got %d", got)
	}
	m.handleKey(runes("t"))
	if got := m.engine.TimeLimit(); got != 5 {
		t.Fatalf("expected limit 5, got %d", got)
	}
}

func TestCompleteSessionSavesResult(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	m := newTestModel(t, testConfig(), st)
	m.handleKey(runes("1"))
	for i := 0; i < 2; i++ {
		m.handleKey(runes("1"))
		m.handleKey(runes("n"))
	}
	if phase := m.engine.Phase(); phase != quiz.PhaseComplete {
		t.Fatalf("expected complete, got %s", phase)
	}
	out := m.View()
	if !strings.Contains(out, "Finished!") || !strings.Contains(out, "Result saved.") {
		t.Fatalf("unexpected result view: %q", out)
	}
	results, err := st.ListResults(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 || results[0].Mode != "vocab" || results[0].Correct+results[0].Incorrect != 2 {
		t.Fatalf("unexpected stored results: %+v", results)
	}

	m.handleKey(runes("r"))
	if snap := m.engine.Snapshot(); snap.Phase != quiz.PhaseUnanswered || snap.Mode != model.ModeVocabulary {
		t.Fatalf("expected restarted vocab session, got %+v", snap)
	}

	again := newTestModel(t, testConfig(), st)
	if out := again.renderFooter(); !strings.Contains(out, "over 1 sessions") {
		t.Fatalf("expected footer from history, got %q", out)
	}
}

func TestPreselectedModeStartsImmediately(t *testing.T) {
	cfg := testConfig()
	mode := model.ModePartOfSpeech
	cfg.Mode = &mode
	m := newTestModel(t, cfg, nil)
	if phase := m.engine.Phase(); phase != quiz.PhaseUnanswered {
		t.Fatalf("expected question phase, got %s", phase)
	}
	if m.Init() == nil {
		t.Fatalf("expected init to schedule the first tick")
	}
	m.handleKey(runes("h"))
	if phase := m.engine.Phase(); phase != quiz.PhaseModeSelect {
		t.Fatalf("expected mode select after home, got %s", phase)
	}
}

func TestNextTimeLimit(t *testing.T) {
	limits := []int{0, 5, 10}
	cases := []struct {
		current int
		want    int
	}{
		{0, 5},
		{10, 0},
		{7, 0},
	}
	for _, tc := range cases {
		if got := nextTimeLimit(limits, tc.current); got != tc.want {
			t.Fatalf("nextTimeLimit(%d) = %d, want %d", tc.current, got, tc.want)
		}
	}
	if got := nextTimeLimit(nil, 3); got != 3 {
		t.Fatalf("expected unchanged limit, got %d", got)
	}
}
