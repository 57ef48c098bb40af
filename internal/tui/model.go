// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruri-sayo/word-test-KAI/internal/generator"
	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/quiz"
	statsPkg "github.com/ruri-sayo/word-test-KAI/internal/stats"
	"github.com/ruri-sayo/word-test-KAI/internal/store"
	"github.com/ruri-sayo/word-test-KAI/internal/timer"
	"github.com/ruri-sayo/word-test-KAI/internal/wordlist"
)

type tickMsg struct {
	id timer.TaskID
}

// Model implements the Bubble Tea quiz UI. It is the single event loop
// that drives the engine: key presses and countdown ticks both arrive
// as messages.
type Model struct {
	config model.QuizConfig
	store  *store.Store
	engine *quiz.Engine
	source string

	keys keyMap
	help help.Model

	width  int
	height int

	loadErr error
	modes   []model.QuestionMode
	cursor  int
	pending []timer.TaskID

	summary *quiz.Summary
	saved   bool
	saveErr string

	lastAcc   float64
	hasLast   bool
	allAcc    float64
	allRight  int
	allWrong  int
	hasAll    bool
	sessCount int
}

// NewModel constructs a quiz TUI model. A nil store disables history.
// An empty word list yields a model that only shows an error screen.
func NewModel(cfg model.QuizConfig, st *store.Store, gen *generator.Generator, words []model.WordEntry, source string) *Model {
	m := &Model{
		config: cfg,
		store:  st,
		source: source,
		keys:   newKeyMap(),
		help:   help.New(),
		modes:  []model.QuestionMode{model.ModeVocabulary, model.ModePartOfSpeech},
	}
	if len(words) == 0 {
		m.loadErr = wordlist.ErrEmpty
		return m
	}
	m.engine = quiz.New(words, gen, quiz.Settings{
		TimeLimit: cfg.TimeLimit,
		Labels:    cfg.Labels,
	}, quiz.SchedulerFunc(m.schedule), quiz.NotifierFunc(m.handleEvent))
	m.cursor = m.firstAvailableMode()
	m.loadFooterStats()
	m.startPreselected()
	return m
}

// SetLogger directs engine transition logging to l.
func (m *Model) SetLogger(l *log.Logger) {
	if m.engine != nil {
		m.engine.SetLogger(l)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.flushTicks()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.engine == nil {
			return m, nil
		}
		m.engine.Tick(msg.id)
		return m, m.flushTicks()
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.flushTicks())
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.engine == nil {
		return nil
	}
	snap := m.engine.Snapshot()
	if key.Matches(msg, m.keys.Limit) {
		m.engine.SetTimeLimit(nextTimeLimit(m.config.TimeLimits, m.engine.TimeLimit()))
		return nil
	}
	switch snap.Phase {
	case quiz.PhaseModeSelect:
		m.handleModeSelectKey(msg)
	case quiz.PhaseUnanswered:
		m.handleQuestionKey(msg, snap)
	case quiz.PhaseAnswered:
		switch {
		case key.Matches(msg, m.keys.Pause):
			m.engine.TogglePause()
		case key.Matches(msg, m.keys.Home):
			m.engine.ReturnHome()
		case key.Matches(msg, m.keys.Next):
			m.engine.Advance()
		}
	case quiz.PhaseComplete:
		switch {
		case key.Matches(msg, m.keys.Restart):
			mode := snap.Mode
			m.engine.Restart()
			m.engine.SelectMode(mode)
		case key.Matches(msg, m.keys.Home):
			m.engine.ReturnHome()
		}
	}
	return nil
}

func (m *Model) handleModeSelectKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = m.moveModeCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = m.moveModeCursor(1)
	case key.Matches(msg, m.keys.Submit):
		m.engine.SelectMode(m.modes[m.cursor])
	case key.Matches(msg, m.keys.Choose):
		if idx := digitIndex(msg); idx >= 0 && idx < len(m.modes) {
			m.engine.SelectMode(m.modes[idx])
		}
	}
}

func (m *Model) handleQuestionKey(msg tea.KeyMsg, snap quiz.Snapshot) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.engine.TogglePause()
	case key.Matches(msg, m.keys.Home):
		m.engine.ReturnHome()
	case snap.Paused:
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(snap.Options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Submit):
		m.engine.SubmitAnswer(m.cursor)
	case key.Matches(msg, m.keys.Choose):
		if idx := digitIndex(msg); idx >= 0 {
			m.cursor = min(idx, max(0, len(snap.Options)-1))
			m.engine.SubmitAnswer(idx)
		}
	}
}

func (m *Model) schedule(id timer.TaskID) {
	m.pending = append(m.pending, id)
}

func (m *Model) flushTicks() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, id := range m.pending {
		cmds = append(cmds, tickCmd(id))
	}
	m.pending = m.pending[:0]
	return tea.Batch(cmds...)
}

func tickCmd(id timer.TaskID) tea.Cmd {
	return tea.Tick(timer.Period, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *Model) handleEvent(ev quiz.Event) {
	switch ev.Type {
	case quiz.EventModeSelect:
		m.summary = nil
		m.saved = false
		m.saveErr = ""
		m.cursor = m.firstAvailableMode()
	case quiz.EventQuestion:
		m.cursor = 0
	case quiz.EventComplete:
		if ev.Summary != nil {
			summary := *ev.Summary
			m.summary = &summary
			m.finishSession(summary)
		}
	}
}

func (m *Model) startPreselected() {
	if m.config.Mode == nil {
		return
	}
	m.engine.SelectMode(*m.config.Mode)
}

func (m *Model) finishSession(summary quiz.Summary) {
	m.lastAcc = statsPkg.Accuracy(summary.Correct, summary.Incorrect)
	m.hasLast = true
	m.allRight += summary.Correct
	m.allWrong += summary.Incorrect
	m.sessCount++
	m.recomputeAllTime()

	if m.store == nil || !m.config.History {
		return
	}
	rec := model.ResultRecord{
		StartedAt:  summary.StartedAt,
		EndedAt:    summary.EndedAt,
		Mode:       summary.Mode,
		TimeLimit:  summary.TimeLimit,
		WordSource: m.source,
		Total:      summary.Total,
		Correct:    summary.Correct,
		Incorrect:  summary.Incorrect,
		Timeouts:   summary.Timeouts,
		DurationMs: summary.EndedAt.Sub(summary.StartedAt).Milliseconds(),
	}
	if _, err := m.store.InsertResult(context.Background(), rec, summary.Outcomes); err != nil {
		m.saveErr = fmt.Sprintf("failed to save result: %v", err)
		return
	}
	m.saved = true
}

func (m *Model) loadFooterStats() {
	if m.store == nil || !m.config.History {
		return
	}
	results, err := m.store.ListResults(context.Background(), model.HistoryConfig{})
	if err != nil {
		logErrf("failed to load result history: %v\n", err)
		return
	}
	if len(results) == 0 {
		return
	}
	last := results[len(results)-1]
	m.lastAcc = statsPkg.Accuracy(last.Correct, last.Incorrect)
	m.hasLast = true
	for _, r := range results {
		m.allRight += r.Correct
		m.allWrong += r.Incorrect
	}
	m.sessCount = len(results)
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	m.allAcc = statsPkg.Accuracy(m.allRight, m.allWrong)
	m.hasAll = m.allRight+m.allWrong > 0
}

func (m *Model) firstAvailableMode() int {
	for i, mode := range m.modes {
		if m.engine.ModeAvailable(mode) {
			return i
		}
	}
	return 0
}

func (m *Model) moveModeCursor(delta int) int {
	next := m.cursor
	for range m.modes {
		next = (next + delta + len(m.modes)) % len(m.modes)
		if m.engine.ModeAvailable(m.modes[next]) {
			return next
		}
	}
	return m.cursor
}

func digitIndex(msg tea.KeyMsg) int {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return -1
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return -1
	}
	return int(r - '1')
}

// nextTimeLimit cycles through the allowed limits in order.
func nextTimeLimit(limits []int, current int) int {
	if len(limits) == 0 {
		return current
	}
	for i, v := range limits {
		if v == current {
			return limits[(i+1)%len(limits)]
		}
	}
	return limits[0]
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
