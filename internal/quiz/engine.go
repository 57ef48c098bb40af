// Package quiz implements the quiz session state machine.
//
// The Engine is not safe for concurrent use. Every entry point, including
// Tick, must be called from the same event loop. Operations invoked in a
// state where they do not apply are silently ignored.
package quiz

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ruri-sayo/word-test-KAI/internal/generator"
	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/timer"
)

// Phase is the coarse state of the engine.
type Phase int

// Engine phases.
const (
	PhaseModeSelect Phase = iota
	PhaseUnanswered
	PhaseAnswered
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseModeSelect:
		return "mode-select"
	case PhaseUnanswered:
		return "question"
	case PhaseAnswered:
		return "answered"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SessionState is the mutable state of one quiz run.
type SessionState struct {
	Mode          model.QuestionMode
	QuestionOrder []int
	CurrentIndex  int
	Correct       int
	Incorrect     int
	Timeouts      int
	IsPaused      bool
	IsAnswered    bool

	options     []model.AnswerOption
	selected    int
	feedback    Feedback
	outcomes    []model.WordOutcome
	startedAt   time.Time
	endedAt     time.Time
	activeLimit int
}

// Complete reports whether every question has been advanced past.
func (s *SessionState) Complete() bool {
	return s.CurrentIndex >= len(s.QuestionOrder)
}

// Settings configures an Engine.
type Settings struct {
	TimeLimit int
	Labels    model.Labels
}

// Engine owns the session state and orchestrates option generation and
// the countdown.
type Engine struct {
	words     []model.WordEntry
	gen       *generator.Generator
	labels    model.Labels
	scheduler Scheduler
	notifier  Notifier
	logger    *log.Logger
	now       func() time.Time

	timeLimit int
	countdown *timer.Countdown
	session   *SessionState
}

// New constructs an Engine in the mode-select phase.
func New(words []model.WordEntry, gen *generator.Generator, settings Settings, scheduler Scheduler, notifier Notifier) *Engine {
	if settings.Labels.PartsOfSpeech == nil {
		settings.Labels = model.DefaultLabels()
	}
	if settings.TimeLimit < 0 {
		settings.TimeLimit = 0
	}
	e := &Engine{
		words:     words,
		gen:       gen,
		labels:    settings.Labels,
		scheduler: scheduler,
		notifier:  notifier,
		logger:    log.New(io.Discard, "", 0),
		now:       time.Now,
		timeLimit: settings.TimeLimit,
	}
	e.countdown = timer.New(e.HandleTimeout)
	return e
}

// SetLogger directs transition logging to l.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// SetClock overrides the time source used for session timestamps.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	switch {
	case e.session == nil:
		return PhaseModeSelect
	case e.session.Complete():
		return PhaseComplete
	case e.session.IsAnswered:
		return PhaseAnswered
	default:
		return PhaseUnanswered
	}
}

// TimeLimit returns the limit that the next question will start with.
func (e *Engine) TimeLimit() int {
	return e.timeLimit
}

// Words returns the loaded word pool.
func (e *Engine) Words() []model.WordEntry {
	return e.words
}

// ModeAvailable reports whether a session can be started in mode.
// Vocabulary mode needs a meaning for every word.
func (e *Engine) ModeAvailable(mode model.QuestionMode) bool {
	if len(e.words) == 0 {
		return false
	}
	if mode != model.ModeVocabulary {
		return true
	}
	for _, w := range e.words {
		if w.Meaning == "" {
			return false
		}
	}
	return true
}

// SelectMode starts a new session with a freshly shuffled question order.
func (e *Engine) SelectMode(mode model.QuestionMode) {
	if e.session != nil || !e.ModeAvailable(mode) {
		return
	}
	e.session = &SessionState{
		Mode:          mode,
		QuestionOrder: e.gen.Perm(len(e.words)),
		startedAt:     e.now(),
	}
	e.logger.Printf("session started: mode=%s questions=%d limit=%d", mode, len(e.words), e.timeLimit)
	e.loadQuestion()
}

// SubmitAnswer evaluates the option at index for the active question.
func (e *Engine) SubmitAnswer(index int) {
	s := e.session
	if e.Phase() != PhaseUnanswered || s.IsPaused {
		return
	}
	if index < 0 || index >= len(s.options) {
		return
	}
	e.countdown.Stop()
	s.IsAnswered = true
	s.selected = index
	outcome := model.OutcomeIncorrect
	if s.options[index].IsCorrect {
		s.Correct++
		s.feedback = FeedbackCorrect
		outcome = model.OutcomeCorrect
	} else {
		s.Incorrect++
		s.feedback = FeedbackIncorrect
	}
	e.recordOutcome(outcome)
	e.logger.Printf("answered question %d: %s", s.CurrentIndex+1, outcome)
	e.notifyAnswered()
}

// HandleTimeout marks the active question as incorrect because time ran
// out. It is ignored once the question has been answered.
func (e *Engine) HandleTimeout() {
	s := e.session
	if e.Phase() != PhaseUnanswered {
		return
	}
	e.countdown.Stop()
	s.IsAnswered = true
	s.selected = -1
	s.Incorrect++
	s.Timeouts++
	s.feedback = FeedbackTimeout
	e.recordOutcome(model.OutcomeTimeout)
	e.logger.Printf("question %d timed out", s.CurrentIndex+1)
	e.notifyAnswered()
}

// Advance moves past an answered question, completing the session after
// the last one.
func (e *Engine) Advance() {
	s := e.session
	if e.Phase() != PhaseAnswered {
		return
	}
	if s.CurrentIndex+1 == len(s.QuestionOrder) {
		e.countdown.Stop()
		s.CurrentIndex = len(s.QuestionOrder)
		s.endedAt = e.now()
		summary := e.summary()
		e.logger.Printf("session complete: correct=%d incorrect=%d", s.Correct, s.Incorrect)
		e.notify(Event{Type: EventComplete, Correct: s.Correct, Incorrect: s.Incorrect, Summary: &summary})
		return
	}
	s.CurrentIndex++
	e.loadQuestion()
}

// TogglePause flips the pause flag of an in-progress session.
func (e *Engine) TogglePause() {
	s := e.session
	phase := e.Phase()
	if phase != PhaseUnanswered && phase != PhaseAnswered {
		return
	}
	s.IsPaused = !s.IsPaused
	if s.IsPaused {
		e.countdown.Pause()
	} else if !s.IsAnswered {
		e.countdown.Resume()
	}
	e.logger.Printf("paused=%v", s.IsPaused)
	e.notify(Event{Type: EventPause, Paused: s.IsPaused})
	e.notifyTimer()
}

// SetTimeLimit changes the limit for questions loaded from now on. The
// running countdown is not affected. Negative values are ignored.
func (e *Engine) SetTimeLimit(seconds int) {
	if seconds < 0 {
		return
	}
	e.timeLimit = seconds
	e.notify(Event{Type: EventSettings, TimeLimit: seconds})
}

// ReturnHome discards the session and goes back to mode selection.
func (e *Engine) ReturnHome() {
	e.countdown.Stop()
	if e.session != nil {
		e.logger.Printf("session discarded at question %d", e.session.CurrentIndex+1)
	}
	e.session = nil
	e.notify(Event{Type: EventModeSelect})
}

// Restart is ReturnHome under the name used by the result screen.
func (e *Engine) Restart() {
	e.ReturnHome()
}

// Tick delivers a scheduled countdown tick.
func (e *Engine) Tick(id timer.TaskID) {
	result := e.countdown.Tick(id)
	if result.Reschedule() {
		e.schedule(id)
	}
	if result == timer.TickCounted {
		e.notifyTimer()
	}
}

func (e *Engine) loadQuestion() {
	s := e.session
	wordIndex := s.QuestionOrder[s.CurrentIndex]
	s.options = e.gen.Options(s.Mode, e.words, wordIndex, e.labels)
	s.IsAnswered = false
	s.selected = -1
	s.feedback = FeedbackNone
	s.activeLimit = e.timeLimit
	if id, ok := e.countdown.Start(e.timeLimit); ok {
		if s.IsPaused {
			e.countdown.Pause()
		}
		e.schedule(id)
	}
	e.notify(Event{
		Type:     EventQuestion,
		Question: e.questionText(s.Mode, e.words[wordIndex]),
		Options:  append([]model.AnswerOption(nil), s.options...),
		Index:    s.CurrentIndex,
		Total:    len(s.QuestionOrder),
	})
	e.notifyScore()
	e.notifyTimer()
}

func (e *Engine) recordOutcome(outcome model.Outcome) {
	s := e.session
	word := e.words[s.QuestionOrder[s.CurrentIndex]].Word
	s.outcomes = append(s.outcomes, model.WordOutcome{Word: word, Outcome: outcome})
}

func (e *Engine) questionText(mode model.QuestionMode, entry model.WordEntry) string {
	if mode == model.ModePartOfSpeech {
		return fmt.Sprintf(e.labels.POSQuestion, entry.Word)
	}
	return fmt.Sprintf(e.labels.VocabQuestion, entry.Word)
}

func (e *Engine) summary() Summary {
	s := e.session
	return Summary{
		Mode:      s.Mode,
		TimeLimit: s.activeLimit,
		Total:     len(s.QuestionOrder),
		Correct:   s.Correct,
		Incorrect: s.Incorrect,
		Timeouts:  s.Timeouts,
		Outcomes:  append([]model.WordOutcome(nil), s.outcomes...),
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
}

func (e *Engine) schedule(id timer.TaskID) {
	if e.scheduler != nil {
		e.scheduler.Schedule(id)
	}
}

func (e *Engine) notify(ev Event) {
	if e.notifier != nil {
		e.notifier.Notify(ev)
	}
}

func (e *Engine) notifyAnswered() {
	s := e.session
	e.notify(Event{
		Type:        EventAnswered,
		Feedback:    s.feedback,
		CorrectText: generator.CorrectText(s.options),
		Selected:    s.selected,
		Index:       s.CurrentIndex,
		Total:       len(s.QuestionOrder),
	})
	e.notifyScore()
	e.notifyTimer()
}

func (e *Engine) notifyScore() {
	s := e.session
	e.notify(Event{Type: EventScore, Correct: s.Correct, Incorrect: s.Incorrect})
}

func (e *Engine) notifyTimer() {
	e.notify(Event{
		Type:      EventTimer,
		Remaining: e.countdown.Remaining(),
		Unlimited: e.countdown.Unlimited(),
		Paused:    e.session != nil && e.session.IsPaused,
	})
}
