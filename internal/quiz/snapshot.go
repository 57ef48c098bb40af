package quiz

import (
	"github.com/ruri-sayo/word-test-KAI/internal/generator"
	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/timer"
)

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	Phase       Phase
	Mode        model.QuestionMode
	Word        model.WordEntry
	Question    string
	Options     []model.AnswerOption
	Index       int
	Total       int
	Correct     int
	Incorrect   int
	Timeouts    int
	Paused      bool
	Answered    bool
	Selected    int
	Feedback    Feedback
	CorrectText string
	TimeLimit   int
	Remaining   int
	Unlimited   bool
	TimerText   string
	TimerState  timer.State
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      e.Phase(),
		TimeLimit:  e.timeLimit,
		Remaining:  e.countdown.Remaining(),
		Unlimited:  e.countdown.Unlimited(),
		TimerText:  e.countdown.Display(),
		TimerState: e.countdown.State(),
		Selected:   -1,
	}
	s := e.session
	if s == nil {
		return snap
	}
	snap.Mode = s.Mode
	snap.Total = len(s.QuestionOrder)
	snap.Index = s.CurrentIndex
	snap.Correct = s.Correct
	snap.Incorrect = s.Incorrect
	snap.Timeouts = s.Timeouts
	snap.Paused = s.IsPaused
	snap.Answered = s.IsAnswered
	if s.Complete() {
		return snap
	}
	entry := e.words[s.QuestionOrder[s.CurrentIndex]]
	snap.Word = entry
	snap.Question = e.questionText(s.Mode, entry)
	snap.Options = append([]model.AnswerOption(nil), s.options...)
	snap.Selected = s.selected
	snap.Feedback = s.feedback
	if s.IsAnswered {
		snap.CorrectText = generator.CorrectText(s.options)
	}
	return snap
}

// Session returns a copy of the current session state, or false in the
// mode-select phase.
func (e *Engine) Session() (SessionState, bool) {
	if e.session == nil {
		return SessionState{}, false
	}
	s := *e.session
	s.QuestionOrder = append([]int(nil), e.session.QuestionOrder...)
	return s, true
}
