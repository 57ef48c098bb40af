package quiz

import (
	"time"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/timer"
)

// EventType defines the type of engine notification.
type EventType string

// Engine notifications.
const (
	EventModeSelect EventType = "mode_select"
	EventQuestion   EventType = "question"
	EventAnswered   EventType = "answered"
	EventScore      EventType = "score"
	EventTimer      EventType = "timer"
	EventPause      EventType = "pause"
	EventSettings   EventType = "settings"
	EventComplete   EventType = "complete"
)

// Feedback categorizes how a question was answered.
type Feedback string

// Feedback categories.
const (
	FeedbackNone      Feedback = ""
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
	FeedbackTimeout   Feedback = "timeout"
)

// Event is a state-change notification for the presentation layer.
type Event struct {
	Type        EventType
	Question    string
	Options     []model.AnswerOption
	Index       int
	Total       int
	Feedback    Feedback
	CorrectText string
	Selected    int
	Correct     int
	Incorrect   int
	Remaining   int
	Unlimited   bool
	Paused      bool
	TimeLimit   int
	Summary     *Summary
}

// Summary describes a completed session.
type Summary struct {
	Mode      model.QuestionMode
	TimeLimit int
	Total     int
	Correct   int
	Incorrect int
	Timeouts  int
	Outcomes  []model.WordOutcome
	StartedAt time.Time
	EndedAt   time.Time
}

// Notifier receives engine events.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify implements Notifier.
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// Scheduler delivers a tick for the given task one timer.Period from now
// by calling Engine.Tick on the event loop.
type Scheduler interface {
	Schedule(id timer.TaskID)
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(id timer.TaskID)

// Schedule implements Scheduler.
func (f SchedulerFunc) Schedule(id timer.TaskID) {
	f(id)
}
