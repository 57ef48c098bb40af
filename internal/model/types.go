// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// PartOfSpeech is the grammatical category of a word.
type PartOfSpeech string

// Part-of-speech codes as they appear in word files.
const (
	Noun      PartOfSpeech = "noun"
	Verb      PartOfSpeech = "verb"
	Adjective PartOfSpeech = "adjective"
	Adverb    PartOfSpeech = "adverb"
)

// PartsOfSpeech lists every category in canonical display order.
var PartsOfSpeech = []PartOfSpeech{Noun, Verb, Adjective, Adverb}

// ParsePartOfSpeech converts a code into a PartOfSpeech.
func ParsePartOfSpeech(code string) (PartOfSpeech, error) {
	pos := PartOfSpeech(strings.ToLower(strings.TrimSpace(code)))
	for _, known := range PartsOfSpeech {
		if pos == known {
			return pos, nil
		}
	}
	return "", fmt.Errorf("unknown part of speech %q", code)
}

// WordEntry is a single quiz item. Entries are never mutated after loading.
type WordEntry struct {
	Word         string       `json:"word" toml:"word"`
	Meaning      string       `json:"meaning,omitempty" toml:"meaning"`
	PartOfSpeech PartOfSpeech `json:"partOfSpeech" toml:"part-of-speech"`
}

// QuestionMode selects what the quiz asks about a word.
type QuestionMode int

// Question modes.
const (
	ModeVocabulary QuestionMode = iota
	ModePartOfSpeech
)

// String returns the short code used in config files and the store.
func (m QuestionMode) String() string {
	switch m {
	case ModeVocabulary:
		return "vocab"
	case ModePartOfSpeech:
		return "pos"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseQuestionMode converts a short code into a QuestionMode.
func ParseQuestionMode(code string) (QuestionMode, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "vocab", "vocabulary":
		return ModeVocabulary, nil
	case "pos", "part-of-speech":
		return ModePartOfSpeech, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want vocab or pos)", code)
	}
}

// AnswerOption is one choice presented for a question.
type AnswerOption struct {
	Text      string
	IsCorrect bool
}

// Labels holds display text that may be substituted by configuration.
type Labels struct {
	PartsOfSpeech map[PartOfSpeech]string
	VocabQuestion string
	POSQuestion   string
}

// DefaultLabels returns the built-in English labels.
func DefaultLabels() Labels {
	return Labels{
		PartsOfSpeech: map[PartOfSpeech]string{
			Noun:      "noun",
			Verb:      "verb",
			Adjective: "adjective",
			Adverb:    "adverb",
		},
		VocabQuestion: "What does %q mean?",
		POSQuestion:   "What part of speech is %q?",
	}
}

// POSLabel returns the display label for a category, falling back to its code.
func (l Labels) POSLabel(pos PartOfSpeech) string {
	if label, ok := l.PartsOfSpeech[pos]; ok && label != "" {
		return label
	}
	return string(pos)
}

// QuizConfig defines quiz settings.
type QuizConfig struct {
	WordsPath  string
	TimeLimit  int
	TimeLimits []int
	Mode       *QuestionMode
	History    bool
	Seed       int64
	Labels     Labels
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Mode   string
	Since  *time.Time
	Last   int
	Window int
}

// Outcome is how a single question ended.
type Outcome string

// Question outcomes.
const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeTimeout   Outcome = "timeout"
)

// WordOutcome records the result of one question in a finished session.
type WordOutcome struct {
	Word    string
	Outcome Outcome
}

// ResultRecord captures a completed quiz session.
type ResultRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Mode       QuestionMode
	TimeLimit  int
	WordSource string
	Total      int
	Correct    int
	Incorrect  int
	Timeouts   int
	DurationMs int64
}

// ResultAggregate summarizes a stored session for reporting.
type ResultAggregate struct {
	ResultID   int64
	EndedAt    time.Time
	Mode       string
	TimeLimit  int
	Correct    int
	Incorrect  int
	Timeouts   int
	DurationMs int64
}

// WordAggregate aggregates outcomes for one word across sessions.
type WordAggregate struct {
	Word      string
	Correct   int
	Incorrect int
	Timeouts  int
}
