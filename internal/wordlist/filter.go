package wordlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
)

// EntryError reports a malformed entry in a word source.
type EntryError struct {
	Index int
	Word  string
	Err   error
}

func (e *EntryError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("entry %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("entry %d (%q): %v", e.Index+1, e.Word, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

var errMissingWord = errors.New("missing word")

func normalize(r rawEntry) (model.WordEntry, error) {
	word := strings.TrimSpace(r.Word)
	if word == "" {
		return model.WordEntry{}, errMissingWord
	}
	pos, err := model.ParsePartOfSpeech(r.PartOfSpeech)
	if err != nil {
		return model.WordEntry{}, err
	}
	return model.WordEntry{
		Word:         word,
		Meaning:      strings.TrimSpace(r.Meaning),
		PartOfSpeech: pos,
	}, nil
}

// Counts returns the number of entries per part of speech.
func Counts(entries []model.WordEntry) map[model.PartOfSpeech]int {
	counts := make(map[model.PartOfSpeech]int, len(model.PartsOfSpeech))
	for _, e := range entries {
		counts[e.PartOfSpeech]++
	}
	return counts
}

// MissingMeanings returns the words that have no meaning.
func MissingMeanings(entries []model.WordEntry) []string {
	var missing []string
	for _, e := range entries {
		if e.Meaning == "" {
			missing = append(missing, e.Word)
		}
	}
	return missing
}

// DistinctMeanings returns the number of distinct non-empty meanings.
func DistinctMeanings(entries []model.WordEntry) int {
	seen := map[string]struct{}{}
	for _, e := range entries {
		if e.Meaning != "" {
			seen[e.Meaning] = struct{}{}
		}
	}
	return len(seen)
}
