package generator

import (
	"fmt"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
)

// VocabularyOptionCount is the number of choices shown in vocabulary mode.
const VocabularyOptionCount = 4

// PlaceholderFormat labels padding options when the pool is too small.
const PlaceholderFormat = "no data %d"

// Options builds the answer choices for pool[current] in the given mode.
func (g *Generator) Options(mode model.QuestionMode, pool []model.WordEntry, current int, labels model.Labels) []model.AnswerOption {
	if current < 0 || current >= len(pool) {
		return nil
	}
	if mode == model.ModePartOfSpeech {
		return PartOfSpeechOptions(pool[current], labels)
	}
	return g.VocabularyOptions(pool, current)
}

// VocabularyOptions returns the correct meaning of pool[current] and up to
// three distractor meanings in random order. Option texts are unique.
func (g *Generator) VocabularyOptions(pool []model.WordEntry, current int) []model.AnswerOption {
	correct := pool[current].Meaning
	options := make([]model.AnswerOption, 0, VocabularyOptionCount)
	options = append(options, model.AnswerOption{Text: correct, IsCorrect: true})
	seen := map[string]struct{}{correct: {}}

	others := make([]model.WordEntry, 0, len(pool))
	for i, entry := range pool {
		if i != current {
			others = append(others, entry)
		}
	}

	add := func(meaning string) {
		if meaning == "" {
			return
		}
		if _, dup := seen[meaning]; dup {
			return
		}
		seen[meaning] = struct{}{}
		options = append(options, model.AnswerOption{Text: meaning})
	}

	for _, entry := range Shuffle(g, others) {
		if len(options) >= VocabularyOptionCount {
			break
		}
		add(entry.Meaning)
	}
	// Fallback scan from the end of the pool.
	for i := len(others) - 1; i >= 0 && len(options) < VocabularyOptionCount; i-- {
		add(others[i].Meaning)
	}
	for len(options) < VocabularyOptionCount {
		text := fmt.Sprintf(PlaceholderFormat, len(options))
		if _, dup := seen[text]; dup {
			text = fmt.Sprintf("%s (%d)", text, len(seen))
		}
		seen[text] = struct{}{}
		options = append(options, model.AnswerOption{Text: text})
	}
	return Shuffle(g, options)
}

// PartOfSpeechOptions returns every category in canonical order with the
// word's own category marked correct. The order is never randomized.
func PartOfSpeechOptions(entry model.WordEntry, labels model.Labels) []model.AnswerOption {
	options := make([]model.AnswerOption, 0, len(model.PartsOfSpeech))
	for _, pos := range model.PartsOfSpeech {
		options = append(options, model.AnswerOption{
			Text:      labels.POSLabel(pos),
			IsCorrect: pos == entry.PartOfSpeech,
		})
	}
	return options
}

// CorrectText returns the text of the first correct option.
func CorrectText(options []model.AnswerOption) string {
	for _, opt := range options {
		if opt.IsCorrect {
			return opt.Text
		}
	}
	return ""
}
