// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz   QuizConfig   `toml:"quiz"`
	Labels LabelsConfig `toml:"labels"`
}

// QuizConfig maps quiz-related settings.
type QuizConfig struct {
	Words      *string `toml:"words"`
	TimeLimit  *int    `toml:"time-limit"`
	TimeLimits []int   `toml:"time-limits"`
	Mode       *string `toml:"mode"`
	History    *bool   `toml:"history"`
}

// LabelsConfig substitutes display labels.
type LabelsConfig struct {
	Noun          *string `toml:"noun"`
	Verb          *string `toml:"verb"`
	Adjective     *string `toml:"adjective"`
	Adverb        *string `toml:"adverb"`
	VocabQuestion *string `toml:"vocab-question"`
	POSQuestion   *string `toml:"pos-question"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays configured labels on top of base.
func (l LabelsConfig) Apply(base model.Labels) (model.Labels, error) {
	out := model.Labels{
		PartsOfSpeech: make(map[model.PartOfSpeech]string, len(base.PartsOfSpeech)),
		VocabQuestion: base.VocabQuestion,
		POSQuestion:   base.POSQuestion,
	}
	for k, v := range base.PartsOfSpeech {
		out.PartsOfSpeech[k] = v
	}
	set := func(pos model.PartOfSpeech, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			out.PartsOfSpeech[pos] = *v
		}
	}
	set(model.Noun, l.Noun)
	set(model.Verb, l.Verb)
	set(model.Adjective, l.Adjective)
	set(model.Adverb, l.Adverb)
	if l.VocabQuestion != nil {
		if err := checkTemplate("vocab-question", *l.VocabQuestion); err != nil {
			return model.Labels{}, err
		}
		out.VocabQuestion = *l.VocabQuestion
	}
	if l.POSQuestion != nil {
		if err := checkTemplate("pos-question", *l.POSQuestion); err != nil {
			return model.Labels{}, err
		}
		out.POSQuestion = *l.POSQuestion
	}
	seen := map[string]model.PartOfSpeech{}
	for _, pos := range model.PartsOfSpeech {
		label := out.PartsOfSpeech[pos]
		if other, dup := seen[label]; dup {
			return model.Labels{}, fmt.Errorf("labels for %s and %s must differ", other, pos)
		}
		seen[label] = pos
	}
	return out, nil
}

func checkTemplate(name, tmpl string) error {
	verbs := strings.Count(tmpl, "%s") + strings.Count(tmpl, "%q") + strings.Count(tmpl, "%v")
	if verbs != 1 || strings.Count(tmpl, "%") != 1 {
		return fmt.Errorf("%s must contain exactly one %%s placeholder", name)
	}
	return nil
}

// ValidateTimeLimits checks an enumerated time-limit set and a selection from it.
func ValidateTimeLimits(limits []int, selected int) error {
	if len(limits) == 0 {
		return fmt.Errorf("time-limits must not be empty")
	}
	hasZero := false
	found := false
	for _, l := range limits {
		if l < 0 {
			return fmt.Errorf("time-limits must be >= 0, got %d", l)
		}
		if l == 0 {
			hasZero = true
		}
		if l == selected {
			found = true
		}
	}
	if !hasZero {
		return fmt.Errorf("time-limits must include 0 (no limit)")
	}
	if !found {
		return fmt.Errorf("--time-limit must be one of %v", limits)
	}
	return nil
}
