// Package wordlist loads quiz word data from files or the built-in list.
package wordlist

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
)

// BuiltinSource is the source name reported for the embedded list.
const BuiltinSource = "builtin"

//go:embed default_words.json
var defaultWords []byte

// ErrEmpty is returned when a source contains no entries.
var ErrEmpty = errors.New("word list is empty")

type rawEntry struct {
	Word         string `json:"word" toml:"word"`
	Meaning      string `json:"meaning" toml:"meaning"`
	PartOfSpeech string `json:"partOfSpeech" toml:"part-of-speech"`
}

type tomlFile struct {
	Words []rawEntry `toml:"word"`
}

// Load reads entries from path, or the built-in list when path is empty or
// BuiltinSource. The format is chosen by extension: .json, .toml, or
// tab-separated lines (word, part of speech, meaning) for anything else.
func Load(path string) ([]model.WordEntry, error) {
	if path == "" || path == BuiltinSource {
		return Builtin()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var raw []rawEntry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		raw, err = decodeJSON(file)
	case ".toml":
		raw, err = decodeTOML(file)
	default:
		raw, err = decodeTSV(file)
	}
	if err != nil {
		return nil, err
	}
	return convert(raw)
}

// Builtin returns the embedded default word list.
func Builtin() ([]model.WordEntry, error) {
	raw, err := decodeJSON(bytes.NewReader(defaultWords))
	if err != nil {
		return nil, fmt.Errorf("failed to decode builtin list: %w", err)
	}
	return convert(raw)
}

func decodeJSON(r io.Reader) ([]rawEntry, error) {
	var raw []rawEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON word list: %w", err)
	}
	return raw, nil
}

func decodeTOML(r io.Reader) ([]rawEntry, error) {
	var f tomlFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode TOML word list: %w", err)
	}
	return f.Words, nil
}

func decodeTSV(r io.Reader) ([]rawEntry, error) {
	var raw []rawEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected word<TAB>part-of-speech[<TAB>meaning]", lineNo)
		}
		entry := rawEntry{Word: fields[0], PartOfSpeech: fields[1]}
		if len(fields) > 2 {
			entry.Meaning = strings.Join(fields[2:], "\t")
		}
		raw = append(raw, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

func convert(raw []rawEntry) ([]model.WordEntry, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	entries := make([]model.WordEntry, 0, len(raw))
	for i, r := range raw {
		entry, err := normalize(r)
		if err != nil {
			return nil, &EntryError{Index: i, Word: r.Word, Err: err}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
