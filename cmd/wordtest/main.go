// Package main provides the CLI entrypoint for wordtest.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ruri-sayo/word-test-KAI/internal/config"
	"github.com/ruri-sayo/word-test-KAI/internal/generator"
	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/stats"
	"github.com/ruri-sayo/word-test-KAI/internal/statsui"
	"github.com/ruri-sayo/word-test-KAI/internal/store"
	"github.com/ruri-sayo/word-test-KAI/internal/tui"
	"github.com/ruri-sayo/word-test-KAI/internal/wordlist"
)

const (
	defaultTimeLimit     = 10
	defaultHistoryWindow = 10
	defaultMissedWords   = 10
)

var defaultTimeLimits = []int{0, 5, 10, 15, 20, 30}

var (
	quizWords     string
	quizTimeLimit int
	quizMode      string
	quizNoHistory bool
	quizSeed      int64
	quizDebug     string

	historyMode   string
	historySince  string
	historyLast   int
	historyWindow int
	historyPlain  bool

	wordsPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordtest",
		Short:         "TUI vocabulary and part-of-speech quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().StringVar(&quizWords, "words", "", "word file (.json, .toml or tab-separated); 'builtin' for the embedded list")
	rootCmd.Flags().IntVar(&quizTimeLimit, "time-limit", defaultTimeLimit, "seconds per question (0 = no limit)")
	rootCmd.Flags().StringVar(&quizMode, "mode", "", "start directly in a mode (vocab or pos)")
	rootCmd.Flags().BoolVar(&quizNoHistory, "no-history", false, "do not record finished sessions")
	rootCmd.Flags().Int64Var(&quizSeed, "seed", 0, "random seed for question order (0 = random)")
	rootCmd.Flags().StringVar(&quizDebug, "debug", "", "write debug log to file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "words", &quizWords, fileCfg.Quiz.Words)
	applyIntConfig(cmd, "time-limit", &quizTimeLimit, fileCfg.Quiz.TimeLimit)
	applyStringConfig(cmd, "mode", &quizMode, fileCfg.Quiz.Mode)
	history := !quizNoHistory
	applyBoolConfig(cmd, "no-history", &history, fileCfg.Quiz.History)

	labels, err := fileCfg.Labels.Apply(model.DefaultLabels())
	if err != nil {
		return fmt.Errorf("invalid [labels] config: %w", err)
	}
	limits := defaultTimeLimits
	if len(fileCfg.Quiz.TimeLimits) > 0 {
		limits = fileCfg.Quiz.TimeLimits
	}

	cfg := model.QuizConfig{
		WordsPath:  resolveWordsPath(quizWords),
		TimeLimit:  quizTimeLimit,
		TimeLimits: limits,
		History:    history,
		Seed:       quizSeed,
		Labels:     labels,
	}
	if quizMode != "" {
		mode, err := model.ParseQuestionMode(quizMode)
		if err != nil {
			return fmt.Errorf("--mode: %w", err)
		}
		cfg.Mode = &mode
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, err := wordlist.Load(cfg.WordsPath)
	if err != nil {
		return wordListLoadError(cfg.WordsPath, err)
	}
	if cfg.Mode != nil && *cfg.Mode == model.ModeVocabulary {
		if missing := wordlist.MissingMeanings(words); len(missing) > 0 {
			return fmt.Errorf("--mode vocab needs a meaning for every word (missing: %s)", strings.Join(missing, ", "))
		}
	}

	var logger *log.Logger
	if quizDebug != "" {
		f, err := tea.LogToFile(quizDebug, "wordtest")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close debug log: %v\n", cerr)
			}
		}()
		logger = log.Default()
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open db, history disabled: %v\n", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
		}
	}

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewWithSeed(cfg.Seed)
	}
	m := tui.NewModel(cfg, st, gen, words, cfg.WordsPath)
	if logger != nil {
		m.SetLogger(logger)
		logger.Printf("loaded %d words from %s", len(words), cfg.WordsPath)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Validate a word file and show its contents",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&wordsPath, "words", "", "word file to check (default: configured or built-in list)")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "words", &wordsPath, fileCfg.Quiz.Words)
	labels, err := fileCfg.Labels.Apply(model.DefaultLabels())
	if err != nil {
		return fmt.Errorf("invalid [labels] config: %w", err)
	}
	path := resolveWordsPath(wordsPath)
	words, err := wordlist.Load(path)
	if err != nil {
		return wordListLoadError(path, err)
	}
	if err := writeWordsReport(cmd.OutOrStdout(), path, words, labels); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeWordsReport(w io.Writer, path string, words []model.WordEntry, labels model.Labels) error {
	lines := []string{
		fmt.Sprintf("Source: %s", path),
		fmt.Sprintf("Entries: %d", len(words)),
	}
	counts := wordlist.Counts(words)
	for _, pos := range model.PartsOfSpeech {
		lines = append(lines, fmt.Sprintf("  %s: %d", labels.POSLabel(pos), counts[pos]))
	}
	lines = append(lines, fmt.Sprintf("Distinct meanings: %d", wordlist.DistinctMeanings(words)))
	if missing := wordlist.MissingMeanings(words); len(missing) > 0 {
		lines = append(lines, fmt.Sprintf("Missing meanings: %d (vocabulary mode unavailable)", len(missing)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show results of finished sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "mode filter (vocab or pos)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print plain text instead of the TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig(historyMode, historySince, historyLast, historyWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyPlain {
		return writeHistory(cmd.Context(), cmd.OutOrStdout(), st, cfg, stats.TerminalWidth())
	}
	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func historyConfig(mode, since string, last, window int) (model.HistoryConfig, error) {
	cfg := model.HistoryConfig{Last: last, Window: window}
	if last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return cfg, fmt.Errorf("--window must be >= 1")
	}
	if mode != "" {
		parsed, err := model.ParseQuestionMode(mode)
		if err != nil {
			return cfg, fmt.Errorf("--mode: %w", err)
		}
		cfg.Mode = parsed.String()
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func writeHistory(ctx context.Context, w io.Writer, st *store.Store, cfg model.HistoryConfig, width int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := stats.RenderSummary(w, report.Results); err != nil {
		return err
	}
	if len(report.Results) == 0 {
		return nil
	}
	if err := stats.RenderCurve(w, report.Results, cfg.Window, width); err != nil {
		return err
	}
	if err := stats.RenderHistoryTable(w, report.Results); err != nil {
		return err
	}
	return stats.RenderWordTable(w, report.WordAggsWindow, defaultMissedWords)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordtest configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# words = %q          # Word file (.json, .toml or tab-separated)
# time-limit = %d              # Seconds per question, 0 = no limit
# time-limits = %s   # Choices cycled with "t"; must include 0
# mode = "vocab"               # Skip mode selection (vocab or pos)
# history = true               # Record finished sessions

[labels]
# noun = "noun"
# verb = "verb"
# adjective = "adjective"
# adverb = "adverb"
# vocab-question = "What does %%q mean?"
# pos-question = "What part of speech is %%q?"
`,
		config.DefaultWordsPath(),
		defaultTimeLimit,
		formatLimits(defaultTimeLimits),
	)
}

func formatLimits(limits []int) string {
	parts := make([]string, len(limits))
	for i, l := range limits {
		parts[i] = fmt.Sprintf("%d", l)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func validateConfig(cfg model.QuizConfig) error {
	if cfg.TimeLimit < 0 {
		return fmt.Errorf("--time-limit must be >= 0")
	}
	return config.ValidateTimeLimits(cfg.TimeLimits, cfg.TimeLimit)
}

// resolveWordsPath picks the explicit path, then the default word file if
// it exists, then the built-in list.
func resolveWordsPath(path string) string {
	if strings.TrimSpace(path) != "" {
		return path
	}
	if _, err := os.Stat(config.DefaultWordsPath()); err == nil {
		return config.DefaultWordsPath()
	}
	return wordlist.BuiltinSource
}

func wordListLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("word list: %s", path),
	}
	var entryErr *wordlist.EntryError
	switch {
	case errors.Is(err, wordlist.ErrEmpty):
		lines = append(lines, "The word list has no entries.")
	case errors.As(err, &entryErr):
		lines = append(lines, "Each entry needs a word and a part of speech (noun, verb, adjective, adverb).")
	case errors.Is(err, os.ErrNotExist):
		lines = append(lines, "The file does not exist.")
	}
	lines = append(lines,
		fmt.Sprintf("Check: wordtest words --words %s", path),
		"Use the built-in list: wordtest --words builtin",
	)
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
