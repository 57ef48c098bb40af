// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns the share of correct answers in [0, 1].
func Accuracy(correct, incorrect int) float64 {
	den := correct + incorrect
	if den <= 0 {
		return 0
	}
	return float64(correct) / float64(den)
}

// ResultMetrics computes accuracy and mean seconds per question for a result.
func ResultMetrics(r model.ResultAggregate) (accuracy, secsPerQuestion float64) {
	accuracy = Accuracy(r.Correct, r.Incorrect)
	total := r.Correct + r.Incorrect
	if total > 0 && r.DurationMs > 0 {
		secsPerQuestion = float64(r.DurationMs) / 1000.0 / float64(total)
	}
	return accuracy, secsPerQuestion
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints aggregate figures for results.
func RenderSummary(w io.Writer, results []model.ResultAggregate) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	var totalAcc float64
	best := 0.0
	questions, timeouts := 0, 0
	for _, r := range results {
		acc, _ := ResultMetrics(r)
		totalAcc += acc
		best = max(best, acc)
		questions += r.Correct + r.Incorrect
		timeouts += r.Timeouts
	}
	count := float64(len(results))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(results)),
		fmt.Sprintf("Questions: %d", questions),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count*100),
		fmt.Sprintf("Best Accuracy: %.2f%%", best*100),
		fmt.Sprintf("Timeouts: %d", timeouts),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurve prints the moving-average accuracy sparkline, keeping only
// as many recent sessions as fit in width. A width of 0 disables trimming.
func RenderCurve(w io.Writer, results []model.ResultAggregate, window, width int) error {
	if len(results) == 0 {
		return nil
	}
	accs := make([]float64, len(results))
	for i, r := range results {
		accs[i], _ = ResultMetrics(r)
	}
	accs = MovingAverage(accs, window)
	const label = "Accuracy "
	if avail := width - runewidth.StringWidth(label); width > 0 && avail > 0 && len(accs) > avail {
		accs = accs[len(accs)-avail:]
	}
	if _, err := fmt.Fprintln(w, "Learning Curve"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, label+Sparkline(accs)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistoryTable prints one row per result, oldest first.
func RenderHistoryTable(w io.Writer, results []model.ResultAggregate) error {
	if len(results) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	headers := []string{"Ended", "Mode", "Limit", "Correct", "Incorrect", "Timeouts", "Accuracy"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, HistoryRow(r))
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// HistoryRow formats a result as table cells.
func HistoryRow(r model.ResultAggregate) []string {
	acc, _ := ResultMetrics(r)
	return []string{
		r.EndedAt.Local().Format("2006-01-02 15:04"),
		r.Mode,
		FormatLimit(r.TimeLimit),
		fmt.Sprintf("%d", r.Correct),
		fmt.Sprintf("%d", r.Incorrect),
		fmt.Sprintf("%d", r.Timeouts),
		fmt.Sprintf("%.1f%%", acc*100),
	}
}

// FormatLimit renders a time limit, with 0 shown as unlimited.
func FormatLimit(seconds int) string {
	if seconds <= 0 {
		return "--"
	}
	return fmt.Sprintf("%ds", seconds)
}

// RenderWordTable prints per-word aggregates, most missed first.
func RenderWordTable(w io.Writer, aggs []model.WordAggregate, limit int) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	missed := MostMissedWords(aggs, limit)
	if len(missed) == 0 {
		_, err := fmt.Fprintln(w, "No missed words.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Most Missed (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Word", "Accuracy", "Correct", "Incorrect", "Timeouts"}
	rows := make([][]string, 0, len(missed))
	for _, agg := range missed {
		rows = append(rows, []string{
			agg.Word,
			fmt.Sprintf("%.2f%%", wordAccuracy(agg)*100),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
			fmt.Sprintf("%d", agg.Timeouts),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// ModeBreakdown counts results per mode, sorted by mode name.
func ModeBreakdown(results []model.ResultAggregate) []ModeCount {
	counts := map[string]*ModeCount{}
	for _, r := range results {
		c, ok := counts[r.Mode]
		if !ok {
			c = &ModeCount{Mode: r.Mode}
			counts[r.Mode] = c
		}
		c.Sessions++
		c.Correct += r.Correct
		c.Incorrect += r.Incorrect
	}
	out := make([]ModeCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out
}

// ModeCount totals results for one question mode.
type ModeCount struct {
	Mode      string
	Sessions  int
	Correct   int
	Incorrect int
}
