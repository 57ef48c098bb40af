package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "results.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		rec := model.ResultRecord{
			StartedAt:  start,
			EndedAt:    end,
			Mode:       model.ModeVocabulary,
			TimeLimit:  10,
			WordSource: "dummy",
			Total:      2,
			Correct:    1,
			Incorrect:  1,
			Timeouts:   1,
			DurationMs: end.Sub(start).Milliseconds(),
		}
		words := []model.WordOutcome{
			{Word: "apple", Outcome: model.OutcomeCorrect},
			{Word: "run", Outcome: model.OutcomeTimeout},
		}
		id, err := st.InsertResult(ctx, rec, words)
		if err != nil {
			t.Fatalf("insert result: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.HistoryConfig{
		Mode:   "vocab",
		Last:   2,
		Window: 1,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].ResultID != ids[1] || report.Results[1].ResultID != ids[2] {
		t.Fatalf("unexpected result ids: %+v", report.Results)
	}
	if len(report.WindowResultIDs) != 1 || report.WindowResultIDs[0] != ids[2] {
		t.Fatalf("unexpected window ids: %v", report.WindowResultIDs)
	}
	if len(report.WordAggsAll) != 2 {
		t.Fatalf("expected word aggregates for all results, got %d", len(report.WordAggsAll))
	}
	for _, agg := range report.WordAggsAll {
		if agg.Word == "run" && (agg.Incorrect != 2 || agg.Timeouts != 2) {
			t.Fatalf("unexpected aggregate for run: %+v", agg)
		}
	}
	if len(report.WordAggsWindow) != 2 {
		t.Fatalf("expected word aggregates for window results, got %d", len(report.WordAggsWindow))
	}
}

func TestBuildReportModeFilter(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	if _, err := st.InsertResult(ctx, model.ResultRecord{Mode: model.ModePartOfSpeech, EndedAt: time.Unix(10, 0)}, nil); err != nil {
		t.Fatalf("insert result: %v", err)
	}
	report, err := BuildReport(ctx, st, model.HistoryConfig{Mode: "vocab"})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Results) != 0 {
		t.Fatalf("expected no vocab results, got %d", len(report.Results))
	}
}
