package stats

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
	"github.com/ruri-sayo/word-test-KAI/internal/store"
)

const terminalWidthBackup = 80

// Report contains precomputed data for history rendering.
type Report struct {
	Results         []model.ResultAggregate
	WindowResultIDs []int64
	WordAggsAll     []model.WordAggregate
	WordAggsWindow  []model.WordAggregate
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	results, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}

	windowIDs := lastResultIDs(results, cfg.Window)
	wordAggsAll, err := st.ListWordAggregates(ctx, resultIDs(results))
	if err != nil {
		return Report{}, err
	}
	wordAggsWindow, err := st.ListWordAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Results:         results,
		WindowResultIDs: windowIDs,
		WordAggsAll:     wordAggsAll,
		WordAggsWindow:  wordAggsWindow,
	}, nil
}

// TerminalWidth returns the stdout width, or 80 when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func resultIDs(results []model.ResultAggregate) []int64 {
	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.ResultID
	}
	return ids
}

func lastResultIDs(results []model.ResultAggregate, window int) []int64 {
	if window <= 0 || len(results) <= window {
		return resultIDs(results)
	}
	return resultIDs(results[len(results)-window:])
}
