package tui

import (
	"reflect"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextKeepsWords(t *testing.T) {
	got := wrapText("to move quickly on foot", 10)
	want := []string{"to move", "quickly on", "foot"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	got := wrapText("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	got := wrapText("素早く走ること", 6)
	for _, line := range got {
		if w := runewidth.StringWidth(line); w > 6 {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("   ", 5); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected single empty line, got %q", got)
	}
	if got := wrapText("abc", 0); len(got) != 1 || got[0] != "abc" {
		t.Fatalf("expected input for zero width, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("vocabulary", 20); got != "vocabulary" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := truncate("vocabulary", 7); got != "voca..." {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := truncate("vocabulary", 2); got != "vo" {
		t.Fatalf("unexpected short truncate: %q", got)
	}
}
