package fuzzy

import (
	"fmt"
	"testing"

	"github.com/clipvault/clipvault/internal/store"
)

func makeTextEntry(id int64, text string) *store.Entry {
	return &store.Entry{
		ID:          id,
		ContentType: store.ContentTypeText,
		TextContent: text,
		Hash:        fmt.Sprintf("h%d", id),
	}
}

func ids(entries []*store.Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankEmptyQueryPreservesOrder(t *testing.T) {
	entries := []*store.Entry{
		makeTextEntry(1, "alpha"),
		makeTextEntry(2, "beta"),
		makeTextEntry(3, "gamma"),
	}

	got := Rank(entries, "   ")
	if !equalIDs(ids(got), []int64{1, 2, 3}) {
		t.Errorf("Rank with whitespace query = %v, want [1 2 3]", ids(got))
	}
}

func TestRankEmptyInput(t *testing.T) {
	if got := Rank(nil, "anything"); len(got) != 0 {
		t.Errorf("Rank(nil, ...) = %v, want empty", ids(got))
	}
}

func TestRankOrdersByScore(t *testing.T) {
	entries := []*store.Entry{
		makeTextEntry(1, "abc"),
		makeTextEntry(2, "aXbYc"),
		makeTextEntry(3, "a b c"),
	}

	got := Rank(entries, "abc")
	// Fully consecutive beats word-boundary matches, which beat gapped
	// matches.
	if !equalIDs(ids(got), []int64{1, 3, 2}) {
		t.Errorf("Rank = %v, want [1 3 2]", ids(got))
	}
}

func TestRankExcludesOutOfOrderMatches(t *testing.T) {
	entries := []*store.Entry{
		makeTextEntry(1, "clipboard"),
		makeTextEntry(2, "history"),
		makeTextEntry(3, "boardclip"),
	}

	got := Rank(entries, "cbd")
	if !equalIDs(ids(got), []int64{1}) {
		t.Errorf("Rank = %v, want [1]", ids(got))
	}
}

func TestRankIsCaseInsensitive(t *testing.T) {
	entries := []*store.Entry{makeTextEntry(1, "Hello World")}

	got := Rank(entries, "HELLO")
	if !equalIDs(ids(got), []int64{1}) {
		t.Errorf("Rank = %v, want [1]", ids(got))
	}
}

func TestRankStableOnTies(t *testing.T) {
	entries := []*store.Entry{
		makeTextEntry(1, "abc"),
		makeTextEntry(2, "abc"),
		makeTextEntry(3, "abc"),
	}

	got := Rank(entries, "abc")
	if !equalIDs(ids(got), []int64{1, 2, 3}) {
		t.Errorf("equal scores should keep input order, got %v", ids(got))
	}
}

func TestScoreRejectsPatternLongerThanText(t *testing.T) {
	if _, ok := Score([]rune("abcdef"), "abc"); ok {
		t.Error("pattern longer than text should not match")
	}
}

func TestScoreConsecutiveBonusAccumulates(t *testing.T) {
	// "abc" in "abc": a=1+1.5 (start), b=1+2, c=1+4 -> 10.5
	score, ok := Score([]rune("abc"), "abc")
	if !ok {
		t.Fatal("expected match")
	}
	if score != 10.5 {
		t.Errorf("Score = %v, want 10.5", score)
	}
}

func TestScoreWordBoundaryBonus(t *testing.T) {
	// "a b c": each letter starts the text or follows a space:
	// a=1+1.5, b=1-0.1+1.5, c=1-0.1+1.5 -> 7.3
	score, ok := Score([]rune("abc"), "a b c")
	if !ok {
		t.Fatal("expected match")
	}
	if diff := score - 7.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Score = %v, want 7.3", score)
	}
}

func TestScoreGapPenalty(t *testing.T) {
	// "aXbYc": a=1+1.5, b=1-0.1, c=1-0.1 -> 4.3
	score, ok := Score([]rune("abc"), "aXbYc")
	if !ok {
		t.Fatal("expected match")
	}
	if diff := score - 4.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Score = %v, want 4.3", score)
	}
}

func TestRankMatchesImageLabel(t *testing.T) {
	entries := []*store.Entry{
		{ID: 1, ContentType: store.ContentTypeImage, ImageData: []byte{0x89}},
		makeTextEntry(2, "plain text"),
	}

	got := Rank(entries, "image")
	if !equalIDs(ids(got), []int64{1}) {
		t.Errorf("Rank = %v, want [1] (image entries match their label)", ids(got))
	}
}
