package rank

import (
	"testing"

	"github.com/govsift/govsift/internal/model"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://Example.GOV/Files/Doc.pdf", "https://example.gov/files/doc.pdf"},
		{"https://example.gov/files/doc.pdf#page=3", "https://example.gov/files/doc.pdf"},
		{"https://example.gov/files/", "https://example.gov/files"},
		{"https://example.gov/view?id=42&utm_source=news", "https://example.gov/view?id=42"},
		{"https://example.gov/view?utm_source=news&session=abc", "https://example.gov/view"},
		{"https://example.gov/get?doc=9&file=x.pdf", "https://example.gov/get?doc=9&file=x.pdf"},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.rawURL); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}

func TestDeduplicate_KeepsHigherScore(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "low", URL: "https://example.gov/doc.pdf?utm_source=a", RelevanceScore: 4.0},
		{Title: "high", URL: "https://example.gov/doc.pdf", RelevanceScore: 7.5},
		{Title: "other", URL: "https://example.gov/other.pdf", RelevanceScore: 3.0},
	}

	out := Deduplicate(candidates)
	if len(out) != 2 {
		t.Fatalf("got %d candidates, want 2", len(out))
	}
	if out[0].Title != "high" {
		t.Errorf("kept %q, want the higher-scoring variant", out[0].Title)
	}
	if out[1].Title != "other" {
		t.Errorf("first-seen order broken: got %q at position 1", out[1].Title)
	}
}

func TestDeduplicate_EqualScoreTieBreak(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "Zebra copy", URL: "https://example.gov/doc.pdf", RelevanceScore: 5.0},
		{Title: "Alpha copy", URL: "https://example.gov/doc.pdf#frag", RelevanceScore: 5.0},
	}

	out := Deduplicate(candidates)
	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1", len(out))
	}
	if out[0].Title != "Alpha copy" {
		t.Errorf("tie break kept %q, want the lexicographically earlier title", out[0].Title)
	}

	// Input order must not change the winner
	out = Deduplicate([]model.Candidate{candidates[1], candidates[0]})
	if out[0].Title != "Alpha copy" {
		t.Errorf("tie break is order-dependent: kept %q", out[0].Title)
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "a", URL: "https://example.gov/a", RelevanceScore: 5.0},
		{Title: "b", URL: "https://example.gov/a/", RelevanceScore: 6.0},
		{Title: "c", URL: "https://example.gov/c", RelevanceScore: 2.0},
	}

	once := Deduplicate(candidates)
	twice := Deduplicate(once)

	if len(once) != len(twice) {
		t.Fatalf("second pass changed length: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].URL != twice[i].URL {
			t.Errorf("second pass changed order at %d: %q -> %q", i, once[i].URL, twice[i].URL)
		}
	}
}

func TestSortByScore_StableDescending(t *testing.T) {
	candidates := []model.Candidate{
		{Title: "first-five", RelevanceScore: 5.0},
		{Title: "nine", RelevanceScore: 9.0},
		{Title: "second-five", RelevanceScore: 5.0},
		{Title: "two", RelevanceScore: 2.0},
	}

	SortByScore(candidates)

	wantOrder := []string{"nine", "first-five", "second-five", "two"}
	for i, want := range wantOrder {
		if candidates[i].Title != want {
			t.Errorf("position %d = %q, want %q", i, candidates[i].Title, want)
		}
	}
}
