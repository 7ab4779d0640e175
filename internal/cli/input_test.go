package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadCandidates_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	content := `[
  {"title": "Acme Order Form", "url": "https://seattle.gov/order.pdf"},
  {"title": "", "url": "https://tacoma.gov/report.pdf"}
]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	candidates, err := readCandidates(path)
	if err != nil {
		t.Fatalf("readCandidates: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].Title != "Acme Order Form" {
		t.Errorf("title = %q", candidates[0].Title)
	}
	if candidates[1].URL != "https://tacoma.gov/report.pdf" {
		t.Errorf("url = %q", candidates[1].URL)
	}
}

func TestReadCandidates_TabSeparated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.tsv")
	content := "# exported search results\n" +
		"Acme Order Form\thttps://seattle.gov/order.pdf\n" +
		"\n" +
		"https://tacoma.gov/report.pdf\n" +
		"  Padded Title \t https://boulder.gov/contract.pdf \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	candidates, err := readCandidates(path)
	if err != nil {
		t.Fatalf("readCandidates: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	if candidates[0].Title != "Acme Order Form" || candidates[0].URL != "https://seattle.gov/order.pdf" {
		t.Errorf("candidate 0 = %+v", candidates[0])
	}
	// A line without a tab is a bare URL
	if candidates[1].Title != "" || candidates[1].URL != "https://tacoma.gov/report.pdf" {
		t.Errorf("candidate 1 = %+v", candidates[1])
	}
	if candidates[2].Title != "Padded Title" || candidates[2].URL != "https://boulder.gov/contract.pdf" {
		t.Errorf("candidate 2 = %+v", candidates[2])
	}
}

func TestReadCandidates_Errors(t *testing.T) {
	if _, err := readCandidates(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("  \n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readCandidates(empty); err == nil {
		t.Error("expected error for empty file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("[{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readCandidates(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
