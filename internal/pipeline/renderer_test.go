package pipeline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/govsift/govsift/internal/model"
)

func testReport() *model.Report {
	return &model.Report{
		Metadata: model.Metadata{
			Company:      "Acme Corp",
			Product:      "Permit Cloud",
			GeneratedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			TotalResults: 2,
			Version:      Version,
		},
		Results: []model.Candidate{
			{
				Title:          `Acme "Permit Cloud" Order Form, 2024`,
				URL:            "https://seattle.gov/files/order.pdf",
				RelevanceScore: 8.5,
				ScoreBreakdown: []string{"+1.5 company", "+2.5 .gov"},
				DocumentType:   "Order Form",
				PricingLikely:  true,
				Location:       "Seattle, WA",
				Link:           model.LinkValidity{State: model.LinkValid, StatusCode: 200, Reason: "OK"},
				Content: &model.ContentReport{
					Status:     model.StatusAnalyzed,
					TextLength: 2400,
					Analysis: &model.ContentAnalysis{
						Prices:      []model.Price{{Amount: 48500, Formatted: "$48,500", Label: "Annual Fee"}},
						Term:        "3 years",
						Summary:     `MENTIONS: Acme Corp + Permit Cloud | PRICING: Annual Fee: $48,500, "net"`,
						KeyFindings: []string{"Annual Fee: $48,500", "3 years term"},
					},
				},
			},
			{
				Title:          "Acme staff report",
				URL:            "https://tacoma.gov/files/report.pdf",
				RelevanceScore: 4.0,
				DocumentType:   "Staff Report/Memo",
				Location:       "Tacoma, WA",
				Link:           model.LinkValidity{State: model.LinkInvalid, StatusCode: 404, Reason: "Not Found"},
			},
		},
	}
}

func TestRenderer_WriteJSON(t *testing.T) {
	r := NewRenderer(model.OutputConfig{DisplayLimit: 20})

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf, testReport()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded struct {
		Metadata model.Metadata `json:"metadata"`
		Results  []struct {
			Rank           int     `json:"rank"`
			Score          float64 `json:"score"`
			URL            string  `json:"url"`
			LinkState      string  `json:"link_state"`
			ContentSummary string  `json:"content_summary"`
			ContractTerm   string  `json:"contract_term"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Metadata.Company != "Acme Corp" {
		t.Errorf("metadata company = %q", decoded.Metadata.Company)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("got %d results", len(decoded.Results))
	}
	if decoded.Results[0].Rank != 1 || decoded.Results[1].Rank != 2 {
		t.Errorf("ranks = %d, %d; want 1, 2", decoded.Results[0].Rank, decoded.Results[1].Rank)
	}
	if decoded.Results[0].ContractTerm != "3 years" {
		t.Errorf("contract term = %q", decoded.Results[0].ContractTerm)
	}
	if decoded.Results[1].ContentSummary != "" {
		t.Errorf("unanalyzed result has summary %q", decoded.Results[1].ContentSummary)
	}
	if decoded.Results[1].LinkState != "invalid" {
		t.Errorf("link state = %q", decoded.Results[1].LinkState)
	}
}

func TestRenderer_WriteCSV(t *testing.T) {
	r := NewRenderer(model.OutputConfig{DisplayLimit: 20})

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf, testReport()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}

	if lines[0] != "Rank,Score,Category,Link,Location,Document_Type,Pricing_Likely,Content_Summary,Title,URL" {
		t.Errorf("header = %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], "1,8.5,HIGH,✓,") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2,4,LOW,✗,") {
		t.Errorf("row 2 = %q", lines[2])
	}

	// Summary sanitization: quotes become apostrophes, commas semicolons
	if strings.Contains(lines[1], `PRICING: Annual Fee: $48,500`) {
		t.Errorf("summary commas not sanitized: %q", lines[1])
	}
	if !strings.Contains(lines[1], "Annual Fee: $48;500; 'net'") {
		t.Errorf("summary not sanitized as expected: %q", lines[1])
	}

	// Title quotes are CSV-escaped by doubling
	if !strings.Contains(lines[1], `""Permit Cloud""`) {
		t.Errorf("title quotes not escaped: %q", lines[1])
	}

	// Unanalyzed row carries the placeholder summary
	if !strings.Contains(lines[2], "Not analyzed") {
		t.Errorf("row 2 missing placeholder summary: %q", lines[2])
	}
}

func TestRenderer_Display(t *testing.T) {
	r := NewRenderer(model.OutputConfig{ShowBreakdown: true, DisplayLimit: 20})

	var buf bytes.Buffer
	r.Display(&buf, testReport())
	out := buf.String()

	if !strings.Contains(out, "TOP RESULTS") {
		t.Errorf("missing banner: %q", out)
	}
	if !strings.Contains(out, "8.5/10 HIGH ✓") {
		t.Errorf("missing scored line: %q", out)
	}
	if !strings.Contains(out, "Seattle, WA") {
		t.Errorf("missing location: %q", out)
	}
	if !strings.Contains(out, "Annual Fee: $48,500") {
		t.Errorf("missing key finding: %q", out)
	}
	if !strings.Contains(out, "Scoring: +1.5 company; +2.5 .gov") {
		t.Errorf("missing breakdown: %q", out)
	}
	if !strings.Contains(out, "Link issue: Not Found") {
		t.Errorf("missing link issue: %q", out)
	}
}

func TestRenderer_Display_RespectsLimit(t *testing.T) {
	r := NewRenderer(model.OutputConfig{DisplayLimit: 1})

	var buf bytes.Buffer
	r.Display(&buf, testReport())

	if strings.Contains(buf.String(), "tacoma.gov") {
		t.Errorf("second result shown despite display limit 1")
	}
}

func TestScoreBar(t *testing.T) {
	if got := scoreBar(0); got != strings.Repeat("░", 10) {
		t.Errorf("scoreBar(0) = %q", got)
	}
	if got := scoreBar(10); got != strings.Repeat("█", 10) {
		t.Errorf("scoreBar(10) = %q", got)
	}
	// Scores above 10 clamp instead of overflowing the bar
	if got := scoreBar(13); got != strings.Repeat("█", 10) {
		t.Errorf("scoreBar(13) = %q", got)
	}
	if got := scoreBar(7.5); got != strings.Repeat("█", 7)+strings.Repeat("░", 3) {
		t.Errorf("scoreBar(7.5) = %q", got)
	}
}
