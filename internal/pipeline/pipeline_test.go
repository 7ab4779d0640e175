package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/govsift/govsift/internal/model"
)

func testPipeline() *Pipeline {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.HTTP.RespectRobots = false
	return New(cfg, nil)
}

func TestPipeline_Run_FiltersScoresAndRanks(t *testing.T) {
	p := testPipeline()

	req := Request{
		Company: "Acme Corp",
		Product: "Permit Cloud",
		Candidates: []model.Candidate{
			{
				Title: "Acme Corp Permit Cloud Reviews and Ratings",
				URL:   "https://www.g2.com/products/permit-cloud/reviews",
			},
			{
				Title: "Acme Corp Permit Cloud Renewal Order Form 2024",
				URL:   "https://www.cityofaustin.gov/files/acme-order-form-2024.pdf",
			},
			{
				Title: "Permit Cloud User Guide",
				URL:   "https://docs.acme.com/permit-cloud/user-guide",
			},
			{
				Title: "Acme Corp contract renewal staff report",
				URL:   "https://seattle.gov/files/acme-staff-report.pdf",
			},
			{
				Title: "", // malformed: empty URL dropped before anything else
				URL:   "",
			},
		},
	}

	report, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Metadata.Company != "Acme Corp" || report.Metadata.Product != "Permit Cloud" {
		t.Errorf("metadata = %+v", report.Metadata)
	}
	if report.Metadata.TotalResults != len(report.Results) {
		t.Errorf("TotalResults %d != len(results) %d", report.Metadata.TotalResults, len(report.Results))
	}
	if report.Metadata.Version != Version {
		t.Errorf("version = %q, want %q", report.Metadata.Version, Version)
	}

	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2 (review site, user guide and malformed dropped): %+v", len(report.Results), report.Results)
	}

	// Sorted by score: the .gov order-form PDF outranks the staff report
	if !strings.Contains(report.Results[0].URL, "cityofaustin.gov") {
		t.Errorf("top result = %q, want the order form", report.Results[0].URL)
	}
	if report.Results[0].RelevanceScore <= report.Results[1].RelevanceScore {
		t.Errorf("results not sorted: %.1f then %.1f",
			report.Results[0].RelevanceScore, report.Results[1].RelevanceScore)
	}

	for _, r := range report.Results {
		if r.IncludeReason == "" {
			t.Errorf("candidate %q missing include reason", r.URL)
		}
		if r.DocumentType == "" {
			t.Errorf("candidate %q missing document type", r.URL)
		}
		if r.Location == "" {
			t.Errorf("candidate %q missing location annotation", r.URL)
		}
		if r.Link.State != model.LinkUnchecked {
			t.Errorf("candidate %q link state = %q, want unchecked", r.URL, r.Link.State)
		}
	}
}

func TestPipeline_Run_DropsMalformedCandidates(t *testing.T) {
	p := testPipeline()

	req := Request{
		Company: "Acme Corp",
		Product: "Permit Cloud",
		Candidates: []model.Candidate{
			// A trusted-domain PDF that would otherwise be admitted, but
			// the missing title makes it malformed
			{Title: "", URL: "https://www.cityofaustin.gov/files/acme-order-form.pdf"},
			{Title: "  ", URL: "https://seattle.gov/files/acme-order-form.pdf"},
			{Title: "Acme Corp Permit Cloud Order Form", URL: ""},
		},
	}

	report, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("got %d results, want 0", len(report.Results))
	}
}

func TestPipeline_Run_RequiresCompanyAndProduct(t *testing.T) {
	p := testPipeline()

	if _, err := p.Run(context.Background(), Request{Company: "  ", Product: "Permit Cloud"}); err == nil {
		t.Error("expected error for blank company")
	}
	if _, err := p.Run(context.Background(), Request{Company: "Acme Corp", Product: ""}); err == nil {
		t.Error("expected error for blank product")
	}
}

func TestPipeline_Run_DeduplicatesAcrossTracking(t *testing.T) {
	p := testPipeline()

	req := Request{
		Company: "Acme Corp",
		Product: "Permit Cloud",
		Candidates: []model.Candidate{
			{
				Title: "Acme Corp Permit Cloud Agreement",
				URL:   "https://seattle.gov/files/acme-agreement.pdf",
			},
			{
				Title: "Acme Corp Permit Cloud Agreement",
				URL:   "https://seattle.gov/files/acme-agreement.pdf#page=2",
			},
		},
	}

	report, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 1 {
		t.Errorf("got %d results, want 1 after dedup", len(report.Results))
	}
}

func TestPipeline_Run_DiversityPenalizesRepeatedLocation(t *testing.T) {
	p := testPipeline()

	req := Request{
		Company: "Acme Corp",
		Product: "Permit Cloud",
		Candidates: []model.Candidate{
			{
				Title: "Acme Corp Permit Cloud Agreement 2024",
				URL:   "https://tacoma-washington.civicweb.net/documents/acme-agreement-2024.pdf",
			},
			{
				Title: "Acme Corp Permit Cloud contract amendment 2024",
				URL:   "https://tacoma-washington.civicweb.net/documents/acme-amendment-2024.pdf",
			},
		},
	}

	report, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}

	var penalized int
	for _, r := range report.Results {
		if r.Location != "Tacoma, WA" {
			t.Errorf("location = %q, want Tacoma, WA", r.Location)
		}
		if r.DiversityPenalty > 0 {
			penalized++
		}
	}
	if penalized != 1 {
		t.Errorf("%d candidates penalized, want exactly 1", penalized)
	}
}

func TestGenerateQueries(t *testing.T) {
	queries := GenerateQueries("Acme Corp", "Permit Cloud", SearchSoftware)
	if len(queries) == 0 {
		t.Fatal("expected queries")
	}

	if queries[0].Priority != "highest" || queries[0].Category != "order_form" {
		t.Errorf("first query = %+v, want highest-priority order form", queries[0])
	}
	if queries[0].Query != `"Acme Corp" order form pdf` {
		t.Errorf("first query text = %q", queries[0].Query)
	}

	var sawLicense, sawCivicweb bool
	for _, q := range queries {
		if q.Category == "software_license" {
			sawLicense = true
		}
		if q.Category == "civicweb" {
			sawCivicweb = true
		}
		if !strings.Contains(q.Query, "Acme Corp") {
			t.Errorf("query %q missing company", q.Query)
		}
	}
	if !sawLicense {
		t.Error("software search type must include license queries")
	}
	if !sawCivicweb {
		t.Error("expected civicweb queries")
	}

	services := GenerateQueries("Acme Corp", "Permit Cloud", SearchServices)
	for _, q := range services {
		if q.Category == "software_license" {
			t.Error("services search type must not include license queries")
		}
	}
}
