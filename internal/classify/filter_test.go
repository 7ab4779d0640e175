package classify

import (
	"testing"

	"github.com/govsift/govsift/internal/model"
)

func testFilter() *Filter {
	cfg := model.DefaultConfig()
	return NewFilter(NewDomainClassifier(&cfg.Rules), &cfg.Rules)
}

func TestFilter_Admit(t *testing.T) {
	f := testFilter()

	tests := []struct {
		name       string
		title      string
		url        string
		admit      bool
		wantReason string
	}{
		{
			name:       "blocked domain rejected before anything else",
			title:      "Acme Corp Permit Cloud contract pdf",
			url:        "https://www.gartner.com/reviews/acme-permit-cloud",
			admit:      false,
			wantReason: "Blocked domain: gartner.com",
		},
		{
			name:       "user documentation rejected",
			title:      "Permit Cloud User Guide",
			url:        "https://docs.acme.com/permit-cloud/intro",
			admit:      false,
			wantReason: "User documentation",
		},
		{
			name:       "pdf from trusted domain admitted without entity match",
			title:      "Agenda Packet March 2024",
			url:        "https://www.cityofmadison.gov/files/packet.pdf",
			admit:      true,
			wantReason: "PDF from trusted domain",
		},
		{
			name:       "pdf from repository admitted without entity match",
			title:      "Document 512",
			url:        "https://records.example.org/documents/512/scan.pdf",
			admit:      true,
			wantReason: "PDF from document repository",
		},
		{
			name:       "no entity and no trusted pdf rejected",
			title:      "Annual report",
			url:        "https://example.com/annual-report.pdf",
			admit:      false,
			wantReason: "No company/product match",
		},
		{
			name:       "contract keyword with entity admitted",
			title:      "Acme Corp contract renewal approved",
			url:        "https://news.example.com/story",
			admit:      true,
			wantReason: "Has contract keyword",
		},
		{
			name:       "trusted domain with entity but no keyword",
			title:      "Acme Corp partnership",
			url:        "https://www.co.washoe.nv.us/page",
			admit:      true,
			wantReason: "Trusted domain with match",
		},
		{
			name:       "no signals rejected",
			title:      "Acme Corp announces new release",
			url:        "https://blog.example.com/release",
			admit:      false,
			wantReason: "No contract signals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &model.Candidate{Title: tt.title, URL: tt.url}
			admit, reason := f.Admit(c, "Acme Corp", "Permit Cloud")
			if admit != tt.admit {
				t.Errorf("Admit() = %v, want %v (reason %q)", admit, tt.admit, reason)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestFilter_UserDocRejectedEvenOnTrustedDomain(t *testing.T) {
	f := testFilter()

	c := &model.Candidate{
		Title: "Permit Cloud User Guide",
		URL:   "https://www.cityofmadison.gov/files/user-guide.pdf",
	}
	admit, reason := f.Admit(c, "Acme Corp", "Permit Cloud")
	if admit {
		t.Errorf("expected user documentation to be rejected, got admit with %q", reason)
	}
	if reason != "User documentation" {
		t.Errorf("reason = %q, want %q", reason, "User documentation")
	}
}
