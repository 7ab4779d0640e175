package classify

import (
	"testing"

	"github.com/govsift/govsift/internal/model"
)

func testDocTypes() *DocTypeClassifier {
	cfg := model.DefaultConfig()
	return NewDocTypeClassifier(cfg.Rules.DocumentTypes)
}

func TestDocTypeClassifier_Classify(t *testing.T) {
	c := testDocTypes()

	tests := []struct {
		name     string
		url      string
		title    string
		wantType string
	}{
		{
			name:     "order form wins over agreement",
			url:      "https://seattle.gov/files/acme-order-form.pdf",
			title:    "Acme Renewal Order Form and Agreement",
			wantType: "Order Form",
		},
		{
			name:     "plain agreement",
			url:      "https://seattle.gov/files/doc.pdf",
			title:    "Software Subscription Agreement",
			wantType: "Contract/Agreement",
		},
		{
			name:     "pricing document",
			url:      "https://seattle.gov/files/doc.pdf",
			title:    "Permit Cloud Fee Schedule FY2024",
			wantType: "Pricing Document",
		},
		{
			name:     "staff report",
			url:      "https://cityofdenver.gov/agendacenter/doc.pdf",
			title:    "Staff Report: Permit System Procurement",
			wantType: "Staff Report/Memo",
		},
		{
			name:     "rfp",
			url:      "https://cityofdenver.gov/files/doc.pdf",
			title:    "Request for Proposal 24-101 Permitting Software",
			wantType: "RFP/Proposal",
		},
		{
			name:     "fallback",
			url:      "https://cityofdenver.gov/files/doc.pdf",
			title:    "Meeting Minutes March 2024",
			wantType: "Other Government Document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, rule := c.Classify(tt.url, tt.title)
			if gotType != tt.wantType {
				t.Errorf("Classify() = %q, want %q", gotType, tt.wantType)
			}
			if rule.Name != gotType {
				t.Errorf("returned rule %q does not match type %q", rule.Name, gotType)
			}
		})
	}
}

func TestDocTypeClassifier_ExclusionPrecedence(t *testing.T) {
	c := testDocTypes()

	// "agreement" matches the contract rule's inclusion patterns, but the
	// staff-report context vetoes it
	gotType, rule := c.Classify(
		"https://cityofomaha.gov/files/doc.pdf",
		"Staff Report: Approval of Software Agreement with Acme",
	)
	if gotType != "Staff Report/Memo" {
		t.Errorf("expected exclusion to route to Staff Report/Memo, got %q", gotType)
	}
	if rule.PricingLikely {
		t.Error("staff reports should not be marked pricing-likely")
	}

	// Agenda item numbering is also a contract veto
	gotType, _ = c.Classify(
		"https://cityofomaha.gov/files/doc.pdf",
		"Item 7: Agreement with Acme Corp",
	)
	if gotType != "Staff Report/Memo" {
		t.Errorf("expected item-number exclusion to route to Staff Report/Memo, got %q", gotType)
	}
}

func TestDocTypeClassifier_Total(t *testing.T) {
	c := testDocTypes()

	// The classifier must return a type for any input
	gotType, rule := c.Classify("", "")
	if gotType == "" {
		t.Fatal("expected a non-empty type for empty input")
	}
	if gotType != "Other Government Document" {
		t.Errorf("expected fallback type, got %q", gotType)
	}
	if rule.PricingLikely {
		t.Error("fallback type should not be pricing-likely")
	}
}
