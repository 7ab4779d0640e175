package classify

import (
	"fmt"
	"strings"

	"github.com/govsift/govsift/internal/model"
)

// Filter is the admit/reject gate applied before scoring. Every decision
// carries a human-readable reason for auditability.
type Filter struct {
	domains  *DomainClassifier
	keywords []string
}

// NewFilter creates a filter sharing the given domain classifier
func NewFilter(domains *DomainClassifier, rules *model.RuleSet) *Filter {
	return &Filter{
		domains:  domains,
		keywords: rules.ContractKeywords,
	}
}

// Admit decides whether a candidate enters the scoring stage
func (f *Filter) Admit(c *model.Candidate, company, product string) (bool, string) {
	text := strings.ToLower(c.Title + " " + c.URL)

	if blocked, matched := f.domains.IsBlocked(c.URL); blocked {
		return false, fmt.Sprintf("Blocked domain: %s", matched)
	}

	if f.domains.IsUserDocumentation(c.URL, c.Title) {
		return false, "User documentation"
	}

	hasCompany := strings.Contains(text, strings.ToLower(company))
	hasProduct := strings.Contains(text, strings.ToLower(product))

	if IsPDF(c.URL) && f.domains.IsTrusted(c.URL) {
		return true, "PDF from trusted domain"
	}
	if IsPDF(c.URL) && f.domains.HasRepositoryPattern(c.URL) {
		return true, "PDF from document repository"
	}

	if !hasCompany && !hasProduct {
		return false, "No company/product match"
	}

	for _, kw := range f.keywords {
		if strings.Contains(text, kw) {
			return true, "Has contract keyword"
		}
	}

	if f.domains.IsTrusted(c.URL) {
		return true, "Trusted domain with match"
	}
	if f.domains.HasRepositoryPattern(c.URL) {
		return true, "Document repository pattern"
	}

	return false, "No contract signals"
}
