package score

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/govsift/govsift/internal/classify"
	"github.com/govsift/govsift/internal/model"
)

var (
	yearRe  = regexp.MustCompile(`20(2[0-6]|1[9])`)
	loginRe = regexp.MustCompile(`(login|signin|welcome|default)\.aspx?$`)
)

// Scorer combines entity-match, format, domain-trust, document-type,
// title-pattern and recency signals into a bounded score. Each applied
// bonus is appended to the candidate's breakdown trail in a fixed order,
// so the final score is fully explainable.
type Scorer struct {
	domains      *classify.DomainClassifier
	docTypes     *classify.DocTypeClassifier
	titleBonuses []model.TitleBonus
}

// NewScorer creates a scorer sharing the given classifiers
func NewScorer(domains *classify.DomainClassifier, docTypes *classify.DocTypeClassifier, rules *model.RuleSet) *Scorer {
	return &Scorer{
		domains:      domains,
		docTypes:     docTypes,
		titleBonuses: rules.TitleBonuses,
	}
}

// Score computes the relevance score for a candidate on a 0-10 scale,
// recording every contribution in the breakdown trail. It also attaches
// the classified document type and its pricing-likely flag.
func (s *Scorer) Score(c *model.Candidate, company, product string) {
	urlLower := strings.ToLower(c.URL)
	titleLower := strings.ToLower(c.Title)
	text := titleLower + " " + urlLower

	var total float64

	// Entity matching (max 3.0)
	if strings.Contains(text, strings.ToLower(company)) {
		total += 1.5
		c.AddReason("+1.5 company")
	}
	if strings.Contains(text, strings.ToLower(product)) {
		total += 1.5
		c.AddReason("+1.5 product")
	}

	// Document format (max 1.5)
	if classify.IsPDF(urlLower) {
		total += 1.5
		c.AddReason("+1.5 PDF")
	}

	// Domain trust (max 2.5, mutually exclusive, first match wins)
	switch {
	case strings.Contains(urlLower, ".gov"):
		total += 2.5
		c.AddReason("+2.5 .gov")
	case s.domains.IsTrusted(urlLower):
		total += 2.0
		c.AddReason("+2.0 trusted")
	case s.domains.HasRepositoryPattern(urlLower):
		total += 1.0
		c.AddReason("+1.0 doc repo")
	}

	// Document type bonus (max 2.5)
	typeName, typeInfo := s.docTypes.Classify(c.URL, c.Title)
	switch typeName {
	case "Order Form":
		total += 2.5
		c.AddReason("+2.5 order form")
	case "Contract/Agreement":
		total += 2.0
		c.AddReason("+2.0 contract")
	case "Pricing Document":
		total += 2.0
		c.AddReason("+2.0 pricing doc")
	case "Staff Report/Memo":
		total += 1.0
		c.AddReason("+1.0 staff report")
	case "RFP/Proposal":
		total += 0.5
		c.AddReason("+0.5 rfp/proposal")
	}

	// High-value title patterns: the single highest matching bonus
	var titleBonus float64
	for _, tb := range s.titleBonuses {
		if strings.Contains(titleLower, tb.Phrase) {
			titleBonus = math.Max(titleBonus, tb.Bonus)
		}
	}
	if titleBonus > 0 {
		total += titleBonus
		c.AddReason(fmt.Sprintf("+%.1f title pattern", titleBonus))
	}

	// Recency (max 1.0)
	if latest := latestYear(text); latest > 0 {
		if latest >= 2024 {
			total += 1.0
			c.AddReason(fmt.Sprintf("+1.0 %d", latest))
		} else if latest >= 2022 {
			total += 0.5
			c.AddReason(fmt.Sprintf("+0.5 %d", latest))
		}
	}

	// Penalties
	if s.domains.IsUserDocumentation(c.URL, c.Title) {
		total -= 3.0
		c.AddReason("-3.0 user doc")
	}
	if loginRe.MatchString(urlLower) {
		total -= 2.0
		c.AddReason("-2.0 login page")
	}

	c.DocumentType = typeName
	c.PricingLikely = typeInfo.PricingLikely
	c.RelevanceScore = math.Max(math.Round(total*10)/10, 0)
}

// latestYear scans for 4-digit years in the accepted range and returns the
// most recent, or 0 if none found
func latestYear(text string) int {
	matches := yearRe.FindAllStringSubmatch(text, -1)
	latest := 0
	for _, m := range matches {
		if y, err := strconv.Atoi("20" + m[1]); err == nil && y > latest {
			latest = y
		}
	}
	return latest
}
