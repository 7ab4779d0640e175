package analyze

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/govsift/govsift/internal/model"
)

// Analyzer mines prices, dates, contract term, pricing model and included
// service categories from a document's extracted text. All extraction is
// best-effort: an absent match is an absent field, never an error.
type Analyzer struct {
	prices     []labeledRegexp
	dates      []labeledRegexp
	terms      []labeledRegexp
	models     []model.KeywordSet
	inclusions []model.KeywordSet
	minPrice   float64
	maxPrices  int
}

type labeledRegexp struct {
	re    *regexp.Regexp
	label string
}

// NewAnalyzer compiles the analysis rule tables. Patterns that fail to
// compile are skipped.
func NewAnalyzer(rules *model.AnalysisRules) *Analyzer {
	a := &Analyzer{
		models:     rules.PricingModels,
		inclusions: rules.Inclusions,
		minPrice:   rules.MinPrice,
		maxPrices:  rules.MaxPrices,
	}
	a.prices = compileLabeled(rules.PricePatterns)
	a.dates = compileLabeled(rules.DatePatterns)
	a.terms = compileLabeled(rules.TermPatterns)
	return a
}

func compileLabeled(patterns []model.LabeledPattern) []labeledRegexp {
	compiled := make([]labeledRegexp, 0, len(patterns))
	for _, p := range patterns {
		if re, err := regexp.Compile(p.Pattern); err == nil {
			compiled = append(compiled, labeledRegexp{re: re, label: p.Label})
		}
	}
	return compiled
}

// Analyze mines one document's text and returns the immutable findings
func (a *Analyzer) Analyze(text, company, product string) *model.ContentAnalysis {
	lower := strings.ToLower(text)

	result := &model.ContentAnalysis{
		Prices:        a.extractPrices(lower),
		Dates:         a.extractDates(lower),
		Term:          a.extractTerm(lower),
		PricingModels: matchKeywordSets(a.models, lower),
		IncludedItems: matchKeywordSets(a.inclusions, lower),
		HasCompany:    strings.Contains(lower, strings.ToLower(company)),
		HasProduct:    strings.Contains(lower, strings.ToLower(product)),
	}

	result.KeyFindings = buildKeyFindings(result)
	result.Summary = buildSummary(result, company, product)

	return result
}

// extractPrices collects all price matches, drops amounts below the
// minimum, deduplicates by exact amount, sorts descending and caps the
// list
func (a *Analyzer) extractPrices(lower string) []model.Price {
	var found []model.Price

	for _, lp := range a.prices {
		for _, m := range lp.re.FindAllStringSubmatch(lower, -1) {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil || amount < a.minPrice {
				continue
			}
			found = append(found, model.Price{
				Amount:    amount,
				Formatted: formatUSD(amount),
				Label:     lp.label,
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Amount > found[j].Amount
	})

	seen := make(map[float64]bool)
	var unique []model.Price
	for _, p := range found {
		if seen[p.Amount] {
			continue
		}
		seen[p.Amount] = true
		unique = append(unique, p)
		if len(unique) == a.maxPrices {
			break
		}
	}

	return unique
}

// extractDates takes the first match per date-role pattern, at most one
// date per role
func (a *Analyzer) extractDates(lower string) []model.DateFact {
	var dates []model.DateFact
	for _, lp := range a.dates {
		if m := lp.re.FindStringSubmatch(lower); m != nil {
			dates = append(dates, model.DateFact{Label: lp.label, Date: m[1]})
		}
	}
	return dates
}

// extractTerm tries the term patterns in order; first match wins. Months
// are reported distinctly from years.
func (a *Analyzer) extractTerm(lower string) string {
	for _, lp := range a.terms {
		m := lp.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if strings.Contains(lp.label, "month") {
			return fmt.Sprintf("%d months", value)
		}
		if value == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", value)
	}
	return ""
}

func matchKeywordSets(sets []model.KeywordSet, lower string) []string {
	var matched []string
	for _, set := range sets {
		for _, kw := range set.Keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, set.Name)
				break
			}
		}
	}
	return matched
}

// buildKeyFindings mirrors the summary's leading facts as a short list
func buildKeyFindings(r *model.ContentAnalysis) []string {
	var findings []string

	if len(r.Prices) > 0 {
		top := r.Prices[0]
		findings = append(findings, fmt.Sprintf("%s: %s", top.Label, top.Formatted))
	}
	if r.Term != "" {
		findings = append(findings, fmt.Sprintf("%s term", r.Term))
	}
	for _, d := range firstN(r.Dates, 2) {
		findings = append(findings, fmt.Sprintf("%s: %s", d.Label, d.Date))
	}
	if len(r.PricingModels) > 0 {
		findings = append(findings, "Pricing: "+strings.Join(firstN(r.PricingModels, 2), ", "))
	}
	if len(r.IncludedItems) > 0 {
		findings = append(findings, "Includes: "+strings.Join(firstN(r.IncludedItems, 4), ", "))
	}

	return findings
}

// buildSummary composes the fixed-order summary joined with " | "
func buildSummary(r *model.ContentAnalysis, company, product string) string {
	var parts []string

	switch {
	case r.HasCompany && r.HasProduct:
		parts = append(parts, fmt.Sprintf("MENTIONS: %s + %s", company, product))
	case r.HasCompany:
		parts = append(parts, fmt.Sprintf("MENTIONS: %s only (no %s)", company, product))
	case r.HasProduct:
		parts = append(parts, fmt.Sprintf("MENTIONS: %s only (no %s)", product, company))
	default:
		parts = append(parts, fmt.Sprintf("WARNING: Neither %s nor %s mentioned", company, product))
	}

	if len(r.Prices) > 0 {
		var priced []string
		for _, p := range firstN(r.Prices, 3) {
			priced = append(priced, fmt.Sprintf("%s: %s", p.Label, p.Formatted))
		}
		parts = append(parts, "PRICING: "+strings.Join(priced, "; "))
	} else {
		parts = append(parts, "PRICING: Not found in document")
	}

	if r.Term != "" {
		parts = append(parts, "TERM: "+r.Term)
	}

	if len(r.Dates) > 0 {
		var dated []string
		for _, d := range firstN(r.Dates, 2) {
			dated = append(dated, fmt.Sprintf("%s: %s", d.Label, d.Date))
		}
		parts = append(parts, "DATES: "+strings.Join(dated, "; "))
	}

	if len(r.PricingModels) > 0 {
		parts = append(parts, "MODEL: "+strings.Join(r.PricingModels, ", "))
	}
	if len(r.IncludedItems) > 0 {
		parts = append(parts, "INCLUDES: "+strings.Join(firstN(r.IncludedItems, 5), ", "))
	}

	return strings.Join(parts, " | ")
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// formatUSD renders an amount as whole dollars with comma grouping
func formatUSD(amount float64) string {
	whole := strconv.FormatFloat(amount, 'f', 0, 64)

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := "$" + b.String()
	if negative {
		out = "-" + out
	}
	return out
}
