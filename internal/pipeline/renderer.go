package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/govsift/govsift/internal/model"
)

// Renderer writes reports as JSON, CSV and terminal output
type Renderer struct {
	showBreakdown bool
	displayLimit  int
}

// NewRenderer creates a renderer from output configuration
func NewRenderer(cfg model.OutputConfig) *Renderer {
	limit := cfg.DisplayLimit
	if limit <= 0 {
		limit = 20
	}
	return &Renderer{
		showBreakdown: cfg.ShowBreakdown,
		displayLimit:  limit,
	}
}

// resultView is the per-result JSON shape, ranked and flattened
type resultView struct {
	Rank           int           `json:"rank"`
	Score          float64       `json:"score"`
	Title          string        `json:"title"`
	URL            string        `json:"url"`
	Location       string        `json:"location"`
	DocumentType   string        `json:"document_type"`
	PricingLikely  bool          `json:"pricing_likely"`
	LinkState      string        `json:"link_state"`
	ScoreBreakdown []string      `json:"score_breakdown"`
	ContentSummary string        `json:"content_summary,omitempty"`
	Prices         []model.Price `json:"prices_found,omitempty"`
	ContractTerm   string        `json:"contract_term,omitempty"`
	KeyFindings    []string      `json:"key_findings,omitempty"`
}

type reportView struct {
	Metadata model.Metadata `json:"metadata"`
	Results  []resultView   `json:"results"`
}

// WriteJSON writes the ranked report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	view := reportView{
		Metadata: report.Metadata,
		Results:  make([]resultView, 0, len(report.Results)),
	}

	for i, c := range report.Results {
		rv := resultView{
			Rank:           i + 1,
			Score:          c.RelevanceScore,
			Title:          c.Title,
			URL:            c.URL,
			Location:       orUnknown(c.Location),
			DocumentType:   orUnknown(c.DocumentType),
			PricingLikely:  c.PricingLikely,
			LinkState:      string(c.Link.State),
			ScoreBreakdown: c.ScoreBreakdown,
		}
		if a := analysisOf(&c); a != nil {
			rv.ContentSummary = a.Summary
			rv.Prices = a.Prices
			rv.ContractTerm = a.Term
			rv.KeyFindings = a.KeyFindings
		}
		view.Results = append(view.Results, rv)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(view)
}

// WriteCSV writes the ranked report as CSV. Summaries are sanitized
// rather than quoted-escaped so the rows stay greppable.
func (r *Renderer) WriteCSV(w io.Writer, report *model.Report) error {
	if _, err := fmt.Fprintln(w, "Rank,Score,Category,Link,Location,Document_Type,Pricing_Likely,Content_Summary,Title,URL"); err != nil {
		return err
	}

	for i, c := range report.Results {
		pricing := "No"
		if c.PricingLikely {
			pricing = "Yes"
		}

		summary := csvSummary(&c)
		summary = strings.ReplaceAll(summary, `"`, "'")
		summary = strings.ReplaceAll(summary, ",", ";")
		summary = strings.ReplaceAll(summary, "\n", " ")

		title := strings.ReplaceAll(c.Title, "\n", " ")

		_, err := fmt.Fprintf(w, "%d,%g,%s,%s,%s,%s,%s,%s,%s,%s\n",
			i+1,
			c.RelevanceScore,
			model.ScoreCategory(c.RelevanceScore),
			linkMark(c.Link.State),
			csvQuote(orUnknown(c.Location)),
			csvQuote(orUnknown(c.DocumentType)),
			pricing,
			csvQuote(summary),
			csvQuote(title),
			csvQuote(c.URL),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Display prints the ranked results to the terminal
func (r *Renderer) Display(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintln(w, "TOP RESULTS")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	limit := r.displayLimit
	if limit > len(report.Results) {
		limit = len(report.Results)
	}

	for i := 0; i < limit; i++ {
		c := report.Results[i]
		score := c.RelevanceScore

		cat := "LOW "
		switch {
		case score >= 7:
			cat = "HIGH"
		case score >= 5:
			cat = "MED "
		}

		fmt.Fprintf(w, "\n%2d. [%s] %4.1f/10 %s %s\n", i+1, scoreBar(score), score, cat, linkMark(c.Link.State))
		fmt.Fprintf(w, "    %s\n", orUnknown(c.Location))
		pricingMark := " "
		if c.PricingLikely {
			pricingMark = "$"
		}
		fmt.Fprintf(w, "    %s [%s] %s\n", pricingMark, orUnknown(c.DocumentType), truncate(c.Title, 65))
		fmt.Fprintf(w, "    %s\n", truncate(c.URL, 100))

		if a := analysisOf(&c); a != nil {
			for _, finding := range firstStrings(a.KeyFindings, 3) {
				fmt.Fprintf(w, "       %s\n", finding)
			}
		}

		if r.showBreakdown && len(c.ScoreBreakdown) > 0 {
			fmt.Fprintf(w, "    Scoring: %s\n", strings.Join(firstStrings(c.ScoreBreakdown, 5), "; "))
		}

		if c.Link.State == model.LinkInvalid {
			fmt.Fprintf(w, "    Link issue: %s\n", orUnknown(c.Link.Reason))
		}
	}
}

// WriteFiles saves the report to path (JSON) and its .csv sibling
func (r *Renderer) WriteFiles(report *model.Report, jsonPath string) error {
	jf, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", jsonPath, err)
	}
	defer func() { _ = jf.Close() }()

	if err := r.WriteJSON(jf, report); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}

	csvPath := strings.TrimSuffix(jsonPath, ".json") + ".csv"
	cf, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", csvPath, err)
	}
	defer func() { _ = cf.Close() }()

	if err := r.WriteCSV(cf, report); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	return nil
}

// scoreBar renders a ten-cell bar, clamped for scores above 10
func scoreBar(score float64) string {
	filled := int(score)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func linkMark(state model.LinkState) string {
	switch state {
	case model.LinkValid:
		return "✓"
	case model.LinkInvalid:
		return "✗"
	default:
		return "?"
	}
}

// analysisOf returns the content analysis if the document was analyzed
func analysisOf(c *model.Candidate) *model.ContentAnalysis {
	if c.Content == nil || c.Content.Status != model.StatusAnalyzed {
		return nil
	}
	return c.Content.Analysis
}

// csvSummary describes the analysis outcome for the CSV column
func csvSummary(c *model.Candidate) string {
	if c.Content == nil {
		return "Not analyzed"
	}
	switch c.Content.Status {
	case model.StatusAnalyzed:
		if c.Content.Analysis != nil {
			return c.Content.Analysis.Summary
		}
		return "Not analyzed"
	case model.StatusNoText:
		return "Could not extract text (scanned PDF)"
	case model.StatusDownloadFailed:
		return "Download failed"
	default:
		return "Not analyzed"
	}
}

// csvQuote wraps a field in quotes, doubling any embedded ones
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func firstStrings(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
