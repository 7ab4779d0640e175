package model

import "time"

// Candidate represents one retrieved search result, progressively enriched
// as it moves through the pipeline
type Candidate struct {
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	RelevanceScore float64  `json:"relevance_score"`
	ScoreBreakdown []string `json:"score_breakdown,omitempty"` // append-only audit trail
	IncludeReason  string   `json:"include_reason,omitempty"`  // why the filter admitted it

	DocumentType  string `json:"document_type,omitempty"`
	PricingLikely bool   `json:"pricing_likely"`
	Location      string `json:"location,omitempty"`

	Link LinkValidity `json:"link"`

	Content *ContentReport `json:"content_analysis,omitempty"` // present only if analysis ran

	DiversityPenalty  float64 `json:"diversity_penalty,omitempty"`
	ContentScoreDelta float64 `json:"content_score_adjustment,omitempty"`
}

// AddReason appends a contribution entry to the score breakdown trail.
// Entries are never removed; insertion order is the audit trail.
func (c *Candidate) AddReason(reason string) {
	c.ScoreBreakdown = append(c.ScoreBreakdown, reason)
}

// LinkState is the tri-state outcome of a reachability probe
type LinkState string

const (
	LinkValid     LinkState = "valid"
	LinkInvalid   LinkState = "invalid"
	LinkUnchecked LinkState = "unchecked"
)

// LinkValidity records the result of probing a candidate URL
type LinkValidity struct {
	State      LinkState `json:"state"`
	StatusCode int       `json:"status_code,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// AnalysisStatus describes the outcome of one document's content analysis
type AnalysisStatus string

const (
	StatusAnalyzed       AnalysisStatus = "analyzed"
	StatusDownloadFailed AnalysisStatus = "download_failed"
	StatusNoText         AnalysisStatus = "no_text"
	StatusError          AnalysisStatus = "error"
)

// ContentReport wraps a document's analysis with its retrieval/extraction status
type ContentReport struct {
	Status     AnalysisStatus   `json:"status"`
	Error      string           `json:"error,omitempty"`
	TextLength int              `json:"text_length,omitempty"`
	Analysis   *ContentAnalysis `json:"analysis,omitempty"`
}

// ContentAnalysis holds the structured facts mined from one document's text.
// Created once per document and immutable after construction.
type ContentAnalysis struct {
	Prices        []Price    `json:"prices_found,omitempty"`
	Dates         []DateFact `json:"dates_found,omitempty"`
	Term          string     `json:"contract_term,omitempty"`
	PricingModels []string   `json:"pricing_model,omitempty"`
	IncludedItems []string   `json:"included_items,omitempty"`
	HasCompany    bool       `json:"has_company"`
	HasProduct    bool       `json:"has_product"`
	Summary       string     `json:"summary,omitempty"`
	KeyFindings   []string   `json:"key_findings,omitempty"`
}

// Price is one extracted price figure
type Price struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"type"` // e.g. "Annual Fee", "Not to Exceed"
}

// DateFact is one extracted contract date, at most one per pattern family
type DateFact struct {
	Label string `json:"type"` // e.g. "Effective Date", "End Date"
	Date  string `json:"date"` // raw matched text, not normalized
}

// Report is the final serializable output of one pipeline run
type Report struct {
	Metadata Metadata    `json:"metadata"`
	Results  []Candidate `json:"results"`
}

// Metadata describes the run that produced a report
type Metadata struct {
	Company      string    `json:"company"`
	Product      string    `json:"product"`
	GeneratedAt  time.Time `json:"generated_at"`
	TotalResults int       `json:"total_results"`
	Version      string    `json:"version"`
}

// ScoreCategory buckets a relevance score for display
func ScoreCategory(score float64) string {
	switch {
	case score >= 7:
		return "HIGH"
	case score >= 5:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Query is one generated search query for the acquisition collaborator
type Query struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}
